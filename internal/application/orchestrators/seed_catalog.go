package orchestrators

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	domainHospital "beautrip/internal/domain/hospital"
	domainTreatment "beautrip/internal/domain/treatment"
)

//go:embed seeddata/catalog.yaml
var defaultCatalogSeed []byte

// DefaultCatalogSeed returns the bundled demo catalog.
func DefaultCatalogSeed() []byte {
	return defaultCatalogSeed
}

// CatalogUpserter writes catalog rows.
type CatalogUpserter[T any] interface {
	Upsert(ctx context.Context, list []T) error
}

// SeedCatalogDeps holds dependencies for SeedCatalog.
type SeedCatalogDeps struct {
	Hospitals  CatalogUpserter[domainHospital.Hospital]
	Treatments CatalogUpserter[domainTreatment.Treatment]
}

// SeedCatalogResult reports how many rows were written.
type SeedCatalogResult struct {
	Hospitals  int
	Treatments int
}

type seedHospital struct {
	ID           int64    `yaml:"id"`
	Name         string   `yaml:"name"`
	Address      string   `yaml:"address"`
	Intro        string   `yaml:"intro"`
	Departments  []string `yaml:"departments"`
	Rating       float64  `yaml:"rating"`
	ReviewCount  int      `yaml:"review_count"`
	Phone        string   `yaml:"phone"`
	Email        string   `yaml:"email"`
	Website      string   `yaml:"website"`
	OpeningHours string   `yaml:"opening_hours"`
	ImageURL     string   `yaml:"image_url"`
}

type seedTreatment struct {
	ID              int64    `yaml:"id"`
	Name            string   `yaml:"name"`
	HospitalID      int64    `yaml:"hospital_id"`
	CategoryLarge   string   `yaml:"category_large"`
	CategoryMid     string   `yaml:"category_mid"`
	CategorySmall   string   `yaml:"category_small"`
	Hashtags        []string `yaml:"hashtags"`
	SellingPrice    int64    `yaml:"selling_price"`
	OriginalPrice   int64    `yaml:"original_price"`
	Rating          float64  `yaml:"rating"`
	ReviewCount     int      `yaml:"review_count"`
	PopularityCount int      `yaml:"popularity_count"`
	ThumbnailURL    string   `yaml:"thumbnail_url"`
	Platform        string   `yaml:"platform"`
}

type seedCatalog struct {
	Hospitals  []seedHospital  `yaml:"hospitals"`
	Treatments []seedTreatment `yaml:"treatments"`
}

// ExecuteSeedCatalog loads a YAML catalog into the local store.
// PRE: data is a YAML document with hospitals and treatments lists
// POST: rows are upserted by id; re-running with the same file changes nothing
// INVARIANT: every treatment references a hospital declared in the same document
func ExecuteSeedCatalog(ctx context.Context, data []byte, deps SeedCatalogDeps) (SeedCatalogResult, error) {
	var doc seedCatalog
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return SeedCatalogResult{}, fmt.Errorf("parse catalog seed: %w", err)
	}

	hospitals := make([]domainHospital.Hospital, 0, len(doc.Hospitals))
	names := make(map[int64]string, len(doc.Hospitals))
	for _, h := range doc.Hospitals {
		if h.ID <= 0 || strings.TrimSpace(h.Name) == "" {
			return SeedCatalogResult{}, fmt.Errorf("hospital %d: id and name are required", h.ID)
		}
		if _, dup := names[h.ID]; dup {
			return SeedCatalogResult{}, fmt.Errorf("hospital %d is declared twice", h.ID)
		}
		names[h.ID] = h.Name
		hospitals = append(hospitals, domainHospital.Hospital{
			ID: h.ID, Name: h.Name, Address: h.Address, Intro: h.Intro, Departments: h.Departments,
			Rating: h.Rating, ReviewCount: h.ReviewCount, Phone: h.Phone, Email: h.Email,
			Website: h.Website, OpeningHours: h.OpeningHours, ImageURL: h.ImageURL,
		})
	}

	treatments := make([]domainTreatment.Treatment, 0, len(doc.Treatments))
	for _, t := range doc.Treatments {
		if t.ID <= 0 || strings.TrimSpace(t.Name) == "" {
			return SeedCatalogResult{}, fmt.Errorf("treatment %d: id and name are required", t.ID)
		}
		hospitalName, ok := names[t.HospitalID]
		if !ok {
			return SeedCatalogResult{}, fmt.Errorf("treatment %d references unknown hospital %d", t.ID, t.HospitalID)
		}
		if t.CategoryLarge != "" && !domainTreatment.IsMainCategory(t.CategoryLarge) {
			return SeedCatalogResult{}, fmt.Errorf("treatment %d: unknown category %q", t.ID, t.CategoryLarge)
		}
		var discount int
		if t.OriginalPrice > 0 && t.SellingPrice < t.OriginalPrice {
			discount = int((t.OriginalPrice - t.SellingPrice) * 100 / t.OriginalPrice)
		}
		treatments = append(treatments, domainTreatment.Treatment{
			ID: t.ID, Name: t.Name, HospitalID: t.HospitalID, HospitalName: hospitalName,
			CategoryLarge: t.CategoryLarge, CategoryMid: t.CategoryMid, CategorySmall: t.CategorySmall,
			Hashtags:     formatHashtags(t.Hashtags),
			SellingPrice: t.SellingPrice, OriginalPrice: t.OriginalPrice, DiscountRate: discount,
			Rating: t.Rating, ReviewCount: t.ReviewCount, PopularityCount: t.PopularityCount,
			ThumbnailURL: t.ThumbnailURL, Platform: t.Platform,
		})
	}

	if err := deps.Hospitals.Upsert(ctx, hospitals); err != nil {
		return SeedCatalogResult{}, fmt.Errorf("upsert hospitals: %w", err)
	}
	if err := deps.Treatments.Upsert(ctx, treatments); err != nil {
		return SeedCatalogResult{}, fmt.Errorf("upsert treatments: %w", err)
	}
	slog.Info("catalog_seeded", "hospitals", len(hospitals), "treatments", len(treatments))
	return SeedCatalogResult{Hospitals: len(hospitals), Treatments: len(treatments)}, nil
}

// formatHashtags renders tags in the catalog's raw form, e.g. "#자연유착, #매몰".
func formatHashtags(tags []string) string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimPrefix(strings.TrimSpace(t), "#")
		if t != "" {
			out = append(out, "#"+t)
		}
	}
	return strings.Join(out, ", ")
}
