package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	domainFavorite "beautrip/internal/domain/favorite"
	domainHospital "beautrip/internal/domain/hospital"
	domainTreatment "beautrip/internal/domain/treatment"
)

// FavoriteStoreForToggle defines the store interface needed by ToggleFavorite.
type FavoriteStoreForToggle interface {
	Add(ctx context.Context, f domainFavorite.Favorite) error
	Remove(ctx context.Context, accountID, kind, targetID string) error
	Exists(ctx context.Context, accountID, kind, targetID string) (bool, error)
}

// TreatmentLookup resolves a treatment by id.
type TreatmentLookup interface {
	GetByID(ctx context.Context, id int64) (domainTreatment.Treatment, error)
}

// HospitalLookup resolves a hospital by id.
type HospitalLookup interface {
	GetByID(ctx context.Context, id int64) (domainHospital.Hospital, error)
}

// ToggleFavoriteInput carries input for the orchestrator.
type ToggleFavoriteInput struct {
	AccountID string
	Kind      string // procedure or clinic
	ID        int64  // treatment or hospital id
}

// ToggleFavoriteResult reports the state after the toggle.
type ToggleFavoriteResult struct {
	Kind     string `json:"kind"`
	TargetID string `json:"target_id"`
	Added    bool   `json:"favorited"`
}

// ToggleFavoriteDeps holds dependencies for ToggleFavorite.
type ToggleFavoriteDeps struct {
	Favorites  FavoriteStoreForToggle
	Treatments TreatmentLookup
	Hospitals  HospitalLookup
	GenerateID func() string
	Now        func() time.Time
}

// ErrTargetNotFound is returned when the favorited procedure or clinic does not exist.
var ErrTargetNotFound = errors.New("favorite target not found")

// ExecuteToggleFavorite adds the favorite if absent and removes it if present.
// Procedures are keyed by treatment id, clinics by hospital name.
// PRE: AccountID is non-empty; Kind is procedure or clinic
// POST: Toggling twice restores the original favorites
// INVARIANT: Last write wins; the snapshot is taken at add time
func ExecuteToggleFavorite(ctx context.Context, input ToggleFavoriteInput, deps ToggleFavoriteDeps) (ToggleFavoriteResult, error) {
	fav := domainFavorite.Favorite{AccountID: input.AccountID, Kind: input.Kind}

	switch input.Kind {
	case domainFavorite.KindProcedure:
		t, err := deps.Treatments.GetByID(ctx, input.ID)
		if err != nil {
			return ToggleFavoriteResult{}, lookupErr("treatment", err)
		}
		fav.TargetID = strconv.FormatInt(t.ID, 10)
		fav.Title = t.Name
		fav.Clinic = t.HospitalName
		fav.Price = t.SellingPrice
		fav.Rating = t.Rating
		fav.ReviewCount = t.ReviewCount
	case domainFavorite.KindClinic:
		h, err := deps.Hospitals.GetByID(ctx, input.ID)
		if err != nil {
			return ToggleFavoriteResult{}, lookupErr("hospital", err)
		}
		fav.TargetID = h.Name
		fav.Title = h.Name
		fav.Rating = h.Rating
		fav.ReviewCount = h.ReviewCount
		fav.Address = h.Address
		fav.Departments = h.Departments
	default:
		return ToggleFavoriteResult{}, domainFavorite.ErrInvalidKind
	}

	result := ToggleFavoriteResult{Kind: fav.Kind, TargetID: fav.TargetID}
	exists, err := deps.Favorites.Exists(ctx, fav.AccountID, fav.Kind, fav.TargetID)
	if err != nil {
		return ToggleFavoriteResult{}, err
	}
	if exists {
		if err := deps.Favorites.Remove(ctx, fav.AccountID, fav.Kind, fav.TargetID); err != nil {
			return ToggleFavoriteResult{}, err
		}
		slog.Info("favorite_removed", "account_id", fav.AccountID, "kind", fav.Kind, "target_id", fav.TargetID)
		return result, nil
	}

	fav.ID = deps.GenerateID()
	fav.CreatedAt = deps.Now()
	if err := fav.Validate(); err != nil {
		return ToggleFavoriteResult{}, err
	}
	if err := deps.Favorites.Add(ctx, fav); err != nil {
		return ToggleFavoriteResult{}, err
	}
	slog.Info("favorite_added", "account_id", fav.AccountID, "kind", fav.Kind, "target_id", fav.TargetID)
	result.Added = true
	return result, nil
}

func lookupErr(what string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrTargetNotFound
	}
	return fmt.Errorf("load %s: %w", what, err)
}
