package community_test

import (
	"testing"

	"beautrip/internal/domain/community"
	"beautrip/internal/domain/treatment"
)

// TestCategories tests that every board maps to a main treatment category.
func TestCategories(t *testing.T) {
	if len(community.Categories) != len(treatment.MainCategories) {
		t.Fatalf("len(Categories) = %d, want %d", len(community.Categories), len(treatment.MainCategories))
	}
	for i, c := range community.Categories {
		if c.Name != treatment.MainCategories[i] {
			t.Errorf("category %d = %q, want %q", i, c.Name, treatment.MainCategories[i])
		}
	}
	c, ok := community.CategoryBySlug("hair-removal")
	if !ok || c.Name != treatment.CategoryHairRemoval {
		t.Errorf("CategoryBySlug(hair-removal) = %+v, %v", c, ok)
	}
	if _, ok := community.CategoryBySlug("dental"); ok {
		t.Error("unexpected slug match")
	}
}

// TestDefaultLibrary tests the embedded guides.
func TestDefaultLibrary(t *testing.T) {
	lib, err := community.DefaultLibrary()
	if err != nil {
		t.Fatalf("DefaultLibrary: %v", err)
	}
	wantGroups := []string{"jaw", "breast", "body", "upperFace", "nose", "eyeSurgery", "eyeVolume", "faceFat", "lifting", "procedures"}
	for _, k := range wantGroups {
		if !lib.IsGroupKey(k) {
			t.Errorf("missing group %q", k)
		}
	}
	if lib.IsGroupKey("teeth") {
		t.Error("unexpected group teeth")
	}
	g, ok := lib.FindGuide("nose-splint")
	if !ok || g.Group != "nose" || g.Content == "" {
		t.Errorf("FindGuide(nose-splint) = %+v, %v", g, ok)
	}
	jaw := lib.GuidesInGroup("jaw")
	if len(jaw) != 2 || jaw[0].Weeks > jaw[1].Weeks {
		t.Errorf("GuidesInGroup(jaw) = %+v", jaw)
	}
}

// TestParseLibrary_Errors tests structural checks.
func TestParseLibrary_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"bad yaml", "groups: [\n"},
		{"duplicate group", "groups:\n  - key: a\n  - key: a\n"},
		{"unknown group", "groups:\n  - key: a\nposts:\n  - id: p\n    group: b\n"},
		{"duplicate guide", "groups:\n  - key: a\nposts:\n  - id: p\n    group: a\n  - id: p\n    group: a\n"},
		{"guide shadows group", "groups:\n  - key: a\nposts:\n  - id: a\n    group: a\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := community.ParseLibrary([]byte(tt.doc)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

// TestConsultationSections tests the fixed consultation layout.
func TestConsultationSections(t *testing.T) {
	var ids []string
	for _, s := range community.ConsultationSections {
		ids = append(ids, s.ID)
	}
	want := []string{"recovery", "questions", "skin-concerns", "travel"}
	if len(ids) != len(want) {
		t.Fatalf("sections = %v", ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("section %d = %q, want %q", i, ids[i], want[i])
		}
	}
}
