package favorite

import (
	"errors"
	"strings"
	"time"
)

// Kind constants. Procedures are keyed by treatment id, clinics by hospital name.
const (
	KindProcedure = "procedure"
	KindClinic    = "clinic"
)

// Domain errors
var (
	ErrInvalidKind    = errors.New("kind must be one of: procedure, clinic")
	ErrEmptyTarget    = errors.New("favorite target cannot be empty")
	ErrEmptyAccountID = errors.New("account ID cannot be empty")
	ErrEmptyTitle     = errors.New("favorite title cannot be empty")
	ErrTitleTooLong   = errors.New("favorite title cannot exceed 200 characters")
)

// MaxTitleLength bounds the stored snapshot title.
const MaxTitleLength = 200

// Favorite is a saved procedure or clinic with the snapshot shown on the favorites page.
// The snapshot is taken when the favorite is added and is not refreshed.
type Favorite struct {
	ID          string
	AccountID   string
	Kind        string
	TargetID    string // treatment id for procedures, hospital name for clinics
	Title       string
	Clinic      string
	Price       int64
	Rating      float64
	ReviewCount int
	Address     string
	Departments []string
	CreatedAt   time.Time
}

// Validate checks if the Favorite has valid data.
// PRE: Favorite struct is populated
// POST: Returns nil if valid, error otherwise
func (f *Favorite) Validate() error {
	if strings.TrimSpace(f.AccountID) == "" {
		return ErrEmptyAccountID
	}
	if f.Kind != KindProcedure && f.Kind != KindClinic {
		return ErrInvalidKind
	}
	if strings.TrimSpace(f.TargetID) == "" {
		return ErrEmptyTarget
	}
	if strings.TrimSpace(f.Title) == "" {
		return ErrEmptyTitle
	}
	if len([]rune(f.Title)) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

// Key identifies a favorite independently of its snapshot.
type Key struct {
	Kind     string
	TargetID string
}

// Set answers "is this favorited?" for list pages.
type Set map[Key]struct{}

// NewSet builds a Set from a favorites list.
func NewSet(list []Favorite) Set {
	s := make(Set, len(list))
	for _, f := range list {
		s[Key{Kind: f.Kind, TargetID: f.TargetID}] = struct{}{}
	}
	return s
}

// Has reports whether kind/target is favorited. A nil Set has nothing.
func (s Set) Has(kind, target string) bool {
	_, ok := s[Key{Kind: kind, TargetID: target}]
	return ok
}

// IDs returns the favorited targets of one kind.
func (s Set) IDs(kind string) []string {
	var out []string
	for k := range s {
		if k.Kind == kind {
			out = append(out, k.TargetID)
		}
	}
	return out
}
