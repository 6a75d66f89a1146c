package review

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"beautrip/internal/domain/treatment"
)

// Limits shared by both review kinds.
const (
	MinContentLength = 10
	MaxContentLength = 5000
	MaxImages        = 4
	MinRating        = 1
	MaxRating        = 5
	// Unrated is a star rating left blank on the form.
	Unrated = 0
)

// Gender and age group options offered on the procedure review form.
const (
	GenderFemale = "여"
	GenderMale   = "남"
)

// ValidAgeGroups lists the selectable age groups.
var ValidAgeGroups = []string{"20대", "30대", "40대", "50대"}

// ErrIncomplete is the single user-facing message for a form missing required input.
var ErrIncomplete = errors.New("필수 항목을 모두 입력하고 글을 10자 이상 작성해주세요.")

// Field errors. Missing required input also matches ErrIncomplete under errors.Is.
var (
	ErrEmptyAccountID   = errors.New("account ID cannot be empty")
	ErrInvalidCategory  = errors.New("category must be one of the main categories")
	ErrEmptyProcedure   = errors.New("procedure name cannot be empty")
	ErrInvalidCost      = errors.New("cost must be positive")
	ErrInvalidRating    = errors.New("ratings must be between 1 and 5, or 0 for unrated")
	ErrInvalidGender    = errors.New("gender must be 여 or 남")
	ErrInvalidAgeGroup  = errors.New("age group must be one of 20대, 30대, 40대, 50대")
	ErrContentTooShort  = errors.New("content must be at least 10 characters")
	ErrContentTooLong   = errors.New("content cannot exceed 5000 characters")
	ErrTooManyImages    = errors.New("at most 4 images may be attached")
	ErrEmptyHospital    = errors.New("hospital name cannot be empty")
	ErrInvalidDate      = errors.New("dates must be YYYY-MM-DD")
	ErrTranslationScore = errors.New("translation rating requires translation service")
)

// DateLayout is the form date format.
const DateLayout = "2006-01-02"

// ProcedureReview is a patient's review of a procedure.
type ProcedureReview struct {
	ID              string
	AccountID       string
	Category        string
	ProcedureName   string
	HospitalName    string
	Cost            int // 만원
	ProcedureRating int
	HospitalRating  int
	Gender          string
	AgeGroup        string
	SurgeryDate     string // YYYY-MM-DD, optional
	Content         string
	Images          []string
	CreatedAt       time.Time
}

// Validate checks if the ProcedureReview has valid data.
// PRE: ProcedureReview struct is populated
// POST: Returns nil if valid, otherwise an error for which errors.Is(err, ErrIncomplete) holds
// when a required field is missing
func (r *ProcedureReview) Validate() error {
	if strings.TrimSpace(r.AccountID) == "" {
		return ErrEmptyAccountID
	}
	if !treatment.IsMainCategory(r.Category) {
		return incomplete(ErrInvalidCategory)
	}
	if strings.TrimSpace(r.ProcedureName) == "" {
		return incomplete(ErrEmptyProcedure)
	}
	if r.Cost <= 0 {
		return incomplete(ErrInvalidCost)
	}
	if err := checkContent(r.Content); err != nil {
		return err
	}
	if !validRating(r.ProcedureRating) || !validRating(r.HospitalRating) {
		return ErrInvalidRating
	}
	if r.Gender != "" && r.Gender != GenderFemale && r.Gender != GenderMale {
		return ErrInvalidGender
	}
	if r.AgeGroup != "" && !isValidAgeGroup(r.AgeGroup) {
		return ErrInvalidAgeGroup
	}
	if !validOptionalDate(r.SurgeryDate) {
		return ErrInvalidDate
	}
	if len(r.Images) > MaxImages {
		return ErrTooManyImages
	}
	return nil
}

// HospitalReview is a patient's review of a clinic visit.
type HospitalReview struct {
	ID                      string
	AccountID               string
	HospitalName            string
	CategoryLarge           string
	Procedure               string // optional
	VisitDate               string // YYYY-MM-DD, optional
	OverallSatisfaction     int
	HospitalKindness        int
	HasTranslation          bool
	TranslationSatisfaction int // only when HasTranslation
	Content                 string
	Images                  []string
	CreatedAt               time.Time
}

// Validate checks if the HospitalReview has valid data.
// PRE: HospitalReview struct is populated
// POST: Returns nil if valid, error otherwise
func (r *HospitalReview) Validate() error {
	if strings.TrimSpace(r.AccountID) == "" {
		return ErrEmptyAccountID
	}
	if strings.TrimSpace(r.HospitalName) == "" {
		return incomplete(ErrEmptyHospital)
	}
	if !treatment.IsMainCategory(r.CategoryLarge) {
		return incomplete(ErrInvalidCategory)
	}
	if err := checkContent(r.Content); err != nil {
		return err
	}
	if !validRating(r.OverallSatisfaction) || !validRating(r.HospitalKindness) {
		return ErrInvalidRating
	}
	if r.HasTranslation {
		if !validRating(r.TranslationSatisfaction) {
			return ErrInvalidRating
		}
	} else if r.TranslationSatisfaction != 0 {
		return ErrTranslationScore
	}
	if !validOptionalDate(r.VisitDate) {
		return ErrInvalidDate
	}
	if len(r.Images) > MaxImages {
		return ErrTooManyImages
	}
	return nil
}

// AverageRating is the mean of the ratings given on a hospital review.
// Unrated scores are skipped; a review with no scores averages 0.
func (r *HospitalReview) AverageRating() float64 {
	scores := []int{r.OverallSatisfaction, r.HospitalKindness}
	if r.HasTranslation {
		scores = append(scores, r.TranslationSatisfaction)
	}
	var sum, n int
	for _, v := range scores {
		if v != Unrated {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

type incompleteError struct{ err error }

func (e incompleteError) Error() string { return e.err.Error() }

func (e incompleteError) Is(target error) bool { return target == ErrIncomplete }

func (e incompleteError) Unwrap() error { return e.err }

func incomplete(err error) error { return incompleteError{err: err} }

func checkContent(content string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(content))
	if n < MinContentLength {
		return incomplete(ErrContentTooShort)
	}
	if n > MaxContentLength {
		return ErrContentTooLong
	}
	return nil
}

func validRating(v int) bool {
	return v == Unrated || (v >= MinRating && v <= MaxRating)
}

func validOptionalDate(s string) bool {
	if s == "" {
		return true
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

func isValidAgeGroup(g string) bool {
	for _, a := range ValidAgeGroups {
		if a == g {
			return true
		}
	}
	return false
}
