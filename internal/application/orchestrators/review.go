package orchestrators

import (
	"context"
	"log/slog"
	"strings"
	"time"

	domainReview "beautrip/internal/domain/review"
)

// ReviewStoreForSubmit defines the store interface needed by the review orchestrators.
type ReviewStoreForSubmit interface {
	SaveProcedure(ctx context.Context, r domainReview.ProcedureReview) error
	SaveHospital(ctx context.Context, r domainReview.HospitalReview) error
	Delete(ctx context.Context, accountID, id string) error
}

// SubmitReviewDeps holds dependencies for the review orchestrators.
type SubmitReviewDeps struct {
	Reviews    ReviewStoreForSubmit
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteSubmitProcedureReview validates and stores a procedure review.
// PRE: review.AccountID is the signed-in account
// POST: Review persisted with a fresh ID and CreatedAt; missing required input matches
// domainReview.ErrIncomplete
func ExecuteSubmitProcedureReview(ctx context.Context, review domainReview.ProcedureReview, deps SubmitReviewDeps) (domainReview.ProcedureReview, error) {
	review.ProcedureName = strings.TrimSpace(review.ProcedureName)
	review.HospitalName = strings.TrimSpace(review.HospitalName)
	review.Content = strings.TrimSpace(review.Content)
	if err := review.Validate(); err != nil {
		return domainReview.ProcedureReview{}, err
	}
	review.ID = deps.GenerateID()
	review.CreatedAt = deps.Now()
	if err := deps.Reviews.SaveProcedure(ctx, review); err != nil {
		return domainReview.ProcedureReview{}, err
	}
	slog.Info("review_submitted", "kind", "procedure", "review_id", review.ID, "category", review.Category)
	return review, nil
}

// ExecuteSubmitHospitalReview validates and stores a hospital review.
// PRE: review.AccountID is the signed-in account
// POST: Review persisted; the translation rating is cleared when no translation was used
func ExecuteSubmitHospitalReview(ctx context.Context, review domainReview.HospitalReview, deps SubmitReviewDeps) (domainReview.HospitalReview, error) {
	review.HospitalName = strings.TrimSpace(review.HospitalName)
	review.Procedure = strings.TrimSpace(review.Procedure)
	review.Content = strings.TrimSpace(review.Content)
	if !review.HasTranslation {
		review.TranslationSatisfaction = 0
	}
	if err := review.Validate(); err != nil {
		return domainReview.HospitalReview{}, err
	}
	review.ID = deps.GenerateID()
	review.CreatedAt = deps.Now()
	if err := deps.Reviews.SaveHospital(ctx, review); err != nil {
		return domainReview.HospitalReview{}, err
	}
	slog.Info("review_submitted", "kind", "hospital", "review_id", review.ID, "hospital", review.HospitalName)
	return review, nil
}

// ExecuteDeleteReview removes one of the account's own reviews.
// POST: reviews owned by other accounts are untouched
func ExecuteDeleteReview(ctx context.Context, accountID, reviewID string, deps SubmitReviewDeps) error {
	if err := deps.Reviews.Delete(ctx, accountID, reviewID); err != nil {
		return err
	}
	slog.Info("review_deleted", "account_id", accountID, "review_id", reviewID)
	return nil
}
