package orchestrators

import (
	"context"
	"log/slog"
	"time"

	domainTravel "beautrip/internal/domain/travel"
)

// TravelStoreForUpdate defines the store interface needed by the travel orchestrators.
type TravelStoreForUpdate interface {
	Save(ctx context.Context, p domainTravel.Period) error
	Delete(ctx context.Context, accountID string) error
}

// SetTravelPeriodInput carries the submitted dates as YYYY-MM-DD.
type SetTravelPeriodInput struct {
	AccountID string
	Start     string
	End       string
}

// TravelDeps holds dependencies for the travel orchestrators.
type TravelDeps struct {
	Travel TravelStoreForUpdate
	Now    func() time.Time
}

// ExecuteSetTravelPeriod saves the account's trip window.
// PRE: AccountID is non-empty
// POST: the previous period is replaced (last write wins)
func ExecuteSetTravelPeriod(ctx context.Context, input SetTravelPeriodInput, deps TravelDeps) (domainTravel.Period, error) {
	p, err := domainTravel.ParsePeriod(input.Start, input.End)
	if err != nil {
		return domainTravel.Period{}, err
	}
	if err := p.Validate(); err != nil {
		return domainTravel.Period{}, err
	}
	p.AccountID = input.AccountID
	p.UpdatedAt = deps.Now()
	if err := deps.Travel.Save(ctx, p); err != nil {
		return domainTravel.Period{}, err
	}
	slog.Info("travel_period_saved", "account_id", p.AccountID, "nights", p.Nights())
	return p, nil
}

// ExecuteClearTravelPeriod removes the account's trip window.
func ExecuteClearTravelPeriod(ctx context.Context, accountID string, deps TravelDeps) error {
	if err := deps.Travel.Delete(ctx, accountID); err != nil {
		return err
	}
	slog.Info("travel_period_cleared", "account_id", accountID)
	return nil
}
