package payouts

import (
	"context"
	"time"

	"prologue-backend/internal/domain/users"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// SettlementCurrency is the platform's settlement currency.
const SettlementCurrency = "usd"

// Backend is the slice of the payments vendor the batch job needs.
type Backend interface {
	// AvailableBalance returns the connected account's available balance in
	// the given currency, in minor units.
	AvailableBalance(ctx context.Context, accountID, currency string) (int64, error)
	// CreatePayout issues a payout on the connected account for the full
	// amount. The idempotency key makes a retried batch run safe.
	CreatePayout(ctx context.Context, accountID string, amountCents int64, idempotencyKey string) (*CreatedPayout, error)
}

// CreatedPayout is the vendor's view of a freshly issued payout.
type CreatedPayout struct {
	ID          string
	Status      string
	AmountCents int64
	ArrivalDate time.Time
}

// Result is one entry of the batch results array. Amount is in major units.
type Result struct {
	AthleteID uint    `json:"athleteId"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"` // "success" | "error"
	PayoutID  string  `json:"payoutId,omitempty"`
	Error     string  `json:"error,omitempty"`
}

// Service runs the scheduled payout batch: every creator with a
// payout-capable account gets their full available balance paid out.
type Service struct {
	db      *gorm.DB
	backend Backend
	log     zerolog.Logger
}

func NewService(db *gorm.DB, backend Backend, log zerolog.Logger) *Service {
	return &Service{db: db, backend: backend, log: log}
}

// Run processes creators sequentially. A failure on one creator is recorded
// in its result entry and never aborts the batch. Zero balances are skipped.
func (s *Service) Run(ctx context.Context) ([]Result, error) {
	var creators []users.User
	if err := s.db.
		Where("stripe_account_id IS NOT NULL AND payouts_enabled = ?", true).
		Order("id ASC").
		Find(&creators).Error; err != nil {
		return nil, err
	}

	results := []Result{}
	for _, creator := range creators {
		accountID := *creator.StripeAccountID

		available, err := s.backend.AvailableBalance(ctx, accountID, SettlementCurrency)
		if err != nil {
			s.log.Error().Err(err).Uint("athlete_id", creator.ID).Msg("balance fetch failed")
			results = append(results, Result{AthleteID: creator.ID, Status: "error", Error: err.Error()})
			continue
		}
		if available <= 0 {
			s.log.Debug().Uint("athlete_id", creator.ID).Msg("no available balance, skipping")
			continue
		}

		created, err := s.backend.CreatePayout(ctx, accountID, available, uuid.NewString())
		if err != nil {
			s.log.Error().Err(err).Uint("athlete_id", creator.ID).Int64("amount_cents", available).Msg("payout failed")
			results = append(results, Result{
				AthleteID: creator.ID,
				Amount:    float64(available) / 100.0,
				Status:    "error",
				Error:     err.Error(),
			})
			continue
		}

		record := Payout{
			StripePayoutID: created.ID,
			AthleteID:      creator.ID,
			AmountCents:    created.AmountCents,
			Currency:       SettlementCurrency,
			Status:         created.Status,
			ArrivalDate:    created.ArrivalDate,
		}
		if err := s.db.Create(&record).Error; err != nil {
			// The payout went through; the audit row is recoverable from Stripe.
			s.log.Error().Err(err).Str("payout_id", created.ID).Msg("failed to record payout")
		}

		s.log.Info().Uint("athlete_id", creator.ID).Str("payout_id", created.ID).
			Int64("amount_cents", created.AmountCents).Msg("payout issued for full available balance")

		results = append(results, Result{
			AthleteID: creator.ID,
			Amount:    float64(created.AmountCents) / 100.0,
			Status:    "success",
			PayoutID:  created.ID,
		})
	}

	return results, nil
}
