package stripe

import (
	"context"
	"time"

	"prologue-backend/internal/domain/payouts"

	stripego "github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/balance"
	"github.com/stripe/stripe-go/v75/payout"
)

// ConnectBackend implements payouts.Backend against live connected accounts.
type ConnectBackend struct{}

var _ payouts.Backend = ConnectBackend{}

func (ConnectBackend) AvailableBalance(ctx context.Context, accountID, currency string) (int64, error) {
	params := &stripego.BalanceParams{}
	params.Context = ctx
	params.StripeAccount = stripego.String(accountID)

	b, err := balance.Get(params)
	if err != nil {
		return 0, err
	}
	for _, amt := range b.Available {
		if string(amt.Currency) == currency {
			return amt.Amount, nil
		}
	}
	return 0, nil
}

func (ConnectBackend) CreatePayout(ctx context.Context, accountID string, amountCents int64, idempotencyKey string) (*payouts.CreatedPayout, error) {
	params := &stripego.PayoutParams{
		Amount:   stripego.Int64(amountCents),
		Currency: stripego.String(payouts.SettlementCurrency),
	}
	params.Context = ctx
	params.StripeAccount = stripego.String(accountID)
	params.SetIdempotencyKey(idempotencyKey)

	p, err := payout.New(params)
	if err != nil {
		return nil, err
	}
	return &payouts.CreatedPayout{
		ID:          p.ID,
		Status:      string(p.Status),
		AmountCents: p.Amount,
		ArrivalDate: time.Unix(p.ArrivalDate, 0),
	}, nil
}
