package payment

import (
	"context"
	"fmt"
	"strconv"

	"github.com/metinatakli/cinema-tickets/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

var minorUnitsPerMajor = decimal.NewFromInt(100)

type StripePaymentService struct {
	currency      string
	paymentMethod string

	// createPaymentIntent is swapped out in tests
	createPaymentIntent func(*stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

func NewStripePaymentService(currency, paymentMethod string) *StripePaymentService {
	return &StripePaymentService{
		currency:            currency,
		paymentMethod:       paymentMethod,
		createPaymentIntent: paymentintent.New,
	}
}

// MakePayment charges the account by creating and confirming a payment intent for
// the whole purchase amount.
func (s *StripePaymentService) MakePayment(ctx context.Context, accountID int64, amount int) error {
	params := s.paymentIntentParams(ctx, accountID, amount)

	pi, err := s.createPaymentIntent(params)
	if err != nil {
		return fmt.Errorf("failed to create payment intent: %w", err)
	}

	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded, stripe.PaymentIntentStatusProcessing:
		return nil
	default:
		return fmt.Errorf("payment intent %s ended in status %q", pi.ID, pi.Status)
	}
}

func (s *StripePaymentService) paymentIntentParams(ctx context.Context, accountID int64, amount int) *stripe.PaymentIntentParams {
	account := strconv.FormatInt(accountID, 10)

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(toMinorUnits(amount)),
		Currency:      stripe.String(s.currency),
		PaymentMethod: stripe.String(s.paymentMethod),
		Confirm:       stripe.Bool(true),
		Description:   stripe.String(fmt.Sprintf("Cinema tickets for account %s", account)),
	}
	params.Context = ctx

	params.AddMetadata("account_id", account)

	if purchaseID, ok := domain.PurchaseIDFromContext(ctx); ok {
		params.AddMetadata("purchase_id", purchaseID.String())
	}

	return params
}

func toMinorUnits(amount int) int64 {
	return decimal.NewFromInt(int64(amount)).Mul(minorUnitsPerMajor).IntPart()
}
