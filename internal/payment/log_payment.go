package payment

import (
	"context"
	"log/slog"
	"sync"

	"github.com/metinatakli/cinema-tickets/internal/domain"
)

// Payment represents a payment taken by LogPaymentService
type Payment struct {
	AccountID int64
	Amount    int
}

// LogPaymentService accepts every payment and only logs it. It stands in for the
// payment gateway when no Stripe key is configured.
type LogPaymentService struct {
	logger *slog.Logger

	mu       sync.RWMutex
	payments []Payment
}

func NewLogPaymentService(logger *slog.Logger) *LogPaymentService {
	return &LogPaymentService{
		logger:   logger,
		payments: make([]Payment, 0),
	}
}

func (l *LogPaymentService) MakePayment(ctx context.Context, accountID int64, amount int) error {
	l.mu.Lock()
	l.payments = append(l.payments, Payment{AccountID: accountID, Amount: amount})
	l.mu.Unlock()

	attrs := []any{"account_id", accountID, "amount", amount}
	if purchaseID, ok := domain.PurchaseIDFromContext(ctx); ok {
		attrs = append(attrs, "purchase_id", purchaseID.String())
	}

	l.logger.InfoContext(ctx, "payment accepted", attrs...)

	return nil
}

// Payments returns a copy of all payments taken
func (l *LogPaymentService) Payments() []Payment {
	l.mu.RLock()
	defer l.mu.RUnlock()

	payments := make([]Payment, len(l.payments))
	copy(payments, l.payments)
	return payments
}
