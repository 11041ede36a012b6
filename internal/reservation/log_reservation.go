package reservation

import (
	"context"
	"log/slog"

	"github.com/metinatakli/cinema-tickets/internal/domain"
)

// LogSeatReservationService accepts every reservation and only logs it.
type LogSeatReservationService struct {
	logger *slog.Logger
}

func NewLogSeatReservationService(logger *slog.Logger) *LogSeatReservationService {
	return &LogSeatReservationService{logger: logger}
}

func (l *LogSeatReservationService) ReserveSeats(ctx context.Context, accountID int64, seats int) error {
	attrs := []any{"account_id", accountID, "seats", seats}
	if purchaseID, ok := domain.PurchaseIDFromContext(ctx); ok {
		attrs = append(attrs, "purchase_id", purchaseID.String())
	}

	l.logger.InfoContext(ctx, "seats reserved", attrs...)

	return nil
}
