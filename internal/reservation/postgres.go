package reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/cinema-tickets/internal/domain"
)

var (
	ErrSeatCountRejected    = errors.New("seat reservation rejected by store constraints")
	ErrDuplicateReservation = errors.New("seats already reserved for this purchase")
)

type PostgresSeatReservationService struct {
	db *pgxpool.Pool
}

func NewPostgresSeatReservationService(db *pgxpool.Pool) *PostgresSeatReservationService {
	return &PostgresSeatReservationService{
		db: db,
	}
}

func (p *PostgresSeatReservationService) ReserveSeats(ctx context.Context, accountID int64, seats int) error {
	query := `
		INSERT INTO seat_reservations (purchase_id, account_id, seat_count)
		VALUES ($1, $2, $3)
	`

	var purchaseID *string
	if id, ok := domain.PurchaseIDFromContext(ctx); ok {
		s := id.String()
		purchaseID = &s
	}

	_, err := p.db.Exec(ctx, query, purchaseID, accountID, seats)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.CheckViolation:
				return fmt.Errorf("%w: %s", ErrSeatCountRejected, pgErr.ConstraintName)
			case pgerrcode.UniqueViolation:
				return ErrDuplicateReservation
			}
		}

		return err
	}

	return nil
}
