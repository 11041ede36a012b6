package domain

import "context"

type PaymentService interface {
	MakePayment(ctx context.Context, accountID int64, amount int) error
}

type SeatReservationService interface {
	ReserveSeats(ctx context.Context, accountID int64, seats int) error
}

type TicketService interface {
	PurchaseTickets(ctx context.Context, accountID int64, requests []TicketRequest) (PurchaseOutcome, error)
}
