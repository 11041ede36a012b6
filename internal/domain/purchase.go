package domain

import (
	"context"
	"math"

	"github.com/google/uuid"
)

const MaxTicketsPerPurchase = 25

type PurchaseOutcome struct {
	ID            uuid.UUID
	AccountID     int64
	TotalTickets  int
	TotalAmount   int
	TotalSeats    int
	AdultTickets  int
	ChildTickets  int
	InfantTickets int
}

// Aggregate sums the requests by category in a single pass. Entries that are not
// valid ticket requests contribute nothing. Once the running total passes
// MaxTicketsPerPurchase only TotalTickets keeps growing, saturating at math.MaxInt,
// so the outcome always fails Validate with the ticket limit.
func Aggregate(requests []TicketRequest) PurchaseOutcome {
	var outcome PurchaseOutcome

	for _, request := range requests {
		if !request.valid() {
			continue
		}

		outcome.TotalTickets = saturatingAdd(outcome.TotalTickets, request.count)
		if outcome.TotalTickets > MaxTicketsPerPurchase {
			continue
		}

		switch request.category {
		case TicketCategoryAdult:
			outcome.AdultTickets += request.count
		case TicketCategoryChild:
			outcome.ChildTickets += request.count
		case TicketCategoryInfant:
			outcome.InfantTickets += request.count
		}

		outcome.TotalAmount += request.count * UnitPrice(request.category)

		if OccupiesSeat(request.category) {
			outcome.TotalSeats += request.count
		}
	}

	return outcome
}

// saturatingAdd adds two non-negative counts without wrapping.
func saturatingAdd(a, b int) int {
	if b > math.MaxInt-a {
		return math.MaxInt
	}
	return a + b
}

// Validate checks the aggregated totals against the purchase rules and returns the
// first violation found.
func (o PurchaseOutcome) Validate() error {
	if o.TotalTickets == 0 {
		return ErrNoTicketsRequested
	}

	if o.TotalTickets > MaxTicketsPerPurchase {
		return &TooManyTicketsError{Max: MaxTicketsPerPurchase, Requested: o.TotalTickets}
	}

	if o.AdultTickets == 0 && (o.ChildTickets > 0 || o.InfantTickets > 0) {
		return ErrMissingAdult
	}

	if o.InfantTickets > o.AdultTickets {
		return ErrTooManyInfants
	}

	return nil
}

type purchaseIDKey struct{}

// ContextWithPurchaseID attaches the purchase reference to ctx so collaborators can
// tag their side of the transaction with it.
func ContextWithPurchaseID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, purchaseIDKey{}, id)
}

func PurchaseIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(purchaseIDKey{}).(uuid.UUID)
	return id, ok
}
