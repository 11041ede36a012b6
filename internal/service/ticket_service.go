package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/metinatakli/cinema-tickets/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/metinatakli/cinema-tickets/internal/service"

const (
	outcomeCompleted = "completed"
	outcomeRejected  = "rejected"
	outcomeFailed    = "failed"
)

// TicketService validates a purchase, prices it and hands payment and seat
// reservation over to the collaborators. It keeps no state between calls.
type TicketService struct {
	logger      *slog.Logger
	payments    domain.PaymentService
	reservation domain.SeatReservationService

	tracer    trace.Tracer
	purchases metric.Int64Counter
	sold      metric.Int64Counter
}

func NewTicketService(
	logger *slog.Logger,
	payments domain.PaymentService,
	reservation domain.SeatReservationService) (*TicketService, error) {

	meter := otel.Meter(instrumentationName)

	purchases, err := meter.Int64Counter(
		"tickets.purchases",
		metric.WithDescription("Purchase attempts by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create purchases counter: %w", err)
	}

	sold, err := meter.Int64Counter(
		"tickets.sold",
		metric.WithDescription("Tickets sold by category"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sold counter: %w", err)
	}

	return &TicketService{
		logger:      logger,
		payments:    payments,
		reservation: reservation,
		tracer:      otel.Tracer(instrumentationName),
		purchases:   purchases,
		sold:        sold,
	}, nil
}

// PurchaseTickets either charges the account and reserves its seats, in that order,
// or returns the first rule the purchase breaks without calling anything.
func (s *TicketService) PurchaseTickets(
	ctx context.Context,
	accountID int64,
	requests []domain.TicketRequest) (domain.PurchaseOutcome, error) {

	ctx, span := s.tracer.Start(ctx, "TicketService.PurchaseTickets",
		trace.WithAttributes(attribute.Int64("account.id", accountID)))
	defer span.End()

	outcome, err := s.validate(accountID, requests)
	if err != nil {
		s.reject(ctx, span, accountID, err)
		return domain.PurchaseOutcome{}, err
	}

	outcome.ID = uuid.New()
	ctx = domain.ContextWithPurchaseID(ctx, outcome.ID)

	span.SetAttributes(
		attribute.String("purchase.id", outcome.ID.String()),
		attribute.Int("purchase.amount", outcome.TotalAmount),
		attribute.Int("purchase.seats", outcome.TotalSeats),
	)

	s.logPurchaseDetails(ctx, outcome)

	err = s.payments.MakePayment(ctx, accountID, outcome.TotalAmount)
	if err != nil {
		err = fmt.Errorf("payment for purchase %s failed: %w", outcome.ID, err)
		s.fail(ctx, span, err)
		return domain.PurchaseOutcome{}, err
	}

	err = s.reservation.ReserveSeats(ctx, accountID, outcome.TotalSeats)
	if err != nil {
		err = fmt.Errorf("seat reservation for purchase %s failed: %w", outcome.ID, err)
		s.fail(ctx, span, err)
		return domain.PurchaseOutcome{}, err
	}

	s.purchases.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcomeCompleted)))
	s.recordSold(ctx, outcome)

	s.logger.InfoContext(ctx, "ticket purchase completed",
		"purchase_id", outcome.ID.String(),
		"account_id", accountID,
	)

	return outcome, nil
}

func (s *TicketService) validate(accountID int64, requests []domain.TicketRequest) (domain.PurchaseOutcome, error) {
	if accountID <= 0 {
		return domain.PurchaseOutcome{}, domain.ErrInvalidAccount
	}

	if len(requests) == 0 {
		return domain.PurchaseOutcome{}, domain.ErrNoRequests
	}

	outcome := domain.Aggregate(requests)
	outcome.AccountID = accountID

	err := outcome.Validate()
	if err != nil {
		return domain.PurchaseOutcome{}, err
	}

	return outcome, nil
}

func (s *TicketService) reject(ctx context.Context, span trace.Span, accountID int64, err error) {
	rule, _ := domain.RuleOf(err)

	span.SetAttributes(attribute.String("purchase.rule", string(rule)))
	span.SetStatus(codes.Error, "purchase rejected")

	s.purchases.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcomeRejected),
		attribute.String("rule", string(rule)),
	))

	s.logger.WarnContext(ctx, "ticket purchase rejected",
		"account_id", accountID,
		"rule", string(rule),
		"reason", err.Error(),
	)
}

func (s *TicketService) fail(ctx context.Context, span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, "purchase failed")

	s.purchases.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcomeFailed)))

	s.logger.ErrorContext(ctx, "ticket purchase failed", "error", err)
}

func (s *TicketService) recordSold(ctx context.Context, outcome domain.PurchaseOutcome) {
	counts := map[domain.TicketCategory]int{
		domain.TicketCategoryAdult:  outcome.AdultTickets,
		domain.TicketCategoryChild:  outcome.ChildTickets,
		domain.TicketCategoryInfant: outcome.InfantTickets,
	}

	for category, n := range counts {
		if n == 0 {
			continue
		}

		s.sold.Add(ctx, int64(n), metric.WithAttributes(attribute.String("category", category.String())))
	}
}

func (s *TicketService) logPurchaseDetails(ctx context.Context, outcome domain.PurchaseOutcome) {
	s.logger.InfoContext(ctx, "processing ticket purchase",
		"purchase_id", outcome.ID.String(),
		"account_id", outcome.AccountID,
		"total_tickets", outcome.TotalTickets,
		"total_amount", outcome.TotalAmount,
		"total_seats", outcome.TotalSeats,
		slog.Group("tickets",
			"adult", outcome.AdultTickets,
			"child", outcome.ChildTickets,
			"infant", outcome.InfantTickets,
		),
	)
}
