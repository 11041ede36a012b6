package mocks

import (
	"context"

	"github.com/metinatakli/cinema-tickets/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockTicketService struct {
	mock.Mock
	domain.TicketService
}

func (m *MockTicketService) PurchaseTickets(
	ctx context.Context,
	accountID int64,
	requests []domain.TicketRequest) (domain.PurchaseOutcome, error) {

	args := m.Called(ctx, accountID, requests)
	return args.Get(0).(domain.PurchaseOutcome), args.Error(1)
}
