package app

import (
	"net/http"
	"strings"

	"github.com/metinatakli/cinema-tickets/api"
	"github.com/metinatakli/cinema-tickets/internal/domain"
	"github.com/shopspring/decimal"
)

func (app *Application) PurchaseTickets(w http.ResponseWriter, r *http.Request) {
	var input api.PurchaseTicketsJSONRequestBody

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var accountID int64
	if input.AccountId != nil {
		accountID = *input.AccountId
	}

	// the account is checked before the ticket list is built so it is reported
	// whatever the tickets contain
	if accountID <= 0 {
		app.rejectionResponse(w, r, domain.ErrInvalidAccount)
		return
	}

	requests, err := toTicketRequests(input.Tickets)
	if err != nil {
		app.contextGetLogger(r).Info("ticket request rejected", "account_id", accountID, "error", err)
		app.rejectionResponse(w, r, err)
		return
	}

	outcome, err := app.ticketService.PurchaseTickets(r.Context(), accountID, requests)
	if err != nil {
		if domain.IsRejection(err) {
			app.rejectionResponse(w, r, err)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.PurchaseResponse{
		PurchaseId:    outcome.ID,
		AccountId:     outcome.AccountID,
		TotalTickets:  outcome.TotalTickets,
		TotalSeats:    outcome.TotalSeats,
		AdultTickets:  outcome.AdultTickets,
		ChildTickets:  outcome.ChildTickets,
		InfantTickets: outcome.InfantTickets,
		TotalAmount:   decimal.NewFromInt(int64(outcome.TotalAmount)),
		Currency:      strings.ToUpper(app.config.Currency),
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// toTicketRequests converts the wire tickets in order and stops at the first
// one that cannot be constructed. Missing fields behave like zero values.
func toTicketRequests(tickets *[]api.TicketRequest) ([]domain.TicketRequest, error) {
	if tickets == nil {
		return nil, nil
	}

	requests := make([]domain.TicketRequest, 0, len(*tickets))

	for _, t := range *tickets {
		var name string
		if t.Type != nil {
			name = *t.Type
		}

		var count int
		if t.Count != nil {
			count = *t.Count
		}

		category, err := domain.ParseTicketCategory(name)
		if err != nil {
			return nil, err
		}

		req, err := domain.NewTicketRequest(category, count)
		if err != nil {
			return nil, err
		}

		requests = append(requests, req)
	}

	return requests, nil
}
