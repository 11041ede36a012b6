package app

import (
	"net/http"
	"strings"

	"github.com/metinatakli/cinema-tickets/api"
	"github.com/metinatakli/cinema-tickets/internal/domain"
	"github.com/shopspring/decimal"
)

func (app *Application) GetPrices(w http.ResponseWriter, r *http.Request) {
	prices := make([]api.TicketPrice, 0, len(domain.TicketCategories))
	for _, category := range domain.TicketCategories {
		prices = append(prices, api.TicketPrice{
			Type:         api.TicketType(category.String()),
			UnitPrice:    decimal.NewFromInt(int64(domain.UnitPrice(category))),
			OccupiesSeat: domain.OccupiesSeat(category),
		})
	}

	resp := api.PriceListResponse{
		Currency:              strings.ToUpper(app.config.Currency),
		MaxTicketsPerPurchase: domain.MaxTicketsPerPurchase,
		Prices:                prices,
	}

	err := app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
