package domain

import "strings"

type TicketCategory int

const (
	TicketCategoryAdult TicketCategory = iota + 1
	TicketCategoryChild
	TicketCategoryInfant
)

var ticketCategoryNames = map[TicketCategory]string{
	TicketCategoryAdult:  "ADULT",
	TicketCategoryChild:  "CHILD",
	TicketCategoryInfant: "INFANT",
}

// TicketCategories lists every category in price-table order.
var TicketCategories = []TicketCategory{
	TicketCategoryAdult,
	TicketCategoryChild,
	TicketCategoryInfant,
}

func (c TicketCategory) String() string {
	if name, ok := ticketCategoryNames[c]; ok {
		return name
	}

	return "UNKNOWN"
}

func (c TicketCategory) Valid() bool {
	_, ok := ticketCategoryNames[c]
	return ok
}

func ParseTicketCategory(s string) (TicketCategory, error) {
	name := strings.ToUpper(strings.TrimSpace(s))

	for category, v := range ticketCategoryNames {
		if v == name {
			return category, nil
		}
	}

	return 0, ErrInvalidCategory
}

// UnitPrice returns the price of a single ticket of the given category.
// Unknown categories cost nothing.
func UnitPrice(c TicketCategory) int {
	switch c {
	case TicketCategoryAdult:
		return 25
	case TicketCategoryChild:
		return 15
	default:
		return 0
	}
}

// OccupiesSeat reports whether a ticket of the given category needs its own seat.
// Infants sit on an accompanying adult's lap.
func OccupiesSeat(c TicketCategory) bool {
	return c == TicketCategoryAdult || c == TicketCategoryChild
}

type TicketRequest struct {
	category TicketCategory
	count    int
}

func NewTicketRequest(category TicketCategory, count int) (TicketRequest, error) {
	if !category.Valid() {
		return TicketRequest{}, ErrInvalidCategory
	}

	if count <= 0 {
		return TicketRequest{}, ErrInvalidCount
	}

	return TicketRequest{category: category, count: count}, nil
}

func (r TicketRequest) Category() TicketCategory {
	return r.category
}

func (r TicketRequest) Count() int {
	return r.count
}

func (r TicketRequest) valid() bool {
	return r.category.Valid() && r.count > 0
}
