package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCategory    = errors.New("ticket category must be one of ADULT, CHILD or INFANT")
	ErrInvalidCount       = errors.New("number of tickets must be greater than zero")
	ErrInvalidAccount     = errors.New("account ID must be greater than zero")
	ErrNoRequests         = errors.New("no ticket requests provided")
	ErrNoTicketsRequested = errors.New("at least one ticket must be purchased")
	ErrTooManyTickets     = errors.New("too many tickets requested")
	ErrMissingAdult       = errors.New("child or infant tickets cannot be purchased without an adult ticket")
	ErrTooManyInfants     = errors.New("each infant must be accompanied by an adult")
)

// TooManyTicketsError reports the purchase limit that was exceeded.
type TooManyTicketsError struct {
	Max       int
	Requested int
}

func (e *TooManyTicketsError) Error() string {
	return fmt.Sprintf("maximum of %d tickets per purchase, %d requested", e.Max, e.Requested)
}

func (e *TooManyTicketsError) Unwrap() error {
	return ErrTooManyTickets
}

type Rule string

const (
	RuleInvalidCategory    Rule = "INVALID_CATEGORY"
	RuleInvalidCount       Rule = "INVALID_COUNT"
	RuleInvalidAccount     Rule = "INVALID_ACCOUNT"
	RuleNoRequests         Rule = "NO_REQUESTS"
	RuleNoTicketsRequested Rule = "NO_TICKETS_REQUESTED"
	RuleTooManyTickets     Rule = "TOO_MANY_TICKETS"
	RuleMissingAdult       Rule = "MISSING_ADULT"
	RuleTooManyInfants     Rule = "TOO_MANY_INFANTS"
)

var ruleErrors = []struct {
	err  error
	rule Rule
}{
	{ErrInvalidCategory, RuleInvalidCategory},
	{ErrInvalidCount, RuleInvalidCount},
	{ErrInvalidAccount, RuleInvalidAccount},
	{ErrNoRequests, RuleNoRequests},
	{ErrNoTicketsRequested, RuleNoTicketsRequested},
	{ErrTooManyTickets, RuleTooManyTickets},
	{ErrMissingAdult, RuleMissingAdult},
	{ErrTooManyInfants, RuleTooManyInfants},
}

// RuleOf returns the purchase rule violated by err, if any.
func RuleOf(err error) (Rule, bool) {
	for _, re := range ruleErrors {
		if errors.Is(err, re.err) {
			return re.rule, true
		}
	}

	return "", false
}

// IsRejection reports whether err is a rule violation rather than a collaborator failure.
func IsRejection(err error) bool {
	_, ok := RuleOf(err)
	return ok
}
