package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Machine codes carried by ValidationError. Blocking codes stop a
// calculation; advisory codes are informational and callers decide
// severity by code.
const (
	CodeInvalidPrincipal      = "INVALID_PRINCIPAL"
	CodeInvalidInterestRate   = "INVALID_INTEREST_RATE"
	CodeExcessiveInterestRate = "EXCESSIVE_INTEREST_RATE"
	CodeInvalidTerm           = "INVALID_TERM"
	CodeInvalidPaymentAmount  = "INVALID_PAYMENT_AMOUNT"

	// Advisory codes (interest-only strategy).
	CodeZeroInterestRate = "ZERO_INTEREST_RATE"
	CodeExcessiveTerm    = "EXCESSIVE_TERM"
	CodeLargeLoanAmount  = "LARGE_LOAN_AMOUNT"

	// Unexpected computation failures.
	CodeCalculationError        = "CALCULATION_ERROR"
	CodeScheduleGenerationError = "SCHEDULE_GENERATION_ERROR"
	CodeBalanceCalculationError = "BALANCE_CALCULATION_ERROR"
)

// ValidationError describes one violated input constraint.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (e ValidationError) String() string {
	return fmt.Sprintf("%s: %s (%s)", e.Field, e.Message, e.Code)
}

// CalculationResult is a tagged success/failure outcome: either Value is
// populated, or Errors holds a non-empty list of violations.
type CalculationResult[T any] struct {
	Value  T                 `json:"value,omitempty"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// Success wraps a computed value in a passing result.
func Success[T any](v T) CalculationResult[T] {
	return CalculationResult[T]{Value: v}
}

// Failure wraps one or more validation errors in a failing result.
func Failure[T any](errs ...ValidationError) CalculationResult[T] {
	return CalculationResult[T]{Errors: errs}
}

// Ok reports whether the result carries a value rather than errors.
func (r CalculationResult[T]) Ok() bool { return len(r.Errors) == 0 }

// PaymentCalculation is the result of computing the required periodic
// payment for a loan. Monetary fields are rounded to 2 places.
type PaymentCalculation struct {
	PaymentAmount    decimal.Decimal  `json:"payment_amount"`
	TotalPayments    int64            `json:"total_payments"`
	PaymentFrequency PaymentFrequency `json:"payment_frequency"`
	TotalInterest    decimal.Decimal  `json:"total_interest"`
	TotalAmount      decimal.Decimal  `json:"total_amount"`
}

// ScheduleEntry is one period in an amortization schedule.
type ScheduleEntry struct {
	PaymentNumber      int64           `json:"payment_number"`
	PaymentAmount      decimal.Decimal `json:"payment_amount"`
	PrincipalAmount    decimal.Decimal `json:"principal_amount"`
	InterestAmount     decimal.Decimal `json:"interest_amount"`
	RemainingBalance   decimal.Decimal `json:"remaining_balance"`
	CumulativeInterest decimal.Decimal `json:"cumulative_interest"`
}

// ScheduleSummary aggregates an amortization schedule.
type ScheduleSummary struct {
	TotalPayments  int64           `json:"total_payments"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	AveragePayment decimal.Decimal `json:"average_payment"`
}

// AmortizationSchedule is a full period-by-period breakdown of a loan.
// Entries are ordered by PaymentNumber starting at 1 and the final entry's
// RemainingBalance is zero.
type AmortizationSchedule struct {
	Entries []ScheduleEntry `json:"entries"`
	Summary ScheduleSummary `json:"summary"`
}

// BalanceCalculation is the current standing of a loan given its payment
// history.
type BalanceCalculation struct {
	CurrentBalance     decimal.Decimal `json:"current_balance"`
	TotalPrincipalPaid decimal.Decimal `json:"total_principal_paid"`
	TotalInterestPaid  decimal.Decimal `json:"total_interest_paid"`
	PaymentsMade       int             `json:"payments_made"`
	PaymentsRemaining  int64           `json:"payments_remaining"`
	PercentagePaid     decimal.Decimal `json:"percentage_paid"`
}
