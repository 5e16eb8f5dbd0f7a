// Package validation checks loan parameters and payment records for domain
// validity before any calculation proceeds. Validators never fail with an
// error; they return a (possibly empty) list of violations and the caller
// treats an empty list as valid.
package validation

import (
	"fmt"

	"github.com/finwork/loancalc/internal/domain"
	"github.com/shopspring/decimal"
)

var maxInterestRate = decimal.NewFromInt(100)

// ValidateLoanParameters returns every constraint violated by params.
func ValidateLoanParameters(params domain.LoanParameters) []domain.ValidationError {
	var errs []domain.ValidationError

	if params.Principal.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, domain.ValidationError{
			Field:   "principal",
			Message: fmt.Sprintf("principal must be greater than zero, got %s", params.Principal),
			Code:    domain.CodeInvalidPrincipal,
		})
	}
	if params.AnnualInterestRate.IsNegative() {
		errs = append(errs, domain.ValidationError{
			Field:   "annualInterestRate",
			Message: fmt.Sprintf("interest rate cannot be negative, got %s", params.AnnualInterestRate),
			Code:    domain.CodeInvalidInterestRate,
		})
	} else if params.AnnualInterestRate.GreaterThan(maxInterestRate) {
		errs = append(errs, domain.ValidationError{
			Field:   "annualInterestRate",
			Message: fmt.Sprintf("interest rate cannot exceed 100%%, got %s", params.AnnualInterestRate),
			Code:    domain.CodeExcessiveInterestRate,
		})
	}
	if params.TermMonths < 1 {
		errs = append(errs, domain.ValidationError{
			Field:   "termMonths",
			Message: fmt.Sprintf("term must be at least one month, got %d", params.TermMonths),
			Code:    domain.CodeInvalidTerm,
		})
	}

	return errs
}

// ValidatePaymentRecords returns a violation for every payment whose amount
// is not positive.
func ValidatePaymentRecords(payments []domain.PaymentRecord) []domain.ValidationError {
	var errs []domain.ValidationError

	for i, p := range payments {
		if p.Amount.LessThanOrEqual(decimal.Zero) {
			errs = append(errs, domain.ValidationError{
				Field:   fmt.Sprintf("payments[%d].amount", i),
				Message: fmt.Sprintf("payment amount must be greater than zero, got %s", p.Amount),
				Code:    domain.CodeInvalidPaymentAmount,
			})
		}
	}

	return errs
}
