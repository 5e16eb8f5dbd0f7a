// Package calculation implements the loan calculation engine: three
// amortization strategies behind one contract, a closed strategy registry,
// and the Engine that dispatches validated input to them.
package calculation

import (
	"sort"

	"github.com/finwork/loancalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Strategy is the contract shared by all amortization algorithms. Every
// method validates its input first and short-circuits with a failure result
// carrying the full list of violations; no method returns a partial
// computation.
type Strategy interface {
	// Name returns the calculation type this strategy implements.
	Name() domain.CalculationType
	// CalculatePayment computes the required periodic payment.
	CalculatePayment(params domain.LoanParameters) domain.CalculationResult[domain.PaymentCalculation]
	// GenerateSchedule produces the full period-by-period breakdown.
	GenerateSchedule(params domain.LoanParameters) domain.CalculationResult[domain.AmortizationSchedule]
	// CalculateBalance reconstructs the current standing from the payment
	// history, which may arrive in arbitrary order.
	CalculateBalance(params domain.LoanParameters, payments []domain.PaymentRecord) domain.CalculationResult[domain.BalanceCalculation]
}

// Logger is the engine's logging seam. The CLI wires a zap-backed
// implementation; the default is a no-op.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// sortedPayments returns the records in chronological order without
// mutating the caller's slice. Equal dates keep their input order.
func sortedPayments(payments []domain.PaymentRecord) []domain.PaymentRecord {
	sorted := append([]domain.PaymentRecord(nil), payments...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// splitPayment divides one payment against the interest due for its period:
// the interest portion is capped at interestDue, the remainder reduces
// principal.
func splitPayment(amount, interestDue decimal.Decimal) (interestPortion, principalPortion decimal.Decimal) {
	if amount.LessThanOrEqual(interestDue) {
		return amount, decimal.Zero
	}
	return interestDue, amount.Sub(interestDue)
}

// finishBalance applies the shared tail of balance reconstruction: clamping
// the balance at zero and deriving progress figures, rounded at the result
// boundary.
func finishBalance(params domain.LoanParameters, principalPaid, interestPaid decimal.Decimal, paymentsMade int) domain.BalanceCalculation {
	balance := params.Principal.Sub(principalPaid)
	if balance.IsNegative() {
		balance = decimal.Zero
	}
	remaining := params.TotalPayments() - int64(paymentsMade)
	if remaining < 0 {
		remaining = 0
	}
	percentage := principalPaid.Div(params.Principal).Mul(decimal.NewFromInt(100))

	return domain.BalanceCalculation{
		CurrentBalance:     domain.RoundMoney(balance),
		TotalPrincipalPaid: domain.RoundMoney(principalPaid),
		TotalInterestPaid:  domain.RoundMoney(interestPaid),
		PaymentsMade:       paymentsMade,
		PaymentsRemaining:  remaining,
		PercentagePaid:     percentage.Round(2),
	}
}

// validateAll collects parameter violations and, when payments are part of
// the operation, payment-record violations as well.
func validateAll(paramErrs, paymentErrs []domain.ValidationError) []domain.ValidationError {
	if len(paymentErrs) == 0 {
		return paramErrs
	}
	return append(append([]domain.ValidationError(nil), paramErrs...), paymentErrs...)
}
