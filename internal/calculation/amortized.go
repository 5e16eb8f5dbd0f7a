package calculation

import (
	"github.com/finwork/loancalc/internal/domain"
	"github.com/finwork/loancalc/internal/validation"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// AmortizedStrategy implements the standard fixed-payment amortization
// formula: payment = P * r * (1+r)^n / ((1+r)^n - 1), with interest
// recomputed on the declining balance each period.
type AmortizedStrategy struct{}

// NewAmortizedStrategy creates a fixed-payment amortization strategy.
func NewAmortizedStrategy() *AmortizedStrategy { return &AmortizedStrategy{} }

func (s *AmortizedStrategy) Name() domain.CalculationType { return domain.TypeAmortized }

// periodicPayment computes the fixed payment at full precision. Zero-rate
// loans fall back to an even principal split to avoid dividing by zero.
func (s *AmortizedStrategy) periodicPayment(params domain.LoanParameters) decimal.Decimal {
	n := params.TotalPayments()
	rate := params.PeriodicRate()
	if rate.IsZero() {
		return params.Principal.Div(decimal.NewFromInt(n))
	}
	factor := one.Add(rate).Pow(decimal.NewFromInt(n))
	return params.Principal.Mul(rate).Mul(factor).Div(factor.Sub(one))
}

func (s *AmortizedStrategy) CalculatePayment(params domain.LoanParameters) domain.CalculationResult[domain.PaymentCalculation] {
	if errs := validation.ValidateLoanParameters(params); len(errs) > 0 {
		return domain.Failure[domain.PaymentCalculation](errs...)
	}

	n := params.TotalPayments()
	payment := s.periodicPayment(params)
	totalAmount := payment.Mul(decimal.NewFromInt(n))
	totalInterest := totalAmount.Sub(params.Principal)

	return domain.Success(domain.PaymentCalculation{
		PaymentAmount:    domain.RoundMoney(payment),
		TotalPayments:    n,
		PaymentFrequency: params.PaymentFrequency,
		TotalInterest:    domain.RoundMoney(totalInterest),
		TotalAmount:      domain.RoundMoney(totalAmount),
	})
}

func (s *AmortizedStrategy) GenerateSchedule(params domain.LoanParameters) domain.CalculationResult[domain.AmortizationSchedule] {
	if errs := validation.ValidateLoanParameters(params); len(errs) > 0 {
		return domain.Failure[domain.AmortizationSchedule](errs...)
	}

	n := params.TotalPayments()
	rate := params.PeriodicRate()
	payment := s.periodicPayment(params)

	entries := make([]domain.ScheduleEntry, 0, n)
	remaining := params.Principal
	cumulativeInterest := decimal.Zero

	for i := int64(1); i <= n; i++ {
		interest := remaining.Mul(rate)
		principal := payment.Sub(interest)
		periodPayment := payment
		if i == n {
			// Final period absorbs the rounding residue so the balance
			// lands exactly at zero.
			principal = remaining
			periodPayment = principal.Add(interest)
		}
		remaining = remaining.Sub(principal)
		cumulativeInterest = cumulativeInterest.Add(interest)

		entries = append(entries, domain.ScheduleEntry{
			PaymentNumber:      i,
			PaymentAmount:      domain.RoundMoney(periodPayment),
			PrincipalAmount:    domain.RoundMoney(principal),
			InterestAmount:     domain.RoundMoney(interest),
			RemainingBalance:   domain.RoundMoney(remaining),
			CumulativeInterest: domain.RoundMoney(cumulativeInterest),
		})
	}

	totalAmount := params.Principal.Add(cumulativeInterest)
	return domain.Success(domain.AmortizationSchedule{
		Entries: entries,
		Summary: domain.ScheduleSummary{
			TotalPayments:  n,
			TotalInterest:  domain.RoundMoney(cumulativeInterest),
			TotalAmount:    domain.RoundMoney(totalAmount),
			AveragePayment: domain.RoundMoney(totalAmount.Div(decimal.NewFromInt(n))),
		},
	})
}

func (s *AmortizedStrategy) CalculateBalance(params domain.LoanParameters, payments []domain.PaymentRecord) domain.CalculationResult[domain.BalanceCalculation] {
	errs := validateAll(validation.ValidateLoanParameters(params), validation.ValidatePaymentRecords(payments))
	if len(errs) > 0 {
		return domain.Failure[domain.BalanceCalculation](errs...)
	}

	rate := params.PeriodicRate()
	balance := params.Principal
	principalPaid := decimal.Zero
	interestPaid := decimal.Zero

	for _, p := range sortedPayments(payments) {
		// Interest due is recomputed on the balance outstanding when the
		// payment lands.
		interestDue := balance.Mul(rate)
		interestPortion, principalPortion := splitPayment(p.Amount, interestDue)
		interestPaid = interestPaid.Add(interestPortion)
		principalPaid = principalPaid.Add(principalPortion)
		balance = balance.Sub(principalPortion)
		if balance.IsNegative() {
			balance = decimal.Zero
		}
	}

	return domain.Success(finishBalance(params, principalPaid, interestPaid, len(payments)))
}
