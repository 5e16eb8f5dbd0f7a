package calculation

import (
	"github.com/finwork/loancalc/internal/domain"
	"github.com/finwork/loancalc/internal/validation"
	"github.com/shopspring/decimal"
)

// SimpleStrategy computes simple (non-compounding) interest: total interest
// is principal x annual rate x years, spread evenly across the term with
// the principal amortized linearly.
type SimpleStrategy struct{}

// NewSimpleStrategy creates a simple-interest strategy.
func NewSimpleStrategy() *SimpleStrategy { return &SimpleStrategy{} }

func (s *SimpleStrategy) Name() domain.CalculationType { return domain.TypeSimple }

// totalInterest is principal * (rate/100) * (termMonths/12), full precision.
func (s *SimpleStrategy) totalInterest(params domain.LoanParameters) decimal.Decimal {
	years := decimal.NewFromInt(int64(params.TermMonths)).Div(decimal.NewFromInt(12))
	return params.Principal.
		Mul(params.AnnualInterestRate.Div(decimal.NewFromInt(100))).
		Mul(years)
}

func (s *SimpleStrategy) CalculatePayment(params domain.LoanParameters) domain.CalculationResult[domain.PaymentCalculation] {
	if errs := validation.ValidateLoanParameters(params); len(errs) > 0 {
		return domain.Failure[domain.PaymentCalculation](errs...)
	}

	n := params.TotalPayments()
	totalInterest := s.totalInterest(params)
	totalAmount := params.Principal.Add(totalInterest)
	payment := totalAmount.Div(decimal.NewFromInt(n))

	return domain.Success(domain.PaymentCalculation{
		PaymentAmount:    domain.RoundMoney(payment),
		TotalPayments:    n,
		PaymentFrequency: params.PaymentFrequency,
		TotalInterest:    domain.RoundMoney(totalInterest),
		TotalAmount:      domain.RoundMoney(totalAmount),
	})
}

func (s *SimpleStrategy) GenerateSchedule(params domain.LoanParameters) domain.CalculationResult[domain.AmortizationSchedule] {
	if errs := validation.ValidateLoanParameters(params); len(errs) > 0 {
		return domain.Failure[domain.AmortizationSchedule](errs...)
	}

	n := params.TotalPayments()
	periods := decimal.NewFromInt(n)
	totalInterest := s.totalInterest(params)
	principalPerPeriod := params.Principal.Div(periods)
	interestPerPeriod := totalInterest.Div(periods)
	payment := principalPerPeriod.Add(interestPerPeriod)

	entries := make([]domain.ScheduleEntry, 0, n)
	remaining := params.Principal
	cumulativeInterest := decimal.Zero

	for i := int64(1); i <= n; i++ {
		principal := principalPerPeriod
		if i == n {
			// Final period absorbs the rounding residue so the balance
			// lands exactly at zero.
			principal = remaining
		}
		remaining = remaining.Sub(principal)
		cumulativeInterest = cumulativeInterest.Add(interestPerPeriod)

		entries = append(entries, domain.ScheduleEntry{
			PaymentNumber:      i,
			PaymentAmount:      domain.RoundMoney(principal.Add(interestPerPeriod)),
			PrincipalAmount:    domain.RoundMoney(principal),
			InterestAmount:     domain.RoundMoney(interestPerPeriod),
			RemainingBalance:   domain.RoundMoney(remaining),
			CumulativeInterest: domain.RoundMoney(cumulativeInterest),
		})
	}

	totalAmount := params.Principal.Add(totalInterest)
	return domain.Success(domain.AmortizationSchedule{
		Entries: entries,
		Summary: domain.ScheduleSummary{
			TotalPayments:  n,
			TotalInterest:  domain.RoundMoney(totalInterest),
			TotalAmount:    domain.RoundMoney(totalAmount),
			AveragePayment: domain.RoundMoney(payment),
		},
	})
}

func (s *SimpleStrategy) CalculateBalance(params domain.LoanParameters, payments []domain.PaymentRecord) domain.CalculationResult[domain.BalanceCalculation] {
	errs := validateAll(validation.ValidateLoanParameters(params), validation.ValidatePaymentRecords(payments))
	if len(errs) > 0 {
		return domain.Failure[domain.BalanceCalculation](errs...)
	}

	// Expected interest per period is flat for simple interest.
	interestDue := s.totalInterest(params).Div(decimal.NewFromInt(params.TotalPayments()))

	principalPaid := decimal.Zero
	interestPaid := decimal.Zero
	for _, p := range sortedPayments(payments) {
		interestPortion, principalPortion := splitPayment(p.Amount, interestDue)
		interestPaid = interestPaid.Add(interestPortion)
		principalPaid = principalPaid.Add(principalPortion)
	}

	return domain.Success(finishBalance(params, principalPaid, interestPaid, len(payments)))
}
