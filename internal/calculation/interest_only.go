package calculation

import (
	"fmt"

	"github.com/finwork/loancalc/internal/domain"
	"github.com/finwork/loancalc/internal/validation"
	"github.com/shopspring/decimal"
)

// DefaultLargeLoanThreshold is the principal above which the interest-only
// strategy raises a LARGE_LOAN_AMOUNT advisory.
var DefaultLargeLoanThreshold = decimal.NewFromInt(1_000_000)

// maxAdvisableTermMonths is the term beyond which an EXCESSIVE_TERM
// advisory is raised.
const maxAdvisableTermMonths = 360

// InterestOnlyStrategy pays interest alone every period and settles the
// full principal as a balloon in the final period.
type InterestOnlyStrategy struct {
	// LargeLoanThreshold controls the LARGE_LOAN_AMOUNT advisory.
	LargeLoanThreshold decimal.Decimal
}

// NewInterestOnlyStrategy creates an interest-only strategy with the
// default large-loan threshold.
func NewInterestOnlyStrategy() *InterestOnlyStrategy {
	return &InterestOnlyStrategy{LargeLoanThreshold: DefaultLargeLoanThreshold}
}

func (s *InterestOnlyStrategy) Name() domain.CalculationType { return domain.TypeInterestOnly }

// Advisories flags conditions that deserve attention but do not block a
// calculation: a zero or near-zero rate, an unusually long term, and a
// principal above the large-loan threshold. Callers decide severity by
// code.
func (s *InterestOnlyStrategy) Advisories(params domain.LoanParameters) []domain.ValidationError {
	var advisories []domain.ValidationError

	if params.AnnualInterestRate.IsZero() {
		advisories = append(advisories, domain.ValidationError{
			Field:   "annualInterestRate",
			Message: "interest-only loan with a zero rate has no periodic payment until the balloon",
			Code:    domain.CodeZeroInterestRate,
		})
	}
	if params.TermMonths > maxAdvisableTermMonths {
		advisories = append(advisories, domain.ValidationError{
			Field:   "termMonths",
			Message: fmt.Sprintf("term of %d months exceeds the advisable maximum of %d", params.TermMonths, maxAdvisableTermMonths),
			Code:    domain.CodeExcessiveTerm,
		})
	}
	if params.Principal.GreaterThan(s.LargeLoanThreshold) {
		advisories = append(advisories, domain.ValidationError{
			Field:   "principal",
			Message: fmt.Sprintf("principal %s exceeds the large-loan threshold of %s", params.Principal, s.LargeLoanThreshold),
			Code:    domain.CodeLargeLoanAmount,
		})
	}

	return advisories
}

// periodicPayment is principal * periodic rate; the balloon is not part of
// the recurring payment.
func (s *InterestOnlyStrategy) periodicPayment(params domain.LoanParameters) decimal.Decimal {
	return params.Principal.Mul(params.PeriodicRate())
}

func (s *InterestOnlyStrategy) CalculatePayment(params domain.LoanParameters) domain.CalculationResult[domain.PaymentCalculation] {
	if errs := validation.ValidateLoanParameters(params); len(errs) > 0 {
		return domain.Failure[domain.PaymentCalculation](errs...)
	}

	n := params.TotalPayments()
	payment := s.periodicPayment(params)
	// The balloon repays principal only, so total interest is unchanged by
	// it.
	totalInterest := payment.Mul(decimal.NewFromInt(n))
	totalAmount := params.Principal.Add(totalInterest)

	return domain.Success(domain.PaymentCalculation{
		PaymentAmount:    domain.RoundMoney(payment),
		TotalPayments:    n,
		PaymentFrequency: params.PaymentFrequency,
		TotalInterest:    domain.RoundMoney(totalInterest),
		TotalAmount:      domain.RoundMoney(totalAmount),
	})
}

func (s *InterestOnlyStrategy) GenerateSchedule(params domain.LoanParameters) domain.CalculationResult[domain.AmortizationSchedule] {
	if errs := validation.ValidateLoanParameters(params); len(errs) > 0 {
		return domain.Failure[domain.AmortizationSchedule](errs...)
	}

	n := params.TotalPayments()
	payment := s.periodicPayment(params)

	entries := make([]domain.ScheduleEntry, 0, n)
	cumulativeInterest := decimal.Zero

	for i := int64(1); i <= n; i++ {
		principal := decimal.Zero
		periodPayment := payment
		remaining := params.Principal
		if i == n {
			// Balloon period: the full principal comes due alongside the
			// final interest payment.
			principal = params.Principal
			periodPayment = payment.Add(principal)
			remaining = decimal.Zero
		}
		cumulativeInterest = cumulativeInterest.Add(payment)

		entries = append(entries, domain.ScheduleEntry{
			PaymentNumber:      i,
			PaymentAmount:      domain.RoundMoney(periodPayment),
			PrincipalAmount:    domain.RoundMoney(principal),
			InterestAmount:     domain.RoundMoney(payment),
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

func (s *InterestOnlyStrategy) CalculateBalance(params domain.LoanParameters, payments []domain.PaymentRecord) domain.CalculationResult[domain.BalanceCalculation] {
	errs := validateAll(validation.ValidateLoanParameters(params), validation.ValidatePaymentRecords(payments))
	if len(errs) > 0 {
		return domain.Failure[domain.BalanceCalculation](errs...)
	}

	// A payment at or below the expected interest payment counts entirely
	// as interest; anything above it pays principal down ahead of the
	// balloon.
	expectedPayment := s.periodicPayment(params)

	principalPaid := decimal.Zero
	interestPaid := decimal.Zero
	for _, p := range sortedPayments(payments) {
		interestPortion, principalPortion := splitPayment(p.Amount, expectedPayment)
		interestPaid = interestPaid.Add(interestPortion)
		principalPaid = principalPaid.Add(principalPortion)
	}

	return domain.Success(finishBalance(params, principalPaid, interestPaid, len(payments)))
}
