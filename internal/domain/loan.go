package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentFrequency is the cadence at which loan payments are scheduled.
type PaymentFrequency string

const (
	FrequencyMonthly  PaymentFrequency = "MONTHLY"
	FrequencyBiWeekly PaymentFrequency = "BI_WEEKLY"
)

// CalculationType selects the amortization algorithm applied to a loan.
type CalculationType string

const (
	TypeSimple       CalculationType = "SIMPLE"
	TypeAmortized    CalculationType = "AMORTIZED"
	TypeInterestOnly CalculationType = "INTEREST_ONLY"
)

// ParsePaymentFrequency converts a string (case-insensitive) to a
// PaymentFrequency.
func ParsePaymentFrequency(s string) (PaymentFrequency, error) {
	switch PaymentFrequency(strings.ToUpper(strings.TrimSpace(s))) {
	case FrequencyMonthly:
		return FrequencyMonthly, nil
	case FrequencyBiWeekly:
		return FrequencyBiWeekly, nil
	default:
		return "", fmt.Errorf("unknown payment frequency %q (valid: MONTHLY, BI_WEEKLY)", s)
	}
}

// ParseCalculationType converts a string (case-insensitive) to a
// CalculationType.
func ParseCalculationType(s string) (CalculationType, error) {
	switch CalculationType(strings.ToUpper(strings.TrimSpace(s))) {
	case TypeSimple:
		return TypeSimple, nil
	case TypeAmortized:
		return TypeAmortized, nil
	case TypeInterestOnly:
		return TypeInterestOnly, nil
	default:
		return "", fmt.Errorf("unknown calculation type %q (valid: SIMPLE, AMORTIZED, INTEREST_ONLY)", s)
	}
}

// PeriodsPerYear returns the number of payment periods in a year for the
// frequency.
func (f PaymentFrequency) PeriodsPerYear() int64 {
	if f == FrequencyBiWeekly {
		return 26
	}
	return 12
}

// LoanParameters holds the immutable contractual terms of a loan.
type LoanParameters struct {
	Principal          decimal.Decimal  `yaml:"principal" json:"principal"`
	AnnualInterestRate decimal.Decimal  `yaml:"annual_interest_rate" json:"annual_interest_rate"` // percentage, e.g. 5.5
	TermMonths         int              `yaml:"term_months" json:"term_months"`
	PaymentFrequency   PaymentFrequency `yaml:"payment_frequency" json:"payment_frequency"`
	CalculationType    CalculationType  `yaml:"calculation_type" json:"calculation_type"`
}

// TotalPayments derives the number of payment periods over the full term.
// Bi-weekly terms use the ratio 26/12 periods per month rather than literal
// calendar counting; the result is rounded to the nearest whole period.
func (p LoanParameters) TotalPayments() int64 {
	if p.PaymentFrequency == FrequencyBiWeekly {
		months := decimal.NewFromInt(int64(p.TermMonths))
		return months.Mul(decimal.NewFromInt(26)).Div(decimal.NewFromInt(12)).Round(0).IntPart()
	}
	return int64(p.TermMonths)
}

// PeriodicRate derives the per-period interest rate from the annual
// percentage rate, e.g. 5.5% monthly -> 0.055/12.
func (p LoanParameters) PeriodicRate() decimal.Decimal {
	return p.AnnualInterestRate.
		Div(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(p.PaymentFrequency.PeriodsPerYear()))
}

// PaymentRecord is one historical payment applied against a loan.
type PaymentRecord struct {
	Amount decimal.Decimal `yaml:"amount" json:"amount"`
	Date   time.Time       `yaml:"date" json:"date"`
}

// NewLoanParameters builds LoanParameters from loosely typed inputs,
// coercing principal and rate through the decimal layer. It does not apply
// domain validation; see the validation package for that.
func NewLoanParameters(principal, annualRate any, termMonths int, calcType CalculationType, frequency PaymentFrequency) (LoanParameters, error) {
	p, err := ParseDecimal(principal)
	if err != nil {
		return LoanParameters{}, fmt.Errorf("principal: %w", err)
	}
	r, err := ParseDecimal(annualRate)
	if err != nil {
		return LoanParameters{}, fmt.Errorf("annual interest rate: %w", err)
	}
	return LoanParameters{
		Principal:          p,
		AnnualInterestRate: r,
		TermMonths:         termMonths,
		PaymentFrequency:   frequency,
		CalculationType:    calcType,
	}, nil
}
