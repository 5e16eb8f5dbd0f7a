// Package output renders engine results for the CLI: a console report plus
// csv and json formatters selectable by name.
package output

import (
	"fmt"
	"strings"

	"github.com/finwork/loancalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Report bundles a loan's parameters with whichever results were computed
// for it. Formatters render only the populated sections.
type Report struct {
	Loan     domain.LoanParameters        `json:"loan"`
	Payment  *domain.PaymentCalculation   `json:"payment,omitempty"`
	Schedule *domain.AmortizationSchedule `json:"schedule,omitempty"`
	Balance  *domain.BalanceCalculation   `json:"balance,omitempty"`
}

// Formatter renders a report to bytes.
type Formatter interface {
	Name() string
	Format(report *Report) ([]byte, error)
}

// GetFormatterByName returns the formatter registered under name, or nil.
func GetFormatterByName(name string) Formatter {
	switch strings.ToLower(name) {
	case "console", "table", "":
		return ConsoleFormatter{}
	case "csv":
		return CSVFormatter{}
	case "json":
		return JSONFormatter{Pretty: true}
	default:
		return nil
	}
}

// FormatCurrency renders a monetary amount with a dollar sign and two
// decimal places.
func FormatCurrency(d decimal.Decimal) string {
	if d.IsNegative() {
		return fmt.Sprintf("-$%s", d.Abs().StringFixed(2))
	}
	return fmt.Sprintf("$%s", d.StringFixed(2))
}

// ConsoleFormatter renders a human-readable report.
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder

	b.WriteString("LOAN CALCULATION REPORT\n")
	b.WriteString("=======================\n\n")
	fmt.Fprintf(&b, "Principal:        %s\n", FormatCurrency(report.Loan.Principal))
	fmt.Fprintf(&b, "Annual Rate:      %s%%\n", report.Loan.AnnualInterestRate.StringFixed(2))
	fmt.Fprintf(&b, "Term:             %d months\n", report.Loan.TermMonths)
	fmt.Fprintf(&b, "Frequency:        %s\n", report.Loan.PaymentFrequency)
	fmt.Fprintf(&b, "Calculation Type: %s\n\n", report.Loan.CalculationType)

	if p := report.Payment; p != nil {
		b.WriteString("PERIODIC PAYMENT\n")
		b.WriteString(strings.Repeat("-", 40) + "\n")
		fmt.Fprintf(&b, "Payment Amount: %s\n", FormatCurrency(p.PaymentAmount))
		fmt.Fprintf(&b, "Total Payments: %d\n", p.TotalPayments)
		fmt.Fprintf(&b, "Total Interest: %s\n", FormatCurrency(p.TotalInterest))
		fmt.Fprintf(&b, "Total Amount:   %s\n\n", FormatCurrency(p.TotalAmount))
	}

	if s := report.Schedule; s != nil {
		b.WriteString("AMORTIZATION SCHEDULE\n")
		b.WriteString(strings.Repeat("-", 78) + "\n")
		fmt.Fprintf(&b, "%5s %14s %14s %14s %14s\n", "#", "Payment", "Principal", "Interest", "Balance")
		for _, e := range s.Entries {
			fmt.Fprintf(&b, "%5d %14s %14s %14s %14s\n",
				e.PaymentNumber,
				e.PaymentAmount.StringFixed(2),
				e.PrincipalAmount.StringFixed(2),
				e.InterestAmount.StringFixed(2),
				e.RemainingBalance.StringFixed(2))
		}
		b.WriteString(strings.Repeat("-", 78) + "\n")
		fmt.Fprintf(&b, "Total Payments:  %d\n", s.Summary.TotalPayments)
		fmt.Fprintf(&b, "Total Interest:  %s\n", FormatCurrency(s.Summary.TotalInterest))
		fmt.Fprintf(&b, "Total Amount:    %s\n", FormatCurrency(s.Summary.TotalAmount))
		fmt.Fprintf(&b, "Average Payment: %s\n\n", FormatCurrency(s.Summary.AveragePayment))
	}

	if bal := report.Balance; bal != nil {
		b.WriteString("CURRENT BALANCE\n")
		b.WriteString(strings.Repeat("-", 40) + "\n")
		fmt.Fprintf(&b, "Current Balance:      %s\n", FormatCurrency(bal.CurrentBalance))
		fmt.Fprintf(&b, "Principal Paid:       %s\n", FormatCurrency(bal.TotalPrincipalPaid))
		fmt.Fprintf(&b, "Interest Paid:        %s\n", FormatCurrency(bal.TotalInterestPaid))
		fmt.Fprintf(&b, "Payments Made:        %d\n", bal.PaymentsMade)
		fmt.Fprintf(&b, "Payments Remaining:   %d\n", bal.PaymentsRemaining)
		fmt.Fprintf(&b, "Percentage Paid:      %s%%\n", bal.PercentagePaid.StringFixed(2))
	}

	return []byte(b.String()), nil
}
