package output

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/finwork/loancalc/internal/calculation"
	"github.com/finwork/loancalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport(t *testing.T) *Report {
	t.Helper()
	params := domain.LoanParameters{
		Principal:          decimal.NewFromInt(10000),
		AnnualInterestRate: decimal.NewFromInt(8),
		TermMonths:         12,
		PaymentFrequency:   domain.FrequencyMonthly,
		CalculationType:    domain.TypeSimple,
	}
	engine := calculation.NewEngine()

	payment, err := engine.CalculatePayment(params)
	require.NoError(t, err)
	require.True(t, payment.Ok())
	schedule, err := engine.GenerateSchedule(params)
	require.NoError(t, err)
	require.True(t, schedule.Ok())

	return &Report{
		Loan:     params,
		Payment:  &payment.Value,
		Schedule: &schedule.Value,
	}
}

func TestGetFormatterByName(t *testing.T) {
	assert.Equal(t, "console", GetFormatterByName("console").Name())
	assert.Equal(t, "console", GetFormatterByName("").Name())
	assert.Equal(t, "csv", GetFormatterByName("CSV").Name())
	assert.Equal(t, "json", GetFormatterByName("json").Name())
	assert.Nil(t, GetFormatterByName("xml"))
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$567.79", FormatCurrency(decimal.RequireFromString("567.79")))
	assert.Equal(t, "$0.00", FormatCurrency(decimal.Zero))
	assert.Equal(t, "-$12.50", FormatCurrency(decimal.RequireFromString("-12.5")))
}

func TestConsoleFormatter(t *testing.T) {
	data, err := ConsoleFormatter{}.Format(sampleReport(t))
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "LOAN CALCULATION REPORT")
	assert.Contains(t, text, "Payment Amount: $900.00")
	assert.Contains(t, text, "Total Interest: $800.00")
	assert.Contains(t, text, "AMORTIZATION SCHEDULE")
	assert.Contains(t, text, "Calculation Type: SIMPLE")
}

func TestConsoleFormatterBalanceSection(t *testing.T) {
	report := sampleReport(t)
	report.Schedule = nil
	report.Payment = nil
	report.Balance = &domain.BalanceCalculation{
		CurrentBalance:     decimal.RequireFromString("8333.33"),
		TotalPrincipalPaid: decimal.RequireFromString("1666.67"),
		TotalInterestPaid:  decimal.RequireFromString("133.33"),
		PaymentsMade:       2,
		PaymentsRemaining:  10,
		PercentagePaid:     decimal.RequireFromString("16.67"),
	}

	data, err := ConsoleFormatter{}.Format(report)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "Current Balance:      $8333.33")
	assert.Contains(t, text, "Percentage Paid:      16.67%")
	assert.NotContains(t, text, "AMORTIZATION SCHEDULE")
}

func TestCSVFormatterSchedule(t *testing.T) {
	data, err := CSVFormatter{}.Format(sampleReport(t))
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)

	// Header plus one row per period.
	require.Len(t, records, 13)
	assert.Equal(t, "PaymentNumber", records[0][0])
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "0.00", records[12][4]) // final remaining balance
}

func TestCSVFormatterKeyValueFallback(t *testing.T) {
	report := sampleReport(t)
	report.Schedule = nil

	data, err := CSVFormatter{}.Format(report)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Greater(t, len(records), 1)
	assert.Equal(t, []string{"Field", "Value"}, records[0])
	assert.Equal(t, []string{"PaymentAmount", "900.00"}, records[1])
}

func TestJSONFormatterRoundTrips(t *testing.T) {
	data, err := JSONFormatter{}.Format(sampleReport(t))
	require.NoError(t, err)

	var decoded struct {
		Loan struct {
			TermMonths int `json:"term_months"`
		} `json:"loan"`
		Schedule struct {
			Entries []json.RawMessage `json:"entries"`
		} `json:"schedule"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 12, decoded.Loan.TermMonths)
	assert.Len(t, decoded.Schedule.Entries, 12)
}
