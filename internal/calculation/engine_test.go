package calculation

import (
	"errors"
	"testing"
	"time"

	"github.com/finwork/loancalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStrategy lets tests exercise the registry and the engine's panic
// recovery without touching the real algorithms.
type fakeStrategy struct {
	name  domain.CalculationType
	panic bool
}

func (f *fakeStrategy) Name() domain.CalculationType { return f.name }

func (f *fakeStrategy) CalculatePayment(domain.LoanParameters) domain.CalculationResult[domain.PaymentCalculation] {
	if f.panic {
		panic("boom")
	}
	return domain.Success(domain.PaymentCalculation{})
}

func (f *fakeStrategy) GenerateSchedule(domain.LoanParameters) domain.CalculationResult[domain.AmortizationSchedule] {
	if f.panic {
		panic("boom")
	}
	return domain.Success(domain.AmortizationSchedule{})
}

func (f *fakeStrategy) CalculateBalance(domain.LoanParameters, []domain.PaymentRecord) domain.CalculationResult[domain.BalanceCalculation] {
	if f.panic {
		panic("boom")
	}
	return domain.Success(domain.BalanceCalculation{})
}

func TestEngineDispatchesByCalculationType(t *testing.T) {
	engine := NewEngine()
	params := domain.LoanParameters{
		Principal:          decimal.NewFromInt(100000),
		AnnualInterestRate: decimal.NewFromInt(6),
		TermMonths:         60,
		PaymentFrequency:   domain.FrequencyMonthly,
	}

	tests := []struct {
		calcType        domain.CalculationType
		expectedPayment string
	}{
		{calcType: domain.TypeInterestOnly, expectedPayment: "500"},
		{calcType: domain.TypeAmortized, expectedPayment: "1933.28"},
		{calcType: domain.TypeSimple, expectedPayment: "2166.67"},
	}

	for _, tt := range tests {
		t.Run(string(tt.calcType), func(t *testing.T) {
			p := params
			p.CalculationType = tt.calcType
			result, err := engine.CalculatePayment(p)
			require.NoError(t, err)
			require.True(t, result.Ok(), "unexpected errors: %v", result.Errors)
			assertMoneyEqual(t, tt.expectedPayment, result.Value.PaymentAmount)
		})
	}
}

func TestEngineUnknownTypeFailsFast(t *testing.T) {
	engine := NewEngine()
	params := domain.LoanParameters{
		Principal:        decimal.NewFromInt(1000),
		TermMonths:       12,
		PaymentFrequency: domain.FrequencyMonthly,
		CalculationType:  "COMPOUND",
	}

	var unsupported *UnsupportedTypeError

	_, err := engine.CalculatePayment(params)
	require.Error(t, err)
	assert.True(t, errors.As(err, &unsupported))

	_, err = engine.GenerateSchedule(params)
	assert.Error(t, err)

	_, err = engine.CalculateBalance(params, nil)
	assert.Error(t, err)
}

func TestEngineReturnsValidationFailures(t *testing.T) {
	engine := NewEngine()
	params := domain.LoanParameters{
		Principal:          decimal.NewFromInt(-5),
		AnnualInterestRate: decimal.NewFromInt(200),
		TermMonths:         0,
		PaymentFrequency:   domain.FrequencyMonthly,
		CalculationType:    domain.TypeAmortized,
	}

	result, err := engine.CalculatePayment(params)
	require.NoError(t, err)
	require.False(t, result.Ok())

	codes := collectEngineCodes(result.Errors)
	assert.Contains(t, codes, domain.CodeInvalidPrincipal)
	assert.Contains(t, codes, domain.CodeExcessiveInterestRate)
	assert.Contains(t, codes, domain.CodeInvalidTerm)
}

func collectEngineCodes(errs []domain.ValidationError) []string {
	codes := make([]string, len(errs))
	for i, e := range errs {
		codes[i] = e.Code
	}
	return codes
}

func TestEngineRecoversFromStrategyPanic(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&fakeStrategy{name: "PANICKING", panic: true})
	engine := NewEngineWithRegistry(registry)

	params := domain.LoanParameters{
		Principal:        decimal.NewFromInt(1000),
		TermMonths:       12,
		PaymentFrequency: domain.FrequencyMonthly,
		CalculationType:  "PANICKING",
	}

	payment, err := engine.CalculatePayment(params)
	require.NoError(t, err)
	require.False(t, payment.Ok())
	assert.Equal(t, domain.CodeCalculationError, payment.Errors[0].Code)

	schedule, err := engine.GenerateSchedule(params)
	require.NoError(t, err)
	require.False(t, schedule.Ok())
	assert.Equal(t, domain.CodeScheduleGenerationError, schedule.Errors[0].Code)

	balance, err := engine.CalculateBalance(params, nil)
	require.NoError(t, err)
	require.False(t, balance.Ok())
	assert.Equal(t, domain.CodeBalanceCalculationError, balance.Errors[0].Code)
}

func TestEngineIsIdempotent(t *testing.T) {
	engine := NewEngine()
	params := domain.LoanParameters{
		Principal:          decimal.NewFromInt(100000),
		AnnualInterestRate: decimal.NewFromFloat(5.5),
		TermMonths:         360,
		PaymentFrequency:   domain.FrequencyMonthly,
		CalculationType:    domain.TypeAmortized,
	}
	payments := []domain.PaymentRecord{
		{Amount: decimal.NewFromFloat(567.79), Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	p1, err := engine.CalculatePayment(params)
	require.NoError(t, err)
	p2, err := engine.CalculatePayment(params)
	require.NoError(t, err)
	assert.True(t, p1.Value.PaymentAmount.Equal(p2.Value.PaymentAmount))
	assert.True(t, p1.Value.TotalInterest.Equal(p2.Value.TotalInterest))

	s1, err := engine.GenerateSchedule(params)
	require.NoError(t, err)
	s2, err := engine.GenerateSchedule(params)
	require.NoError(t, err)
	require.Equal(t, len(s1.Value.Entries), len(s2.Value.Entries))
	for i := range s1.Value.Entries {
		assert.True(t, s1.Value.Entries[i].RemainingBalance.Equal(s2.Value.Entries[i].RemainingBalance))
	}

	b1, err := engine.CalculateBalance(params, payments)
	require.NoError(t, err)
	b2, err := engine.CalculateBalance(params, payments)
	require.NoError(t, err)
	assert.True(t, b1.Value.CurrentBalance.Equal(b2.Value.CurrentBalance))
}

func TestEngineFromInputs(t *testing.T) {
	engine := NewEngine()

	t.Run("coerces strings and floats", func(t *testing.T) {
		result, err := engine.CalculatePaymentFromInputs("100000", 5.5, 360, domain.TypeAmortized, domain.FrequencyMonthly)
		require.NoError(t, err)
		require.True(t, result.Ok(), "unexpected errors: %v", result.Errors)
		assertMoneyEqual(t, "567.79", result.Value.PaymentAmount)
	})

	t.Run("non-numeric input becomes a validation failure", func(t *testing.T) {
		result, err := engine.CalculatePaymentFromInputs("lots", "5.5", 360, domain.TypeAmortized, domain.FrequencyMonthly)
		require.NoError(t, err)
		require.False(t, result.Ok())
		assert.Equal(t, domain.CodeInvalidPrincipal, result.Errors[0].Code)
		assert.Equal(t, "principal", result.Errors[0].Field)
	})

	t.Run("schedule and balance variants", func(t *testing.T) {
		schedule, err := engine.GenerateScheduleFromInputs(10000, 8, 12, domain.TypeSimple, domain.FrequencyMonthly)
		require.NoError(t, err)
		require.True(t, schedule.Ok())
		assert.Len(t, schedule.Value.Entries, 12)

		balance, err := engine.CalculateBalanceFromInputs(10000, 8, 12, domain.TypeSimple, domain.FrequencyMonthly, nil)
		require.NoError(t, err)
		require.True(t, balance.Ok())
		assertMoneyEqual(t, "10000", balance.Value.CurrentBalance)
	})
}

func TestEngineAdvisories(t *testing.T) {
	engine := NewEngine()
	params := domain.LoanParameters{
		Principal:          decimal.NewFromInt(2000000),
		AnnualInterestRate: decimal.NewFromInt(6),
		TermMonths:         60,
		PaymentFrequency:   domain.FrequencyMonthly,
		CalculationType:    domain.TypeInterestOnly,
	}

	advisories, err := engine.Advisories(params)
	require.NoError(t, err)
	require.Len(t, advisories, 1)
	assert.Equal(t, domain.CodeLargeLoanAmount, advisories[0].Code)

	// Strategies without advisories report none.
	params.CalculationType = domain.TypeAmortized
	advisories, err = engine.Advisories(params)
	require.NoError(t, err)
	assert.Empty(t, advisories)
}
