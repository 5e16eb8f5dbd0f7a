package calculation

import (
	"fmt"

	"github.com/finwork/loancalc/internal/domain"
)

// Engine is the public entry point of the loan calculation engine. It owns
// the strategy registry, dispatches validated input to the right strategy,
// and converts unexpected arithmetic failures into tagged failure results.
// An Engine holds no mutable state after construction, so concurrent use
// from multiple goroutines is safe.
type Engine struct {
	registry *Registry
	logger   Logger
}

// NewEngine creates an engine backed by the standard strategy registry.
func NewEngine() *Engine {
	return NewEngineWithRegistry(NewRegistry())
}

// NewEngineWithRegistry creates an engine backed by an explicitly
// constructed registry.
func NewEngineWithRegistry(registry *Registry) *Engine {
	return &Engine{registry: registry, logger: nopLogger{}}
}

// SetLogger installs a logger for calculation diagnostics.
func (e *Engine) SetLogger(l Logger) {
	if l != nil {
		e.logger = l
	}
}

// Registry exposes the engine's strategy registry for introspection.
func (e *Engine) Registry() *Registry { return e.registry }

// CalculatePayment computes the required periodic payment for a loan.
// Validation failures come back as a failure result; an unregistered
// calculation type fails fast with an UnsupportedTypeError.
func (e *Engine) CalculatePayment(params domain.LoanParameters) (result domain.CalculationResult[domain.PaymentCalculation], err error) {
	strategy, err := e.registry.Create(params.CalculationType)
	if err != nil {
		return result, err
	}
	defer recoverInto(e.logger, &result, domain.CodeCalculationError, "payment calculation")

	e.logger.Debugf("calculating payment: type=%s principal=%s rate=%s term=%d",
		params.CalculationType, params.Principal, params.AnnualInterestRate, params.TermMonths)
	return strategy.CalculatePayment(params), nil
}

// GenerateSchedule produces the full amortization schedule for a loan.
func (e *Engine) GenerateSchedule(params domain.LoanParameters) (result domain.CalculationResult[domain.AmortizationSchedule], err error) {
	strategy, err := e.registry.Create(params.CalculationType)
	if err != nil {
		return result, err
	}
	defer recoverInto(e.logger, &result, domain.CodeScheduleGenerationError, "schedule generation")

	e.logger.Debugf("generating schedule: type=%s principal=%s term=%d frequency=%s",
		params.CalculationType, params.Principal, params.TermMonths, params.PaymentFrequency)
	return strategy.GenerateSchedule(params), nil
}

// CalculateBalance reconstructs the current standing of a loan from its
// payment history.
func (e *Engine) CalculateBalance(params domain.LoanParameters, payments []domain.PaymentRecord) (result domain.CalculationResult[domain.BalanceCalculation], err error) {
	strategy, err := e.registry.Create(params.CalculationType)
	if err != nil {
		return result, err
	}
	defer recoverInto(e.logger, &result, domain.CodeBalanceCalculationError, "balance calculation")

	e.logger.Debugf("calculating balance: type=%s principal=%s payments=%d",
		params.CalculationType, params.Principal, len(payments))
	return strategy.CalculateBalance(params, payments), nil
}

// params builds LoanParameters from loosely typed principal and rate
// inputs, folding coercion failures into validation errors so callers see
// one failure surface.
func (e *Engine) params(principal, annualRate any, termMonths int, calcType domain.CalculationType, frequency domain.PaymentFrequency) (domain.LoanParameters, []domain.ValidationError) {
	var errs []domain.ValidationError

	p, err := domain.ParseDecimal(principal)
	if err != nil {
		errs = append(errs, domain.ValidationError{
			Field:   "principal",
			Message: err.Error(),
			Code:    domain.CodeInvalidPrincipal,
		})
	}
	r, err := domain.ParseDecimal(annualRate)
	if err != nil {
		errs = append(errs, domain.ValidationError{
			Field:   "annualInterestRate",
			Message: err.Error(),
			Code:    domain.CodeInvalidInterestRate,
		})
	}
	if len(errs) > 0 {
		return domain.LoanParameters{}, errs
	}
	return domain.LoanParameters{
		Principal:          p,
		AnnualInterestRate: r,
		TermMonths:         termMonths,
		PaymentFrequency:   frequency,
		CalculationType:    calcType,
	}, nil
}

// CalculatePaymentFromInputs coerces raw principal and rate values and
// computes the periodic payment.
func (e *Engine) CalculatePaymentFromInputs(principal, annualRate any, termMonths int, calcType domain.CalculationType, frequency domain.PaymentFrequency) (domain.CalculationResult[domain.PaymentCalculation], error) {
	params, errs := e.params(principal, annualRate, termMonths, calcType, frequency)
	if len(errs) > 0 {
		return domain.Failure[domain.PaymentCalculation](errs...), nil
	}
	return e.CalculatePayment(params)
}

// GenerateScheduleFromInputs coerces raw principal and rate values and
// generates the amortization schedule.
func (e *Engine) GenerateScheduleFromInputs(principal, annualRate any, termMonths int, calcType domain.CalculationType, frequency domain.PaymentFrequency) (domain.CalculationResult[domain.AmortizationSchedule], error) {
	params, errs := e.params(principal, annualRate, termMonths, calcType, frequency)
	if len(errs) > 0 {
		return domain.Failure[domain.AmortizationSchedule](errs...), nil
	}
	return e.GenerateSchedule(params)
}

// CalculateBalanceFromInputs coerces raw principal and rate values and
// reconstructs the balance from payment history.
func (e *Engine) CalculateBalanceFromInputs(principal, annualRate any, termMonths int, calcType domain.CalculationType, frequency domain.PaymentFrequency, payments []domain.PaymentRecord) (domain.CalculationResult[domain.BalanceCalculation], error) {
	params, errs := e.params(principal, annualRate, termMonths, calcType, frequency)
	if len(errs) > 0 {
		return domain.Failure[domain.BalanceCalculation](errs...), nil
	}
	return e.CalculateBalance(params, payments)
}

// Advisories returns the advisory findings a strategy raises for the
// parameters, or nil when the strategy raises none. Advisories never block
// a calculation.
func (e *Engine) Advisories(params domain.LoanParameters) ([]domain.ValidationError, error) {
	strategy, err := e.registry.Create(params.CalculationType)
	if err != nil {
		return nil, err
	}
	type advisor interface {
		Advisories(domain.LoanParameters) []domain.ValidationError
	}
	if a, ok := strategy.(advisor); ok {
		return a.Advisories(params), nil
	}
	return nil, nil
}

// recoverInto converts a panic inside a strategy (which validated input
// should make impossible) into a failure result with the given code. It
// must be deferred directly so recover sees the panicking frame.
func recoverInto[T any](logger Logger, result *domain.CalculationResult[T], code, operation string) {
	if r := recover(); r != nil {
		logger.Errorf("%s panicked: %v", operation, r)
		*result = domain.Failure[T](domain.ValidationError{
			Field:   "calculation",
			Message: fmt.Sprintf("unexpected %s failure: %v", operation, r),
			Code:    code,
		})
	}
}
