// Package config loads loan files: YAML documents carrying one loan's
// contractual parameters and, optionally, its recorded payment history.
// The loader is a collaborator of the calculation engine, not part of it.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/finwork/loancalc/internal/domain"
	"github.com/finwork/loancalc/internal/validation"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// LoanConfig is a fully parsed and validated loan file.
type LoanConfig struct {
	Parameters domain.LoanParameters
	Payments   []domain.PaymentRecord
}

// loanFile mirrors the on-disk YAML shape.
type loanFile struct {
	Loan struct {
		Principal          decimal.Decimal `yaml:"principal"`
		AnnualInterestRate decimal.Decimal `yaml:"annual_interest_rate"`
		TermMonths         int             `yaml:"term_months"`
		PaymentFrequency   string          `yaml:"payment_frequency"`
		CalculationType    string          `yaml:"calculation_type"`
	} `yaml:"loan"`
	Payments []struct {
		Amount decimal.Decimal `yaml:"amount"`
		Date   string          `yaml:"date"`
	} `yaml:"payments"`
}

// InputParser handles parsing of loan files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads and validates a loan file.
func (ip *InputParser) LoadFromFile(filename string) (*LoanConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	cfg, err := ip.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", filename, err)
	}
	return cfg, nil
}

// Parse decodes and validates a loan file from raw bytes.
func (ip *InputParser) Parse(data []byte) (*LoanConfig, error) {
	var file loanFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	frequency := domain.FrequencyMonthly
	if file.Loan.PaymentFrequency != "" {
		f, err := domain.ParsePaymentFrequency(file.Loan.PaymentFrequency)
		if err != nil {
			return nil, fmt.Errorf("loan.payment_frequency: %w", err)
		}
		frequency = f
	}

	if file.Loan.CalculationType == "" {
		return nil, fmt.Errorf("loan.calculation_type is required")
	}
	calcType, err := domain.ParseCalculationType(file.Loan.CalculationType)
	if err != nil {
		return nil, fmt.Errorf("loan.calculation_type: %w", err)
	}

	cfg := &LoanConfig{
		Parameters: domain.LoanParameters{
			Principal:          file.Loan.Principal,
			AnnualInterestRate: file.Loan.AnnualInterestRate,
			TermMonths:         file.Loan.TermMonths,
			PaymentFrequency:   frequency,
			CalculationType:    calcType,
		},
	}

	for i, p := range file.Payments {
		date, err := time.Parse("2006-01-02", p.Date)
		if err != nil {
			return nil, fmt.Errorf("payments[%d].date: invalid date %q (expected YYYY-MM-DD)", i, p.Date)
		}
		cfg.Payments = append(cfg.Payments, domain.PaymentRecord{Amount: p.Amount, Date: date})
	}

	if err := ip.validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate runs the engine's validation module and folds any violations
// into one error, since a config boundary has no use for a partial load.
func (ip *InputParser) validate(cfg *LoanConfig) error {
	errs := validation.ValidateLoanParameters(cfg.Parameters)
	errs = append(errs, validation.ValidatePaymentRecords(cfg.Payments)...)
	if len(errs) == 0 {
		return nil
	}

	messages := make([]string, len(errs))
	for i, e := range errs {
		messages[i] = e.String()
	}
	return fmt.Errorf("loan file validation failed: %s", strings.Join(messages, "; "))
}
