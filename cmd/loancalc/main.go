package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/finwork/loancalc/internal/calculation"
	"github.com/finwork/loancalc/internal/config"
	"github.com/finwork/loancalc/internal/domain"
	"github.com/finwork/loancalc/internal/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// zapLogger adapts a zap SugaredLogger to the engine's Logger seam.
type zapLogger struct {
	s *zap.SugaredLogger
}

func (l zapLogger) Debugf(format string, args ...any) { l.s.Debugf(format, args...) }
func (l zapLogger) Infof(format string, args ...any)  { l.s.Infof(format, args...) }
func (l zapLogger) Warnf(format string, args ...any)  { l.s.Warnf(format, args...) }
func (l zapLogger) Errorf(format string, args ...any) { l.s.Errorf(format, args...) }

// initializeLogger creates a zap logger at the requested level.
func initializeLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("unknown log level %q (valid: debug, info, warn, error)", level)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

var rootCmd = &cobra.Command{
	Use:   "loancalc",
	Short: "Loan calculation CLI",
	Long:  "Deterministic loan calculator: periodic payments, amortization schedules, and balance reconstruction from payment history.",
}

// newEngine builds an engine wired to a zap logger, honoring the
// --log-level flag.
func newEngine(cmd *cobra.Command) (*calculation.Engine, *zap.Logger, error) {
	level, _ := cmd.Flags().GetString("log-level")
	logger, err := initializeLogger(level)
	if err != nil {
		return nil, nil, err
	}

	engine := calculation.NewEngine()
	engine.SetLogger(zapLogger{s: logger.Sugar()})
	return engine, logger, nil
}

// loadLoan parses the loan file named by the positional argument.
func loadLoan(args []string) (*config.LoanConfig, error) {
	parser := config.NewInputParser()
	return parser.LoadFromFile(args[0])
}

// renderReport writes the report to stdout in the format chosen by the
// --format flag.
func renderReport(cmd *cobra.Command, report *output.Report) error {
	format, _ := cmd.Flags().GetString("format")
	f := output.GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unknown output format %q (valid: console, csv, json)", format)
	}
	data, err := f.Format(report)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}

// logAdvisories surfaces non-blocking strategy findings as warnings.
func logAdvisories(engine *calculation.Engine, logger *zap.Logger, params domain.LoanParameters) {
	advisories, err := engine.Advisories(params)
	if err != nil {
		return
	}
	for _, a := range advisories {
		logger.Sugar().Warnf("advisory %s on %s: %s", a.Code, a.Field, a.Message)
	}
}

// failValidation prints violations and exits non-zero.
func failValidation(errs []domain.ValidationError) error {
	fmt.Fprintln(os.Stderr, "calculation failed:")
	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "  - %s\n", e)
	}
	os.Exit(1)
	return nil
}

var paymentCmd = &cobra.Command{
	Use:   "payment [loan-file]",
	Short: "Compute the required periodic payment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadLoan(args)
		if err != nil {
			return err
		}
		engine, logger, err := newEngine(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		logAdvisories(engine, logger, cfg.Parameters)
		result, err := engine.CalculatePayment(cfg.Parameters)
		if err != nil {
			return err
		}
		if !result.Ok() {
			return failValidation(result.Errors)
		}
		return renderReport(cmd, &output.Report{Loan: cfg.Parameters, Payment: &result.Value})
	},
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule [loan-file]",
	Short: "Generate the full amortization schedule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadLoan(args)
		if err != nil {
			return err
		}
		engine, logger, err := newEngine(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		logAdvisories(engine, logger, cfg.Parameters)
		result, err := engine.GenerateSchedule(cfg.Parameters)
		if err != nil {
			return err
		}
		if !result.Ok() {
			return failValidation(result.Errors)
		}
		return renderReport(cmd, &output.Report{Loan: cfg.Parameters, Schedule: &result.Value})
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance [loan-file]",
	Short: "Compute the current balance from recorded payments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadLoan(args)
		if err != nil {
			return err
		}
		engine, logger, err := newEngine(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		logAdvisories(engine, logger, cfg.Parameters)
		result, err := engine.CalculateBalance(cfg.Parameters, cfg.Payments)
		if err != nil {
			return err
		}
		if !result.Ok() {
			return failValidation(result.Errors)
		}
		return renderReport(cmd, &output.Report{Loan: cfg.Parameters, Balance: &result.Value})
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [loan-file]",
	Short: "Validate a loan file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadLoan(args); err != nil {
			return err
		}
		fmt.Printf("Loan file %s is valid\n", args[0])
		return nil
	},
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "loancalc %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	for _, c := range []*cobra.Command{paymentCmd, scheduleCmd, balanceCmd} {
		c.Flags().StringP("format", "f", "console", "Output format (console, csv, json)")
	}

	rootCmd.AddCommand(paymentCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
