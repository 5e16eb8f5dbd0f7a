package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"
)

// CSVFormatter emits the schedule as one row per period, or the balance and
// payment figures as key/value rows when no schedule is present.
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	if s := report.Schedule; s != nil {
		header := []string{"PaymentNumber", "PaymentAmount", "PrincipalAmount", "InterestAmount", "RemainingBalance", "CumulativeInterest"}
		if err := w.Write(header); err != nil {
			return nil, err
		}
		for _, e := range s.Entries {
			row := []string{
				strconv.FormatInt(e.PaymentNumber, 10),
				e.PaymentAmount.StringFixed(2),
				e.PrincipalAmount.StringFixed(2),
				e.InterestAmount.StringFixed(2),
				e.RemainingBalance.StringFixed(2),
				e.CumulativeInterest.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
		w.Flush()
		return buf.Bytes(), w.Error()
	}

	if err := w.Write([]string{"Field", "Value"}); err != nil {
		return nil, err
	}
	var rows [][]string
	if p := report.Payment; p != nil {
		rows = append(rows,
			[]string{"PaymentAmount", p.PaymentAmount.StringFixed(2)},
			[]string{"TotalPayments", strconv.FormatInt(p.TotalPayments, 10)},
			[]string{"TotalInterest", p.TotalInterest.StringFixed(2)},
			[]string{"TotalAmount", p.TotalAmount.StringFixed(2)},
		)
	}
	if b := report.Balance; b != nil {
		rows = append(rows,
			[]string{"CurrentBalance", b.CurrentBalance.StringFixed(2)},
			[]string{"TotalPrincipalPaid", b.TotalPrincipalPaid.StringFixed(2)},
			[]string{"TotalInterestPaid", b.TotalInterestPaid.StringFixed(2)},
			[]string{"PaymentsMade", strconv.Itoa(b.PaymentsMade)},
			[]string{"PaymentsRemaining", strconv.FormatInt(b.PaymentsRemaining, 10)},
			[]string{"PercentagePaid", b.PercentagePaid.StringFixed(2)},
		)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// JSONFormatter emits the full report as JSON.
type JSONFormatter struct {
	Pretty bool
}

func (JSONFormatter) Name() string { return "json" }

func (f JSONFormatter) Format(report *Report) ([]byte, error) {
	if f.Pretty {
		return json.MarshalIndent(report, "", "  ")
	}
	return json.Marshal(report)
}
