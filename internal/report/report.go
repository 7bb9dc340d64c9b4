// Package report persists run output as CSV. Files start with a UTF-8 BOM
// so spreadsheet tools pick the encoding up correctly.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"orb-trader/internal/types"
)

const timeLayout = "2006-01-02 15:04"

var bom = []byte{0xEF, 0xBB, 0xBF}

type tradeRow struct {
	Date       string `csv:"date"`
	Code       string `csv:"code"`
	EntryTime  string `csv:"entry_time"`
	Entry      string `csv:"entry"`
	Stop       string `csv:"stop"`
	TPTime     string `csv:"tp_time"`
	TPPrice    string `csv:"tp_price"`
	ExitTime   string `csv:"exit_time"`
	Exit       string `csv:"exit"`
	ExitReason string `csv:"exit_reason"`
	Qty        int    `csv:"qty"`
	PnL        string `csv:"pnl"`
	R          string `csv:"R"`
}

// WriteTrades writes one row per trade to dir/bt_trades_<start>_to_<end>.csv
// and returns the path.
func WriteTrades(dir, start, end string, trades []types.Trade) (string, error) {
	rows := make([]*tradeRow, len(trades))
	for i, t := range trades {
		rows[i] = &tradeRow{
			Date:       t.Date,
			Code:       t.Symbol,
			EntryTime:  t.EntryTime.Format(timeLayout),
			Entry:      fmt.Sprintf("%.4f", t.Entry),
			Stop:       fmt.Sprintf("%.4f", t.Stop),
			ExitTime:   t.ExitTime.Format(timeLayout),
			Exit:       fmt.Sprintf("%.4f", t.Exit),
			ExitReason: string(t.ExitReason),
			Qty:        t.Qty,
			PnL:        fmt.Sprintf("%.2f", t.PnL),
			R:          fmt.Sprintf("%.4f", t.R),
		}
		if t.TPTime != nil {
			rows[i].TPTime = t.TPTime.Format(timeLayout)
			rows[i].TPPrice = fmt.Sprintf("%.4f", t.TPPrice)
		}
	}
	name := fmt.Sprintf("bt_trades_%s_to_%s.csv", start, end)
	return writeCSV(dir, name, &rows)
}

// PlanRow is one sized entry candidate for a single-day plan.
type PlanRow struct {
	Code       string `csv:"code"`
	Date       string `csv:"date"`
	EntryTime  string `csv:"entry_time"`
	EntryPrice string `csv:"entry_price"`
	Stop       string `csv:"stop"`
	TPTime     string `csv:"tp_time"`
	TPPrice    string `csv:"tp_price"`
	ExitTime   string `csv:"exit_time"`
	ExitPrice  string `csv:"exit_price"`
	ExitReason string `csv:"exit_reason"`
	Qty        int    `csv:"qty"`
}

// NewPlanRow formats a signal + quantity into a plan row.
func NewPlanRow(date, symbol string, sig types.Signal, qty int) PlanRow {
	row := PlanRow{
		Code:       symbol,
		Date:       date,
		EntryTime:  sig.Entry.Ts.Format(timeLayout),
		EntryPrice: fmt.Sprintf("%.4f", sig.Entry.Price),
		Stop:       fmt.Sprintf("%.4f", sig.Stop),
		ExitTime:   sig.Exit.Ts.Format(timeLayout),
		ExitPrice:  fmt.Sprintf("%.4f", sig.Exit.Price),
		ExitReason: string(sig.Exit.Reason),
		Qty:        qty,
	}
	if sig.TP != nil {
		row.TPTime = sig.TP.Ts.Format(timeLayout)
		row.TPPrice = fmt.Sprintf("%.4f", sig.TP.Price)
	}
	return row
}

// WritePlan writes the day's plan to dir/plan_mock_<date>.csv.
func WritePlan(dir, date string, rows []PlanRow) (string, error) {
	ptrs := make([]*PlanRow, len(rows))
	for i := range rows {
		ptrs[i] = &rows[i]
	}
	return writeCSV(dir, fmt.Sprintf("plan_mock_%s.csv", date), &ptrs)
}

func writeCSV(dir, name string, rows any) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := f.Write(bom); err != nil {
		return "", err
	}
	if err := gocsv.Marshal(rows, f); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
