package types

import "time"

// MinuteBar is one minute of intraday trade data. Bid/Ask and the depth
// fields are only meaningful when the owning Session says quotes (and depth)
// were recorded; synthetic sessions carry price/volume only.
type MinuteBar struct {
	Ts                     time.Time
	Open, High, Low, Close float64
	Volume                 int64
	Bid, Ask               float64
	BidSize, AskSize       int64
}

// Session is one symbol's ordered minute bars for a single trading day.
type Session struct {
	Symbol    string
	Date      string // 2006-01-02
	Bars      []MinuteBar
	HasQuotes bool // bid/ask recorded for this session
	HasDepth  bool // bid/ask sizes recorded as well
}

// DailyBar is one day of a symbol's daily history.
type DailyBar struct {
	Symbol                 string
	Date                   string // 2006-01-02
	Open, High, Low, Close float64
	Volume                 float64
}

type ExitReason string

const (
	ExitStop    ExitReason = "stop"
	ExitTPTrail ExitReason = "tp_trail"
	ExitEOD     ExitReason = "eod"
	ExitTPEOD   ExitReason = "tp_eod"
)

// SignalEvent marks a point on the session where something happened.
type SignalEvent struct {
	Ts    time.Time
	Price float64
}

type SignalExit struct {
	Ts     time.Time
	Price  float64
	Reason ExitReason
}

// Signal is the outcome of one opening-range-breakout scan. Entry is nil when
// no bar triggered; in that case TP and Exit are nil too. ORHigh/ORLow are
// always populated so callers can use them as a stop reference.
type Signal struct {
	Entry  *SignalEvent
	Stop   float64
	TP     *SignalEvent
	Exit   *SignalExit
	ORHigh float64
	ORLow  float64
}

// Entered reports whether the scan produced a filled entry.
func (s Signal) Entered() bool { return s.Entry != nil }

// Trade is one simulated round trip, immutable once recorded.
type Trade struct {
	Date       string
	Symbol     string
	EntryTime  time.Time
	Entry      float64
	Stop       float64
	TPTime     *time.Time // nil when the half take-profit never fired
	TPPrice    float64
	ExitTime   time.Time
	Exit       float64
	ExitReason ExitReason
	Qty        int
	PnL        float64
	R          float64
}
