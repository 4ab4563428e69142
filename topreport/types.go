// Package topreport parses the text "top" report printed by `go tool pprof -top`
// into typed values, filters its rows and rewrites the result into a compact
// table for consumers with a bounded input budget.
package topreport

const (
	// CPUHeaderSize is the number of header lines of a cpu report, including
	// the Duration line and the column title row.
	CPUHeaderSize = 6
	// DefaultHeaderSize is the number of header lines of every other report type.
	DefaultHeaderSize = 5

	// FunctionNameIndex is the token index where the function name starts.
	FunctionNameIndex = 5
	// InlineMarker is the trailing token pprof appends to inlined functions.
	InlineMarker = "(inline)"

	// SumMaximum is the default cumulative sum% budget of the Filter.
	SumMaximum = 80.0
	// CumMinimum is the default cum% above which a row is always retained.
	CumMinimum = 10.0

	// ProfileTypeCPU is the only profile type carrying a Duration line.
	ProfileTypeCPU = "cpu"
)

// Header is the typed form of the report header.
type Header struct {
	// Line: "File: pool.test"
	FileName string `json:"fileName"`
	// Line: "Type: cpu"
	ProfileType string `json:"profileType"`
	// Line: "Time: 2025-06-21 08:00:24 PDT", kept verbatim.
	TimeStamp string `json:"timeStamp,omitempty"`
	// Unit suffix of the node-accounting times, e.g. "s", "ms" or "kB".
	ValueUnit string `json:"valueUnit,omitempty"`

	Parallelism Parallelism `json:"parallelism"`
	TotalNodes  TotalNodes  `json:"totalNodes"`
}

// Parallelism is the "Duration: 2.01s, Total samples = 10.90s (542.34%)" line.
// TotalSamplesPercentage above 100 means several cores were busy at once.
// All fields are zero for non-cpu profiles.
type Parallelism struct {
	Duration               float64 `json:"duration"`
	TotalSamplesTime       float64 `json:"totalSamplesTime"`
	TotalSamplesPercentage float64 `json:"totalSamplesPercentage"`
}

// TotalNodes is the "Showing nodes accounting for 10.90s, 100% of 10.90s total" line.
type TotalNodes struct {
	CollectedTime       float64 `json:"collectedTime"`
	CollectedPercentage float64 `json:"collectedPercentage"`
	TotalTime           float64 `json:"totalTime"`
}

// FunctionProfileData is one row of the report table.
type FunctionProfileData struct {
	FunctionName   string  `json:"functionName"`
	Flat           float64 `json:"flat"`
	FlatPercentage float64 `json:"flatPercentage"`
	SumPercentage  float64 `json:"sumPercentage"`
	Cum            float64 `json:"cum"`
	CumPercentage  float64 `json:"cumPercentage"`

	// Unit suffixes of the flat and cum tokens. pprof scales each value on
	// its own, so one table can mix "10ms" and "1.20s".
	FlatUnit string `json:"flatUnit,omitempty"`
	CumUnit  string `json:"cumUnit,omitempty"`
}

// Report is a parsed report: its header and the rows retained by the Filter,
// in file order.
type Report struct {
	Header     Header                `json:"header"`
	HeaderSize int                   `json:"headerSize"`
	Functions  []FunctionProfileData `json:"functions"`
}

// HeaderSizeFor returns the number of header lines for a profile type.
func HeaderSizeFor(profileType string) int {
	if profileType == ProfileTypeCPU {
		return CPUHeaderSize
	}
	return DefaultHeaderSize
}
