package topreport

import (
	"fmt"
	"io"
	"math"

	"github.com/google/pprof/profile"
)

const cumLabel = "cum"

type unitScale struct {
	unit   string
	factor float64
}

var unitScales = map[string]unitScale{
	"ns":   {"nanoseconds", 1},
	"us":   {"nanoseconds", 1e3},
	"µs":   {"nanoseconds", 1e3},
	"ms":   {"nanoseconds", 1e6},
	"s":    {"nanoseconds", 1e9},
	"mins": {"nanoseconds", 60e9},
	"hrs":  {"nanoseconds", 3600e9},
	"B":    {"bytes", 1},
	"kB":   {"bytes", 1 << 10},
	"MB":   {"bytes", 1 << 20},
	"GB":   {"bytes", 1 << 30},
	"TB":   {"bytes", 1 << 40},
}

// sampleUnit returns the pprof unit for a report unit suffix. Unknown and
// empty suffixes are plain counts.
func sampleUnit(suffix string) unitScale {
	if s, ok := unitScales[suffix]; ok {
		return s
	}
	return unitScale{"count", 1}
}

// scaleValue converts a value with the given suffix into the base unit of want.
// pprof prints zero values without a unit, so a bare number is taken as
// already being in want.
func scaleValue(v float64, suffix string, want string) (int64, error) {
	factor := 1.0
	if suffix != "" {
		s := sampleUnit(suffix)
		if s.unit != want {
			return 0, fmt.Errorf("unit %q is not compatible with %s", suffix, want)
		}
		factor = s.factor
	}
	n, ok := toInt64(v * factor)
	if !ok {
		return 0, fmt.Errorf("value %v%s overflows int64 %s", v, suffix, want)
	}
	return n, nil
}

// toInt64 rounds x and reports whether the result fits in an int64.
// float64(math.MaxInt64) rounds up to 2^63, so the upper bound is exclusive.
func toInt64(x float64) (int64, bool) {
	x = math.Round(x)
	if math.IsNaN(x) || x >= math.MaxInt64 || x < math.MinInt64 {
		return 0, false
	}
	return int64(x), true
}

// ToProfile converts a parsed report into a pprof profile with one
// single-frame sample per row. The sample value is the flat value; cum is
// attached as the numeric label "cum" since a flat table carries no stacks.
func ToProfile(r Report) (*profile.Profile, error) {
	base := sampleUnit(baseSuffix(r))
	p := &profile.Profile{
		SampleType: []*profile.ValueType{{Type: r.Header.ProfileType, Unit: base.unit}},
	}
	if r.Header.ProfileType == ProfileTypeCPU {
		d, ok := toInt64(r.Header.Parallelism.Duration * 1e9)
		if !ok {
			return nil, fmt.Errorf("duration %vs overflows int64 nanoseconds", r.Header.Parallelism.Duration)
		}
		p.DurationNanos = d
		p.PeriodType = &profile.ValueType{Type: ProfileTypeCPU, Unit: "nanoseconds"}
	}

	for i, f := range r.Functions {
		id := uint64(i + 1)
		flat, err := scaleValue(f.Flat, f.FlatUnit, base.unit)
		if err != nil {
			return nil, fmt.Errorf("row %d (%s) flat: %w", i+1, f.FunctionName, err)
		}
		cum, err := scaleValue(f.Cum, f.CumUnit, base.unit)
		if err != nil {
			return nil, fmt.Errorf("row %d (%s) cum: %w", i+1, f.FunctionName, err)
		}

		fn := &profile.Function{ID: id, Name: f.FunctionName, SystemName: f.FunctionName}
		loc := &profile.Location{ID: id, Line: []profile.Line{{Function: fn}}}
		p.Function = append(p.Function, fn)
		p.Location = append(p.Location, loc)
		p.Sample = append(p.Sample, &profile.Sample{
			Location: []*profile.Location{loc},
			Value:    []int64{flat},
			NumLabel: map[string][]int64{cumLabel: {cum}},
			NumUnit:  map[string][]string{cumLabel: {base.unit}},
		})
	}

	if err := p.CheckValid(); err != nil {
		return nil, fmt.Errorf("building pprof profile: %w", err)
	}
	return p, nil
}

func baseSuffix(r Report) string {
	if r.Header.ValueUnit != "" {
		return r.Header.ValueUnit
	}
	for _, f := range r.Functions {
		if f.FlatUnit != "" {
			return f.FlatUnit
		}
		if f.CumUnit != "" {
			return f.CumUnit
		}
	}
	return ""
}

// WriteProfile writes r as a gzipped pprof protobuf.
func WriteProfile(w io.Writer, r Report) error {
	p, err := ToProfile(r)
	if err != nil {
		return err
	}
	return p.Write(w)
}
