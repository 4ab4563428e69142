package topreport

import "strings"

var columnNames = [FunctionNameIndex]string{"flat", "flat%", "sum%", "cum", "cum%"}

// collectFunctionProfileData builds one row from the whitespace separated
// tokens of a table line.
func collectFunctionProfileData(parts []string) (FunctionProfileData, error) {
	if len(parts) < FunctionNameIndex+1 {
		return FunctionProfileData{}, bodyError("expected at least %d columns, found %d in %q",
			FunctionNameIndex+1, len(parts), strings.Join(parts, " "))
	}

	name := parts[FunctionNameIndex:]
	if name[len(name)-1] == InlineMarker {
		name = name[:len(name)-1]
	}
	if len(name) == 0 {
		return FunctionProfileData{}, bodyError("missing function name in %q", strings.Join(parts, " "))
	}

	var values [FunctionNameIndex]float64
	for i, column := range columnNames {
		v, err := bodyNumber(parts[i], column)
		if err != nil {
			return FunctionProfileData{}, err
		}
		values[i] = v
	}

	return FunctionProfileData{
		FunctionName:   strings.Join(name, " "),
		Flat:           values[0],
		FlatPercentage: values[1],
		SumPercentage:  values[2],
		Cum:            values[3],
		CumPercentage:  values[4],
		FlatUnit:       valueUnit(parts[0]),
		CumUnit:        valueUnit(parts[3]),
	}, nil
}

// extractBody parses the table lines following the header and applies the
// Filter to each row as it is read. It returns the retained rows in file
// order and the number of rows the Filter dropped.
func extractBody(lines []string, cfg Config) ([]FunctionProfileData, int, error) {
	rows := make([]FunctionProfileData, 0, len(lines))
	parsed, dropped := 0, 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		row, err := collectFunctionProfileData(strings.Fields(line))
		if err != nil {
			return nil, 0, err
		}
		parsed++
		if !cfg.Retain(row) {
			dropped++
			continue
		}
		rows = append(rows, row)
	}

	if parsed == 0 {
		return nil, 0, bodyError("empty body")
	}
	if len(rows) == 0 {
		return nil, 0, bodyError("empty functions profile data, all %d rows filtered out", dropped)
	}
	return rows, dropped, nil
}
