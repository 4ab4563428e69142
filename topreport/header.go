package topreport

import "strings"

const (
	filePrefix       = "File: "
	typePrefix       = "Type: "
	timePrefix       = "Time: "
	durationPrefix   = "Duration: "
	totalNodesPrefix = "Showing nodes accounting for "
)

// buildHeader validates the header block at the top of lines and returns it
// together with the number of lines it spans. The body starts at that offset.
func buildHeader(lines []string) (Header, int, error) {
	if len(lines) < 2 {
		return Header{}, 0, headerError("missing profile type line")
	}
	typeRest, ok := strings.CutPrefix(lines[1], typePrefix)
	if !ok {
		return Header{}, 0, headerError("missing %q prefix on profile type line", typePrefix)
	}
	profileType := strings.TrimSpace(typeRest)

	size := HeaderSizeFor(profileType)
	if len(lines) < size {
		return Header{}, 0, headerError("expected %d header lines for type %q, found %d", size, profileType, len(lines))
	}
	lines = lines[:size]

	fileRest, ok := strings.CutPrefix(lines[0], filePrefix)
	if !ok {
		return Header{}, 0, headerError("missing %q prefix on file name line", filePrefix)
	}

	h := Header{
		FileName:    strings.TrimSpace(fileRest),
		ProfileType: profileType,
	}
	if ts, ok := strings.CutPrefix(lines[2], timePrefix); ok {
		h.TimeStamp = strings.TrimSpace(ts)
	}

	nodesLine := lines[3]
	if profileType == ProfileTypeCPU {
		p, err := parseParallelism(lines[3])
		if err != nil {
			return Header{}, 0, err
		}
		h.Parallelism = p
		nodesLine = lines[4]
	}

	nodes, unit, err := parseTotalNodes(nodesLine)
	if err != nil {
		return Header{}, 0, err
	}
	h.TotalNodes = nodes
	h.ValueUnit = unit

	return h, size, nil
}

// parseParallelism parses "Duration: 2.01s, Total samples = 10.90s (542.34%)".
func parseParallelism(line string) (Parallelism, error) {
	rest, ok := strings.CutPrefix(line, durationPrefix)
	if !ok {
		return Parallelism{}, headerError("missing %q prefix on duration line", durationPrefix)
	}
	duration, _, ok := strings.Cut(rest, ",")
	if !ok {
		return Parallelism{}, headerError("missing ',' on duration line")
	}
	_, samples, ok := strings.Cut(line, "=")
	if !ok {
		return Parallelism{}, headerError("missing '=' on duration line")
	}
	samplesTime, pct, ok := strings.Cut(samples, "(")
	if !ok {
		return Parallelism{}, headerError("missing '(' on duration line")
	}
	pct, _, ok = strings.Cut(pct, ")")
	if !ok {
		return Parallelism{}, headerError("missing ')' on duration line")
	}
	pct = strings.TrimSuffix(strings.TrimSpace(pct), "%")

	return Parallelism{
		Duration:               headerNumber(duration),
		TotalSamplesTime:       headerNumber(samplesTime),
		TotalSamplesPercentage: headerNumber(pct),
	}, nil
}

// parseTotalNodes parses "Showing nodes accounting for 10.90s, 100% of 10.90s total"
// and also returns the unit suffix of the accounted time.
//
// The total is located with a plain split on "of", the same way the line has
// always been read; a stricter grammar would reject reports accepted today.
func parseTotalNodes(line string) (TotalNodes, string, error) {
	rest, ok := strings.CutPrefix(line, totalNodesPrefix)
	if !ok {
		return TotalNodes{}, "", headerError("missing %q prefix on node accounting line", totalNodesPrefix)
	}
	collected, tail, ok := strings.Cut(rest, ",")
	if !ok {
		return TotalNodes{}, "", headerError("missing ',' on node accounting line")
	}
	pct, _, ok := strings.Cut(tail, "%")
	if !ok {
		return TotalNodes{}, "", headerError("missing '%%' on node accounting line")
	}
	parts := strings.Split(rest, "of")
	if len(parts) < 2 {
		return TotalNodes{}, "", headerError("missing 'of' on node accounting line")
	}

	return TotalNodes{
		CollectedTime:       headerNumber(collected),
		CollectedPercentage: headerNumber(pct),
		TotalTime:           headerNumber(parts[1]),
	}, valueUnit(collected), nil
}
