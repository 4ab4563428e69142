package topreport

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Parser parses and rewrites top reports with a fixed Config.
// A Parser holds no per-call state and may be shared between goroutines.
type Parser struct {
	cfg    Config
	logger logrus.FieldLogger
}

// NewParser returns a Parser using cfg. A nil logger only reports warnings
// to stderr.
func NewParser(cfg Config, logger logrus.FieldLogger) *Parser {
	if logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		logger = l
	}
	return &Parser{
		cfg:    cfg,
		logger: logger,
	}
}

// Config returns the thresholds used by the Filter.
func (p *Parser) Config() Config { return p.cfg }

// ParseFile reads the report at path and parses it. Missing paths, paths
// that are not regular files and whitespace-only files fail before any
// line is inspected.
func (p *Parser) ParseFile(path string) (Report, error) {
	text, err := readReport(path)
	if err != nil {
		return Report{}, err
	}
	r, err := p.Parse(text)
	if err != nil {
		return Report{}, err
	}
	p.logger.WithFields(logrus.Fields{
		"path": path,
		"rows": len(r.Functions),
	}).Debug("Parsed profile report file")
	return r, nil
}

// Parse parses an in-memory report.
func (p *Parser) Parse(text string) (Report, error) {
	if strings.TrimSpace(text) == "" {
		return Report{}, &ParseError{Kind: KindEmptyFile}
	}

	lines := splitLines(text)
	header, size, err := buildHeader(lines)
	if err != nil {
		return Report{}, err
	}
	if len(lines) <= size {
		return Report{}, bodyError("no body found in profile data")
	}

	rows, dropped, err := extractBody(lines[size:], p.cfg)
	if err != nil {
		return Report{}, err
	}

	p.logger.WithFields(logrus.Fields{
		"file":        header.FileName,
		"type":        header.ProfileType,
		"header_size": size,
		"retained":    len(rows),
		"dropped":     dropped,
	}).Debug("Parsed profile report")

	return Report{
		Header:     header,
		HeaderSize: size,
		Functions:  rows,
	}, nil
}

// RewriteText parses text and renders the retained rows in the given format.
func (p *Parser) RewriteText(text string, format Format) (string, error) {
	r, err := p.Parse(text)
	if err != nil {
		return "", err
	}
	return Render(r, format)
}

// RewriteFile parses the report at path and renders it in the given format.
func (p *Parser) RewriteFile(path string, format Format) (string, error) {
	r, err := p.ParseFile(path)
	if err != nil {
		return "", err
	}
	return Render(r, format)
}

// ParseFile parses the report at path with DefaultConfig.
func ParseFile(path string) (Report, error) {
	return NewParser(DefaultConfig(), nil).ParseFile(path)
}

// Parse parses text with DefaultConfig.
func Parse(text string) (Report, error) {
	return NewParser(DefaultConfig(), nil).Parse(text)
}

// RewriteText parses text with DefaultConfig and returns the canonical rewrite.
func RewriteText(text string) (string, error) {
	return NewParser(DefaultConfig(), nil).RewriteText(text, FormatText)
}

func readReport(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fileReadError(err)
	}
	if !info.Mode().IsRegular() {
		return "", fileReadError(&os.PathError{Op: "read", Path: path, Err: ErrNotRegularFile})
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fileReadError(err)
	}
	if strings.TrimSpace(string(b)) == "" {
		return "", &ParseError{Kind: KindEmptyFile}
	}
	return string(b), nil
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
