package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	log "github.com/sirupsen/logrus"

	"github.com/ZephyrDeng/pprof-toptext-mcp/topreport"
)

// toolServer holds what every tool call shares: the configured thresholds
// and the logger handed to each Parser.
type toolServer struct {
	cfg    topreport.Config
	logger *log.Logger
}

func newToolServer(cfg topreport.Config, logger *log.Logger) *toolServer {
	return &toolServer{cfg: cfg, logger: logger}
}

// parserFor returns a Parser using the server thresholds, overridden by the
// optional sum_maximum and cum_minimum arguments.
func (s *toolServer) parserFor(args map[string]interface{}) (*topreport.Parser, error) {
	cfg := s.cfg
	if v, ok := args["sum_maximum"].(float64); ok {
		cfg.SumMaximum = v
	}
	if v, ok := args["cum_minimum"].(float64); ok {
		cfg.CumMinimum = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid thresholds: %w", err)
	}
	return topreport.NewParser(cfg, s.logger), nil
}

func textResult(texts ...string) *mcp.CallToolResult {
	content := make([]mcp.Content, 0, len(texts))
	for _, t := range texts {
		content = append(content, mcp.TextContent{Type: "text", Text: t})
	}
	return &mcp.CallToolResult{Content: content}
}

// rewriteURI resolves one report URI and renders it.
func rewriteURI(ctx context.Context, p *topreport.Parser, uri string, format topreport.Format) (string, error) {
	filePath, cleanup, err := getProfileAsFile(ctx, uri)
	if err != nil {
		return "", fmt.Errorf("failed to get profile file: %w", err)
	}
	defer cleanup()

	out, err := p.RewriteFile(filePath, format)
	if err != nil {
		return "", fmt.Errorf("failed to rewrite profile '%s': %w", uri, err)
	}
	return out, nil
}

// handleRewritePprofText serves the "rewrite_pprof_text" tool.
func (s *toolServer) handleRewritePprofText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments

	profileURIStr, ok := args["profile_uri"].(string)
	if !ok || profileURIStr == "" {
		return nil, fmt.Errorf("missing or invalid required argument: profile_uri (string)")
	}
	outputFormat, ok := args["output_format"].(string)
	if !ok {
		outputFormat = string(topreport.FormatText)
	}

	p, err := s.parserFor(args)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(log.Fields{
		"uri":    profileURIStr,
		"format": outputFormat,
	}).Info("Handling rewrite_pprof_text")

	out, err := rewriteURI(ctx, p, profileURIStr, topreport.Format(outputFormat))
	if err != nil {
		s.logger.WithError(err).Warn("Rewrite failed")
		return nil, err
	}

	s.logger.WithField("bytes", len(out)).Info("Rewrite successful")
	return textResult(out), nil
}

// handleRewritePprofBundle serves the "rewrite_pprof_bundle" tool. The first
// report that fails aborts the whole bundle.
func (s *toolServer) handleRewritePprofBundle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments

	urisStr, ok := args["profile_uris"].(string)
	if !ok || strings.TrimSpace(urisStr) == "" {
		return nil, fmt.Errorf("missing or invalid required argument: profile_uris (string)")
	}
	outputFormat, ok := args["output_format"].(string)
	if !ok {
		outputFormat = string(topreport.FormatText)
	}
	if topreport.Format(outputFormat) == topreport.FormatJSON {
		return nil, fmt.Errorf("unsupported output format for bundles: %s", outputFormat)
	}

	p, err := s.parserFor(args)
	if err != nil {
		return nil, err
	}

	var uris []string
	for _, u := range strings.Split(urisStr, ",") {
		if u = strings.TrimSpace(u); u != "" {
			uris = append(uris, u)
		}
	}
	s.logger.WithField("count", len(uris)).Info("Handling rewrite_pprof_bundle")

	var b strings.Builder
	for i, uri := range uris {
		out, err := rewriteURI(ctx, p, uri, topreport.Format(outputFormat))
		if err != nil {
			s.logger.WithError(err).WithField("uri", uri).Warn("Bundle rewrite failed")
			return nil, err
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "PROFILE NUMBER: %d\n", i+1)
		b.WriteString(out)
	}
	return textResult(b.String()), nil
}

// handleExportPprofProto serves the "export_pprof_proto" tool.
func (s *toolServer) handleExportPprofProto(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments

	profileURIStr, ok := args["profile_uri"].(string)
	if !ok || profileURIStr == "" {
		return nil, fmt.Errorf("missing or invalid required argument: profile_uri (string)")
	}
	outputPath, ok := args["output_path"].(string)
	if !ok || outputPath == "" {
		return nil, fmt.Errorf("missing or invalid required argument: output_path (string)")
	}
	if !filepath.IsAbs(outputPath) {
		abs, err := filepath.Abs(outputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve output path '%s': %w", outputPath, err)
		}
		outputPath = abs
	}

	p, err := s.parserFor(args)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(log.Fields{
		"uri":    profileURIStr,
		"output": outputPath,
	}).Info("Handling export_pprof_proto")

	filePath, cleanup, err := getProfileAsFile(ctx, profileURIStr)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile file: %w", err)
	}
	defer cleanup()

	report, err := p.ParseFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to parse profile '%s': %w", profileURIStr, err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file '%s': %w", outputPath, err)
	}
	writeErr := topreport.WriteProfile(out, report)
	closeErr := out.Close()
	if writeErr != nil {
		return nil, fmt.Errorf("failed to write pprof profile '%s': %w", outputPath, writeErr)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("failed to close pprof profile '%s': %w", outputPath, closeErr)
	}

	return textResult(fmt.Sprintf("pprof profile with %d samples written to: %s", len(report.Functions), outputPath)), nil
}
