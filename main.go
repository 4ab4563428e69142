package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	log "github.com/sirupsen/logrus"
)

func main() {
	f, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if f.Version {
		fmt.Println(serverName, serverVersion)
		return
	}
	f.Log.configureLogger(log.StandardLogger())

	cfg, err := loadConfig(f.ConfigPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.WithFields(log.Fields{
		"sum_maximum": cfg.SumMaximum,
		"cum_minimum": cfg.CumMinimum,
	}).Info("Loaded filter thresholds")

	mcpServer := newMCPServer(newToolServer(cfg, log.StandardLogger()))

	log.Println("Starting PprofTopText MCP server via stdio...")
	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func newMCPServer(s *toolServer) *server.MCPServer {
	mcpServer := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithLogging(),
		server.WithRecovery(),
	)

	thresholdOptions := []mcp.ToolOption{
		mcp.WithNumber("sum_maximum",
			mcp.Description("Keep rows whose running sum% is at most this value. Defaults to the server configuration."),
		),
		mcp.WithNumber("cum_minimum",
			mcp.Description("Always keep rows whose cum% is at least this value. Defaults to the server configuration."),
		),
	}

	rewriteTool := mcp.NewTool("rewrite_pprof_text", append([]mcp.ToolOption{
		mcp.WithDescription("Parse a `go tool pprof -top` text report, drop low-impact rows and return a compact table."),
		mcp.WithString("profile_uri",
			mcp.Description("URI of the text report ('file://', 'http://', 'https://' or a plain local path)."),
			mcp.Required(),
		),
		mcp.WithString("output_format",
			mcp.Description("Output format of the rewritten report."),
			mcp.DefaultString("text"),
			mcp.Enum("text", "markdown", "json"),
		),
	}, thresholdOptions...)...)

	bundleTool := mcp.NewTool("rewrite_pprof_bundle", append([]mcp.ToolOption{
		mcp.WithDescription("Rewrite several text reports and join them, each under a 'PROFILE NUMBER: n' line."),
		mcp.WithString("profile_uris",
			mcp.Description("Comma separated list of report URIs."),
			mcp.Required(),
		),
		mcp.WithString("output_format",
			mcp.Description("Output format of each rewritten report."),
			mcp.DefaultString("text"),
			mcp.Enum("text", "markdown"),
		),
	}, thresholdOptions...)...)

	exportTool := mcp.NewTool("export_pprof_proto", append([]mcp.ToolOption{
		mcp.WithDescription("Convert the retained rows of a text report into a gzipped pprof protobuf file."),
		mcp.WithString("profile_uri",
			mcp.Description("URI of the text report ('file://', 'http://', 'https://' or a plain local path)."),
			mcp.Required(),
		),
		mcp.WithString("output_path",
			mcp.Description("Where to write the .pb.gz file (absolute, or relative to the server working directory)."),
			mcp.Required(),
		),
	}, thresholdOptions...)...)

	mcpServer.AddTool(rewriteTool, s.handleRewritePprofText)
	mcpServer.AddTool(bundleTool, s.handleRewritePprofBundle)
	mcpServer.AddTool(exportTool, s.handleExportPprofProto)
	return mcpServer
}
