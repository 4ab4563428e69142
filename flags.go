package main

import (
	"github.com/alecthomas/kong"
	log "github.com/sirupsen/logrus"

	"github.com/ZephyrDeng/pprof-toptext-mcp/topreport"
)

const (
	serverName    = "PprofTopText"
	serverVersion = "0.2.0"
)

type flags struct {
	Log        flagsLogs `embed:""   prefix:"log-"`
	ConfigPath string    `default:"" help:"Path to a YAML file overriding the filter thresholds (sum_maximum, cum_minimum)."`
	Version    bool      `help:"Show application version."`
}

type flagsLogs struct {
	Level  string `default:"info"   enum:"error,warn,info,debug" help:"Log level."`
	Format string `default:"logfmt" enum:"logfmt,json"           help:"Configure if structured logging as JSON or as logfmt"`
}

func (f flagsLogs) logrusLevel() log.Level {
	switch f.Level {
	case "error":
		return log.ErrorLevel
	case "warn":
		return log.WarnLevel
	case "debug":
		return log.DebugLevel
	default:
		return log.InfoLevel
	}
}

func (f flagsLogs) logrusFormatter() log.Formatter {
	if f.Format == "json" {
		return &log.JSONFormatter{}
	}
	return &log.TextFormatter{DisableColors: true, FullTimestamp: true}
}

// configureLogger applies the log flags to l. Logs go to stderr, stdout
// carries the MCP stdio transport.
func (f flagsLogs) configureLogger(l *log.Logger) {
	l.SetLevel(f.logrusLevel())
	l.SetFormatter(f.logrusFormatter())
}

func parseFlags(args []string) (flags, error) {
	f := flags{}
	parser, err := kong.New(&f,
		kong.Name("pprof-toptext-mcp"),
		kong.Description("MCP server that parses `go tool pprof -top` text reports and rewrites them into a compact table."),
	)
	if err != nil {
		return flags{}, err
	}
	if _, err := parser.Parse(args); err != nil {
		return flags{}, err
	}
	return f, nil
}

// loadConfig returns the filter thresholds, read from path when set.
func loadConfig(path string) (topreport.Config, error) {
	if path == "" {
		return topreport.DefaultConfig(), nil
	}
	return topreport.LoadConfigFile(path)
}
