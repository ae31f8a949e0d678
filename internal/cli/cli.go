package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/jessc/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// pathList is a repeatable string flag.
type pathList []string

func (p *pathList) String() string { return strings.Join(*p, ",") }

func (p *pathList) Set(v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("empty directory")
	}
	*p = append(*p, v)
	return nil
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("jessc", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
jessc - expands jess directives such as jess.require('lib/util'); into plain JavaScript.

Usage:
  jessc [options] FILE|DIR

Arguments:
  FILE|DIR
    A .jess file, or a directory whose .jess files are compiled into -o.

Options:
`)
		flagSet.PrintDefaults()
	}

	var includes pathList
	flagSet.Var(&includes, "I", "Directory searched for required files before the file's own directory. Repeatable.")
	outFlag := flagSet.String("o", "", "Output file, or output directory for directory input. Defaults to stdout.")
	configFlag := flagSet.String("config", "", "Path to a jessc.hcl project file. Discovered next to the input when omitted.")
	cacheFlag := flagSet.String("cache", "", "Cache file recording the inputs of the last compilation.")
	forceFlag := flagSet.Bool("force", false, "Recompile even when the cache is up to date.")
	bundleFlag := flagSet.Bool("bundle", false, "Prepend the jess runtime module registry to the output.")
	depsFlag := flagSet.Bool("deps", false, "Print the require tree of FILE instead of compiling it.")
	watchFlag := flagSet.Bool("watch", false, "Recompile FILE whenever one of its inputs changes.")
	intervalFlag := flagSet.Duration("interval", 0, "Polling interval in watch mode (default 1s).")
	reloadPortFlag := flagSet.Int("reload-port", 0, "Port for the socket.io live reload server in watch mode. 0 is disabled.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server in watch mode. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "auto", "Log output format. Options: 'auto', 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		slog.Debug("No input provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}
	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("expected one input, got %d", flagSet.NArg())}
	}
	path := flagSet.Arg(0)
	slog.Debug("Input path determined.", "path", path)

	logFormat := strings.ToLower(*logFormatFlag)
	switch logFormat {
	case "auto", "text", "json":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'auto', 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		InputPath:       path,
		OutputPath:      *outFlag,
		ConfigPath:      *configFlag,
		SearchPath:      includes,
		CacheFile:       *cacheFlag,
		Force:           *forceFlag,
		Bundle:          *bundleFlag,
		PrintDeps:       *depsFlag,
		Watch:           *watchFlag,
		WatchInterval:   *intervalFlag,
		ReloadPort:      *reloadPortFlag,
		HealthcheckPort: *healthPortFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
