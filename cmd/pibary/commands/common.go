package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/pibary/internal/config"
	"git.home.luguber.info/inful/pibary/internal/errors"
	"git.home.luguber.info/inful/pibary/internal/observability"
	"git.home.luguber.info/inful/pibary/internal/pi"
	"git.home.luguber.info/inful/pibary/internal/version"
)

// Global carries state shared by every subcommand.
type Global struct {
	Logger *slog.Logger
	// Out receives command output. Defaults to os.Stdout.
	Out io.Writer
	// Err receives log output. Defaults to os.Stderr.
	Err io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

func (g *Global) errOut() io.Writer {
	if g == nil || g.Err == nil {
		return os.Stderr
	}
	return g.Err
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" env:"PIBARY_CONFIG"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Search  SearchCmd  `cmd:"" help:"Locate the bytes of an input in the packed digit stream of pi"`
	Digits  DigitsCmd  `cmd:"" help:"Print decimal digits of pi"`
	Digit   DigitCmd   `cmd:"" help:"Compute the digit of pi at a position"`
	Bytes   BytesCmd   `cmd:"" help:"Dump the packed byte stream"`
	Bench   BenchCmd   `cmd:"" help:"Measure engine and byte generator throughput"`
	History HistoryCmd `cmd:"" help:"List recorded searches"`
	Serve   ServeCmd   `cmd:"" help:"Run the HTTP service"`
	Init    InitCmd    `cmd:"" help:"Write a default configuration file"`
}

// NewParser builds the kong parser for cli with g bound for commands and hooks.
func NewParser(cli *CLI, g *Global, extra ...kong.Option) (*kong.Kong, error) {
	opts := []kong.Option{
		kong.Name("pibary"),
		kong.Description("Digits of pi and a byte-pattern search over them."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(g),
	}
	return kong.New(cli, append(opts, extra...)...)
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(g *Global) error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	g.Logger = observability.NewLogger(g.errOut(), level, string(config.LogFormatText))
	slog.SetDefault(g.Logger)
	return nil
}

// loadConfig loads the configuration file and re-applies its logging
// settings unless --verbose already forced debug output.
func (c *CLI) loadConfig(g *Global) (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	if !c.Verbose {
		g.Logger = observability.NewLogger(g.errOut(),
			observability.ParseLevel(string(cfg.Logging.Level)),
			string(cfg.Logging.Format))
		slog.SetDefault(g.Logger)
	}
	return cfg, nil
}

// engineKind resolves a --engine flag against the configured default.
func engineKind(flag string, cfg *config.Config) (pi.Kind, error) {
	if flag == "" {
		flag = cfg.Engine.Kind
	}
	return pi.ParseKind(flag)
}

func requirePositive(name string, v int) error {
	if v > 0 {
		return nil
	}
	return errors.ValidationError(name+" must be positive").
		WithContext(name, v).
		Build()
}
