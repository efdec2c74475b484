package commands

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/pibary/internal/errors"
	"git.home.luguber.info/inful/pibary/internal/logfields"
	"git.home.luguber.info/inful/pibary/internal/pi"
)

// DigitsCmd implements the 'digits' command.
type DigitsCmd struct {
	Count  int    `short:"n" help:"Number of digits to print" default:"100"`
	Engine string `short:"e" help:"Digit engine (spigot or bellard); defaults to engine.kind"`
	Start  int64  `help:"First digit position; -1 uses engine.start" default:"-1"`
}

func (d *DigitsCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	if err := requirePositive("count", d.Count); err != nil {
		return err
	}
	kind, err := engineKind(d.Engine, cfg)
	if err != nil {
		return err
	}
	start := d.Start
	if start == -1 {
		start = cfg.Engine.Start
	}

	src, err := pi.NewSource(kind, start, cfg.Engine.BatchWidth)
	if err != nil {
		return err
	}
	slog.Debug("Generating digits",
		logfields.Engine(string(kind)),
		logfields.Position(start),
		logfields.Count(d.Count))
	fmt.Fprintln(g.out(), pi.Format(pi.Take(src, d.Count)))
	return nil
}

// DigitCmd implements the 'digit' command.
type DigitCmd struct {
	Position int64 `arg:"" help:"Zero-based digit position (0 is the leading 3)"`
}

func (d *DigitCmd) Run(g *Global, root *CLI) error {
	if _, err := root.loadConfig(g); err != nil {
		return err
	}
	if d.Position < 0 {
		return errors.ValidationError("position must not be negative").
			WithContext("position", d.Position).
			Build()
	}
	fmt.Fprintln(g.out(), pi.DigitAt(d.Position))
	return nil
}
