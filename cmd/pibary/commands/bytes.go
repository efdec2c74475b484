package commands

import (
	"encoding/hex"
	"fmt"

	"git.home.luguber.info/inful/pibary/internal/bytestream"
	"git.home.luguber.info/inful/pibary/internal/errors"
	"git.home.luguber.info/inful/pibary/internal/pi"
)

// BytesCmd implements the 'bytes' command.
type BytesCmd struct {
	Count  int    `short:"n" help:"Number of bytes to produce" default:"64"`
	Engine string `short:"e" help:"Digit engine (spigot or bellard); defaults to engine.kind"`
	Hex    bool   `help:"Print hex instead of raw bytes"`
}

func (b *BytesCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	if err := requirePositive("count", b.Count); err != nil {
		return err
	}
	kind, err := engineKind(b.Engine, cfg)
	if err != nil {
		return err
	}
	src, err := pi.NewSource(kind, 0, cfg.Engine.BatchWidth)
	if err != nil {
		return err
	}

	buf := make([]byte, b.Count)
	bytestream.New(src).Fill(buf)
	if b.Hex {
		_, err = fmt.Fprintln(g.out(), hex.EncodeToString(buf))
	} else {
		_, err = g.out().Write(buf)
	}
	if err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "write output").Build()
	}
	return nil
}
