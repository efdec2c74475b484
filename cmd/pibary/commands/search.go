package commands

import (
	"context"
	"encoding/hex"
	"fmt"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/pibary/internal/errors"
	"git.home.luguber.info/inful/pibary/internal/pi"
	"git.home.luguber.info/inful/pibary/internal/search"
)

// SearchCmd implements the 'search' command.
type SearchCmd struct {
	Input    string `arg:"" help:"Text whose bytes are searched for"`
	Engine   string `short:"e" help:"Digit engine (spigot or bellard); defaults to engine.kind"`
	MaxBytes int64  `name:"max-bytes" help:"Stop after this many bytes; 0 is unbounded, -1 uses search.max_bytes" default:"-1"`
	Hex      bool   `help:"Treat the input as hex-encoded bytes"`
}

func (s *SearchCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	pattern, err := s.pattern()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	history, err := search.OpenHistory(ctx, cfg.History)
	if err != nil {
		return err
	}
	svc, err := search.NewService(cfg, search.WithHistory(history))
	if err != nil {
		_ = history.Close()
		return err
	}
	defer func() { _ = svc.Close() }()

	res, err := svc.Search(ctx, search.Request{
		Pattern:  pattern,
		Engine:   pi.Kind(s.Engine),
		MaxBytes: s.MaxBytes,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(g.out(), "%d..%d\n", res.Start, res.End)
	return nil
}

func (s *SearchCmd) pattern() ([]byte, error) {
	if !s.Hex {
		return []byte(s.Input), nil
	}
	b, err := hex.DecodeString(s.Input)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "input is not valid hex").
			WithContext("input", s.Input).
			Build()
	}
	return b, nil
}
