package commands

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"git.home.luguber.info/inful/pibary/internal/bytestream"
	"git.home.luguber.info/inful/pibary/internal/pi"
)

// BenchCmd implements the 'bench' command.
type BenchCmd struct {
	Bytes   []int    `help:"Pull sizes in bytes" default:"64,256" sep:","`
	Engines []string `help:"Engines to measure" default:"spigot,bellard" sep:","`
	Rounds  int      `help:"Fresh generators per measurement" default:"3"`
}

type benchResult struct {
	engine  pi.Kind
	target  string
	size    int
	elapsed time.Duration
}

// perOp is the mean time for one round.
func (r benchResult) perOp(rounds int) time.Duration {
	op := r.elapsed / time.Duration(rounds)
	if op <= 0 {
		return time.Nanosecond
	}
	return op
}

func (b *BenchCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	if err := requirePositive("rounds", b.Rounds); err != nil {
		return err
	}
	kinds := make([]pi.Kind, 0, len(b.Engines))
	for _, name := range b.Engines {
		kind, err := pi.ParseKind(name)
		if err != nil {
			return err
		}
		kinds = append(kinds, kind)
	}
	for _, size := range b.Bytes {
		if err := requirePositive("bytes", size); err != nil {
			return err
		}
	}

	p := message.NewPrinter(language.English)
	p.Fprintf(g.out(), "%-8s %-6s %8s %14s %14s\n", "engine", "target", "size", "ns/op", "bytes/s")
	for _, kind := range kinds {
		for _, size := range b.Bytes {
			for _, target := range []string{"digits", "bytes"} {
				res, err := b.measure(kind, target, size, cfg.Engine.BatchWidth)
				if err != nil {
					return err
				}
				op := res.perOp(b.Rounds)
				rate := float64(size) / op.Seconds()
				p.Fprintf(g.out(), "%-8s %-6s %8d %14d %14.0f\n",
					res.engine, res.target, res.size, op.Nanoseconds(), rate)
			}
		}
	}
	return nil
}

// measure pulls size digits or size packed bytes from a fresh source per round.
func (b *BenchCmd) measure(kind pi.Kind, target string, size, batchWidth int) (benchResult, error) {
	res := benchResult{engine: kind, target: target, size: size}
	buf := make([]byte, size)
	for range b.Rounds {
		src, err := pi.NewSource(kind, 0, batchWidth)
		if err != nil {
			return res, err
		}
		begin := time.Now()
		switch target {
		case "digits":
			_ = pi.Take(src, size)
		case "bytes":
			bytestream.New(src).Fill(buf)
		default:
			return res, fmt.Errorf("unknown bench target %q", target)
		}
		res.elapsed += time.Since(begin)
	}
	return res, nil
}
