package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"git.home.luguber.info/inful/pibary/internal/eventstore"
	"git.home.luguber.info/inful/pibary/internal/search"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit int `short:"n" help:"Maximum number of searches to list" default:"20"`
}

func (h *HistoryCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	if err := requirePositive("limit", h.Limit); err != nil {
		return err
	}
	history, err := search.OpenHistory(context.Background(), cfg.History)
	if err != nil {
		return err
	}
	svc, err := search.NewService(cfg, search.WithHistory(history))
	if err != nil {
		_ = history.Close()
		return err
	}
	defer func() { _ = svc.Close() }()

	runs, err := svc.History(h.Limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(g.out(), "No searches recorded")
		return nil
	}

	tw := tabwriter.NewWriter(g.out(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tSTARTED\tENGINE\tPATTERN\tSTATUS\tRESULT\tSCANNED")
	for i := range runs {
		run := &runs[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			run.RunID,
			run.StartedAt.Local().Format(time.DateTime),
			run.Engine,
			run.Pattern,
			run.Status,
			describeOutcome(run),
			run.BytesScanned)
	}
	return tw.Flush()
}

func describeOutcome(run *eventstore.SearchSummary) string {
	switch {
	case run.Found():
		return fmt.Sprintf("%d..%d", run.Start, run.End)
	case run.Outcome != "":
		return run.Outcome
	default:
		return "-"
	}
}
