package main

import (
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/DeltaTestSoftware/rampview/plot"
	"github.com/DeltaTestSoftware/rampview/series"
)

type showFunc func(fig *plot.Figure) error

// showFigure opens the blocking plot window.
var showFigure showFunc = plot.Show

func newRootCommand(show showFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rampview <file.csv>",
		Short:         "Plot a time series and its first difference",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}))
			return run(logger, args[0], show)
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	return cmd
}

func run(logger *slog.Logger, path string, show showFunc) error {
	tbl, err := series.Load(path)
	if err != nil {
		return err
	}
	logger.Info("series loaded",
		"path", path,
		"rows", tbl.Len(),
		"time", tbl.TimeKind.String(),
	)

	if err := show(buildFigure(filepath.Base(path), tbl)); err != nil {
		return err
	}
	logger.Debug("window closed")
	return nil
}

// buildFigure puts the raw values first and their first difference second.
// The differences are drawn at the time of each interval's first sample.
func buildFigure(title string, tbl *series.Table) *plot.Figure {
	rate := tbl.Rate()
	fig := plot.NewFigure(title)
	fig.Line(series.ValueColumn, tbl.Time, tbl.Value)
	fig.Line("rate", rate.Time, rate.Value)
	return fig
}
