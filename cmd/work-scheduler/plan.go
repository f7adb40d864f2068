package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ka-tamaki/work-scheduler/internal/holidays"
	"github.com/ka-tamaki/work-scheduler/internal/schedule"
	"github.com/ka-tamaki/work-scheduler/pkg/dateutil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func planCmd() *cobra.Command {
	var title string
	var fromStr string
	var toStr string
	var factory string
	var format string
	var output string
	var save bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Lay out one table per month for a factory",
		Long:  "Plan the monthly tables of a production schedule from --from through --to inclusive, flagging the factory's holidays.",
		RunE: func(cmd *cobra.Command, args []string) error {
			start := dateutil.CurrentYearMonth()
			if fromStr != "" {
				var err error
				start, err = dateutil.ParseYearMonth(fromStr)
				if err != nil {
					return fmt.Errorf("invalid --from: %w", err)
				}
			}
			end := start
			if toStr != "" {
				var err error
				end, err = dateutil.ParseYearMonth(toStr)
				if err != nil {
					return fmt.Errorf("invalid --to: %w", err)
				}
			}

			// Load config
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if format == "" {
				format = cfg.Output.Format
			}

			if cfg.Holidays.InitOnStart {
				startYear, endYear := cfg.Holidays.YearRange(time.Now().Year())
				if _, err := runInitializer(cfg, startYear, endYear); err != nil {
					return fmt.Errorf("failed to initialize holidays: %w", err)
				}
			}

			req := schedule.Request{
				Title:   title,
				Start:   start,
				End:     end,
				Factory: holidays.Factory(factory),
			}

			store := newStore(cfg)
			cal, err := store.LoadExisting(req.Factory)
			switch {
			case errors.Is(err, holidays.ErrMalformedHolidayData):
				logger.Warn("Holiday file is malformed, planning without holidays",
					zap.String("factory", factory),
					zap.Error(err))
			case errors.Is(err, holidays.ErrMissingHolidayData):
				return fmt.Errorf("%w; run 'work-scheduler holidays init' first", err)
			case err != nil:
				return err
			}

			planner, err := schedule.NewPlanner(cfg.Layout.ToLayout(), logger)
			if err != nil {
				return err
			}

			logger.Info("Planning schedule",
				zap.String("factory", factory),
				zap.String("from", start.String()),
				zap.String("to", end.String()))

			tables, err := planner.Plan(req, cal)
			if err != nil {
				return fmt.Errorf("failed to plan schedule: %w", err)
			}

			ext := ".txt"
			if format == "json" {
				ext = ".json"
			}
			if save {
				output = filepath.Join(cfg.Output.Dir, schedule.OutputFileName(title, time.Now(), ext))
			}

			if output == "" {
				renderer, err := newRenderer(format, cmd.OutOrStdout())
				if err != nil {
					return err
				}
				return renderer.Render(title, tables, req.Factory)
			}

			if err := renderToFile(output, format, title, tables, req.Factory); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✅ Saved %d month table(s) to %s\n", len(tables), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", schedule.DefaultTitle, "Schedule title")
	cmd.Flags().StringVar(&fromStr, "from", "", "First month (YYYY-MM, default: current month)")
	cmd.Flags().StringVar(&toStr, "to", "", "Last month (YYYY-MM, default: --from)")
	cmd.Flags().StringVarP(&factory, "factory", "f", "", "Factory whose holidays are flagged")
	cmd.Flags().StringVar(&format, "format", "", "Output format: text or json (default: output.format)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	cmd.Flags().BoolVar(&save, "save", false, "Write to output.dir with a timestamped file name")
	_ = cmd.MarkFlagRequired("factory")

	return cmd
}

// renderToFile writes the schedule to path. The file is closed before returning
// so a failed flush is reported instead of a saved file.
func renderToFile(path, format, title string, tables []schedule.MonthTable, factory holidays.Factory) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	renderer, err := newRenderer(format, f)
	if err == nil {
		err = renderer.Render(title, tables, factory)
	}
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close output file: %w", closeErr)
	}
	return err
}

func newRenderer(format string, w io.Writer) (schedule.Renderer, error) {
	switch format {
	case "text":
		return schedule.NewTextRenderer(w), nil
	case "json":
		return schedule.NewJSONRenderer(w), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", format)
	}
}
