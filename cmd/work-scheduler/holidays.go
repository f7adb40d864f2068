package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ka-tamaki/work-scheduler/internal/calendar"
	"github.com/ka-tamaki/work-scheduler/internal/holidays"
	"github.com/ka-tamaki/work-scheduler/pkg/dateutil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func holidaysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "Maintain per-factory holiday calendars",
	}

	cmd.AddCommand(holidaysInitCmd())
	cmd.AddCommand(holidaysEditCmd("add", "Mark days as holidays", editAdd))
	cmd.AddCommand(holidaysEditCmd("remove", "Clear holidays", editRemove))
	cmd.AddCommand(holidaysEditCmd("toggle", "Flip days between holiday and working day", editToggle))
	cmd.AddCommand(holidaysListCmd())

	return cmd
}

func holidaysInitCmd() *cobra.Command {
	var fromYear int
	var toYear int

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate weekends and designated holidays for every factory",
		Long:  "Merge weekends and designated holidays into every factory's calendar. Existing days, including manual edits, are kept.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			startYear, endYear := cfg.Holidays.YearRange(time.Now().Year())
			if fromYear != 0 {
				startYear = fromYear
			}
			if toYear != 0 {
				endYear = toYear
			}

			results, err := runInitializer(cfg, startYear, endYear)
			if err != nil {
				return fmt.Errorf("holiday initialization failed: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n📋 Holiday Summary (%d to %d):\n", startYear, endYear)
			fmt.Fprintln(out, "═══════════════════════════════════════════════════════")
			for _, r := range results {
				note := ""
				if r.Malformed {
					note = "  (unreadable file replaced)"
				}
				fmt.Fprintf(out, "  %-12s added %5d, total %5d%s\n", r.Factory, r.Added, r.Total, note)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&fromYear, "from-year", 0, "First year to generate (default: current - holidays.years_before)")
	cmd.Flags().IntVar(&toYear, "to-year", 0, "Last year to generate (default: current + holidays.years_after)")

	return cmd
}

type editFunc func(m *holidays.Manager, date time.Time, out io.Writer) error

func editAdd(m *holidays.Manager, date time.Time, out io.Writer) error {
	if err := m.AddHoliday(date.Year(), int(date.Month()), date.Day()); err != nil {
		return err
	}
	fmt.Fprintf(out, "  %s  holiday\n", date.Format("2006-01-02"))
	return nil
}

func editRemove(m *holidays.Manager, date time.Time, out io.Writer) error {
	if err := m.RemoveHoliday(date.Year(), int(date.Month()), date.Day()); err != nil {
		return err
	}
	fmt.Fprintf(out, "  %s  working day\n", date.Format("2006-01-02"))
	return nil
}

func editToggle(m *holidays.Manager, date time.Time, out io.Writer) error {
	isHoliday, err := m.ToggleHoliday(date.Year(), int(date.Month()), date.Day())
	if err != nil {
		return err
	}
	state := "working day"
	if isHoliday {
		state = "holiday"
	}
	fmt.Fprintf(out, "  %s  %s\n", date.Format("2006-01-02"), state)
	return nil
}

func holidaysEditCmd(use, short string, edit editFunc) *cobra.Command {
	var factory string

	cmd := &cobra.Command{
		Use:   use + " DATE...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dates, err := parseDates(args)
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			manager, err := loadManager(newStore(cfg), holidays.Factory(factory))
			if err != nil {
				return err
			}

			for _, date := range dates {
				if err := edit(manager, date, cmd.OutOrStdout()); err != nil {
					return fmt.Errorf("failed to %s %s: %w", use, date.Format("2006-01-02"), err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&factory, "factory", "f", "", "Factory to edit")
	_ = cmd.MarkFlagRequired("factory")

	return cmd
}

func holidaysListCmd() *cobra.Command {
	var factory string
	var year int
	var month int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show a factory's holidays for a year or month",
		RunE: func(cmd *cobra.Command, args []string) error {
			if month < 0 || month > 12 {
				return fmt.Errorf("--month must be 1..12, got %d", month)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			manager, err := loadManager(newStore(cfg), holidays.Factory(factory))
			if err != nil {
				return err
			}

			src, err := buildHolidaySource(cfg, logger)
			if err != nil {
				return err
			}

			if year == 0 {
				year = time.Now().Year()
			}
			months := []int{month}
			if month == 0 {
				months = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
			}

			printHolidays(cmd.OutOrStdout(), manager.Snapshot(), src, year, months)
			return nil
		},
	}

	cmd.Flags().StringVarP(&factory, "factory", "f", "", "Factory to list")
	cmd.Flags().IntVar(&year, "year", 0, "Year (default: current)")
	cmd.Flags().IntVar(&month, "month", 0, "Month 1..12 (default: whole year)")
	_ = cmd.MarkFlagRequired("factory")

	return cmd
}

// loadManager validates the factory and loads its calendar. A malformed file is
// reported as a warning and the manager starts empty.
func loadManager(store *holidays.Store, factory holidays.Factory) (*holidays.Manager, error) {
	if err := store.Validate(factory); err != nil {
		return nil, fmt.Errorf("%w (configured: %s)", err, joinFactories(store.Factories()))
	}

	manager := holidays.NewManager(store, factory, logger)
	if err := manager.Load(); err != nil && !errors.Is(err, holidays.ErrMalformedHolidayData) {
		return nil, err
	}
	return manager, nil
}

func printHolidays(out io.Writer, cal holidays.Calendar, src calendar.HolidaySource, year int, months []int) {
	total := 0
	for _, month := range months {
		days := cal.Days(year, month)
		if len(days) == 0 {
			continue
		}

		var names map[int]string
		if src != nil {
			var err error
			names, err = src.HolidaysInMonth(year, time.Month(month))
			if err != nil {
				logger.Warn("Failed to look up holiday names",
					zap.Int("year", year),
					zap.Int("month", month),
					zap.Error(err))
			}
		}

		fmt.Fprintf(out, "\n📅 %04d-%02d\n", year, month)
		for _, day := range days {
			date := dateutil.Date(year, month, day)
			label := names[day]
			if label == "" && dateutil.IsWeekend(date) {
				label = "週末"
			}
			fmt.Fprintf(out, "  %2d (%s)  %s\n", day, dateutil.WeekdayLabel(year, month, day), label)
		}
		total += len(days)
	}

	fmt.Fprintf(out, "\nTotal: %d day(s)\n", total)
}

func parseDates(args []string) ([]time.Time, error) {
	dates := make([]time.Time, 0, len(args))
	for _, arg := range args {
		date, err := dateutil.ParseDate(arg)
		if err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}
	return dates, nil
}

func joinFactories(factories []holidays.Factory) string {
	names := make([]string, len(factories))
	for i, f := range factories {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
