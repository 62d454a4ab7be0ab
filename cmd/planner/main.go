// Package main is the planner CLI: a terminal front-end for the
// horse-calendar API covering the month view, day editing, and the roster.
package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/adeline-t/horse-calendar/internal/domain"
	"github.com/adeline-t/horse-calendar/pkg/client"
	"github.com/adeline-t/horse-calendar/pkg/planner"
)

// App holds the CLI's shared dependencies, built once per invocation.
type App struct {
	cfg    cliConfig
	api    *client.Client
	store  *planner.Store
	editor *planner.Editor
	ctx    context.Context
}

var (
	configPath string
	app        *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "planner",
		Short: "Horse calendar planner - manage cavaliers and day assignments",
		Long:  `A CLI for the horse-calendar server: view the month grid, assign cavaliers to days, and maintain the roster.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to horse_calendar.yaml (default: cwd, then home)")

	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(dayCmd())
	rootCmd.AddCommand(assignCmd())
	rootCmd.AddCommand(unassignCmd())
	rootCmd.AddCommand(commentCmd())
	rootCmd.AddCommand(worktypeCmd())
	rootCmd.AddCommand(rosterCmd())
	rootCmd.AddCommand(statsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp loads the config, builds the API client, and fills the store.
func initApp() error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	api := client.New(cfg.ServerURL)
	store := planner.NewStore(api)
	app = &App{
		cfg:    cfg,
		api:    api,
		store:  store,
		editor: planner.NewEditor(store),
		ctx:    context.Background(),
	}
	if err := app.store.Refresh(app.ctx); err != nil {
		return fmt.Errorf("cannot reach server at %s: %w", cfg.ServerURL, err)
	}
	return nil
}

// openDay points the editor at one day, validating the key.
func openDay(date string) error {
	return app.editor.Open(domain.DateKey(date))
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [year month]",
		Short: "Show the month grid (defaults to the current month)",
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			year, month := now.Year(), now.Month()
			if len(args) == 2 {
				y, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("year must be a number: %w", err)
				}
				m, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("month must be a number: %w", err)
				}
				if m < 1 || m > 12 {
					return fmt.Errorf("month must be 1-12, got %d", m)
				}
				year, month = y, time.Month(m)
			}

			renderGrid(cmd.OutOrStdout(), year, month, app.store.Snapshot())
			return nil
		},
	}
}

func dayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "day <date>",
		Short: "Show one day's assignments, work type and comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := openDay(args[0]); err != nil {
				return err
			}
			defer app.editor.Close()

			rec, err := app.editor.Record()
			if err != nil {
				return err
			}
			renderDay(cmd.OutOrStdout(), app.editor.Key(), rec)

			eligible, err := app.editor.Eligible()
			if err != nil {
				return err
			}
			if len(eligible) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "  available:")
				for _, c := range eligible {
					fmt.Fprintf(cmd.OutOrStdout(), "    - %s\n", c.Name)
				}
			}
			return nil
		},
	}
}

func assignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assign <date> <name>",
		Short: "Assign a cavalier to a day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, name := args[0], args[1]
			if err := openDay(date); err != nil {
				return err
			}
			defer app.editor.Close()

			rec, err := app.editor.Record()
			if err != nil {
				return err
			}
			if rec.Assigned(name) {
				return fmt.Errorf("%s is already assigned on %s", name, date)
			}
			if err := app.editor.Toggle(app.ctx, name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s assigned on %s\n", name, date)
			return nil
		},
	}
}

func unassignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unassign <date> <name>",
		Short: "Remove a cavalier from a day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, name := args[0], args[1]
			if err := openDay(date); err != nil {
				return err
			}
			defer app.editor.Close()

			rec, err := app.editor.Record()
			if err != nil {
				return err
			}
			if !rec.Assigned(name) {
				return fmt.Errorf("%s is not assigned on %s", name, date)
			}
			if err := app.editor.Toggle(app.ctx, name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s removed from %s\n", name, date)
			return nil
		},
	}
}

func commentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "comment <date> <text>",
		Short: "Set a day's comment (empty text clears it)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := openDay(args[0]); err != nil {
				return err
			}
			defer app.editor.Close()

			if err := app.editor.SetComment(app.ctx, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ comment saved for %s\n", args[0])
			return nil
		},
	}
}

func worktypeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worktype <date> <type>",
		Short: "Set a day's work type (longe, liberte, repos, plat, cso, balade, tap; empty clears)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := openDay(args[0]); err != nil {
				return err
			}
			defer app.editor.Close()

			if err := app.editor.SetWorkType(app.ctx, domain.WorkType(args[1])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ work type saved for %s\n", args[0])
			return nil
		},
	}
}

func rosterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Manage the cavalier roster",
	}
	cmd.AddCommand(rosterListCmd())
	cmd.AddCommand(rosterAddCmd())
	cmd.AddCommand(rosterRemoveCmd())
	cmd.AddCommand(rosterWindowCmd())
	return cmd
}

func rosterListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all cavaliers with their activity windows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			roster := app.store.Roster()
			if len(roster) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "roster is empty")
				return nil
			}
			today := domain.DateKeyOf(time.Now())
			for i, c := range roster {
				window := ""
				if c.StartDate != "" || c.EndDate != "" {
					window = fmt.Sprintf(" [%s → %s]", orDash(string(c.StartDate)), orDash(string(c.EndDate)))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s (%s) %s%s\n", i, c.Name, c.Color, c.StatusOn(today), window)
			}
			return nil
		},
	}
}

func rosterAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a cavalier to the roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			colorFlag, _ := cmd.Flags().GetString("color")
			start, _ := cmd.Flags().GetString("start")
			end, _ := cmd.Flags().GetString("end")

			cav := domain.Cavalier{
				Name:      args[0],
				Color:     colorFlag,
				StartDate: domain.DateKey(start),
				EndDate:   domain.DateKey(end),
			}
			if err := app.store.AddCavalier(app.ctx, cav); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s added (%d on roster)\n", args[0], len(app.store.Roster()))
			return nil
		},
	}
	cmd.Flags().String("color", "", "Hex display color (default #667eea)")
	cmd.Flags().String("start", "", "First active day (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "Last active day (YYYY-MM-DD)")
	return cmd
}

func rosterRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <index>",
		Short: "Remove the cavalier at a roster position (past assignments keep the name)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("index must be a number: %w", err)
			}
			if err := app.store.RemoveCavalier(app.ctx, index); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ removed (%d on roster)\n", len(app.store.Roster()))
			return nil
		},
	}
}

func rosterWindowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "window <index>",
		Short: "Set a cavalier's activity window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("index must be a number: %w", err)
			}

			patch := domain.CavalierPatch{}
			if cmd.Flags().Changed("start") {
				start, _ := cmd.Flags().GetString("start")
				key := domain.DateKey(start)
				patch.StartDate = &key
			}
			if cmd.Flags().Changed("end") {
				end, _ := cmd.Flags().GetString("end")
				key := domain.DateKey(end)
				patch.EndDate = &key
			}
			if patch.StartDate == nil && patch.EndDate == nil {
				return fmt.Errorf("nothing to change: pass --start and/or --end")
			}

			if err := app.store.UpdateCavalier(app.ctx, index, patch); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ window updated")
			return nil
		},
	}
	cmd.Flags().String("start", "", "First active day (YYYY-MM-DD, empty clears)")
	cmd.Flags().String("end", "", "Last active day (YYYY-MM-DD, empty clears)")
	return cmd
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [year month]",
		Short: "Show assignment counts per cavalier and work type",
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var month, year string
			if len(args) == 2 {
				year, month = args[0], args[1]
			}

			report, err := app.api.Stats(app.ctx, month, year)
			if err != nil {
				return err
			}

			names := make([]string, 0, len(report.CavalierCounts))
			for name := range report.CavalierCounts {
				names = append(names, name)
			}
			sort.Slice(names, func(i, j int) bool {
				ci, cj := report.CavalierCounts[names[i]], report.CavalierCounts[names[j]]
				if ci != cj {
					return ci > cj
				}
				return names[i] < names[j]
			})

			out := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintln(out, "no assignments")
				return nil
			}
			fmt.Fprintln(out, "assignments:")
			for _, name := range names {
				fmt.Fprintf(out, "  %-20s %d\n", name, report.CavalierCounts[name])
			}
			if len(report.WorkTypeCounts) > 0 {
				fmt.Fprintln(out, "work types:")
				for _, wt := range domain.WorkTypes {
					if n := report.WorkTypeCounts[wt]; n > 0 {
						fmt.Fprintf(out, "  %s %-12s %d\n", wt.Icon(), wt.Label(), n)
					}
				}
			}
			return nil
		},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
