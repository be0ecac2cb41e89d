package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/nyanko/internal/frontend/handlers"
	"github.com/cory-johannsen/nyanko/internal/game/growth"
	"github.com/cory-johannsen/nyanko/internal/game/levelinput"
)

func newStatsCmd(opts *options) *cobra.Command {
	var (
		level string
		plus  string
		form  int
	)
	cmd := &cobra.Command{
		Use:   "stats <code>",
		Short: "Show a unit's stats at a level",
		Long: `Show a unit's effective stats. Level and plus level accept the same input
as the browser: out-of-range values are clamped and empty values reset.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			rec, ok := c.ByCode(args[0])
			if !ok {
				return fmt.Errorf("no unit with code %q", args[0])
			}
			base, ok := rec.StatsForForm(form - 1)
			if !ok {
				return fmt.Errorf("%s has %d forms, got form %d", rec.Code, rec.FormCount(), form)
			}

			lv := levelinput.ParseLevel(level, levelinput.LevelBounds.Default)
			pl := levelinput.ParsePlusLevel(plus, levelinput.PlusBounds.Default)
			stats, err := growth.ComputeEffectiveStats(base, lv, pl, rec.Tier)
			if err != nil {
				return fmt.Errorf("computing stats for %s: %w", rec.Code, err)
			}

			return opts.print(cmd.OutOrStdout(), handlers.RenderStatPanel(handlers.StatPanel{
				Record:    rec,
				Form:      form - 1,
				Level:     lv,
				PlusLevel: pl,
				Stats:     stats,
			}))
		},
	}
	cmd.Flags().StringVarP(&level, "level", "l", "1", "unit level (1-20)")
	cmd.Flags().StringVarP(&plus, "plus", "p", "0", "plus level (0-90)")
	cmd.Flags().IntVarP(&form, "form", "f", 1, "evolution form, starting at 1")
	return cmd
}
