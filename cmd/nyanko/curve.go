package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/nyanko/internal/frontend/handlers"
	"github.com/cory-johannsen/nyanko/internal/game/growth"
	"github.com/cory-johannsen/nyanko/internal/game/levelinput"
	"github.com/cory-johannsen/nyanko/internal/game/unit"
)

func newCurveCmd(opts *options) *cobra.Command {
	var (
		from int
		to   int
		code string
	)
	maxTotal := levelinput.LevelBounds.Max + levelinput.PlusBounds.Max
	cmd := &cobra.Command{
		Use:   "curve <tier>",
		Short: "Print a growth tier's multiplier table",
		Long: `Print the phases and per-level multipliers of a growth tier. With --unit,
print that unit's HP, attack, and DPS across the range instead. The range is
clamped to total levels 1..110.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			from = max(1, min(from, maxTotal))
			to = max(1, min(to, maxTotal))
			if from > to {
				from, to = to, from
			}

			if code != "" {
				c, err := opts.loadCatalog(cmd.Context())
				if err != nil {
					return err
				}
				rec, ok := c.ByCode(code)
				if !ok {
					return fmt.Errorf("no unit with code %q", code)
				}
				rows, err := growth.Table(rec.Tier, rec.BaseStats, from, to)
				if err != nil {
					return err
				}
				return opts.print(out, handlers.RenderCurveTable(rec, 0, rows))
			}

			if len(args) == 0 {
				return fmt.Errorf("a tier is required (one of %s) unless --unit is given", tierList())
			}
			tier, err := unit.ParseTier(args[0])
			if err != nil {
				return err
			}
			phases, err := growth.Curve(tier)
			if err != nil {
				return err
			}

			var b strings.Builder
			fmt.Fprintf(&b, "%s phases:\n", tier)
			start := 1
			for _, p := range phases {
				through := "∞"
				if p.Through != math.MaxInt {
					through = fmt.Sprint(p.Through)
				}
				fmt.Fprintf(&b, "  %3d..%-3s  +%.2f/level\n", start, through, p.Slope)
				start = p.Through + 1
			}
			fmt.Fprintf(&b, "\n  %5s  %8s\n", "total", "x")
			for lv := from; lv <= to; lv++ {
				m, err := growth.Multiplier(lv, tier)
				if err != nil {
					return err
				}
				fmt.Fprintf(&b, "  %5d  %8.2f\n", lv, m)
			}
			return opts.print(out, b.String())
		},
	}
	cmd.Flags().IntVar(&from, "from", 1, "first total level")
	cmd.Flags().IntVar(&to, "to", maxTotal, "last total level")
	cmd.Flags().StringVar(&code, "unit", "", "unit code to tabulate instead of a bare tier")
	return cmd
}

func tierList() string {
	tiers := unit.AllTiers()
	parts := make([]string, len(tiers))
	for i, t := range tiers {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}
