package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/nyanko/internal/frontend/handlers"
	"github.com/cory-johannsen/nyanko/internal/game/catalog"
	"github.com/cory-johannsen/nyanko/internal/game/unit"
)

func newListCmd(opts *options) *cobra.Command {
	var (
		rarity  string
		targets []string
		search  string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog units",
		Long:  `List catalog units in catalog order, optionally narrowed by rarity, target traits, and a name or code search.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			var f catalog.Filter
			if rarity != "" {
				r := unit.Rarity(strings.ToLower(rarity))
				if !r.Valid() {
					return fmt.Errorf("unknown rarity %q", rarity)
				}
				f.Rarity = r
			}
			for _, s := range targets {
				t := unit.Target(strings.ToLower(s))
				if !t.Valid() {
					return fmt.Errorf("unknown target %q", s)
				}
				f.ToggleTarget(t)
			}
			f.Query = search

			return opts.print(cmd.OutOrStdout(), handlers.RenderGrid(c.Filter(f), c.Len()))
		},
	}
	cmd.Flags().StringVar(&rarity, "rarity", "", "only units of this rarity")
	cmd.Flags().StringSliceVar(&targets, "target", nil, "only units with any of these target traits")
	cmd.Flags().StringVar(&search, "search", "", "name or code substring")
	return cmd
}
