// Package main is the nyanko command-line tool for querying the unit catalog.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/nyanko/internal/frontend/telnet"
	"github.com/cory-johannsen/nyanko/internal/game/catalog"
)

// options holds flags shared by every subcommand.
type options struct {
	catalogDir string
	color      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "nyanko",
		Short:         "Nyanko unit catalog tool",
		Long:          `nyanko lists catalog units, computes their stats at a given level, and prints growth curves.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.catalogDir, "catalog", "content/cats", "YAML catalog content directory")
	root.PersistentFlags().BoolVar(&opts.color, "color", false, "keep ANSI colors in the output")

	root.AddCommand(newListCmd(opts))
	root.AddCommand(newStatsCmd(opts))
	root.AddCommand(newCurveCmd(opts))
	return root
}

func (o *options) loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	c, err := catalog.Load(ctx, catalog.DirSource{Dir: o.catalogDir})
	if err != nil {
		return nil, fmt.Errorf("loading catalog from %s: %w", o.catalogDir, err)
	}
	return c, nil
}

// print writes rendered text, dropping ANSI styling unless --color is set.
func (o *options) print(w io.Writer, text string) error {
	if !o.color {
		text = telnet.StripANSI(text)
	}
	_, err := io.WriteString(w, text)
	return err
}
