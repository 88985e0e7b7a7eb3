/*
Copyright © 2025 Eunomiac

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/Eunomiac/brawl-deck-builder-sub000/internal/iodb"
	"github.com/Eunomiac/brawl-deck-builder-sub000/internal/iosearch"
	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/brawl"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getSearchCmd returns the search command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getSearchCmd() *cobra.Command {
	var (
		exact bool
		limit int
	)

	searchCmd := &cobra.Command{
		Use:   "search <name>",
		Short: "Search imported cards by name",
		Long: `Search looks up cards by name in the imported data.

The query goes through the same normalization as the imported names,
so capitalization, accents, punctuation and face separators do not
matter. An exact lookup is tried first; when nothing matches, names
starting with the query are returned instead.

Wrap the query in double quotes (or pass --exact) to suppress the
prefix fallback.

Examples:
  brawldeck search "Lightning Bolt"
  brawldeck search fire/ice
  brawldeck search light --limit 20
  brawldeck search '"Fire // Ice"'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			err := runSearch(query, brawl.SearchOptions{
				Exact: exact,
				Limit: limit,
			})
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	searchCmd.Flags().BoolVarP(&exact, "exact", "e", false,
		"match the full name only, no prefix fallback")
	searchCmd.Flags().IntVarP(&limit, "limit", "l", 0,
		"cap the number of results (0 = unlimited)")

	return searchCmd
}

func runSearch(query string, opts brawl.SearchOptions) error {
	ctx := context.Background()

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	searcher := iosearch.NewResolver(iodb.NewCardStore(op))

	resp, err := searcher.Search(ctx, query, opts)
	if err != nil {
		return err
	}

	if len(resp.Results) == 0 {
		gn.Info("No cards match <em>%s</em>", query)
		return nil
	}

	for _, res := range resp.Results {
		card := res.Card
		var traits []string
		if card.CanBeCommander {
			traits = append(traits, "commander")
		}
		if card.CanBeCompanion {
			traits = append(traits, "companion")
		}
		suffix := ""
		if len(traits) > 0 {
			suffix = " [" + strings.Join(traits, ", ") + "]"
		}
		fmt.Printf("%s  %s  %s%s\n",
			card.DisplayName, card.ManaCost, card.TypeLine, suffix)
	}
	gn.Info("Found <em>%d</em> cards matching <em>%s</em>",
		len(resp.Results), resp.NormalizedQuery)

	return nil
}
