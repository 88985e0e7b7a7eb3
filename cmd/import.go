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
	"errors"
	"fmt"
	"log/slog"

	"github.com/Eunomiac/brawl-deck-builder-sub000/internal/iobulk"
	"github.com/Eunomiac/brawl-deck-builder-sub000/internal/iodb"
	"github.com/Eunomiac/brawl-deck-builder-sub000/internal/ioimport"
	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/cards"
	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/config"
	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/errcode"
	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

// getImportCmd returns the import command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getImportCmd() *cobra.Command {
	var (
		forceDownload bool
		keepExisting  bool
		maxAgeHours   int
		debugNames    bool
	)

	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Import Brawl-legal Arena cards from Scryfall",
		Long: `Import downloads Scryfall bulk card data and populates the database.

This command:
  1. Fetches bulk data metadata from the Scryfall API
  2. Skips the run when stored data is already up to date
  3. Downloads the bulk file (cached copies are reused)
  4. Filters to cards legal in Brawl, on Arena, in English
  5. Reduces printings to one canonical record per card
  6. Saves cards and search terms in batches
  7. Verifies counts and checks for orphaned search terms

Examples:
  brawldeck import
  brawldeck import --force
  brawldeck import --keep-existing --max-age 72`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []config.Option
			if cmd.Flags().Changed("force") {
				opts = append(opts,
					config.OptImportForceDownload(forceDownload))
			}
			if cmd.Flags().Changed("keep-existing") {
				opts = append(opts,
					config.OptImportClearExisting(!keepExisting))
			}
			if cmd.Flags().Changed("max-age") {
				opts = append(opts,
					config.OptImportMaxAgeHours(maxAgeHours))
			}
			if len(opts) > 0 {
				cfg.Update(opts)
			}

			err := runImport(debugNames)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	importCmd.Flags().BoolVarP(&forceDownload, "force", "f", false,
		"re-download and re-import even when data looks fresh")
	importCmd.Flags().BoolVarP(&keepExisting, "keep-existing", "k", false,
		"do not clear existing cards before saving")
	importCmd.Flags().IntVarP(&maxAgeHours, "max-age", "a", 0,
		"max age in hours before a cached bulk file is re-downloaded")
	importCmd.Flags().BoolVar(&debugNames, "debug-names", false,
		"log name-normalization diagnostics")

	return importCmd
}

func runImport(debugNames bool) error {
	ctx := context.Background()

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		return err
	}
	if !hasTables {
		return &gn.Error{
			Code: errcode.DBEmptyDatabaseError,
			Msg: `<err>Database appears to be empty.</err>
   Run <em>'brawldeck create'</em> first to initialize the schema.`,
			Err: errors.New("cannot import into empty database"),
		}
	}

	var debug cards.DebugFunc
	if debugNames {
		debug = func(format string, args ...any) {
			slog.Debug("name normalization",
				"detail", fmt.Sprintf(format, args...))
		}
	}

	store := iodb.NewCardStore(op)
	source := iobulk.NewClient(config.CacheDir(cfg.HomeDir), &cfg.Import)
	importer := ioimport.NewOrchestrator(source, store, debug)

	gn.Info("Starting card import from Scryfall bulk data...")
	result, err := importer.Import(ctx, cfg, newProgressRenderer())
	if err != nil {
		return err
	}

	gn.Info("Cards processed: <em>%s</em>, saved: <em>%s</em>, "+
		"skipped: <em>%s</em>",
		humanize.Comma(int64(result.TotalProcessed)),
		humanize.Comma(int64(result.TotalSaved)),
		humanize.Comma(int64(result.TotalSkipped)),
	)
	gn.Info("Import took %s",
		gnfmt.TimeString(result.Duration.Seconds()))

	if !result.Success {
		gn.Warn("Import finished with <em>%d</em> errors:",
			len(result.Errors))
		for _, msg := range result.Errors {
			gn.Warn("  - %s", msg)
		}
	}

	return nil
}

// newProgressRenderer translates progress snapshots into console
// progress bars: a byte bar while downloading, a count bar while
// processing.
func newProgressRenderer() cards.ProgressFunc {
	var (
		downloadBar *pb.ProgressBar
		processBar  *pb.ProgressBar
	)
	finish := func() {
		if downloadBar != nil {
			downloadBar.Finish()
			downloadBar = nil
		}
		if processBar != nil {
			processBar.Finish()
			processBar = nil
		}
	}

	return func(p cards.ImportProgress) {
		switch p.Stage {
		case cards.StageDownloading:
			if downloadBar == nil && p.BytesTotal > 0 {
				downloadBar = pb.Full.Start64(p.BytesTotal)
				downloadBar.Set(pb.Bytes, true)
				downloadBar.Set("prefix", "Downloading: ")
				downloadBar.Set(pb.CleanOnFinish, true)
			}
			if downloadBar != nil {
				downloadBar.SetCurrent(p.BytesLoaded)
			}
		case cards.StageProcessing:
			if downloadBar != nil {
				downloadBar.Finish()
				downloadBar = nil
			}
			if processBar == nil && p.Total > 0 {
				processBar = pb.Full.Start(p.Total)
				processBar.Set("prefix", "Processing cards: ")
				processBar.Set(pb.CleanOnFinish, true)
			}
			if processBar != nil {
				processBar.SetCurrent(int64(p.Processed))
			}
		case cards.StageSaving:
			finish()
		case cards.StageComplete, cards.StageError:
			finish()
		}
	}
}
