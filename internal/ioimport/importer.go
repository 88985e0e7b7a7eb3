// Package ioimport implements the import lifecycle: it sequences the
// pure pipeline stages around the bulk source and the card store.
package ioimport

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/brawl"
	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/cards"
	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/config"
	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/db"
	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/pipeline"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// orchestrator implements brawl.Importer. The mutex makes runs
// single-flight: a second Import while one is active is rejected
// immediately instead of queued.
type orchestrator struct {
	source brawl.BulkSource
	store  db.CardStore
	debug  cards.DebugFunc

	mu sync.Mutex
}

// NewOrchestrator creates an importer over the given bulk source and
// card store. The debug sink may be nil.
func NewOrchestrator(
	source brawl.BulkSource,
	store db.CardStore,
	debug cards.DebugFunc,
) brawl.Importer {
	return &orchestrator{
		source: source,
		store:  store,
		debug:  debug,
	}
}

// InProgress reports whether an import is currently running.
func (o *orchestrator) InProgress() bool {
	if o.mu.TryLock() {
		o.mu.Unlock()
		return false
	}
	return true
}

// Import runs the full pipeline: fetch metadata, stream and filter the
// bulk file, deduplicate and transform, save in batches, then verify.
// Per-record and per-batch failures accumulate in the result; only
// infrastructure failures abort the run.
func (o *orchestrator) Import(
	ctx context.Context,
	cfg *config.Config,
	progress cards.ProgressFunc,
) (*cards.ImportResult, error) {
	if !o.mu.TryLock() {
		return nil, InProgressError()
	}
	defer o.mu.Unlock()

	runID := uuid.New().String()
	start := time.Now()
	result := &cards.ImportResult{}
	prog := cards.ImportProgress{
		Stage:     cards.StageIdle,
		StartedAt: start,
	}
	emit := func(stage cards.ImportStage, msg string) {
		prog.Stage = stage
		prog.Message = msg
		prog.Saved = result.TotalSaved
		prog.Errors = len(result.Errors)
		if progress != nil {
			progress(prog)
		}
	}
	fail := func(err error) (*cards.ImportResult, error) {
		result.Errors = append(result.Errors, err.Error())
		result.Duration = time.Since(start)
		prog.FinishedAt = time.Now()
		emit(cards.StageError, err.Error())
		slog.Error("Import failed", "run", runID, "error", err)
		return result, err
	}

	slog.Info("Import started", "run", runID)

	// Stage 1: bulk file metadata.
	emit(cards.StageFetchingMeta, "Fetching bulk data metadata")
	desc, err := o.source.Descriptor(ctx)
	if err != nil {
		return fail(FetchError(err))
	}
	prog.BytesTotal = desc.Size

	// Skip the run entirely when the stored data is already at least
	// as fresh as the bulk file Scryfall offers.
	if !cfg.Import.ForceDownload {
		latest, err := o.store.LatestCardTimestamp(ctx)
		if err == nil && !latest.IsZero() && !desc.UpdatedAt.After(latest) {
			slog.Info("Card data is up to date",
				"run", runID,
				"stored", latest,
				"source", desc.UpdatedAt,
			)
			result.Success = true
			result.Duration = time.Since(start)
			prog.FinishedAt = time.Now()
			emit(cards.StageComplete, "Card data is up to date")
			return result, nil
		}
	}

	// Stage 2: download and filter in one streaming pass.
	emit(cards.StageDownloading, "Downloading bulk card data")
	spec := pipeline.FilterSpec{
		Format:   cfg.Import.Format,
		Platform: cfg.Import.Platform,
		Language: cfg.Import.Language,
	}
	var eligible []cards.RawCard
	onBytes := func(n int64) {
		prog.BytesLoaded = n
		if progress != nil {
			progress(prog)
		}
	}
	err = o.source.StreamCards(ctx, desc, onBytes,
		func(rec cards.RawCard) error {
			if pipeline.Eligible(rec, spec) {
				eligible = append(eligible, rec)
			}
			return nil
		})
	if err != nil {
		return fail(FetchError(err))
	}
	slog.Info("Bulk data filtered",
		"run", runID, "eligible", len(eligible))

	// Stage 3: deduplicate identities and transform.
	groups := pipeline.Groups(eligible)
	releaseDates := pipeline.ReleaseDates(eligible)
	prog.Total = len(groups)
	emit(cards.StageProcessing, "Processing cards")

	every := cfg.Import.ProgressEvery
	if every <= 0 {
		every = 100
	}

	canonical := make([]cards.CanonicalCard, 0, len(groups))
	for i, group := range groups {
		selected, legalSets := pipeline.Select(
			group.Printings, releaseDates)
		rec, err := pipeline.Transform(selected, legalSets, o.debug)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			result.TotalSkipped++
		} else {
			canonical = append(canonical, rec)
		}

		prog.Processed = i + 1
		if (i+1)%every == 0 && i+1 < len(groups) {
			emit(cards.StageProcessing, "Processing cards")
		}
	}
	result.TotalProcessed = len(groups)
	// Callers see the final processed count even when it does not
	// land on a reporting interval.
	emit(cards.StageProcessing, "Processing cards")

	// Stage 4: save in independent batches.
	emit(cards.StageSaving, "Saving cards")
	var preTotal int
	if cfg.Import.ClearExisting {
		if err := o.store.ClearAll(ctx); err != nil {
			return fail(ClearError(err))
		}
	} else {
		preTotal, err = o.store.CountCards(ctx, db.FilterAll)
		if err != nil {
			return fail(VerifyError(err))
		}
	}

	expect := o.saveBatches(ctx, cfg, canonical, result, emit)
	expect.clearAll = cfg.Import.ClearExisting
	expect.preTotal = preTotal

	// Stage 5: verification.
	if err := o.verify(ctx, expect, result); err != nil {
		return fail(err)
	}

	result.Success = len(result.Errors) == 0
	result.Duration = time.Since(start)
	prog.FinishedAt = time.Now()
	emit(cards.StageComplete, fmt.Sprintf(
		"Imported %d cards in %v",
		result.TotalSaved, result.Duration.Round(time.Millisecond)))
	slog.Info("Import finished",
		"run", runID,
		"success", result.Success,
		"processed", result.TotalProcessed,
		"saved", result.TotalSaved,
		"skipped", result.TotalSkipped,
		"errors", len(result.Errors),
		"duration", result.Duration,
	)

	return result, nil
}

// expectation carries the counts verification checks against, tallied
// only from batches that were written successfully. With clearAll the
// tables hold exactly what this run wrote; otherwise the expected
// total is the pre-import count plus the rows actually inserted.
type expectation struct {
	total      int
	commanders int
	companions int

	clearAll bool
	preTotal int
}

// saveBatches writes cards and their search terms batch by batch. A
// failed batch is recorded with its index and later batches are still
// attempted. When existing rows are kept, each batch first deletes the
// search terms of its oracle IDs so a re-import regenerates terms
// instead of duplicating them.
func (o *orchestrator) saveBatches(
	ctx context.Context,
	cfg *config.Config,
	canonical []cards.CanonicalCard,
	result *cards.ImportResult,
	emit func(cards.ImportStage, string),
) expectation {
	var expect expectation

	batchSize := cfg.Import.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	for i := 0; i < len(canonical); i += batchSize {
		end := min(i+batchSize, len(canonical))
		batch := canonical[i:end]
		batchNum := i/batchSize + 1

		n, err := o.store.InsertCards(ctx, batch)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf(
				"batch %d: cannot save cards: %v", batchNum, err))
			emit(cards.StageSaving, "Saving cards")
			continue
		}
		result.TotalSaved += n

		var terms []cards.SearchTerm
		for j := range batch {
			terms = append(terms, batch[j].SearchTerms...)
			expect.total++
			if batch[j].CanBeCommander {
				expect.commanders++
			}
			if batch[j].CanBeCompanion {
				expect.companions++
			}
		}
		if !cfg.Import.ClearExisting {
			ids := make([]string, len(batch))
			for j := range batch {
				ids[j] = batch[j].OracleID
			}
			if err := o.store.DeleteSearchTerms(ctx, ids); err != nil {
				// Inserting over stale terms would duplicate them, so
				// this batch keeps its old terms instead.
				result.Errors = append(result.Errors, fmt.Sprintf(
					"batch %d: cannot refresh search terms: %v",
					batchNum, err))
				emit(cards.StageSaving, "Saving cards")
				continue
			}
		}

		if _, err := o.store.InsertSearchTerms(ctx, terms); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf(
				"batch %d: cannot save search terms: %v", batchNum, err))
		}

		emit(cards.StageSaving, "Saving cards")
	}

	return expect
}

// verify cross-checks stored counts against what was written and looks
// for search terms left without a parent card. Count mismatches are
// appended as run errors; a failing verification query aborts.
//
// After a clearing run the tables hold only this run's rows, so all
// three filtered counts are checked. A keep-existing run can only
// assert the total (pre-import count plus rows actually inserted);
// the commander and companion breakdown of conflicting rows is
// unknown.
func (o *orchestrator) verify(
	ctx context.Context,
	expect expectation,
	result *cards.ImportResult,
) error {
	var total, commanders, companions, orphans int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = o.store.CountCards(gctx, db.FilterAll)
		return err
	})
	g.Go(func() error {
		var err error
		orphans, err = o.store.CountOrphanTerms(gctx)
		return err
	})
	if expect.clearAll {
		g.Go(func() error {
			var err error
			commanders, err = o.store.CountCards(gctx, db.FilterCommanders)
			return err
		})
		g.Go(func() error {
			var err error
			companions, err = o.store.CountCards(gctx, db.FilterCompanions)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return VerifyError(err)
	}

	wantTotal := expect.total
	if !expect.clearAll {
		wantTotal = expect.preTotal + result.TotalSaved
	}
	if total != wantTotal {
		result.Errors = append(result.Errors, fmt.Sprintf(
			"verification: expected %d cards, found %d",
			wantTotal, total))
	}
	if expect.clearAll {
		if commanders != expect.commanders {
			result.Errors = append(result.Errors, fmt.Sprintf(
				"verification: expected %d commanders, found %d",
				expect.commanders, commanders))
		}
		if companions != expect.companions {
			result.Errors = append(result.Errors, fmt.Sprintf(
				"verification: expected %d companions, found %d",
				expect.companions, companions))
		}
	}
	if orphans > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf(
			"verification: %d orphaned search terms", orphans))
	}

	return nil
}
