package cards

import "time"

// ImportStage identifies the phase an import run is in.
type ImportStage string

const (
	StageIdle         ImportStage = "idle"
	StageFetchingMeta ImportStage = "fetching-metadata"
	StageDownloading  ImportStage = "downloading"
	StageProcessing   ImportStage = "processing"
	StageSaving       ImportStage = "saving"
	StageComplete     ImportStage = "complete"
	StageError        ImportStage = "error"
)

// ImportProgress is the transient state of one import run. It is owned
// exclusively by the orchestrator and delivered to callers by value
// through the progress callback; it is never shared or mutated
// concurrently.
type ImportProgress struct {
	Stage   ImportStage
	Message string

	// Byte-level progress during the downloading stage.
	BytesLoaded int64
	BytesTotal  int64

	// Count-level progress during processing and saving.
	Total     int
	Processed int
	Saved     int
	Errors    int

	StartedAt  time.Time
	FinishedAt time.Time
}

// ProgressFunc receives progress snapshots at each stage transition and
// at coarse intervals during processing and saving. It is invoked
// synchronously on the importing goroutine.
type ProgressFunc func(p ImportProgress)

// ImportResult is the terminal value of one import run, immutable after
// return. Success is true iff zero errors accumulated; a partially
// successful run reports Success=false together with a non-zero
// TotalSaved, so callers must inspect both.
type ImportResult struct {
	Success        bool
	TotalProcessed int
	TotalSaved     int
	TotalSkipped   int
	Errors         []string
	Duration       time.Duration
}

// DebugFunc is an optional debug sink threaded explicitly through the
// pipeline; a nil value disables debug output. It replaces any notion of
// process-wide debug state.
type DebugFunc func(format string, args ...any)
