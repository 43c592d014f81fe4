package engine

import (
	"sync"

	"shabalcore/pkg/poc"
	"shabalcore/pkg/shabal"
)

// laneEngine implements the batch plotting/mining logic shared by every
// width-specific engine. Each exported engine type embeds one configured
// for its own width and availability check, the way the reference
// hashing methods each wrap a common capability-reporting shape.
type laneEngine struct {
	name  string
	width int

	mu          sync.RWMutex
	initialized bool
	available   func() bool
}

func newLaneEngine(name string, width int, available func() bool) *laneEngine {
	return &laneEngine{name: name, width: width, available: available}
}

func (e *laneEngine) Name() string { return e.name }

func (e *laneEngine) Width() int { return e.width }

func (e *laneEngine) IsAvailable() bool {
	if e.available == nil {
		return true
	}
	return e.available()
}

// Initialize forces the one-time derivation of the process-wide Shabal
// bootstrap context, so the first batch does not pay for it. Idempotent
// across engines: every width shares the same bootstrap.
func (e *laneEngine) Initialize() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	shabal.Bootstrap()
	e.initialized = true
	return nil
}

func (e *laneEngine) Shutdown() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.initialized = false
	return nil
}

func (e *laneEngine) GenerateNonces(account poc.AccountID, start poc.NonceIndex, count int, layout poc.Layout) (*poc.BatchCache, error) {
	return poc.GenerateNonceBatch(account, start, count, e.width, layout)
}

func (e *laneEngine) FindBestDeadline(batch *poc.BatchCache, start poc.NonceIndex, count int, scoop int, gensig [poc.GensigSize]byte) poc.BestResult {
	local := poc.FindBestDeadlineBatch(batch, count, scoop, gensig)
	if local.Found() {
		local.Offset += uint64(start)
	}
	return local
}

func (e *laneEngine) Capabilities() *Capabilities {
	return &Capabilities{
		Name:              e.name,
		Width:             e.width,
		EstimatedHashRate: estimatedHashRate(e.width),
		ProductionReady:   e.IsAvailable(),
		MaxBatchSize:      e.width,
	}
}

// estimatedHashRate is a coarse, width-proportional estimate; it exists
// for status reporting only and is not used by any mining decision.
func estimatedHashRate(width int) uint64 {
	const perLaneHashesPerSecond = 5000
	return uint64(width) * perLaneHashesPerSecond
}
