package discovery

import "sync"

// Stage labels a section's position in the discovery pipeline.
type Stage string

const (
	StageIdle       Stage = "idle"
	StageIdeating   Stage = "ideating"
	StageSearching  Stage = "searching"
	StageLocalizing Stage = "localizing"
	StageDone       Stage = "done"
	StageFailed     Stage = "failed"
)

// Settled reports whether the stage is terminal.
func (s Stage) Settled() bool {
	return s == StageDone || s == StageFailed
}

// Tracker maps each section to its current pipeline stage. Only the
// pipeline writes it; presentation layers read snapshots. No history is
// kept. Sections without an entry are Idle.
type Tracker struct {
	mu       sync.RWMutex
	stages   map[string]Stage
	onChange func(sectionID string, stage Stage)
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{stages: make(map[string]Stage)}
}

// OnChange registers a callback invoked synchronously with every stage
// transition. Register before the pipeline starts; the callback must not
// call back into the tracker's setter.
func (t *Tracker) OnChange(fn func(sectionID string, stage Stage)) {
	t.mu.Lock()
	t.onChange = fn
	t.mu.Unlock()
}

func (t *Tracker) set(sectionID string, stage Stage) {
	t.mu.Lock()
	t.stages[sectionID] = stage
	fn := t.onChange
	t.mu.Unlock()
	if fn != nil {
		fn(sectionID, stage)
	}
}

// Stage returns the current stage for a section, Idle when untracked.
func (t *Tracker) Stage(sectionID string) Stage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if stage, ok := t.stages[sectionID]; ok {
		return stage
	}
	return StageIdle
}

// Snapshot returns a copy of the current stage map.
func (t *Tracker) Snapshot() map[string]Stage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	snapshot := make(map[string]Stage, len(t.stages))
	for id, stage := range t.stages {
		snapshot[id] = stage
	}
	return snapshot
}
