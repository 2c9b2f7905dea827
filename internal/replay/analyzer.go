package replay

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"texasholdem-server/internal/clock"
)

// Analysis is the decoded, cached view of one ReplayData: the derived
// per-hand/per-player/interesting-moment/flow views, plus a lazily built
// playback Cursor over its events.
type Analysis struct {
	Data    ReplayData
	Hands   []HandAnalysis
	Stats   []PlayerStats
	Moments []InterestingMoment
	Flow    FlowSummary

	mu     sync.Mutex
	cursor *Cursor
	clk    clock.Clock
}

// Cursor lazily builds this analysis's playback cursor over its events and
// never returns nil. A replay that was never Load-ed has no Analyzer entry
// at all, so Analyzer.Peek returns a nil *Analysis for it rather than one
// built over stale data — matching spec.md §4.7's "analyzing an unloaded
// cursor returns null".
func (a *Analysis) Cursor() *Cursor {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cursor == nil {
		a.cursor = NewCursor(a.Data.Events, a.clk, nil)
	}
	return a.cursor
}

// Analyzer loads and caches decoded Analysis views backed by a Recorder, so
// repeated polling of the same replay (e.g. a dashboard refreshing every few
// seconds) doesn't re-walk the whole event log each time.
type Analyzer struct {
	recorder *Recorder
	clk      clock.Clock
	cache    *lru.Cache[string, *Analysis]
}

// NewAnalyzer constructs an Analyzer backed by recorder, caching up to
// cacheSize decoded analyses.
func NewAnalyzer(recorder *Recorder, cacheSize int, clk clock.Clock) *Analyzer {
	if cacheSize < 1 {
		cacheSize = 1
	}
	cache, _ := lru.New[string, *Analysis](cacheSize)
	return &Analyzer{recorder: recorder, clk: clk, cache: cache}
}

// Load returns the current Analysis for gameID, recomputing it if the
// underlying replay has grown since it was last cached. It fails with
// InvalidReplayError if gameID is unknown to the recorder.
func (a *Analyzer) Load(gameID string) (*Analysis, error) {
	data, err := a.recorder.Load(gameID)
	if err != nil {
		return nil, err
	}

	if cached, ok := a.cache.Get(gameID); ok && cached.Data.Metadata.TotalEvents == data.Metadata.TotalEvents {
		return cached, nil
	}

	analysis := &Analysis{
		Data:    data,
		Hands:   AnalyzeHands(data),
		Stats:   PlayerStatistics(data),
		Moments: InterestingMoments(data),
		Flow:    GameFlowSummary(data),
		clk:     a.clk,
	}
	a.cache.Add(gameID, analysis)
	return analysis, nil
}

// Peek returns the cached Analysis for gameID without consulting the
// recorder, or nil if nothing has been loaded yet — the "unloaded cursor
// returns null" case.
func (a *Analyzer) Peek(gameID string) *Analysis {
	cached, ok := a.cache.Get(gameID)
	if !ok {
		return nil
	}
	return cached
}
