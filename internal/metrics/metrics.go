package metrics

import (
	"sync"
	"time"
)

type sourceStats struct {
	fetches          int
	errors           int
	lastFetchLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about source fetches,
// reconcile runs, draft mutations and advice calls. Counters are mirrored to
// OpenTelemetry instruments when telemetry is enabled.
type Recorder struct {
	mu            sync.Mutex
	sources       map[string]*sourceStats
	reconcileRuns int
	lastMatched   int
	lastDropped   int
	picksRecorded int
	adviceCalls   int
	adviceErrors  int
	otel          *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		sources: make(map[string]*sourceStats),
		otel:    otel,
	}
}

// RecordSourceFetch increments counters for one valuation feed fetch and
// stores the last observed latency.
func (r *Recorder) RecordSourceFetch(source string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(source)
	stats.fetches++
	stats.lastFetchLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordSourceFetch(source, duration, err)
	}
}

// RecordReconcile tracks the outcome of one catalog reconcile pass.
func (r *Recorder) RecordReconcile(matched, droppedSecondary int) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.reconcileRuns++
	r.lastMatched = matched
	r.lastDropped = droppedSecondary
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordReconcile(matched, droppedSecondary)
	}
}

// RecordPick tracks that one draft pick was appended.
func (r *Recorder) RecordPick() {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.picksRecorded++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordPick()
	}
}

// RecordAdviceRequest tracks one round trip to the advice service.
func (r *Recorder) RecordAdviceRequest(duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.adviceCalls++
	if err != nil {
		r.adviceErrors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordAdvice(duration, err)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// Snapshot is a copy of the current stats for one source.
type Snapshot struct {
	Fetches          int
	Errors           int
	LastFetchLatency time.Duration
}

func (r *Recorder) SourceSnapshot(source string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if stats, ok := r.sources[source]; ok && stats != nil {
		return Snapshot{
			Fetches:          stats.fetches,
			Errors:           stats.errors,
			LastFetchLatency: stats.lastFetchLatency,
		}
	}
	return Snapshot{}
}

// SourceFetches returns the total fetch attempts recorded for a source.
func (r *Recorder) SourceFetches(source string) int {
	return r.SourceSnapshot(source).Fetches
}

// SourceErrors returns the total failed fetches recorded for a source.
func (r *Recorder) SourceErrors(source string) int {
	return r.SourceSnapshot(source).Errors
}

// PicksRecorded returns the total picks appended since start.
func (r *Recorder) PicksRecorded() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.picksRecorded
}

// ReconcileRuns returns the total reconcile passes recorded.
func (r *Recorder) ReconcileRuns() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reconcileRuns
}

// AdviceCalls returns total advice round trips and how many failed.
func (r *Recorder) AdviceCalls() (calls, errors int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.adviceCalls, r.adviceErrors
}

func (r *Recorder) ensureStats(source string) *sourceStats {
	stats, ok := r.sources[source]
	if !ok {
		stats = &sourceStats{}
		r.sources[source] = stats
	}
	return stats
}
