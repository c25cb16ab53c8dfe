package frameworks

import (
	"strings"
	"time"

	"github.com/jesspatton/lazysuite/status"
)

// SuiteOptions locates a suite relative to the scanned project.
type SuiteOptions struct {
	Path         string
	Root         string
	RunsInRemote bool
	RemotePath   string

	// CanToggleTests is set when the framework can run individual tests.
	CanToggleTests bool
}

// Suite is the test tree for one source file.
type Suite struct {
	nugget

	path           string
	root           string
	runsInRemote   bool
	remotePath     string
	canToggleTests bool

	file        string
	result      SuiteResult
	tests       []*Test
	highlighted string
	fresh       bool
}

// NewSuite builds a suite from its options and the initial result. The suite
// starts withered; its status comes from the raw results.
func NewSuite(options SuiteOptions, result SuiteResult) (*Suite, error) {
	if err := result.validate(); err != nil {
		return nil, err
	}

	s := &Suite{}
	s.bind(s)
	s.applyOptions(options)

	s.file = result.File
	s.result = result
	s.result.Tests = mergeResults(nil, result.Tests, true)
	if err := s.updateStatusLocked(); err != nil {
		return nil, err
	}
	return s, nil
}

// Refresh replaces the suite's options.
func (s *Suite) Refresh(options SuiteOptions) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyOptions(options)
}

func (s *Suite) applyOptions(options SuiteOptions) {
	s.path = options.Path
	s.root = options.Root
	s.runsInRemote = options.RunsInRemote
	s.remotePath = options.RemotePath
	s.canToggleTests = options.CanToggleTests
	if !strings.HasPrefix(s.remotePath, "/") {
		s.remotePath = "/" + s.remotePath
	}
}

func (s *Suite) materialize() error {
	tests, err := buildTests(s.result.Tests)
	if err != nil {
		return err
	}
	s.tests = tests
	return nil
}

func (s *Suite) dematerialize() {
	s.result.Tests = persistTests(s.tests)
	s.tests = nil
}

func (s *Suite) discard() {
	s.tests = nil
}

func (s *Suite) children() []*Test {
	return s.tests
}

// aggregate never reports a suite whose tests are not loaded yet as empty;
// that is not known until the suite is parsed, so it is idle until then.
func (s *Suite) aggregate() (status.Status, error) {
	var (
		to  status.Status
		err error
	)
	if s.bloomed {
		to, err = parseTests(s.tests)
	} else {
		to, err = rawStatuses(s.result.Tests)
	}
	if err != nil {
		return "", err
	}
	if to == status.Empty && !s.result.TestsLoaded {
		to = status.Idle
	}
	return to, nil
}

// Debrief reconciles the suite against a fresh result and waits for it.
// Tests missing from result are dropped when cleanup is set and kept
// otherwise.
func (s *Suite) Debrief(result SuiteResult, cleanup bool) error {
	return <-s.DebriefAsync(result, cleanup)
}

// DebriefAsync enqueues a debrief. Debriefs and rebuilds on one suite are
// applied in the order they were enqueued.
func (s *Suite) DebriefAsync(result SuiteResult, cleanup bool) <-chan error {
	return s.ops.submit(func() error {
		return s.debrief(result, cleanup)
	})
}

func (s *Suite) debrief(result SuiteResult, cleanup bool) error {
	if err := result.validate(); err != nil {
		log.WithError(err).Warn("Rejected suite result")
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.file = result.File
	s.result.Meta = result.Meta
	s.result.Console = result.Console
	s.result.TestsLoaded = result.TestsLoaded

	// Reconcile against the actual tests, not plain results, so identity
	// and nested state carry over.
	if err := s.bloomLocked(); err != nil {
		return err
	}

	tests, err := reconcileTests(s.tests, result.Tests, cleanup)
	if err != nil {
		return err
	}
	s.tests = tests

	if err := s.updateStatusLocked(); err != nil {
		return err
	}

	log.WithField("file", s.file).
		WithField("tests", len(s.tests)).
		WithField("status", s.status).
		Debug("Debriefed suite")
	return nil
}

// RebuildTests regenerates the suite's tests from result and waits for it.
func (s *Suite) RebuildTests(result SuiteResult) error {
	return <-s.RebuildTestsAsync(result)
}

// RebuildTestsAsync enqueues a rebuild. Existing tests whose id is still
// reported are reused as they are; the rest are created or dropped.
func (s *Suite) RebuildTestsAsync(result SuiteResult) <-chan error {
	return s.ops.submit(func() error {
		return s.rebuildTests(result)
	})
}

func (s *Suite) rebuildTests(result SuiteResult) error {
	if err := validateTests(result.Tests); err != nil {
		log.WithError(err).Warn("Rejected suite rebuild")
		return err.WithDetail("file", s.File())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.bloomLocked(); err != nil {
		return err
	}

	tests, err := findOrCreateTests(s.tests, result.Tests)
	if err != nil {
		return err
	}
	s.tests = tests

	if !s.expanded {
		s.witherLocked()
	}

	if err := s.updateStatusLocked(); err != nil {
		return err
	}

	log.WithField("file", s.file).
		WithField("tests", s.countChildrenLocked()).
		Debug("Rebuilt suite tests")
	return nil
}

// Persist prepares the suite for storage. The output has the same shape
// whether or not the suite is bloomed.
func (s *Suite) Persist() SuiteResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	persisted := SuiteResult{
		File:        s.file,
		Meta:        s.result.Meta.clone(),
		TestsLoaded: s.result.TestsLoaded,
	}
	if s.bloomed {
		persisted.Tests = persistTests(s.tests)
	} else {
		persisted.Tests = persistResults(s.result.Tests)
	}
	return persisted
}

// ID returns the suite's identity key, its file.
func (s *Suite) ID() string {
	return s.File()
}

func (s *Suite) File() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.file
}

// Status returns the suite's status. A suite whose tests are not loaded is
// idle, never empty.
func (s *Suite) Status() status.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.status == status.Empty && !s.result.TestsLoaded {
		return status.Idle
	}
	return s.status
}

// Meta returns the suite's metadata, which may be nil.
func (s *Suite) Meta() Meta {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result.Meta
}

// MetaValue returns the metadata at a dotted key, or fallback when absent.
func (s *Suite) MetaValue(key string, fallback interface{}) interface{} {
	return s.Meta().Get(key, fallback)
}

// DecodeMeta decodes the metadata at a dotted key into out. It reports
// whether the key was present.
func (s *Suite) DecodeMeta(key string, out interface{}) (bool, error) {
	return s.Meta().Decode(key, out)
}

func (s *Suite) ResetMeta() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result.Meta = nil
}

func (s *Suite) Console() []interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result.Console
}

// TestsLoaded reports whether the suite has been parsed for tests.
func (s *Suite) TestsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result.TestsLoaded
}

func (s *Suite) Version() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result.Version
}

// Tests returns the materialized tests. It is empty while withered.
func (s *Suite) Tests() []*Test {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*Test(nil), s.tests...)
}

// CountChildren counts the suite's tests without materializing them.
func (s *Suite) CountChildren() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.countChildrenLocked()
}

func (s *Suite) countChildrenLocked() int {
	if s.bloomed {
		return len(s.tests)
	}
	return len(s.result.Tests)
}

func (s *Suite) HasChildren() bool {
	return s.CountChildren() > 0
}

// CanToggleTests reports whether individual tests of the suite can be
// selected for a run. Tests must be loaded first.
func (s *Suite) CanToggleTests() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.canToggleTests && s.result.TestsLoaded
}

// SetFresh marks whether the suite was reported by the current scan.
func (s *Suite) SetFresh(fresh bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fresh = fresh
}

func (s *Suite) IsFresh() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fresh
}

// RunningOrder returns the suite's position in the last run, from meta.n.
func (s *Suite) RunningOrder() (float64, bool) {
	var n float64
	ok, err := s.DecodeMeta("n", &n)
	if !ok || err != nil {
		return 0, false
	}
	return n, true
}

// LastUpdated returns the most recent time any test reported.
func (s *Suite) LastUpdated() (time.Time, bool) {
	return s.latest(func(TestResult) bool { return true })
}

// LastRun returns the most recent time a test settled on a run outcome.
func (s *Suite) LastRun() (time.Time, bool) {
	return s.latest(func(r TestResult) bool { return r.Status.Settled() })
}

func (s *Suite) latest(include func(TestResult) bool) (time.Time, bool) {
	var (
		last  time.Time
		found bool
	)
	for _, r := range s.topLevel() {
		if r.Stats.Last == "" || !include(r) {
			continue
		}
		at, err := time.Parse(time.RFC3339, r.Stats.Last)
		if err != nil {
			continue
		}
		if !found || at.After(last) {
			last, found = at, true
		}
	}
	return last, found
}

// TotalDuration sums the durations of the top-level tests, in milliseconds.
func (s *Suite) TotalDuration() float64 {
	var total float64
	for _, r := range s.topLevel() {
		total += r.Stats.Duration
	}
	return total
}

// MaxDuration returns the longest top-level test duration, in milliseconds.
func (s *Suite) MaxDuration() float64 {
	var longest float64
	for _, r := range s.topLevel() {
		if r.Stats.Duration > longest {
			longest = r.Stats.Duration
		}
	}
	return longest
}

// topLevel returns the top-level results with their current statuses,
// read from the materialized tests when bloomed.
func (s *Suite) topLevel() []TestResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.bloomed {
		results := make([]TestResult, len(s.result.Tests))
		for i, r := range s.result.Tests {
			results[i] = r
			if to, err := rawStatus(r); err == nil {
				results[i].Status = to
			}
		}
		return results
	}
	results := make([]TestResult, len(s.tests))
	for i, test := range s.tests {
		test.mu.RLock()
		results[i] = test.result
		results[i].Status = test.status
		test.mu.RUnlock()
	}
	return results
}
