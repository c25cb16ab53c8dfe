package frameworks

import (
	"github.com/jesspatton/lazysuite/status"
)

// Test is one test, possibly containing nested tests.
type Test struct {
	nugget

	// result holds the last known raw data. Its Tests are only authoritative
	// while the test is withered.
	result TestResult
	tests  []*Test
}

func newTest(result TestResult) (*Test, error) {
	t := &Test{result: withDefaults(result)}
	t.bind(t)
	if err := t.updateStatusLocked(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Test) materialize() error {
	tests, err := buildTests(t.result.Tests)
	if err != nil {
		return err
	}
	t.tests = tests
	return nil
}

func (t *Test) dematerialize() {
	t.result.Tests = persistTests(t.tests)
	t.tests = nil
}

func (t *Test) discard() {
	t.tests = nil
}

func (t *Test) children() []*Test {
	return t.tests
}

// aggregate reports the test's own status for a leaf, or the parsed status
// of its children.
func (t *Test) aggregate() (status.Status, error) {
	if !t.bloomed {
		return rawStatus(t.result)
	}
	if len(t.tests) == 0 {
		return rawStatus(TestResult{Status: t.result.Status})
	}
	return parseTests(t.tests)
}

// debrief merges a fresh result into the test. Materialized children are
// reconciled by id so their identity and flags survive; a withered test
// merges its raw children instead. The caller holds the parent's lock.
func (t *Test) debrief(result TestResult, cleanup bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.bloomed {
		merged := result
		merged.Tests = mergeResults(t.result.Tests, result.Tests, cleanup)
		t.result = withDefaults(merged)
		return t.updateStatusLocked()
	}

	tests, err := reconcileTests(t.tests, result.Tests, cleanup)
	if err != nil {
		return err
	}
	result.Tests = nil
	t.result = withDefaults(result)
	t.tests = tests
	return t.updateStatusLocked()
}

// Persist returns a snapshot of the test and its nested tests.
func (t *Test) Persist() TestResult {
	t.mu.RLock()
	defer t.mu.RUnlock()

	snapshot := t.result
	snapshot.Meta = t.result.Meta.clone()
	snapshot.Status = t.status
	if t.bloomed {
		snapshot.Tests = persistTests(t.tests)
	} else {
		snapshot.Tests = persistResults(t.result.Tests)
	}
	return snapshot
}

// ID returns the test's identity key.
func (t *Test) ID() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.result.ID
}

// Name returns the test's name.
func (t *Test) Name() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.result.Name
}

// DisplayName returns the name to show for the test.
func (t *Test) DisplayName() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.result.DisplayName != "" {
		return t.result.DisplayName
	}
	return t.result.Name
}

func (t *Test) Params() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.result.Params
}

func (t *Test) Meta() Meta {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.result.Meta
}

func (t *Test) Console() []interface{} {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.result.Console
}

func (t *Test) Stats() Stats {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.result.Stats
}

// Tests returns the materialized nested tests. It is empty while withered.
func (t *Test) Tests() []*Test {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]*Test(nil), t.tests...)
}

// CountChildren counts nested tests without materializing them.
func (t *Test) CountChildren() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.bloomed {
		return len(t.tests)
	}
	return len(t.result.Tests)
}

func (t *Test) HasChildren() bool {
	return t.CountChildren() > 0
}

func buildTests(results []TestResult) ([]*Test, error) {
	tests := make([]*Test, 0, len(results))
	for _, result := range results {
		test, err := newTest(result)
		if err != nil {
			return nil, err
		}
		tests = append(tests, test)
	}
	return tests, nil
}

func persistTests(tests []*Test) []TestResult {
	if len(tests) == 0 {
		return nil
	}
	results := make([]TestResult, len(tests))
	for i, test := range tests {
		results[i] = test.Persist()
	}
	return results
}

func parseTests(tests []*Test) (status.Status, error) {
	statuses := make([]status.Status, len(tests))
	for i, test := range tests {
		statuses[i] = test.Status()
	}
	return status.Parse(statuses)
}

// reconcileTests matches incoming results to existing tests by id. Matched
// tests are debriefed in place, unmatched results become new tests. Without
// cleanup, existing tests missing from incoming keep their position and new
// tests are appended.
func reconcileTests(existing []*Test, incoming []TestResult, cleanup bool) ([]*Test, error) {
	index := make(map[string]*Test, len(existing))
	for _, test := range existing {
		index[test.ID()] = test
	}

	var added []*Test
	tests := make([]*Test, 0, len(incoming))
	for _, result := range incoming {
		if test, ok := index[result.ID]; ok {
			if err := test.debrief(result, cleanup); err != nil {
				return nil, err
			}
			tests = append(tests, test)
			continue
		}

		test, err := newTest(result)
		if err != nil {
			return nil, err
		}
		added = append(added, test)
		tests = append(tests, test)
	}

	if cleanup {
		return tests, nil
	}

	kept := make([]*Test, 0, len(existing)+len(added))
	kept = append(kept, existing...)
	return append(kept, added...), nil
}

// findOrCreateTests maps results to existing tests by id, reusing matched
// instances as they are.
func findOrCreateTests(existing []*Test, incoming []TestResult) ([]*Test, error) {
	index := make(map[string]*Test, len(existing))
	for _, test := range existing {
		index[test.ID()] = test
	}

	tests := make([]*Test, 0, len(incoming))
	for _, result := range incoming {
		if test, ok := index[result.ID]; ok {
			tests = append(tests, test)
			continue
		}
		test, err := newTest(result)
		if err != nil {
			return nil, err
		}
		tests = append(tests, test)
	}
	return tests, nil
}
