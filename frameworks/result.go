package frameworks

import (
	"fmt"

	"github.com/jesspatton/lazysuite/errors"
	"github.com/jesspatton/lazysuite/status"
)

// SuiteResult is the raw payload reported for one suite.
type SuiteResult struct {
	File        string        `json:"file" jsonschema:"required,minLength=1"`
	Tests       []TestResult  `json:"tests,omitempty"`
	Meta        Meta          `json:"meta"`
	Console     []interface{} `json:"console,omitempty"`
	TestsLoaded bool          `json:"testsLoaded"`
	Version     string        `json:"version,omitempty"`
}

// TestResult is the raw payload reported for one test and its nested tests.
// ID is the identity key matched across payloads.
type TestResult struct {
	ID          string        `json:"id" jsonschema:"required,minLength=1"`
	Name        string        `json:"name"`
	DisplayName string        `json:"displayName,omitempty"`
	Status      status.Status `json:"status"`
	Params      string        `json:"params,omitempty"`
	Meta        Meta          `json:"meta"`
	Console     []interface{} `json:"console"`
	Stats       Stats         `json:"stats"`
	Tests       []TestResult  `json:"tests,omitempty"`
}

// Stats holds timing for a test run. Duration is in milliseconds;
// First and Last are RFC 3339 timestamps.
type Stats struct {
	Duration float64 `json:"duration,omitempty"`
	First    string  `json:"first,omitempty"`
	Last     string  `json:"last,omitempty"`
}

func (r SuiteResult) validate() error {
	if r.File == "" {
		return errors.MalformedResult("suite result has no file")
	}
	if err := validateTests(r.Tests); err != nil {
		return err.WithDetail("file", r.File)
	}
	return nil
}

func validateTests(tests []TestResult) *errors.LazyError {
	seen := make(map[string]struct{}, len(tests))
	for i, test := range tests {
		if test.ID == "" {
			return errors.MalformedResult(fmt.Sprintf("test %q at index %d has no id", test.Name, i)).
				WithDetail("index", i)
		}
		if _, dup := seen[test.ID]; dup {
			return errors.MalformedResult(fmt.Sprintf("duplicate test id %q", test.ID)).
				WithDetail("id", test.ID)
		}
		seen[test.ID] = struct{}{}

		if test.Status != "" && !test.Status.Valid() {
			return errors.UnknownStatus(string(test.Status)).WithDetail("id", test.ID)
		}
		if err := validateTests(test.Tests); err != nil {
			return err
		}
	}
	return nil
}

// withDefaults fills the fields a freshly constructed test would have.
func withDefaults(r TestResult) TestResult {
	if r.Status == "" {
		r.Status = status.Idle
	}
	if r.Meta == nil {
		r.Meta = Meta{}
	}
	if r.Console == nil {
		r.Console = []interface{}{}
	}
	if len(r.Tests) > 0 {
		tests := make([]TestResult, len(r.Tests))
		for i, child := range r.Tests {
			tests[i] = withDefaults(child)
		}
		r.Tests = tests
	}
	return r
}

// rawStatus aggregates a raw result the same way a materialized Test would.
func rawStatus(r TestResult) (status.Status, error) {
	if len(r.Tests) == 0 {
		if r.Status == "" {
			return status.Idle, nil
		}
		if !r.Status.Valid() {
			return "", errors.UnknownStatus(string(r.Status))
		}
		return r.Status, nil
	}
	return rawStatuses(r.Tests)
}

func rawStatuses(tests []TestResult) (status.Status, error) {
	statuses := make([]status.Status, len(tests))
	for i, test := range tests {
		s, err := rawStatus(test)
		if err != nil {
			return "", err
		}
		statuses[i] = s
	}
	return status.Parse(statuses)
}

// mergeResults reconciles raw results by id. Matched entries are merged
// recursively. Without cleanup, entries missing from incoming are kept in
// their original position and new entries are appended.
func mergeResults(existing, incoming []TestResult, cleanup bool) []TestResult {
	index := make(map[string]int, len(existing))
	for i, test := range existing {
		index[test.ID] = i
	}

	merge := func(r TestResult) TestResult {
		if i, ok := index[r.ID]; ok {
			r.Tests = mergeResults(existing[i].Tests, r.Tests, cleanup)
		}
		return withDefaults(r)
	}

	if cleanup {
		merged := make([]TestResult, len(incoming))
		for i, r := range incoming {
			merged[i] = merge(r)
		}
		return merged
	}

	updates := make(map[string]TestResult, len(incoming))
	var added []TestResult
	for _, r := range incoming {
		if _, ok := index[r.ID]; ok {
			updates[r.ID] = merge(r)
		} else {
			added = append(added, withDefaults(r))
		}
	}

	merged := make([]TestResult, 0, len(existing)+len(added))
	for _, test := range existing {
		if update, ok := updates[test.ID]; ok {
			merged = append(merged, update)
		} else {
			merged = append(merged, test)
		}
	}
	return append(merged, added...)
}

// persistResults snapshots raw results the way materialized tests persist:
// defaults filled and every parent carrying its aggregated status.
func persistResults(results []TestResult) []TestResult {
	if len(results) == 0 {
		return nil
	}
	snapshots := make([]TestResult, len(results))
	for i, r := range results {
		r = withDefaults(r)
		if s, err := rawStatus(r); err == nil {
			r.Status = s
		}
		r.Tests = persistResults(r.Tests)
		snapshots[i] = r
	}
	return snapshots
}
