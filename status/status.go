// Package status computes overarching statuses from the statuses of child nodes.
package status

import (
	"github.com/jesspatton/lazysuite/errors"
)

// Status represents the current state of a suite or test.
type Status string

const (
	// Queued indicates the node is waiting to run.
	Queued Status = "queued"
	// Running indicates the node is currently executing.
	Running Status = "running"
	// Passed indicates the last run passed.
	Passed Status = "passed"
	// Failed indicates the last run failed.
	Failed Status = "failed"
	// Incomplete indicates the last run did not finish.
	Incomplete Status = "incomplete"
	// Skipped indicates the node was skipped.
	Skipped Status = "skipped"
	// Warning indicates the last run passed with warnings.
	Warning Status = "warning"
	// Partial indicates children settled on different statuses.
	Partial Status = "partial"
	// Empty indicates the node has nothing to report.
	Empty Status = "empty"
	// Idle indicates the node has not run.
	Idle Status = "idle"
)

var all = []Status{
	Queued, Running, Passed, Failed, Incomplete,
	Skipped, Warning, Partial, Empty, Idle,
}

var known = func() map[Status]struct{} {
	m := make(map[Status]struct{}, len(all))
	for _, s := range all {
		m[s] = struct{}{}
	}
	return m
}()

// All returns every Status, in declaration order.
func All() []Status {
	return append([]Status(nil), all...)
}

// Valid reports whether s is part of the enumeration.
func (s Status) Valid() bool {
	_, ok := known[s]
	return ok
}

// Settled reports whether s is the outcome of a run.
func (s Status) Settled() bool {
	switch s {
	case Passed, Failed, Incomplete, Skipped, Warning, Partial:
		return true
	}
	return false
}

// Framework widens s to a FrameworkStatus.
func (s Status) Framework() FrameworkStatus {
	return FrameworkStatus(s)
}

// Parse computes an overarching status based on a set of statuses.
//
// An empty component has no effect on the total, so a handful of idle
// components with the occasional empty one is still idle, not partial.
// A mix of queued and settled components is reported as running: the mix
// re-resolves once the queued components run or the run is stopped.
func Parse(components []Status) (Status, error) {
	for _, component := range components {
		if !component.Valid() {
			return "", errors.UnknownStatus(string(component))
		}
	}

	if len(components) == 0 {
		return Empty, nil
	}

	present := make(map[Status]struct{}, len(components))
	for _, component := range components {
		if component != Empty {
			present[component] = struct{}{}
		}
	}

	if len(present) == 1 {
		for component := range present {
			return component, nil
		}
	}

	for _, s := range []Status{Failed, Warning, Incomplete} {
		if _, ok := present[s]; ok {
			return s, nil
		}
	}

	if _, ok := present[Queued]; ok {
		return Running, nil
	}

	return Partial, nil
}
