package status

import (
	"github.com/jesspatton/lazysuite/errors"
)

// FrameworkStatus is the superset of Status used by top-level run containers.
type FrameworkStatus string

const (
	// Refreshing indicates the container is re-scanning its suites.
	Refreshing FrameworkStatus = "refreshing"
	// Errored indicates the container failed to process its suites.
	Errored FrameworkStatus = "error"
)

// Valid reports whether s is a Status or one of the container-only statuses.
func (s FrameworkStatus) Valid() bool {
	return s == Refreshing || s == Errored || Status(s).Valid()
}

// ParseFramework computes an overarching framework status. A still-executing
// run dominates a stale error from a previous one.
func ParseFramework(components []FrameworkStatus) (FrameworkStatus, error) {
	for _, component := range components {
		if !component.Valid() {
			return "", errors.UnknownStatus(string(component))
		}
	}

	if len(components) == 0 {
		return Empty.Framework(), nil
	}

	present := make(map[FrameworkStatus]struct{}, len(components))
	for _, component := range components {
		present[component] = struct{}{}
	}
	if len(present) == 1 {
		return components[0], nil
	}

	for _, s := range []FrameworkStatus{Running.Framework(), Errored, Refreshing} {
		if _, ok := present[s]; ok {
			return s, nil
		}
	}

	statuses := make([]Status, 0, len(present))
	for component := range present {
		statuses = append(statuses, Status(component))
	}
	parsed, err := Parse(statuses)
	if err != nil {
		return "", err
	}
	return parsed.Framework(), nil
}
