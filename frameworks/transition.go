package frameworks

import (
	"github.com/jesspatton/lazysuite/status"
)

// transition moves matching statuses to a new one.
type transition struct {
	to      status.Status
	matches func(status.Status) bool
}

func always(status.Status) bool { return true }

func queued(s status.Status) bool { return s == status.Queued }

// Idle marks the node and its descendants as idle. With selective, only
// selected nodes change.
func (n *nugget) Idle(selective bool) error {
	return n.transition(transition{to: status.Idle, matches: always}, selective)
}

// Queue marks the node and its descendants as queued, ahead of a run.
func (n *nugget) Queue(selective bool) error {
	return n.transition(transition{to: status.Queued, matches: always}, selective)
}

// Error marks the node and its descendants as incomplete after a run
// failed to finish.
func (n *nugget) Error(selective bool) error {
	return n.transition(transition{to: status.Incomplete, matches: always}, selective)
}

// IdleQueued returns nodes still queued to idle, e.g. once a run is stopped.
func (n *nugget) IdleQueued(selective bool) error {
	return n.transition(transition{to: status.Idle, matches: queued}, selective)
}

// ErrorQueued marks nodes still queued as incomplete once a run failed.
func (n *nugget) ErrorQueued(selective bool) error {
	return n.transition(transition{to: status.Incomplete, matches: queued}, selective)
}

func (n *nugget) transition(t transition, selective bool) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.transitionLocked(t, selective, false)
}

// transitionLocked applies t bottom-up. Raw children have no selection of
// their own, so they follow the nearest materialized ancestor.
func (n *nugget) transitionLocked(t transition, selective, inherited bool) error {
	marked := !selective || n.selected || inherited

	if n.bloomed {
		for _, child := range n.node.children() {
			child.mu.Lock()
			err := child.transitionLocked(t, selective, false)
			child.mu.Unlock()
			if err != nil {
				return err
			}
		}
	} else {
		n.node.transitionRaw(t, marked)
	}

	if marked {
		n.node.transitionOwn(t)
	}
	return n.updateStatusLocked()
}

func transitionResults(results []TestResult, t transition, marked bool) {
	if !marked {
		return
	}
	for i := range results {
		current := results[i].Status
		if current == "" {
			current = status.Idle
		}
		if t.matches(current) {
			results[i].Status = t.to
		}
		transitionResults(results[i].Tests, t, marked)
	}
}

func (t *Test) transitionOwn(tr transition) {
	if tr.matches(t.result.Status) {
		t.result.Status = tr.to
	}
}

func (t *Test) transitionRaw(tr transition, marked bool) {
	transitionResults(t.result.Tests, tr, marked)
}

func (s *Suite) transitionOwn(transition) {}

func (s *Suite) transitionRaw(tr transition, marked bool) {
	transitionResults(s.result.Tests, tr, marked)
}
