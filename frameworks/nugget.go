// Package frameworks maintains the reconciled tree of suites and tests that a
// test runner reports on.
package frameworks

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/jesspatton/lazysuite/errors"
	"github.com/jesspatton/lazysuite/logging"
	"github.com/jesspatton/lazysuite/status"
)

var log = logging.NewLogger("frameworks")

// lifecycle is implemented by every node kind that embeds a nugget.
// All methods are called with the nugget's lock held for writing.
type lifecycle interface {
	// materialize builds child tests from the raw results. It must not keep
	// anything on failure.
	materialize() error
	// dematerialize writes children back into the raw results and drops them.
	dematerialize()
	// discard drops children without writing them back.
	discard()
	children() []*Test
	aggregate() (status.Status, error)
	// transitionOwn applies t to the node's own reported status.
	transitionOwn(t transition)
	// transitionRaw applies t to the raw children while withered.
	transitionRaw(t transition, marked bool)
}

// nugget is the lazy lifecycle shared by suites and tests: expansion,
// selection, materialization of children and the cached status.
type nugget struct {
	mu     sync.RWMutex
	flight singleflight.Group
	ops    opQueue
	node   lifecycle

	bloomed  bool
	expanded bool
	selected bool
	status   status.Status
}

func (n *nugget) bind(node lifecycle) {
	n.node = node
}

// Bloom materializes the node's children from its raw results. Concurrent
// calls share one materialization.
func (n *nugget) Bloom() error {
	if n.Bloomed() {
		return nil
	}

	_, err, _ := n.flight.Do("bloom", func() (interface{}, error) {
		n.mu.Lock()
		defer n.mu.Unlock()
		return nil, n.bloomLocked()
	})
	return err
}

func (n *nugget) bloomLocked() error {
	if n.bloomed {
		return nil
	}

	if err := n.node.materialize(); err != nil {
		return errors.BloomFailed(err)
	}
	n.bloomed = true

	if err := n.updateStatusLocked(); err != nil {
		n.node.discard()
		n.bloomed = false
		return errors.BloomFailed(err)
	}
	return nil
}

// Wither discards the node's materialized children, keeping only the raw
// results. An expanded node stays materialized; Wither then reports false.
func (n *nugget) Wither() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.witherLocked()
}

func (n *nugget) witherLocked() bool {
	if n.expanded {
		return false
	}
	if n.bloomed {
		n.node.dematerialize()
		n.bloomed = false
	}
	return true
}

func (n *nugget) updateStatusLocked() error {
	s, err := n.node.aggregate()
	if err != nil {
		return err
	}
	n.status = s
	return nil
}

// Expand marks the node as expanded and blooms it. With cascade, every
// descendant is expanded as well.
func (n *nugget) Expand(cascade bool) error {
	n.mu.Lock()
	n.expanded = true
	n.mu.Unlock()

	if err := n.Bloom(); err != nil {
		return err
	}
	if !cascade {
		return nil
	}

	n.mu.RLock()
	children := n.node.children()
	n.mu.RUnlock()
	for _, child := range children {
		if err := child.Expand(true); err != nil {
			return err
		}
	}
	return nil
}

// Collapse marks the node as collapsed and withers it. With cascade,
// descendants are collapsed first. Without cascade, the node stays
// materialized while any of its children is still expanded.
func (n *nugget) Collapse(cascade bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.expanded = false
	for _, child := range n.node.children() {
		if cascade {
			child.Collapse(true)
		} else if child.Expanded() {
			return
		}
	}
	n.witherLocked()
}

// ToggleExpanded flips the expanded flag.
func (n *nugget) ToggleExpanded(cascade bool) error {
	if n.Expanded() {
		n.Collapse(cascade)
		return nil
	}
	return n.Expand(cascade)
}

// Select sets the selected flag, on materialized descendants too with cascade.
func (n *nugget) Select(selected, cascade bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.selected = selected
	if cascade {
		for _, child := range n.node.children() {
			child.Select(selected, true)
		}
	}
}

// ToggleSelected flips the selected flag.
func (n *nugget) ToggleSelected(cascade bool) {
	n.Select(!n.Selected(), cascade)
}

// Bloomed reports whether the node's children are materialized.
func (n *nugget) Bloomed() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.bloomed
}

// Expanded reports whether the node is open in the consuming UI.
func (n *nugget) Expanded() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.expanded
}

// Selected reports whether the node is selected.
func (n *nugget) Selected() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.selected
}

// Status returns the node's cached status.
func (n *nugget) Status() status.Status {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.status
}
