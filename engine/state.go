package engine

import (
	"github.com/jesspatton/lazysuite/frameworks"
)

// State represents the core business state of the run container.
type State struct {
	// Data
	Options frameworks.SuiteOptions
	Suites  map[string]*frameworks.Suite
	Order   []string

	// Reconciliation State
	Refreshing bool
	Errors     map[string]error
	InFlight   int
}

// NewState creates a new State instance.
func NewState(options frameworks.SuiteOptions) State {
	return State{
		Options: options,
		Suites:  make(map[string]*frameworks.Suite),
		Order:   make([]string, 0),
		Errors:  make(map[string]error),
	}
}

func (s *State) add(suite *frameworks.Suite) {
	if _, ok := s.Suites[suite.File()]; !ok {
		s.Order = append(s.Order, suite.File())
	}
	s.Suites[suite.File()] = suite
}

func (s *State) remove(file string) {
	delete(s.Suites, file)
	delete(s.Errors, file)
	for i, f := range s.Order {
		if f == file {
			s.Order = append(s.Order[:i], s.Order[i+1:]...)
			return
		}
	}
}
