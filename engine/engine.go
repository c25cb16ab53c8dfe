// Package engine owns the collection of suites for one framework run and
// feeds reported results into them.
package engine

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/jesspatton/lazysuite/config"
	"github.com/jesspatton/lazysuite/errors"
	"github.com/jesspatton/lazysuite/frameworks"
	"github.com/jesspatton/lazysuite/logging"
	"github.com/jesspatton/lazysuite/schema"
	"github.com/jesspatton/lazysuite/status"
)

// Messages

// RefreshingMsg indicates a structural re-scan of the suites has started.
type RefreshingMsg struct{}

// ScanMsg carries every suite found by a re-scan. Suites missing from it
// are dropped.
type ScanMsg struct {
	Results []frameworks.SuiteResult
}

// ResultMsg carries a fresh result for one suite.
type ResultMsg struct {
	Result  frameworks.SuiteResult
	Cleanup bool
}

// PayloadMsg carries a raw JSON result for one suite. It is validated and
// decoded before it is handled like a ResultMsg.
type PayloadMsg struct {
	Data    []byte
	Cleanup bool
}

// ReconciledMsg reports that a suite finished applying a result.
type ReconciledMsg struct {
	File string
	Err  error
}

// unknownFile keys the error of the last result whose file is unknown,
// either because its payload could not be decoded or because it names none.
const unknownFile = ""

// Engine manages the suites of a run and their reconciliation.
type Engine struct {
	State State
	log   *logrus.Entry
}

// New creates a new Engine instance.
func New(options frameworks.SuiteOptions) *Engine {
	return &Engine{
		State: NewState(options),
		log:   logging.NewLogger("engine"),
	}
}

// NewFromConfig loads the project's configuration, applies its logging
// settings and creates an Engine for root.
func NewFromConfig(root string) (*Engine, error) {
	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}
	logging.Configure(cfg.Logging)
	return New(cfg.SuiteOptions(root)), nil
}

// Init initializes the engine's side effects.
func (e *Engine) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the engine state.
func (e *Engine) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case RefreshingMsg:
		e.State.Refreshing = true
		return nil

	case ScanMsg:
		e.State.Refreshing = false
		return e.scan(msg.Results)

	case PayloadMsg:
		result, err := schema.Decode(msg.Data)
		if err != nil {
			e.warn(err, unknownFile, "Rejected result payload")
			e.State.Errors[unknownFile] = err
			return nil
		}
		return e.Update(ResultMsg{Result: result, Cleanup: msg.Cleanup})

	case ResultMsg:
		if msg.Result.File != unknownFile {
			delete(e.State.Errors, unknownFile)
		}
		suite, ok := e.State.Suites[msg.Result.File]
		if !ok {
			return e.create(msg.Result)
		}
		// Enqueue now, so results apply in the order Update saw them.
		return e.await(msg.Result.File, suite.DebriefAsync(msg.Result, msg.Cleanup))

	case ReconciledMsg:
		if e.State.InFlight > 0 {
			e.State.InFlight--
		}
		if _, ok := e.State.Suites[msg.File]; !ok {
			e.log.WithField("file", msg.File).Debug("Ignoring reconciliation of dropped suite")
			return nil
		}
		if msg.Err != nil {
			e.warn(msg.Err, msg.File, "Failed to reconcile suite")
			e.State.Errors[msg.File] = msg.Err
			return nil
		}
		delete(e.State.Errors, msg.File)
		return nil
	}

	return nil
}

// scan reconciles the suites against a full re-scan. Suites not reported
// by it are left stale and dropped.
func (e *Engine) scan(results []frameworks.SuiteResult) tea.Cmd {
	for _, suite := range e.State.Suites {
		suite.SetFresh(false)
	}
	for file := range e.State.Errors {
		if _, ok := e.State.Suites[file]; !ok && file != unknownFile {
			delete(e.State.Errors, file)
		}
	}

	var cmds []tea.Cmd
	for _, result := range results {
		if suite, ok := e.State.Suites[result.File]; ok {
			if suite.IsFresh() {
				e.log.WithField("file", result.File).Debug("Skipping duplicate scan result")
				continue
			}
			suite.SetFresh(true)
			suite.Refresh(e.State.Options)
			cmds = append(cmds, e.await(result.File, suite.RebuildTestsAsync(result)))
			continue
		}
		cmds = append(cmds, e.create(result))
	}

	for _, file := range append([]string(nil), e.State.Order...) {
		if !e.State.Suites[file].IsFresh() {
			e.log.WithField("file", file).Debug("Dropping suite")
			e.State.remove(file)
		}
	}

	return tea.Batch(cmds...)
}

func (e *Engine) create(result frameworks.SuiteResult) tea.Cmd {
	suite, err := frameworks.NewSuite(e.State.Options, result)
	if err != nil {
		e.warn(err, result.File, "Rejected new suite")
		e.State.Errors[result.File] = err
		return nil
	}
	e.log.WithField("file", result.File).Debug("Added suite")
	suite.SetFresh(true)
	e.State.add(suite)
	delete(e.State.Errors, result.File)
	return nil
}

func (e *Engine) warn(err error, file, message string) {
	e.log.WithError(err).
		WithField("file", file).
		WithField("code", errors.GetCode(err)).
		Warn(message)
}

func (e *Engine) await(file string, done <-chan error) tea.Cmd {
	e.State.InFlight++
	return func() tea.Msg {
		return ReconciledMsg{File: file, Err: <-done}
	}
}

// Accessors

// Status computes the overarching status of the run.
func (e *Engine) Status() status.FrameworkStatus {
	components := make([]status.FrameworkStatus, 0, len(e.State.Order)+2)
	for _, file := range e.State.Order {
		components = append(components, e.State.Suites[file].Status().Framework())
	}
	if e.State.Refreshing {
		components = append(components, status.Refreshing)
	}
	if len(e.State.Errors) > 0 {
		components = append(components, status.Errored)
	}

	parsed, err := status.ParseFramework(components)
	if err != nil {
		e.log.WithError(err).Warn("Failed to parse framework status")
		return status.Errored
	}
	return parsed
}

func (e *Engine) Suite(file string) (*frameworks.Suite, bool) {
	suite, ok := e.State.Suites[file]
	return suite, ok
}

// Suites returns the suites in the order they were added.
func (e *Engine) Suites() []*frameworks.Suite {
	result := make([]*frameworks.Suite, 0, len(e.State.Order))
	for _, file := range e.State.Order {
		result = append(result, e.State.Suites[file])
	}
	return result
}

// Err returns the last reconciliation error for a suite, if any.
func (e *Engine) Err(file string) error {
	return e.State.Errors[file]
}

// Persist snapshots every suite for storage.
func (e *Engine) Persist() []frameworks.SuiteResult {
	result := make([]frameworks.SuiteResult, 0, len(e.State.Order))
	for _, file := range e.State.Order {
		result = append(result, e.State.Suites[file].Persist())
	}
	return result
}
