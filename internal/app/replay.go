package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/tablekeys/internal/dispatcher/handler"
	"github.com/dshills/tablekeys/internal/engine"
	"github.com/dshills/tablekeys/internal/engine/document"
	"github.com/dshills/tablekeys/internal/fixture"
	"github.com/dshills/tablekeys/internal/input/key"
)

// Replay commands that act on history instead of dispatching a key.
const (
	CommandUndo = ":undo"
	CommandRedo = ":redo"
)

// FixtureGroup names the undo entry holding a fixture's own keys.
const FixtureGroup = "fixture keys"

// Step is the outcome of one replayed key.
type Step struct {
	// Key is the canonical key name, or the history command.
	Key string

	Status  handler.ResultStatus
	Message string
	Err     error

	// Selection is the selection after the step.
	Selection document.Selection
}

// String returns "Tab: apply" or "Tab: error: ...".
func (s Step) String() string {
	var b strings.Builder
	b.WriteString(s.Key)
	b.WriteString(": ")
	b.WriteString(s.Status.String())
	if s.Message != "" {
		b.WriteString(" (" + s.Message + ")")
	}
	if s.Err != nil {
		b.WriteString(": " + s.Err.Error())
	}
	return b.String()
}

// Run is a finished replay.
type Run struct {
	Engine *engine.Engine
	Steps  []Step
}

// Snapshot returns the final document and selection.
func (r *Run) Snapshot() (*document.Document, document.Selection) {
	return r.Engine.Snapshot()
}

// Replay starts an engine on the fixture and feeds it the fixture's own keys
// followed by specs. It stops at the first key that fails to parse or ends
// in an error result; the returned Run holds every step taken so far.
func (a *Application) Replay(f *fixture.Fixture, specs ...string) (*Run, error) {
	eng, err := a.NewEngine(f)
	if err != nil {
		return nil, err
	}
	run := &Run{Engine: eng}

	// The fixture's own keys undo as one step. A history command closes the
	// group early.
	scope := eng.UndoGroup(FixtureGroup)
	defer scope.End()

	all := append(append([]string(nil), f.Keys...), specs...)
	for i, spec := range all {
		if i == len(f.Keys) || isHistoryCommand(spec) {
			scope.End()
		}
		step, err := a.step(eng, spec)
		if err != nil {
			return run, fmt.Errorf("key %d (%q): %w", i+1, spec, err)
		}
		run.Steps = append(run.Steps, step)
		if step.Status == handler.StatusError {
			return run, fmt.Errorf("%w: key %d (%s): %w", engine.ErrKeyFailed, i+1, step.Key, step.Err)
		}
	}

	a.logger.Info("replay finished", "keys", len(all), "undo", eng.UndoCount())
	return run, nil
}

func isHistoryCommand(spec string) bool {
	switch strings.ToLower(strings.TrimSpace(spec)) {
	case CommandUndo, CommandRedo:
		return true
	}
	return false
}

func (a *Application) step(eng *engine.Engine, spec string) (Step, error) {
	switch strings.ToLower(strings.TrimSpace(spec)) {
	case CommandUndo:
		next, _ := eng.History().PeekUndo()
		return historyStep(eng, CommandUndo, next.Description, eng.Undo())
	case CommandRedo:
		next, _ := eng.History().PeekRedo()
		return historyStep(eng, CommandRedo, next.Description, eng.Redo())
	}

	ev, err := key.Parse(spec)
	if err != nil {
		return Step{}, fmt.Errorf("%w: %w", ErrBadKey, err)
	}
	r := eng.HandleKey(ev)
	return Step{
		Key:       ev.String(),
		Status:    r.Status,
		Message:   r.Message,
		Err:       r.Error,
		Selection: eng.Selection(),
	}, nil
}

// historyStep reports an undo or redo of the entry named what. An empty
// stack is a suppressed no-op.
func historyStep(eng *engine.Engine, name, what string, err error) (Step, error) {
	s := Step{Key: name, Status: handler.StatusApply, Selection: eng.Selection()}
	switch {
	case err == nil:
		s.Message = what
	case errors.Is(err, engine.ErrNothingToUndo), errors.Is(err, engine.ErrNothingToRedo):
		s.Status = handler.StatusSuppress
		s.Message = err.Error()
	default:
		return Step{}, err
	}
	return s, nil
}
