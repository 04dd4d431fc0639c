package dispatcher_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/tablekeys/internal/dispatcher"
	"github.com/dshills/tablekeys/internal/dispatcher/handler"
	tablehandler "github.com/dshills/tablekeys/internal/dispatcher/handlers/table"
	"github.com/dshills/tablekeys/internal/engine/document"
	"github.com/dshills/tablekeys/internal/input/key"
	"github.com/dshills/tablekeys/internal/table"
)

var (
	decline = handler.HandlerFunc(func(key.Event, *document.Document, document.Selection) handler.Result {
		return handler.Decline()
	})
	suppress = handler.HandlerFunc(func(key.Event, *document.Document, document.Selection) handler.Result {
		return handler.Suppress().WithMessage("suppressed")
	})
	boom = handler.HandlerFunc(func(key.Event, *document.Document, document.Selection) handler.Result {
		panic("kaboom")
	})
)

func tableDoc(t *testing.T) (*document.Document, document.Selection) {
	t.Helper()
	tbl := table.New([][]string{{"A", "B"}, {"C", "D"}})
	doc := document.MustNew(document.NewBlock(document.TypeDocument, tbl))
	p, ok := doc.StartOf(table.CellAt(tbl, 1, 1).Key())
	require.True(t, ok)
	return doc, document.Collapsed(p)
}

func TestNewDefaults(t *testing.T) {
	d := dispatcher.New(dispatcher.DefaultConfig())
	require.NotNil(t, d)
	assert.NotNil(t, d.Registry())
	assert.Nil(t, d.Metrics(), "metrics are off by default")
	assert.True(t, d.Config().RecoverFromPanic)

	d = dispatcher.New(dispatcher.DefaultConfig().WithMetrics())
	assert.NotNil(t, d.Metrics())
}

func TestDispatchWithoutHandlersDeclines(t *testing.T) {
	d := dispatcher.New(dispatcher.DefaultConfig())
	doc, sel := tableDoc(t)

	r := d.Dispatch(key.MustParse("Tab"), doc, sel)
	assert.Equal(t, handler.StatusDecline, r.Status)
	assert.False(t, r.PreventDefault())
}

func TestFirstNonDeclineWins(t *testing.T) {
	d := dispatcher.New(dispatcher.DefaultConfig())
	var calls []string
	record := func(name string, res handler.Result) handler.HandlerFunc {
		return func(key.Event, *document.Document, document.Selection) handler.Result {
			calls = append(calls, name)
			return res
		}
	}

	require.NoError(t, d.Register("low", record("low", handler.Suppress()), 1))
	require.NoError(t, d.Register("high", record("high", handler.Decline()), 10))
	require.NoError(t, d.Register("mid", record("mid", handler.Suppress().WithMessage("mid")), 5))

	doc, sel := tableDoc(t)
	r := d.Dispatch(key.MustParse("x"), doc, sel)

	assert.Equal(t, handler.StatusSuppress, r.Status)
	assert.Equal(t, "mid", r.Message)
	assert.Equal(t, []string{"high", "mid"}, calls)
	assert.Equal(t, []string{"high", "mid", "low"}, d.Registry().Names())
}

func TestRegisterValidation(t *testing.T) {
	d := dispatcher.New(dispatcher.DefaultConfig())

	require.NoError(t, d.Register("a", decline, 0))
	assert.ErrorIs(t, d.Register("a", decline, 0), dispatcher.ErrDuplicateHandler)
	assert.ErrorIs(t, d.Register("", decline, 0), dispatcher.ErrEmptyName)
	assert.ErrorIs(t, d.Register("nil", nil, 0), dispatcher.ErrNilHandler)
	assert.Equal(t, []string{"a"}, d.Registry().Names())
}

func TestEqualPrioritiesKeepRegistrationOrder(t *testing.T) {
	r := dispatcher.NewRegistry()
	for _, name := range []string{"one", "two", "three"} {
		require.NoError(t, r.Register(name, decline, 0))
	}
	require.NoError(t, r.Register("first", decline, 1))

	assert.Equal(t, []string{"first", "one", "two", "three"}, r.Names())
	assert.Len(t, r.Entries(), 4)
}

func TestPanicRecovery(t *testing.T) {
	d := dispatcher.New(dispatcher.DefaultConfig().WithMetrics())
	require.NoError(t, d.Register("boom", boom, 10))
	require.NoError(t, d.Register("after", suppress, 0))

	doc, sel := tableDoc(t)
	r := d.Dispatch(key.MustParse("Enter"), doc, sel)

	require.Equal(t, handler.StatusError, r.Status)
	assert.ErrorIs(t, r.Error, dispatcher.ErrPanic)
	assert.Contains(t, r.Error.Error(), "kaboom")
	assert.Equal(t, uint64(1), d.Metrics().TotalPanics())
	assert.Equal(t, uint64(1), d.Metrics().TotalErrors())
}

func TestPanicWithoutRecoveryPropagates(t *testing.T) {
	d := dispatcher.New(dispatcher.DefaultConfig().WithPanicRecovery(false))
	require.NoError(t, d.Register("boom", boom, 0))

	doc, sel := tableDoc(t)
	assert.Panics(t, func() {
		d.Dispatch(key.MustParse("Enter"), doc, sel)
	})
}

func TestPostHooks(t *testing.T) {
	d := dispatcher.New(dispatcher.DefaultConfig())
	require.NoError(t, d.Register("table", tablehandler.NewHandler(), 0))
	doc, sel := tableDoc(t)

	var seen []dispatcher.Dispatched
	d.RegisterPostHook(dispatcher.PostDispatchFunc(func(info dispatcher.Dispatched, result *handler.Result) {
		seen = append(seen, info)
		if result.IsApplied() {
			result.Message = "applied"
		}
	}))
	d.RegisterPostHook(dispatcher.PostDispatchFunc(func(_ dispatcher.Dispatched, result *handler.Result) {
		result.Message += "!"
	}))

	r := d.Dispatch(key.MustParse("Tab"), doc, sel)
	assert.Equal(t, handler.StatusApply, r.Status)
	assert.Equal(t, "applied!", r.Message, "hooks run in registration order")

	r = d.Dispatch(key.MustParse("Escape"), doc, sel)
	assert.Equal(t, handler.StatusDecline, r.Status)

	require.Len(t, seen, 2)
	assert.Equal(t, "table", seen[0].Handler)
	assert.Equal(t, key.KeyTab, seen[0].Event.Key)
	assert.Equal(t, "", seen[1].Handler, "declined by every handler")
}

func TestMetricsPerKey(t *testing.T) {
	d := dispatcher.New(dispatcher.DefaultConfig().WithMetrics())
	require.NoError(t, d.Register("table", tablehandler.NewHandler(), 0))
	doc, sel := tableDoc(t)

	d.Dispatch(key.MustParse("Tab"), doc, sel)
	d.Dispatch(key.MustParse("Tab"), doc, sel)
	d.Dispatch(key.MustParse("Left"), doc, sel)

	m := d.Metrics()
	assert.Equal(t, uint64(3), m.TotalDispatches())

	tab := m.KeyStats("Tab")
	require.NotNil(t, tab)
	assert.Equal(t, uint64(2), tab.DispatchCount)
	assert.Equal(t, uint64(2), tab.Count(handler.StatusApply))
	assert.Equal(t, "table", tab.LastHandler)

	left := m.KeyStats("Left")
	require.NotNil(t, left)
	assert.Equal(t, uint64(1), left.Count(handler.StatusDecline))
	assert.Equal(t, "", left.LastHandler)

	top := m.TopKeys(1)
	require.Len(t, top, 1)
	assert.Equal(t, "Tab", top[0].Key)
	assert.Len(t, m.TopKeys(0), 2)

	snap := m.Snapshot()
	assert.Equal(t, 2, snap.KeyCount)

	m.Reset()
	assert.Equal(t, uint64(0), m.TotalDispatches())
	assert.Nil(t, m.KeyStats("Tab"))
}
