package handler_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/tablekeys/internal/dispatcher/handler"
	"github.com/dshills/tablekeys/internal/engine/document"
	"github.com/dshills/tablekeys/internal/input/key"
)

func TestResultStatus(t *testing.T) {
	tests := []struct {
		status   handler.ResultStatus
		expected string
	}{
		{handler.StatusDecline, "decline"},
		{handler.StatusSuppress, "suppress"},
		{handler.StatusApply, "apply"},
		{handler.StatusError, "error"},
		{handler.ResultStatus(99), "unknown"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, tc.status.String())
	}
}

func TestPreventDefault(t *testing.T) {
	assert.False(t, handler.Decline().PreventDefault())
	assert.True(t, handler.Suppress().PreventDefault())
	assert.True(t, handler.Apply(nil, document.Selection{}).PreventDefault())
	assert.True(t, handler.Error(errors.New("x")).PreventDefault())
}

func TestConstructors(t *testing.T) {
	p := document.Point{Key: "k", Offset: 1}
	r := handler.Apply(nil, document.Collapsed(p)).WithMessage("moved")
	assert.True(t, r.IsApplied())
	assert.False(t, r.IsError())
	assert.Equal(t, "moved", r.Message)
	assert.Equal(t, p, r.Selection.Focus)

	e := handler.Errorf("bad %d", 7)
	assert.True(t, e.IsError())
	assert.EqualError(t, e.Error, "bad 7")
}

func TestHandlerFunc(t *testing.T) {
	var called key.Event
	h := handler.HandlerFunc(func(ev key.Event, _ *document.Document, _ document.Selection) handler.Result {
		called = ev
		return handler.Suppress()
	})

	r := h.Handle(key.NewEvent(key.KeyTab, key.ModNone), nil, document.Selection{})
	assert.Equal(t, handler.StatusSuppress, r.Status)
	assert.Equal(t, key.KeyTab, called.Key)

	var nilFunc handler.HandlerFunc
	assert.True(t, nilFunc.Handle(key.Event{}, nil, document.Selection{}).IsError())
}
