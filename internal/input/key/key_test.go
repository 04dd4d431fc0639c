package key_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/tablekeys/internal/input/key"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want key.Event
	}{
		{"Tab", key.NewEvent(key.KeyTab, key.ModNone)},
		{"enter", key.NewEvent(key.KeyEnter, key.ModNone)},
		{"BS", key.NewEvent(key.KeyBackspace, key.ModNone)},
		{"Ctrl+Shift+Down", key.NewEvent(key.KeyDown, key.ModCtrl|key.ModShift)},
		{"shift+ctrl+left", key.NewEvent(key.KeyLeft, key.ModCtrl|key.ModShift)},
		{"Alt+Up", key.NewEvent(key.KeyUp, key.ModAlt)},
		{"<C-S-Right>", key.NewEvent(key.KeyRight, key.ModCtrl|key.ModShift)},
		{"<CR>", key.NewEvent(key.KeyEnter, key.ModNone)},
		{"<Del>", key.NewEvent(key.KeyDelete, key.ModNone)},
		{"a", key.NewRuneEvent('a', key.ModNone)},
		{"A", key.NewRuneEvent('A', key.ModShift)},
		{"+", key.NewRuneEvent('+', key.ModNone)},
		{"Ctrl+Space", key.NewRuneEvent(' ', key.ModCtrl)},
	}

	for _, tc := range tests {
		t.Run(tc.spec, func(t *testing.T) {
			got, err := key.Parse(tc.spec)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	_, err := key.Parse("  ")
	assert.ErrorIs(t, err, key.ErrEmptySpec)

	for _, spec := range []string{"Hyper+Down", "<X-Up>", "Ctrl+", "Nonsense"} {
		_, err := key.Parse(spec)
		assert.ErrorIs(t, err, key.ErrInvalidSpec, spec)
	}

	assert.Panics(t, func() { key.MustParse("") })
}

func TestParseSequence(t *testing.T) {
	seq, err := key.ParseSequence("Tab", "Ctrl+Shift+Down", "<BS>")
	require.NoError(t, err)
	assert.Len(t, seq, 3)
	assert.Equal(t, "Tab Ctrl+Shift+Down Backspace", seq.String())

	_, err = key.ParseSequence("Tab", "Bogus+Down")
	assert.ErrorContains(t, err, "key 2")
}

func TestModifiers(t *testing.T) {
	chord := key.ModCtrl | key.ModShift

	assert.True(t, chord.HasAll(key.ModCtrl|key.ModShift))
	assert.False(t, key.ModCtrl.HasAll(chord))
	assert.True(t, key.ModCtrl.Has(chord))
	assert.True(t, key.ModAlt.HasAll(key.ModNone))
	assert.Equal(t, key.ModShift, chord.Without(key.ModCtrl))
	assert.Equal(t, "Ctrl+Shift", chord.String())
	assert.Equal(t, "", key.ModNone.String())

	m, err := key.ParseModifiers("Ctrl+Shift")
	require.NoError(t, err)
	assert.Equal(t, chord, m)

	m, err = key.ParseModifiers("C-A")
	require.NoError(t, err)
	assert.Equal(t, key.ModCtrl|key.ModAlt, m)

	m, err = key.ParseModifiers("none")
	require.NoError(t, err)
	assert.True(t, m.IsEmpty())

	_, err = key.ParseModifiers("Ctrl+Hyper")
	assert.ErrorIs(t, err, key.ErrInvalidSpec)
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "Ctrl+Shift+Down", key.MustParse("<C-S-Down>").String())
	assert.Equal(t, "Space", key.NewRuneEvent(' ', key.ModNone).String())
	assert.Equal(t, "Key(200)", key.Key(200).String())
	assert.True(t, key.KeyUp.IsArrowKey())
	assert.True(t, key.KeyDelete.IsDelete())
	assert.False(t, key.KeyTab.IsArrowKey())
}
