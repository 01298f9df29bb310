package menu

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/quantmind-br/gitpilot/internal/core"
	"github.com/quantmind-br/gitpilot/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []core.RepositoryRecord {
	return []core.RepositoryRecord{
		{Name: "lintool", SupportedSystems: core.PlatformSet{core.PlatformLinux}},
		{Name: "wintool", SupportedSystems: core.PlatformSet{core.PlatformWindows}},
		{Name: "anywhere", SupportedSystems: core.BothPlatforms()},
	}
}

func names(records []core.RepositoryRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func newTestSelector(t *testing.T, keys ...Key) (*Selector, *bytes.Buffer) {
	t.Helper()

	ui.DisableColors()
	t.Cleanup(ui.EnableColors)

	var out bytes.Buffer
	return NewSelector(ui.NewConsole(&out, nil), NewScriptedKeyReader(keys...), nil), &out
}

func TestFilter(t *testing.T) {
	records := sampleRecords()

	assert.Equal(t, []string{"lintool", "anywhere"}, names(Filter(records, core.PlatformLinux)))
	assert.Equal(t, []string{"wintool", "anywhere"}, names(Filter(records, core.PlatformWindows)))
	assert.Empty(t, Filter(records[:1], core.PlatformWindows))
	assert.Empty(t, Filter(nil, core.PlatformLinux))
}

func TestStateMoveWraps(t *testing.T) {
	s := &State{Items: sampleRecords()}

	s.Move(-1)
	assert.Equal(t, 2, s.Cursor)

	s.Move(1)
	assert.Equal(t, 0, s.Cursor)

	s.Move(1)
	s.Move(1)
	s.Move(1)
	assert.Equal(t, 0, s.Cursor)

	s.Move(-4)
	assert.Equal(t, 2, s.Cursor)
	assert.Equal(t, "anywhere", s.Current().Name)

	empty := &State{}
	empty.Move(1)
	assert.Equal(t, 0, empty.Cursor)
}

func TestSelectorRun(t *testing.T) {
	tests := []struct {
		name     string
		platform core.Platform
		keys     []Key
		want     string
		wantErr  error
	}{
		{"enter picks first", core.PlatformLinux, []Key{KeyEnter}, "lintool", nil},
		{"down then enter", core.PlatformLinux, []Key{KeyDown, KeyEnter}, "anywhere", nil},
		{"up wraps to last", core.PlatformWindows, []Key{KeyUp, KeyEnter}, "anywhere", nil},
		{"down wraps to first", core.PlatformLinux, []Key{KeyDown, KeyDown, KeyEnter}, "lintool", nil},
		{"unknown keys ignored", core.PlatformWindows, []Key{KeyUnknown, KeyUnknown, KeyEnter}, "wintool", nil},
		{"quit", core.PlatformLinux, []Key{KeyDown, KeyQuit}, "", core.ErrUserQuit},
		{"interrupt", core.PlatformLinux, []Key{KeyInterrupt}, "", core.ErrInterrupted},
		{"input closed", core.PlatformLinux, nil, "", core.ErrInterrupted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, _ := newTestSelector(t, tt.keys...)

			got, err := sel.Run(context.Background(), sampleRecords(), tt.platform)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectorRunNoCompatible(t *testing.T) {
	sel, out := newTestSelector(t, KeyEnter)

	records := []core.RepositoryRecord{{Name: "lintool", SupportedSystems: core.PlatformSet{core.PlatformLinux}}}
	_, err := sel.Run(context.Background(), records, core.PlatformWindows)

	assert.ErrorIs(t, err, core.ErrNoCompatibleRepositories)
	assert.Empty(t, out.String(), "menu must not be drawn")
}

func TestSelectorRender(t *testing.T) {
	sel, out := newTestSelector(t, KeyDown, KeyEnter)

	_, err := sel.Run(context.Background(), sampleRecords(), core.PlatformLinux)
	require.NoError(t, err)

	frames := strings.Split(out.String(), "\x1b[H\x1b[2J")
	require.Len(t, frames, 3) // leading empty chunk plus one frame per read

	first := frames[1]
	assert.Contains(t, first, "Detected System: Linux")
	assert.Contains(t, first, "Use ↑/↓ to navigate, [Enter] to select, or 'q' to quit.")
	assert.Contains(t, first, "→ lintool (Linux)")
	assert.Contains(t, first, "  anywhere (Windows/Linux)")
	assert.NotContains(t, first, "wintool")

	second := frames[2]
	assert.Contains(t, second, "  lintool (Linux)")
	assert.Contains(t, second, "→ anywhere (Windows/Linux)")
}

func TestSelectorQuitClearsScreen(t *testing.T) {
	sel, out := newTestSelector(t, KeyQuit)

	_, err := sel.Run(context.Background(), sampleRecords(), core.PlatformLinux)
	require.ErrorIs(t, err, core.ErrUserQuit)
	assert.True(t, strings.HasSuffix(out.String(), "\x1b[H\x1b[2J"))
}

func TestSelectorCancelledContext(t *testing.T) {
	sel, _ := newTestSelector(t, KeyEnter)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sel.Run(ctx, sampleRecords(), core.PlatformLinux)
	assert.ErrorIs(t, err, core.ErrInterrupted)
}
