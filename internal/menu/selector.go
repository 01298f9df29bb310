package menu

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/quantmind-br/gitpilot/internal/core"
	"github.com/quantmind-br/gitpilot/internal/ui"
	"github.com/rs/zerolog"
)

// Description is printed under the banner
const Description = "Your autopilot for GitHub repositories - clone, install, and run with a single command."

const helpLine = "Use ↑/↓ to navigate, [Enter] to select, or 'q' to quit."

// Selector runs the interactive repository menu
type Selector struct {
	console *ui.Console
	keys    KeyReader
	logger  *zerolog.Logger
}

// NewSelector creates a Selector drawing on console and reading from keys
func NewSelector(console *ui.Console, keys KeyReader, log *zerolog.Logger) *Selector {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &Selector{console: console, keys: keys, logger: log}
}

// Run lets the user pick one of the records compatible with platform and
// returns its name. Quitting returns core.ErrUserQuit; Ctrl+C or a closed
// input returns core.ErrInterrupted.
func (s *Selector) Run(ctx context.Context, records []core.RepositoryRecord, platform core.Platform) (string, error) {
	items := Filter(records, platform)
	if len(items) == 0 {
		return "", core.ErrNoCompatibleRepositories
	}

	state := &State{Items: items}

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("%w: %v", core.ErrInterrupted, err)
		}

		s.render(state, platform)

		key, err := s.keys.ReadKey()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", core.ErrInterrupted
			}
			return "", fmt.Errorf("read key: %w", err)
		}

		s.logger.Debug().Stringer("key", key).Int("cursor", state.Cursor).Msg("menu key")

		switch key {
		case KeyUp:
			state.Move(-1)
		case KeyDown:
			state.Move(1)
		case KeyEnter:
			return state.Current().Name, nil
		case KeyQuit:
			s.console.Clear()
			return "", core.ErrUserQuit
		case KeyInterrupt:
			return "", core.ErrInterrupted
		}
	}
}

func (s *Selector) render(state *State, platform core.Platform) {
	out := s.console.Out

	s.console.Banner(ui.Logo, Description)
	ui.Success.Fprintf(out, "Detected System: %s\n\n", platform)
	fmt.Fprintf(out, "%s\n\n", helpLine)

	for i, item := range state.Items {
		if i == state.Cursor {
			ui.Info.Fprint(out, "→ ")
			ui.Notice.Fprintln(out, item.Label())
			continue
		}
		fmt.Fprintf(out, "  %s\n", item.Label())
	}
}
