package runner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/quantmind-br/gitpilot/internal/config"
	"github.com/quantmind-br/gitpilot/internal/core"
	"github.com/quantmind-br/gitpilot/internal/helpers"
	"github.com/quantmind-br/gitpilot/internal/heuristics"
	"github.com/quantmind-br/gitpilot/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

const selectionLabel = "Enter the number of the file to execute"

// Prompter reads one line of user input
type Prompter interface {
	Prompt(label string) (string, error)
}

// Result describes what the executor did
type Result struct {
	Candidates []string
	Script     string
	Failed     bool
}

// Status maps the result onto a run history status
func (r Result) Status() string {
	switch {
	case r.Script == "":
		return core.RunNoRunnable
	case r.Failed:
		return core.RunScriptFailed
	default:
		return core.RunCompleted
	}
}

// Executor discovers and runs the primary script of a repository
type Executor struct {
	fs       afero.Fs
	runner   helpers.CommandRunner
	prompter Prompter
	tools    config.ToolsConfig
	logger   *zerolog.Logger
}

// NewExecutor creates an Executor
func NewExecutor(fs afero.Fs, runner helpers.CommandRunner, prompter Prompter, tools config.ToolsConfig, log *zerolog.Logger) *Executor {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &Executor{
		fs:       fs,
		runner:   runner,
		prompter: prompter,
		tools:    tools,
		logger:   log,
	}
}

// Run finds the runnable files below the session directory, lets the user
// choose when there is more than one and executes the choice. A script that
// exits non-zero is reported, not returned.
func (e *Executor) Run(ctx context.Context, session *core.Session) (Result, error) {
	candidates, err := heuristics.FindRunnables(e.fs, session.WorkDir, session.Platform)
	if err != nil {
		return Result{}, fmt.Errorf("discover runnables: %w", err)
	}

	result := Result{Candidates: candidates}

	if len(candidates) == 0 {
		session.Console.Error("No runnable scripts found. Check the README.md for usage details.")
		return result, nil
	}

	selected := candidates[0]
	if len(candidates) > 1 {
		selected, err = e.choose(session, candidates)
		if err != nil {
			return result, err
		}
	}
	result.Script = selected

	display := helpers.DisplayPath(session.WorkDir, selected)
	session.Console.Success("Executing: %s", display)

	name, args := e.Command(selected)
	e.logger.Info().
		Str("script", selected).
		Str("command", name).
		Strs("args", args).
		Msg("executing script")

	if err := e.runner.RunInteractive(ctx, session.WorkDir, session.Stdin, session.Console.Out, session.Console.Err, name, args...); err != nil {
		if ctx.Err() != nil {
			return result, fmt.Errorf("%w: %v", core.ErrInterrupted, ctx.Err())
		}
		session.Console.Error("Error executing %s. Check README for guidance.", display)
		e.logger.Warn().
			Err(err).
			Str("script", selected).
			Int("exit_code", e.runner.GetExitCode(err)).
			Msg("script failed")
		result.Failed = true
	}

	return result, nil
}

// choose lists the candidates and reads a 1-based choice. Anything that is
// not a number in range is rejected without a second attempt.
func (e *Executor) choose(session *core.Session, candidates []string) (string, error) {
	display := make([]string, len(candidates))
	for i, c := range candidates {
		display[i] = helpers.DisplayPath(session.WorkDir, c)
	}

	session.Console.Choices("Multiple runnable files found:", display)

	answer, err := e.prompter.Prompt(selectionLabel)
	if err != nil {
		if errors.Is(err, ui.ErrPromptCancelled) {
			return "", core.ErrInterrupted
		}
		return "", err
	}

	n, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil || n < 1 || n > len(candidates) {
		return "", fmt.Errorf("%w: %q", core.ErrInvalidSelection, answer)
	}

	return candidates[n-1], nil
}

// Command returns the interpreter invocation for script, chosen by its
// extension
func (e *Executor) Command(script string) (string, []string) {
	switch strings.ToLower(filepath.Ext(script)) {
	case ".py":
		return e.tools.Python, []string{script}
	case ".ps1":
		return e.tools.PowerShell, []string{"-ExecutionPolicy", "Bypass", "-File", script}
	case ".sh":
		return e.tools.Shell, []string{script}
	case ".bat":
		return e.tools.Cmd, []string{"/C", script}
	default:
		return script, nil
	}
}
