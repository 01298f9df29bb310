package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/quantmind-br/gitpilot/internal/config"
	"github.com/quantmind-br/gitpilot/internal/core"
	"github.com/quantmind-br/gitpilot/internal/helpers"
	"github.com/quantmind-br/gitpilot/internal/ui"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePrompter struct {
	answer string
	err    error
	labels []string
}

func (f *fakePrompter) Prompt(label string) (string, error) {
	f.labels = append(f.labels, label)
	return f.answer, f.err
}

type invocation struct {
	dir  string
	name string
	args []string
}

func recordingRunner(calls *[]invocation, result error) *helpers.MockCommandRunner {
	return &helpers.MockCommandRunner{
		RunInteractiveFunc: func(_ context.Context, dir string, _ io.Reader, _, _ io.Writer, name string, args ...string) error {
			*calls = append(*calls, invocation{dir: dir, name: name, args: args})
			return result
		},
	}
}

func testTools() config.ToolsConfig {
	return config.ToolsConfig{
		Git:        "git",
		Python:     "python3",
		PowerShell: "powershell",
		Shell:      "bash",
		Cmd:        "cmd",
	}
}

type testEnv struct {
	fs      afero.Fs
	session *core.Session
	out     *bytes.Buffer
	errOut  *bytes.Buffer
}

func newTestEnv(t *testing.T, platform core.Platform, files ...string) *testEnv {
	t.Helper()

	ui.DisableColors()
	t.Cleanup(ui.EnableColors)

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/work/demo", 0755))
	for _, f := range files {
		require.NoError(t, afero.WriteFile(fs, f, []byte("#"), 0644))
	}

	var out, errOut bytes.Buffer
	return &testEnv{
		fs: fs,
		session: &core.Session{
			WorkDir:  "/work/demo",
			Platform: platform,
			Console:  ui.NewConsole(&out, &errOut),
		},
		out:    &out,
		errOut: &errOut,
	}
}

func TestRunNoCandidates(t *testing.T) {
	env := newTestEnv(t, core.PlatformLinux, "/work/demo/README.md", "/work/demo/tool.ps1")
	var calls []invocation

	result, err := NewExecutor(env.fs, recordingRunner(&calls, nil), &fakePrompter{}, testTools(), nil).
		Run(context.Background(), env.session)

	require.NoError(t, err)
	assert.Empty(t, calls)
	assert.Equal(t, core.RunNoRunnable, result.Status())
	assert.Contains(t, env.errOut.String(), "No runnable scripts found. Check the README.md for usage details.")
}

func TestRunSingleCandidateAutoSelected(t *testing.T) {
	env := newTestEnv(t, core.PlatformLinux, "/work/demo/main.py", "/work/demo/README.md")
	prompter := &fakePrompter{}
	var calls []invocation

	result, err := NewExecutor(env.fs, recordingRunner(&calls, nil), prompter, testTools(), nil).
		Run(context.Background(), env.session)

	require.NoError(t, err)
	assert.Empty(t, prompter.labels, "a single candidate needs no prompt")
	require.Len(t, calls, 1)
	assert.Equal(t, invocation{dir: "/work/demo", name: "python3", args: []string{"/work/demo/main.py"}}, calls[0])
	assert.Equal(t, core.RunCompleted, result.Status())
	assert.Contains(t, env.out.String(), "Executing: main.py")
}

func TestRunMultipleCandidates(t *testing.T) {
	tests := []struct {
		answer  string
		want    string
		wantErr error
	}{
		{answer: "1", want: "/work/demo/install.sh"},
		{answer: " 2 ", want: "/work/demo/main.py"},
		{answer: "0", wantErr: core.ErrInvalidSelection},
		{answer: "3", wantErr: core.ErrInvalidSelection},
		{answer: "-1", wantErr: core.ErrInvalidSelection},
		{answer: "abc", wantErr: core.ErrInvalidSelection},
		{answer: "", wantErr: core.ErrInvalidSelection},
	}

	for _, tt := range tests {
		t.Run("answer "+tt.answer, func(t *testing.T) {
			env := newTestEnv(t, core.PlatformLinux, "/work/demo/main.py", "/work/demo/install.sh")
			prompter := &fakePrompter{answer: tt.answer}
			var calls []invocation

			result, err := NewExecutor(env.fs, recordingRunner(&calls, nil), prompter, testTools(), nil).
				Run(context.Background(), env.session)

			assert.Equal(t, []string{"Enter the number of the file to execute"}, prompter.labels)
			assert.Contains(t, env.out.String(), "Multiple runnable files found:\n1. install.sh")
			assert.NotContains(t, env.errOut.String(), "Multiple runnable files found:")
			assert.Contains(t, env.out.String(), "2. main.py")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, calls, "nothing runs after an invalid selection")
				return
			}

			require.NoError(t, err)
			require.Len(t, calls, 1)
			assert.Equal(t, tt.want, result.Script)
			assert.Contains(t, calls[0].args, tt.want)
		})
	}
}

func TestRunPromptCancelled(t *testing.T) {
	env := newTestEnv(t, core.PlatformLinux, "/work/demo/a.sh", "/work/demo/b.sh")
	prompter := &fakePrompter{err: ui.ErrPromptCancelled}

	_, err := NewExecutor(env.fs, &helpers.MockCommandRunner{}, prompter, testTools(), nil).
		Run(context.Background(), env.session)

	assert.ErrorIs(t, err, core.ErrInterrupted)
}

func TestRunScriptFailureIsAdvisory(t *testing.T) {
	env := newTestEnv(t, core.PlatformLinux, "/work/demo/run.sh")
	var calls []invocation

	result, err := NewExecutor(env.fs, recordingRunner(&calls, errors.New("exit status 2")), &fakePrompter{}, testTools(), nil).
		Run(context.Background(), env.session)

	require.NoError(t, err)
	assert.True(t, result.Failed)
	assert.Equal(t, core.RunScriptFailed, result.Status())
	assert.Contains(t, env.errOut.String(), "Error executing run.sh. Check README for guidance.")
}

func TestRunWindowsCandidates(t *testing.T) {
	env := newTestEnv(t, core.PlatformWindows, "/work/demo/setup.BAT", "/work/demo/run.sh")
	var calls []invocation

	result, err := NewExecutor(env.fs, recordingRunner(&calls, nil), &fakePrompter{}, testTools(), nil).
		Run(context.Background(), env.session)

	require.NoError(t, err)
	assert.Equal(t, []string{"/work/demo/setup.BAT"}, result.Candidates)
	require.Len(t, calls, 1)
	assert.Equal(t, "cmd", calls[0].name)
}

func TestCommand(t *testing.T) {
	e := NewExecutor(afero.NewMemMapFs(), &helpers.MockCommandRunner{}, &fakePrompter{}, testTools(), nil)

	tests := []struct {
		script   string
		wantName string
		wantArgs []string
	}{
		{"main.py", "python3", []string{"main.py"}},
		{"setup.ps1", "powershell", []string{"-ExecutionPolicy", "Bypass", "-File", "setup.ps1"}},
		{"install.sh", "bash", []string{"install.sh"}},
		{"start.bat", "cmd", []string{"/C", "start.bat"}},
		{"RUN.PY", "python3", []string{"RUN.PY"}},
	}

	for _, tt := range tests {
		t.Run(tt.script, func(t *testing.T) {
			name, args := e.Command(tt.script)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
