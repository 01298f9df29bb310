package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
)

// ErrPromptCancelled is returned when the user aborts a prompt (Ctrl+C or Ctrl+D)
var ErrPromptCancelled = errors.New("input cancelled by user")

// LinePrompter reads one line of free text from the terminal
type LinePrompter struct{}

// NewLinePrompter creates a promptui-backed prompter
func NewLinePrompter() *LinePrompter {
	return &LinePrompter{}
}

// Prompt asks for a single line of input. Input is returned trimmed and is
// never validated here; callers decide what to do with bad answers.
func (p *LinePrompter) Prompt(label string) (string, error) {
	prompt := promptui.Prompt{
		Label: label,
	}

	result, err := prompt.Run()
	if err != nil {
		return "", mapPromptError(err)
	}

	return strings.TrimSpace(result), nil
}

// ConfirmPrompt asks a yes/no confirmation question
func ConfirmPrompt(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}

	result, err := prompt.Run()
	if err != nil {
		// promptui reports a "no" answer to a confirm prompt as ErrAbort
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, mapPromptError(err)
	}

	return strings.EqualFold(result, "y"), nil
}

func mapPromptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrAbort) {
		return ErrPromptCancelled
	}
	return fmt.Errorf("prompt: %w", err)
}
