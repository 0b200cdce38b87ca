package ui

import (
	"fmt"
	"os"

	"github.com/braglog/brag/internal/importer"
	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// Prompter asks the operator questions with huh forms. It satisfies
// importer.Prompter.
type Prompter struct{}

var _ importer.Prompter = Prompter{}

// NewPrompter returns a terminal-backed prompter, or an error when
// stdin is not a TTY (prompting would hang a piped invocation).
func NewPrompter() (Prompter, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return Prompter{}, fmt.Errorf("interactive input requires a terminal")
	}
	return Prompter{}, nil
}

// Text asks for a free-form line, offering a default the operator can
// edit or accept.
func (Prompter) Text(message, defaultValue string) (string, error) {
	value := defaultValue
	err := huh.NewInput().
		Title(message).
		Value(&value).
		Run()
	if err != nil {
		return "", err
	}
	return value, nil
}

// Secret asks for a line without echoing it (API tokens).
func (Prompter) Secret(message string) (string, error) {
	var value string
	err := huh.NewInput().
		Title(message).
		EchoMode(huh.EchoModePassword).
		Value(&value).
		Run()
	if err != nil {
		return "", err
	}
	return value, nil
}

// Choose asks the operator to pick one option and returns its value.
func (Prompter) Choose(message string, options []importer.Option) (string, error) {
	opts := make([]huh.Option[string], 0, len(options))
	for _, o := range options {
		opts = append(opts, huh.NewOption(o.Label, o.Value))
	}

	var value string
	err := huh.NewSelect[string]().
		Title(message).
		Options(opts...).
		Value(&value).
		Run()
	if err != nil {
		return "", err
	}
	return value, nil
}

// Confirm asks a yes/no question.
func (Prompter) Confirm(message string, defaultValue bool) (bool, error) {
	value := defaultValue
	err := huh.NewConfirm().
		Title(message).
		Value(&value).
		Run()
	if err != nil {
		return false, err
	}
	return value, nil
}
