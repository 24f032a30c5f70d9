// Package prompt collects the interactive questions the CLI asks when a run
// is missing required inputs.
package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/goliatone/go-scaffold/pkg/names"
)

// ErrAborted indicates the user interrupted the prompt.
var ErrAborted = errors.New("prompt: aborted")

// InputConfig configures a basic text input prompt.
type InputConfig struct {
	Message   string
	Default   string
	Help      string
	Validator func(string) error
}

// ConfirmConfig configures a yes/no style prompt.
type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

// Driver abstracts the terminal implementation so prompt flows can be tested
// without a real terminal.
type Driver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
}

// NewDriver returns the survey-backed terminal driver.
func NewDriver() Driver {
	return &surveyDriver{}
}

type surveyDriver struct{}

func (d *surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	input := &survey.Input{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	}
	var opts []survey.AskOpt
	if cfg.Validator != nil {
		opts = append(opts, survey.WithValidator(surveyValidator(cfg.Validator)))
	}
	if err := survey.AskOne(input, &out, opts...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

// surveyValidator adapts a plain string validator to survey's answer
// contract. Non-string answers validate as empty input.
func surveyValidator(validate func(string) error) survey.Validator {
	return func(ans interface{}) error {
		value, _ := ans.(string)
		return validate(value)
	}
}

func (d *surveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	confirm := &survey.Confirm{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	}
	if err := survey.AskOne(confirm, &out); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

// ModuleToken asks for the module name token, rejecting anything that is not
// a plain identifier.
func ModuleToken(ctx context.Context, driver Driver) (string, error) {
	return driver.Input(ctx, InputConfig{
		Message:   "Module name:",
		Help:      "A single identifier such as orderEntry. All file and type names derive from it.",
		Validator: validateToken,
	})
}

// ConfirmOverwrite asks before reusing an output directory that already
// holds a folder for the module.
func ConfirmOverwrite(ctx context.Context, driver Driver, dir string) (bool, error) {
	return driver.Confirm(ctx, ConfirmConfig{
		Message: fmt.Sprintf("Directory %q already exists. Overwrite its artifacts?", dir),
	})
}

func validateToken(value string) error {
	if value == "" {
		return errors.New("module name is required")
	}
	if !names.IsIdentifier(value) {
		return fmt.Errorf("%q is not a valid identifier (letter first, letters and digits only)", value)
	}
	return nil
}
