package commands

import (
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"liendesk/internal/domain"
)

// surveyIO holds the streams interactive prompts read and write.
type surveyIO struct {
	In  terminal.FileReader
	Out terminal.FileWriter
	Err terminal.FileWriter
}

var promptIO = surveyIO{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}

func (s surveyIO) opts(extra ...survey.AskOpt) []survey.AskOpt {
	return append([]survey.AskOpt{survey.WithStdio(s.In, s.Out, s.Err)}, extra...)
}

// askString prompts for a value unless *v is already set (e.g. by a flag).
func askString(v *string, message, def string, required bool) error {
	if *v != "" {
		return nil
	}
	var extra []survey.AskOpt
	if required {
		extra = append(extra, survey.WithValidator(survey.Required))
	}
	return survey.AskOne(&survey.Input{Message: message, Default: def}, v, promptIO.opts(extra...)...)
}

func askPassword(v *string, message string) error {
	if *v != "" {
		return nil
	}
	return survey.AskOne(&survey.Password{Message: message}, v, promptIO.opts(survey.WithValidator(survey.Required))...)
}

func askConfirm(message string, def bool) (bool, error) {
	ok := def
	err := survey.AskOne(&survey.Confirm{Message: message, Default: def}, &ok, promptIO.opts()...)
	return ok, err
}

// askOption offers opts by name and returns the chosen id. current, when
// it matches an option, is preselected.
func askOption(message string, opts []domain.Option, current string) (string, error) {
	names := make([]string, len(opts))
	def := ""
	for i, o := range opts {
		names[i] = o.Name
		if o.ID == current {
			def = o.Name
		}
	}
	prompt := &survey.Select{Message: message, Options: names}
	if def != "" {
		prompt.Default = def
	}
	var idx int
	if err := survey.AskOne(prompt, &idx, promptIO.opts()...); err != nil {
		return "", err
	}
	return opts[idx].ID, nil
}

func askChoice(message string, choices []string) (string, error) {
	var out string
	err := survey.AskOne(&survey.Select{Message: message, Options: choices}, &out, promptIO.opts()...)
	return out, err
}
