package prompt

import (
	"fmt"

	"github.com/pterm/pterm"
)

// Terminal prompts with pterm's interactive widgets.
type Terminal struct{}

// Confirm asks a yes/no question.
func (t *Terminal) Confirm(message string, def bool) (bool, error) {
	return pterm.DefaultInteractiveConfirm.
		WithDefaultValue(def).
		Show(message)
}

// Input asks for free text, asking again until validate accepts the answer.
func (t *Terminal) Input(message, def string, validate Validator) (string, error) {
	for {
		answer, err := pterm.DefaultInteractiveTextInput.
			WithDefaultValue(def).
			Show(message)
		if err != nil {
			return "", err
		}
		if answer == "" {
			answer = def
		}
		if validate == nil {
			return answer, nil
		}
		if err := validate(answer); err != nil {
			pterm.Warning.Println(err.Error())
			continue
		}
		return answer, nil
	}
}

// Select offers options and returns the chosen value.
func (t *Terminal) Select(message string, options []Option) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("%s: nothing to choose from", message)
	}
	labels := make([]string, len(options))
	for i, o := range options {
		labels[i] = o.Label
	}

	chosen, err := pterm.DefaultInteractiveSelect.
		WithOptions(labels).
		WithDefaultText(message).
		Show()
	if err != nil {
		return "", err
	}
	for _, o := range options {
		if o.Label == chosen {
			return o.Value, nil
		}
	}
	return "", fmt.Errorf("unknown selection %q", chosen)
}
