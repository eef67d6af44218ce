package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxAttempts bounds re-asking on invalid input, so a script that keeps
// answering wrong fails instead of looping.
const maxAttempts = 3

// Line prompts with plain text on a reader and writer.
type Line struct {
	reader *bufio.Reader
	w      io.Writer
}

// NewLine returns a Line prompter reading answers from r.
func NewLine(r io.Reader, w io.Writer) *Line {
	return &Line{reader: bufio.NewReader(r), w: w}
}

// Scripted returns a Line prompter that answers from the given lines.
func Scripted(w io.Writer, answers ...string) *Line {
	return NewLine(strings.NewReader(strings.Join(answers, "\n")+"\n"), w)
}

// Confirm asks a yes/no question. An empty answer takes def.
func (l *Line) Confirm(message string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for range maxAttempts {
		fmt.Fprintf(l.w, "%s [%s]: ", message, hint)
		answer, err := l.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(l.w, "Please answer y or n.")
	}
	return false, fmt.Errorf("no valid answer to %q", message)
}

// Input asks for free text. An empty answer takes def.
func (l *Line) Input(message, def string, validate Validator) (string, error) {
	for range maxAttempts {
		if def != "" {
			fmt.Fprintf(l.w, "%s (%s): ", message, def)
		} else {
			fmt.Fprintf(l.w, "%s: ", message)
		}
		answer, err := l.readLine()
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
			fmt.Fprintln(l.w, err.Error())
			continue
		}
		return answer, nil
	}
	return "", fmt.Errorf("no valid answer to %q", message)
}

// Select presents a numbered list and returns the chosen option's value.
func (l *Line) Select(message string, options []Option) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("%s: nothing to choose from", message)
	}

	fmt.Fprintf(l.w, "\n%s\n", message)
	for i, o := range options {
		fmt.Fprintf(l.w, "  %d) %s\n", i+1, o.Label)
	}
	for range maxAttempts {
		fmt.Fprintf(l.w, "Enter number [1-%d]: ", len(options))
		line, err := l.readLine()
		if err != nil {
			return "", err
		}
		num, err := strconv.Atoi(line)
		if err == nil && num >= 1 && num <= len(options) {
			return options[num-1].Value, nil
		}
		fmt.Fprintf(l.w, "invalid selection %q: choose 1-%d\n", line, len(options))
	}
	return "", fmt.Errorf("no valid selection for %q", message)
}

func (l *Line) readLine() (string, error) {
	line, err := l.reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}
