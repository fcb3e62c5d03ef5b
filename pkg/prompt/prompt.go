// Package prompt holds the promptui pickers used by interactive commands.
package prompt

import (
	"errors"
	"io"
	"strings"

	"github.com/manifoldco/promptui"

	"tableflip.dev/plustag/pkg/alias"
)

// ErrNoAliases is returned by PickAlias when there is nothing to pick.
var ErrNoAliases = errors.New("prompt: no aliases to choose from")

// IO is where prompts read and draw. Zero values use the terminal.
type IO struct {
	In  io.Reader
	Out io.Writer
}

func (p IO) stdin() io.ReadCloser {
	if p.In == nil {
		return nil
	}
	return io.NopCloser(p.In)
}

func (p IO) stdout() io.WriteCloser {
	if p.Out == nil {
		return nil
	}
	return nopWriteCloser{p.Out}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// PickAlias lets the user choose one alias, filtering on label or value as
// they type.
func (p IO) PickAlias(label string, aliases []alias.Alias) (alias.Alias, error) {
	if len(aliases) == 0 {
		return alias.Alias{}, ErrNoAliases
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Value | bold }} {{ .Label | cyan }}",
		Inactive: "   {{ .Value }} {{ .Label | faint }}",
		Selected: "{{ .Value | bold }}",
	}

	searcher := func(input string, index int) bool {
		a := aliases[index]
		name := squash(a.Label + a.Value)
		return strings.Contains(name, squash(input))
	}

	sel := promptui.Select{
		HideHelp:  true,
		Label:     label,
		Items:     aliases,
		Templates: templates,
		Size:      10,
		Searcher:  searcher,
		Stdin:     p.stdin(),
		Stdout:    p.stdout(),
	}

	i, _, err := sel.Run()
	if err != nil {
		return alias.Alias{}, err
	}
	return aliases[i], nil
}

// Email asks for a primary email, checked by valid before it is accepted.
func (p IO) Email(current string, valid func(string) bool) (string, error) {
	validate := func(input string) error {
		if !valid(strings.TrimSpace(input)) {
			return errors.New("not an email address")
		}
		return nil
	}

	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }}: ",
		Valid:   "{{ . | green }}: ",
		Invalid: "{{ . | red }}: ",
		Success: "{{ . | bold }}: ",
	}

	pr := promptui.Prompt{
		Label:     "Primary email",
		Default:   current,
		Templates: templates,
		Validate:  validate,
		Stdin:     p.stdin(),
		Stdout:    p.stdout(),
	}
	result, err := pr.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result), nil
}

// Confirm asks a yes/no question. Anything but an explicit yes is a no.
func (p IO) Confirm(label string) bool {
	pr := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     p.stdin(),
		Stdout:    p.stdout(),
	}
	answer, err := pr.Run()
	if err != nil {
		return false
	}
	yes, err := ParseBool(answer)
	return err == nil && yes
}

// ParseBool accepts the usual spellings of yes and no.
func ParseBool(str string) (bool, error) {
	switch strings.TrimSpace(str) {
	case "1", "t", "T", "true", "TRUE", "True", "y", "Y", "yes", "YES", "Yes":
		return true, nil
	case "0", "f", "F", "false", "FALSE", "False", "n", "N", "no", "NO", "No":
		return false, nil
	}
	return false, errors.New("prompt: not a yes or no: " + str)
}

func squash(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "")
}
