// Package alias defines named plus-tags and the catalog that persists them.
package alias

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrEmptyAlias is returned when a label has no word characters left once
// normalized.
var ErrEmptyAlias = errors.New("alias: label has no usable characters")

// Alias is a reusable tag. Value is what gets spliced into the address.
type Alias struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

func (a Alias) String() string {
	if a.Label == a.Value {
		return a.Value
	}
	return fmt.Sprintf("%s (%s)", a.Value, a.Label)
}

var nonWord = regexp.MustCompile(`\W`)

// Normalize trims label and strips every non-word character, leaving only
// ASCII letters, digits and underscores.
func Normalize(label string) string {
	return nonWord.ReplaceAllString(strings.TrimSpace(label), "")
}

// New builds an Alias from a raw label.
func New(label string) (Alias, error) {
	value := Normalize(label)
	if value == "" {
		return Alias{}, ErrEmptyAlias
	}
	return Alias{Label: label, Value: value}, nil
}

// CreateLabel is the prompt offered for a typed tag that is not in the
// catalog yet.
func CreateLabel(query string) string {
	return fmt.Sprintf("Use %q as alias", Normalize(query))
}
