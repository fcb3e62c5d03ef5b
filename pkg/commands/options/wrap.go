package options

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

func Wrap80(text string) string {
	return Wrap(text, 80)
}

func Wrap(text string, width int) string {
	words := strings.Fields(strings.TrimSpace(text))
	if len(words) == 0 {
		return text
	}
	return wordwrap.String(strings.Join(words, " "), width)
}
