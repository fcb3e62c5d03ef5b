package printers

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
)

// JSON writes v as one line of JSON to w, or color.Output when w is nil.
func JSON(w io.Writer, v any) error {
	if w == nil {
		w = color.Output
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
