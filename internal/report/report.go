package report

import (
	"encoding/json"
	"io"

	"gist/internal/domain"
)

// Write encodes the report as pretty-printed JSON with a trailing newline.
// HTML escaping is off so non-ASCII text and characters like < or & stay
// literal in the output.
func Write(w io.Writer, rep domain.Report) error {
	return encode(w, rep)
}

// WriteError encodes the single-field error record emitted on usage and
// read failures.
func WriteError(w io.Writer, err error) error {
	return encode(w, domain.ErrorReport{Error: err.Error()})
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
