package diagfmt

import (
	"io"

	"gopkg.in/yaml.v3"

	"tileman/internal/diag"
)

// YAML форматирует диагностики в YAML с той же структурой, что и JSON.
func YAML(w io.Writer, bag *diag.Bag, opts JSONOpts) error {
	return WriteYAML(w, BuildDiagnosticsOutput(bag, opts))
}

// WriteYAML encodes v as YAML and closes the encoder.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
