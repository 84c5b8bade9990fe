package config

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/invopop/jsonschema"
)

const schemaID = "https://github.com/macropower/tripchart/config.schema.json"

// Schema returns the JSON schema of the config file. Defaults are taken
// from [Default].
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
		FieldNameTag:   "yaml",
	}

	js := r.Reflect(&Config{})
	js.ID = schemaID
	js.Title = "tripchart config"

	d := Default()
	setDefault(js, d.Timestamp.Location, "timestamp", "location")
	setDefault(js, d.Chart.Title, "chart", "title")
	setDefault(js, d.Chart.XLabel, "chart", "x_label")
	setDefault(js, d.Chart.YLabel, "chart", "y_label")
	setDefault(js, d.Chart.TickRotation, "chart", "tick_rotation")
	setDefault(js, d.Chart.BarColor, "chart", "bar_color")
	setDefault(js, d.Output.Width, "output", "width")
	setDefault(js, d.Output.Height, "output", "height")

	return js
}

// WriteSchema writes the indented JSON schema of the config file to w.
func WriteSchema(w io.Writer) error {
	b, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal json schema: %w", err)
	}

	if _, err := fmt.Fprintln(w, string(b)); err != nil {
		return fmt.Errorf("write schema: %w", err)
	}

	return nil
}

func setDefault(js *jsonschema.Schema, v any, path ...string) {
	for _, p := range path {
		if js.Properties == nil {
			return
		}

		next, ok := js.Properties.Get(p)
		if !ok {
			return
		}

		js = next
	}

	js.Default = v
}
