package gotemplate

import (
	"strings"

	"github.com/flosch/pongo2/v6"
	json "github.com/goccy/go-json"
)

func registerDefaultFilters() {
	defaults := map[string]pongo2.FilterFunction{
		"trim":      filterTrim,
		"classlist": filterClassList,
		"tojson":    filterToJSON,
	}
	for name, fn := range defaults {
		if !pongo2.FilterExists(name) {
			_ = pongo2.RegisterFilter(name, fn)
		}
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterClassList joins a list of class names, skipping blanks.
func filterClassList(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	var classes []string
	switch v := in.Interface().(type) {
	case []string:
		classes = v
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				classes = append(classes, s)
			}
		}
	case string:
		classes = strings.Fields(v)
	}
	parts := make([]string, 0, len(classes))
	for _, class := range classes {
		if class = strings.TrimSpace(class); class != "" {
			parts = append(parts, class)
		}
	}
	return pongo2.AsValue(strings.Join(parts, " ")), nil
}

// filterToJSON encodes the value for embedding in a script tag. "<" is
// escaped by the encoder, so the output is safe inside HTML.
func filterToJSON(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	data, err := json.Marshal(in.Interface())
	if err != nil {
		return nil, &pongo2.Error{Sender: "filter:tojson", OrigError: err}
	}
	return pongo2.AsSafeValue(string(data)), nil
}
