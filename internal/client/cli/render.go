package cli

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Форматы вывода для list и conflicts
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func checkFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q (expected text, json or yaml)", format)
}

// render выводит v в выбранном формате; для text используется tmpl с данными textData
func (c *Cli) render(format string, v any, tmpl *template.Template, textData any) error {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		_, err = c.io.Write(append(data, '\n'))
		return err

	case formatYAML:
		data, err := toYAML(v)
		if err != nil {
			return err
		}
		_, err = c.io.Write(data)
		return err

	default:
		return tmpl.Execute(c.io, textData)
	}
}

// toYAML кодирует v через JSON представление, чтобы json.RawMessage и json теги
// давали ту же структуру, что и -o json
func toYAML(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode yaml: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("failed to encode yaml: %w", err)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(normalizeNumbers(generic)); err != nil {
		return nil, fmt.Errorf("failed to encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// normalizeNumbers заменяет json.Number на int64/float64, чтобы yaml не кавычил числа
func normalizeNumbers(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			val[k] = normalizeNumbers(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = normalizeNumbers(item)
		}
		return val
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return n
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	}
	return v
}
