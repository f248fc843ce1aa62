package position

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Position is a staff position as served by the remote API. Only ID and Name
// are interpreted; the JSON it arrived as is kept and sent back unmodified.
type Position struct {
	ID   string
	Name string
	raw  json.RawMessage
}

func New(id, name string) Position {
	return Position{ID: id, Name: name}
}

func (p Position) Raw() json.RawMessage {
	return p.raw
}

func (p Position) MarshalJSON() ([]byte, error) {
	if len(p.raw) > 0 {
		return p.raw, nil
	}
	return json.Marshal(struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}{ID: p.ID, Name: p.Name})
}

func (p *Position) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("position: %w", err)
	}
	p.ID = firstString(fields, "id", "_id", "value")
	p.Name = firstString(fields, "name", "title", "label")
	p.raw = append(json.RawMessage(nil), bytes.TrimSpace(data)...)
	return nil
}

// firstString returns the first key present in fields as a string. Numeric
// ids are kept in their JSON text form.
func firstString(fields map[string]json.RawMessage, keys ...string) string {
	for _, k := range keys {
		v, ok := fields[k]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			return s
		}
		var n json.Number
		if err := json.Unmarshal(v, &n); err == nil {
			return n.String()
		}
	}
	return ""
}

// Index maps positions by ID, skipping positions without one.
func Index(items []Position) map[string]Position {
	out := make(map[string]Position, len(items))
	for _, p := range items {
		if p.ID != "" {
			out[p.ID] = p
		}
	}
	return out
}

func IDs(items []Position) []string {
	ids := make([]string, 0, len(items))
	for _, p := range items {
		ids = append(ids, p.ID)
	}
	return ids
}
