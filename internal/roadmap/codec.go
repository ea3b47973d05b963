package roadmap

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// JSON field names of the roadmap file format.
const (
	keyID           = "id"
	keyName         = "name"
	keyDescription  = "description"
	keyExternalLink = "externalLink"
	keyStatus       = "status"
	keyNotes        = "notes"
	keyDueDate      = "dueDate"
	keyItems        = "items"
)

// MarshalJSON writes the item with known fields first, in declaration
// order, followed by unknown fields sorted by name.
func (it Item) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	w.field(keyID, it.ID)
	w.field(keyName, it.Name)
	w.field(keyDescription, it.Description)
	if it.ExternalLink != "" || it.hasExternalLink {
		w.field(keyExternalLink, it.ExternalLink)
	}
	w.field(keyStatus, string(it.Status))
	w.field(keyNotes, it.Notes)
	if it.DueDate != "" || it.hasDueDate {
		w.field(keyDueDate, it.DueDate)
	}
	w.extras(it.Extra)
	return w.finish()
}

// UnmarshalJSON reads an item. Null values of known fields are treated as
// absent; unknown fields are kept in Extra.
func (it *Item) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var out Item
	var status string
	targets := map[string]*string{
		keyID:           &out.ID,
		keyName:         &out.Name,
		keyDescription:  &out.Description,
		keyExternalLink: &out.ExternalLink,
		keyStatus:       &status,
		keyNotes:        &out.Notes,
		keyDueDate:      &out.DueDate,
	}
	for k, v := range raw {
		dst, known := targets[k]
		if !known {
			if out.Extra == nil {
				out.Extra = make(Fields)
			}
			out.Extra[k] = bytes.Clone(v)
			continue
		}
		if err := decodeString(k, v, dst); err != nil {
			return err
		}
		present := !isNull(v)
		switch k {
		case keyExternalLink:
			out.hasExternalLink = present
		case keyDueDate:
			out.hasDueDate = present
		}
	}
	out.Status = Status(status)
	*it = out
	return nil
}

// MarshalJSON writes the roadmap. Items is always an array.
func (r Roadmap) MarshalJSON() ([]byte, error) {
	items := r.Items
	if items == nil {
		items = []Item{}
	}
	w := newObjectWriter()
	w.field(keyName, r.Name)
	w.field(keyDescription, r.Description)
	w.field(keyItems, items)
	w.extras(r.Extra)
	return w.finish()
}

// UnmarshalJSON reads a roadmap, keeping unknown top-level fields in Extra.
func (r *Roadmap) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var out Roadmap
	for k, v := range raw {
		switch k {
		case keyName:
			if err := decodeString(k, v, &out.Name); err != nil {
				return err
			}
		case keyDescription:
			if err := decodeString(k, v, &out.Description); err != nil {
				return err
			}
		case keyItems:
			if err := json.Unmarshal(v, &out.Items); err != nil {
				return fmt.Errorf("field %q: %w", k, err)
			}
		default:
			if out.Extra == nil {
				out.Extra = make(Fields)
			}
			out.Extra[k] = bytes.Clone(v)
		}
	}
	*r = out
	return nil
}

func decodeString(key string, v json.RawMessage, dst *string) error {
	if isNull(v) {
		return nil
	}
	if err := json.Unmarshal(v, dst); err != nil {
		return fmt.Errorf("field %q: %w", key, err)
	}
	return nil
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

// objectWriter builds a JSON object with a fixed key order.
type objectWriter struct {
	buf bytes.Buffer
	n   int
	err error
}

func newObjectWriter() *objectWriter {
	w := &objectWriter{}
	w.buf.WriteByte('{')
	return w
}

func (w *objectWriter) field(key string, value any) {
	if w.err != nil {
		return
	}
	b, err := marshalValue(value)
	if err != nil {
		w.err = fmt.Errorf("field %q: %w", key, err)
		return
	}
	w.raw(key, b)
}

// marshalValue is json.Marshal without HTML escaping, so links keep their
// literal '&' characters in exported files.
func marshalValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (w *objectWriter) raw(key string, value []byte) {
	if w.n > 0 {
		w.buf.WriteByte(',')
	}
	k, _ := marshalValue(key)
	w.buf.Write(k)
	w.buf.WriteByte(':')
	w.buf.Write(value)
	w.n++
}

func (w *objectWriter) extras(f Fields) {
	for _, k := range f.sortedKeys() {
		w.raw(k, f[k])
	}
}

func (w *objectWriter) finish() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	w.buf.WriteByte('}')
	return w.buf.Bytes(), nil
}
