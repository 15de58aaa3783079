package content

import (
	"encoding/json"
	"fmt"
)

// IDField is the key under which a document's id appears in its flat JSON form.
// Stores never persist it inside Fields.
const IDField = "id"

// Fields holds the type-specific data of a document
type Fields map[string]interface{}

// Clone returns a shallow copy of the field set
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Merge copies every key of patch into f, overwriting existing values.
// Nested maps are replaced, not merged.
func (f Fields) Merge(patch Fields) {
	for k, v := range patch {
		if k == IDField {
			continue
		}
		f[k] = v
	}
}

// Document is a record of a collection or a singleton, identified by an opaque id
type Document struct {
	ID     string
	Fields Fields
}

// NewDocument builds a document, dropping any "id" key from fields
func NewDocument(id string, fields Fields) Document {
	clean := make(Fields, len(fields))
	for k, v := range fields {
		if k != IDField {
			clean[k] = v
		}
	}
	return Document{ID: id, Fields: clean}
}

// Clone returns a copy that shares no top-level map with d
func (d Document) Clone() Document {
	return Document{ID: d.ID, Fields: d.Fields.Clone()}
}

// MarshalJSON flattens the document as {"id": ..., ...fields}
func (d Document) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(d.Fields)+1)
	for k, v := range d.Fields {
		m[k] = v
	}
	m[IDField] = d.ID
	return json.Marshal(m)
}

// UnmarshalJSON reads the flat form produced by MarshalJSON
func (d *Document) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	id, _ := m[IDField].(string)
	*d = NewDocument(id, m)
	return nil
}

// FieldsFrom converts a typed content value into a field set using its JSON tags.
// The "id" key is stripped.
func FieldsFrom(v interface{}) (Fields, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode fields: %w", err)
	}
	var fields Fields
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("decode fields: %w", err)
	}
	delete(fields, IDField)
	return fields, nil
}

// Decode converts a document into a typed value using JSON tags.
// The document id is exposed to the target as its "id" field.
func Decode[T any](doc Document) (T, error) {
	var out T
	data, err := json.Marshal(doc)
	if err != nil {
		return out, fmt.Errorf("encode document %s: %w", doc.ID, err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decode document %s: %w", doc.ID, err)
	}
	return out, nil
}

// DecodeAll converts documents into typed values, skipping documents whose
// fields do not fit T. The number of skipped documents is returned.
func DecodeAll[T any](docs []Document) ([]T, int) {
	out := make([]T, 0, len(docs))
	skipped := 0
	for _, doc := range docs {
		v, err := Decode[T](doc)
		if err != nil {
			skipped++
			continue
		}
		out = append(out, v)
	}
	return out, skipped
}
