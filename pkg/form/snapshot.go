package form

// Snapshot is an immutable view of a form taken at the start of a
// validation pass. Rules read sibling values from the snapshot, never from
// the live form, so concurrent evaluations observe one consistent state.
type Snapshot struct {
	fields []Field
	byName map[string][]int
}

func newSnapshot(fields []Field) Snapshot {
	byName := make(map[string][]int, len(fields))
	for i, field := range fields {
		if field.Name != "" {
			byName[field.Name] = append(byName[field.Name], i)
		}
	}
	return Snapshot{fields: fields, byName: byName}
}

// NewSnapshot builds a snapshot from fields in document order.
func NewSnapshot(fields ...Field) Snapshot {
	out := make([]Field, len(fields))
	for i, field := range fields {
		out[i] = field.clone()
	}
	return newSnapshot(out)
}

// Fields returns a copy of the captured fields.
func (s Snapshot) Fields() []Field {
	out := make([]Field, len(s.fields))
	for i, field := range s.fields {
		out[i] = field.clone()
	}
	return out
}

func (s Snapshot) Len() int {
	return len(s.fields)
}

// Field returns the captured field at the given document index.
func (s Snapshot) Field(index int) (Field, bool) {
	for _, field := range s.fields {
		if field.Index == index {
			return field.clone(), true
		}
	}
	return Field{}, false
}

// Lookup returns the first field with the given name.
func (s Snapshot) Lookup(name string) (Field, bool) {
	idx, ok := s.byName[name]
	if !ok || len(idx) == 0 {
		return Field{}, false
	}
	return s.fields[idx[0]].clone(), true
}

// Group returns every field of the given type sharing name, in document order.
func (s Snapshot) Group(t Type, name string) []Field {
	var out []Field
	for _, i := range s.byName[name] {
		if s.fields[i].Type == t {
			out = append(out, s.fields[i].clone())
		}
	}
	return out
}

// InStep returns the fields that belong to the given wizard step.
func (s Snapshot) InStep(step int) []Field {
	var out []Field
	for _, field := range s.fields {
		if field.Step == step {
			out = append(out, field.clone())
		}
	}
	return out
}

// Data returns the submitted values of the snapshot.
func (s Snapshot) Data() map[string]any {
	data := make(map[string]any)
	for _, field := range s.fields {
		if field.Name == "" || field.Disabled {
			continue
		}
		switch field.Type {
		case TypeRadio:
			if field.Checked {
				data[field.Name] = field.Value
			}
		case TypeCheckbox:
			values, _ := data[field.Name].([]string)
			if values == nil {
				values = []string{}
			}
			if field.Checked {
				values = append(values, field.Value)
			}
			data[field.Name] = values
		default:
			data[field.Name] = field.Value
		}
	}
	return data
}
