package form

import (
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// Step describes a wizard section of the form.
type Step struct {
	Number int `yaml:"number" json:"number"`
	// Validate forces full form validation before leaving the step.
	Validate bool `yaml:"validate" json:"validate"`
}

// Form is a goroutine-safe model of a form and its controls. Event handlers
// mutate it while validation passes read immutable snapshots of it.
type Form struct {
	id         string
	mu         sync.RWMutex
	fields     []Field
	steps      []Step
	dirty      map[int]bool
	noValidate bool
}

// Option configures a Form.
type Option func(*Form)

// WithSteps declares the wizard steps of the form.
func WithSteps(steps ...Step) Option {
	return func(f *Form) {
		f.steps = append(f.steps, steps...)
	}
}

// New creates a form from fields in document order. Fields are re-indexed
// and unnamed fields receive a generated reference id.
func New(id string, fields []Field, opts ...Option) *Form {
	f := &Form{
		id:     id,
		fields: make([]Field, len(fields)),
		dirty:  make(map[int]bool),
	}
	for i, field := range fields {
		field = field.clone()
		field.Index = i
		if field.Type == "" {
			field.Type = TypeText
		}
		if field.ID == "" {
			field.ID = referenceID(field.Name)
		}
		if field.Attrs == nil {
			field.Attrs = Attrs{}
		}
		f.fields[i] = field
	}
	for _, opt := range opts {
		opt(f)
	}
	if len(f.steps) == 0 {
		f.steps = inferSteps(f.fields)
	}
	slices.SortFunc(f.steps, func(a, b Step) int { return a.Number - b.Number })
	return f
}

func referenceID(name string) string {
	if name != "" {
		return name
	}
	return uuid.NewString()[:8]
}

func inferSteps(fields []Field) []Step {
	var steps []Step
	seen := make(map[int]bool)
	for _, field := range fields {
		if field.Step > 0 && !seen[field.Step] {
			seen[field.Step] = true
			steps = append(steps, Step{Number: field.Step})
		}
	}
	return steps
}

func (f *Form) ID() string {
	return f.id
}

func (f *Form) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.fields)
}

// Field returns the field at the given document index.
func (f *Form) Field(index int) (Field, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if index < 0 || index >= len(f.fields) {
		return Field{}, false
	}
	return f.fields[index].clone(), true
}

// FieldByName returns the first field with the given name.
func (f *Form) FieldByName(name string) (Field, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, field := range f.fields {
		if field.Name == name {
			return field.clone(), true
		}
	}
	return Field{}, false
}

// Fields returns a copy of all fields in document order.
func (f *Form) Fields() []Field {
	return f.Snapshot().Fields()
}

// Snapshot captures the current state of every field.
func (f *Form) Snapshot() Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	fields := make([]Field, len(f.fields))
	for i, field := range f.fields {
		fields[i] = field.clone()
	}
	return newSnapshot(fields)
}

// Steps returns the wizard steps ordered by number.
func (f *Form) Steps() []Step {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.steps)
}

// Step returns the step with the given number.
func (f *Form) Step(number int) (Step, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, s := range f.steps {
		if s.Number == number {
			return s, true
		}
	}
	return Step{}, false
}

// SetValue sets the value of the first field with the given name.
func (f *Form) SetValue(name, value string) error {
	return f.update(name, func(field *Field) error {
		field.Value = value
		return nil
	})
}

// SetFiles records how many files are selected on a file input.
func (f *Form) SetFiles(name string, count int) error {
	return f.update(name, func(field *Field) error {
		if field.Type != TypeFile {
			return fmt.Errorf("%w: %s is %s", ErrNotFileInput, name, field.Type)
		}
		field.Files = count
		return nil
	})
}

// SetDisabled toggles the disabled state of every field with the given name.
func (f *Form) SetDisabled(name string, disabled bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	found := false
	for i := range f.fields {
		if f.fields[i].Name == name {
			f.fields[i].Disabled = disabled
			found = true
		}
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrFieldNotFound, name)
	}
	return nil
}

// Check sets the checked state of the group member carrying value. Checking
// a radio unchecks the rest of its group.
func (f *Form) Check(name, value string, checked bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	named, target := -1, -1
	for i, field := range f.fields {
		if field.Name != name {
			continue
		}
		if named < 0 {
			named = i
		}
		if field.IsGroup() && field.Value == value {
			target = i
			break
		}
	}
	if named < 0 {
		return fmt.Errorf("%w: %s", ErrFieldNotFound, name)
	}
	if !f.fields[named].IsGroup() {
		return fmt.Errorf("%w: %s is %s", ErrNotCheckable, name, f.fields[named].Type)
	}
	if target < 0 {
		return fmt.Errorf("%w: %s=%s", ErrFieldNotFound, name, value)
	}

	field := &f.fields[target]
	if field.Type == TypeRadio && checked {
		for i := range f.fields {
			if f.fields[i].Type == TypeRadio && f.fields[i].Name == name {
				f.fields[i].Checked = false
			}
		}
	}
	field.Checked = checked
	return nil
}

func (f *Form) update(name string, fn func(*Field) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.fields {
		if f.fields[i].Name == name {
			return fn(&f.fields[i])
		}
	}
	return fmt.Errorf("%w: %s", ErrFieldNotFound, name)
}

// MarkDirty flags a field for live re-validation on input events.
func (f *Form) MarkDirty(index int) {
	f.mu.Lock()
	f.dirty[index] = true
	f.mu.Unlock()
}

func (f *Form) ClearDirty(index int) {
	f.mu.Lock()
	delete(f.dirty, index)
	f.mu.Unlock()
}

func (f *Form) IsDirty(index int) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.dirty[index]
}

// DirtyFields returns the indexes of all dirty fields in document order.
func (f *Form) DirtyFields() []int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]int, 0, len(f.dirty))
	for index := range f.dirty {
		out = append(out, index)
	}
	slices.Sort(out)
	return out
}

// ResetDirty clears the dirty flag of every field.
func (f *Form) ResetDirty() {
	f.mu.Lock()
	clear(f.dirty)
	f.mu.Unlock()
}

// SetNoValidate mirrors the "novalidate" form attribute which disables
// native browser validation in favour of this package.
func (f *Form) SetNoValidate(v bool) {
	f.mu.Lock()
	f.noValidate = v
	f.mu.Unlock()
}

func (f *Form) NoValidate() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.noValidate
}

// Data returns the form values as submitted: checkboxes collect into
// string slices, radios take the checked value, disabled and unnamed fields
// are skipped.
func (f *Form) Data() map[string]any {
	return f.Snapshot().Data()
}
