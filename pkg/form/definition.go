package form

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Definition is the declarative description of a form, typically loaded
// from YAML:
//
//	id: signup
//	steps:
//	  - number: 1
//	  - number: 2
//	    validate: true
//	fields:
//	  - name: email
//	    type: email
//	    step: 1
//	    attrs:
//	      required: ""
//	  - name: pets
//	    type: checkbox
//	    options: [dog, cat, fish]
//	    attrs:
//	      data-min: "2"
type Definition struct {
	ID     string            `yaml:"id" json:"id"`
	Steps  []Step            `yaml:"steps,omitempty" json:"steps,omitempty"`
	Fields []FieldDefinition `yaml:"fields" json:"fields"`
}

// FieldDefinition describes one control. Checkbox and radio definitions may
// list Options to expand into one control per option value.
type FieldDefinition struct {
	Name     string            `yaml:"name" json:"name"`
	Type     Type              `yaml:"type,omitempty" json:"type,omitempty"`
	Value    string            `yaml:"value,omitempty" json:"value,omitempty"`
	Options  []string          `yaml:"options,omitempty" json:"options,omitempty"`
	Checked  bool              `yaml:"checked,omitempty" json:"checked,omitempty"`
	Disabled bool              `yaml:"disabled,omitempty" json:"disabled,omitempty"`
	Step     int               `yaml:"step,omitempty" json:"step,omitempty"`
	Label    string            `yaml:"label,omitempty" json:"label,omitempty"`
	Attrs    map[string]string `yaml:"attrs,omitempty" json:"attrs,omitempty"`
}

// ParseDefinition decodes a YAML (or JSON) form definition.
func ParseDefinition(data []byte) (Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Definition{}, errors.Join(ErrInvalidDefinition, err)
	}
	if err := def.Validate(); err != nil {
		return Definition{}, err
	}
	return def, nil
}

// Validate checks the structural consistency of the definition.
func (d Definition) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidDefinition)
	}
	if len(d.Fields) == 0 {
		return fmt.Errorf("%w: form %q has no fields", ErrInvalidDefinition, d.ID)
	}
	for i, field := range d.Fields {
		if len(field.Options) > 0 && field.Type != TypeCheckbox && field.Type != TypeRadio {
			return fmt.Errorf("%w: field[%d] %q: options require checkbox or radio type", ErrInvalidDefinition, i, field.Name)
		}
		if field.Step < 0 {
			return fmt.Errorf("%w: field[%d] %q: negative step", ErrInvalidDefinition, i, field.Name)
		}
		if field.Type == TypeRadio && field.Name == "" {
			return fmt.Errorf("%w: field[%d]: radio inputs need a name", ErrInvalidDefinition, i)
		}
	}
	return nil
}

// Build creates a live form from the definition.
func (d Definition) Build() *Form {
	return New(d.ID, d.controls(), d.options()...)
}

func (d Definition) options() []Option {
	if len(d.Steps) == 0 {
		return nil
	}
	return []Option{WithSteps(d.Steps...)}
}

// controls expands the definition into fields in document order.
func (d Definition) controls() []Field {
	fields := make([]Field, 0, len(d.Fields))
	for _, def := range d.Fields {
		base := Field{
			Name:     def.Name,
			Type:     def.Type,
			Value:    def.Value,
			Checked:  def.Checked,
			Disabled: def.Disabled,
			Step:     def.Step,
			Attrs:    Attrs(def.Attrs).Clone(),
		}
		if base.Attrs == nil {
			base.Attrs = Attrs{}
		}
		if def.Label != "" {
			base.Attrs[AttrLabel] = def.Label
		}
		if len(def.Options) == 0 {
			fields = append(fields, base)
			continue
		}
		for _, option := range def.Options {
			field := base.clone()
			field.Value = option
			field.Checked = def.Checked && def.Value == option
			fields = append(fields, field)
		}
	}
	return fields
}

// Catalog is a goroutine-safe set of form definitions keyed by id.
type Catalog struct {
	mu   sync.RWMutex
	defs map[string]Definition
}

// NewCatalog creates a catalog holding the given definitions.
func NewCatalog(defs ...Definition) (*Catalog, error) {
	c := &Catalog{defs: make(map[string]Definition, len(defs))}
	for _, def := range defs {
		if err := c.Add(def); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// LoadCatalog reads every .yaml, .yml and .json file in the root of fsys.
func LoadCatalog(fsys fs.FS) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, errors.Join(ErrInvalidDefinition, err)
	}

	c := &Catalog{defs: make(map[string]Definition)}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(path.Ext(entry.Name())) {
		case ".yaml", ".yml", ".json":
		default:
			continue
		}
		data, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			return nil, errors.Join(ErrInvalidDefinition, err)
		}
		def, err := ParseDefinition(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
		if err := c.Add(def); err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
	}
	return c, nil
}

// Add registers a definition; ids must be unique.
func (c *Catalog) Add(def Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.defs[def.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateDefinition, def.ID)
	}
	c.defs[def.ID] = def
	return nil
}

func (c *Catalog) Get(id string) (Definition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	def, ok := c.defs[id]
	return def, ok
}

// IDs returns the sorted definition ids.
func (c *Catalog) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]string, 0, len(c.defs))
	for id := range c.defs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
