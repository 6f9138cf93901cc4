package form_test

import (
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/beast/pkg/form"
)

const signupYAML = `
id: signup
steps:
  - number: 1
  - number: 2
    validate: true
fields:
  - name: email
    type: email
    step: 1
    label: E-mail
    attrs:
      required: ""
  - name: pets
    type: checkbox
    step: 2
    options: [dog, cat, fish]
    attrs:
      data-min: "2"
  - name: size
    type: radio
    step: 2
    value: m
    checked: true
    options: [s, m, l]
`

func TestParseDefinition(t *testing.T) {
	t.Parallel()
	def, err := form.ParseDefinition([]byte(signupYAML))
	require.NoError(t, err)
	assert.Equal(t, "signup", def.ID)

	f := def.Build()
	assert.Equal(t, 7, f.Len())
	assert.Equal(t, []form.Step{{Number: 1}, {Number: 2, Validate: true}}, f.Steps())

	email, ok := f.FieldByName("email")
	require.True(t, ok)
	assert.Equal(t, "E-mail", email.Label())
	assert.True(t, email.Attrs.Has(form.AttrRequired))

	var sizes []string
	for _, field := range f.Snapshot().Group(form.TypeRadio, "size") {
		if field.Checked {
			sizes = append(sizes, field.Value)
		}
	}
	assert.Equal(t, []string{"m"}, sizes, "only the option equal to value starts checked")

	pets := f.Snapshot().Group(form.TypeCheckbox, "pets")
	got := make([]string, 0, len(pets))
	for _, p := range pets {
		got = append(got, p.Value)
		assert.Equal(t, "2", p.Attrs.Get(form.AttrMin))
	}
	if diff := cmp.Diff([]string{"dog", "cat", "fish"}, got); diff != "" {
		t.Errorf("checkbox options mismatch (-want +got):\n%s", diff)
	}
}

func TestDefinitionValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		yaml string
	}{
		{"missing id", "fields: [{name: a}]"},
		{"no fields", "id: x"},
		{"options on text", "id: x\nfields: [{name: a, type: text, options: [a]}]"},
		{"negative step", "id: x\nfields: [{name: a, step: -1}]"},
		{"unnamed radio", "id: x\nfields: [{type: radio}]"},
		{"broken yaml", "id: [x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := form.ParseDefinition([]byte(tt.yaml))
			assert.ErrorIs(t, err, form.ErrInvalidDefinition)
		})
	}
}

func TestCatalog(t *testing.T) {
	t.Parallel()
	fsys := fstest.MapFS{
		"signup.yaml":  {Data: []byte(signupYAML)},
		"contact.json": {Data: []byte(`{"id":"contact","fields":[{"name":"message","type":"textarea","attrs":{"required":""}}]}`)},
		"README.md":    {Data: []byte("not a form")},
	}

	catalog, err := form.LoadCatalog(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"contact", "signup"}, catalog.IDs())

	def, ok := catalog.Get("contact")
	require.True(t, ok)
	assert.Equal(t, form.TypeTextarea, def.Fields[0].Type)

	_, ok = catalog.Get("missing")
	assert.False(t, ok)

	assert.ErrorIs(t, catalog.Add(def), form.ErrDuplicateDefinition)

	_, err = form.LoadCatalog(fstest.MapFS{"bad.yaml": {Data: []byte("id: x")}})
	assert.ErrorIs(t, err, form.ErrInvalidDefinition)

	_, err = form.NewCatalog(def, def)
	assert.ErrorIs(t, err, form.ErrDuplicateDefinition)
}
