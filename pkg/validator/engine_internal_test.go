package validator

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/beast/pkg/form"
)

// Every rule variant must be dispatched by Engine.apply.
func TestApplyHandlesEveryKind(t *testing.T) {
	t.Parallel()
	pattern, err := NewPattern(`\w+`)
	require.NoError(t, err)

	variants := []Rule{
		Required{},
		CheckboxMin{Min: 1},
		Match{Target: "other"},
		MinLength{Min: 1},
		Range{Min: 1, HasMin: true},
		Age{Min: 1, HasMin: true},
		pattern,
		MaxLength{Max: 10},
		Email{},
		PasswordStrength{Tier: PasswordWeak},
		Custom{Name: "missing"},
	}

	var kinds []Kind
	for _, v := range variants {
		kinds = append(kinds, v.Kind())
	}
	require.Equal(t, Kinds(), kinds, "variants listed in evaluation order")

	var buf bytes.Buffer
	e := NewEngine(nil, WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	f := form.Field{Name: "f", Type: form.TypeText, Value: "value", Attrs: form.Attrs{}}
	for _, rule := range variants {
		_, err := e.apply(context.Background(), rule, f, form.NewSnapshot(f))
		require.NoError(t, err)
	}
	assert.NotContains(t, buf.String(), "unhandled rule")
}

func TestKindString(t *testing.T) {
	t.Parallel()
	for _, k := range Kinds() {
		assert.NotContains(t, k.String(), "kind(")
	}
	assert.Equal(t, "kind(99)", Kind(99).String())
	assert.Equal(t, "none", KindNone.String())
}

func TestAgeAt(t *testing.T) {
	t.Parallel()
	birth, _ := parseDate("2000-02-29")

	now, _ := parseDate("2018-02-28")
	assert.Equal(t, 17, ageAt(birth, now))
	now, _ = parseDate("2018-03-01")
	assert.Equal(t, 18, ageAt(birth, now))
}

func TestParseDateLayouts(t *testing.T) {
	t.Parallel()
	for _, s := range []string{"2010-01-01", "2010-01-01T10:30", "2010-01-01T10:30:00", "2010-01-01T10:30:00+02:00"} {
		d, ok := parseDate(s)
		assert.True(t, ok, s)
		assert.Equal(t, 2010, d.Year())
	}
	_, ok := parseDate("01/01/2010")
	assert.False(t, ok)
}

func TestSubstitute(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Select at least 3", substitute("Select at least %{n}", []string{"n", "3"}))
	assert.Equal(t, "plain", substitute("plain", nil))
}
