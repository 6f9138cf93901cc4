package validator_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/beast/pkg/form"
	"github.com/dmitrymomot/beast/pkg/i18n"
	"github.com/dmitrymomot/beast/pkg/registry"
	"github.com/dmitrymomot/beast/pkg/validator"
)

func field(name string, typ form.Type, value string, attrs form.Attrs) form.Field {
	if attrs == nil {
		attrs = form.Attrs{}
	}
	return form.Field{Name: name, ID: name, Type: typ, Value: value, Attrs: attrs}
}

func evaluate(t *testing.T, e *validator.Engine, f form.Field, others ...form.Field) validator.Verdict {
	t.Helper()
	fields := append([]form.Field{f}, others...)
	for i := range fields {
		fields[i].Index = i
	}
	v, err := e.Evaluate(context.Background(), fields[0], form.NewSnapshot(fields...))
	require.NoError(t, err)
	return v
}

func translator(t *testing.T) *i18n.Translator {
	t.Helper()
	tr, err := i18n.NewTranslator(context.Background(),
		i18n.NewFSAdapter(validator.Locales, validator.LocalesDir, i18n.NewYAMLParser()))
	require.NoError(t, err)
	return tr
}

func TestEngineRequired(t *testing.T) {
	t.Parallel()
	e := validator.NewEngine(nil)
	req := form.Attrs{form.AttrRequired: ""}

	tests := []struct {
		name  string
		field form.Field
		valid bool
	}{
		{"empty text", field("name", form.TypeText, "", req), false},
		{"whitespace text", field("name", form.TypeText, "   ", req), false},
		{"filled text", field("name", form.TypeText, "Ada", req), true},
		{"unchecked checkbox", field("tos", form.TypeCheckbox, "yes", req), false},
		{"checked checkbox", form.Field{Name: "tos", Type: form.TypeCheckbox, Value: "yes", Checked: true, Attrs: req}, true},
		{"no files", field("avatar", form.TypeFile, "", req), false},
		{"with files", form.Field{Name: "avatar", Type: form.TypeFile, Files: 1, Attrs: req}, true},
		{"not required", field("name", form.TypeText, "", nil), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v := evaluate(t, e, tt.field)
			assert.Equal(t, tt.valid, v.Valid)
			if !tt.valid {
				assert.Equal(t, "This field is required", v.Message)
				assert.Equal(t, validator.KindRequired, v.Rule)
			}
		})
	}
}

func TestEngineRadioGroup(t *testing.T) {
	t.Parallel()
	e := validator.NewEngine(nil)
	req := form.Attrs{form.AttrRequired: ""}

	small := form.Field{Name: "size", Type: form.TypeRadio, Value: "s", Attrs: req}
	medium := form.Field{Name: "size", Type: form.TypeRadio, Value: "m"}
	large := form.Field{Name: "size", Type: form.TypeRadio, Value: "l"}

	v := evaluate(t, e, small, medium, large)
	assert.False(t, v.Valid)
	assert.Equal(t, "l", v.Target.Value, "error anchored to the last radio")

	medium.Checked = true
	v = evaluate(t, e, small, medium, large)
	assert.True(t, v.Valid)
}

func TestEngineCheckboxMin(t *testing.T) {
	t.Parallel()
	e := validator.NewEngine(nil)
	min := form.Attrs{form.AttrMin: "2"}

	dog := form.Field{Name: "pets", Type: form.TypeCheckbox, Value: "dog", Checked: true, Attrs: min}
	cat := form.Field{Name: "pets", Type: form.TypeCheckbox, Value: "cat", Attrs: min}
	fish := form.Field{Name: "pets", Type: form.TypeCheckbox, Value: "fish", Attrs: min}

	v := evaluate(t, e, dog, cat, fish)
	require.False(t, v.Valid)
	assert.Equal(t, "Select at least 2", v.Message)
	assert.Equal(t, validator.KindCheckboxMin, v.Rule)
	assert.Equal(t, "fish", v.Target.Value)
	assert.Equal(t, 2, v.Target.Index)

	cat.Checked = true
	assert.True(t, evaluate(t, e, dog, cat, fish).Valid)
}

func TestEngineMatch(t *testing.T) {
	t.Parallel()
	e := validator.NewEngine(nil)
	confirm := func(v string) form.Field {
		return field("confirm", form.TypePassword, v, form.Attrs{form.AttrMatch: "password"})
	}
	password := field("password", form.TypePassword, "s3cret!", nil)

	assert.True(t, evaluate(t, e, confirm("s3cret!"), password).Valid)

	v := evaluate(t, e, confirm("other"), password)
	assert.False(t, v.Valid)
	assert.Equal(t, "Values do not match", v.Message)

	assert.True(t, evaluate(t, e, confirm(""), password).Valid, "empty values are not compared")
	assert.False(t, evaluate(t, e, confirm("x")).Valid, "missing target fails")
}

func TestEngineLengths(t *testing.T) {
	t.Parallel()
	e := validator.NewEngine(nil)
	attrs := form.Attrs{form.AttrMinLength: "3", form.AttrMaxLength: "5"}

	v := evaluate(t, e, field("nick", form.TypeText, "ab", attrs))
	assert.Equal(t, "Minimum length is 3 characters", v.Message)

	v = evaluate(t, e, field("nick", form.TypeText, "abcdef", attrs))
	assert.Equal(t, "Maximum length is 5 characters", v.Message)

	assert.True(t, evaluate(t, e, field("nick", form.TypeText, "äöü", attrs)).Valid, "length counts runes")
	assert.True(t, evaluate(t, e, field("nick", form.TypeText, "", attrs)).Valid)
}

func TestEngineRange(t *testing.T) {
	t.Parallel()
	e := validator.NewEngine(nil)
	attrs := form.Attrs{form.AttrMin: "1.5", form.AttrMax: "10"}

	tests := []struct {
		value   string
		message string
	}{
		{"1", "Must be at least 1.5"},
		{"11", "Must be at most 10"},
		{"10", ""},
		{"1.5", ""},
		{"abc", ""},
		{"", ""},
		{"1e1", ""},
		{"2e1", "Must be at most 10"},
		{"-.5", "Must be at least 1.5"},
		{"0x1p4", ""},
		{"1_1", ""},
		{"Inf", ""},
	}
	for _, tt := range tests {
		v := evaluate(t, e, field("qty", form.TypeNumber, tt.value, attrs))
		if tt.message == "" {
			assert.True(t, v.Valid, tt.value)
			continue
		}
		assert.False(t, v.Valid, tt.value)
		assert.Equal(t, tt.message, v.Message)
		assert.Equal(t, validator.KindRange, v.Rule)
	}
}

func TestEngineAge(t *testing.T) {
	t.Parallel()
	attrs := form.Attrs{form.AttrMinAge: "18"}
	birth := field("age", form.TypeDate, "2010-01-01", attrs)

	at := func(date string) *validator.Engine {
		now, err := time.Parse(time.DateOnly, date)
		require.NoError(t, err)
		return validator.NewEngine(nil, validator.WithClock(func() time.Time { return now }))
	}

	v := evaluate(t, at("2027-12-31"), birth)
	assert.False(t, v.Valid)
	assert.Equal(t, "You must be at least 18 years old", v.Message)
	assert.Equal(t, validator.KindAge, v.Rule)

	assert.True(t, evaluate(t, at("2028-01-01"), birth).Valid)
	assert.True(t, evaluate(t, at("2030-06-01"), birth).Valid)

	old := field("age", form.TypeDate, "1900-05-05", form.Attrs{form.AttrMaxAge: "120"})
	v = evaluate(t, at("2026-01-01"), old)
	assert.Equal(t, "You must be no older than 120 years old", v.Message)

	assert.True(t, evaluate(t, at("2026-01-01"), field("age", form.TypeText, "yesterday", attrs)).Valid)
}

func TestEnginePattern(t *testing.T) {
	t.Parallel()
	e := validator.NewEngine(nil)

	zip := form.Attrs{form.AttrPattern: `\d{4}`}
	assert.True(t, evaluate(t, e, field("zip", form.TypeText, "2100", zip)).Valid)

	v := evaluate(t, e, field("zip", form.TypeText, "21000", zip))
	assert.Equal(t, "Invalid format", v.Message, "pattern is anchored")

	alt := form.Attrs{form.AttrPattern: `a|b`}
	assert.False(t, evaluate(t, e, field("x", form.TypeText, "ab", alt)).Valid, "alternation is grouped")

	broken := form.Attrs{form.AttrPattern: `(`}
	assert.True(t, evaluate(t, e, field("x", form.TypeText, "anything", broken)).Valid, "invalid patterns are ignored")
}

func TestEngineEmail(t *testing.T) {
	t.Parallel()
	e := validator.NewEngine(nil)

	assert.True(t, evaluate(t, e, field("email", form.TypeEmail, "ada@example.com", nil)).Valid)
	v := evaluate(t, e, field("email", form.TypeEmail, "ada@example", nil))
	assert.Equal(t, "Please enter a valid email address", v.Message)
	assert.True(t, evaluate(t, e, field("email", form.TypeText, "not an email", nil)).Valid)
}

func TestEnginePasswordStrength(t *testing.T) {
	t.Parallel()
	e := validator.NewEngine(nil)
	pw := func(tier, value string) validator.Verdict {
		return evaluate(t, e, field("pw", form.TypePassword, value, form.Attrs{form.AttrPasswordStrength: tier}))
	}

	assert.True(t, pw("strong", "Abc123!@#$").Valid)
	v := pw("strong", "abcdefgh")
	assert.False(t, v.Valid)
	assert.Equal(t, "Password must be at least 10 characters and include uppercase, lowercase, number, and symbol", v.Message)
	assert.True(t, pw("strong", "Abcdefg12_").Valid, "underscore counts as a symbol")

	assert.True(t, pw("medium", "abcdefg1").Valid)
	assert.Equal(t, "Password must be at least 8 characters and include a number", pw("medium", "abcdefgh").Message)
	assert.False(t, pw("medium", "12345678").Valid, "medium needs a letter")

	assert.True(t, pw("weak", "abcdef").Valid)
	assert.Equal(t, "Password must be at least 6 characters", pw("weak", "abc").Message)

	v = pw("epic", "abcdefgh")
	assert.Equal(t, "Password is not epic enough", v.Message)
	assert.True(t, pw("epic", "abcdefg1").Valid, "unknown tiers use the medium policy")
}

func TestEngineCustomValidator(t *testing.T) {
	t.Parallel()
	reg := registry.New()
	reg.MustRegister("checkUsername", func(_ context.Context, f form.Field) (registry.Outcome, error) {
		if f.Value == "admin" {
			return registry.Fail("Username is already taken"), nil
		}
		return registry.Pass(), nil
	})
	reg.MustRegister("silent", func(context.Context, form.Field) (registry.Outcome, error) {
		return registry.Fail(""), nil
	})
	reg.MustRegister("broken", func(context.Context, form.Field) (registry.Outcome, error) {
		return registry.Outcome{}, errors.New("lookup failed")
	})
	reg.MustRegister("panics", func(context.Context, form.Field) (registry.Outcome, error) {
		panic("boom")
	})
	e := validator.NewEngine(reg)
	custom := func(name, value string, extra ...string) validator.Verdict {
		attrs := form.Attrs{form.AttrValidator: name}
		if len(extra) > 0 {
			attrs[form.AttrErrorMessage] = extra[0]
		}
		return evaluate(t, e, field("username", form.TypeText, value, attrs))
	}

	v := custom("checkUsername", "admin")
	assert.False(t, v.Valid)
	assert.Equal(t, "Username is already taken", v.Message)
	assert.Equal(t, validator.KindCustom, v.Rule)
	assert.True(t, custom("checkUsername", "ada").Valid)

	assert.Equal(t, "Invalid value", custom("silent", "x").Message)
	assert.Equal(t, "Invalid value", custom("broken", "x").Message, "errors fail closed")
	assert.Equal(t, "Invalid value", custom("panics", "x").Message, "panics fail closed")
	assert.True(t, custom("missing", "x").Valid, "missing validators pass")

	assert.Equal(t, "Username is already taken", custom("checkUsername", "admin", "Pick another").Message,
		"explicit custom messages are kept")
	assert.Equal(t, "Pick another", custom("silent", "x", "Pick another").Message)
}

func TestEngineMessages(t *testing.T) {
	t.Parallel()
	tr := translator(t)
	e := validator.NewEngine(nil, validator.WithMessages(tr), validator.WithLanguage("de"))

	v := evaluate(t, e, field("name", form.TypeText, "", form.Attrs{form.AttrRequired: ""}))
	assert.Equal(t, "Dieses Feld ist erforderlich", v.Message)

	v = evaluate(t, e, field("nick", form.TypeText, "a", form.Attrs{form.AttrMinLength: "3"}))
	assert.Equal(t, "Mindestens 3 Zeichen erforderlich", v.Message)

	e.SetLanguage("pirate")
	v = evaluate(t, e, field("name", form.TypeText, "", form.Attrs{form.AttrRequired: ""}))
	assert.Equal(t, "Ye gotta fill this in, matey!", v.Message)

	t.Run("override wins", func(t *testing.T) {
		v := evaluate(t, e, field("name", form.TypeText, "", form.Attrs{
			form.AttrRequired:     "",
			form.AttrErrorMessage: "Tell us your name",
		}))
		assert.Equal(t, "Tell us your name", v.Message)
	})

	t.Run("missing key falls back to english", func(t *testing.T) {
		require.NoError(t, tr.AddMessage("xx", "validation.match", "XX match"))
		e := validator.NewEngine(nil, validator.WithMessages(tr), validator.WithLanguage("xx"))
		v := evaluate(t, e, field("name", form.TypeText, "", form.Attrs{form.AttrRequired: ""}))
		assert.Equal(t, "This field is required", v.Message)
	})
}

func TestEngineRuleOrder(t *testing.T) {
	t.Parallel()
	e := validator.NewEngine(nil)
	attrs := form.Attrs{
		form.AttrMinLength: "10",
		form.AttrPattern:   `\d+`,
		form.AttrMaxLength: "2",
	}

	v := evaluate(t, e, field("code", form.TypeText, "abc", attrs))
	assert.Equal(t, validator.KindMinLength, v.Rule, "first failing rule wins")
}

func TestEngineSleep(t *testing.T) {
	t.Parallel()
	e := validator.NewEngine(nil)
	slow := field("slow", form.TypeText, "x", form.Attrs{form.AttrSleep: "0.05"})

	start := time.Now()
	v := evaluate(t, e, slow)
	assert.True(t, v.Valid)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)

	start = time.Now()
	evaluate(t, e, field("slow", form.TypeText, "", form.Attrs{form.AttrSleep: "5"}))
	assert.Less(t, time.Since(start), time.Second, "empty values skip the delay")

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		long := field("slow", form.TypeText, "x", form.Attrs{form.AttrSleep: "5"})
		_, err := e.Evaluate(ctx, long, form.NewSnapshot(long))
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestEngineCancelledCustomValidator(t *testing.T) {
	t.Parallel()
	reg := registry.New()
	reg.MustRegister("remote", func(ctx context.Context, _ form.Field) (registry.Outcome, error) {
		<-ctx.Done()
		return registry.Outcome{}, ctx.Err()
	})
	e := validator.NewEngine(reg)

	ctx, cancel := context.WithCancel(context.Background())
	f := field("username", form.TypeText, "ada", form.Attrs{form.AttrValidator: "remote"})
	time.AfterFunc(10*time.Millisecond, cancel)

	_, err := e.Evaluate(ctx, f, form.NewSnapshot(f))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngineConcurrentEvaluations(t *testing.T) {
	t.Parallel()
	e := validator.NewEngine(nil, validator.WithMessages(translator(t)))
	f := field("name", form.TypeText, "", form.Attrs{form.AttrRequired: ""})
	snap := form.NewSnapshot(f)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				e.SetLanguage("da")
			}
			v, err := e.Evaluate(context.Background(), f, snap)
			assert.NoError(t, err)
			assert.False(t, v.Valid)
		}()
	}
	wg.Wait()
}
