package logger

import (
	"log/slog"
	"time"
)

// Error records err under "error"; nil errors yield an empty attribute.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Form records the form definition id.
func Form(id string) slog.Attr {
	return slog.String("form", id)
}

// Field records the name of a form field, "[unnamed]" when it has none.
func Field(name string) slog.Attr {
	if name == "" {
		name = "[unnamed]"
	}
	return slog.String("field", name)
}

// Rule records the kind of a validation rule.
func Rule(kind string) slog.Attr {
	return slog.String("rule", kind)
}

// Pass records the sequence number of a validation pass.
func Pass(id uint64) slog.Attr {
	return slog.Uint64("pass", id)
}

func Language(lang string) slog.Attr {
	return slog.String("lang", lang)
}

func Step(n int) slog.Attr {
	return slog.Int("step", n)
}

func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}
