package form

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"slices"
)

const (
	maxMultipartMemory = 10 << 20
	maxJSONBody        = 1 << 20
)

// Bind builds a form from a definition and the values submitted with r.
// It accepts application/x-www-form-urlencoded, multipart/form-data and
// application/json bodies; file inputs record the number of uploaded files.
func Bind(r *http.Request, def Definition) (*Form, error) {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return nil, fmt.Errorf("%w: expected form or JSON body", ErrMissingContentType)
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedMediaType, err)
	}

	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
		}
		return FromValues(def, r.PostForm, nil), nil

	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
		}
		files := make(map[string]int, len(r.MultipartForm.File))
		for name, headers := range r.MultipartForm.File {
			files[name] = len(headers)
		}
		return FromValues(def, url.Values(r.MultipartForm.Value), files), nil

	case "application/json":
		values, err := decodeJSONValues(io.LimitReader(r.Body, maxJSONBody))
		if err != nil {
			return nil, err
		}
		return FromValues(def, values, nil), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mediaType)
	}
}

// FromValues builds a form from a definition with submitted values applied.
// Repeated text inputs sharing a name take values positionally; checkbox and
// radio members are checked when their value was submitted.
func FromValues(def Definition, values url.Values, files map[string]int) *Form {
	fields := def.controls()
	seen := make(map[string]int)

	for i := range fields {
		field := &fields[i]
		if field.Name == "" {
			continue
		}
		submitted, ok := values[field.Name]

		switch field.Type {
		case TypeCheckbox, TypeRadio:
			field.Checked = ok && slices.Contains(submitted, field.Value)
		case TypeFile:
			field.Files = files[field.Name]
		default:
			if !ok {
				continue
			}
			pos := seen[field.Name]
			seen[field.Name]++
			if pos < len(submitted) {
				field.Value = submitted[pos]
			} else {
				field.Value = ""
			}
		}
	}

	return New(def.ID, fields, def.options()...)
}

func decodeJSONValues(r io.Reader) (url.Values, error) {
	var body map[string]any
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}

	values := make(url.Values, len(body))
	for name, raw := range body {
		switch v := raw.(type) {
		case nil:
		case []any:
			for _, item := range v {
				if item != nil {
					values.Add(name, fmt.Sprint(item))
				}
			}
		default:
			values.Set(name, fmt.Sprint(v))
		}
	}
	return values, nil
}
