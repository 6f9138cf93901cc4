package forms_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/beast/modules/forms"
	"github.com/dmitrymomot/beast/pkg/form"
	"github.com/dmitrymomot/beast/pkg/i18n"
	"github.com/dmitrymomot/beast/pkg/registry"
	"github.com/dmitrymomot/beast/pkg/validator"
)

const signupYAML = `
id: signup
fields:
  - name: username
    label: Username
    attrs:
      required: ""
      data-validator: checkUsername
  - name: email
    type: email
    label: Email
    attrs:
      required: ""
  - name: password
    type: password
    attrs:
      minlength: "8"
`

func newServer(t *testing.T, opts ...forms.Option) *httptest.Server {
	t.Helper()
	def, err := form.ParseDefinition([]byte(signupYAML))
	require.NoError(t, err)
	catalog, err := form.NewCatalog(def)
	require.NoError(t, err)

	reg := registry.New()
	reg.MustRegister("checkUsername", registry.Predicate("Username is taken",
		func(_ context.Context, f form.Field) bool { return f.Value != "admin" }))

	translator, err := i18n.NewTranslator(context.Background(),
		i18n.NewFSAdapter(validator.Locales, validator.LocalesDir, i18n.NewYAMLParser()))
	require.NoError(t, err)

	router := forms.Router(forms.RouterOptions{
		Forms:      forms.NewService(catalog, reg, translator, opts...),
		Locales:    forms.NewLocales(translator, nil),
		Middleware: []func(http.Handler) http.Handler{translator.Middleware(nil)},
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, path string, values url.Values, header map[string]string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, srv.URL+path, strings.NewReader(values.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	res, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = res.Body.Close() })
	return res
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code   string                     `json:"code"`
		Fields validator.ValidationErrors `json:"fields"`
	} `json:"error"`
}

func decode(t *testing.T, res *http.Response) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	return body
}

func TestListForms(t *testing.T) {
	t.Parallel()
	srv := newServer(t)
	res, err := srv.Client().Get(srv.URL + "/forms")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `["signup"]`, string(decode(t, res).Data))
}

func TestValidateFailure(t *testing.T) {
	t.Parallel()
	srv := newServer(t)
	res := post(t, srv, "/forms/signup/validate", url.Values{
		"username": {"admin"},
		"email":    {"nope"},
		"password": {"short"},
	}, nil)

	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	body := decode(t, res)
	require.NotNil(t, body.Error)
	assert.Equal(t, "validation_error", body.Error.Code)
	assert.Equal(t, []string{"username", "email", "password"}, body.Error.Fields.Fields())
	assert.Equal(t, []string{"Username is taken"}, body.Error.Fields.Get("username"))
	assert.Equal(t, []string{"Please enter a valid email address"}, body.Error.Fields.Get("email"))
	assert.Equal(t, []string{"Minimum length is 8 characters"}, body.Error.Fields.Get("password"))
}

func TestValidateSuccess(t *testing.T) {
	t.Parallel()
	srv := newServer(t)
	res := post(t, srv, "/forms/signup/validate", url.Values{
		"username": {"ada"},
		"email":    {"ada@example.com"},
		"password": {"correct horse"},
	}, nil)

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"username":"ada","email":"ada@example.com","password":"correct horse"}`,
		string(decode(t, res).Data))
}

func TestValidateTranslated(t *testing.T) {
	t.Parallel()
	srv := newServer(t)
	res := post(t, srv, "/forms/signup/validate?lang=de", url.Values{"username": {"ada"}}, nil)

	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	assert.Equal(t, []string{"Dieses Feld ist erforderlich"}, decode(t, res).Error.Fields.Get("email"))
}

func TestValidateDatastar(t *testing.T) {
	t.Parallel()
	srv := newServer(t)
	res := post(t, srv, "/forms/signup/validate", url.Values{"username": {"ada"}},
		map[string]string{"Datastar-Request": "true"})

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.Header.Get("Content-Type"), "text/event-stream")

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	stream := string(body)
	assert.Contains(t, stream, `id="beast-error-email"`)
	assert.Contains(t, stream, "This field is required")
	assert.Contains(t, stream, `id="beast-summary"`)
	assert.Contains(t, stream, "Email: This field is required")
}

func TestValidateField(t *testing.T) {
	t.Parallel()
	srv := newServer(t)

	res := post(t, srv, "/forms/signup/fields/email", url.Values{"email": {"bad"}}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	assert.Equal(t, []string{"Please enter a valid email address"}, decode(t, res).Error.Fields.Get("email"))

	res = post(t, srv, "/forms/signup/fields/email", url.Values{"email": {"ada@example.com"}}, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"field":"email","valid":true}`, string(decode(t, res).Data))

	res = post(t, srv, "/forms/signup/fields/email", url.Values{"email": {"bad"}},
		map[string]string{"Accept": "text/html"})
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Please enter a valid email address")

	res = post(t, srv, "/forms/signup/fields/email", url.Values{"email": {"ada@example.com"}},
		map[string]string{"Accept": "text/html"})
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestNotFound(t *testing.T) {
	t.Parallel()
	srv := newServer(t)

	res := post(t, srv, "/forms/missing/validate", url.Values{}, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res = post(t, srv, "/forms/signup/fields/missing", url.Values{}, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestUnsupportedMediaType(t *testing.T) {
	t.Parallel()
	srv := newServer(t)
	res, err := srv.Client().Post(srv.URL+"/forms/signup/validate", "text/plain", strings.NewReader("hi"))
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusUnsupportedMediaType, res.StatusCode)
}

func TestLocales(t *testing.T) {
	t.Parallel()
	srv := newServer(t)

	res, err := srv.Client().Get(srv.URL + "/locales/en")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	var table map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&table))
	assert.Contains(t, table, "validation")

	missing, err := srv.Client().Get(srv.URL + "/locales/xx")
	require.NoError(t, err)
	defer missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestValidationMiddlewareSeesRouteParams(t *testing.T) {
	t.Parallel()
	srv := newServer(t, forms.WithValidationMiddleware(func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Form", chi.URLParam(r, "form"))
			w.WriteHeader(http.StatusTooManyRequests)
		})
	}))

	for _, path := range []string{"/forms/signup/validate", "/forms/signup/fields/email"} {
		res := post(t, srv, path, url.Values{}, nil)
		assert.Equal(t, http.StatusTooManyRequests, res.StatusCode, path)
		assert.Equal(t, "signup", res.Header.Get("X-Form"), path)
	}

	list, err := srv.Client().Get(srv.URL + "/forms")
	require.NoError(t, err)
	defer list.Body.Close()
	assert.Equal(t, http.StatusOK, list.StatusCode, "read routes are not wrapped")
}
