package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrymomot/beast/pkg/validator"
)

// JSONBody is the envelope of every JSON response.
type JSONBody struct {
	Data  any          `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string                     `json:"code"`
	Message string                     `json:"message"`
	Fields  validator.ValidationErrors `json:"fields,omitempty"`
}

type jsonResponse struct {
	status int
	body   JSONBody
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSON responds with 200 and v under "data".
func JSON(v any) Response {
	return jsonResponse{status: http.StatusOK, body: JSONBody{Data: v}}
}

// JSONStatus responds with status and v under "data".
func JSONStatus(status int, v any) Response {
	return jsonResponse{status: status, body: JSONBody{Data: v}}
}

// JSONError responds with the classified status of err. Validation errors
// list their fields.
func JSONError(err error) Response {
	info := Classify(err)
	return jsonResponse{
		status: info.Status,
		body: JSONBody{Error: &ErrorDetail{
			Code:    info.Code,
			Message: info.Message,
			Fields:  info.Fields,
		}},
	}
}
