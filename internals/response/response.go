package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Response struct {
	StatusCode       int    `json:"statusCode"`
	Message          string `json:"message"`
	Data             any    `json:"data"`
	DeveloperMessage string `json:"developerMessage,omitempty"`
	UserMessage      string `json:"userMessage,omitempty"`
	IsError          bool   `json:"isError"`
	Err              string `json:"error,omitempty"`
}

// CreateResponse builds the standard API envelope. The optional extras are, in
// order: developer message (string), user message (string), error flag (bool)
// and error label (string).
func CreateResponse(data any, statusCode int, message string, extras ...any) *Response {
	resp := &Response{
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
	}

	for i, extra := range extras {
		switch i {
		case 0:
			if s, ok := extra.(string); ok {
				resp.DeveloperMessage = s
			}
		case 1:
			if s, ok := extra.(string); ok {
				resp.UserMessage = s
			}
		case 2:
			if b, ok := extra.(bool); ok {
				resp.IsError = b
			}
		case 3:
			if s, ok := extra.(string); ok && resp.IsError {
				resp.Err = s
			}
		}
	}

	return resp
}

func WriteResponse(w http.ResponseWriter, resp *Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, fmt.Sprintf("failed to encode response: %v", err), http.StatusInternalServerError)
	}
}

// ValidateResponse renders validator errors as a 400 listing every failed field.
func ValidateResponse(w http.ResponseWriter, err error) {
	var failed []string
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			failed = append(failed, fmt.Sprintf("field '%s' failed on '%s'", fe.Field(), fe.Tag()))
		}
	} else {
		failed = append(failed, err.Error())
	}

	msg := "Invalid request: " + strings.Join(failed, "; ")
	resp := CreateResponse(nil, http.StatusBadRequest, msg, "", msg, true, "ValidationError")
	WriteResponse(w, resp)
}
