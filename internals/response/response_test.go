package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateResponseShort(t *testing.T) {
	resp := CreateResponse(map[string]int{"n": 1}, http.StatusOK, "ok")

	if resp.StatusCode != http.StatusOK || resp.Message != "ok" {
		t.Errorf("envelope = %+v", resp)
	}
	if resp.IsError {
		t.Error("short form should not be an error")
	}
}

func TestCreateResponseExtras(t *testing.T) {
	resp := CreateResponse(nil, http.StatusBadRequest, "bad input", "dev detail", "please fix the form", true, "ValidationError")

	if resp.DeveloperMessage != "dev detail" || resp.UserMessage != "please fix the form" {
		t.Errorf("messages = %q / %q", resp.DeveloperMessage, resp.UserMessage)
	}
	if !resp.IsError || resp.Err != "ValidationError" {
		t.Errorf("error fields = %v / %q", resp.IsError, resp.Err)
	}
}

func TestWriteResponse(t *testing.T) {
	w := httptest.NewRecorder()
	WriteResponse(w, CreateResponse([]string{"a"}, http.StatusCreated, "created"))

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	var decoded Response
	if err := json.NewDecoder(w.Body).Decode(&decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Message != "created" {
		t.Errorf("message = %q", decoded.Message)
	}
}
