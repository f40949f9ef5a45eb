package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ritikapurwa08/free-knowledge/internals/response"
	"github.com/ritikapurwa08/free-knowledge/internals/types"
)

func TestValidateQuestions(t *testing.T) {
	valid := types.Question{
		Text:          "Which word means 'happy'?",
		Options:       []string{"Sad", "Joyful", "Angry", "Tired"},
		CorrectAnswer: 1,
	}

	if err := validateQuestions([]types.Question{valid}); err != nil {
		t.Fatalf("valid question rejected: %v", err)
	}

	if err := validateQuestions(nil); err == nil {
		t.Error("empty question list accepted")
	}

	missingText := valid
	missingText.Text = ""
	err := validateQuestions([]types.Question{valid, missingText})
	if err == nil || !strings.Contains(err.Error(), "question 2") {
		t.Errorf("missing text error should name question 2, got %v", err)
	}

	oneOption := valid
	oneOption.Options = []string{"Joyful"}
	err = validateQuestions([]types.Question{oneOption})
	if err == nil || !strings.Contains(err.Error(), "question 1") || !strings.Contains(err.Error(), "options") {
		t.Errorf("single-option error should name question 1 and options, got %v", err)
	}

	badIndex := valid
	badIndex.CorrectAnswer = 4
	err = validateQuestions([]types.Question{badIndex})
	if err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Errorf("out-of-range correctAnswer not rejected, got %v", err)
	}

	negative := valid
	negative.CorrectAnswer = -1
	if err := validateQuestions([]types.Question{negative}); err == nil {
		t.Error("negative correctAnswer accepted")
	}
}

func TestAnswersRoundTrip(t *testing.T) {
	submitted := map[int]int{0: 2, 1: 0, 5: 3}

	serialized, err := json.Marshal(submitted)
	if err != nil {
		t.Fatal(err)
	}

	result := types.QuizResult{Answers: string(serialized)}

	var parsed map[int]int
	if err := json.Unmarshal([]byte(result.Answers), &parsed); err != nil {
		t.Fatalf("answers did not parse back: %v", err)
	}
	if len(parsed) != len(submitted) {
		t.Fatalf("round trip lost entries: got %v", parsed)
	}
	for q, opt := range submitted {
		if parsed[q] != opt {
			t.Errorf("question %d: got option %d, want %d", q, parsed[q], opt)
		}
	}
}

func TestGetHistoryUnauthenticated(t *testing.T) {
	// nil db: the handler must answer before touching storage
	handler := GetHistory(nil)

	r := httptest.NewRequest("GET", "/api/quiz/history", nil)
	w := httptest.NewRecorder()
	handler(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp response.Response
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	entries, ok := resp.Data.([]any)
	if !ok {
		t.Fatalf("data = %T, want empty list", resp.Data)
	}
	if len(entries) != 0 {
		t.Errorf("anonymous history has %d entries, want 0", len(entries))
	}
}

func TestGetResultUnauthenticated(t *testing.T) {
	// nil db: anonymous callers must get the null payload before any storage access
	handler := GetResult(nil)

	r := httptest.NewRequest("GET", "/api/quiz/results?resultID=3", nil)
	w := httptest.NewRecorder()
	handler(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp response.Response
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Data != nil {
		t.Errorf("anonymous result data = %v, want null", resp.Data)
	}
}

func TestSubmitResultUnauthenticated(t *testing.T) {
	handler := SubmitResult(nil, nil, nil)

	body := `{"quizId":"english-nouns","score":7,"maxScore":10,"answers":"{}"}`
	r := httptest.NewRequest("POST", "/api/quiz/results", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
