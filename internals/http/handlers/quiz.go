package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/ritikapurwa08/free-knowledge/internals/cache"
	"github.com/ritikapurwa08/free-knowledge/internals/config"
	"github.com/ritikapurwa08/free-knowledge/internals/database"
	"github.com/ritikapurwa08/free-knowledge/internals/generateQuiz"
	"github.com/ritikapurwa08/free-knowledge/internals/response"
	"github.com/ritikapurwa08/free-knowledge/internals/types"
)

// validateQuestions checks every question of a new quiz and reports the first
// bad one by its 1-based position.
func validateQuestions(questions []types.Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("quiz must contain at least one question")
	}
	for i, q := range questions {
		n := i + 1
		if q.Text == "" {
			return fmt.Errorf("question %d: missing 'text'", n)
		}
		if len(q.Options) < 2 {
			return fmt.Errorf("question %d: 'options' must have at least 2 entries", n)
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return fmt.Errorf("question %d: 'correctAnswer' index %d is out of range", n, q.CorrectAnswer)
		}
	}
	return nil
}

// CreateQuiz stores a quiz from manual entry or bulk JSON import. Identity is
// recorded when present but not required.
func CreateQuiz(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var quiz types.Quiz

		err := json.NewDecoder(r.Body).Decode(&quiz)
		if err != nil {
			if errors.Is(err, io.EOF) {
				http.Error(w, "no data to read", http.StatusBadRequest)
			} else {
				http.Error(w, fmt.Sprintf("failed to decode JSON: %v", err), http.StatusBadRequest)
			}
			return
		}

		validate := validator.New()
		if err := validate.Struct(&quiz); err != nil {
			response.ValidateResponse(w, err)
			return
		}
		if err := validateQuestions(quiz.Questions); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		for i := range quiz.Questions {
			if quiz.Questions[i].Type == "" {
				quiz.Questions[i].Type = "Single Choice"
			}
		}

		if userID, ok := callerID(r); ok {
			quiz.CreatedBy = &userID
		}

		if err := database.InsertNewQuiz(db, &quiz); err != nil {
			http.Error(w, fmt.Sprintf("Database error: %v", err), http.StatusInternalServerError)
			return
		}

		response.WriteResponse(w, response.CreateResponse(quiz, http.StatusCreated, "Quiz created successfully"))
	}
}

func GetQuizzes(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subject := r.URL.Query().Get("subject")
		topic := r.URL.Query().Get("topic")

		quizzes, err := database.FetchQuizzes(db, subject, topic)
		if err != nil {
			http.Error(w, fmt.Sprintf("Error fetching quizzes %v", err.Error()), http.StatusInternalServerError)
			return
		}

		response.WriteResponse(w, response.CreateResponse(quizzes, http.StatusOK, "Quizzes retrieved successfully"))
	}
}

// DeleteQuiz removes a quiz. Any authenticated user may delete any quiz; an
// ownership check is an open question upstream and deliberately not added.
func DeleteQuiz(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := callerID(r); !ok {
			http.Error(w, "Not authenticated", http.StatusUnauthorized)
			return
		}

		quizID, err := strconv.ParseInt(r.URL.Query().Get("quizID"), 10, 64)
		if err != nil {
			http.Error(w, fmt.Sprintf("Invalid Quiz Id : %v", err.Error()), http.StatusBadRequest)
			return
		}

		if err := database.DeleteQuizById(db, quizID); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				http.Error(w, err.Error(), http.StatusNotFound)
			} else {
				http.Error(w, fmt.Sprintf("Database error: %v", err), http.StatusInternalServerError)
			}
			return
		}

		response.WriteResponse(w, response.CreateResponse(nil, http.StatusOK, "Quiz deleted successfully"))
	}
}

// SubmitResult records one attempt and grants XP. The score arrives
// pre-computed from the client against its quiz snapshot and is trusted as
// submitted.
func SubmitResult(db *sql.DB, cfg *config.Config, lb *cache.Leaderboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			http.Error(w, "Not authenticated", http.StatusUnauthorized)
			return
		}

		var result types.QuizResult
		if err := json.NewDecoder(r.Body).Decode(&result); err != nil {
			http.Error(w, fmt.Sprintf("failed to decode JSON: %v", err), http.StatusBadRequest)
			return
		}

		validate := validator.New()
		if err := validate.Struct(&result); err != nil {
			response.ValidateResponse(w, err)
			return
		}
		if result.Score < 0 || result.MaxScore < result.Score {
			http.Error(w, "score must be between 0 and maxScore", http.StatusBadRequest)
			return
		}
		if !json.Valid([]byte(result.Answers)) {
			http.Error(w, "answers must be a JSON object", http.StatusBadRequest)
			return
		}

		result.UserID = userID

		newTotal, err := database.InsertResultAndGrantXp(db, &result, cfg.QuizBaseXp)
		if err != nil {
			http.Error(w, fmt.Sprintf("Database error: %v", err), http.StatusInternalServerError)
			return
		}

		lb.UpdateScore(r.Context(), userID, newTotal)

		data := struct {
			Result  types.QuizResult `json:"result"`
			TotalXp int64            `json:"totalXp"`
		}{result, newTotal}
		response.WriteResponse(w, response.CreateResponse(data, http.StatusCreated, "Result saved successfully"))
	}
}

// GetResult returns a single attempt, owner-only. Anonymous callers and
// missing results both get a null payload; someone else's result is Forbidden.
func GetResult(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			response.WriteResponse(w, response.CreateResponse(nil, http.StatusOK, "Not signed in"))
			return
		}

		resultID, err := strconv.ParseInt(r.URL.Query().Get("resultID"), 10, 64)
		if err != nil {
			http.Error(w, fmt.Sprintf("Invalid result Id : %v", err.Error()), http.StatusBadRequest)
			return
		}

		result, err := database.FetchResultById(db, resultID)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				response.WriteResponse(w, response.CreateResponse(nil, http.StatusOK, "Result not found"))
			} else {
				http.Error(w, fmt.Sprintf("Database error: %v", err), http.StatusInternalServerError)
			}
			return
		}

		if result.UserID != userID {
			http.Error(w, "You are not allowed to view this result", http.StatusForbidden)
			return
		}

		response.WriteResponse(w, response.CreateResponse(result, http.StatusOK, "Result retrieved successfully"))
	}
}

// GetHistory lists the caller's attempts newest first, with quiz labels.
// Anonymous callers get an empty list, never an error.
func GetHistory(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(r)
		if !ok {
			response.WriteResponse(w, response.CreateResponse([]types.HistoryEntry{}, http.StatusOK, "History retrieved successfully"))
			return
		}

		entries, err := database.FetchHistory(db, userID)
		if err != nil {
			http.Error(w, fmt.Sprintf("Error fetching history : %v", err.Error()), http.StatusInternalServerError)
			return
		}
		if entries == nil {
			entries = []types.HistoryEntry{}
		}

		response.WriteResponse(w, response.CreateResponse(entries, http.StatusOK, "History retrieved successfully"))
	}
}

// GenerateQuizDraft produces AI-drafted questions for the admin import form.
// Drafts are never persisted directly.
func GenerateQuizDraft(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := requireAdmin(db, r); err != nil {
			writeAuthError(w, err)
			return
		}

		var req types.GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, fmt.Sprintf("failed to decode JSON: %v", err), http.StatusBadRequest)
			return
		}

		validate := validator.New()
		if err := validate.Struct(&req); err != nil {
			response.ValidateResponse(w, err)
			return
		}

		questions, err := generateQuiz.GenerateDraft(r.Context(), &req)
		if err != nil {
			http.Error(w, fmt.Sprintf("failed to generate Quiz: %v", err.Error()), http.StatusInternalServerError)
			return
		}

		response.WriteResponse(w, response.CreateResponse(questions, http.StatusOK, "Quiz draft generated successfully"))
	}
}
