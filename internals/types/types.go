package types

import "time"

// Vocab progress states. "mastered" is terminal.
const (
	StatusLearning = "learning"
	StatusMastered = "mastered"
)

type User struct {
	Id        int64     `json:"id"`
	Username  string    `json:"username" validate:"required"`
	Email     string    `json:"email" validate:"required,email"`
	Password  string    `json:"password,omitempty" validate:"required"`
	ImageUrl  string    `json:"imageUrl"`
	Bio       *string   `json:"bio"`
	TotalXp   int64     `json:"totalXp"`
	Streak    int       `json:"streak"`
	LastLogin time.Time `json:"lastLogin"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"created_at"`
}

type Question struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
	Type          string   `json:"type"`
}

type Quiz struct {
	ID        int64      `json:"id" db:"id"`
	Title     string     `json:"title" validate:"required" db:"title"`
	Subject   string     `json:"subject" validate:"required" db:"subject"`
	Topic     string     `json:"topic" validate:"required" db:"topic"`
	Questions []Question `json:"questions" validate:"required" db:"questions"` // JSONB column
	CreatedBy *int64     `json:"createdBy,omitempty" db:"created_by"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
}

type QuizResult struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"userId" db:"user_id"`
	QuizID      string    `json:"quizId" validate:"required" db:"quiz_id"` // may be a locally generated id, not a quizzes row
	Score       int       `json:"score" db:"score"`
	MaxScore    int       `json:"maxScore" validate:"required" db:"max_score"`
	Answers     string    `json:"answers" validate:"required" db:"answers"` // JSON string: question index -> option index
	CompletedAt time.Time `json:"completedAt" db:"completed_at"`
}

// HistoryEntry is a QuizResult joined with quiz labels for display.
// Unresolved quiz ids get placeholder labels instead of failing the fetch.
type HistoryEntry struct {
	QuizResult
	QuizTitle   string `json:"quizTitle"`
	QuizSubject string `json:"quizSubject"`
	QuizTopic   string `json:"quizTopic"`
}

type VocabProgress struct {
	ID     int64  `json:"id" db:"id"`
	UserID int64  `json:"userId" db:"user_id"`
	WordID string `json:"wordId" db:"word_id"`
	Status string `json:"status" db:"status"`
}

type Word struct {
	WordID          string    `json:"id"`
	Step            int       `json:"step"`
	Text            string    `json:"text"`
	Definition      string    `json:"definition"`
	HindiSynonyms   []string  `json:"hindiSynonyms"`
	EnglishSynonyms []string  `json:"englishSynonyms"`
	Examples        []Example `json:"examples"`
	Difficulty      string    `json:"difficulty"`
	Category        string    `json:"category"`
}

type Example struct {
	Sentence string `json:"sentence"`
}

type AdminEmail struct {
	ID      int64     `json:"id" db:"id"`
	Email   string    `json:"email" db:"email"`
	AddedBy int64     `json:"addedBy" db:"added_by"`
	AddedAt time.Time `json:"addedAt" db:"added_at"`
}

type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	Username string `json:"name"`
	TotalXp  int64  `json:"totalXp"`
	ImageUrl string `json:"imageUrl"`
}

type ProgressSummary struct {
	KnownWords     int `json:"knownWords"`
	TotalWords     int `json:"totalWords"`
	AttemptedTests int `json:"attemptedTests"`
	TotalTests     int `json:"totalTests"`
}

type UserUpdateRequest struct {
	Username *string `json:"username"`
	Bio      *string `json:"bio"`
	ImageUrl *string `json:"imageUrl"`
	IsAdmin  *bool   `json:"isAdmin"`
}

type GenerateRequest struct {
	Topic        string `json:"topic" validate:"required"`
	Subject      string `json:"subject" validate:"required"`
	NumQuestions int    `json:"num_questions" validate:"required,min=1,max=50"`
	Difficulty   string `json:"difficulty"`
}
