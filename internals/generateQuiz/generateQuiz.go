package generateQuiz

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/ritikapurwa08/free-knowledge/internals/types"
)

func generatePrompt(subject, topic string, number int, difficulty string) string {
	return fmt.Sprintf(`Generate an array of %d multiple-choice quiz questions for the subject "%s" on the topic "%s" at "%s" difficulty.

Return ONLY a JSON array in exactly this shape:
[
  {
    "text": "Which word means 'happy'?",
    "options": ["Sad", "Joyful", "Angry", "Tired"],
    "correctAnswer": 1,
    "explanation": "'Joyful' is a synonym of 'happy'.",
    "type": "Single Choice"
  }
]

Rules:
- "correctAnswer" is the zero-based index into "options".
- Every question has at least 4 options and a short explanation.
- "type" is always "Single Choice".
- If the topic is inappropriate or you cannot generate questions, return an empty array [].

Now generate the questions.`, number, subject, topic, difficulty)
}

// GenerateDraft asks Gemini for quiz questions in the bulk-import shape. The
// draft is returned to the admin for review; nothing is persisted here.
func GenerateDraft(ctx context.Context, req *types.GenerateRequest) ([]types.Question, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(os.Getenv("GEMINI_API_KEY")))
	if err != nil {
		return nil, err
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-1.5-flash")
	model.GenerationConfig = genai.GenerationConfig{
		ResponseMIMEType: "application/json",
	}

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = "Medium"
	}

	prompt := generatePrompt(req.Subject, req.Topic, req.NumQuestions, difficulty)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, err
	}

	raw, err := extractText(resp)
	if err != nil {
		return nil, err
	}

	var questions []types.Question
	if err := json.Unmarshal([]byte(raw), &questions); err != nil {
		return nil, fmt.Errorf("model returned malformed JSON: %w", err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("model could not generate questions for topic %q", req.Topic)
	}

	return questions, nil
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				return string(text), nil
			}
		}
	}
	return "", fmt.Errorf("model response contained no text")
}
