package main

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestServer(t *testing.T) *contentServer {
	t.Helper()
	return &contentServer{
		quizDir: t.TempDir(),
		pdfDir:  t.TempDir(),
	}
}

func TestSaveAndListQuizzes(t *testing.T) {
	s := newTestServer(t)

	body := `{"fileName":"english-nouns","content":{"title":"Nouns","subject":"English","topic":"Nouns"}}`
	r := httptest.NewRequest("POST", "/save-quiz", strings.NewReader(body))
	w := httptest.NewRecorder()
	s.saveQuiz(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("save status = %d: %s", w.Code, w.Body.String())
	}
	if _, err := os.Stat(filepath.Join(s.quizDir, "english-nouns.json")); err != nil {
		t.Fatalf("quiz file not written: %v", err)
	}

	r = httptest.NewRequest("GET", "/list-quizzes", nil)
	w = httptest.NewRecorder()
	s.listQuizzes(w, r)

	var quizzes []map[string]any
	if err := json.NewDecoder(w.Body).Decode(&quizzes); err != nil {
		t.Fatal(err)
	}
	if len(quizzes) != 1 {
		t.Fatalf("listed %d quizzes, want 1", len(quizzes))
	}
	if quizzes[0]["title"] != "Nouns" {
		t.Errorf("title = %v", quizzes[0]["title"])
	}
	if id, ok := quizzes[0]["id"].(string); !ok || id == "" {
		t.Errorf("saved quiz has no id: %v", quizzes[0]["id"])
	}
}

func TestListQuizzesMissingDir(t *testing.T) {
	s := &contentServer{quizDir: "/nonexistent/quizzes", pdfDir: "/nonexistent/pdfs"}

	r := httptest.NewRequest("GET", "/list-quizzes", nil)
	w := httptest.NewRecorder()
	s.listQuizzes(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Errorf("body = %q, want []", body)
	}
}

func TestListPDFsInfersSubjectAndTopic(t *testing.T) {
	s := newTestServer(t)

	dir := filepath.Join(s.pdfDir, "English", "Grammar")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "eng-grammar.pdf"), []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(s.pdfDir, "loose.pdf"), []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := httptest.NewRequest("GET", "/list-pdfs", nil)
	w := httptest.NewRecorder()
	s.listPDFs(w, r)

	var pdfs []pdfEntry
	if err := json.NewDecoder(w.Body).Decode(&pdfs); err != nil {
		t.Fatal(err)
	}
	if len(pdfs) != 2 {
		t.Fatalf("listed %d pdfs, want 2", len(pdfs))
	}

	byName := map[string]pdfEntry{}
	for _, p := range pdfs {
		byName[p.FileName] = p
	}

	nested := byName["eng-grammar.pdf"]
	if nested.Subject != "English" || nested.Topic != "Grammar" {
		t.Errorf("nested pdf = %s/%s, want English/Grammar", nested.Subject, nested.Topic)
	}
	if nested.Title != "eng grammar" {
		t.Errorf("title = %q, want 'eng grammar'", nested.Title)
	}

	loose := byName["loose.pdf"]
	if loose.Subject != "Other" || loose.Topic != "Other" {
		t.Errorf("root-level pdf = %s/%s, want Other/Other", loose.Subject, loose.Topic)
	}
}

func TestUploadPDFStripsTraversal(t *testing.T) {
	s := newTestServer(t)

	content := base64.StdEncoding.EncodeToString([]byte("%PDF-1.4"))
	payload, _ := json.Marshal(map[string]string{
		"fileName":   "notes.pdf",
		"folderPath": "../../English/Grammar",
		"content":    content,
	})

	r := httptest.NewRequest("POST", "/upload-pdf", strings.NewReader(string(payload)))
	w := httptest.NewRecorder()
	s.uploadPDF(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	// traversal prefix gone: the file lands inside the pdf root
	want := filepath.Join(s.pdfDir, "English", "Grammar", "notes.pdf")
	if _, err := os.Stat(want); err != nil {
		t.Errorf("file not at %s: %v", want, err)
	}
}

func TestUploadPDFDataURI(t *testing.T) {
	s := newTestServer(t)

	content := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString([]byte("%PDF-1.4"))
	payload, _ := json.Marshal(map[string]string{
		"fileName":   "sheet.pdf",
		"folderPath": "Math",
		"content":    content,
	})

	r := httptest.NewRequest("POST", "/upload-pdf", strings.NewReader(string(payload)))
	w := httptest.NewRecorder()
	s.uploadPDF(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	data, err := os.ReadFile(filepath.Join(s.pdfDir, "Math", "sheet.pdf"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "%PDF-1.4" {
		t.Errorf("decoded content = %q", data)
	}
}

func TestStripLeadingTraversal(t *testing.T) {
	tests := map[string]string{
		"English/Grammar":       "English/Grammar",
		"../English":            "English",
		"../../../English":      "English",
		"/English":              "English",
		"English/../secret":     "English/../secret", // only leading sequences are stripped
	}
	for in, want := range tests {
		if got := stripLeadingTraversal(in); got != want {
			t.Errorf("stripLeadingTraversal(%q) = %q, want %q", in, got, want)
		}
	}
}
