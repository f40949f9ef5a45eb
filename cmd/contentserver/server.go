package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// contentServer is the dev-only local content authoring service. It lists and
// writes quiz JSON and PDF files on disk for the admin/resource UI. It is not
// part of the production data path.
type contentServer struct {
	quizDir string
	pdfDir  string
}

type pdfEntry struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subject  string `json:"subject"`
	Topic    string `json:"topic"`
	FileName string `json:"fileName"`
	URL      string `json:"url"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// listQuizzes returns every quiz JSON blob in the quiz directory. A missing
// directory is an empty list, not an error.
func (s *contentServer) listQuizzes(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(s.quizDir)
	if err != nil {
		writeJSON(w, http.StatusOK, []any{})
		return
	}

	quizzes := []any{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(s.quizDir, entry.Name()))
		if err != nil {
			log.Printf("skipping unreadable quiz file %s: %v", entry.Name(), err)
			continue
		}

		var content map[string]any
		if err := json.Unmarshal(raw, &content); err != nil {
			log.Printf("skipping malformed quiz file %s: %v", entry.Name(), err)
			continue
		}
		if _, ok := content["id"]; !ok {
			content["id"] = uuid.NewString()
		}
		quizzes = append(quizzes, content)
	}

	writeJSON(w, http.StatusOK, quizzes)
}

func (s *contentServer) saveQuiz(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FileName string         `json:"fileName"`
		Content  map[string]any `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if req.FileName == "" || req.Content == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "fileName and content are required"})
		return
	}

	if _, ok := req.Content["id"]; !ok {
		req.Content["id"] = uuid.NewString()
	}

	pretty, err := json.MarshalIndent(req.Content, "", "  ")
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if err := os.MkdirAll(s.quizDir, 0o755); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	path := filepath.Join(s.quizDir, filepath.Base(req.FileName)+".json")
	if err := os.WriteFile(path, pretty, 0o644); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	log.Printf("Saved: %s", path)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// listPDFs walks the PDF directory recursively. The first path segment under
// the root is the subject and the second is the topic; files closer to the
// root fall back to "Other".
func (s *contentServer) listPDFs(w http.ResponseWriter, r *http.Request) {
	pdfs := []pdfEntry{}

	err := filepath.WalkDir(s.pdfDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".pdf") {
			return nil
		}

		rel, err := filepath.Rel(s.pdfDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		subject, topic := inferSubjectTopic(rel)
		pdfs = append(pdfs, pdfEntry{
			ID:       rel,
			Title:    pdfTitle(d.Name()),
			Subject:  subject,
			Topic:    topic,
			FileName: d.Name(),
			URL:      "/pdfs/" + rel,
		})
		return nil
	})
	if err != nil {
		writeJSON(w, http.StatusOK, []pdfEntry{})
		return
	}

	writeJSON(w, http.StatusOK, pdfs)
}

func inferSubjectTopic(relPath string) (string, string) {
	parts := strings.Split(relPath, "/")
	switch {
	case len(parts) >= 3:
		return parts[0], parts[1]
	case len(parts) == 2:
		return parts[0], "Other"
	default:
		return "Other", "Other"
	}
}

// pdfTitle turns "eng-grammar.pdf" into "eng grammar".
func pdfTitle(fileName string) string {
	title := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	return strings.ReplaceAll(title, "-", " ")
}

// uploadPDF writes a base64 PDF under folderPath. Only leading "../"
// sequences are stripped from folderPath; this is dev-only tooling and the
// sanitization is deliberately no stronger than that.
func (s *contentServer) uploadPDF(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FileName   string `json:"fileName"`
		FolderPath string `json:"folderPath"`
		Content    string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if req.FileName == "" || req.Content == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "fileName and content are required"})
		return
	}

	folder := stripLeadingTraversal(req.FolderPath)

	data, err := base64.StdEncoding.DecodeString(stripDataURI(req.Content))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("invalid base64 content: %v", err)})
		return
	}

	dir := filepath.Join(s.pdfDir, filepath.FromSlash(folder))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	path := filepath.Join(dir, filepath.Base(req.FileName))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	log.Printf("Uploaded: %s", path)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "path": folder + "/" + filepath.Base(req.FileName)})
}

func stripLeadingTraversal(folderPath string) string {
	folder := strings.TrimPrefix(folderPath, "/")
	for strings.HasPrefix(folder, "../") {
		folder = strings.TrimPrefix(folder, "../")
	}
	return folder
}

func stripDataURI(content string) string {
	if idx := strings.Index(content, ";base64,"); idx >= 0 {
		return content[idx+len(";base64,"):]
	}
	return content
}
