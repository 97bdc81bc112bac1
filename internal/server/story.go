package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/lrklep/tale-of-light/internal/llm"
	"github.com/lrklep/tale-of-light/internal/prompt"
	"github.com/lrklep/tale-of-light/internal/story"
	"github.com/lrklep/tale-of-light/internal/types"
)

var storyErrorMessages = map[llm.Category]string{
	llm.CategoryCredential: "The ancient scrolls (API key) are missing for story generation.",
	llm.CategoryQuota:      "The chronicle forge has exhausted its power for today.",
}

const storyFallbackMessage = "Failed to forge the chronicle. The mystical energies are unstable."

func (s *Server) handleGenerateStory(w http.ResponseWriter, r *http.Request) {
	var req types.StoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.InterviewData) == 0 {
		s.writeError(w, http.StatusBadRequest, "Interview data is required")
		return
	}
	kind, err := prompt.ParseOutputKind(req.OutputType)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, `Output type must be "blog" or "flyer"`)
		return
	}
	if !s.cfg.CredentialSet() {
		s.writeError(w, http.StatusInternalServerError, "API key not configured")
		return
	}

	p, err := s.composer.Story(req.InterviewData, kind)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid interview data")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 120*time.Second)
	defer cancel()
	style := s.composer.Spec().Style
	text, err := s.gen.Generate(ctx, p, llm.Options{
		Temperature: style.Temperature,
		TopP:        style.TopP,
		TopK:        style.TopK,
		MaxTokens:   style.StoryMaxTokens,
	})
	if err != nil {
		s.writeGenerationError(w, err, storyErrorMessages, storyFallbackMessage)
		return
	}

	doc, err := story.PostProcess(text)
	if err != nil {
		s.logger.Error("story post-processing failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, storyFallbackMessage)
		return
	}

	s.logger.Debug("chronicle forged", "type", kind, "lines", len(req.InterviewData))
	s.writeJSON(w, http.StatusOK, types.StoryResponse{
		Story:       doc.Markdown,
		Type:        string(kind),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Status:      "success",
		Title:       doc.Title,
		Summary:     doc.Summary,
		HTML:        doc.HTML,
	})
}
