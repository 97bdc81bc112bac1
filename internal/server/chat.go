package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/lrklep/tale-of-light/internal/llm"
	"github.com/lrklep/tale-of-light/internal/types"
)

var chatErrorMessages = map[llm.Category]string{
	llm.CategoryCredential: "The ancient scrolls (API key) are missing. Please configure them properly.",
	llm.CategoryQuota:      "The mystical energies have been exhausted for today. Please try again later.",
	llm.CategoryModel:      "The chosen mystical pathway (model) is not available. Please check your configuration.",
}

const chatFallbackMessage = "The mystical energies are disrupted. Please try again, traveler."

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		s.writeError(w, http.StatusBadRequest, "Message is required")
		return
	}
	if !s.cfg.CredentialSet() {
		s.writeError(w, http.StatusInternalServerError, "API key not configured")
		return
	}

	p, err := s.composer.Chat(req.ConversationHistory, req.Message)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid conversation history")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()
	style := s.composer.Spec().Style
	text, err := s.gen.Generate(ctx, p, llm.Options{
		Temperature: style.Temperature,
		TopP:        style.TopP,
		TopK:        style.TopK,
		MaxTokens:   style.ChatMaxTokens,
	})
	if err != nil {
		s.writeGenerationError(w, err, chatErrorMessages, chatFallbackMessage)
		return
	}

	s.logger.Debug("chat reply generated", "history", len(req.ConversationHistory))
	s.writeJSON(w, http.StatusOK, types.ChatResponse{
		Response:  text,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Status:    "success",
	})
}
