package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type generateRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

func bindPrompt(c *gin.Context) (string, bool) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return "", false
	}
	return req.Prompt, true
}

// GenerateFlashcards turns the prompt into Q/A study cards. The service
// degrades to a canned deck, so this never 5xxes on upstream trouble.
func (h *Handler) GenerateFlashcards(c *gin.Context) {
	prompt, ok := bindPrompt(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"flashcards": h.notebook.Flashcards(c.Request.Context(), prompt)})
}

// GenerateQuiz turns the prompt into a multiple-choice quiz.
func (h *Handler) GenerateQuiz(c *gin.Context) {
	prompt, ok := bindPrompt(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"quiz": h.notebook.Quiz(c.Request.Context(), prompt)})
}

// GenerateMindMap turns the prompt into a node/edge graph.
func (h *Handler) GenerateMindMap(c *gin.Context) {
	prompt, ok := bindPrompt(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"mindMap": h.notebook.MindMap(c.Request.Context(), prompt)})
}

// GenerateAudioOverview turns the prompt into narration-ready prose.
func (h *Handler) GenerateAudioOverview(c *gin.Context) {
	prompt, ok := bindPrompt(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"audioOverview": h.notebook.AudioOverview(c.Request.Context(), prompt)})
}
