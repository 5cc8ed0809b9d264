package notebook

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

type generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service applies the three-tier degradation around the upstream client:
// call, parse strictly, extract a fragment, and finally serve the canned
// payload. None of the tiers raise; the HTTP layer only 5xxes on panics.
type Service struct {
	client generator
	log    *logrus.Logger
}

// NewService wires the notebook service.
func NewService(client generator, log *logrus.Logger) *Service {
	return &Service{client: client, log: log}
}

// Flashcards generates Q/A pairs for the prompt.
func (s *Service) Flashcards(ctx context.Context, prompt string) []Flashcard {
	text, err := s.generate(ctx, prompt, "flashcards",
		"Create 5 flashcards from the following notes. Respond with a JSON array "+
			`of {"question", "answer"} objects only.`)
	if err != nil {
		return FallbackFlashcards()
	}
	cards, err := ParseFlashcards(text)
	if err != nil {
		s.log.WithError(err).Warn("flashcards response unparseable, serving fallback")
		return FallbackFlashcards()
	}
	return cards
}

// Quiz generates multiple-choice questions for the prompt.
func (s *Service) Quiz(ctx context.Context, prompt string) []QuizQuestion {
	text, err := s.generate(ctx, prompt, "quiz",
		"Create a multiple-choice quiz from the following notes. Respond with a "+
			`JSON array of {"question", "options", "answer"} objects only, where `+
			"answer is the index of the correct option.")
	if err != nil {
		return FallbackQuiz()
	}
	qs, err := ParseQuiz(text)
	if err != nil {
		s.log.WithError(err).Warn("quiz response unparseable, serving fallback")
		return FallbackQuiz()
	}
	return qs
}

// MindMap generates a node/edge graph for the prompt.
func (s *Service) MindMap(ctx context.Context, prompt string) *MindMap {
	text, err := s.generate(ctx, prompt, "mind-map",
		"Create a mind map from the following notes. Respond with a JSON object "+
			`{"nodes": [{"id", "label"}], "edges": [{"from", "to"}]} only.`)
	if err != nil {
		return FallbackMindMap()
	}
	mm, err := ParseMindMap(text)
	if err != nil {
		s.log.WithError(err).Warn("mind map response unparseable, serving fallback")
		return FallbackMindMap()
	}
	return mm
}

// AudioOverview generates a prose summary suitable for narration.
func (s *Service) AudioOverview(ctx context.Context, prompt string) string {
	text, err := s.generate(ctx, prompt, "audio-overview",
		"Write a short spoken-style overview of the following notes, in plain prose.")
	if err != nil || text == "" {
		return FallbackAudioOverview()
	}
	return text
}

func (s *Service) generate(ctx context.Context, prompt, kind, instruction string) (string, error) {
	text, err := s.client.Generate(ctx, fmt.Sprintf("%s\n\n%s", instruction, prompt))
	if err != nil {
		if err != errUpstreamDisabled {
			s.log.WithError(err).WithField("kind", kind).Warn("ai upstream call failed, serving fallback")
		}
		return "", err
	}
	return text, nil
}
