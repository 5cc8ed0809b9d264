package notebook

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// Flashcard is one question/answer pair.
type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QuizQuestion is one multiple-choice question; Answer indexes Options.
type QuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   int      `json:"answer"`
}

// MindMap is a node/edge graph.
type MindMap struct {
	Nodes []MindMapNode `json:"nodes"`
	Edges []MindMapEdge `json:"edges"`
}

// MindMapNode is one labeled node.
type MindMapNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// MindMapEdge connects two nodes.
type MindMapEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

var errUnparseable = errors.New("no parseable payload in response")

var jsonFence = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// ExtractJSON pulls a JSON fragment out of surrounding prose: a fenced block
// when present, otherwise the widest bracketed span.
func ExtractJSON(text string) string {
	if m := jsonFence.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if frag := widestSpan(text, '[', ']'); frag != "" {
		return frag
	}
	return widestSpan(text, '{', '}')
}

func widestSpan(text string, open, close byte) string {
	start := strings.IndexByte(text, open)
	end := strings.LastIndexByte(text, close)
	if start < 0 || end <= start {
		return ""
	}
	return text[start : end+1]
}

// ParseFlashcards tries a strict decode first, then a fragment extracted
// from the prose. An empty array counts as a failure so the caller can fall
// back.
func ParseFlashcards(text string) ([]Flashcard, error) {
	var cards []Flashcard
	if err := json.Unmarshal([]byte(text), &cards); err != nil {
		if err := json.Unmarshal([]byte(ExtractJSON(text)), &cards); err != nil {
			return nil, errUnparseable
		}
	}
	if len(cards) == 0 {
		return nil, errUnparseable
	}
	return cards, nil
}

// ParseQuiz decodes an MCQ array with the same two-tier strategy.
func ParseQuiz(text string) ([]QuizQuestion, error) {
	var qs []QuizQuestion
	if err := json.Unmarshal([]byte(text), &qs); err != nil {
		if err := json.Unmarshal([]byte(ExtractJSON(text)), &qs); err != nil {
			return nil, errUnparseable
		}
	}
	if len(qs) == 0 {
		return nil, errUnparseable
	}
	for _, q := range qs {
		if q.Answer < 0 || q.Answer >= len(q.Options) {
			return nil, errUnparseable
		}
	}
	return qs, nil
}

// ParseMindMap decodes a node/edge graph with the same two-tier strategy.
func ParseMindMap(text string) (*MindMap, error) {
	var mm MindMap
	if err := json.Unmarshal([]byte(text), &mm); err != nil {
		if err := json.Unmarshal([]byte(ExtractJSON(text)), &mm); err != nil {
			return nil, errUnparseable
		}
	}
	if len(mm.Nodes) == 0 {
		return nil, errUnparseable
	}
	return &mm, nil
}
