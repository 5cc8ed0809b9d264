package notebook

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestParseFlashcards_Strict(t *testing.T) {
	got, err := ParseFlashcards(`[{"question":"Q1","answer":"A1"}]`)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Question != "Q1" {
		t.Fatalf("got %+v", got)
	}
}

func TestParseFlashcards_FromFencedProse(t *testing.T) {
	text := "Sure! Here are your flashcards:\n```json\n" +
		`[{"question":"Q1","answer":"A1"},{"question":"Q2","answer":"A2"}]` +
		"\n```\nHappy studying!"
	got, err := ParseFlashcards(text)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[1].Answer != "A2" {
		t.Fatalf("got %+v", got)
	}
}

func TestParseFlashcards_FromBareFragment(t *testing.T) {
	text := `Here you go: [{"question":"Q","answer":"A"}] — enjoy.`
	got, err := ParseFlashcards(text)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %+v", got)
	}
}

func TestParseFlashcards_Failures(t *testing.T) {
	for _, text := range []string{"no json here at all", "[]", ""} {
		if _, err := ParseFlashcards(text); err == nil {
			t.Errorf("ParseFlashcards(%q) should fail", text)
		}
	}
}

func TestParseQuiz_ValidatesAnswerIndex(t *testing.T) {
	good := `[{"question":"Q","options":["a","b"],"answer":1}]`
	if _, err := ParseQuiz(good); err != nil {
		t.Fatalf("valid quiz rejected: %v", err)
	}
	bad := `[{"question":"Q","options":["a","b"],"answer":5}]`
	if _, err := ParseQuiz(bad); err == nil {
		t.Fatal("out-of-range answer index accepted")
	}
}

func TestParseMindMap(t *testing.T) {
	text := "```json\n" +
		`{"nodes":[{"id":"1","label":"Root"}],"edges":[]}` + "\n```"
	mm, err := ParseMindMap(text)
	if err != nil {
		t.Fatal(err)
	}
	if len(mm.Nodes) != 1 || mm.Nodes[0].Label != "Root" {
		t.Fatalf("got %+v", mm)
	}
	if _, err := ParseMindMap(`{"nodes":[],"edges":[]}`); err == nil {
		t.Fatal("empty graph accepted")
	}
}

// fakeGen scripts the upstream client.
type fakeGen struct {
	text string
	err  error
}

func (f fakeGen) Generate(context.Context, string) (string, error) { return f.text, f.err }

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestService_FallbackOnUpstreamError(t *testing.T) {
	s := NewService(fakeGen{err: errors.New("boom")}, quietLogger())
	ctx := context.Background()

	if got := s.Flashcards(ctx, "notes"); len(got) != len(FallbackFlashcards()) {
		t.Fatal("upstream failure must serve the canned flashcards")
	}
	if got := s.Quiz(ctx, "notes"); len(got) != len(FallbackQuiz()) {
		t.Fatal("upstream failure must serve the canned quiz")
	}
	if got := s.MindMap(ctx, "notes"); len(got.Nodes) != len(FallbackMindMap().Nodes) {
		t.Fatal("upstream failure must serve the canned mind map")
	}
	if got := s.AudioOverview(ctx, "notes"); got != FallbackAudioOverview() {
		t.Fatal("upstream failure must serve the canned overview")
	}
}

func TestService_FallbackOnUnparseableResponse(t *testing.T) {
	s := NewService(fakeGen{text: "I'm sorry, I can't help with that."}, quietLogger())
	if got := s.Flashcards(context.Background(), "notes"); len(got) != len(FallbackFlashcards()) {
		t.Fatal("unparseable response must serve the canned flashcards")
	}
}

func TestService_ParsesRealResponse(t *testing.T) {
	s := NewService(fakeGen{text: `[{"question":"What is Go?","answer":"A language."}]`}, quietLogger())
	got := s.Flashcards(context.Background(), "notes")
	if len(got) != 1 || got[0].Question != "What is Go?" {
		t.Fatalf("got %+v", got)
	}
}
