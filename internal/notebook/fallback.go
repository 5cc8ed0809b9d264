package notebook

// Canned payloads served when the upstream is unreachable or its response is
// unparseable. Returning these instead of a 5xx is part of the endpoint
// contract.

// FallbackFlashcards returns the fixed flashcard set.
func FallbackFlashcards() []Flashcard {
	return []Flashcard{
		{Question: "What is spaced repetition?", Answer: "A study technique that reviews material at increasing intervals to improve retention."},
		{Question: "What is active recall?", Answer: "Testing yourself on material instead of re-reading it."},
		{Question: "Why summarize notes in your own words?", Answer: "Rephrasing forces deeper processing, which strengthens memory."},
		{Question: "What is the Feynman technique?", Answer: "Explaining a concept simply, as if teaching it, to expose gaps in understanding."},
		{Question: "How long should a focused study session be?", Answer: "Around 25-50 minutes, followed by a short break."},
	}
}

// FallbackQuiz returns the fixed quiz set.
func FallbackQuiz() []QuizQuestion {
	return []QuizQuestion{
		{
			Question: "Which study technique involves testing yourself?",
			Options:  []string{"Re-reading", "Active recall", "Highlighting", "Copying notes"},
			Answer:   1,
		},
		{
			Question: "Spaced repetition schedules reviews at which intervals?",
			Options:  []string{"Fixed daily", "Random", "Increasing", "Decreasing"},
			Answer:   2,
		},
		{
			Question: "The Feynman technique is based on what activity?",
			Options:  []string{"Memorizing", "Teaching", "Skimming", "Listening"},
			Answer:   1,
		},
	}
}

// FallbackMindMap returns the fixed graph.
func FallbackMindMap() *MindMap {
	return &MindMap{
		Nodes: []MindMapNode{
			{ID: "1", Label: "Main Topic"},
			{ID: "2", Label: "Key Concept"},
			{ID: "3", Label: "Details"},
			{ID: "4", Label: "Examples"},
		},
		Edges: []MindMapEdge{
			{From: "1", To: "2"},
			{From: "2", To: "3"},
			{From: "2", To: "4"},
		},
	}
}

// FallbackAudioOverview returns the fixed prose summary.
func FallbackAudioOverview() string {
	return "Here is a brief overview of your notes. The material covers the " +
		"main topic along with its key concepts and supporting details. " +
		"Review the highlighted sections and try explaining each concept in " +
		"your own words to check your understanding."
}
