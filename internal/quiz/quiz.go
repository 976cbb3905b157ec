// Package quiz implements the archetype quiz: a short multiple-choice
// assessment that maps a visitor to one of four working-style archetypes
// and turns their submission into a lead.
package quiz

// Archetype is one possible quiz outcome. Tags points at the content
// labels used to recommend resources for this archetype.
type Archetype struct {
	Name    string   `json:"name"`
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
}

// Option is one answer choice. Weights award points per archetype name and
// are never serialized to clients.
type Option struct {
	ID      string         `json:"id"`
	Label   string         `json:"label"`
	Weights map[string]int `json:"-"`
}

// Question is one quiz step.
type Question struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []Option `json:"options"`
}

// Definition is a complete quiz. Archetype order breaks scoring ties, so
// it is part of the quiz's meaning, not just presentation.
type Definition struct {
	Slug       string      `json:"slug"`
	Title      string      `json:"title"`
	Intro      string      `json:"intro"`
	Archetypes []Archetype `json:"archetypes"`
	Questions  []Question  `json:"questions"`
}

// Question returns the question with the given ID.
func (d *Definition) Question(id string) (Question, bool) {
	for _, q := range d.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// Default returns the built-in working-style quiz.
func Default() *Definition {
	return &Definition{
		Slug:  "working-style",
		Title: "What's your working style?",
		Intro: "Four questions, one minute. Find the practices that fit how you already work.",
		Archetypes: []Archetype{
			{
				Name:    "Visionary",
				Summary: "You move on possibility and momentum. Your risk is scattering; your practice is sequencing.",
				Tags:    []string{"focus", "attention", "habits"},
			},
			{
				Name:    "Builder",
				Summary: "You move on structure and follow-through. Your risk is overload; your practice is the energy audit.",
				Tags:    []string{"energy", "burnout", "habits"},
			},
			{
				Name:    "Connector",
				Summary: "You move on people and trust. Your risk is over-commitment; your practice is the graceful no.",
				Tags:    []string{"boundaries", "communication", "teams"},
			},
			{
				Name:    "Anchor",
				Summary: "You move on steadiness and care. Your risk is absorbing everyone's stress; your practice is the reset.",
				Tags:    []string{"stress", "breathing", "resilience"},
			},
		},
		Questions: []Question{
			{
				ID:     "q1",
				Prompt: "A new project lands on your desk. Your first instinct is to",
				Options: []Option{
					{ID: "a", Label: "sketch where it could go in six months",
						Weights: map[string]int{"Visionary": 2}},
					{ID: "b", Label: "break it into a week-by-week plan",
						Weights: map[string]int{"Builder": 2}},
					{ID: "c", Label: "figure out who needs to be in the room",
						Weights: map[string]int{"Connector": 2}},
					{ID: "d", Label: "ask what it displaces before saying yes",
						Weights: map[string]int{"Anchor": 2}},
				},
			},
			{
				ID:     "q2",
				Prompt: "Your energy drains fastest when",
				Options: []Option{
					{ID: "a", Label: "the work turns repetitive",
						Weights: map[string]int{"Visionary": 2, "Connector": 1}},
					{ID: "b", Label: "priorities change mid-stream",
						Weights: map[string]int{"Builder": 2, "Anchor": 1}},
					{ID: "c", Label: "you work alone for days",
						Weights: map[string]int{"Connector": 2}},
					{ID: "d", Label: "the pace never lets up",
						Weights: map[string]int{"Anchor": 2, "Builder": 1}},
				},
			},
			{
				ID:     "q3",
				Prompt: "Colleagues come to you when they need",
				Options: []Option{
					{ID: "a", Label: "a fresh angle on a stuck problem",
						Weights: map[string]int{"Visionary": 2}},
					{ID: "b", Label: "something shipped on time",
						Weights: map[string]int{"Builder": 2}},
					{ID: "c", Label: "an introduction or a sounding board",
						Weights: map[string]int{"Connector": 2}},
					{ID: "d", Label: "calm in a tense week",
						Weights: map[string]int{"Anchor": 2}},
				},
			},
			{
				ID:     "q4",
				Prompt: "The habit you most want to build this quarter is",
				Options: []Option{
					{ID: "a", Label: "finishing what I start",
						Weights: map[string]int{"Builder": 1, "Visionary": 1}},
					{ID: "b", Label: "protecting deep work time",
						Weights: map[string]int{"Visionary": 1, "Anchor": 1}},
					{ID: "c", Label: "saying no without guilt",
						Weights: map[string]int{"Connector": 1, "Anchor": 1}},
					{ID: "d", Label: "ending the day with energy left",
						Weights: map[string]int{"Anchor": 1, "Builder": 1}},
				},
			},
		},
	}
}
