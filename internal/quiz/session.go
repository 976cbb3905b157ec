package quiz

import (
	"fmt"

	"github.com/elevara-labs/resourcehub/internal/leads"
)

// Session accumulates one visitor's answers against a definition. It is
// not safe for concurrent use; each visitor gets their own.
type Session struct {
	def     *Definition
	answers map[string]string // question ID -> option ID
}

// NewSession starts an empty session for the definition.
func NewSession(def *Definition) *Session {
	return &Session{
		def:     def,
		answers: make(map[string]string, len(def.Questions)),
	}
}

// Answer records the option chosen for a question. Answering the same
// question again replaces the earlier choice.
func (s *Session) Answer(questionID, optionID string) error {
	q, ok := s.def.Question(questionID)
	if !ok {
		return fmt.Errorf("unknown question %q", questionID)
	}
	for _, o := range q.Options {
		if o.ID == optionID {
			s.answers[questionID] = optionID
			return nil
		}
	}
	return fmt.Errorf("question %q has no option %q", questionID, optionID)
}

// Complete reports whether every question has an answer.
func (s *Session) Complete() bool {
	return len(s.answers) == len(s.def.Questions)
}

// Result holds a scored session.
type Result struct {
	Archetype Archetype      `json:"archetype"`
	Scores    map[string]int `json:"scores"`
}

// Result scores the session. The archetype with the highest point total
// wins; ties go to the archetype listed first in the definition.
func (s *Session) Result() (Result, error) {
	if !s.Complete() {
		return Result{}, fmt.Errorf("quiz incomplete: %d of %d questions answered",
			len(s.answers), len(s.def.Questions))
	}
	return score(s.def, s.answers)
}

// Score scores a raw answer map without building a Session, for callers
// that receive all answers at once. The map must cover every question.
func Score(def *Definition, answers map[string]string) (Result, error) {
	s := NewSession(def)
	for qid, oid := range answers {
		if err := s.Answer(qid, oid); err != nil {
			return Result{}, err
		}
	}
	return s.Result()
}

func score(def *Definition, answers map[string]string) (Result, error) {
	scores := make(map[string]int, len(def.Archetypes))
	for _, a := range def.Archetypes {
		scores[a.Name] = 0
	}

	for _, q := range def.Questions {
		oid := answers[q.ID]
		for _, o := range q.Options {
			if o.ID != oid {
				continue
			}
			for name, pts := range o.Weights {
				if _, known := scores[name]; !known {
					return Result{}, fmt.Errorf("option %s/%s weights unknown archetype %q",
						q.ID, o.ID, name)
				}
				scores[name] += pts
			}
			break
		}
	}

	best := def.Archetypes[0]
	for _, a := range def.Archetypes[1:] {
		if scores[a.Name] > scores[best.Name] {
			best = a
		}
	}
	return Result{Archetype: best, Scores: scores}, nil
}

// Lead converts a completed session into a lead carrying the visitor's
// answers and winning archetype.
func (s *Session) Lead(email, name string) (*leads.Lead, error) {
	res, err := s.Result()
	if err != nil {
		return nil, err
	}

	answers := make(map[string]string, len(s.answers))
	for k, v := range s.answers {
		answers[k] = v
	}
	return &leads.Lead{
		Email:     email,
		Name:      name,
		Source:    "quiz:" + s.def.Slug,
		Archetype: res.Archetype.Name,
		Answers:   answers,
	}, nil
}
