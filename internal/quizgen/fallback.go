package quizgen

import (
	"context"
	"fmt"
	"strings"

	"github.com/quizcraft/quizcraft-backend/internal/quiz"
)

// Fallback is the deterministic offline strategy: known topics hit a
// canned bank, anything else gets the generic template. Pure, no I/O.
type Fallback struct{}

func NewFallback() Fallback { return Fallback{} }

func (Fallback) Generate(_ context.Context, topic string) (QuestionSet, error) {
	t := strings.ToLower(topic)
	switch {
	case strings.Contains(t, "javascript") || strings.Contains(t, "programming"):
		return javascriptBank(), nil
	case strings.Contains(t, "react"):
		return reactBank(), nil
	default:
		return genericBank(topic), nil
	}
}

func javascriptBank() QuestionSet {
	return QuestionSet{
		Questions: []quiz.Question{
			{ID: 1, Text: "What does 'DOM' stand for in web development?", Options: []string{
				"Document Object Model",
				"Data Object Management",
				"Dynamic Object Method",
				"Document Oriented Model",
			}},
			{ID: 2, Text: "Which method is used to add an element to the end of an array in JavaScript?", Options: []string{
				"push()", "append()", "add()", "insert()",
			}},
			{ID: 3, Text: "What is the correct way to declare a constant in JavaScript?", Options: []string{
				"const myVar = 5;", "constant myVar = 5;", "let myVar = 5;", "var myVar = 5;",
			}},
			{ID: 4, Text: "Which of these is NOT a JavaScript data type?", Options: []string{
				"float", "string", "boolean", "number",
			}},
			{ID: 5, Text: "What does the '===' operator do in JavaScript?", Options: []string{
				"Strict equality comparison", "Assignment", "Loose equality comparison", "Not equal comparison",
			}},
		},
		Answers: map[string]string{
			"1": "Document Object Model",
			"2": "push()",
			"3": "const myVar = 5;",
			"4": "float",
			"5": "Strict equality comparison",
		},
	}
}

func reactBank() QuestionSet {
	return QuestionSet{
		Questions: []quiz.Question{
			{ID: 1, Text: "What is JSX in React?", Options: []string{
				"JavaScript XML syntax extension", "Java Syntax Extension", "JSON XML", "JavaScript eXtended",
			}},
			{ID: 2, Text: "Which hook is used to manage state in functional components?", Options: []string{
				"useState", "useEffect", "useContext", "useReducer",
			}},
			{ID: 3, Text: "What is the virtual DOM?", Options: []string{
				"A JavaScript representation of the real DOM",
				"A new browser API",
				"A React component",
				"A CSS framework",
			}},
			{ID: 4, Text: "How do you pass data from parent to child component?", Options: []string{
				"Props", "State", "Context", "Refs",
			}},
			{ID: 5, Text: "What is the purpose of useEffect hook?", Options: []string{
				"Handle side effects", "Manage state", "Create components", "Style components",
			}},
		},
		Answers: map[string]string{
			"1": "JavaScript XML syntax extension",
			"2": "useState",
			"3": "A JavaScript representation of the real DOM",
			"4": "Props",
			"5": "Handle side effects",
		},
	}
}

// genericBank interpolates the topic into fixed templates. The first
// option is the correct one by construction.
func genericBank(topic string) QuestionSet {
	return QuestionSet{
		Questions: []quiz.Question{
			{ID: 1, Text: fmt.Sprintf("What is a fundamental concept in %s?", topic), Options: []string{
				fmt.Sprintf("Basic principles of %s", topic),
				"Advanced theories only",
				"Unrelated concepts",
				"Historical background only",
			}},
			{ID: 2, Text: fmt.Sprintf("Which approach is most effective when learning %s?", topic), Options: []string{
				"Start with fundamentals and build up",
				"Jump to advanced topics",
				"Memorize without understanding",
				"Avoid practical application",
			}},
			{ID: 3, Text: fmt.Sprintf("What makes %s important in its field?", topic), Options: []string{
				"Its practical applications and relevance",
				"Its complexity alone",
				"Its historical significance only",
				"Its theoretical nature only",
			}},
			{ID: 4, Text: fmt.Sprintf("When studying %s, what should be prioritized?", topic), Options: []string{
				"Understanding core concepts",
				"Memorizing definitions",
				"Learning advanced topics first",
				"Focusing on exceptions only",
			}},
			{ID: 5, Text: fmt.Sprintf("What is the best way to apply knowledge of %s?", topic), Options: []string{
				"Through practical exercises and real-world examples",
				"Only through theoretical study",
				"By avoiding hands-on practice",
				"Through memorization alone",
			}},
		},
		Answers: map[string]string{
			"1": fmt.Sprintf("Basic principles of %s", topic),
			"2": "Start with fundamentals and build up",
			"3": "Its practical applications and relevance",
			"4": "Understanding core concepts",
			"5": "Through practical exercises and real-world examples",
		},
	}
}
