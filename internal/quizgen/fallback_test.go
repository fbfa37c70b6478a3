package quizgen

import (
	"context"
	"reflect"
	"strconv"
	"testing"
)

func TestFallbackShape(t *testing.T) {
	fb := NewFallback()
	for _, topic := range []string{"javascript", "React Hooks", "quantum physics", ""} {
		set, err := fb.Generate(context.Background(), topic)
		if err != nil {
			t.Fatalf("topic %q: unexpected error: %v", topic, err)
		}
		if len(set.Questions) != 5 {
			t.Fatalf("topic %q: got %d questions, want 5", topic, len(set.Questions))
		}
		if len(set.Answers) != 5 {
			t.Fatalf("topic %q: got %d answers, want 5", topic, len(set.Answers))
		}
		for i, q := range set.Questions {
			if q.ID != i+1 {
				t.Errorf("topic %q: question %d has id %d", topic, i, q.ID)
			}
			if len(q.Options) != 4 {
				t.Errorf("topic %q: question %d has %d options", topic, q.ID, len(q.Options))
			}
			key, ok := set.Answers[strconv.Itoa(q.ID)]
			if !ok {
				t.Fatalf("topic %q: no answer for question %d", topic, q.ID)
			}
			found := false
			for _, opt := range q.Options {
				if opt == key {
					found = true
				}
			}
			if !found {
				t.Errorf("topic %q: answer %q for question %d is not among options", topic, key, q.ID)
			}
		}
	}
}

func TestFallbackDeterministic(t *testing.T) {
	fb := NewFallback()
	a, _ := fb.Generate(context.Background(), "JavaScript")
	b, _ := fb.Generate(context.Background(), "javascript basics")
	if !reflect.DeepEqual(a, b) {
		t.Fatal("javascript bucket should match case-insensitively and deterministically")
	}
}

func TestFallbackJavaScriptBucket(t *testing.T) {
	fb := NewFallback()
	set, _ := fb.Generate(context.Background(), "javascript")
	if got := set.Questions[0].Text; got != "What does 'DOM' stand for in web development?" {
		t.Fatalf("question 1 = %q", got)
	}
	if got := set.Answers["1"]; got != "Document Object Model" {
		t.Fatalf("answer 1 = %q", got)
	}
	if got := set.Answers["3"]; got != "const myVar = 5;" {
		t.Fatalf("answer 3 = %q", got)
	}
}

func TestFallbackReactBucket(t *testing.T) {
	fb := NewFallback()
	set, _ := fb.Generate(context.Background(), "Advanced React")
	if got := set.Answers["2"]; got != "useState" {
		t.Fatalf("answer 2 = %q", got)
	}
}

func TestFallbackGenericInterpolatesTopic(t *testing.T) {
	fb := NewFallback()
	set, _ := fb.Generate(context.Background(), "astronomy")
	if got := set.Answers["1"]; got != "Basic principles of astronomy" {
		t.Fatalf("answer 1 = %q", got)
	}
	// the correct option is always first in the generic template
	for i, q := range set.Questions {
		if q.Options[0] != set.Answers[strconv.Itoa(i+1)] {
			t.Errorf("question %d: first option %q != answer %q", i+1, q.Options[0], set.Answers[strconv.Itoa(i+1)])
		}
	}
}
