package quizgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/quizcraft/quizcraft-backend/internal/quiz"
)

// OpenAIStrategy calls a chat-completions endpoint and validates the
// returned JSON into a QuestionSet. One attempt, bounded by Timeout;
// retries are the caller's non-concern because every failure falls
// back to the deterministic strategy.
type OpenAIStrategy struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration

	httpClient *http.Client
}

func NewOpenAIStrategy(baseURL, apiKey, model string, timeout time.Duration) *OpenAIStrategy {
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OpenAIStrategy{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		Model:      model,
		Timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Configured reports whether an API key is present.
func (s *OpenAIStrategy) Configured() bool { return s != nil && s.APIKey != "" }

const promptTemplate = `Generate a 5-question multiple-choice quiz about "%[1]s".

Requirements:
- Each question should have exactly 4 options (A, B, C, D)
- Questions should be educational and factual
- Difficulty should be intermediate level
- Cover different aspects of the topic
- Avoid overly obscure or trivial questions

Format your response as a JSON object with this exact structure:
{
  "questions": [
    {
      "id": 1,
      "text": "Question text here?",
      "options": ["Correct answer", "Wrong option 1", "Wrong option 2", "Wrong option 3"]
    }
  ],
  "answers": {
    "1": "Correct answer"
  }
}

Important:
- The correct answer should always be the first option in the options array
- Make sure all questions are related to "%[1]s"
- Ensure the JSON is valid and properly formatted`

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (s *OpenAIStrategy) Generate(ctx context.Context, topic string) (QuestionSet, error) {
	if !s.Configured() {
		return QuestionSet{}, ErrProviderUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	text, err := s.complete(ctx, fmt.Sprintf(promptTemplate, topic))
	if err != nil {
		return QuestionSet{}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	return parseQuizResponse(text)
}

func (s *OpenAIStrategy) complete(ctx context.Context, prompt string) (string, error) {
	body := chatRequest{
		Model:       s.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.7,
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/v1/chat/completions", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("openai http %d: %s", resp.StatusCode, raw)
	}
	var out chatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("openai decode error: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("openai response has no choices")
	}
	return out.Choices[0].Message.Content, nil
}

// parseQuizResponse extracts the first JSON object substring from the
// model output and validates it: exactly 5 questions, exactly 4
// options each, answers present. Question ids are reassigned to the
// 1-based position, overriding whatever the model supplied.
func parseQuizResponse(text string) (QuestionSet, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return QuestionSet{}, fmt.Errorf("%w: no JSON object in response", ErrMalformedResponse)
	}

	var payload struct {
		Questions []quiz.Question   `json:"questions"`
		Answers   map[string]string `json:"answers"`
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &payload); err != nil {
		return QuestionSet{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(payload.Questions) != 5 {
		return QuestionSet{}, fmt.Errorf("%w: expected 5 questions, got %d", ErrMalformedResponse, len(payload.Questions))
	}
	if payload.Answers == nil {
		return QuestionSet{}, fmt.Errorf("%w: missing answers", ErrMalformedResponse)
	}
	for i := range payload.Questions {
		q := &payload.Questions[i]
		if q.Text == "" || len(q.Options) != 4 {
			return QuestionSet{}, fmt.Errorf("%w: question %d is malformed", ErrMalformedResponse, i+1)
		}
		q.ID = i + 1
	}
	return QuestionSet{Questions: payload.Questions, Answers: payload.Answers}, nil
}
