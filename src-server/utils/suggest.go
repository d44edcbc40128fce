package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SuggestClient asks an LLM for up to three event suggestions for a
// free time slot. The caller owns the fallback policy; any transport or
// parse failure here just surfaces as an error.
type SuggestClient struct {
	req *http.Request
}

func NewSuggestClient(apiKey string) (*SuggestClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("NewSuggestClient: api key is blank")
	}
	req, err := http.NewRequest("POST", "https://api.groq.com/openai/v1/chat/completions", nil)
	if err != nil {
		return nil, fmt.Errorf("NewSuggestClient: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)
	return &SuggestClient{req: req}, nil
}

// SuggestSlot describes the free slot the user clicked.
type SuggestSlot struct {
	Date           string `json:"date"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	Location       string `json:"location"`
	CustomLocation string `json:"customLocation,omitempty"`
}

// EventSuggestion is one proposal; Category must be one of the event
// color names.
type EventSuggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Category    string `json:"category"`
}

const suggestSystemPrompt = `You suggest calendar events. Given a date, a time range and a location, reply with a JSON array of at most 3 objects, each with the keys "title", "description", "location" and "category". The category must be one of: blue, orange, violet, rose, emerald. Reply with the JSON array only, no prose.`

func (s *SuggestClient) Request(slot SuggestSlot) ([]EventSuggestion, error) {
	slotJson, err := json.Marshal(slot)
	if err != nil {
		return nil, fmt.Errorf("(*SuggestClient).Request: %w", err)
	}

	reqBody, err := json.Marshal(map[string]interface{}{
		"model": "llama-3.1-8b-instant",
		"messages": []map[string]string{
			{"role": "system", "content": suggestSystemPrompt},
			{"role": "user", "content": string(slotJson)},
		},
		"temperature": 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("(*SuggestClient).Request: %w", err)
	}

	req := s.req.Clone(s.req.Context())
	req.Body = io.NopCloser(bytes.NewReader(reqBody))
	req.ContentLength = int64(len(reqBody))

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("(*SuggestClient).Request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("(*SuggestClient).Request: unexpected status %d: %s", resp.StatusCode, body)
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, fmt.Errorf("(*SuggestClient).Request: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("(*SuggestClient).Request: empty completion")
	}

	suggestions := make([]EventSuggestion, 0, 3)
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &suggestions); err != nil {
		return nil, fmt.Errorf("(*SuggestClient).Request: can't parse suggestions: %w", err)
	}
	if len(suggestions) > 3 {
		suggestions = suggestions[:3]
	}
	return suggestions, nil
}
