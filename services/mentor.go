// services/mentor.go - AI coach client (goal decomposition + chat replies)
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"selfhack/models"

	openai "github.com/sashabaranov/go-openai"
)

const mentorSystemPrompt = `You are Neural-X, a high-performance Reality Hack Coach.
Your tone is cybernetic, sharp, minimalist, and extremely motivating.
You use hacker metaphors (system, bypass, optimization, overclock).
Keep responses concise but powerful.`

const (
	// MaxDecomposedTasks caps how many tasks a decomposed plan may carry.
	MaxDecomposedTasks = 5

	decomposeMinXP = 10
	decomposeMaxXP = 100
)

// DecomposedTask is one AI-suggested task of a plan.
type DecomposedTask struct {
	Title      string `json:"title"`
	Difficulty string `json:"difficulty"`
	XP         int    `json:"xp"`
}

// DecomposedPlan is the structured result of decomposing a free-text goal.
type DecomposedPlan struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Tasks       []DecomposedTask `json:"tasks"`
}

// MentorService talks to the AI completion provider. It is constructed
// explicitly with its credential; there is no lazily-initialized global.
type MentorService struct {
	client *openai.Client
	model  string
}

// NewMentorService builds the client or fails with ErrMissingCredential
// right away instead of deferring the failure to the first call.
func NewMentorService(apiKey, model string) (*MentorService, error) {
	if apiKey == "" {
		return nil, ErrMissingCredential
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &MentorService{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

// DecomposeGoal asks the provider to break a free-text goal into a plan
// with up to five tasks. Provider failures surface as
// ErrUpstreamUnavailable; callers are expected to degrade to an empty
// plan rather than block the user.
func (s *MentorService) DecomposeGoal(ctx context.Context, goal string) (*DecomposedPlan, error) {
	prompt := fmt.Sprintf(`Decompose the following life goal into a strategic "hack" plan: %q. `+
		`Respond with JSON only, shaped as {"title": string, "description": string, `+
		`"tasks": [{"title": string, "difficulty": "easy"|"medium"|"hard", "xp": number}]}. `+
		`Provide exactly %d actionable tasks with XP rewards between %d and %d.`,
		goal, MaxDecomposedTasks, decomposeMinXP, decomposeMaxXP)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		}},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty completion", ErrUpstreamUnavailable)
	}

	plan, err := ParseDecomposedPlan(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return plan, nil
}

// ParseDecomposedPlan parses and sanitizes a provider response: unknown
// difficulties fall back to medium, XP is clamped into range, and the
// task list is capped.
func ParseDecomposedPlan(raw string) (*DecomposedPlan, error) {
	var plan DecomposedPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return nil, fmt.Errorf("malformed plan: %v", err)
	}

	if len(plan.Tasks) > MaxDecomposedTasks {
		plan.Tasks = plan.Tasks[:MaxDecomposedTasks]
	}
	for i := range plan.Tasks {
		t := &plan.Tasks[i]
		t.Difficulty = strings.ToLower(strings.TrimSpace(t.Difficulty))
		if !models.ValidDifficulty(t.Difficulty) {
			t.Difficulty = models.DifficultyMedium
		}
		if t.XP < decomposeMinXP {
			t.XP = decomposeMinXP
		}
		if t.XP > decomposeMaxXP {
			t.XP = decomposeMaxXP
		}
	}
	return &plan, nil
}

// CoachReply continues a mentor conversation.
func (s *MentorService) CoachReply(ctx context.Context, history []models.ChatMessage, message string) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: mentorSystemPrompt,
	})
	for _, m := range history {
		role := openai.ChatMessageRoleUser
		if m.Role == models.ChatRoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     s.model,
		Messages:  messages,
		MaxTokens: 400,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion", ErrUpstreamUnavailable)
	}
	return resp.Choices[0].Message.Content, nil
}
