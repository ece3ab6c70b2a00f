package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/avigny/taskforge/core/extract"
	"github.com/avigny/taskforge/core/model"
	"github.com/avigny/taskforge/infra/logger"
)

// Config describes an OpenAI-compatible completion endpoint. Credentials are
// passed explicitly per client; nothing is persisted.
type Config struct {
	Provider string `json:"provider" yaml:"provider"` // "openai" or "custom"
	APIKey   string `json:"api_key" yaml:"api_key"`
	BaseURL  string `json:"base_url" yaml:"base_url"`
	Model    string `json:"model" yaml:"model"`
}

// Validate checks the fields required to reach the endpoint.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("ai: api_key is required")
	}
	if c.Model == "" {
		return errors.New("ai: model is required")
	}
	return nil
}

// OpenAISource extracts candidate tasks from a requirements document via an
// OpenAI-compatible chat completion API.
type OpenAISource struct {
	client *openai.Client
	model  string
	log    logger.Logger
}

var _ extract.TaskSource = (*OpenAISource)(nil)

// New creates an OpenAISource from the configuration.
func New(cfg Config) (*OpenAISource, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAISource{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		log:    logger.New("ai-source"),
	}, nil
}

const extractSystemPrompt = "You are a technical project planner who breaks requirements documents into small, estimable work items."

// ExtractTasks asks the model to break the document into 1-4h work items for
// the given role and parses the returned JSON array.
func (s *OpenAISource) ExtractTasks(ctx context.Context, prd string, role model.Role) ([]model.CandidateTask, error) {
	prompt := fmt.Sprintf(`Analyze the following requirements document and break out the tasks relevant to the %[1]s role.

Document:
%[2]s

Rules:
1. Only include tasks within the %[1]s role's scope.
2. Each task should take between 1 and 4 hours.
3. Use "verb + object" task titles.
4. Provide a clear description and an estimate in hours for each task.
5. Order tasks by sensible priority.

Return a JSON array in exactly this shape, with no other text:
[
  {
    "title": "task title",
    "description": "task description",
    "estimatedHours": 2,
    "category": "UI design | API development | Database | Testing | Other",
    "priority": 1
  }
]`, role, prd)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: extractSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("ai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("ai completion: empty response")
	}

	content := cleanJSONResponse(resp.Choices[0].Message.Content)
	var tasks []model.CandidateTask
	if err := json.Unmarshal([]byte(content), &tasks); err != nil {
		s.log.Errorf("unparsable task list: %v", err)
		return nil, fmt.Errorf("parse task list: %w", err)
	}
	s.log.Infof("extracted %d candidate tasks for role %s", len(tasks), role)
	return tasks, nil
}

// Verify performs a minimal round trip to confirm the endpoint and
// credentials work.
func (s *OpenAISource) Verify(ctx context.Context) error {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: "Reply with the single word: ok"},
		},
		MaxTokens: 5,
	})
	if err != nil {
		return fmt.Errorf("ai verify: %w", err)
	}
	if len(resp.Choices) == 0 {
		return errors.New("ai verify: empty response")
	}
	return nil
}

// cleanJSONResponse strips markdown code fences some models wrap around JSON.
func cleanJSONResponse(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if nl := strings.Index(s, "\n"); nl != -1 {
			s = s[nl+1:]
		}
		if strings.HasSuffix(s, "```") {
			s = s[:len(s)-3]
		}
		s = strings.TrimSpace(s)
	}
	return s
}
