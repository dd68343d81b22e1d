package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"ui_mapping/domain/entities"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

const maxAlternativeNames = 5

// OpenAIEnricher proposes canonical identifiers and human-phrased
// synonyms for captured elements. Strictly optional: capture works
// without it, just with rule-derived identifiers only.
type OpenAIEnricher struct {
	client *openai.Client
	model  string
	logger *logrus.Logger
}

// NewOpenAIEnricher - creates an enrichment client from OPENAI_API_KEY
// and OPENAI_MODEL
func NewOpenAIEnricher(logger *logrus.Logger) (*OpenAIEnricher, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &OpenAIEnricher{
		client: openai.NewClient(apiKey),
		model:  model,
		logger: logger,
	}, nil
}

type enrichmentReply struct {
	Identifier       string   `json:"identifier"`
	AlternativeNames []string `json:"alternative_names"`
}

// Enrich - asks the model for a canonical snake_case identifier and up to
// five synonyms, best first
func (e *OpenAIEnricher) Enrich(ctx context.Context, element entities.RawElement) (string, []string, error) {
	prompt := buildEnrichmentPrompt(element)

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.model,
		Temperature: 0.2,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "You name UI elements for test automation. " +
					"Answer with a single JSON object, no prose.",
			},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", nil, fmt.Errorf("enrichment request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil, fmt.Errorf("enrichment returned no choices")
	}

	reply, err := parseEnrichmentReply(resp.Choices[0].Message.Content)
	if err != nil {
		return "", nil, err
	}

	names := reply.AlternativeNames
	if len(names) > maxAlternativeNames {
		names = names[:maxAlternativeNames]
	}

	e.logger.WithFields(logrus.Fields{
		"identifier": reply.Identifier,
		"names":      len(names),
	}).Debug("Enriched element")

	return reply.Identifier, names, nil
}

// buildEnrichmentPrompt - describes the element and the expected reply shape
func buildEnrichmentPrompt(element entities.RawElement) string {
	var attrs []string
	for k, v := range element.Attributes {
		attrs = append(attrs, fmt.Sprintf("%s=%q", k, v))
	}

	return fmt.Sprintf(`A web page element was captured for test automation:

Tag: %s
Attributes: %s
Visible text: %q
Current identifier: %s

Propose a better snake_case identifier in the form context_type_description
(keep the context prefix of the current identifier) and up to %d natural
language names a tester might call this element, most likely first.

Reply with JSON: {"identifier": "...", "alternative_names": ["...", "..."]}`,
		element.TagName, strings.Join(attrs, ", "), element.Text,
		element.Identifier, maxAlternativeNames)
}

// parseEnrichmentReply - parses the model reply, tolerating markdown fences
func parseEnrichmentReply(content string) (enrichmentReply, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// some models wrap the object in explanation anyway, cut to the braces
	if start := strings.Index(content, "{"); start >= 0 {
		if end := strings.LastIndex(content, "}"); end > start {
			content = content[start : end+1]
		}
	}

	var reply enrichmentReply
	if err := json.Unmarshal([]byte(content), &reply); err != nil {
		return enrichmentReply{}, fmt.Errorf("failed to parse enrichment reply: %w", err)
	}
	if reply.Identifier == "" {
		return enrichmentReply{}, fmt.Errorf("enrichment reply has no identifier")
	}
	return reply, nil
}
