// Package llm is the uniform gateway over the hosted text-generation
// providers. It speaks each provider's own wire dialect, makes exactly one
// attempt per call, and signals entity.ErrLLMDisabled when no provider is
// configured so callers can switch to the rule-based path.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dailysync/standup-backend/internal/config"
	"github.com/dailysync/standup-backend/internal/entity"
	"github.com/dailysync/standup-backend/internal/integration/common"
	pkghttp "github.com/dailysync/standup-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Default models per provider, used when the org policy names none.
const (
	defaultOpenAIModel      = "gpt-3.5-turbo"
	defaultOpenRouterModel  = "anthropic/claude-3-haiku"
	defaultHuggingFaceModel = "mistralai/Mistral-7B-Instruct-v0.2"
)

// Gateway dispatches generation requests over the closed provider set. The
// API key arrives with each call (it is org-level policy, not service
// config), so chat clients are assembled per request on shared HTTP clients.
type Gateway struct {
	cfg              config.LLMGatewayConfig
	openAIClient     *http.Client
	openRouterClient *http.Client
	hf               *pkghttp.Connector
	logger           *zap.Logger
}

func NewGateway(cfg config.LLMGatewayConfig, logger *zap.Logger) *Gateway {
	return &Gateway{
		cfg:          cfg,
		openAIClient: common.NewBaseClient(cfg.HTTPClientConfig),
		openRouterClient: common.NewBaseClient(cfg.HTTPClientConfig,
			// OpenRouter requires the calling app to identify itself.
			pkghttp.WithStaticHeader("HTTP-Referer", cfg.AppReferer),
		),
		hf:     common.NewBaseConnector(cfg.HuggingFaceBaseURL, cfg.HTTPClientConfig, logger),
		logger: logger,
	}
}

// Generate runs one prompt against the configured provider. It fails fast
// with entity.ErrLLMDisabled when the config is rule-based or has no API key;
// any other error carries the provider's own message. No retries.
func (g *Gateway) Generate(ctx context.Context, cfg entity.LLMConfig, req entity.LLMRequest) (string, error) {
	if !cfg.Enabled() {
		return "", entity.ErrLLMDisabled
	}
	req = req.WithDefaults()

	ctxzap.Debug(ctx, "calling LLM provider",
		zap.String("provider", string(cfg.Provider)),
		zap.String("model", cfg.Model),
		zap.Int("max_tokens", req.MaxTokens),
	)

	switch cfg.Provider {
	case entity.LLMProviderOpenAI:
		return g.chatCompletion(ctx, g.openAIClient, g.cfg.OpenAIBaseURL, defaultOpenAIModel, cfg, req)
	case entity.LLMProviderOpenRouter:
		return g.chatCompletion(ctx, g.openRouterClient, g.cfg.OpenRouterBaseURL, defaultOpenRouterModel, cfg, req)
	case entity.LLMProviderHuggingFace:
		return g.generateHuggingFace(ctx, cfg, req)
	default:
		return "", fmt.Errorf("%w: %s", entity.ErrUnknownProvider, cfg.Provider)
	}
}

// chatCompletion covers the OpenAI-compatible chat-completions dialect used
// by both OpenAI and OpenRouter.
func (g *Gateway) chatCompletion(
	ctx context.Context,
	httpClient *http.Client,
	baseURL, defaultModel string,
	cfg entity.LLMConfig,
	req entity.LLMRequest,
) (string, error) {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = baseURL
	clientCfg.HTTPClient = httpClient
	client := openai.NewClientWithConfig(clientCfg)

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	var messages []openai.ChatCompletionMessage
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%s chat completion: %w", cfg.Provider, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s chat completion: empty choices", cfg.Provider)
	}

	return resp.Choices[0].Message.Content, nil
}

type huggingFaceRequest struct {
	Inputs     string                `json:"inputs"`
	Parameters huggingFaceParameters `json:"parameters"`
}

type huggingFaceParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float32 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

type huggingFaceGenerated struct {
	GeneratedText string `json:"generated_text"`
}

// generateHuggingFace speaks the single-prompt inference API: the system
// prompt is concatenated in front of the user prompt, and the response is
// either an array of generations or a single object.
func (g *Gateway) generateHuggingFace(ctx context.Context, cfg entity.LLMConfig, req entity.LLMRequest) (string, error) {
	model := cfg.Model
	if model == "" {
		model = defaultHuggingFaceModel
	}

	fullPrompt := req.Prompt
	if req.SystemPrompt != "" {
		fullPrompt = req.SystemPrompt + "\n\n" + req.Prompt
	}

	body := huggingFaceRequest{
		Inputs: fullPrompt,
		Parameters: huggingFaceParameters{
			MaxNewTokens:   req.MaxTokens,
			Temperature:    req.Temperature,
			ReturnFullText: false,
		},
	}

	var raw json.RawMessage
	err := g.hf.DoRequest(ctx, http.MethodPost, "/models/"+model, body, &raw,
		pkghttp.WithHeader("Authorization", "Bearer "+cfg.APIKey),
	)
	if err != nil {
		return "", fmt.Errorf("hugging face inference: %w", err)
	}

	var generations []huggingFaceGenerated
	if err := json.Unmarshal(raw, &generations); err == nil && len(generations) > 0 && generations[0].GeneratedText != "" {
		return generations[0].GeneratedText, nil
	}

	var single huggingFaceGenerated
	if err := json.Unmarshal(raw, &single); err == nil && single.GeneratedText != "" {
		return single.GeneratedText, nil
	}

	return "", errors.New("unexpected response format from Hugging Face")
}
