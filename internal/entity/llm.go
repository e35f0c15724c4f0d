package entity

// LLMProvider is the closed set of text-generation backends. RuleBased means
// no LLM is configured and every AI feature runs on the deterministic path.
type LLMProvider string

const (
	LLMProviderOpenAI      LLMProvider = "openai"
	LLMProviderOpenRouter  LLMProvider = "openrouter"
	LLMProviderHuggingFace LLMProvider = "huggingface"
	LLMProviderRuleBased   LLMProvider = "rule-based"
)

func (p LLMProvider) Valid() bool {
	switch p {
	case LLMProviderOpenAI, LLMProviderOpenRouter, LLMProviderHuggingFace, LLMProviderRuleBased:
		return true
	default:
		return false
	}
}

// LLMConfig is the org-level provider policy, resolved once per request and
// immutable for the duration of one AI-feature invocation.
type LLMConfig struct {
	Provider LLMProvider `json:"provider"`
	APIKey   string      `json:"apiKey,omitempty"`
	Model    string      `json:"model,omitempty"`
}

// Enabled reports whether the LLM path may be attempted at all. A missing key
// behaves exactly like the rule-based provider.
func (c LLMConfig) Enabled() bool {
	return c.Provider != LLMProviderRuleBased && c.Provider != "" && c.APIKey != ""
}

const (
	DefaultMaxTokens   = 500
	DefaultTemperature = 0.7
)

// LLMRequest is a single prompt for the gateway. Zero MaxTokens/Temperature
// are replaced with the defaults above.
type LLMRequest struct {
	Prompt       string
	SystemPrompt string
	MaxTokens    int
	Temperature  float32
}

// WithDefaults returns a copy with unset limits filled in.
func (r LLMRequest) WithDefaults() LLMRequest {
	if r.MaxTokens <= 0 {
		r.MaxTokens = DefaultMaxTokens
	}
	if r.Temperature <= 0 {
		r.Temperature = DefaultTemperature
	}
	return r
}
