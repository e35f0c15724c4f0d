package entity

// MentorAdviceRequest asks for advice for the authenticated employee. Date is
// optional and defaults to today.
type MentorAdviceRequest struct {
	Date string `json:"date,omitempty"`
}

// ManagerDigestRequest selects the group to analyze. TeamID takes precedence
// over DeptID; with neither set the caller's own team is used.
type ManagerDigestRequest struct {
	Date   string `json:"date,omitempty"`
	TeamID string `json:"teamId,omitempty"`
	DeptID string `json:"deptId,omitempty"`
}

type StructureTaskRequest struct {
	RawText string `json:"rawText"`
}

// TestLLMRequest carries candidate credentials to verify. Nothing is stored.
type TestLLMRequest struct {
	Provider string `json:"provider"`
	APIKey   string `json:"apiKey,omitempty"`
	Model    string `json:"model,omitempty"`
}

type TestLLMResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
}

// UpdateAISettingsRequest replaces the organization's LLM policy.
type UpdateAISettingsRequest struct {
	Provider string `json:"provider"`
	APIKey   string `json:"apiKey,omitempty"`
	Model    string `json:"model,omitempty"`
}

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
