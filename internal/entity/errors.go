package entity

import "errors"

// Domain errors
var (
	// ErrLLMDisabled is the handoff marker from the LLM path to the
	// deterministic fallback. It is control flow, not a failure, and must
	// never reach the HTTP boundary.
	ErrLLMDisabled = errors.New("LLM_DISABLED")

	// ErrLLMParse means no JSON object could be recovered from an LLM
	// response. Callers treat it exactly like an LLM transport failure.
	ErrLLMParse = errors.New("could not parse JSON from LLM response")

	ErrUnknownProvider = errors.New("unknown LLM provider")

	// Configuration errors
	ErrFeatureDisabled = errors.New("feature is not enabled, complete setup in Settings")
	ErrNoPrincipal     = errors.New("no authenticated user")

	// Lookup errors
	ErrUserNotFound  = errors.New("user not found")
	ErrTeamNotFound  = errors.New("team not found")
	ErrOrgNotFound   = errors.New("organization not found")
	ErrSetupNotFound = errors.New("organization setup not found")

	// Validation errors
	ErrMissingField  = errors.New("required field is missing")
	ErrInvalidFormat = errors.New("invalid format")
)
