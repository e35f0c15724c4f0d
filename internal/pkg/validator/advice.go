package validator

import (
	"fmt"
	"strings"
	"time"

	"github.com/dailysync/standup-backend/internal/entity"
)

// Validator checks incoming advisory requests before they reach the use case.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateMentorRequest validates MentorAdviceRequest
func (v *Validator) ValidateMentorRequest(req *entity.MentorAdviceRequest) error {
	return v.validateDate(req.Date)
}

// ValidateDigestRequest validates ManagerDigestRequest
func (v *Validator) ValidateDigestRequest(req *entity.ManagerDigestRequest) error {
	return v.validateDate(req.Date)
}

// ValidateStructureTaskRequest validates StructureTaskRequest
func (v *Validator) ValidateStructureTaskRequest(req *entity.StructureTaskRequest) error {
	if strings.TrimSpace(req.RawText) == "" {
		return fmt.Errorf("%w: rawText", entity.ErrMissingField)
	}
	return nil
}

// ValidateTestLLMRequest validates TestLLMRequest
func (v *Validator) ValidateTestLLMRequest(req *entity.TestLLMRequest) error {
	return v.validateProvider(req.Provider)
}

// ValidateAISettingsRequest validates UpdateAISettingsRequest
func (v *Validator) ValidateAISettingsRequest(req *entity.UpdateAISettingsRequest) error {
	return v.validateProvider(req.Provider)
}

func (v *Validator) validateDate(date string) error {
	if date == "" {
		return nil
	}
	if _, err := time.Parse(entity.DateLayout, date); err != nil {
		return fmt.Errorf("%w: date must be %s", entity.ErrInvalidFormat, entity.DateLayout)
	}
	return nil
}

func (v *Validator) validateProvider(provider string) error {
	if provider == "" {
		return fmt.Errorf("%w: provider", entity.ErrMissingField)
	}
	if !entity.LLMProvider(provider).Valid() {
		return fmt.Errorf("%w: %q", entity.ErrUnknownProvider, provider)
	}
	return nil
}
