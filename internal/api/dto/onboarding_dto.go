package dto

// OnboardingStepRequest payload marking a wizard step complete.
type OnboardingStepRequest struct {
	Step int `json:"step"`
}
