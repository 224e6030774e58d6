package service

import (
	"context"
	"encoding/json"
	"errors"
	"slices"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/messaging-service/pkg/util"
)

const (
	onboardingKeyPrefix = "onboarding:"
	onboardingSteps     = 5
)

// OnboardingState tracks a tenant's setup progress. Steps are 1-based.
type OnboardingState struct {
	CurrentStep    int   `json:"current_step"`
	CompletedSteps []int `json:"completed_steps"`
	TotalSteps     int   `json:"total_steps"`
	Completed      bool  `json:"completed"`
}

// OnboardingService keeps per-tenant setup progress in Redis. The state is a
// UI convenience; losing it only restarts the wizard.
type OnboardingService struct {
	client *redis.Client
}

// NewOnboardingService builds the service.
func NewOnboardingService(client *redis.Client) *OnboardingService {
	return &OnboardingService{client: client}
}

// State returns the tenant's progress, starting fresh when none is stored.
func (s *OnboardingService) State(ctx context.Context, tenantID string) (*OnboardingState, error) {
	raw, err := s.client.Get(ctx, onboardingKeyPrefix+tenantID).Result()
	if errors.Is(err, redis.Nil) {
		return newOnboardingState(), nil
	}
	if err != nil {
		return nil, util.MapError(err)
	}

	var state OnboardingState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return newOnboardingState(), nil
	}
	return &state, nil
}

// CompleteStep marks a step done and advances the current step past the
// highest completed one.
func (s *OnboardingService) CompleteStep(ctx context.Context, tenantID string, step int) (*OnboardingState, error) {
	if step < 1 || step > onboardingSteps {
		return nil, util.NewValidationError("onboarding.invalid_step", "step out of range", nil)
	}

	state, err := s.State(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if !slices.Contains(state.CompletedSteps, step) {
		state.CompletedSteps = append(state.CompletedSteps, step)
		slices.Sort(state.CompletedSteps)
	}
	state.Completed = len(state.CompletedSteps) == onboardingSteps
	state.CurrentStep = nextOnboardingStep(state.CompletedSteps)

	if err := s.save(ctx, tenantID, state); err != nil {
		return nil, err
	}
	return state, nil
}

// Reset discards the tenant's progress.
func (s *OnboardingService) Reset(ctx context.Context, tenantID string) (*OnboardingState, error) {
	if err := s.client.Del(ctx, onboardingKeyPrefix+tenantID).Err(); err != nil {
		return nil, util.MapError(err)
	}
	return newOnboardingState(), nil
}

func (s *OnboardingService) save(ctx context.Context, tenantID string, state *OnboardingState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return util.NewInternalError(err)
	}
	if err := s.client.Set(ctx, onboardingKeyPrefix+tenantID, raw, 0).Err(); err != nil {
		return util.MapError(err)
	}
	return nil
}

func newOnboardingState() *OnboardingState {
	return &OnboardingState{
		CurrentStep:    1,
		CompletedSteps: []int{},
		TotalSteps:     onboardingSteps,
	}
}

func nextOnboardingStep(completed []int) int {
	for step := 1; step <= onboardingSteps; step++ {
		if !slices.Contains(completed, step) {
			return step
		}
	}
	return onboardingSteps
}
