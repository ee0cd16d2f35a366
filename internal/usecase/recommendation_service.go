package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/salesai/backend/internal/domain"
	"github.com/sirupsen/logrus"
)

// Recommendation modes
const (
	ModeLLM   = "llm"
	ModeLocal = "local"
)

// RecommendationServiceConfig holds configuration for the recommendation service
type RecommendationServiceConfig struct {
	Mode         string
	MaxSolutions int
}

// RecommendationService matches customer pain points to the solution catalog
type RecommendationService struct {
	completer    domain.Completer
	solutions    []domain.SystexSolution
	matcher      *SolutionMatcher
	mode         string
	maxSolutions int
	log          logrus.FieldLogger
}

// recommendationCompletion is the shape the model returns
type recommendationCompletion struct {
	Solutions []struct {
		ID                string   `json:"id"`
		Reason            string   `json:"reason"`
		MatchedPainPoints []string `json:"matchedPainPoints"`
	} `json:"solutions"`
}

// NewRecommendationService creates a new recommendation service
func NewRecommendationService(
	completer domain.Completer,
	solutions []domain.SystexSolution,
	matcher *SolutionMatcher,
	config RecommendationServiceConfig,
	log logrus.FieldLogger,
) *RecommendationService {
	mode := config.Mode
	if mode == "" {
		mode = ModeLLM
	}
	maxSolutions := config.MaxSolutions
	if maxSolutions <= 0 {
		maxSolutions = 5
	}

	return &RecommendationService{
		completer:    completer,
		solutions:    solutions,
		matcher:      matcher,
		mode:         mode,
		maxSolutions: maxSolutions,
		log:          log.WithField("component", "recommendation"),
	}
}

// RecommendSolutions returns the catalog solutions that address the pain
// points. The result is never nil.
func (s *RecommendationService) RecommendSolutions(
	ctx context.Context,
	painPoints []string,
) ([]domain.RecommendedSystexSolution, error) {
	cleaned := PreprocessPainPoints(painPoints)
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("%w: painPoints is required", domain.ErrInvalidRequest)
	}

	if s.mode == ModeLocal {
		return s.recommendLocally(ctx, cleaned)
	}
	return s.recommendWithModel(ctx, cleaned)
}

func (s *RecommendationService) recommendLocally(ctx context.Context, painPoints []string) ([]domain.RecommendedSystexSolution, error) {
	matches, err := s.matcher.Rank(ctx, painPoints, s.solutions)
	if err != nil {
		return nil, err
	}

	results := make([]domain.RecommendedSystexSolution, 0, len(matches))
	for _, m := range matches {
		results = append(results, domain.RecommendedSystexSolution{
			SystexSolution:    m.Solution,
			Reason:            localReason(m.MatchedPainPoints),
			MatchedPainPoints: m.MatchedPainPoints,
		})
	}

	s.log.WithField("count", len(results)).Info("solutions matched locally")
	return results, nil
}

func (s *RecommendationService) recommendWithModel(ctx context.Context, painPoints []string) ([]domain.RecommendedSystexSolution, error) {
	text, err := s.completer.Complete(ctx, domain.CompletionRequest{
		System: analystSystemPrompt,
		Prompt: buildRecommendationPrompt(painPoints, s.solutions),
		Schema: recommendationSchema,
	})
	if err != nil {
		s.log.WithError(err).Error("recommendation completion failed")
		return nil, err
	}

	var completion recommendationCompletion
	if err := decodeCompletion(text, &completion); err != nil {
		s.log.WithError(err).Warn("recommendation completion unusable")
		return nil, err
	}

	byID := make(map[string]domain.SystexSolution, len(s.solutions))
	for _, sol := range s.solutions {
		byID[sol.ID] = sol
	}

	seen := make(map[string]bool)
	results := make([]domain.RecommendedSystexSolution, 0, len(completion.Solutions))
	for _, picked := range completion.Solutions {
		sol, ok := byID[strings.TrimSpace(picked.ID)]
		if !ok {
			s.log.WithField("id", picked.ID).Warn("model picked unknown solution id")
			continue
		}
		if seen[sol.ID] {
			continue
		}
		seen[sol.ID] = true

		matched := PreprocessPainPoints(picked.MatchedPainPoints)
		if len(matched) == 0 {
			_, matched = s.matcher.calculateMatchScore(painPoints, sol.PainPoints)
		}

		results = append(results, domain.RecommendedSystexSolution{
			SystexSolution:    sol,
			Reason:            strings.TrimSpace(picked.Reason),
			MatchedPainPoints: matched,
		})
		if len(results) == s.maxSolutions {
			break
		}
	}

	s.log.WithField("count", len(results)).Info("solutions recommended")
	return results, nil
}

func localReason(matched []string) string {
	if len(matched) == 0 {
		return ""
	}
	return fmt.Sprintf("此方案可回應客戶的「%s」等痛點。", strings.Join(matched, "」、「"))
}
