package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/salesai/backend/internal/domain"
	"github.com/sirupsen/logrus"
)

// AnalysisServiceConfig holds configuration for the analysis service
type AnalysisServiceConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

// AnalysisService turns customer facts into a sales report through the completion backend
type AnalysisService struct {
	completer    domain.Completer
	cache        domain.CacheRepository
	cacheEnabled bool
	cacheTTL     time.Duration
	log          logrus.FieldLogger
}

// NewAnalysisService creates a new analysis service. cache may be nil.
func NewAnalysisService(
	completer domain.Completer,
	cache domain.CacheRepository,
	config AnalysisServiceConfig,
	log logrus.FieldLogger,
) *AnalysisService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 30 * time.Minute
	}

	return &AnalysisService{
		completer:    completer,
		cache:        cache,
		cacheEnabled: config.CacheEnabled && cache != nil,
		cacheTTL:     cacheTTL,
		log:          log.WithField("component", "analysis"),
	}
}

// GenerateAnalysis produces a report for the customer.
// Flow: validate -> check cache -> complete -> decode -> cache -> return
func (s *AnalysisService) GenerateAnalysis(
	ctx context.Context,
	data *domain.CustomerFormData,
) (*domain.AnalysisReport, error) {
	if data == nil || strings.TrimSpace(data.CompanyName) == "" {
		return nil, fmt.Errorf("%w: companyName is required", domain.ErrInvalidRequest)
	}

	log := s.log.WithFields(logrus.Fields{
		"company":  data.CompanyName,
		"industry": data.Industry,
	})

	cacheKey := generateCacheKey(data)
	if cached, ok := s.getFromCache(ctx, cacheKey); ok {
		log.Debug("report served from cache")
		return cached, nil
	}

	text, err := s.completer.Complete(ctx, domain.CompletionRequest{
		System: analystSystemPrompt,
		Prompt: buildAnalysisPrompt(data),
		Schema: analysisSchema,
	})
	if err != nil {
		log.WithError(err).Error("report completion failed")
		return nil, err
	}

	var report domain.AnalysisReport
	if err := decodeCompletion(text, &report); err != nil {
		log.WithError(err).Warn("report completion unusable")
		return nil, err
	}

	// Cache failures are logged, never returned
	if err := s.setInCache(ctx, cacheKey, &report); err != nil {
		log.WithError(err).Warn("failed to cache report")
	}

	log.WithFields(logrus.Fields{
		"trends":      len(report.IndustryTrends),
		"pain_points": len(report.PainPoints),
	}).Info("report generated")

	return &report, nil
}

// generateCacheKey creates a cache key from the normalized form.
// Format: "analysis:{sha256 of normalized fields}"
func generateCacheKey(data *domain.CustomerFormData) string {
	fields := []string{
		normalizeForCacheKey(data.Industry),
		normalizeForCacheKey(data.CompanyName),
		normalizeForCacheKey(data.Website),
		normalizeForCacheKey(data.CompanyID),
		normalizeForCacheKey(data.RawData),
	}
	sum := sha256.Sum256([]byte(strings.Join(fields, "\x1f")))
	return "analysis:" + hex.EncodeToString(sum[:])
}

// normalizeForCacheKey lowercases and collapses whitespace
func normalizeForCacheKey(s string) string {
	if s == "" {
		return ""
	}
	result := strings.ToLower(s)
	result = multiSpacePattern.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

func (s *AnalysisService) getFromCache(ctx context.Context, key string) (*domain.AnalysisReport, bool) {
	if !s.cacheEnabled {
		return nil, false
	}

	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}

	var report domain.AnalysisReport
	if err := json.Unmarshal(raw, &report); err != nil {
		s.log.WithError(err).Warn("dropping undecodable cache entry")
		_ = s.cache.Delete(ctx, key)
		return nil, false
	}
	return &report, true
}

func (s *AnalysisService) setInCache(ctx context.Context, key string, report *domain.AnalysisReport) error {
	if !s.cacheEnabled {
		return nil
	}

	raw, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, key, raw, s.cacheTTL)
}
