package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/salesai/backend/internal/catalog"
	"github.com/salesai/backend/internal/domain"
	"github.com/salesai/backend/internal/usecase"
	"github.com/sirupsen/logrus"
)

// AnalysisGenerator produces the sales report for a customer
type AnalysisGenerator interface {
	GenerateAnalysis(ctx context.Context, data *domain.CustomerFormData) (*domain.AnalysisReport, error)
}

// SolutionRecommender matches pain points to catalog solutions
type SolutionRecommender interface {
	RecommendSolutions(ctx context.Context, painPoints []string) ([]domain.RecommendedSystexSolution, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	analysis    AnalysisGenerator
	recommender SolutionRecommender
	catalog     *catalog.Catalog
	log         logrus.FieldLogger
}

// NewHandler creates a new HTTP handler. Nil services answer 501.
func NewHandler(
	analysis AnalysisGenerator,
	recommender SolutionRecommender,
	cat *catalog.Catalog,
	log logrus.FieldLogger,
) *Handler {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Handler{
		analysis:    analysis,
		recommender: recommender,
		catalog:     cat,
		log:         log,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "salesai-backend",
		"version": "1.0.0",
	})
}

// GenerateAnalysis handles report generation requests
// POST /api/generateAnalysis
func (h *Handler) GenerateAnalysis(c *gin.Context) {
	if h.analysis == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Analysis service not configured"})
		return
	}

	var req domain.CustomerFormData
	if err := c.ShouldBindJSON(&req); err != nil {
		h.requestLog(c).WithError(err).Warn("invalid analysis request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	report, err := h.analysis.GenerateAnalysis(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// RecommendSolutions handles solution matching requests. The response is
// always the wrapped {"solutions": [...]} shape.
// POST /api/recommendSolutions
func (h *Handler) RecommendSolutions(c *gin.Context) {
	if h.recommender == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Recommendation service not configured"})
		return
	}

	var req domain.RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.requestLog(c).WithError(err).Warn("invalid recommendation request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	solutions, err := h.recommender.RecommendSolutions(c.Request.Context(), req.PainPoints)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if solutions == nil {
		solutions = []domain.RecommendedSystexSolution{}
	}

	c.JSON(http.StatusOK, domain.RecommendResponse{Solutions: solutions})
}

// Companies autocompletes company names
// GET /api/companies?q=
func (h *Handler) Companies(c *gin.Context) {
	matches := usecase.MatchCompanies(c.Query("q"), h.catalog.Companies)
	if matches == nil {
		matches = []domain.CompanyProfile{}
	}
	c.JSON(http.StatusOK, gin.H{"companies": matches})
}

// Industries lists the selectable industries
// GET /api/industries
func (h *Handler) Industries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"industries": h.catalog.Industries})
}

// Solutions lists the solution catalog
// GET /api/solutions
func (h *Handler) Solutions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"solutions": h.catalog.Solutions})
}

func (h *Handler) requestLog(c *gin.Context) logrus.FieldLogger {
	return h.log.WithFields(logrus.Fields{
		"request_id": c.GetString(requestIDKey),
		"path":       c.FullPath(),
	})
}
