package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/salesai/backend/internal/domain"
	"github.com/sirupsen/logrus"
)

var (
	// ErrBusy is returned when an action is triggered while the same action is in flight
	ErrBusy = errors.New("request already in progress")

	// ErrValidation is returned when the form fails the submission gate
	ErrValidation = errors.New("validation failed")

	// ErrEmptyResult is returned when generation produced no report
	ErrEmptyResult = errors.New(MsgEmptyResult)

	// ErrNoReport is returned when solutions are searched before a report exists
	ErrNoReport = errors.New("no report to search solutions for")
)

// Analyzer generates the sales report
type Analyzer interface {
	GenerateAnalysis(ctx context.Context, data domain.CustomerFormData) (*domain.AnalysisReport, error)
}

// Recommender finds catalog solutions for pain points
type Recommender interface {
	RecommendSolutions(ctx context.Context, painPoints []string) (domain.RecommendationResult, error)
}

// Enricher augments customer data before analysis. It may return partial data
// together with an error.
type Enricher interface {
	Enrich(ctx context.Context, data domain.CustomerFormData) (domain.CustomerFormData, error)
}

// Controller owns the assistant state and runs the orchestrated flows. It is
// safe for concurrent use; network calls run without holding the lock.
type Controller struct {
	mu    sync.Mutex
	state State

	analyzer    Analyzer
	recommender Recommender
	enricher    Enricher
	log         logrus.FieldLogger
}

// NewController creates a controller over the given catalog and collaborators.
// A nil enricher means PassthroughEnricher.
func NewController(
	companies []domain.CompanyProfile,
	analyzer Analyzer,
	recommender Recommender,
	enricher Enricher,
	log logrus.FieldLogger,
) *Controller {
	if enricher == nil {
		enricher = PassthroughEnricher{}
	}
	return &Controller{
		state:       NewState(companies),
		analyzer:    analyzer,
		recommender: recommender,
		enricher:    enricher,
		log:         log.WithField("component", "assistant"),
	}
}

// State returns the current snapshot
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Dispatch applies e and returns the new snapshot
func (c *Controller) Dispatch(e Event) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Reduce(c.state, e)
	return c.state
}

// EditField applies a user edit
func (c *Controller) EditField(field domain.FormField, value string) State {
	return c.Dispatch(EditField{Field: field, Value: value})
}

// SelectCompany commits a suggestion
func (c *Controller) SelectCompany(p domain.CompanyProfile) State {
	return c.Dispatch(SelectCompany{Profile: p})
}

// Key handles a navigation key and reports whether the suggestion panel
// consumed it
func (c *Controller) Key(k Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	consumed := Consumes(c.state, k)
	c.state = Reduce(c.state, PressKey{Key: k})
	return consumed
}

// AckScroll clears the pending scroll request
func (c *Controller) AckScroll() State {
	return c.Dispatch(AckScroll{})
}

// validate returns the user-facing message of the first failed rule
func validate(form domain.CustomerFormData) string {
	if strings.TrimSpace(form.CompanyName) == "" {
		return MsgCompanyNameRequired
	}
	if form.Industry == "" {
		return MsgIndustryRequired
	}
	return ""
}

// Submit validates the form, runs the best-effort enrichment and generates the
// report. Validation failures make no network call.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.state.Loading {
		c.mu.Unlock()
		return ErrBusy
	}
	form := c.state.Form
	if msg := validate(form); msg != "" {
		c.state = Reduce(c.state, ValidationFailed{Message: msg})
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrValidation, msg)
	}
	c.state = Reduce(c.state, SubmitStarted{})
	c.mu.Unlock()

	log := c.log.WithFields(logrus.Fields{
		"company":  form.CompanyName,
		"industry": form.Industry,
	})

	// Enrichment is best effort: on failure the original data is used, plus
	// whatever fields the enricher returned before failing.
	working := form
	enriched, err := c.enricher.Enrich(ctx, form)
	if err != nil {
		log.WithError(err).Warn("enrichment failed, continuing with original data")
	}
	working = working.Merge(enriched)
	c.Dispatch(EnrichmentMerged{Data: enriched})

	report, err := c.analyzer.GenerateAnalysis(ctx, working)
	if err != nil {
		log.WithError(err).Error("report generation failed")
		c.Dispatch(SubmitFailed{Message: err.Error()})
		return err
	}
	if report.IsEmpty() {
		log.Warn("report generation returned an empty result")
		c.Dispatch(SubmitFailed{Message: MsgEmptyResult})
		return ErrEmptyResult
	}

	c.Dispatch(ReportReceived{Report: report})
	log.Info("report ready")
	return nil
}

// SearchSolutions looks up catalog solutions for the pain points of the
// current report. Errors are kept in the solution sub-state and never touch
// the report.
func (c *Controller) SearchSolutions(ctx context.Context) error {
	c.mu.Lock()
	if c.state.SolutionsPending != nil {
		c.mu.Unlock()
		return ErrBusy
	}
	report := c.state.VisibleReport()
	if report == nil {
		c.mu.Unlock()
		return ErrNoReport
	}
	c.state = Reduce(c.state, SolutionsStarted{Report: report})
	c.mu.Unlock()

	result, err := c.recommender.RecommendSolutions(ctx, report.PainPoints)
	if err != nil {
		c.log.WithError(err).Warn("solution search failed")
		c.Dispatch(SolutionsFailed{Report: report, Message: err.Error()})
		return err
	}

	c.log.WithFields(logrus.Fields{
		"count": len(result.Solutions),
		"shape": result.Shape.String(),
	}).Info("solutions received")
	c.Dispatch(SolutionsReceived{Report: report, Result: result})
	return nil
}
