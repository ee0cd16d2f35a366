package assistant

import "github.com/salesai/backend/internal/domain"

// Event is a change applied to a State by Reduce
type Event interface {
	isEvent()
}

// Key is a navigation key of the suggestion panel
type Key int

const (
	KeyDown Key = iota
	KeyUp
	KeyEnter
	KeyEscape
)

func (k Key) String() string {
	switch k {
	case KeyDown:
		return "down"
	case KeyUp:
		return "up"
	case KeyEnter:
		return "enter"
	case KeyEscape:
		return "escape"
	default:
		return "unknown"
	}
}

// EditField sets one form field from user input
type EditField struct {
	Field domain.FormField
	Value string
}

// SelectCompany commits a catalog entry to the form
type SelectCompany struct {
	Profile domain.CompanyProfile
}

// PressKey is a key press while the company name input has focus
type PressKey struct {
	Key Key
}

// ValidationFailed blocks a submission
type ValidationFailed struct {
	Message string
}

// SubmitStarted marks the start of a report generation
type SubmitStarted struct{}

// EnrichmentMerged carries the fields returned by enrichment. Empty fields are ignored.
type EnrichmentMerged struct {
	Data domain.CustomerFormData
}

// ReportReceived carries a successful generation
type ReportReceived struct {
	Report *domain.AnalysisReport
}

// SubmitFailed ends a generation with an error message
type SubmitFailed struct {
	Message string
}

// AckScroll is sent by the renderer once it has scrolled to the report
type AckScroll struct{}

// SolutionsStarted marks the start of a solution search for Report
type SolutionsStarted struct {
	Report *domain.AnalysisReport
}

// SolutionsReceived carries the recommendation result for Report
type SolutionsReceived struct {
	Report *domain.AnalysisReport
	Result domain.RecommendationResult
}

// SolutionsFailed ends a solution search for Report with an error message
type SolutionsFailed struct {
	Report  *domain.AnalysisReport
	Message string
}

func (EditField) isEvent() {}
func (SelectCompany) isEvent() {}
func (PressKey) isEvent() {}
func (ValidationFailed) isEvent() {}
func (SubmitStarted) isEvent() {}
func (EnrichmentMerged) isEvent() {}
func (ReportReceived) isEvent() {}
func (SubmitFailed) isEvent() {}
func (AckScroll) isEvent() {}
func (SolutionsStarted) isEvent() {}
func (SolutionsReceived) isEvent() {}
func (SolutionsFailed) isEvent() {}
