// Package assistant is the client-side core of the lead-qualification flow:
// the customer form, company autocomplete, the analysis orchestrator and the
// state behind the rendered report.
//
// All state lives in an immutable State snapshot. Changes are expressed as
// Events and applied by the pure Reduce function; Controller serializes the
// events produced by user input and by the network calls.
package assistant

import "github.com/salesai/backend/internal/domain"

// NoHighlight marks that no suggestion is highlighted
const NoHighlight = -1

// User-facing messages
const (
	MsgCompanyNameRequired = "請先輸入公司名稱"
	MsgIndustryRequired    = "請選擇產業領域"
	MsgEmptyResult         = "分析結果為空，請重試"
	MsgGenerationFailed    = "分析生成失敗，請稍後再試。"
	MsgSolutionsFailed     = "搜尋失敗，請稍後再試"
)

// State is one snapshot of the assistant. Slices and pointers held by a State
// are never modified after the snapshot is produced.
type State struct {
	// Companies is the autocomplete catalog
	Companies []domain.CompanyProfile

	Form     domain.CustomerFormData
	Selected *domain.CompanyProfile // locked catalog selection, nil after a name edit

	Suggestions     []domain.CompanyProfile
	ShowSuggestions bool
	ActiveIndex     int

	Error       string
	Loading     bool
	Report      *domain.AnalysisReport
	ReportReady bool

	// ScrollRequested asks the renderer to scroll to the report after its next draw
	ScrollRequested bool

	Solutions         []domain.RecommendedSystexSolution
	SolutionsSearched bool
	SolutionsLoading  bool
	SolutionsError    string

	// SolutionsPending is the report of the in-flight solution search. It
	// outlives a report replacement and is cleared only when that search settles.
	SolutionsPending *domain.AnalysisReport
}

// NewState returns the initial snapshot for the given company catalog
func NewState(companies []domain.CompanyProfile) State {
	return State{
		Companies:   companies,
		ActiveIndex: NoHighlight,
	}
}

// VisibleReport returns the report to display, or nil when none may be shown
func (s State) VisibleReport() *domain.AnalysisReport {
	if !s.ReportReady {
		return nil
	}
	return s.Report
}

// Highlighted returns the highlighted suggestion, if any
func (s State) Highlighted() (domain.CompanyProfile, bool) {
	if !s.ShowSuggestions || s.ActiveIndex < 0 || s.ActiveIndex >= len(s.Suggestions) {
		return domain.CompanyProfile{}, false
	}
	return s.Suggestions[s.ActiveIndex], true
}
