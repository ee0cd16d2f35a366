package assistant

import (
	"unicode/utf8"

	"github.com/salesai/backend/internal/domain"
	"github.com/salesai/backend/internal/usecase"
)

// Reduce applies e to s and returns the next snapshot. s is not modified.
func Reduce(s State, e Event) State {
	switch e := e.(type) {
	case EditField:
		if e.Field == domain.FieldCompanyName {
			return editCompanyName(s, e.Value)
		}
		s.Form = s.Form.With(e.Field, e.Value)

	case SelectCompany:
		return selectCompany(s, e.Profile)

	case PressKey:
		return pressKey(s, e.Key)

	case ValidationFailed:
		s.Error = e.Message

	case SubmitStarted:
		s.Loading = true
		s.Error = ""
		s.ReportReady = false

	case EnrichmentMerged:
		s.Form = s.Form.Merge(e.Data)

	case ReportReceived:
		if e.Report.IsEmpty() {
			return Reduce(s, SubmitFailed{Message: MsgEmptyResult})
		}
		s.Loading = false
		s.Report = e.Report
		s.ReportReady = true
		s.ScrollRequested = true
		s.Solutions = nil
		s.SolutionsSearched = false
		s.SolutionsLoading = false
		s.SolutionsError = ""

	case SubmitFailed:
		s.Loading = false
		s.ReportReady = false
		s.Report = nil
		s.ScrollRequested = false
		s.Error = e.Message
		if s.Error == "" {
			s.Error = MsgGenerationFailed
		}

	case AckScroll:
		s.ScrollRequested = false

	case SolutionsStarted:
		if e.Report != s.Report || s.SolutionsPending != nil {
			return s
		}
		s.SolutionsLoading = true
		s.SolutionsPending = e.Report
		s.SolutionsError = ""

	case SolutionsReceived:
		s = settleSolutions(s, e.Report)
		// A result for a replaced report is dropped
		if e.Report != s.Report {
			return s
		}
		s.SolutionsLoading = false
		s.SolutionsSearched = true
		s.Solutions = e.Result.Solutions
		if s.Solutions == nil {
			s.Solutions = []domain.RecommendedSystexSolution{}
		}

	case SolutionsFailed:
		s = settleSolutions(s, e.Report)
		if e.Report != s.Report {
			return s
		}
		s.SolutionsLoading = false
		s.SolutionsError = e.Message
		if s.SolutionsError == "" {
			s.SolutionsError = MsgSolutionsFailed
		}
	}

	return s
}

// settleSolutions clears the in-flight marker when the search for report ends
func settleSolutions(s State, report *domain.AnalysisReport) State {
	if s.SolutionsPending == report {
		s.SolutionsPending = nil
	}
	return s
}

// editCompanyName clears the other four fields and the locked selection, then
// reruns the autocomplete match
func editCompanyName(s State, name string) State {
	s.Form = domain.CustomerFormData{CompanyName: name}
	s.Selected = nil
	s.ActiveIndex = NoHighlight

	if utf8.RuneCountInString(name) < usecase.MinQueryLength {
		s.Suggestions = nil
		s.ShowSuggestions = false
		return s
	}

	s.Suggestions = usecase.MatchCompanies(name, s.Companies)
	s.ShowSuggestions = len(s.Suggestions) > 0
	return s
}

func selectCompany(s State, p domain.CompanyProfile) State {
	s.Form = p.FormData()
	s.Selected = &p
	s.Suggestions = nil
	s.ShowSuggestions = false
	s.ActiveIndex = NoHighlight
	s.Error = ""
	return s
}

func pressKey(s State, k Key) State {
	n := len(s.Suggestions)
	if !s.ShowSuggestions || n == 0 {
		return s
	}

	switch k {
	case KeyDown:
		if s.ActiveIndex == NoHighlight {
			s.ActiveIndex = 0
		} else {
			s.ActiveIndex = (s.ActiveIndex + 1) % n
		}
	case KeyUp:
		if s.ActiveIndex == NoHighlight {
			s.ActiveIndex = n - 1
		} else {
			s.ActiveIndex = (s.ActiveIndex - 1 + n) % n
		}
	case KeyEnter:
		if p, ok := s.Highlighted(); ok {
			return selectCompany(s, p)
		}
	case KeyEscape:
		s.ShowSuggestions = false
		s.ActiveIndex = NoHighlight
	}
	return s
}

// Consumes reports whether k is handled by the suggestion panel in s. An
// unconsumed Enter falls through to form submission.
func Consumes(s State, k Key) bool {
	if !s.ShowSuggestions || len(s.Suggestions) == 0 {
		return false
	}
	if k == KeyEnter {
		_, ok := s.Highlighted()
		return ok
	}
	return true
}
