package assistant

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/salesai/backend/internal/catalog"
	"github.com/salesai/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initialState() State {
	return NewState(catalog.Default().Companies)
}

func tsmc(t *testing.T) domain.CompanyProfile {
	t.Helper()
	p, ok := catalog.Default().CompanyByName("TSMC")
	require.True(t, ok)
	return p
}

func reduceAll(s State, events ...Event) State {
	for _, e := range events {
		s = Reduce(s, e)
	}
	return s
}

func suggestionNames(s State) []string {
	var out []string
	for _, p := range s.Suggestions {
		out = append(out, p.Name)
	}
	return out
}

func TestReduce_EditCompanyNameClearsOtherFields(t *testing.T) {
	prior := []domain.CustomerFormData{
		{},
		{Industry: "金融保險"},
		{Industry: "零售與電商", Website: "https://x.example", CompanyID: "123", RawData: "notes", CompanyName: "Old"},
		tsmc(t).FormData(),
	}

	for _, form := range prior {
		for _, typed := range []string{"", "a", "台積", "Some Co"} {
			s := initialState()
			s.Form = form
			p := tsmc(t)
			s.Selected = &p
			s.ActiveIndex = 1

			next := Reduce(s, EditField{Field: domain.FieldCompanyName, Value: typed})

			want := domain.CustomerFormData{CompanyName: typed}
			if diff := cmp.Diff(want, next.Form); diff != "" {
				t.Errorf("form after editing name to %q from %+v (-want +got):\n%s", typed, form, diff)
			}
			assert.Nil(t, next.Selected)
			assert.Equal(t, NoHighlight, next.ActiveIndex)
		}
	}
}

func TestReduce_EditCompanyNameRunsMatcher(t *testing.T) {
	tests := []struct {
		name      string
		typed     string
		wantNames []string
		wantShow  bool
	}{
		{name: "two characters match", typed: "台積", wantNames: []string{"台灣積體電路製造股份有限公司（TSMC）"}, wantShow: true},
		{name: "keyword case insensitive", typed: "mtk", wantNames: []string{"聯發科技股份有限公司（MediaTek）"}, wantShow: true},
		{name: "one character never matches", typed: "G", wantNames: nil, wantShow: false},
		{name: "no match hides the panel", typed: "鴻海", wantNames: nil, wantShow: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Reduce(initialState(), EditField{Field: domain.FieldCompanyName, Value: tt.typed})
			assert.Equal(t, tt.wantNames, suggestionNames(s))
			assert.Equal(t, tt.wantShow, s.ShowSuggestions)
		})
	}
}

func TestReduce_EditOtherFieldKeepsRest(t *testing.T) {
	s := Reduce(initialState(), SelectCompany{Profile: tsmc(t)})
	next := Reduce(s, EditField{Field: domain.FieldWebsite, Value: "https://example.com"})

	want := tsmc(t).FormData()
	want.Website = "https://example.com"
	if diff := cmp.Diff(want, next.Form); diff != "" {
		t.Errorf("form mismatch (-want +got):\n%s", diff)
	}
	assert.NotNil(t, next.Selected)
}

func TestReduce_SelectCompany(t *testing.T) {
	s := initialState()
	s.Error = MsgIndustryRequired
	s = reduceAll(s, EditField{Field: domain.FieldCompanyName, Value: "台積"})

	got := Reduce(s, SelectCompany{Profile: tsmc(t)})

	p := tsmc(t)
	want := initialState()
	want.Form = domain.CustomerFormData{
		Industry:    "半導體 / 電子製造",
		Website:     "https://www.tsmc.com",
		CompanyName: "台灣積體電路製造股份有限公司（TSMC）",
		CompanyID:   "22099131",
		RawData:     p.Description,
	}
	want.Selected = &p

	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("state after selection (-want +got):\n%s", diff)
	}
}

// Typing "台積", highlighting the TSMC suggestion and pressing Enter fills the
// whole form from the catalog.
func TestReduce_TSMCExample(t *testing.T) {
	s := reduceAll(initialState(),
		EditField{Field: domain.FieldCompanyName, Value: "台積"},
		PressKey{Key: KeyDown},
		PressKey{Key: KeyEnter},
	)

	assert.Equal(t, "22099131", s.Form.CompanyID)
	assert.Equal(t, "https://www.tsmc.com", s.Form.Website)
	assert.Equal(t, "半導體 / 電子製造", s.Form.Industry)
	assert.Equal(t, tsmc(t).Description, s.Form.RawData)
	assert.Contains(t, s.Form.RawData, "台積電 (TSMC) 是全球領先的積體電路製造服務公司")
	assert.False(t, s.ShowSuggestions)
	assert.Empty(t, s.Error)
}

func TestReduce_KeyboardNavigation(t *testing.T) {
	// "股份有限公司" matches TSMC and MediaTek
	open := Reduce(initialState(), EditField{Field: domain.FieldCompanyName, Value: "股份有限公司"})
	require.Len(t, open.Suggestions, 2)

	tests := []struct {
		name      string
		keys      []Key
		wantIndex int
		wantShow  bool
	}{
		{name: "down from none highlights first", keys: []Key{KeyDown}, wantIndex: 0, wantShow: true},
		{name: "up from none highlights last", keys: []Key{KeyUp}, wantIndex: 1, wantShow: true},
		{name: "down wraps", keys: []Key{KeyDown, KeyDown, KeyDown}, wantIndex: 0, wantShow: true},
		{name: "up wraps", keys: []Key{KeyDown, KeyUp}, wantIndex: 1, wantShow: true},
		{name: "escape hides and clears", keys: []Key{KeyDown, KeyEscape}, wantIndex: NoHighlight, wantShow: false},
		{name: "keys ignored once hidden", keys: []Key{KeyEscape, KeyDown}, wantIndex: NoHighlight, wantShow: false},
		{name: "enter without highlight does nothing", keys: []Key{KeyEnter}, wantIndex: NoHighlight, wantShow: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := open
			for _, k := range tt.keys {
				s = Reduce(s, PressKey{Key: k})
			}
			assert.Equal(t, tt.wantIndex, s.ActiveIndex)
			assert.Equal(t, tt.wantShow, s.ShowSuggestions)
		})
	}

	t.Run("enter commits the highlighted entry", func(t *testing.T) {
		s := reduceAll(open, PressKey{Key: KeyUp}, PressKey{Key: KeyEnter})
		assert.Equal(t, "24540000", s.Form.CompanyID)
		require.NotNil(t, s.Selected)
		assert.Equal(t, "聯發科技股份有限公司（MediaTek）", s.Selected.Name)
	})
}

func TestConsumes(t *testing.T) {
	closed := initialState()
	open := Reduce(initialState(), EditField{Field: domain.FieldCompanyName, Value: "台積"})
	highlighted := Reduce(open, PressKey{Key: KeyDown})

	tests := []struct {
		name  string
		state State
		key   Key
		want  bool
	}{
		{name: "enter with highlight", state: highlighted, key: KeyEnter, want: true},
		{name: "enter without highlight submits", state: open, key: KeyEnter, want: false},
		{name: "enter with panel closed submits", state: closed, key: KeyEnter, want: false},
		{name: "down with panel open", state: open, key: KeyDown, want: true},
		{name: "down with panel closed", state: closed, key: KeyDown, want: false},
		{name: "escape with panel open", state: open, key: KeyEscape, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Consumes(tt.state, tt.key))
		})
	}
}

func TestReduce_SubmissionLifecycle(t *testing.T) {
	report := &domain.AnalysisReport{Summary: "s", PainPoints: []string{"資料分散"}}
	base := Reduce(initialState(), SelectCompany{Profile: tsmc(t)})

	t.Run("start clears error and readiness", func(t *testing.T) {
		s := base
		s.Error = "old"
		s.ReportReady = true
		s = Reduce(s, SubmitStarted{})
		assert.True(t, s.Loading)
		assert.Empty(t, s.Error)
		assert.False(t, s.ReportReady)
	})

	t.Run("success shows report and requests a scroll", func(t *testing.T) {
		s := reduceAll(base, SubmitStarted{}, ReportReceived{Report: report})
		assert.False(t, s.Loading)
		assert.True(t, s.ReportReady)
		assert.True(t, s.ScrollRequested)
		assert.Same(t, report, s.VisibleReport())

		s = Reduce(s, AckScroll{})
		assert.False(t, s.ScrollRequested)
	})

	t.Run("empty report is a failure", func(t *testing.T) {
		s := reduceAll(base, SubmitStarted{}, ReportReceived{Report: &domain.AnalysisReport{}})
		assert.False(t, s.ReportReady)
		assert.Nil(t, s.VisibleReport())
		assert.Equal(t, MsgEmptyResult, s.Error)
	})

	t.Run("failure hides the previous report", func(t *testing.T) {
		s := reduceAll(base, SubmitStarted{}, ReportReceived{Report: report}, SubmitStarted{}, SubmitFailed{Message: "Missing GEMINI_API_KEY on server"})
		assert.False(t, s.ReportReady)
		assert.Nil(t, s.VisibleReport())
		assert.Equal(t, "Missing GEMINI_API_KEY on server", s.Error)
	})

	t.Run("failure without message uses the generic one", func(t *testing.T) {
		s := reduceAll(base, SubmitStarted{}, SubmitFailed{})
		assert.Equal(t, MsgGenerationFailed, s.Error)
	})

	t.Run("enrichment merges non-empty fields", func(t *testing.T) {
		s := Reduce(base, EnrichmentMerged{Data: domain.CustomerFormData{Website: "https://new.example"}})
		assert.Equal(t, "https://new.example", s.Form.Website)
		assert.Equal(t, "22099131", s.Form.CompanyID)
	})
}

func TestReduce_SolutionLifecycle(t *testing.T) {
	report := &domain.AnalysisReport{Summary: "s", PainPoints: []string{"資料分散"}}
	ready := reduceAll(initialState(), SubmitStarted{}, ReportReceived{Report: report})
	solution := domain.RecommendedSystexSolution{SystexSolution: catalog.Default().Solutions[0]}

	t.Run("received replaces the list", func(t *testing.T) {
		s := reduceAll(ready,
			SolutionsStarted{Report: report},
			SolutionsReceived{Report: report, Result: domain.RecommendationResult{Shape: domain.ShapeBare, Solutions: []domain.RecommendedSystexSolution{solution}}},
		)
		assert.False(t, s.SolutionsLoading)
		assert.True(t, s.SolutionsSearched)
		assert.Len(t, s.Solutions, 1)
		assert.Same(t, report, s.VisibleReport())
	})

	t.Run("empty result is an empty list", func(t *testing.T) {
		s := reduceAll(ready, SolutionsStarted{Report: report}, SolutionsReceived{Report: report})
		assert.NotNil(t, s.Solutions)
		assert.Empty(t, s.Solutions)
		assert.True(t, s.SolutionsSearched)
	})

	t.Run("failure stays inline", func(t *testing.T) {
		s := reduceAll(ready, SolutionsStarted{Report: report}, SolutionsFailed{Report: report})
		assert.Equal(t, MsgSolutionsFailed, s.SolutionsError)
		assert.True(t, s.ReportReady)
		assert.Empty(t, s.Error)
	})

	t.Run("results for a replaced report are dropped", func(t *testing.T) {
		newer := &domain.AnalysisReport{Summary: "newer"}
		s := reduceAll(ready,
			SolutionsStarted{Report: report},
			SubmitStarted{},
			ReportReceived{Report: newer},
			SolutionsReceived{Report: report, Result: domain.RecommendationResult{Solutions: []domain.RecommendedSystexSolution{solution}}},
		)
		assert.Nil(t, s.Solutions)
		assert.False(t, s.SolutionsSearched)
		assert.Nil(t, s.SolutionsPending)
	})

	t.Run("search stays in flight across a report replacement", func(t *testing.T) {
		newer := &domain.AnalysisReport{Summary: "newer"}
		s := reduceAll(ready,
			SolutionsStarted{Report: report},
			SubmitStarted{},
			ReportReceived{Report: newer},
		)
		assert.False(t, s.SolutionsLoading, "the new report has no search of its own")
		assert.Same(t, report, s.SolutionsPending)

		// a search for the new report cannot start until the old one settles
		blocked := Reduce(s, SolutionsStarted{Report: newer})
		assert.Same(t, report, blocked.SolutionsPending)

		settled := Reduce(s, SolutionsFailed{Report: report})
		assert.Nil(t, settled.SolutionsPending)
		assert.Empty(t, settled.SolutionsError)
	})
}

func TestReduce_DoesNotModifyInput(t *testing.T) {
	s := Reduce(initialState(), EditField{Field: domain.FieldCompanyName, Value: "股份有限公司"})
	before := s
	beforeSuggestions := append([]domain.CompanyProfile(nil), s.Suggestions...)

	_ = reduceAll(s,
		PressKey{Key: KeyDown},
		PressKey{Key: KeyEnter},
		EditField{Field: domain.FieldIndustry, Value: "其他"},
		SubmitStarted{},
	)

	if diff := cmp.Diff(before, s); diff != "" {
		t.Errorf("input state changed (-before +after):\n%s", diff)
	}
	if diff := cmp.Diff(beforeSuggestions, s.Suggestions); diff != "" {
		t.Errorf("suggestions changed (-before +after):\n%s", diff)
	}
}
