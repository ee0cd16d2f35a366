// Package tui is the interactive terminal front end of the assistant. It
// renders the customer form, the autocomplete panel and the report, and turns
// key presses into assistant events.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/salesai/backend/internal/assistant"
	"github.com/salesai/backend/internal/domain"
	"github.com/salesai/backend/internal/report"
)

// focus order of the form
type field int

const (
	fieldCompanyName field = iota
	fieldIndustry
	fieldWebsite
	fieldCompanyID
	fieldRawData
	fieldReport
	fieldCount
)

var fieldLabels = map[field]string{
	fieldCompanyName: "公司名稱",
	fieldIndustry:    "產業領域",
	fieldWebsite:     "公司網站",
	fieldCompanyID:   "統編/ID",
	fieldRawData:     "原始情資",
}

var textFields = map[field]domain.FormField{
	fieldCompanyName: domain.FieldCompanyName,
	fieldWebsite:     domain.FieldWebsite,
	fieldCompanyID:   domain.FieldCompanyID,
	fieldRawData:     domain.FieldRawData,
}

type submitDoneMsg struct{ err error }

type solutionsDoneMsg struct{ err error }

// Model is the bubbletea model of the assistant
type Model struct {
	ctx        context.Context
	ctrl       *assistant.Controller
	industries []string
	renderer   *report.TerminalRenderer
	styles     Styles

	inputs   map[field]*textinput.Model
	focus    field
	viewport viewport.Model
	spinner  spinner.Model

	width  int
	height int
}

// New creates the model. renderer may be nil, in which case raw Markdown is shown.
func New(ctx context.Context, ctrl *assistant.Controller, industries []string, renderer *report.TerminalRenderer) Model {
	inputs := make(map[field]*textinput.Model, len(textFields))
	for f := range textFields {
		ti := textinput.New()
		ti.Prompt = "│ "
		ti.CharLimit = 4096
		ti.Width = 60
		inputs[f] = &ti
	}
	inputs[fieldCompanyName].Placeholder = "輸入公司名稱或關鍵字，例如：台積"
	inputs[fieldWebsite].Placeholder = "https://"
	inputs[fieldRawData].Placeholder = "貼上拜訪紀錄、新聞或其他情資"
	inputs[fieldCompanyName].Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:        ctx,
		ctrl:       ctrl,
		industries: industries,
		renderer:   renderer,
		styles:     DefaultStyles(),
		inputs:     inputs,
		focus:      fieldCompanyName,
		viewport:   viewport.New(80, 20),
		spinner:    sp,
	}
}

// Init starts the cursor blink
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width - 2
		m.viewport.Height = max(msg.Height-m.formHeight(), 5)
		for _, ti := range m.inputs {
			ti.Width = max(msg.Width-16, 20)
		}
		m.refreshReport()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case submitDoneMsg:
		// enrichment may have filled fields the user left empty
		m.syncInputs()
		m.refreshReport()
		return m, nil

	case solutionsDoneMsg:
		m.refreshReport()
		return m, nil

	case spinner.TickMsg:
		s := m.ctrl.State()
		if s.Loading || s.SolutionsLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		return m.setFocus((m.focus + 1) % fieldCount), nil
	case "shift+tab":
		return m.setFocus((m.focus + fieldCount - 1) % fieldCount), nil
	case "ctrl+s":
		return m.searchSolutions()
	}

	if m.focus == fieldCompanyName {
		if key, ok := navigationKey(msg); ok {
			if m.ctrl.Key(key) {
				m.syncInputs()
				return m, nil
			}
		}
	}

	switch m.focus {
	case fieldIndustry:
		switch msg.String() {
		case "left", "h":
			return m.cycleIndustry(-1), nil
		case "right", "l", " ":
			return m.cycleIndustry(1), nil
		}
	case fieldReport:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if msg.Type == tea.KeyEnter {
		return m.submit()
	}

	formField, ok := textFields[m.focus]
	if !ok {
		return m, nil
	}
	ti := m.inputs[m.focus]
	before := ti.Value()
	updated, cmd := ti.Update(msg)
	*ti = updated
	if ti.Value() != before {
		m.ctrl.EditField(formField, ti.Value())
		m.syncInputs()
	}
	return m, cmd
}

func navigationKey(msg tea.KeyMsg) (assistant.Key, bool) {
	switch msg.Type {
	case tea.KeyDown:
		return assistant.KeyDown, true
	case tea.KeyUp:
		return assistant.KeyUp, true
	case tea.KeyEnter:
		return assistant.KeyEnter, true
	case tea.KeyEsc:
		return assistant.KeyEscape, true
	}
	return 0, false
}

func (m Model) setFocus(f field) Model {
	for k, ti := range m.inputs {
		if k == f {
			ti.Focus()
		} else {
			ti.Blur()
		}
	}
	m.focus = f
	return m
}

func (m Model) cycleIndustry(step int) Model {
	if len(m.industries) == 0 {
		return m
	}
	current := m.ctrl.State().Form.Industry
	idx := -1
	for i, label := range m.industries {
		if label == current {
			idx = i
		}
	}
	n := len(m.industries)
	switch {
	case idx == -1 && step > 0:
		idx = 0
	case idx == -1:
		idx = n - 1
	default:
		idx = (idx + step + n) % n
	}
	m.ctrl.EditField(domain.FieldIndustry, m.industries[idx])
	return m
}

// syncInputs copies the form of the current snapshot into the text inputs
func (m Model) syncInputs() {
	form := m.ctrl.State().Form
	values := map[field]string{
		fieldCompanyName: form.CompanyName,
		fieldWebsite:     form.Website,
		fieldCompanyID:   form.CompanyID,
		fieldRawData:     form.RawData,
	}
	for f, v := range values {
		if m.inputs[f].Value() != v {
			m.inputs[f].SetValue(v)
		}
	}
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	s := m.ctrl.State()
	if s.Loading {
		return m, nil
	}
	ctrl, ctx := m.ctrl, m.ctx
	return m, tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			return submitDoneMsg{err: ctrl.Submit(ctx)}
		},
	)
}

func (m Model) searchSolutions() (tea.Model, tea.Cmd) {
	s := m.ctrl.State()
	if s.SolutionsPending != nil || s.VisibleReport() == nil {
		return m, nil
	}
	ctrl, ctx := m.ctrl, m.ctx
	return m, tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			return solutionsDoneMsg{err: ctrl.SearchSolutions(ctx)}
		},
	)
}

// refreshReport re-renders the report pane and honors a pending scroll request
func (m *Model) refreshReport() {
	s := m.ctrl.State()
	r := s.VisibleReport()
	if r == nil {
		m.viewport.SetContent("")
		return
	}

	md := report.Markdown(r)
	if s.SolutionsSearched {
		md += "\n" + report.SolutionsMarkdown(s.Solutions)
	}
	m.viewport.SetContent(m.render(md))

	if s.ScrollRequested {
		m.viewport.GotoTop()
		*m = m.setFocus(fieldReport)
		m.ctrl.AckScroll()
	}
}

func (m Model) render(md string) string {
	if m.renderer == nil {
		return md
	}
	out, err := m.renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

func (m Model) formHeight() int {
	return 16
}

// View renders the form, the suggestion panel and the report
func (m Model) View() string {
	s := m.ctrl.State()
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("SalesAI 客戶分析助手"))
	b.WriteString("\n")

	b.WriteString(m.fieldRow(fieldCompanyName, m.inputs[fieldCompanyName].View()))
	if s.Selected != nil {
		b.WriteString(" " + m.styles.Locked.Render("✓ 已鎖定"))
	}
	b.WriteString("\n")
	if s.ShowSuggestions && len(s.Suggestions) > 0 {
		b.WriteString(m.suggestionPanel(s))
		b.WriteString("\n")
	}

	industry := s.Form.Industry
	if industry == "" {
		industry = "請選擇產業"
	}
	b.WriteString(m.fieldRow(fieldIndustry, fmt.Sprintf("◀ %s ▶", industry)))
	b.WriteString("\n")

	for _, f := range []field{fieldWebsite, fieldCompanyID, fieldRawData} {
		b.WriteString(m.fieldRow(f, m.inputs[f].View()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case s.Loading:
		b.WriteString(m.spinner.View() + " 分析中...")
	case s.Error != "":
		b.WriteString(m.styles.Error.Render(s.Error))
	}
	b.WriteString("\n")

	if s.VisibleReport() != nil {
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
		switch {
		case s.SolutionsLoading:
			b.WriteString(m.spinner.View() + " 搜尋中...\n")
		case s.SolutionsError != "":
			b.WriteString(m.styles.Error.Render(s.SolutionsError) + "\n")
		}
	}

	b.WriteString(m.styles.Help.Render("tab 切換欄位 • ↑/↓ 選擇建議 • enter 產生分析 • ctrl+s 搜尋推薦方案 • ctrl+c 離開"))
	return b.String()
}

func (m Model) fieldRow(f field, content string) string {
	label := m.styles.Label
	if m.focus == f {
		label = m.styles.FocusLabel
	}
	return label.Render(fieldLabels[f]) + content
}

func (m Model) suggestionPanel(s assistant.State) string {
	lines := make([]string, 0, len(s.Suggestions))
	for i, p := range s.Suggestions {
		if i == s.ActiveIndex {
			lines = append(lines, m.styles.Highlighted.Render(p.Name))
		} else {
			lines = append(lines, m.styles.Suggestion.Render(p.Name))
		}
	}
	return m.styles.Panel.Render(strings.Join(lines, "\n"))
}

// Run starts the program and blocks until the user quits
func Run(ctx context.Context, ctrl *assistant.Controller, industries []string, renderer *report.TerminalRenderer) error {
	p := tea.NewProgram(New(ctx, ctrl, industries, renderer), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
