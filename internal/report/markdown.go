// Package report renders analysis reports and recommended solutions as
// Markdown, and as styled terminal text through glamour.
package report

import (
	"fmt"
	"strings"

	"github.com/salesai/backend/internal/domain"
)

// Placeholders for absent report sections
const (
	PlaceholderSummary    = "暫無摘要"
	PlaceholderTrends     = "暫無產業趨勢資料"
	PlaceholderPainPoints = "暫無痛點分析"
	NoMatchingSolutions   = "無精確匹配方案"
)

// Markdown renders the primary report. Optional sections appear only when present.
func Markdown(r *domain.AnalysisReport) string {
	if r == nil {
		r = &domain.AnalysisReport{}
	}

	var b strings.Builder

	b.WriteString("## 客戶背景摘要\n\n")
	if s := strings.TrimSpace(r.Summary); s != "" {
		b.WriteString(s)
	} else {
		b.WriteString(PlaceholderSummary)
	}
	b.WriteString("\n\n")

	b.WriteString("## 產業趨勢\n\n")
	writeList(&b, r.IndustryTrends, PlaceholderTrends)

	b.WriteString("## 客戶痛點\n\n")
	writeList(&b, r.PainPoints, PlaceholderPainPoints)

	if len(r.Solutions) > 0 {
		b.WriteString("## 建議方案\n\n")
		for _, s := range r.Solutions {
			fmt.Fprintf(&b, "- **%s**：%s\n", s.Title, s.Description)
		}
		b.WriteString("\n")
	}

	if st := r.SalesStrategy; st != nil {
		b.WriteString("## 銷售策略\n\n")
		if st.Positioning != "" {
			fmt.Fprintf(&b, "**定位**：%s\n\n", st.Positioning)
		}
		if len(st.Messages) > 0 {
			b.WriteString("**關鍵訊息**\n\n")
			writeList(&b, st.Messages, "")
		}
		if len(st.NextSteps) > 0 {
			b.WriteString("**下一步**\n\n")
			writeList(&b, st.NextSteps, "")
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// SolutionsMarkdown renders the recommended solutions section
func SolutionsMarkdown(solutions []domain.RecommendedSystexSolution) string {
	var b strings.Builder

	b.WriteString("## 精誠推薦解決方案\n\n")
	b.WriteString("依據客戶痛點，自動比對精誠集團既有解決方案供業務提案參考。\n\n")

	if len(solutions) == 0 {
		fmt.Fprintf(&b, "### %s\n\n", NoMatchingSolutions)
		b.WriteString("目前沒有找到完全匹配的解決方案，建議參考報告中的通用型建議。\n")
		return b.String()
	}

	for _, s := range solutions {
		fmt.Fprintf(&b, "### %s\n\n", s.Title)
		if s.OwnerUnit != "" {
			fmt.Fprintf(&b, "**負責單位**：%s\n\n", s.OwnerUnit)
		}
		if len(s.MatchedPainPoints) > 0 {
			fmt.Fprintf(&b, "**對應痛點**：%s\n\n", strings.Join(s.MatchedPainPoints, "、"))
		}
		if s.Summary != "" {
			b.WriteString(s.Summary + "\n\n")
		}
		if s.Reason != "" {
			fmt.Fprintf(&b, "**推薦理由**：%s\n\n", s.Reason)
		}
		if s.ValuePitch != "" {
			fmt.Fprintf(&b, "**業務話術**\n\n> %s\n\n", s.ValuePitch)
		}
		if s.SourceLink != "" {
			fmt.Fprintf(&b, "[了解更多](%s)\n\n", s.SourceLink)
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeList(b *strings.Builder, items []string, placeholder string) {
	n := 0
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			fmt.Fprintf(b, "- %s\n", item)
			n++
		}
	}
	if n == 0 && placeholder != "" {
		b.WriteString(placeholder + "\n")
	}
	b.WriteString("\n")
}
