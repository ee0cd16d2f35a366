package domain

// AnalysisReport is the structured sales report produced by the analysis call.
// Only Summary, IndustryTrends and PainPoints are guaranteed by the model schema;
// the remaining fields may be absent and decode to their zero values.
type AnalysisReport struct {
	Summary              string                      `json:"summary"`
	IndustryTrends       []string                    `json:"industry_trends"`
	PainPoints           []string                    `json:"pain_points"`
	Solutions            []Solution                  `json:"solutions,omitempty"`
	SalesStrategy        *SalesStrategy              `json:"sales_strategy,omitempty"`
	RecommendedSolutions []RecommendedSystexSolution `json:"recommendedSolutions,omitempty"`
}

// Solution is a free-form solution idea suggested by the model
type Solution struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SalesStrategy is the optional go-to-market section of a report
type SalesStrategy struct {
	Positioning string   `json:"positioning"`
	Messages    []string `json:"messages"`
	NextSteps   []string `json:"next_steps"`
}

// IsEmpty reports whether the report carries no content at all
func (r *AnalysisReport) IsEmpty() bool {
	if r == nil {
		return true
	}
	return r.Summary == "" &&
		len(r.IndustryTrends) == 0 &&
		len(r.PainPoints) == 0 &&
		len(r.Solutions) == 0 &&
		r.SalesStrategy == nil
}
