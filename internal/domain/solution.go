package domain

// SystexSolution is an entry of the bundled solution catalog
type SystexSolution struct {
	ID             string   `json:"id" yaml:"id"`
	Title          string   `json:"title" yaml:"title"`
	Summary        string   `json:"summary" yaml:"summary"`
	PainPoints     []string `json:"painPoints" yaml:"painPoints"`
	ValuePitch     string   `json:"valuePitch" yaml:"valuePitch"`
	OwnerUnit      string   `json:"ownerUnit" yaml:"ownerUnit"`
	SourceType     string   `json:"sourceType" yaml:"sourceType"`
	SourceFileName string   `json:"sourceFileName" yaml:"sourceFileName"`
	SourceLink     string   `json:"sourceLink,omitempty" yaml:"sourceLink"`
}

// RecommendedSystexSolution is a catalog solution plus the match metadata
// attached by the recommendation call
type RecommendedSystexSolution struct {
	SystexSolution
	Reason            string   `json:"reason,omitempty"`
	MatchedPainPoints []string `json:"matchedPainPoints,omitempty"`
}

// RecommendRequest is the body of the recommendation endpoint
type RecommendRequest struct {
	PainPoints []string `json:"painPoints"`
}

// RecommendResponse is the wrapped shape the recommendation endpoint emits
type RecommendResponse struct {
	Solutions []RecommendedSystexSolution `json:"solutions"`
}

// ResponseShape tags which wire shape a recommendation response arrived in
type ResponseShape int

const (
	ShapeWrapped ResponseShape = iota // {"solutions": [...]}
	ShapeBare                         // [...]
)

func (s ResponseShape) String() string {
	if s == ShapeBare {
		return "bare"
	}
	return "wrapped"
}

// RecommendationResult is the normalized form of a recommendation response
type RecommendationResult struct {
	Shape     ResponseShape
	Solutions []RecommendedSystexSolution
}

// SolutionMatch is the local scoring result of one catalog solution
type SolutionMatch struct {
	Solution          SystexSolution
	Score             float64
	MatchedPainPoints []string
}
