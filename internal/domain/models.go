package domain

// Domain contains the request and response models of a news analysis.

const (
	InputTypeText = "text"
	InputTypeURL  = "url"
)

// AnalysisInput is the body of an analyze-news request.
type AnalysisInput struct {
	NewsInput string `json:"newsInput"`
	InputType string `json:"inputType"`
}

// OriginalAnalysis is the summary and entities extracted from the submitted article.
type OriginalAnalysis struct {
	Summary    string   `json:"summary"`
	Companies  []string `json:"companies"`
	Industries []string `json:"industries"`
	Themes     []string `json:"themes"`
}

// RetrievedArticle is the single best search hit for one generated query.
type RetrievedArticle struct {
	Title          string `json:"title"`
	URL            string `json:"url"`
	ContentSnippet string `json:"content_snippet"`
}

// DivergentPerspective is one alternative-source article framed against the original.
type DivergentPerspective struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Summary string `json:"summary"`
}

// AnalysisResult is the response of an analyze-news request.
type AnalysisResult struct {
	OriginalAnalysis      OriginalAnalysis       `json:"originalAnalysis"`
	DivergentPerspectives []DivergentPerspective `json:"divergentPerspectives"`
}
