package publishers

import (
	"time"

	"github.com/google/uuid"
	"github.com/samvad-hq/echohub-buster/internal/domain"
)

// Event is the payload published downstream after a successful analysis.
type Event struct {
	ID         string                `json:"id"`
	InputType  string                `json:"inputType"`
	SourceURL  string                `json:"sourceUrl,omitempty"`
	Result     domain.AnalysisResult `json:"result"`
	AnalyzedAt time.Time             `json:"analyzedAt"`
}

// NewEvent constructs an Event for the given request and result.
// SourceURL is only set for url inputs.
func NewEvent(input domain.AnalysisInput, result domain.AnalysisResult) Event {
	evt := Event{
		ID:         uuid.NewString(),
		InputType:  input.InputType,
		Result:     result,
		AnalyzedAt: time.Now().UTC(),
	}
	if input.InputType == domain.InputTypeURL {
		evt.SourceURL = input.NewsInput
	}
	return evt
}
