package llm

import (
	"context"

	"github.com/podscribe/backend/internal/speech"
)

// Capability is the probed feature level of the configured backends,
// computed once at startup and passed down instead of re-checking at every
// call site.
type Capability string

const (
	CapabilityUnsupported      Capability = "unsupported"
	CapabilityTranscribe       Capability = "transcribe"
	CapabilityTranscribeTitles Capability = "transcribe+titles"
)

// ProbeCapability checks the speech backend and the title model once.
func ProbeCapability(ctx context.Context, rec speech.Recognizer, titles *Client) Capability {
	if rec == nil || rec.CheckAvailable(ctx) != nil {
		return CapabilityUnsupported
	}
	if titles.TitlesAvailable() {
		return CapabilityTranscribeTitles
	}
	return CapabilityTranscribe
}
