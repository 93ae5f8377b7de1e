package transcript

import "encoding/json"

// jsonSegment is the Podcast Index transcript segment shape. endTime and
// speaker are optional; a missing endTime is synthesized as start + 5.
type jsonSegment struct {
	StartTime float64  `json:"startTime"`
	EndTime   *float64 `json:"endTime"`
	Body      string   `json:"body"`
	Speaker   string   `json:"speaker"`
}

// ParseJSON parses a Podcast Index style JSON transcript. This is the same
// shape the transcription engine persists locally, so tier-1 files round-trip
// through this parser. Malformed JSON yields an empty result, never an error.
func ParseJSON(data []byte) []Segment {
	var doc struct {
		Segments []jsonSegment `json:"segments"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil
	}

	var segments []Segment
	for _, js := range doc.Segments {
		end := js.StartTime + 5
		if js.EndTime != nil {
			end = *js.EndTime
		}
		if seg, ok := NewSegment(js.StartTime, end, js.Body, js.Speaker); ok {
			segments = append(segments, seg)
		}
	}
	return segments
}
