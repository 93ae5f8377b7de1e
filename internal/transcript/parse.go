package transcript

import "strings"

// Parse converts raw caption bytes into segments, dispatching on the URL (or
// filename) extension and the response content type. An ambiguous hint is
// tried as WebVTT first and falls back to the JSON parser when VTT yields
// nothing.
func Parse(data []byte, url, contentType string) []Segment {
	ext := strings.ToLower(url)
	if i := strings.Index(ext, "?"); i >= 0 {
		ext = ext[:i]
	}
	ct := strings.ToLower(contentType)

	switch {
	case strings.HasSuffix(ext, ".vtt") || strings.Contains(ct, "vtt"):
		return ParseVTT(string(data))
	case strings.HasSuffix(ext, ".json") || strings.Contains(ct, "json"):
		return ParseJSON(data)
	case strings.HasSuffix(ext, ".srt") || strings.Contains(ct, "subrip"):
		return ParseSRT(string(data))
	default:
		if segments := ParseVTT(string(data)); len(segments) > 0 {
			return segments
		}
		return ParseJSON(data)
	}
}
