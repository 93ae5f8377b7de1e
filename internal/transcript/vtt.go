package transcript

import (
	"regexp"
	"strings"
)

var tagRe = regexp.MustCompile(`<[^>]*>`)

// ParseVTT parses WebVTT content into segments. Cue identifiers, NOTE/STYLE/
// REGION blocks, and cues with unparseable timestamps are skipped; a bad cue
// never aborts the rest of the document. Voice tags (<v Name>) populate the
// segment speaker; all other inline tags are stripped.
func ParseVTT(content string) []Segment {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")

	var segments []Segment
	var start, end float64
	var textLines []string
	var speaker string
	inCue := false
	skipBlock := false

	flush := func() {
		if inCue {
			if seg, ok := NewSegment(start, end, strings.Join(textLines, " "), speaker); ok {
				segments = append(segments, seg)
			}
		}
		inCue = false
		textLines = nil
		speaker = ""
	}

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			flush()
			skipBlock = false
			continue
		}

		if skipBlock {
			continue
		}

		// Header line, with or without trailing metadata.
		if i == 0 && strings.HasPrefix(trimmed, "WEBVTT") {
			continue
		}

		if !inCue && (strings.HasPrefix(trimmed, "NOTE") ||
			strings.HasPrefix(trimmed, "STYLE") ||
			strings.HasPrefix(trimmed, "REGION")) {
			skipBlock = true
			continue
		}

		if strings.Contains(trimmed, "-->") {
			flush()
			parts := strings.SplitN(trimmed, "-->", 2)
			s, okS := ParseTimestamp(parts[0])
			// Cue settings may follow the end timestamp; only the first
			// token is the timestamp.
			endFields := strings.Fields(strings.TrimSpace(parts[1]))
			okE := false
			var e float64
			if len(endFields) > 0 {
				e, okE = ParseTimestamp(endFields[0])
			}
			if !okS || !okE {
				// Malformed timing line: consume it, drop the cue.
				continue
			}
			start, end = s, e
			inCue = true
			continue
		}

		if !inCue {
			// Cue identifier or arbitrary label before the timing line.
			continue
		}

		if cleaned := cleanCueLine(trimmed, &speaker); cleaned != "" {
			textLines = append(textLines, cleaned)
		}
	}
	flush()

	return segments
}

// cleanCueLine strips VTT markup from a cue text line, capturing the first
// voice-tag speaker seen in the cue.
func cleanCueLine(line string, speaker *string) string {
	if strings.HasPrefix(line, "<v ") {
		if close := strings.Index(line, ">"); close > 0 {
			if *speaker == "" {
				*speaker = strings.TrimSpace(line[3:close])
			}
			line = line[close+1:]
		}
	}
	line = strings.ReplaceAll(line, "</v>", "")
	line = tagRe.ReplaceAllString(line, "")
	return strings.TrimSpace(line)
}
