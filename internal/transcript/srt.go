package transcript

import "strings"

// ParseSRT parses SubRip content into segments. Blocks are separated by blank
// lines; a block with no timing line, or with timestamps that fail to parse,
// is skipped without affecting later blocks. SRT's comma millisecond separator
// is normalized to a dot before timestamp parsing.
func ParseSRT(content string) []Segment {
	content = strings.ReplaceAll(content, "\r\n", "\n")

	var segments []Segment
	for _, block := range strings.Split(content, "\n\n") {
		var lines []string
		for _, line := range strings.Split(block, "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				lines = append(lines, trimmed)
			}
		}
		if len(lines) < 2 {
			continue
		}

		timingIdx := -1
		for i, line := range lines {
			if strings.Contains(line, "-->") {
				timingIdx = i
				break
			}
		}
		if timingIdx < 0 || timingIdx == len(lines)-1 {
			continue
		}

		parts := strings.SplitN(lines[timingIdx], "-->", 2)
		start, okS := ParseTimestamp(strings.ReplaceAll(parts[0], ",", "."))
		end, okE := ParseTimestamp(strings.ReplaceAll(parts[1], ",", "."))
		if !okS || !okE {
			continue
		}

		text := strings.Join(lines[timingIdx+1:], " ")
		if seg, ok := NewSegment(start, end, text, ""); ok {
			segments = append(segments, seg)
		}
	}

	return segments
}
