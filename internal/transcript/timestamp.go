package transcript

import (
	"strconv"
	"strings"
)

// ParseTimestamp parses a caption timestamp into seconds. Three colon-separated
// components are hours:minutes:seconds, two are minutes:seconds. Anything else,
// or a non-numeric component, fails (ok=false) and the caller skips the cue.
func ParseTimestamp(s string) (float64, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")

	vals := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, false
		}
		vals[i] = v
	}

	switch len(vals) {
	case 3:
		return vals[0]*3600 + vals[1]*60 + vals[2], true
	case 2:
		return vals[0]*60 + vals[1], true
	default:
		return 0, false
	}
}

// FormatTimestamp renders seconds as HH:MM:SS.mmm for VTT output.
func FormatTimestamp(seconds float64) string {
	totalMs := int(seconds * 1000)
	if totalMs < 0 {
		totalMs = 0
	}
	h := totalMs / 3600000
	totalMs %= 3600000
	m := totalMs / 60000
	totalMs %= 60000
	sec := totalMs / 1000
	ms := totalMs % 1000
	return pad2(h) + ":" + pad2(m) + ":" + pad2(sec) + "." + pad3(ms)
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func pad3(n int) string {
	s := strconv.Itoa(n)
	for len(s) < 3 {
		s = "0" + s
	}
	return s
}
