package chapters

import (
	"context"
	"log"
	"math"
	"sort"
	"strings"

	"github.com/podscribe/backend/internal/transcript"
)

const (
	windowWidth  = 120.0 // seconds of transcript per similarity window
	windowStride = 60.0
	minDuration  = 30.0 // below this the episode is too short to chapter
)

// Embedder produces semantic vectors for a batch of texts. A nil vector in
// the result means no embedding is available for that text.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// chapterRange gives the target chapter-count range for an episode duration.
func chapterRange(duration float64) (minChapters, maxChapters int) {
	minutes := duration / 60
	switch {
	case minutes < 10:
		return 2, 4
	case minutes < 30:
		return 3, 6
	case minutes < 60:
		return 5, 9
	default:
		return 7, 12
	}
}

type window struct {
	start float64
	text  string
}

// DetectBoundaries returns sorted chapter start times (always including 0)
// for the given segments. Adjacent 120s windows are scored for text
// similarity (embeddings when available, lexical overlap otherwise) and the
// deepest dips below the mean become boundaries, subject to a minimum gap.
// emb may be nil to force the lexical fallback.
func DetectBoundaries(ctx context.Context, segments []transcript.Segment, duration float64, emb Embedder) []float64 {
	if duration <= minDuration {
		return []float64{0}
	}

	minChapters, maxChapters := chapterRange(duration)
	windows := buildWindows(segments, duration)

	if len(windows) < 3 {
		return evenBoundaries(duration, minChapters, len(windows))
	}

	sims := windowSimilarities(ctx, windows, emb)
	smoothed := movingAverage(sims, 3)

	mean := 0.0
	for _, v := range smoothed {
		mean += v
	}
	mean /= float64(len(smoothed))

	type candidate struct {
		time  float64
		depth float64
	}
	var candidates []candidate
	for i := 1; i < len(smoothed)-1; i++ {
		if smoothed[i] < smoothed[i-1] && smoothed[i] < smoothed[i+1] {
			// The dip sits between windows i and i+1; the chapter starts at
			// the window after it.
			idx := i + 1
			if idx > len(windows)-1 {
				idx = len(windows) - 1
			}
			candidates = append(candidates, candidate{
				time:  windows[idx].start,
				depth: mean - smoothed[i],
			})
		}
	}
	sort.Slice(candidates, func(a, b int) bool {
		return candidates[a].depth > candidates[b].depth
	})

	minGap := math.Max(60, duration/float64(maxChapters+1))

	boundaries := []float64{0}
	for _, c := range candidates {
		if len(boundaries) >= maxChapters {
			break
		}
		if c.time <= minGap {
			continue
		}
		if tooClose(boundaries, c.time, minGap) {
			continue
		}
		boundaries = append(boundaries, c.time)
	}
	sort.Float64s(boundaries)

	boundaries = padBoundaries(boundaries, duration, minChapters, minGap)

	log.Printf("[chapters] detected %d boundaries (windows=%d, range=%d-%d)",
		len(boundaries), len(windows), minChapters, maxChapters)
	return boundaries
}

// buildWindows slices the timeline into overlapping windows, dropping any
// window no segment starts in.
func buildWindows(segments []transcript.Segment, duration float64) []window {
	var windows []window
	for start := 0.0; start < duration; start += windowStride {
		end := start + windowWidth
		var parts []string
		for _, seg := range segments {
			if seg.StartTime >= start && seg.StartTime < end {
				parts = append(parts, seg.Text)
			}
		}
		if len(parts) > 0 {
			windows = append(windows, window{start: start, text: strings.Join(parts, " ")})
		}
	}
	return windows
}

// evenBoundaries is the fallback when too few windows exist for similarity
// analysis.
func evenBoundaries(duration float64, minChapters, windowCount int) []float64 {
	n := minChapters
	if windowCount < n {
		n = windowCount
	}
	if n < 1 {
		return []float64{0}
	}
	boundaries := make([]float64, n)
	step := duration / float64(n)
	for i := range boundaries {
		boundaries[i] = float64(i) * step
	}
	return boundaries
}

// windowSimilarities scores each adjacent window pair in [-1, 1].
func windowSimilarities(ctx context.Context, windows []window, emb Embedder) []float64 {
	sims := make([]float64, len(windows)-1)

	if emb != nil {
		texts := make([]string, len(windows))
		for i, w := range windows {
			texts[i] = w.text
		}
		vectors, err := emb.Embed(ctx, texts)
		if err == nil && len(vectors) == len(windows) {
			for i := range sims {
				a, b := vectors[i], vectors[i+1]
				if a == nil || b == nil {
					// No vector means no evidence of change.
					sims[i] = 1.0
					continue
				}
				sims[i] = cosineSimilarity(a, b)
			}
			return sims
		}
		if err != nil {
			log.Printf("[chapters] embedding failed, using lexical similarity: %v", err)
		}
	}

	for i := range sims {
		sims[i] = jaccardSimilarity(significantWords(windows[i].text), significantWords(windows[i+1].text))
	}
	return sims
}

func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 1.0
	}
	var dot, aNorm, bNorm float64
	for i := range a {
		dot += a[i] * b[i]
		aNorm += a[i] * a[i]
		bNorm += b[i] * b[i]
	}
	if aNorm == 0 || bNorm == 0 {
		return 1.0
	}
	return dot / (math.Sqrt(aNorm) * math.Sqrt(bNorm))
}

// significantWords tokenizes a window into its lowercased content words:
// longer than 3 characters, punctuation stripped, stop words removed.
func significantWords(text string) map[string]bool {
	words := make(map[string]bool)
	for _, token := range strings.Fields(strings.ToLower(text)) {
		token = strings.TrimFunc(token, func(r rune) bool {
			return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
		})
		if len(token) <= 3 || stopWords[token] {
			continue
		}
		words[token] = true
	}
	return words
}

func jaccardSimilarity(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	intersection := 0
	for w := range a {
		if b[w] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 1.0
	}
	return float64(intersection) / float64(union)
}

// movingAverage smooths the series with a centered window; edges average over
// the neighbors that exist.
func movingAverage(series []float64, size int) []float64 {
	half := size / 2
	out := make([]float64, len(series))
	for i := range series {
		sum, n := 0.0, 0
		for j := i - half; j <= i+half; j++ {
			if j >= 0 && j < len(series) {
				sum += series[j]
				n++
			}
		}
		out[i] = sum / float64(n)
	}
	return out
}

func tooClose(boundaries []float64, t, minGap float64) bool {
	for _, b := range boundaries {
		if math.Abs(t-b) < minGap {
			return true
		}
	}
	return false
}

// padBoundaries bisects the largest remaining gaps until minChapters is
// reached or no midpoint clears the minimum gap. Falling short of minChapters
// is an accepted degenerate outcome.
func padBoundaries(boundaries []float64, duration float64, minChapters int, minGap float64) []float64 {
	for len(boundaries) < minChapters {
		type gap struct {
			start, end float64
		}
		var gaps []gap
		for i := 0; i < len(boundaries); i++ {
			end := duration
			if i < len(boundaries)-1 {
				end = boundaries[i+1]
			}
			gaps = append(gaps, gap{start: boundaries[i], end: end})
		}
		sort.Slice(gaps, func(a, b int) bool {
			return gaps[a].end-gaps[a].start > gaps[b].end-gaps[b].start
		})

		inserted := false
		for _, g := range gaps {
			mid := (g.start + g.end) / 2
			if tooClose(boundaries, mid, minGap) {
				continue
			}
			boundaries = append(boundaries, mid)
			sort.Float64s(boundaries)
			inserted = true
			break
		}
		if !inserted {
			break
		}
	}
	return boundaries
}
