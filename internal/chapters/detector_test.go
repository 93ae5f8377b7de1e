package chapters

import (
	"context"
	"fmt"
	"math"
	"sort"
	"testing"

	"github.com/podscribe/backend/internal/transcript"
)

// topicalSegments builds a transcript where the vocabulary changes every
// topicLen seconds, giving the lexical similarity something to detect.
func topicalSegments(duration, topicLen float64) []transcript.Segment {
	topics := [][]string{
		{"rocket", "launch", "orbit", "booster", "payload", "countdown"},
		{"cooking", "recipe", "garlic", "simmer", "skillet", "seasoning"},
		{"football", "quarterback", "touchdown", "defense", "playoff", "stadium"},
		{"galaxy", "telescope", "nebula", "spectrum", "asteroid", "cosmic"},
		{"piano", "melody", "chord", "rhythm", "concert", "composer"},
		{"election", "senate", "ballot", "campaign", "precinct", "turnout"},
	}

	var segments []transcript.Segment
	for start := 0.0; start < duration; start += 15 {
		topic := topics[int(start/topicLen)%len(topics)]
		text := ""
		for i := 0; i < 8; i++ {
			text += topic[(int(start)+i)%len(topic)] + " "
		}
		seg, _ := transcript.NewSegment(start, start+15, text, "")
		segments = append(segments, seg)
	}
	return segments
}

func TestDetectBoundariesShortEpisode(t *testing.T) {
	segments := topicalSegments(30, 30)
	boundaries := DetectBoundaries(context.Background(), segments, 30, nil)
	if len(boundaries) != 1 || boundaries[0] != 0 {
		t.Fatalf("boundaries = %v, want [0]", boundaries)
	}
}

func TestDetectBoundariesCountBounds(t *testing.T) {
	duration := 45 * 60.0
	segments := topicalSegments(duration, 300)

	boundaries := DetectBoundaries(context.Background(), segments, duration, nil)

	if len(boundaries) < 5 || len(boundaries) > 9 {
		t.Fatalf("got %d boundaries, want between 5 and 9: %v", len(boundaries), boundaries)
	}
	if boundaries[0] != 0 {
		t.Errorf("first boundary = %v, want 0", boundaries[0])
	}
	if !sort.Float64sAreSorted(boundaries) {
		t.Errorf("boundaries not sorted: %v", boundaries)
	}
}

func TestDetectBoundariesMinimumGap(t *testing.T) {
	duration := 45 * 60.0
	segments := topicalSegments(duration, 300)

	boundaries := DetectBoundaries(context.Background(), segments, duration, nil)

	minGap := math.Max(60, duration/(9+1))
	for i := 1; i < len(boundaries); i++ {
		if gap := boundaries[i] - boundaries[i-1]; gap < minGap {
			t.Errorf("gap between %v and %v is %v, want >= %v",
				boundaries[i-1], boundaries[i], gap, minGap)
		}
	}
}

func TestDetectBoundariesFewWindows(t *testing.T) {
	// Two minutes produces only two windows, too few for similarity
	// analysis; boundaries fall back to even spacing.
	duration := 120.0
	segments := topicalSegments(duration, 60)

	boundaries := DetectBoundaries(context.Background(), segments, duration, nil)
	if len(boundaries) != 2 {
		t.Fatalf("boundaries = %v, want 2 evenly spaced", boundaries)
	}
	if boundaries[0] != 0 || boundaries[1] != 60 {
		t.Errorf("boundaries = %v, want [0 60]", boundaries)
	}
}

func TestDetectBoundariesNoText(t *testing.T) {
	boundaries := DetectBoundaries(context.Background(), nil, 600, nil)
	if len(boundaries) != 1 || boundaries[0] != 0 {
		t.Fatalf("boundaries = %v, want [0]", boundaries)
	}
}

type stubEmbedder struct {
	fn func(ctx context.Context, texts []string) ([][]float64, error)
}

func (s stubEmbedder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	return s.fn(ctx, texts)
}

func TestDetectBoundariesMissingVectorsMeanNoChange(t *testing.T) {
	duration := 45 * 60.0
	segments := topicalSegments(duration, 300)

	// Every vector missing: similarity is pinned to 1.0, no minima exist,
	// and only padding produces boundaries.
	emb := stubEmbedder{fn: func(ctx context.Context, texts []string) ([][]float64, error) {
		return make([][]float64, len(texts)), nil
	}}

	boundaries := DetectBoundaries(context.Background(), segments, duration, emb)
	if boundaries[0] != 0 {
		t.Fatalf("first boundary = %v, want 0", boundaries[0])
	}
	// Padding bisects gaps; every non-zero boundary must be a midpoint
	// rather than a window start found by a minimum.
	if len(boundaries) > 9 {
		t.Errorf("too many boundaries: %v", boundaries)
	}
}

func TestDetectBoundariesEmbedderFailureFallsBack(t *testing.T) {
	duration := 45 * 60.0
	segments := topicalSegments(duration, 300)

	emb := stubEmbedder{fn: func(ctx context.Context, texts []string) ([][]float64, error) {
		return nil, fmt.Errorf("backend down")
	}}

	boundaries := DetectBoundaries(context.Background(), segments, duration, emb)
	if len(boundaries) < 5 || len(boundaries) > 9 {
		t.Fatalf("got %d boundaries with lexical fallback, want 5-9: %v", len(boundaries), boundaries)
	}
}

func TestChapterRange(t *testing.T) {
	tests := []struct {
		minutes  float64
		min, max int
	}{
		{5, 2, 4},
		{20, 3, 6},
		{45, 5, 9},
		{90, 7, 12},
	}
	for _, tc := range tests {
		min, max := chapterRange(tc.minutes * 60)
		if min != tc.min || max != tc.max {
			t.Errorf("chapterRange(%vmin) = (%d, %d), want (%d, %d)",
				tc.minutes, min, max, tc.min, tc.max)
		}
	}
}

func TestMovingAverage(t *testing.T) {
	got := movingAverage([]float64{1, 2, 3, 4, 5}, 3)
	want := []float64{1.5, 2, 3, 4, 4.5}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("movingAverage[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestJaccardSimilarity(t *testing.T) {
	a := map[string]bool{"rocket": true, "orbit": true, "launch": true}
	b := map[string]bool{"rocket": true, "orbit": true, "recipe": true}
	if got := jaccardSimilarity(a, b); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("jaccard = %v, want 0.5", got)
	}
	if got := jaccardSimilarity(nil, nil); got != 1.0 {
		t.Errorf("jaccard of empty sets = %v, want 1", got)
	}
}

func TestSignificantWords(t *testing.T) {
	words := significantWords("The ROCKET, um, yeah like launched into orbit!")
	if words["rocket"] != true || words["launched"] != true || words["orbit"] != true {
		t.Errorf("missing content words: %v", words)
	}
	for _, stop := range []string{"the", "um", "yeah", "like", "into"} {
		if words[stop] {
			t.Errorf("stop/short word %q should be excluded", stop)
		}
	}
}
