package transcript

import "testing"

func TestParseVTTBasic(t *testing.T) {
	segments := ParseVTT("WEBVTT\n\n00:00:01.000 --> 00:00:03.000\nHello world\n")
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	seg := segments[0]
	if seg.StartTime != 1.0 || seg.EndTime != 3.0 {
		t.Errorf("times = (%v, %v), want (1, 3)", seg.StartTime, seg.EndTime)
	}
	if seg.Text != "Hello world" {
		t.Errorf("text = %q, want %q", seg.Text, "Hello world")
	}
	if seg.Speaker != "" {
		t.Errorf("speaker = %q, want empty", seg.Speaker)
	}
	if seg.ID == "" {
		t.Error("segment should have an id")
	}
}

func TestParseVTTVoiceTag(t *testing.T) {
	content := "WEBVTT\n\n00:00:01.000 --> 00:00:03.000\n<v Alice>Hi there</v>\n"
	segments := ParseVTT(content)
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0].Speaker != "Alice" {
		t.Errorf("speaker = %q, want %q", segments[0].Speaker, "Alice")
	}
	if segments[0].Text != "Hi there" {
		t.Errorf("text = %q, want %q", segments[0].Text, "Hi there")
	}
}

func TestParseVTTFirstVoiceTagWins(t *testing.T) {
	content := "WEBVTT\n\n00:00:01.000 --> 00:00:03.000\n<v Alice>Hi</v>\n<v Bob>Bye</v>\n"
	segments := ParseVTT(content)
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0].Speaker != "Alice" {
		t.Errorf("speaker = %q, want %q", segments[0].Speaker, "Alice")
	}
	if segments[0].Text != "Hi Bye" {
		t.Errorf("text = %q, want %q", segments[0].Text, "Hi Bye")
	}
}

func TestParseVTTMalformedCueSkipped(t *testing.T) {
	content := "WEBVTT\n\n" +
		"bogus --> 00:00:02.000\nshould be dropped\n\n" +
		"00:00:03.000 --> 00:00:04.000\nstill here\n"
	segments := ParseVTT(content)
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0].Text != "still here" {
		t.Errorf("text = %q, want %q", segments[0].Text, "still here")
	}
}

func TestParseVTTCueSettings(t *testing.T) {
	content := "WEBVTT\n\n00:00:01.000 --> 00:00:03.000 align:start position:0%\nsettings cue\n"
	segments := ParseVTT(content)
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0].EndTime != 3.0 {
		t.Errorf("end = %v, want 3", segments[0].EndTime)
	}
}

func TestParseVTTSkipsBlocksAndIdentifiers(t *testing.T) {
	content := "WEBVTT\n\n" +
		"NOTE this is a comment\nspanning lines\n\n" +
		"STYLE\n::cue { color: red }\n\n" +
		"42\n00:00:01.000 --> 00:00:02.000\nfirst\n\n" +
		"chapter-intro\n00:00:05.000 --> 00:00:06.000\nsecond\n"
	segments := ParseVTT(content)
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[0].Text != "first" || segments[1].Text != "second" {
		t.Errorf("texts = %q, %q", segments[0].Text, segments[1].Text)
	}
}

func TestParseVTTStripsFormattingTags(t *testing.T) {
	content := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\n<b>bold</b> and <i>italic</i> <00:00:01.500>timed\n"
	segments := ParseVTT(content)
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0].Text != "bold and italic timed" {
		t.Errorf("text = %q", segments[0].Text)
	}
}

func TestParseVTTMultilineJoinedWithSpace(t *testing.T) {
	content := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nline one\nline two\n"
	segments := ParseVTT(content)
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0].Text != "line one line two" {
		t.Errorf("text = %q", segments[0].Text)
	}
}

func TestParseVTTEmptyCueDropped(t *testing.T) {
	content := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\n<b></b>\n\n00:00:03.000 --> 00:00:04.000\nkept\n"
	segments := ParseVTT(content)
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0].Text != "kept" {
		t.Errorf("text = %q, want %q", segments[0].Text, "kept")
	}
}

func TestParseVTTShortTimestamps(t *testing.T) {
	// MM:SS.mmm form is accepted alongside HH:MM:SS.mmm.
	content := "WEBVTT\n\n02:03.250 --> 02:05.000\nshort form\n"
	segments := ParseVTT(content)
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0].StartTime != 123.25 {
		t.Errorf("start = %v, want 123.25", segments[0].StartTime)
	}
}
