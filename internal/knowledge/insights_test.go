package knowledge

import (
	"strings"
	"testing"
)

func TestAnalyzeSentiment(t *testing.T) {
	cases := []struct {
		content string
		want    string
	}{
		{"The launch was a great success and we will improve further", "positive"},
		{"There is a problem with the rollout and a serious issue remains", "negative"},
		{"The meeting covered quarterly numbers", "neutral"},
		{"One good outcome but also one bad problem and another issue", "negative"},
	}

	for _, tc := range cases {
		if got := analyzeSentiment(tc.content); got != tc.want {
			t.Errorf("analyzeSentiment(%q) = %q, want %q", tc.content, got, tc.want)
		}
	}
}

func TestAnalyzeSentimentMatchesWholeWords(t *testing.T) {
	// "goodwill" must not count as "good".
	if got := analyzeSentiment("goodwill accounting adjustments"); got != "neutral" {
		t.Errorf("substring should not trigger sentiment, got %q", got)
	}
}

func TestExtractKeyPoints(t *testing.T) {
	content := "Short. This sentence is long enough to qualify as a key point. Also this one describes the project roadmap in detail. No."
	points := extractKeyPoints(content)

	if len(points) != 2 {
		t.Fatalf("expected 2 key points, got %d: %v", len(points), points)
	}
	for _, p := range points {
		if len(p) <= 20 {
			t.Errorf("key point too short: %q", p)
		}
	}
}

func TestExtractKeyPointsCapsAtFive(t *testing.T) {
	sentence := "This is a sufficiently long sentence for extraction purposes."
	content := strings.Repeat(sentence+" ", 8)

	if points := extractKeyPoints(content); len(points) != 5 {
		t.Errorf("expected cap of 5 key points, got %d", len(points))
	}
}

func TestImportanceScoreBounds(t *testing.T) {
	if got := importanceScore("nothing special here"); got != 5 {
		t.Errorf("expected base score 5, got %d", got)
	}

	loaded := "urgent important deadline asap meeting action " + strings.Repeat("x", 1001)
	if got := importanceScore(loaded); got != 10 {
		t.Errorf("expected 10 for fully loaded content, got %d", got)
	}
}

func TestParseInsightsFoldsResponseIntoSummary(t *testing.T) {
	insights := parseInsights("The document outlines the 2025 hiring plan.")
	if insights.Summary != "The document outlines the 2025 hiring plan." {
		t.Errorf("unexpected summary: %q", insights.Summary)
	}
	if insights.Sentiment != "positive" || insights.ImportanceScore != 8 {
		t.Errorf("canned fields changed: %+v", insights)
	}
}

func TestParseInsightsTruncatesLongSummaries(t *testing.T) {
	insights := parseInsights(strings.Repeat("a", 400))
	if len(insights.Summary) != 303 {
		t.Errorf("expected 300 chars plus ellipsis, got %d", len(insights.Summary))
	}
	if !strings.HasSuffix(insights.Summary, "...") {
		t.Errorf("expected ellipsis suffix")
	}
}
