package knowledge

// DocumentMetadata carries upload provenance for a document.
type DocumentMetadata struct {
	UploadDate    string   `json:"upload_date"`
	ProcessedDate string   `json:"processed_date,omitempty"`
	Source        string   `json:"source,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Category      string   `json:"category,omitempty"`
}

// Insights is the processing result attached to a document.
type Insights struct {
	Summary         string   `json:"summary"`
	KeyPoints       []string `json:"key_points"`
	Sentiment       string   `json:"sentiment"`
	ImportanceScore int      `json:"importance_score"`
}

// Document is a knowledge-base entry.
type Document struct {
	ID        string           `json:"id"`
	Filename  string           `json:"filename"`
	Type      string           `json:"type"`
	Size      int64            `json:"size"`
	Content   string           `json:"content"`
	Metadata  DocumentMetadata `json:"metadata"`
	Processed bool             `json:"processed"`
	Insights  *Insights        `json:"insights,omitempty"`
}

// SeedDocuments returns the demo documents every fresh store starts
// with.
func SeedDocuments() []Document {
	return []Document{
		{
			ID:       "1",
			Filename: "sales-strategy-2024.pdf",
			Type:     "pdf",
			Size:     245678,
			Content:  "Our sales strategy for 2024 focuses on expanding into new markets while strengthening relationships with existing clients. Key initiatives include digital transformation, enhanced customer experience, and data-driven decision making.",
			Metadata: DocumentMetadata{
				UploadDate:    "2024-01-10T09:30:00Z",
				ProcessedDate: "2024-01-10T09:35:00Z",
				Source:        "salesforce",
				Tags:          []string{"sales", "strategy", "2024"},
				Category:      "business_planning",
			},
			Processed: true,
			Insights: &Insights{
				Summary: "Comprehensive sales strategy document outlining growth objectives and market expansion plans for 2024.",
				KeyPoints: []string{
					"Digital transformation initiatives",
					"Customer experience enhancement",
					"Data-driven decision making framework",
					"New market expansion strategy",
				},
				Sentiment:       "positive",
				ImportanceScore: 9,
			},
		},
		{
			ID:       "2",
			Filename: "team-meeting-notes.txt",
			Type:     "txt",
			Size:     12543,
			Content:  "Weekly team meeting notes covering project updates, blockers, and next steps. Discussed Q1 objectives and resource allocation. Action items assigned to team members with deadlines.",
			Metadata: DocumentMetadata{
				UploadDate:    "2024-01-12T14:00:00Z",
				ProcessedDate: "2024-01-12T14:02:00Z",
				Source:        "meeting_notes",
				Tags:          []string{"meeting", "team", "weekly"},
				Category:      "meetings",
			},
			Processed: true,
			Insights: &Insights{
				Summary: "Weekly team synchronization covering project status, challenges, and action item assignment.",
				KeyPoints: []string{
					"Q1 objectives alignment",
					"Resource allocation decisions",
					"Project blocker identification",
					"Action item assignment",
				},
				Sentiment:       "neutral",
				ImportanceScore: 7,
			},
		},
	}
}
