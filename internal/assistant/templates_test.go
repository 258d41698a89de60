package assistant

import (
	"strings"
	"testing"
)

func TestSelectTemplateEmailKeyword(t *testing.T) {
	sel := SelectTemplate("Can you draft an email to the team?", ActionGeneral)

	if sel.Response != emailShortTemplate {
		t.Errorf("expected email template, got %q", sel.Response)
	}
	if len(sel.Actions) != 1 || sel.Actions[0] != "draft_email" {
		t.Errorf("expected draft_email action, got %v", sel.Actions)
	}
	if len(sel.Integrations) != 2 {
		t.Errorf("expected two suggested integrations, got %v", sel.Integrations)
	}
}

func TestSelectTemplateRuleOrder(t *testing.T) {
	// "email" outranks "meeting" because the email rule comes first.
	sel := SelectTemplate("email about the meeting", ActionGeneral)
	if sel.Response != emailShortTemplate {
		t.Errorf("expected email template to win, got %q", sel.Response)
	}
}

func TestSelectTemplateActionOverridesMessage(t *testing.T) {
	sel := SelectTemplate("tell me about email", ActionMeetingPrep)

	if sel.Response != meetingPrepTemplate {
		t.Errorf("expected meeting prep template for explicit action, got %q", sel.Response)
	}
	if len(sel.Actions) != 2 {
		t.Errorf("expected two autonomous actions, got %v", sel.Actions)
	}
}

func TestSelectTemplateEmailSubTemplates(t *testing.T) {
	cases := []struct {
		message string
		want    string
	}{
		{"please follow up with the client", emailFollowUpTemplate},
		{"set up a meeting with finance", emailMeetingTemplate},
		{"write something to the board", emailDraftTemplate},
	}

	for _, tc := range cases {
		sel := SelectTemplate(tc.message, ActionEmailDraft)
		if sel.Response != tc.want {
			t.Errorf("message %q: wrong email sub-template selected", tc.message)
		}
	}
}

func TestSelectTemplateGreeting(t *testing.T) {
	sel := SelectTemplate("hello there", ActionGeneral)

	if sel.Response != greetingTemplate {
		t.Errorf("expected greeting template, got %q", sel.Response)
	}
	if sel.Actions != nil || sel.Integrations != nil {
		t.Errorf("greeting should carry no suggestions, got %v / %v", sel.Actions, sel.Integrations)
	}
}

func TestSelectTemplateDefault(t *testing.T) {
	// Keyword matching is substring-based, so even "hi" inside a larger
	// word would trigger the greeting rule. Pick a message clear of all
	// trigger substrings.
	sel := SelectTemplate("tell me about our budget", ActionGeneral)

	if sel.Response != defaultTemplate {
		t.Errorf("expected catch-all template, got %q", sel.Response)
	}
}

func TestSelectTemplateCaseInsensitive(t *testing.T) {
	sel := SelectTemplate("DRAFT AN EMAIL", ActionGeneral)
	if sel.Response != emailShortTemplate {
		t.Errorf("keyword matching should be case-insensitive")
	}
}

func TestTemplatesMentionProduct(t *testing.T) {
	if !strings.Contains(greetingTemplate, "APEX AI") {
		t.Errorf("greeting template should introduce the assistant by name")
	}
}
