package assistant

import "strings"

// Action labels accepted on chat requests. Anything else is treated as
// general conversation.
const (
	ActionEmailDraft       = "email_draft"
	ActionMeetingPrep      = "meeting_prep"
	ActionReportGeneration = "report_generation"
	ActionTaskManagement   = "task_management"
	ActionIntegrationSetup = "integration_setup"
	ActionGeneral          = "general"
)

// Selection is the result of routing a message through the template
// table: the canned response plus the suggestion metadata the response
// envelope carries.
type Selection struct {
	Response     string
	Actions      []string
	Integrations []string
}

// templateRule pairs a predicate over the lower-cased message with the
// selection it produces. Rules are evaluated in order; first match wins.
type templateRule struct {
	matches func(input string) bool
	select_ func(input string) Selection
}

func containsAny(input string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(input, kw) {
			return true
		}
	}
	return false
}

func fixed(template string, actions, integrations []string) func(string) Selection {
	return func(string) Selection {
		return Selection{Response: template, Actions: actions, Integrations: integrations}
	}
}

var messageRules = []templateRule{
	{
		matches: func(in string) bool { return containsAny(in, "email", "draft") },
		select_: fixed(emailShortTemplate, []string{"draft_email"}, []string{"microsoft365", "google_workspace"}),
	},
	{
		matches: func(in string) bool { return containsAny(in, "meeting", "schedule") },
		select_: fixed(meetingShortTemplate, []string{"prepare_agenda"}, []string{"zoom", "google_workspace"}),
	},
	{
		matches: func(in string) bool { return containsAny(in, "report", "analysis") },
		select_: fixed(reportShortTemplate, []string{"generate_report"}, []string{"salesforce"}),
	},
	{
		matches: func(in string) bool { return containsAny(in, "task", "todo", "workflow") },
		select_: fixed(taskShortTemplate, []string{"prioritize_tasks"}, []string{"jira"}),
	},
	{
		matches: func(in string) bool { return containsAny(in, "integration", "connect", "automate") },
		select_: fixed(integrationTemplate, []string{"connect_platform"}, []string{"salesforce", "microsoft365", "slack"}),
	},
	{
		matches: func(in string) bool { return containsAny(in, "hello", "hi") },
		select_: fixed(greetingTemplate, nil, nil),
	},
	{
		matches: func(in string) bool { return containsAny(in, "help", "what can you do") },
		select_: fixed(helpTemplate, nil, nil),
	},
}

// SelectTemplate routes a chat request to a canned response. A known
// action wins over message keywords; otherwise the ordered message rules
// apply, falling through to the catch-all.
func SelectTemplate(message, action string) Selection {
	input := strings.ToLower(message)

	switch action {
	case ActionEmailDraft:
		return selectEmailTemplate(input)
	case ActionMeetingPrep:
		return Selection{Response: meetingPrepTemplate, Actions: []string{"prepare_agenda", "create_follow_ups"}, Integrations: []string{"zoom", "google_workspace"}}
	case ActionReportGeneration:
		return Selection{Response: reportTemplate, Actions: []string{"generate_report"}, Integrations: []string{"salesforce"}}
	case ActionTaskManagement:
		return Selection{Response: taskTemplate, Actions: []string{"prioritize_tasks", "set_reminders"}, Integrations: []string{"jira"}}
	case ActionIntegrationSetup:
		return Selection{Response: integrationTemplate, Actions: []string{"connect_platform"}, Integrations: []string{"salesforce", "microsoft365", "slack"}}
	}

	for _, rule := range messageRules {
		if rule.matches(input) {
			return rule.select_(input)
		}
	}

	return Selection{Response: defaultTemplate}
}

// selectEmailTemplate picks among the email drafting sub-templates based
// on message triggers.
func selectEmailTemplate(input string) Selection {
	sel := Selection{Actions: []string{"draft_email"}, Integrations: []string{"microsoft365", "google_workspace"}}
	switch {
	case containsAny(input, "follow up", "followup"):
		sel.Response = emailFollowUpTemplate
	case containsAny(input, "meeting", "schedule"):
		sel.Response = emailMeetingTemplate
	default:
		sel.Response = emailDraftTemplate
	}
	return sel
}

const emailFollowUpTemplate = `Subject: Follow-up on [Topic]

Hi [Name],

I wanted to follow up on our previous conversation regarding [specific topic].

Based on our discussion, the next steps are:
• [Action item 1]
• [Action item 2]
• [Action item 3]

Please let me know if you have any questions or if there's anything else I can help clarify.

Best regards,
[Your name]`

const emailMeetingTemplate = `Subject: Meeting Request - [Topic]

Hi [Name],

I hope this email finds you well. I'd like to schedule a meeting to discuss [topic/project].

Would you be available for a [30/60] minute meeting on [proposed date/time]? I'm also flexible with [alternative times].

Agenda items:
• [Item 1]
• [Item 2]
• [Item 3]

Please let me know what works best for your schedule.

Best regards,
[Your name]`

const emailDraftTemplate = `I'll help you draft a professional email. Based on your communication style, here's a template:

Subject: [Your subject here]

Hi [Recipient name],

[Opening line - context or greeting]

[Main message content]

[Call to action or next steps]

Best regards,
[Your name]

Would you like me to customize this template for your specific needs?`

const meetingPrepTemplate = `I'll help you prepare for your meeting! Here's a comprehensive preparation plan:

**Meeting Agenda Template:**
1. Opening & Introductions (5 min)
2. Review Previous Action Items (10 min)
3. Main Discussion Topics:
   • [Topic 1] (15 min)
   • [Topic 2] (15 min)
   • [Topic 3] (10 min)
4. Next Steps & Action Items (5 min)
5. Schedule Follow-up (5 min)

**Key Talking Points:**
• Current project status and milestones
• Challenges and proposed solutions
• Resource requirements and timelines
• Decision points requiring input

**Questions to Ask:**
• What are the main priorities for this quarter?
• Are there any blockers we should address?
• How can we improve our current process?

**Action Items Template:**
- [ ] [Task] - Assigned to: [Name] - Due: [Date]
- [ ] [Task] - Assigned to: [Name] - Due: [Date]

Would you like me to customize this for your specific meeting topic?`

const reportTemplate = `I'll help you create a comprehensive report. Here's a structured template:

**EXECUTIVE SUMMARY**
[Brief overview of key findings and recommendations]

**1. INTRODUCTION**
• Project/Analysis Overview
• Scope and Objectives
• Methodology Used

**2. KEY FINDINGS**
• Finding 1: [Description and supporting data]
• Finding 2: [Description and supporting data]
• Finding 3: [Description and supporting data]

**3. DATA ANALYSIS**
• Performance Metrics
• Trend Analysis
• Comparative Analysis

**4. RECOMMENDATIONS**
• Immediate Actions Required
• Medium-term Strategies
• Long-term Considerations

**5. NEXT STEPS**
• Priority Actions
• Timeline and Milestones
• Resource Requirements

**6. APPENDIX**
• Supporting Data
• Detailed Charts/Graphs
• Reference Materials

Would you like me to populate specific sections with your data?`

const taskTemplate = `I'll help you organize and prioritize your tasks! Here's an optimized task management approach:

**HIGH PRIORITY (Do First)**
• [Critical task with deadline]
• [Important meeting preparation]
• [Urgent client response]

**MEDIUM PRIORITY (Schedule Soon)**
• [Project milestone work]
• [Team coordination tasks]
• [Regular reporting duties]

**LOW PRIORITY (Do When Available)**
• [Research and learning]
• [Process improvements]
• [Documentation updates]

**TASK AUTOMATION OPPORTUNITIES**
• Email responses → Set up templates
• Meeting scheduling → Use calendar integration
• Status reports → Automate data collection
• File organization → Set up folder rules

**DELEGATION POSSIBILITIES**
• [Task 1] → [Team member]
• [Task 2] → [Team member]
• [Task 3] → [External resource]

**ESTIMATED TIME SAVINGS**
With proper prioritization and automation: ~2-3 hours per day

Would you like me to help you break down any specific tasks or set up automation rules?`

const integrationTemplate = `I can connect your workspace platforms and automate the routine work between them! Here's how integration setup works:

**AVAILABLE PLATFORMS**
• Salesforce CRM - lead management and pipeline automation
• Microsoft Office 365 - email, calendar, and document workflows
• Google Workspace - Gmail, Calendar, and Drive intelligence
• Slack - channel monitoring and automated responses
• Zoom - meeting transcription and follow-up generation
• Jira - ticket creation and sprint planning assistance

**WHAT HAPPENS WHEN YOU CONNECT**
• Secure OAuth authorization with the platform
• Data sync configured for your workflows
• Automation rules activated for routine tasks

Which platform would you like to connect first?`

const greetingTemplate = `Hello! I'm your APEX AI assistant, trained on your knowledge base and work patterns. I can help you with:

• Email drafting and communication
• Meeting preparation and follow-ups
• Report generation and analysis
• Task prioritization and automation
• Document processing and insights

What would you like to work on today?`

const helpTemplate = `I'm here to make you more effective at work! Here's how I can help:

**📧 Communication Assistant**
• Draft emails in your style
• Generate meeting agendas
• Create follow-up messages

**📊 Analysis & Reporting**
• Process and summarize documents
• Generate comprehensive reports
• Extract key insights from data

**⚡ Task Automation**
• Prioritize your daily tasks
• Set up workflow automation
• Manage project timelines

**🔗 Integration Support**
• Connect with Salesforce, Office 365, Slack
• Sync data across platforms
• Automate routine processes

I've learned from your communication patterns, meeting preferences, and work style. Just tell me what you need help with!`

const emailShortTemplate = "I'll help you draft an email! Based on your communication style, I recommend a professional yet friendly tone. Here's a template:\n\nSubject: [Your subject here]\n\nHi [Name],\n\nI hope this email finds you well. [Your message content]\n\nBest regards,\n[Your name]\n\nWould you like me to customize this further or help with specific content?"

const meetingShortTemplate = "I can help you with meeting preparation! Based on your calendar patterns, I notice you prefer meetings on Tuesday-Wednesday mornings. I can:\n\n• Generate meeting agendas\n• Prepare talking points\n• Send calendar invites\n• Create follow-up tasks\n\nWhat specific meeting support do you need?"

const reportShortTemplate = "I'll help you create a comprehensive report! Based on your previous documents, you prefer structured reports with:\n\n• Executive Summary\n• Key Findings\n• Data Analysis\n• Recommendations\n• Next Steps\n\nWhat data or topic should I analyze for your report?"

const taskShortTemplate = "Let me help you organize your tasks! I can:\n\n• Prioritize your to-do list\n• Set up automated reminders\n• Break down complex projects\n• Delegate tasks to team members\n• Track progress and deadlines\n\nWhat tasks would you like me to help organize?"

const defaultTemplate = `I understand you need assistance with that. Based on your work patterns and the knowledge I've learned from your uploads, I can help you accomplish this task more efficiently.

Could you provide a bit more detail about what specific outcome you're looking for? I can then:

• Break down the task into manageable steps
• Provide templates or frameworks
• Suggest automation opportunities
• Connect with your existing tools and workflows

What's the most important aspect of this task that you'd like me to focus on?`
