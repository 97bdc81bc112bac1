package types

// Turn is one role-tagged message in the conversation record.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Message             string `json:"message"`
	ConversationHistory []Turn `json:"conversationHistory,omitempty"`
}

type ChatResponse struct {
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
	Status    string `json:"status"`
}

type StoryRequest struct {
	InterviewData []string `json:"interviewData"`
	OutputType    string   `json:"outputType"`
}

type StoryResponse struct {
	Story       string `json:"story"`
	Type        string `json:"type"`
	GeneratedAt string `json:"generatedAt"`
	Status      string `json:"status"`
	// Derived from the generated markdown for the preview/export pane
	Title   string `json:"title,omitempty"`
	Summary string `json:"summary,omitempty"`
	HTML    string `json:"html,omitempty"`
}

type ErrorResponse struct {
	Error  string `json:"error"`
	Status string `json:"status"`
}
