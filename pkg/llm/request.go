package llm

// ChatRequest represents a chat completion request.
type ChatRequest struct {
	Model    string    `json:"model"`    // Model name (e.g., "gemma:2b", "mistral")
	Messages []Message `json:"messages"` // Conversation history, oldest first
	Stream   bool      `json:"stream"`   // Always sent; the client never consumes a stream
}

// NewChatRequest builds a non-streaming request carrying a single message.
func NewChatRequest(model, content, role string) *ChatRequest {
	return &ChatRequest{
		Model:    model,
		Messages: []Message{{Role: role, Content: content}},
		Stream:   false,
	}
}

// PullRequest asks the server to download a model.
type PullRequest struct {
	Name   string `json:"name"`
	Stream bool   `json:"stream"`
}

// PushRequest asks the server to upload a model to its registry.
type PushRequest struct {
	Name   string `json:"name"`
	Stream bool   `json:"stream"`
}

// EmbeddingsRequest asks for the embedding vector of a prompt.
type EmbeddingsRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}
