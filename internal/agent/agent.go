// Package agent is the boundary to the AI agent runtime. The rest of the
// server only sees selectors, prompts and structured results; how an agent
// produces its answer stays behind the Agent interface.
package agent

import "context"

// Agent type selectors accepted by the registry.
const (
	TypeChat   = "chat"
	TypeSearch = "search"
)

// Result is the structured outcome of a single agent invocation.
type Result struct {
	Success  bool           `json:"success"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// Agent executes a natural-language request with a fixed capability set.
type Agent interface {
	Execute(ctx context.Context, query string) (*Result, error)
	Capabilities() []string
}
