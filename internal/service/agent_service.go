package service

import (
	"context"
	"log"

	"github.com/tandemchat/tandem/internal/agent"
)

type AgentService struct {
	registry *agent.Registry
}

func NewAgentService(registry *agent.Registry) *AgentService {
	return &AgentService{registry: registry}
}

type ChatResult struct {
	Success      bool           `json:"success"`
	Response     string         `json:"response"`
	AgentType    string         `json:"agent_type"`
	Capabilities []string       `json:"capabilities"`
	Metadata     map[string]any `json:"metadata"`
	Error        string         `json:"error,omitempty"`
}

type SearchResult struct {
	Success       bool           `json:"success"`
	Query         string         `json:"query"`
	Summary       string         `json:"summary"`
	SearchResults map[string]any `json:"search_results,omitempty"`
	SourcesCount  int            `json:"sources_count"`
	Error         string         `json:"error,omitempty"`
}

// Chat dispatches the message to the selected agent. An unknown selector is
// the caller's error; anything that goes wrong inside the agent is folded
// into a success:false result so one bad invocation never breaks the HTTP
// contract.
func (s *AgentService) Chat(ctx context.Context, message, agentType string) (*ChatResult, error) {
	a, err := s.registry.Get(ctx, agentType)
	if err != nil {
		return nil, err
	}

	result, execErr := a.Execute(ctx, message)
	if execErr != nil {
		log.Printf("ERROR [service.Agent] %s agent execution failed: %v", agentType, execErr)
		return &ChatResult{
			Success:      false,
			AgentType:    agentType,
			Capabilities: []string{},
			Metadata:     map[string]any{},
			Error:        execErr.Error(),
		}, nil
	}

	return &ChatResult{
		Success:      result.Success,
		Response:     result.Content,
		AgentType:    agentType,
		Capabilities: a.Capabilities(),
		Metadata:     result.Metadata,
		Error:        result.Error,
	}, nil
}

// Search runs the search agent over a query wrapped in a research prompt and
// reshapes the outcome into the search response contract.
func (s *AgentService) Search(ctx context.Context, query string) (*SearchResult, error) {
	a, err := s.registry.Get(ctx, agent.TypeSearch)
	if err != nil {
		return nil, err
	}

	searchPrompt := "Search for information about: " + query +
		". Provide a comprehensive summary with key findings."

	result, execErr := a.Execute(ctx, searchPrompt)
	if execErr != nil {
		log.Printf("ERROR [service.Agent] search agent execution failed: %v", execErr)
		return &SearchResult{Success: false, Query: query, Error: execErr.Error()}, nil
	}

	if !result.Success {
		return &SearchResult{Success: false, Query: query, Error: result.Error}, nil
	}

	return &SearchResult{
		Success:       true,
		Query:         query,
		Summary:       result.Content,
		SearchResults: result.Metadata,
		SourcesCount:  sourcesCount(result.Metadata),
	}, nil
}

// Capabilities reports the capability set of every known agent.
func (s *AgentService) Capabilities(ctx context.Context) (map[string][]string, error) {
	caps := make(map[string][]string)
	for _, selector := range []string{agent.TypeChat, agent.TypeSearch} {
		a, err := s.registry.Get(ctx, selector)
		if err != nil {
			return nil, err
		}
		caps[selector+"_agent"] = a.Capabilities()
	}
	return caps, nil
}

func sourcesCount(metadata map[string]any) int {
	for _, key := range []string{"tool_run_count", "tools_used"} {
		switch v := metadata[key].(type) {
		case int:
			return v
		case float64:
			return int(v)
		}
	}
	return 0
}
