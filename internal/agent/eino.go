package agent

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/tandemchat/tandem/internal/domain"
)

// ModelConfig carries the Ark credentials and model name used to back the
// eino chat chains.
type ModelConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Region  string
}

const chatSystemPrompt = "You are a helpful conversational assistant. " +
	"Answer the user's request directly and concisely."

const searchSystemPrompt = "You are a research assistant. Gather the most " +
	"relevant information for the user's query and respond with a " +
	"comprehensive summary of the key findings."

var capabilitiesByType = map[string][]string{
	TypeChat:   {"general_conversation", "context_awareness"},
	TypeSearch: {"web_search", "summarization"},
}

// NewEinoFactory returns a Factory producing eino-backed agents. Each agent
// compiles its chain (prompt template + Ark chat model) once, at
// construction.
func NewEinoFactory(cfg ModelConfig) Factory {
	return func(ctx context.Context, selector string) (Agent, error) {
		chatModel, err := newChatModel(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create chat model: %w", err)
		}

		switch selector {
		case TypeChat:
			return newChainAgent(ctx, chatModel, selector, chatSystemPrompt)
		case TypeSearch:
			return newChainAgent(ctx, chatModel, selector, searchSystemPrompt)
		default:
			return nil, domain.ErrUnknownAgent
		}
	}
}

func newChatModel(ctx context.Context, cfg ModelConfig) (model.ChatModel, error) {
	if cfg.APIKey == "" || cfg.Model == "" {
		return nil, fmt.Errorf("agent model configuration incomplete: ARK_API_KEY and ARK_MODEL are required")
	}

	return ark.NewChatModel(ctx, &ark.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		Region:  cfg.Region,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
	})
}

// chainAgent runs one compiled eino chain with a fixed system prompt.
type chainAgent struct {
	name         string
	system       string
	capabilities []string
	chain        compose.Runnable[map[string]any, *schema.Message]
}

func newChainAgent(ctx context.Context, chatModel model.ChatModel, name, system string) (*chainAgent, error) {
	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s agent chain: %w", name, err)
	}

	return &chainAgent{
		name:         name,
		system:       system,
		capabilities: capabilitiesByType[name],
		chain:        runnable,
	}, nil
}

func (a *chainAgent) Execute(ctx context.Context, query string) (*Result, error) {
	response, err := a.chain.Invoke(ctx, map[string]any{
		"system": a.system,
		"query":  query,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to run %s agent chain: %w", a.name, err)
	}

	metadata := map[string]any{"agent": a.name}
	if response.ResponseMeta != nil && response.ResponseMeta.Usage != nil {
		metadata["total_tokens"] = response.ResponseMeta.Usage.TotalTokens
	}

	return &Result{
		Success:  true,
		Content:  response.Content,
		Metadata: metadata,
	}, nil
}

func (a *chainAgent) Capabilities() []string {
	return a.capabilities
}
