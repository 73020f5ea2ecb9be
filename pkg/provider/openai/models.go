package openai

import (
	"context"

	"github.com/sashabaranov/go-openai"
)

// AssistantInfo is a short description of an assistant configured upstream.
type AssistantInfo struct {
	ID    string
	Name  string
	Model string
}

// ListAssistants fetches the assistants available to the configured API key,
// newest first, following pagination.
func ListAssistants(ctx context.Context, client *openai.Client) ([]AssistantInfo, error) {
	var infos []AssistantInfo
	limit := 100
	order := "desc"
	var after *string

	for {
		list, err := client.ListAssistants(ctx, &limit, &order, after, nil)
		if err != nil {
			return nil, err
		}
		for _, a := range list.Assistants {
			info := AssistantInfo{ID: a.ID, Model: a.Model}
			if a.Name != nil {
				info.Name = *a.Name
			}
			infos = append(infos, info)
		}
		if !list.HasMore || list.LastID == nil {
			break
		}
		after = list.LastID
	}
	return infos, nil
}
