package tools

import (
	"context"

	"github.com/blinkchat/assist/tool"
)

// SearchService performs live web searches.
type SearchService interface {
	Search(ctx context.Context, userID, query string, maxResults int) (any, error)
}

// UserDirectory resolves platform users from free-text identifiers.
type UserDirectory interface {
	SearchUser(ctx context.Context, userID, query string) (any, error)
}

func searchTools(svc SearchService) []tool.Tool {
	webSearch := tool.NewFuncTool(
		"web_search",
		"Search the web for current information, latest news, facts, recent events and social media profiles. Provides real-time search results.",
		objectSchema(map[string]any{
			"query":      stringProp("The search query"),
			"maxResults": intProp("Maximum results (default: 5, max: 10)"),
		}, "query"),
		func(ctx context.Context, userID string, args map[string]any) (any, error) {
			return svc.Search(ctx, userID, strArg(args, "query"), intArg(args, "maxResults", 5))
		},
	)

	return []tool.Tool{webSearch}
}

func userTools(dir UserDirectory) []tool.Tool {
	searchUser := tool.NewFuncTool(
		"search_user",
		"Find a user by name, email, or phone. Use this before sending messages or starting conversations.",
		objectSchema(map[string]any{
			"query": stringProp("Name, email, or phone to search for"),
		}, "query"),
		func(ctx context.Context, userID string, args map[string]any) (any, error) {
			return dir.SearchUser(ctx, userID, strArg(args, "query"))
		},
	)

	return []tool.Tool{searchUser}
}
