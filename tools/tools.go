// Package tools provides the built-in capability catalog: descriptors for
// email, calendar, messaging, web search, conversation intelligence and
// file handling, each delegating to a small injected service interface.
// The descriptors own names, descriptions and argument schemas; the
// services own the side effects.
package tools

import (
	"github.com/blinkchat/assist/tool"
)

// Deps bundles the service collaborators behind the catalog. Any nil
// service simply omits its tools from the returned set.
type Deps struct {
	Mail         MailService
	Calendar     CalendarService
	Messaging    MessagingService
	Search       SearchService
	Intelligence IntelligenceService
	Files        FileService
	Users        UserDirectory
}

// Catalog builds descriptors for every service present in deps, in a
// stable order suitable for direct registration.
func Catalog(deps Deps) []tool.Tool {
	var catalog []tool.Tool

	if deps.Mail != nil {
		catalog = append(catalog, mailTools(deps.Mail)...)
	}
	if deps.Calendar != nil {
		catalog = append(catalog, calendarTools(deps.Calendar)...)
	}
	if deps.Messaging != nil {
		catalog = append(catalog, messagingTools(deps.Messaging)...)
	}
	if deps.Search != nil {
		catalog = append(catalog, searchTools(deps.Search)...)
	}
	if deps.Intelligence != nil {
		catalog = append(catalog, intelligenceTools(deps.Intelligence)...)
	}
	if deps.Files != nil {
		catalog = append(catalog, fileTools(deps.Files)...)
	}
	if deps.Users != nil {
		catalog = append(catalog, userTools(deps.Users)...)
	}

	return catalog
}

// Argument extraction helpers. Schemas are validated by the executor
// before dispatch, so these only normalize types.

func strArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func intArg(args map[string]any, key string, def int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return def
	}
}

// Schema construction helpers, building the nested JSON-Schema maps at
// the descriptor boundary.

func objectSchema(properties map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func intProp(description string) map[string]any {
	return map[string]any{"type": "integer", "description": description}
}
