package tools

import (
	"context"

	"github.com/blinkchat/assist/tool"
)

// FileService proposes file saves. The actual write happens only after
// user confirmation in the client.
type FileService interface {
	SaveFile(ctx context.Context, userID, filename, content string) (any, error)
}

func fileTools(svc FileService) []tool.Tool {
	saveFile := tool.NewFuncTool(
		"save_file",
		"Propose saving content to a text file on the user's device. Always ask the user for permission first; the actual save happens after confirmation in the UI.",
		objectSchema(map[string]any{
			"filename": stringProp("The name of the file (e.g., 'trip-checklist.txt', 'notes.md')"),
			"content":  stringProp("The content to write to the file. Should be well-formatted and organized."),
		}, "filename", "content"),
		func(ctx context.Context, userID string, args map[string]any) (any, error) {
			return svc.SaveFile(ctx, userID, strArg(args, "filename"), strArg(args, "content"))
		},
	)

	return []tool.Tool{saveFile}
}
