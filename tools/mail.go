package tools

import (
	"context"

	"github.com/blinkchat/assist/tool"
)

// MailService handles the user's mailbox. Implementations typically wrap
// a Gmail-style API behind the user's stored credentials.
type MailService interface {
	Send(ctx context.Context, userID, to, subject, body string) (any, error)
	Reply(ctx context.Context, userID string, req ReplyRequest) (any, error)
	Read(ctx context.Context, userID string, q MailQuery) (any, error)
}

// ReplyRequest identifies the thread being answered and the reply content.
type ReplyRequest struct {
	ThreadID  string
	MessageID string
	To        string
	Subject   string
	Body      string
	InReplyTo string
}

// MailQuery filters inbox reads by date, free-text query and label.
type MailQuery struct {
	DateFilter  string
	StartDate   string
	EndDate     string
	Query       string
	MaxResults  int
	LabelFilter string
}

func mailTools(svc MailService) []tool.Tool {
	sendEmail := tool.NewFuncTool(
		"send_email",
		"Compose and send an email on the user's behalf. Write like a real person, no boilerplate.",
		objectSchema(map[string]any{
			"to":      stringProp("Recipient email"),
			"subject": stringProp("Short, natural subject line. 'Quick question about tomorrow' not 'Inquiry Regarding Upcoming Schedule'"),
			"body":    stringProp("Email body in natural language. Keep it 3-5 lines, warm opening, no filler phrases. Use [Recipient Name] and [Your Name] as placeholders."),
		}, "to", "subject", "body"),
		func(ctx context.Context, userID string, args map[string]any) (any, error) {
			return svc.Send(ctx, userID, strArg(args, "to"), strArg(args, "subject"), strArg(args, "body"))
		},
	)

	replyEmail := tool.NewFuncTool(
		"reply_email",
		"Reply to an email thread. Match the tone of the original email, casual to casual, formal to formal.",
		objectSchema(map[string]any{
			"threadId":  stringProp("Thread ID from read_emails"),
			"messageId": stringProp("Message ID to reply to"),
			"to":        stringProp("Recipient email address"),
			"subject":   stringProp("Subject line (usually 'Re: original subject')"),
			"body":      stringProp("Reply content. Keep it brief (2-5 lines), no boilerplate. Use [Recipient Name] and [Your Name] as placeholders."),
			"inReplyTo": stringProp("Original Message-ID header for threading"),
		}, "threadId", "to", "subject", "body"),
		func(ctx context.Context, userID string, args map[string]any) (any, error) {
			return svc.Reply(ctx, userID, ReplyRequest{
				ThreadID:  strArg(args, "threadId"),
				MessageID: strArg(args, "messageId"),
				To:        strArg(args, "to"),
				Subject:   strArg(args, "subject"),
				Body:      strArg(args, "body"),
				InReplyTo: strArg(args, "inReplyTo"),
			})
		},
	)

	readEmails := tool.NewFuncTool(
		"read_emails",
		"Read emails from the inbox by date (today/yesterday/DD-MM-YYYY) or date range. Can also search by 'query'.",
		objectSchema(map[string]any{
			"dateFilter":  stringProp("ALWAYS use this for dates: 'today', 'yesterday', 'last_3_days', 'last_7_days', 'last_30_days', a month name, or DD-MM-YYYY. Also accepts YYYY-MM-DD."),
			"startDate":   stringProp("Start date for range filter (DD-MM-YYYY)"),
			"endDate":     stringProp("End date for range filter (DD-MM-YYYY)"),
			"query":       stringProp("Keyword search (e.g. 'from:boss@gmail.com', 'is:unread'). Do not put dates here, use dateFilter."),
			"maxResults":  intProp("Max emails to return (default 20, max 50)"),
			"labelFilter": stringProp("Label filter: INBOX, SENT, STARRED, UNREAD. Leave empty or use 'ALL' to search everywhere."),
		}),
		func(ctx context.Context, userID string, args map[string]any) (any, error) {
			return svc.Read(ctx, userID, MailQuery{
				DateFilter:  strArg(args, "dateFilter"),
				StartDate:   strArg(args, "startDate"),
				EndDate:     strArg(args, "endDate"),
				Query:       strArg(args, "query"),
				MaxResults:  intArg(args, "maxResults", 20),
				LabelFilter: strArg(args, "labelFilter"),
			})
		},
	)

	return []tool.Tool{sendEmail, replyEmail, readEmails}
}
