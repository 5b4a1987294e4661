package tools

import (
	"context"

	"github.com/blinkchat/assist/tool"
)

// CalendarService manages the user's calendar events.
type CalendarService interface {
	CreateEvent(ctx context.Context, userID string, e EventRequest) (any, error)
	ListEvents(ctx context.Context, userID string, q EventQuery) (any, error)
	UpdateEvent(ctx context.Context, userID, eventID string, e EventRequest) (any, error)
	DeleteEvent(ctx context.Context, userID, eventID string) (any, error)
}

// EventRequest carries new or updated event fields. Empty fields are left
// unchanged on update.
type EventRequest struct {
	Title       string
	Description string
	StartTime   string
	EndTime     string
	Location    string
	TimeZone    string
}

// EventQuery filters event listings by date expressions or free text.
type EventQuery struct {
	DateFilter string
	StartDate  string
	EndDate    string
	Query      string
	MaxResults int
}

func calendarTools(svc CalendarService) []tool.Tool {
	addToCalendar := tool.NewFuncTool(
		"add_to_calendar",
		"Create a calendar event. Write the title like a real person would, 'Coffee with Raj' not 'Meeting: Coffee Discussion'.",
		objectSchema(map[string]any{
			"title":       stringProp("Short, natural event title: 'Lunch with Priya', 'Dentist appointment', 'Team standup'. No corporate jargon."),
			"description": stringProp("Brief personal note about the event, 1-2 lines max."),
			"startTime":   stringProp("Start time (DD-MM-YYYYTHH:MM:SS)"),
			"endTime":     stringProp("End time (optional, defaults to +1hr)"),
			"location":    stringProp("Location or meeting link"),
			"timeZone":    stringProp("Timezone (default: Asia/Kolkata)"),
		}, "title", "startTime"),
		func(ctx context.Context, userID string, args map[string]any) (any, error) {
			return svc.CreateEvent(ctx, userID, eventRequestFromArgs(args))
		},
	)

	readCalendarEvents := tool.NewFuncTool(
		"read_calendar_events",
		"Read calendar events. Filters: 'today','tomorrow','this_week','this_month','this_year','DD-MM-YYYY'. Use 'query' to search.",
		objectSchema(map[string]any{
			"dateFilter": stringProp("Date filter: 'today','tomorrow','this_week','this_month','this_year','DD-MM-YYYY'"),
			"startDate":  stringProp("Start date (DD-MM-YYYY) for custom range"),
			"endDate":    stringProp("End date (DD-MM-YYYY) for custom range"),
			"query":      stringProp("Search text (e.g., 'birthday', 'interview')"),
			"maxResults": intProp("Max results (default 25)"),
		}, "dateFilter"),
		func(ctx context.Context, userID string, args map[string]any) (any, error) {
			return svc.ListEvents(ctx, userID, EventQuery{
				DateFilter: strArg(args, "dateFilter"),
				StartDate:  strArg(args, "startDate"),
				EndDate:    strArg(args, "endDate"),
				Query:      strArg(args, "query"),
				MaxResults: intArg(args, "maxResults", 25),
			})
		},
	)

	updateCalendarEvent := tool.NewFuncTool(
		"update_calendar_event",
		"Update or reschedule an existing calendar event. Use natural titles and descriptions.",
		objectSchema(map[string]any{
			"eventId":     stringProp("Event ID from read_calendar_events"),
			"title":       stringProp("New title, keep it short and natural like 'Coffee with Raj'"),
			"description": stringProp("Brief personal note, 1-2 lines"),
			"startTime":   stringProp("New start time (DD-MM-YYYYTHH:MM:SS or yyyy-MM-ddTHH:mm:ss)"),
			"endTime":     stringProp("New end time (defaults to +1hr from startTime)"),
			"location":    stringProp("New location or meeting link"),
			"timeZone":    stringProp("Timezone (default: Asia/Kolkata)"),
		}, "eventId"),
		func(ctx context.Context, userID string, args map[string]any) (any, error) {
			return svc.UpdateEvent(ctx, userID, strArg(args, "eventId"), eventRequestFromArgs(args))
		},
	)

	deleteCalendarEvent := tool.NewFuncTool(
		"delete_calendar_event",
		"Delete or remove an existing calendar event. Use read_calendar_events first to find the correct event ID.",
		objectSchema(map[string]any{
			"eventId": stringProp("Event ID from read_calendar_events"),
		}, "eventId"),
		func(ctx context.Context, userID string, args map[string]any) (any, error) {
			return svc.DeleteEvent(ctx, userID, strArg(args, "eventId"))
		},
	)

	return []tool.Tool{addToCalendar, readCalendarEvents, updateCalendarEvent, deleteCalendarEvent}
}

func eventRequestFromArgs(args map[string]any) EventRequest {
	return EventRequest{
		Title:       strArg(args, "title"),
		Description: strArg(args, "description"),
		StartTime:   strArg(args, "startTime"),
		EndTime:     strArg(args, "endTime"),
		Location:    strArg(args, "location"),
		TimeZone:    strArg(args, "timeZone"),
	}
}
