package attendance

import (
	"context"
	"fmt"
	"time"

	"officesync-ai/app/client/attendance"
	"officesync-ai/app/service/tool"

	_ "embed"

	"github.com/elliotchance/pie/v2"
	"github.com/samber/do"
)

//go:embed prompt.txt
var instructionsPrompt string

const (
	toolHistory   = "get_attendance_history"
	toolTimesheet = "get_monthly_timesheet"

	// Sentinel results the model is instructed to narrate instead of
	// structured data.
	resultNoData            = "NO_DATA"
	resultNoDataMatchFilter = "NO_DATA_MATCH_FILTER"
)

// HistoryEntry is the compact record shape handed to the model, kept
// small to save tokens.
type HistoryEntry struct {
	Date        string `json:"date"`
	Time        string `json:"time"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	LateMinutes int    `json:"lateMinutes"`
	Location    string `json:"location"`
}

// TimesheetEntry is the compact per-day summary handed to the model.
type TimesheetEntry struct {
	Date             string  `json:"date"`
	TotalHours       float64 `json:"totalHours"`
	Status           string  `json:"status"`
	SessionsCount    int     `json:"sessionsCount"`
	LateMinutesTotal int     `json:"lateMinutesTotal"`
}

var _ tool.Module = (*Service)(nil)

// Service exposes the two read-only attendance tools.
type Service struct {
	client *attendance.Client

	// now is swappable in tests.
	now func() time.Time
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		client: do.MustInvoke[*attendance.Client](di),
		now:    time.Now,
	}, nil
}

func (s *Service) Definitions() []tool.Definition {
	return []tool.Definition{
		{
			Name:        toolHistory,
			Description: "Fetch the user's check-in/check-out history for a month, optionally filtered to a single day.",
			Parameters: []tool.Parameter{
				{Name: "day", Type: tool.TypeInteger, Description: "Day of month to filter on (only when the user asks about a specific day)"},
				{Name: "month", Type: tool.TypeInteger, Description: "Month to fetch (1-12), defaults to the current month"},
				{Name: "year", Type: tool.TypeInteger, Description: "Year to fetch (e.g. 2026), defaults to the current year"},
			},
		},
		{
			Name:        toolTimesheet,
			Description: "Fetch the user's per-day working-hours summary for a month.",
			Parameters: []tool.Parameter{
				{Name: "month", Type: tool.TypeInteger, Description: "Month to fetch (1-12), defaults to the current month"},
				{Name: "year", Type: tool.TypeInteger, Description: "Year to fetch (e.g. 2026), defaults to the current year"},
			},
		},
	}
}

func (s *Service) Instructions() string {
	return instructionsPrompt
}

func (s *Service) Execute(ctx context.Context, call tool.Call) (any, error) {
	resolved := resolveDate(call.Args, s.now())

	switch call.Name {
	case toolHistory:
		records := s.client.History(ctx, call.UserID, resolved.Month, resolved.Year)
		return shapeHistory(records, resolved.Day), nil
	case toolTimesheet:
		days := s.client.Timesheet(ctx, call.UserID, resolved.Month, resolved.Year)
		return shapeTimesheet(days), nil
	default:
		return nil, fmt.Errorf("unknown attendance tool %q", call.Name)
	}
}

func shapeHistory(records []attendance.HistoryRecord, dayFilter int) any {
	if len(records) == 0 {
		return resultNoData
	}

	type parsedRecord struct {
		at     time.Time
		record attendance.HistoryRecord
	}

	parsed := []parsedRecord{}
	for _, record := range records {
		at, ok := parseCheckInTime(record.CheckInTime)
		if !ok {
			continue
		}

		if dayFilter != 0 && at.Day() != dayFilter {
			continue
		}

		parsed = append(parsed, parsedRecord{at: at, record: record})
	}

	if len(parsed) == 0 {
		return resultNoDataMatchFilter
	}

	parsed = pie.SortUsing(parsed, func(a, b parsedRecord) bool {
		return a.at.Before(b.at)
	})

	return pie.Map(parsed, func(p parsedRecord) HistoryEntry {
		return HistoryEntry{
			Date:        p.at.Format("02/01/2006"),
			Time:        p.at.Format("15:04:05"),
			Type:        p.record.Type,
			Status:      p.record.Status,
			LateMinutes: p.record.LateMinutes,
			Location:    p.record.LocationName,
		}
	})
}

func shapeTimesheet(days []attendance.TimesheetDay) any {
	if len(days) == 0 {
		return resultNoData
	}

	present := pie.Filter(days, func(day attendance.TimesheetDay) bool {
		return day.Status != "Absent" || day.TotalWorkingHours > 0
	})

	entries := pie.Map(present, func(day attendance.TimesheetDay) TimesheetEntry {
		lateTotal := 0
		for _, session := range day.Sessions {
			lateTotal += session.LateMinutes
		}

		return TimesheetEntry{
			Date:             day.Date,
			TotalHours:       day.TotalWorkingHours,
			Status:           day.Status,
			SessionsCount:    len(day.Sessions),
			LateMinutesTotal: lateTotal,
		}
	})

	if len(entries) == 0 {
		return resultNoData
	}

	return entries
}
