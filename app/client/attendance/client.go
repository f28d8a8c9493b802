package attendance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"officesync-ai/app/config"

	"github.com/samber/do"
)

const requestTimeout = 10 * time.Second

// HistoryRecord is one check-in/check-out row as served by the
// attendance service.
type HistoryRecord struct {
	CheckInTime  string `json:"checkInTime"`
	Type         string `json:"type"`
	Status       string `json:"status"`
	LateMinutes  int    `json:"lateMinutes"`
	LocationName string `json:"locationName"`
}

// TimesheetDay is the per-day summary row of the monthly timesheet.
type TimesheetDay struct {
	Date              string             `json:"date"`
	TotalWorkingHours float64            `json:"totalWorkingHours"`
	Status            string             `json:"status"`
	Sessions          []TimesheetSession `json:"sessions"`
}

type TimesheetSession struct {
	LateMinutes int `json:"lateMinutes"`
}

// Client reads from the attendance service. Both endpoints are
// best-effort: any transport failure, non-200 status or malformed body
// yields an empty slice, never an error, so tool results stay
// well-formed.
type Client struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewClient(di *do.Injector) (*Client, error) {
	return &Client{
		cfg: do.MustInvoke[*config.Config](di),
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}, nil
}

func (c *Client) History(ctx context.Context, userID int64, month, year int) []HistoryRecord {
	var records []HistoryRecord
	c.fetch(ctx, "/history", userID, month, year, &records)

	return records
}

func (c *Client) Timesheet(ctx context.Context, userID int64, month, year int) []TimesheetDay {
	var days []TimesheetDay
	c.fetch(ctx, "/timesheet", userID, month, year, &days)

	return days
}

func (c *Client) fetch(ctx context.Context, path string, userID int64, month, year int, out any) {
	query := url.Values{}
	query.Set("month", strconv.Itoa(month))
	query.Set("year", strconv.Itoa(year))

	endpoint := fmt.Sprintf("%s%s?%s", c.cfg.Attendance.BaseURL, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		slog.Error("Failed to build attendance request", "path", path, "error", err)
		return
	}

	req.Header.Set("X-User-Id", strconv.FormatInt(userID, 10))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Warn("Attendance service unreachable", "path", path, "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("Attendance service returned non-200",
			"path", path,
			"status", resp.StatusCode)
		return
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Warn("Failed to read attendance response", "path", path, "error", err)
		return
	}

	if err = json.Unmarshal(body, out); err != nil {
		slog.Warn("Malformed attendance response", "path", path, "error", err)
	}
}
