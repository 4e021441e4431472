package calendar

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/harrisonrobin/worklog/pkg/auth"
	"github.com/harrisonrobin/worklog/pkg/config"
	"github.com/harrisonrobin/worklog/pkg/task"
)

// Client fetches calendar events and maps them to work-log tasks.
// It reads the bearer token from the token store on every call; refreshing
// is the authorizer's job, not the client's.
type Client struct {
	cfg   *config.Config
	store auth.TokenStore
	opts  []option.ClientOption
}

// NewClient creates a calendar client. Extra options are passed through to
// the underlying service, which lets tests point it at a fake endpoint.
func NewClient(cfg *config.Config, store auth.TokenStore, opts ...option.ClientOption) *Client {
	return &Client{cfg: cfg, store: store, opts: opts}
}

// FetchDay fetches the events of one UTC day from the configured calendar
// and maps each to a Task with the given default project. Without a
// configured client ID or account it returns an empty result and makes no
// network call.
func (c *Client) FetchDay(ctx context.Context, day time.Time, project string) ([]task.Task, error) {
	if c.cfg.ClientID == "" || c.cfg.Account == "" {
		return nil, nil
	}

	tok, err := c.store.Token()
	if err != nil {
		return nil, fmt.Errorf("could not read cached token: %w", err)
	}
	if tok == nil {
		return nil, fmt.Errorf("no cached token; run 'worklog auth' first")
	}

	opts := append([]option.ClientOption{
		option.WithTokenSource(oauth2.StaticTokenSource(tok)),
	}, c.opts...)
	srv, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create calendar service: %w", err)
	}

	start, end := DayWindow(day)
	events, err := srv.Events.List(c.cfg.Account).
		SingleEvents(true).
		OrderBy("startTime").
		TimeMin(start.Format(time.RFC3339Nano)).
		TimeMax(end.Format(time.RFC3339Nano)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, c.listError(err)
	}

	tasks := make([]task.Task, 0, len(events.Items))
	for _, ev := range events.Items {
		t, err := task.FromEvent(ev, project)
		if err != nil {
			return nil, fmt.Errorf("could not convert event %q: %w", ev.Summary, err)
		}
		if task.Denylisted(t.Task) {
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// listError maps a failed events request to an error carrying the response
// status text. A 401 additionally clears the cached token so the next
// Authorize call runs the full flow again.
func (c *Client) listError(err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return fmt.Errorf("unable to retrieve events from calendar: %w", err)
	}

	if gerr.Code == http.StatusUnauthorized {
		if cerr := c.store.Clear(); cerr != nil {
			log.Printf("Warning: could not clear cached token: %v", cerr)
		}
	}

	log.Printf("events request failed: %s", gerr.Body)
	return fmt.Errorf("unable to retrieve events from calendar: %s", http.StatusText(gerr.Code))
}
