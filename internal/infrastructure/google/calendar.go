package google

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	appmail "github.com/joimopro25-dot/allinstock-sub001/internal/application/mail"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/entity"
	"github.com/joimopro25-dot/allinstock-sub001/pkg/config"
)

var _ appmail.EventClient = (*CalendarClient)(nil)

const calendarEventsPath = "/calendars/primary/events"

// CalendarClient eventos del calendario principal del usuario.
type CalendarClient struct {
	api apiClient
}

// NewCalendarClient construye el cliente. limiter y calls pueden ser nil.
func NewCalendarClient(cfg config.MailConfig, limiter *rate.Limiter, calls CallRecorder) *CalendarClient {
	return &CalendarClient{api: newAPIClient("calendar", cfg.CalendarBaseURL, cfg.Timeout, limiter, calls)}
}

type eventTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
}

func (t eventTime) parse() time.Time {
	if t.DateTime != "" {
		if v, err := time.Parse(time.RFC3339, t.DateTime); err == nil {
			return v.UTC()
		}
	}
	if t.Date != "" {
		if v, err := time.Parse("2006-01-02", t.Date); err == nil {
			return v
		}
	}
	return time.Time{}
}

type attendee struct {
	Email string `json:"email"`
}

type calendarEvent struct {
	ID          string     `json:"id,omitempty"`
	Summary     string     `json:"summary"`
	Description string     `json:"description,omitempty"`
	Location    string     `json:"location,omitempty"`
	HTMLLink    string     `json:"htmlLink,omitempty"`
	Start       eventTime  `json:"start"`
	End         eventTime  `json:"end"`
	Attendees   []attendee `json:"attendees,omitempty"`
}

func (e calendarEvent) entity() entity.CalendarEvent {
	out := entity.CalendarEvent{
		ID:          e.ID,
		Summary:     e.Summary,
		Description: e.Description,
		Location:    e.Location,
		Start:       e.Start.parse(),
		End:         e.End.parse(),
		HTMLLink:    e.HTMLLink,
	}
	for _, a := range e.Attendees {
		out.Attendees = append(out.Attendees, a.Email)
	}
	return out
}

// FetchEvents eventos (expandidos) que empiezan en [from, to), ordenados por inicio.
func (c *CalendarClient) FetchEvents(ctx context.Context, token *oauth2.Token, from, to time.Time) ([]entity.CalendarEvent, error) {
	q := url.Values{}
	q.Set("timeMin", from.UTC().Format(time.RFC3339))
	q.Set("timeMax", to.UTC().Format(time.RFC3339))
	q.Set("singleEvents", "true")
	q.Set("orderBy", "startTime")
	var res struct {
		Items []calendarEvent `json:"items"`
	}
	if err := c.api.do(ctx, token, http.MethodGet, calendarEventsPath, q, nil, &res); err != nil {
		return nil, err
	}
	out := make([]entity.CalendarEvent, 0, len(res.Items))
	for _, it := range res.Items {
		out = append(out, it.entity())
	}
	return out, nil
}

// CreateEvent crea el evento y devuelve el guardado por Google.
func (c *CalendarClient) CreateEvent(ctx context.Context, token *oauth2.Token, ev entity.CalendarEvent) (*entity.CalendarEvent, error) {
	body := calendarEvent{
		Summary:     ev.Summary,
		Description: ev.Description,
		Location:    ev.Location,
		Start:       eventTime{DateTime: ev.Start.Format(time.RFC3339)},
		End:         eventTime{DateTime: ev.End.Format(time.RFC3339)},
	}
	for _, a := range ev.Attendees {
		body.Attendees = append(body.Attendees, attendee{Email: a})
	}
	var created calendarEvent
	if err := c.api.do(ctx, token, http.MethodPost, calendarEventsPath, nil, body, &created); err != nil {
		return nil, err
	}
	out := created.entity()
	return &out, nil
}
