package service

import (
	"context"
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/forgo/agenda/internal/model"
)

// calendarNamespace seeds the name-based UIDs of exported events
var calendarNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/forgo/agenda/events"))

const calendarProductID = "-//forgo//Agenda//ES"

// EventUID returns the stable iCalendar UID of the event stored under key
func EventUID(key model.EventKey) string {
	name := fmt.Sprintf("%s\x00%d\x00%d", key.Title, key.Start, key.End)
	return uuid.NewSHA1(calendarNamespace, []byte(name)).String() + "@agenda"
}

// ExportCalendar renders the events visible to identity as an iCalendar
// document. No events yields an empty VCALENDAR.
func (s *EventService) ExportCalendar(ctx context.Context, identity *Identity) (string, error) {
	summaries, err := s.visible(ctx, identity)
	if err != nil {
		return "", fmt.Errorf("listing events: %w", err)
	}
	return RenderCalendar(summaries, time.Now().UTC()), nil
}

// RenderCalendar builds a VCALENDAR with one VEVENT per summary
func RenderCalendar(summaries []*model.EventSummary, stamp time.Time) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(calendarProductID)

	for _, sum := range summaries {
		key := sum.Key()
		ev := cal.AddEvent(EventUID(key))
		ev.SetDtStampTime(stamp)
		ev.SetStartAt(key.StartTime())
		ev.SetEndAt(key.EndTime())
		ev.SetSummary(sum.Title)
		if sum.OwnerEmail != "" {
			ev.SetOrganizer("mailto:" + sum.OwnerEmail)
		}
		if sum.CategoryName != "" {
			ev.AddProperty(ical.ComponentPropertyCategories, sum.CategoryName)
		}
	}

	return cal.Serialize()
}
