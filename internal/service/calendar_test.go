package service

import (
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/forgo/agenda/internal/model"
)

func TestEventUID_Deterministic(t *testing.T) {
	t.Parallel()

	a := EventUID(model.EventKey{Title: "Standup", Start: 1000, End: 2000})
	b := EventUID(model.EventKey{Title: "Standup", Start: 1000, End: 2000})
	c := EventUID(model.EventKey{Title: "Standup", Start: 1000, End: 2001})

	if a != b {
		t.Errorf("same key produced %q and %q", a, b)
	}
	if a == c {
		t.Error("different keys produced the same UID")
	}
	if !strings.HasSuffix(a, "@agenda") {
		t.Errorf("unexpected UID %q", a)
	}
}

func TestRenderCalendar(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)
	summaries := []*model.EventSummary{
		{Title: "Standup", Start: start.UnixMilli(), End: end.UnixMilli(), OwnerEmail: "t@school.edu", CategoryName: "Work"},
		{Title: "Orphan", Start: start.UnixMilli(), End: end.UnixMilli(), OwnerEmail: "t@school.edu"},
	}

	out := RenderCalendar(summaries, start)

	cal, err := ical.ParseCalendar(strings.NewReader(out))
	if err != nil {
		t.Fatalf("rendered calendar does not parse: %v", err)
	}
	events := cal.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	first := events[0]
	if got := first.GetProperty(ical.ComponentPropertySummary).Value; got != "Standup" {
		t.Errorf("unexpected summary %q", got)
	}
	gotStart, err := first.GetStartAt()
	if err != nil || !gotStart.Equal(start) {
		t.Errorf("unexpected start %v (%v)", gotStart, err)
	}
	if p := first.GetProperty(ical.ComponentPropertyCategories); p == nil || p.Value != "Work" {
		t.Errorf("expected CATEGORIES Work, got %+v", p)
	}
	if p := first.GetProperty(ical.ComponentPropertyUniqueId); p == nil || p.Value != EventUID(summaries[0].Key()) {
		t.Errorf("unexpected UID %+v", p)
	}
	if p := events[1].GetProperty(ical.ComponentPropertyCategories); p != nil {
		t.Errorf("uncategorized event carries CATEGORIES %q", p.Value)
	}
}

func TestRenderCalendar_Empty(t *testing.T) {
	t.Parallel()

	out := RenderCalendar(nil, time.Now())

	if !strings.Contains(out, "BEGIN:VCALENDAR") || strings.Contains(out, "BEGIN:VEVENT") {
		t.Errorf("expected an empty calendar, got %q", out)
	}
}
