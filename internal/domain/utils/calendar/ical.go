package calendar

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/Badsnus/qrgen-studio/internal/domain/entity"
	"github.com/Badsnus/qrgen-studio/internal/domain/payload"
	"github.com/Badsnus/qrgen-studio/internal/domain/utils/location"
)

var ErrInvalidTime = errors.New("invalid event time")

var layouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"20060102T150405",
	"20060102T1504",
	"2006-01-02",
}

// ParseTime reads an event time as typed into the form. Times without a zone are read in
// the configured location.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, location.Location()); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
}

// EventToICS builds a calendar file for an event-type code, so the download can ship the
// event alongside the image. A missing end defaults to one hour after the start.
func EventToICS(fields entity.FormFields, now time.Time) ([]byte, error) {
	start, err := ParseTime(fields.Get(payload.FieldStart))
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	end := start.Add(time.Hour)
	if raw := fields.Get(payload.FieldEnd); raw != "" {
		if end, err = ParseTime(raw); err != nil {
			return nil, fmt.Errorf("end: %w", err)
		}
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//QRGen Studio//EN")
	cal.SetVersion("2.0")
	cal.SetCalscale("GREGORIAN")

	e := cal.AddEvent(uuid.NewString() + "@qrgen.studio")
	e.SetDtStampTime(now)
	e.SetCreatedTime(now)
	e.SetStartAt(start)
	e.SetEndAt(end)

	title := fields.Get(payload.FieldTitle)
	if title == "" {
		title = "Event"
	}
	e.SetSummary(title)
	if desc := fields.Get(payload.FieldDescription); desc != "" {
		e.SetDescription(desc)
	}
	if loc := fields.Get(payload.FieldLocation); loc != "" {
		e.SetLocation(loc)
	}
	e.SetStatus(ics.ObjectStatusConfirmed)
	e.SetTimeTransparency(ics.TransparencyOpaque)

	alarm := e.AddAlarm()
	alarm.SetAction(ics.ActionDisplay)
	alarm.AddProperty("TRIGGER;VALUE=DURATION", "-PT1H")
	alarm.SetDescription(fmt.Sprintf("Reminder: %s (in one hour)", title))

	var buf bytes.Buffer
	if err := cal.SerializeTo(&buf); err != nil {
		return nil, fmt.Errorf("error serializing calendar: %w", err)
	}
	return buf.Bytes(), nil
}
