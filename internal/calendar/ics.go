package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/okuzmin/concertcal/internal/event"
)

// GenerateICS generates an iCalendar (.ics) file for a single event
func GenerateICS(evt event.Event) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//concertcal//concertcal//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")

	writeVEvent(&ics, evt)

	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String()
}

// GenerateBulkICS generates a single calendar containing all given events.
// Returns an empty string when there are no events.
func GenerateBulkICS(events []event.Event, calendarName string) string {
	if len(events) == 0 {
		return ""
	}

	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//concertcal//concertcal//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	if calendarName != "" {
		ics.WriteString(fmt.Sprintf("X-WR-CALNAME:%s\r\n", escapeICS(calendarName)))
	}

	for _, evt := range events {
		writeVEvent(&ics, evt)
	}

	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String()
}

func writeVEvent(ics *strings.Builder, evt event.Event) {
	ics.WriteString("BEGIN:VEVENT\r\n")

	// UID - unique identifier for the event
	ics.WriteString(fmt.Sprintf("UID:%s@concertcal\r\n", evt.UID()))

	// DTSTAMP - timestamp when this calendar entry was created
	now := time.Now().UTC()
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(now)))

	ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatICSTime(evt.Start)))
	ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatICSTime(evt.End)))

	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(evt.Summary)))
	if evt.Description != "" {
		ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(evt.Description)))
	}

	// STATUS - confirmed
	ics.WriteString("STATUS:CONFIRMED\r\n")

	// SEQUENCE - version number for updates
	ics.WriteString("SEQUENCE:0\r\n")

	// TRANSP - show as busy
	ics.WriteString("TRANSP:OPAQUE\r\n")

	ics.WriteString("END:VEVENT\r\n")
}

// formatICSTime formats a time.Time as an iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	// Replace special characters according to RFC 5545
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
