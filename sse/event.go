package sse

import "strings"

// Event is a single decoded server-sent event.
type Event struct {
	// Name is the event type (from "event:" line). Empty for data-only events.
	Name string
	// Data is the event payload (from "data:" line(s)). Multi-line data is
	// joined with newlines.
	Data string
	// ID is the event ID (from "id:" line).
	ID string
}

// parseFrame decodes one complete frame (without its trailing blank line)
// into an Event. Returns false if the frame carries no fields, e.g. a
// comment-only heartbeat frame.
func parseFrame(frame string) (Event, bool) {
	var ev Event
	var hasData, hasField bool

	for _, line := range strings.Split(frame, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value := splitLine(line)
		switch field {
		case "data":
			if hasData {
				ev.Data += "\n" + value
			} else {
				ev.Data = value
				hasData = true
			}
			hasField = true
		case "event":
			ev.Name = value
			hasField = true
		case "id":
			ev.ID = value
			hasField = true
		}
	}

	return ev, hasField
}

// splitLine splits a frame line into field and value, stripping the single
// optional space after the colon per the SSE spec.
func splitLine(line string) (field, value string) {
	idx := strings.IndexByte(line, ':')
	if idx < 0 {
		return line, ""
	}
	field = line[:idx]
	value = line[idx+1:]
	if value != "" && value[0] == ' ' {
		value = value[1:]
	}
	return field, value
}
