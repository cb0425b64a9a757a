package client

import (
	"bufio"
	"io"
	"strings"
)

// ServerEvent is one parsed unit of a server-sent event stream
type ServerEvent struct {
	ID    string
	Event string
	Data  string
}

// EventReader incrementally parses server-sent events from a stream body
type EventReader struct {
	r *bufio.Reader
}

// NewEventReader wraps a stream body
func NewEventReader(r io.Reader) *EventReader {
	return &EventReader{r: bufio.NewReader(r)}
}

// Next reads until one complete event (terminated by a blank line) has been
// parsed. Returns io.EOF when the stream ends; an event in progress at EOF
// is discarded, matching dispatch-on-blank-line semantics.
func (er *EventReader) Next() (*ServerEvent, error) {
	var ev ServerEvent
	dirty := false

	for {
		line, err := er.r.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")

		if line == "" {
			if dirty {
				return &ev, nil
			}
			continue
		}

		// Comment lines keep the connection alive, nothing more
		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")

		switch field {
		case "event":
			ev.Event = value
			dirty = true
		case "id":
			ev.ID = value
			dirty = true
		case "data":
			if ev.Data != "" {
				ev.Data += "\n"
			}
			ev.Data += value
			dirty = true
		default:
			// Unknown fields are ignored per the SSE contract
		}
	}
}
