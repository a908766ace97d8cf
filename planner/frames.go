package planner

import (
	"encoding/json"
	"strings"
)

// Frame is one discrete event extracted from the generation stream.
type Frame struct {
	Event string
	Data  json.RawMessage
}

// Stream event types. Anything else is passed through untouched and
// ignored by the assembler.
const (
	EventParse   = "parse"
	EventPlan    = "plan"
	EventPricing = "pricing"
	EventDone    = "done"
	EventMessage = "message"
)

// ParseFrames appends chunk to the carry-over buffer and extracts every
// complete frame. A frame block ends at a double newline; an "event:" line
// sets the event type (default "message"), one or more "data:" lines are
// concatenated into the payload. Blocks with no payload, and payloads that
// are not valid JSON, are dropped silently. The undelimited tail is
// returned as the new carry-over buffer.
//
// The function is pure over its two inputs so it can be tested without any
// transport.
func ParseFrames(buf, chunk string) ([]Frame, string) {
	buf += chunk
	var frames []Frame
	for {
		idx := strings.Index(buf, "\n\n")
		if idx < 0 {
			break
		}
		block := strings.TrimSpace(buf[:idx])
		buf = buf[idx+2:]
		if block == "" {
			continue
		}

		event := EventMessage
		var data strings.Builder
		for _, ln := range strings.Split(block, "\n") {
			switch {
			case strings.HasPrefix(ln, "event:"):
				event = strings.TrimSpace(ln[len("event:"):])
			case strings.HasPrefix(ln, "data:"):
				data.WriteString(strings.TrimSpace(ln[len("data:"):]))
			}
		}

		raw := data.String()
		if raw == "" || !json.Valid([]byte(raw)) {
			continue
		}
		frames = append(frames, Frame{Event: event, Data: json.RawMessage(raw)})
	}
	return frames, buf
}
