package streaming

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/metadata-ai/metadata-ai-go/pkg/types"
)

// mapEventType maps a raw SSE event tag to an EventType. Unrecognized tags
// fall back to content so new server-side event types degrade gracefully
// instead of failing the stream.
func mapEventType(raw string) types.EventType {
	switch raw {
	case "stream-start":
		return types.EventStart
	case "", "message":
		return types.EventContent
	case "tool-use":
		return types.EventToolUse
	case "stream-completed":
		return types.EventEnd
	case "error", "fatal-error":
		return types.EventError
	default:
		return types.EventContent
	}
}

// parseFrame decodes a single SSE frame. A frame without a data field
// carries no event and is dropped (heartbeats look like this); that is
// intentional, not an error.
func parseFrame(frame string) (types.StreamEvent, bool) {
	var eventType, data string
	for _, line := range strings.Split(frame, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "event:"):
			eventType = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		case strings.HasPrefix(line, "id:"):
			// Recognized but not surfaced.
		}
	}
	if data == "" {
		return types.StreamEvent{}, false
	}

	ev := types.StreamEvent{Type: mapEventType(eventType)}

	payload := gjson.Parse(data)
	if !gjson.Valid(data) || !payload.IsObject() {
		// Plain-text backends: treat the whole payload as content.
		ev.Content = data
		return ev, true
	}

	ev.ConversationID = payload.Get("conversationId").String()

	// Structured responses nest the message under data.message with content
	// split into typed blocks: text lives in content[].textMessage.message,
	// tool usage in content[].tools[].name. When the nested structure is
	// absent, a top-level content field is the fallback.
	if dataField := payload.Get("data"); dataField.IsObject() && len(dataField.Map()) > 0 {
		if msg := dataField.Get("message"); msg.IsObject() {
			if ev.ConversationID == "" {
				ev.ConversationID = msg.Get("conversationId").String()
			}
			if blocks := msg.Get("content"); blocks.IsArray() {
				var parts []string
				blocks.ForEach(func(_, block gjson.Result) bool {
					if !block.IsObject() {
						return true
					}
					if tm := block.Get("textMessage"); tm.Exists() {
						switch {
						case tm.IsObject():
							if m := tm.Get("message"); m.Exists() {
								parts = append(parts, m.String())
							}
						case tm.Type == gjson.String:
							parts = append(parts, tm.String())
						}
					}
					if tools := block.Get("tools"); tools.IsArray() {
						tools.ForEach(func(_, tool gjson.Result) bool {
							if ev.ToolName == "" {
								ev.ToolName = tool.Get("name").String()
							}
							return true
						})
					}
					return true
				})
				if len(parts) > 0 {
					ev.Content = strings.Join(parts, "")
				}
			}
		}
	} else if content := payload.Get("content"); content.Exists() {
		ev.Content = content.String()
	}

	if ev.ToolName == "" {
		ev.ToolName = payload.Get("toolName").String()
	}

	// The message-field fallback applies to error events only; anywhere
	// else a "message" field is unrelated payload data.
	if ev.Type == types.EventError {
		if errField := payload.Get("error"); errField.String() != "" {
			ev.Err = errField.String()
		} else if msgField := payload.Get("message"); msgField.String() != "" {
			ev.Err = msgField.String()
		}
	}

	return ev, true
}
