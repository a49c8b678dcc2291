package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

// ParsedReply is a model reply split into user-facing text and structured data.
// Data is never nil.
type ParsedReply struct {
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

var fencedBlock = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*(.*?)```")

// ParseReply extracts a JSON object from a model reply. It tries, in order:
// the whole reply, the first fenced code block, and the first balanced
// {...} span. When none parses as an object the whole reply is the message.
func ParseReply(raw string) ParsedReply {
	trimmed := strings.TrimSpace(raw)

	if obj, ok := decodeObject(trimmed); ok {
		return fromObject(obj, "", raw)
	}

	if m := fencedBlock.FindStringSubmatchIndex(raw); m != nil {
		if obj, ok := decodeObject(raw[m[2]:m[3]]); ok {
			return fromObject(obj, raw[:m[0]]+raw[m[1]:], raw)
		}
	}

	for off := 0; off < len(raw); {
		start, end, ok := braceSpan(raw[off:])
		if !ok {
			break
		}
		start, end = start+off, end+off
		if obj, ok := decodeObject(raw[start:end]); ok {
			return fromObject(obj, raw[:start]+raw[end:], raw)
		}
		off = start + 1
	}

	return ParsedReply{Message: raw, Data: map[string]any{}}
}

func decodeObject(s string) (map[string]any, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") {
		return nil, false
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, false
	}
	return obj, true
}

func fromObject(obj map[string]any, prose, raw string) ParsedReply {
	out := ParsedReply{}

	if msg, ok := obj["message"].(string); ok && strings.TrimSpace(msg) != "" {
		out.Message = msg
	} else if p := strings.TrimSpace(prose); p != "" {
		out.Message = p
	} else {
		out.Message = raw
	}

	if data, ok := obj["data"].(map[string]any); ok {
		out.Data = data
		return out
	}
	out.Data = make(map[string]any, len(obj))
	for k, v := range obj {
		if k != "message" {
			out.Data[k] = v
		}
	}
	return out
}

// braceSpan finds the first balanced {...} span, ignoring braces inside JSON
// strings.
func braceSpan(s string) (int, int, bool) {
	start := strings.IndexByte(s, '{')
	for start >= 0 {
		depth := 0
		inString, escaped := false, false
		for i := start; i < len(s); i++ {
			c := s[i]
			if inString {
				switch {
				case escaped:
					escaped = false
				case c == '\\':
					escaped = true
				case c == '"':
					inString = false
				}
				continue
			}
			switch c {
			case '"':
				inString = true
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return start, i + 1, true
				}
			}
		}
		next := strings.IndexByte(s[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return 0, 0, false
}
