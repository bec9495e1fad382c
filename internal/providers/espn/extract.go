package espn

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// maxEventSearchDepth bounds how far below the decoded object events are looked for.
const maxEventSearchDepth = 4

// ExtractEvents pulls scoreboard event objects out of the page's inline scripts.
// A page without a usable payload yields an empty list and no error.
func ExtractEvents(body []byte) ([]map[string]any, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}

	var events []map[string]any
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		text := s.Text()
		if !strings.Contains(strings.ToLower(text), "scoreboard") {
			return
		}
		for _, marker := range payloadMarkers {
			obj, ok := decodeAfterMarker(text, marker)
			if !ok {
				continue
			}
			events = append(events, findEvents(obj, 0)...)
			break
		}
	})
	return events, nil
}

// decodeAfterMarker decodes the first balanced JSON object following marker.
func decodeAfterMarker(text, marker string) (map[string]any, bool) {
	idx := strings.Index(text, marker)
	if idx < 0 {
		return nil, false
	}
	rest := text[idx+len(marker):]
	start := strings.IndexByte(rest, '{')
	if start < 0 {
		return nil, false
	}
	candidate, ok := balancedObject(rest[start:])
	if !ok {
		return nil, false
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(candidate), &obj); err != nil {
		return nil, false
	}
	return obj, true
}

// balancedObject returns the prefix of s, which must start with '{', up to the
// matching closing brace. Braces inside string literals are ignored.
func balancedObject(s string) (string, bool) {
	if s == "" || s[0] != '{' {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
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
				return s[:i+1], true
			}
		}
	}
	return "", false
}

// findEvents returns the events array from obj["events"] or obj["scoreboard"]["events"],
// searching nested objects when neither is present at this level.
func findEvents(obj map[string]any, depth int) []map[string]any {
	if events, ok := eventList(obj["events"]); ok {
		return events
	}
	if sb, ok := obj["scoreboard"].(map[string]any); ok {
		if events, ok := eventList(sb["events"]); ok {
			return events
		}
	}
	if depth >= maxEventSearchDepth {
		return nil
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if child, ok := obj[k].(map[string]any); ok {
			if events := findEvents(child, depth+1); len(events) > 0 {
				return events
			}
		}
	}
	return nil
}

func eventList(v any) ([]map[string]any, bool) {
	raw, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if event, ok := item.(map[string]any); ok {
			out = append(out, event)
		}
	}
	return out, true
}
