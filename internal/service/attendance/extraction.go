package attendance

import (
	"bytes"
	"encoding/json"
	"strings"
)

// flexString accepts a JSON string, number or null. Models are inconsistent
// about quoting numeric fields.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// extractedShift is one attendance row as the model reports it.
type extractedShift struct {
	Name        flexString `json:"name"`
	Day         flexString `json:"day"`
	StartHour   flexString `json:"sh"`
	StartMinute flexString `json:"sm"`
	EndHour     flexString `json:"eh"`
	EndMinute   flexString `json:"em"`
}

// parseExtraction decodes the model's JSON array. Output cut off mid-array is
// repaired by keeping everything up to the last complete object; repaired
// reports whether that happened. Unrecoverable output yields no rows.
func parseExtraction(text string) (rows []extractedShift, repaired bool) {
	text = stripCodeFence(strings.TrimSpace(text))

	if err := json.Unmarshal([]byte(text), &rows); err == nil {
		return rows, false
	}

	start := strings.Index(text, "[")
	if start < 0 {
		return nil, true
	}
	candidate := text[start:]

	end := strings.LastIndexAny(candidate, "}]")
	if end < 0 {
		return nil, true
	}
	candidate = strings.TrimRight(candidate[:end+1], " \t\r\n")
	candidate = strings.TrimSuffix(candidate, ",")
	if strings.HasSuffix(candidate, "}") {
		candidate += "]"
	}

	rows = nil
	if err := json.Unmarshal([]byte(candidate), &rows); err != nil {
		return nil, true
	}
	return rows, true
}

func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[nl+1:]
	} else {
		text = strings.TrimPrefix(text, "```")
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "```"))
}
