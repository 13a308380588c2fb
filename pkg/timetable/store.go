package timetable

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Save writes the timetable as JSON, flattening the composite day key to a
// single "DD-MM-YYYY|Wnn" string.
func Save(t Timetable, path string) error {
	flat := make(map[string][]Entry, len(t))
	for key, courses := range t {
		flat[fmt.Sprintf("%s|W%d", key.Date, key.Week)] = courses
	}

	data, err := json.MarshalIndent(flat, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize timetable: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write timetable file: %w", err)
	}
	return nil
}

// Load reads a timetable back from JSON, unflattening the day keys.
// Save followed by Load is lossless.
func Load(path string) (Timetable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var flat map[string][]Entry
	if err := json.Unmarshal(data, &flat); err != nil {
		return nil, fmt.Errorf("failed to parse timetable JSON: %w", err)
	}

	t := make(Timetable, len(flat))
	for keyStr, courses := range flat {
		date, weekStr, found := strings.Cut(keyStr, "|")
		if !found || !strings.HasPrefix(weekStr, "W") {
			return nil, fmt.Errorf("malformed timetable key %q", keyStr)
		}
		week, err := strconv.Atoi(weekStr[1:])
		if err != nil {
			return nil, fmt.Errorf("malformed week in timetable key %q", keyStr)
		}
		t[Key{Date: date, Week: week}] = courses
	}

	return t, nil
}
