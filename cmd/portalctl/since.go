package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/Black-And-White-Club/hackathon-portal/app/models"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/en"
)

// parseSince accepts a Go duration ("90m"), a date or RFC3339 timestamp, or an
// English phrase like "yesterday" or "last monday 9am". An empty input means no bound.
func parseSince(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, nil
	}
	if d, err := time.ParseDuration(input); err == nil {
		return now.Add(-d), nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, input, now.Location()); err == nil {
			return t, nil
		}
	}

	w := when.New(nil)
	w.Add(en.All...)

	r, err := w.Parse(strings.ToLower(input), now)
	if err != nil {
		return time.Time{}, fmt.Errorf("could not parse %q: %w", input, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("could not recognize time %q", input)
	}
	return r.Time, nil
}

func filterTasks(tasks []models.Task, status string, since time.Time) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if status != "" && !strings.EqualFold(string(t.Status), status) {
			continue
		}
		if !since.IsZero() && t.CreatedAt.Before(since) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func filterAnnouncements(items []models.Announcement, since time.Time) []models.Announcement {
	if since.IsZero() {
		return items
	}
	var out []models.Announcement
	for _, a := range items {
		if !a.CreatedAt.Before(since) {
			out = append(out, a)
		}
	}
	return out
}
