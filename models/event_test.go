package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubmissionOpen(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	before := now.Add(-time.Hour)
	after := now.Add(time.Hour)

	tests := []struct {
		name  string
		event Event
		want  bool
	}{
		{"inactive event is always closed", Event{Active: false, SubmissionStart: &before, SubmissionEnd: &after}, false},
		{"inside the window", Event{Active: true, SubmissionStart: &before, SubmissionEnd: &after}, true},
		{"before the window opens", Event{Active: true, SubmissionStart: &after}, false},
		{"after the window closes", Event{Active: true, SubmissionEnd: &before}, false},
		{"no bounds means always open", Event{Active: true}, true},
		{"only a start bound, already past", Event{Active: true, SubmissionStart: &before}, true},
		{"only an end bound, still ahead", Event{Active: true, SubmissionEnd: &after}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.event.SubmissionOpen(now))
		})
	}
}
