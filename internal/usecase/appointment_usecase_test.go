package usecase

import (
	"errors"
	"testing"
	"time"

	"healthcare-admin-api/internal/domain/entity"
)

func TestValidateSlot(t *testing.T) {
	future := time.Now().Add(24 * time.Hour)

	tests := []struct {
		name     string
		start    time.Time
		duration int
		wantErr  error
	}{
		{
			name:     "valid slot",
			start:    future,
			duration: 30,
			wantErr:  nil,
		},
		{
			name:     "minimum duration",
			start:    future,
			duration: entity.MinDurationMinutes,
			wantErr:  nil,
		},
		{
			name:     "maximum duration",
			start:    future,
			duration: entity.MaxDurationMinutes,
			wantErr:  nil,
		},
		{
			name:     "start in the past",
			start:    time.Now().Add(-time.Hour),
			duration: 30,
			wantErr:  ErrScheduledTimePast,
		},
		{
			name:     "duration too short",
			start:    future,
			duration: entity.MinDurationMinutes - 1,
			wantErr:  ErrInvalidDuration,
		},
		{
			name:     "duration too long",
			start:    future,
			duration: entity.MaxDurationMinutes + 1,
			wantErr:  ErrInvalidDuration,
		},
		{
			name:     "zero duration",
			start:    future,
			duration: 0,
			wantErr:  ErrInvalidDuration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSlot(tt.start, tt.duration)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateSlot(%v, %d) error = %v, want %v", tt.start, tt.duration, err, tt.wantErr)
			}
		})
	}
}
