package entity

import (
	"testing"
	"time"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time %q: %v", value, err)
	}
	return parsed
}

func TestAppointmentEndTime(t *testing.T) {
	a := &Appointment{
		ScheduledTime:   mustTime(t, "2026-03-10T10:00:00Z"),
		DurationMinutes: 45,
	}

	want := mustTime(t, "2026-03-10T10:45:00Z")
	if got := a.EndTime(); !got.Equal(want) {
		t.Errorf("EndTime() = %v, want %v", got, want)
	}
}

func TestAppointmentOverlaps(t *testing.T) {
	// Existing appointment 10:00-10:30
	existing := &Appointment{
		ScheduledTime:   mustTime(t, "2026-03-10T10:00:00Z"),
		DurationMinutes: 30,
	}

	tests := []struct {
		name  string
		start string
		end   string
		want  bool
	}{
		{
			name:  "partial overlap at tail",
			start: "2026-03-10T10:15:00Z",
			end:   "2026-03-10T10:45:00Z",
			want:  true,
		},
		{
			name:  "partial overlap at head",
			start: "2026-03-10T09:45:00Z",
			end:   "2026-03-10T10:15:00Z",
			want:  true,
		},
		{
			name:  "fully contained",
			start: "2026-03-10T10:05:00Z",
			end:   "2026-03-10T10:25:00Z",
			want:  true,
		},
		{
			name:  "fully containing",
			start: "2026-03-10T09:30:00Z",
			end:   "2026-03-10T11:00:00Z",
			want:  true,
		},
		{
			name:  "identical interval",
			start: "2026-03-10T10:00:00Z",
			end:   "2026-03-10T10:30:00Z",
			want:  true,
		},
		{
			name:  "back to back after is allowed",
			start: "2026-03-10T10:30:00Z",
			end:   "2026-03-10T11:00:00Z",
			want:  false,
		},
		{
			name:  "back to back before is allowed",
			start: "2026-03-10T09:30:00Z",
			end:   "2026-03-10T10:00:00Z",
			want:  false,
		},
		{
			name:  "earlier disjoint slot",
			start: "2026-03-10T09:00:00Z",
			end:   "2026-03-10T09:30:00Z",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := existing.Overlaps(mustTime(t, tt.start), mustTime(t, tt.end))
			if got != tt.want {
				t.Errorf("Overlaps(%s, %s) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestAppointmentIsActive(t *testing.T) {
	tests := []struct {
		status AppointmentStatus
		want   bool
	}{
		{AppointmentStatusScheduled, true},
		{AppointmentStatusInProgress, true},
		{AppointmentStatusCompleted, false},
		{AppointmentStatusCancelled, false},
		{AppointmentStatusNoShow, false},
		{AppointmentStatusRescheduled, false},
	}

	for _, tt := range tests {
		a := &Appointment{Status: tt.status}
		if got := a.IsActive(); got != tt.want {
			t.Errorf("IsActive() with status %q = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestActiveAppointmentStatuses(t *testing.T) {
	active := make(map[AppointmentStatus]bool)
	for _, s := range ActiveAppointmentStatuses() {
		active[s] = true
	}

	all := []AppointmentStatus{
		AppointmentStatusScheduled,
		AppointmentStatusInProgress,
		AppointmentStatusCompleted,
		AppointmentStatusCancelled,
		AppointmentStatusNoShow,
		AppointmentStatusRescheduled,
	}

	// The set drives both slot conflicts and the cancellation predicate:
	// a status is active exactly when cancelling from it is a legal
	// transition, so a completed or no_show appointment can never be
	// cancelled through the conditional update.
	for _, s := range all {
		a := &Appointment{Status: s}
		if active[s] != a.IsActive() {
			t.Errorf("status %q: set membership %v disagrees with IsActive() %v", s, active[s], a.IsActive())
		}
		if active[s] != s.CanTransitionTo(AppointmentStatusCancelled) {
			t.Errorf("status %q: set membership %v disagrees with CanTransitionTo(cancelled) %v",
				s, active[s], s.CanTransitionTo(AppointmentStatusCancelled))
		}
	}
}

func TestAppointmentStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{AppointmentStatusScheduled, AppointmentStatusInProgress, true},
		{AppointmentStatusScheduled, AppointmentStatusCancelled, true},
		{AppointmentStatusScheduled, AppointmentStatusNoShow, true},
		{AppointmentStatusScheduled, AppointmentStatusRescheduled, true},
		{AppointmentStatusScheduled, AppointmentStatusCompleted, false},
		{AppointmentStatusInProgress, AppointmentStatusCompleted, true},
		{AppointmentStatusInProgress, AppointmentStatusCancelled, true},
		{AppointmentStatusInProgress, AppointmentStatusNoShow, false},
		{AppointmentStatusInProgress, AppointmentStatusScheduled, false},
		{AppointmentStatusCompleted, AppointmentStatusScheduled, false},
		{AppointmentStatusCancelled, AppointmentStatusScheduled, false},
		{AppointmentStatusNoShow, AppointmentStatusScheduled, false},
		{AppointmentStatusRescheduled, AppointmentStatusScheduled, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%q.CanTransitionTo(%q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestAppointmentStatusValid(t *testing.T) {
	for _, s := range []AppointmentStatus{
		AppointmentStatusScheduled,
		AppointmentStatusInProgress,
		AppointmentStatusCompleted,
		AppointmentStatusCancelled,
		AppointmentStatusNoShow,
		AppointmentStatusRescheduled,
	} {
		if !s.Valid() {
			t.Errorf("status %q should be valid", s)
		}
	}

	if AppointmentStatus("finished").Valid() {
		t.Error("unknown status should not be valid")
	}
}

func TestAppointmentTypeValid(t *testing.T) {
	if !AppointmentTypeFollowUp.Valid() {
		t.Error("follow_up should be a valid type")
	}
	if AppointmentType("surgery").Valid() {
		t.Error("unknown type should not be valid")
	}
}
