package validator

import (
	"strings"
	"testing"
)

type sampleRequest struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	Status   string `validate:"omitempty,oneof=scheduled cancelled"`
	Duration int    `validate:"omitempty,gte=15,lte=480"`
}

func TestValidatePasses(t *testing.T) {
	cv := NewValidator()

	err := cv.Validate(sampleRequest{
		Email:    "user@example.com",
		Password: "password123",
		Status:   "scheduled",
		Duration: 30,
	})
	if err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestFormatValidationErrors(t *testing.T) {
	cv := NewValidator()

	tests := []struct {
		name     string
		input    sampleRequest
		field    string
		contains string
	}{
		{
			name:     "missing required field",
			input:    sampleRequest{Password: "password123"},
			field:    "Email",
			contains: "required",
		},
		{
			name:     "invalid email",
			input:    sampleRequest{Email: "not-an-email", Password: "password123"},
			field:    "Email",
			contains: "valid email",
		},
		{
			name:     "too short",
			input:    sampleRequest{Email: "user@example.com", Password: "short"},
			field:    "Password",
			contains: "at least 8",
		},
		{
			name:     "not in allowed set",
			input:    sampleRequest{Email: "user@example.com", Password: "password123", Status: "finished"},
			field:    "Status",
			contains: "must be one of",
		},
		{
			name:     "below range",
			input:    sampleRequest{Email: "user@example.com", Password: "password123", Duration: 5},
			field:    "Duration",
			contains: "greater than or equal to 15",
		},
		{
			name:     "above range",
			input:    sampleRequest{Email: "user@example.com", Password: "password123", Duration: 600},
			field:    "Duration",
			contains: "less than or equal to 480",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cv.Validate(tt.input)
			if err == nil {
				t.Fatal("Validate() error = nil, want validation error")
			}

			formatted := cv.FormatValidationErrors(err)
			msg, ok := formatted[tt.field]
			if !ok {
				t.Fatalf("no message for field %q, got %v", tt.field, formatted)
			}
			if !strings.Contains(msg, tt.contains) {
				t.Errorf("message %q does not contain %q", msg, tt.contains)
			}
		})
	}
}
