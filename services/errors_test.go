package services

import (
	"errors"
	"testing"
)

func TestValidationError_Messages(t *testing.T) {
	ve := &ValidationError{Fields: map[string]string{
		"status":       "device status is required",
		"items":        "at least one item is required",
		"student_name": "student name is required",
	}}

	got := ve.Messages()
	want := []string{"at least one item is required", "device status is required", "student name is required"}
	if len(got) != len(want) {
		t.Fatalf("Messages() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Messages()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if ve.Error() != "validation failed: items: at least one item is required; status: device status is required; student_name: student name is required" {
		t.Errorf("Error() = %q", ve.Error())
	}
}

func TestErrorKinds(t *testing.T) {
	cause := errors.New("permission denied")

	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"validation", newValidationError("amount", "bad"), ErrValidation, true},
		{"index is out of range", &IndexError{Index: 3, Len: 1}, ErrIndexOutOfRange, true},
		{"index is validation", &IndexError{Index: 3, Len: 1}, ErrValidation, true},
		{"render keeps cause", &RenderError{Path: "a.pdf", Err: cause}, cause, true},
		{"render is not validation", &RenderError{Path: "a.pdf", Err: cause}, ErrValidation, false},
		{"collaborator unavailable", &CollaboratorError{Composer: "opener", Err: cause}, ErrCollaboratorUnavailable, true},
		{"collaborator keeps cause", &CollaboratorError{Composer: "opener", Err: cause}, cause, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.want {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.want)
			}
		})
	}
}
