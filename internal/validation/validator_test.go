// Tutorium - Adaptive Learning Personalization and Recommendation Engine
// Copyright 2026 A. Wiesler (awiesler)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/awiesler/tutorium

package validation

import (
	"strings"
	"testing"
)

type enrollRequest struct {
	StudentID  string `validate:"required,min=1,max=128"`
	Difficulty string `validate:"omitempty,difficulty"`
	Style      string `validate:"omitempty,learningstyle"`
	Limit      int    `validate:"gte=0,lte=50"`
}

func TestValidateStructPasses(t *testing.T) {
	req := enrollRequest{
		StudentID:  "student-1",
		Difficulty: "intermediate",
		Style:      "kinesthetic",
		Limit:      10,
	}
	if err := ValidateStruct(&req); err != nil {
		t.Errorf("Expected validation to pass, got %v", err)
	}
}

func TestValidateStructFailures(t *testing.T) {
	tests := []struct {
		name     string
		req      enrollRequest
		field    string
		fragment string
	}{
		{
			name:     "missing student ID",
			req:      enrollRequest{Limit: 5},
			field:    "StudentID",
			fragment: "required",
		},
		{
			name:     "unknown difficulty",
			req:      enrollRequest{StudentID: "s", Difficulty: "impossible"},
			field:    "Difficulty",
			fragment: "beginner, intermediate, advanced, expert",
		},
		{
			name:     "unknown style",
			req:      enrollRequest{StudentID: "s", Style: "tactile"},
			field:    "Style",
			fragment: "visual, auditory, reading, kinesthetic",
		},
		{
			name:     "limit too high",
			req:      enrollRequest{StudentID: "s", Limit: 500},
			field:    "Limit",
			fragment: "less than or equal to 50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.req)
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if len(err.Errors()) != 1 {
				t.Fatalf("Expected 1 error, got %d: %v", len(err.Errors()), err)
			}
			if got := err.Errors()[0].Field(); got != tt.field {
				t.Errorf("Expected field %s, got %s", tt.field, got)
			}
			if !strings.Contains(err.Error(), tt.fragment) {
				t.Errorf("Expected message containing %q, got %q", tt.fragment, err.Error())
			}
		})
	}
}

func TestValidateStructMultipleErrors(t *testing.T) {
	req := enrollRequest{Difficulty: "impossible", Limit: -1}
	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("Expected validation error, got nil")
	}
	if len(err.Errors()) != 3 {
		t.Errorf("Expected 3 errors, got %d: %v", len(err.Errors()), err)
	}

	details := err.Details()
	fields, ok := details["fields"].([]map[string]any)
	if !ok {
		t.Fatalf("Expected fields detail, got %T", details["fields"])
	}
	if len(fields) != 3 {
		t.Errorf("Expected 3 field details, got %d", len(fields))
	}
}
