package redact_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"randomconnect/backend/internal/redact"
)

func TestPhone_MasksCommonFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"plain 10 digits", "call me at 9876543210"},
		{"international", "+1 4155552671234"},
		{"indian with plus", "+91-9876543210"},
		{"indian without plus", "91 9876543210"},
		{"US parenthesized", "(123) 456-7890"},
		{"dashed groups", "123-456-7890"},
		{"five five", "98765-43210"},
		{"four three three", "9876-543-210"},
		{"two four four", "98-7654-3210"},
		{"long digit run", "my number is 123456789012"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			masked := redact.Phone(tt.input)
			assert.Contains(t, masked, redact.HiddenToken, "input %q should be masked", tt.input)
			assertNoLongDigitRun(t, masked)
		})
	}
}

func TestPhone_PassesCleanTextThrough(t *testing.T) {
	tests := []string{
		"",
		"hello there",
		"meet me at 5pm",
		"room 101",
		"1234567", // 7 digits, below the catch-all threshold
	}
	for _, input := range tests {
		assert.Equal(t, input, redact.Phone(input))
	}
}

func TestPhone_Idempotent(t *testing.T) {
	inputs := []string{
		"call me at 9876543210",
		"two numbers 9876543210 and (123) 456-7890",
		"already " + redact.HiddenToken + " masked",
		"no digits at all",
	}
	for _, input := range inputs {
		once := redact.Phone(input)
		assert.Equal(t, once, redact.Phone(once), "masking must be idempotent for %q", input)
	}
}

func TestForLog_MasksEmailsAndPhones(t *testing.T) {
	out := redact.ForLog("reach me: alice.smith@example.com or 9876543210")
	assert.Contains(t, out, redact.EmailToken)
	assert.Contains(t, out, redact.HiddenToken)
	assert.NotContains(t, out, "example.com")
	assertNoLongDigitRun(t, out)
}

func TestForLog_EmptyInput(t *testing.T) {
	assert.Equal(t, "", redact.ForLog(""))
}

// assertNoLongDigitRun fails if text still contains 8+ contiguous digits.
func assertNoLongDigitRun(t *testing.T, text string) {
	t.Helper()
	run := 0
	for _, r := range text {
		if r >= '0' && r <= '9' {
			run++
			if run >= 8 {
				t.Fatalf("text %q still contains a %d-digit run", text, run)
			}
		} else {
			run = 0
		}
	}
}
