package log

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	errExample := errors.New("example error")

	tests := []struct {
		name     string
		format   string
		args     []any
		expected string
	}{
		{"single placeholder", "hello %v", []any{"world"}, "hello world"},
		{"numeric placeholder", "value: %v", []any{123}, "value: 123"},
		{"mixed placeholders", "%v scored %v points", []any{"Alice", 95}, "Alice scored 95 points"},
		{"surplus args appended", "%v and %v", []any{"one", "two", "three", 4}, "one and two three 4"},
		{"no placeholders", "static string", []any{"ignored"}, "static string ignored"},
		{"empty format no args", "", []any{}, ""},
		{"trailing error appended", "failed %v", []any{"operation", errExample}, "failed operation - example error"},
		{"only error appended", "error occurred", []any{errExample}, "error occurred - example error"},
		{"escaped percent", "100%% sure %v", []any{"yes"}, "100% sure yes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.format, tt.args...))
		})
	}
}

func TestFormatArgs(t *testing.T) {
	assert.Equal(t, "", FormatArgs())
	assert.Equal(t, "plain", FormatArgs("plain"))
	assert.Equal(t, "a b", FormatArgs("%v b", "a"))
}
