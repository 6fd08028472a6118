package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageIsBlank(t *testing.T) {
	tests := []struct {
		name    string
		content string
		blank   bool
	}{
		{"empty", "", true},
		{"whitespace only", "  \n\t ", true},
		{"text", "hello", false},
		{"text with padding", "  hi  ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Message{Role: "user", Content: tt.content}
			assert.Equal(t, tt.blank, m.IsBlank())
		})
	}
}

func TestCapitalizeRole(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"user", "User"},
		{"ASSISTANT", "Assistant"},
		{"sYsTem", "System"},
		{"", ""},
		{"x", "X"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CapitalizeRole(tt.in))
	}
}
