package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageParam(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected int
	}{
		{"valid page", "3", 3},
		{"empty defaults to first", "", 1},
		{"trailing garbage rejected", "2abc", 1},
		{"non-numeric rejected", "abc", 1},
		{"zero clamped", "0", 1},
		{"negative clamped", "-4", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, pageParam(tt.value))
		})
	}
}

func TestSplitParam(t *testing.T) {
	assert.Nil(t, splitParam(""))
	assert.Equal(t, []string{"active", "paused"}, splitParam("active,paused"))
	assert.Equal(t, []string{"active"}, splitParam(" active , "))
}
