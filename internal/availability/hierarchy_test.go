package availability

import (
	"testing"

	"barkeep/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestInterchangeable(t *testing.T) {
	rum := category(1, nil)
	white := category(2, ptr(1))
	dark := category(3, ptr(1))
	gin := category(4, nil)
	london := category(5, ptr(4))
	juice := category(10, nil)

	tests := []struct {
		name     string
		a, b     model.Category
		expected bool
	}{
		{name: "Same category", a: white, b: white, expected: true},
		{name: "Same parentless category", a: juice, b: juice, expected: true},
		{name: "Siblings", a: white, b: dark, expected: true},
		{name: "Siblings reversed", a: dark, b: white, expected: true},
		{name: "Parent satisfies child", a: white, b: rum, expected: true},
		{name: "Child does not satisfy parent", a: rum, b: white, expected: false},
		{name: "Different families", a: white, b: london, expected: false},
		{name: "Parentless categories are unrelated", a: rum, b: gin, expected: false},
		{name: "Foreign parent", a: london, b: rum, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Interchangeable(tt.a, tt.b))
		})
	}
}
