package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eymenelneccar/ewf/pkg/textnorm"
)

func TestTerm(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"María", "maria"},
		{"  maria ", "maria"},
		{"MARIA", "maria"},
		{"José   Pérez", "jose perez"},
		{"", ""},
		{"   ", ""},
		{"555-0102", "555-0102"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, textnorm.Term(tc.in), "entrada: %q", tc.in)
	}
}
