package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"", 0},
		{"0", 0},
		{"12", 1200},
		{"12.5", 1250},
		{"12.50", 1250},
		{"$1,250.00", 125000},
		{" 3.07 ", 307},
		{".99", 99},
	}
	for _, tc := range cases {
		got, err := parseMoney(tc.in)
		assert.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseMoney_Invalid(t *testing.T) {
	for _, in := range []string{"abc", "1.234", "1.2.3"} {
		_, err := parseMoney(in)
		assert.Error(t, err, in)
	}
}
