package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateCount(t *testing.T) {
	cases := []struct {
		name      string
		entry     string
		retention int
		expected  int
	}{
		{"daily", "/var/log/apt/history.log {\n  rotate 123\n  daily\n}", 90, 90},
		{"daily small", "/var/log/apt/history.log {\n  daily\n}", 1, 1},
		{"weekly", "/var/log/apt/history.log {\n  rotate 123\n  weekly\n}", 21, 3},
		{"weekly rounds down", "/var/log/apt/history.log {\n  weekly\n}", 24, 3},
		{"weekly rounds up", "/var/log/apt/history.log {\n  weekly\n}", 25, 4},
		{"monthly", "/var/log/apt/history.log {\n  rotate 123\n  monthly\n}", 60, 2},
		{"monthly half rounds up", "/var/log/apt/history.log {\n  monthly\n}", 15, 1},
		{"monthly one and a half rounds up", "/var/log/apt/history.log {\n  monthly\n}", 45, 2},
		{"monthly two and a half rounds up", "/var/log/apt/history.log {\n  monthly\n}", 75, 3},
		{"yearly under a year", "/var/log/apt/history.log {\n  rotate 123\n  yearly\n}", 180, 1},
		{"yearly exactly 360", "/var/log/apt/history.log {\n  yearly\n}", 360, 1},
		{"yearly over a year", "/var/log/apt/history.log {\n  yearly\n}", 400, 2},
		{"yearly two years", "/var/log/apt/history.log {\n  yearly\n}", 720, 3},
		{"no interval", "/var/log/apt/history.log {\n  size 100M\n}", 42, 42},
		{"yearly wins over daily", "/var/log/daily.log {\n  yearly\n}", 42, 1},
		{"weekly wins over daily", "/var/log/daily.log {\n  weekly\n}", 42, 6},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, CalculateCount(c.entry, c.retention))
		})
	}
}

func TestCalculateCount_DailyIsIdentity(t *testing.T) {
	for retention := 1; retention <= 1000; retention++ {
		assert.Equal(t, retention, CalculateCount("/log/a.log {\n daily\n}", retention))
	}
}
