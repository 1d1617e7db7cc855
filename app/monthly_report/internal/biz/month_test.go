package biz

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2024-03")
	require.NoError(t, err)
	assert.Equal(t, "2024-03", m.String())
	assert.Equal(t, "2024年3月", m.Label())
	assert.Equal(t, "# 月報：2024年3月", m.Title())

	for _, bad := range []string{"", "2024-00", "2024-13", "2024/03", "24-03", "2024-3"} {
		_, err := ParseMonth(bad)
		assert.Error(t, err, bad)
	}
}

func TestDefaultMonth(t *testing.T) {
	tests := []struct {
		now  time.Time
		want string
	}{
		{time.Date(2024, time.December, 20, 0, 0, 0, 0, time.UTC), "2024-12"},
		{time.Date(2024, time.December, 15, 0, 0, 0, 0, time.UTC), "2024-12"},
		{time.Date(2024, time.December, 14, 0, 0, 0, 0, time.UTC), "2024-11"},
		{time.Date(2025, time.January, 3, 0, 0, 0, 0, time.UTC), "2024-12"},
		{time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC), "2024-03"},
		{time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), "2024-02"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DefaultMonth(tt.now).String(), tt.now.String())
	}
}

func TestNormalizeTitle(t *testing.T) {
	m := Month{Year: 2024, Month: time.December}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "already correct", in: "# 月報：2024年12月\n本文", want: "# 月報：2024年12月\n本文"},
		{name: "wrong month replaced", in: "# 月報：2025年06月\n本文", want: "# 月報：2024年12月\n本文"},
		{name: "other heading replaced", in: "## Monthly\n本文", want: "# 月報：2024年12月\n本文"},
		{name: "leading blank lines", in: "\n\n# 月報：2023年1月\n本文", want: "# 月報：2024年12月\n本文"},
		{name: "no heading prepends", in: "本文だけ", want: "# 月報：2024年12月\n\n本文だけ"},
		{name: "heading only", in: "# foo", want: "# 月報：2024年12月"},
		{name: "empty", in: "", want: "# 月報：2024年12月\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTitle(tt.in, m))
		})
	}
}
