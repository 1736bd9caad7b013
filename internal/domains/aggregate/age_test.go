package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestAge(t *testing.T) {
	birth := date(2000, time.March, 10)

	tests := []struct {
		name  string
		birth *time.Time
		end   *time.Time
		want  int
	}{
		{"day before anniversary", birth, date(2020, time.March, 9), 19},
		{"exact anniversary", birth, date(2020, time.March, 10), 20},
		{"day after anniversary", birth, date(2020, time.March, 11), 20},
		{"earlier month", birth, date(2020, time.February, 28), 19},
		{"later month", birth, date(2020, time.April, 1), 20},
		{"same year", birth, date(2000, time.December, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Age(tt.birth, tt.end)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestAgeNilBirth(t *testing.T) {
	assert.Nil(t, Age(nil, date(2020, time.March, 10)))
}

func TestAgeDefaultsToToday(t *testing.T) {
	// A birth two days ago is always 0 years old, whenever the test runs.
	birth := time.Now().AddDate(0, 0, -2)
	got := Age(&birth, nil)
	require.NotNil(t, got)
	assert.Equal(t, 0, *got)
}
