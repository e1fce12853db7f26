package salary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolvePaymentDate(t *testing.T) {
	tests := []struct {
		name        string
		joiningDate time.Time
		month       Month
		wantDate    time.Time
		wantDay     int
	}{
		{
			name:        "mid-month day carries over unchanged",
			joiningDate: time.Date(2023, time.June, 15, 0, 0, 0, 0, time.UTC),
			month:       Month{2025, time.March},
			wantDate:    time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC),
			wantDay:     15,
		},
		{
			name:        "day 31 clamps to February 28",
			joiningDate: time.Date(2022, time.January, 31, 0, 0, 0, 0, time.UTC),
			month:       Month{2025, time.February},
			wantDate:    time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC),
			wantDay:     28,
		},
		{
			name:        "day 31 clamps to February 29 in a leap year",
			joiningDate: time.Date(2022, time.January, 31, 0, 0, 0, 0, time.UTC),
			month:       Month{2024, time.February},
			wantDate:    time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
			wantDay:     29,
		},
		{
			name:        "day 31 clamps to April 30",
			joiningDate: time.Date(2022, time.August, 31, 0, 0, 0, 0, time.UTC),
			month:       Month{2025, time.April},
			wantDate:    time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC),
			wantDay:     30,
		},
		{
			name:        "day 30 fits in a 31-day month",
			joiningDate: time.Date(2024, time.November, 30, 0, 0, 0, 0, time.UTC),
			month:       Month{2025, time.July},
			wantDate:    time.Date(2025, time.July, 30, 0, 0, 0, 0, time.UTC),
			wantDay:     30,
		},
		{
			name:        "first of the month",
			joiningDate: time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
			month:       Month{2025, time.February},
			wantDate:    time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC),
			wantDay:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotDate, gotDay := ResolvePaymentDate(tt.joiningDate, tt.month)
			assert.Equal(t, tt.wantDate, gotDate)
			assert.Equal(t, tt.wantDay, gotDay)
		})
	}
}

func TestResolvePaymentDatePreservesLocation(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	joining := time.Date(2023, time.April, 10, 0, 0, 0, 0, loc)

	gotDate, _ := ResolvePaymentDate(joining, Month{2025, time.June})
	assert.Equal(t, loc, gotDate.Location())
}
