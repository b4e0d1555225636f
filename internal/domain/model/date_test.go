package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2018-03-16")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2018, time.March, 16), d)
	assert.Equal(t, "2018-03-16", d.String())

	_, err = ParseDate("16/03/2018")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestDateCompare(t *testing.T) {
	base := NewDate(2018, time.March, 16)

	cases := []struct {
		name  string
		other Date
		want  int
	}{
		{"same day", NewDate(2018, time.March, 16), 0},
		{"later day", NewDate(2018, time.March, 17), -1},
		{"earlier day", NewDate(2018, time.March, 15), 1},
		{"later month", NewDate(2018, time.April, 1), -1},
		{"earlier year", NewDate(2017, time.December, 31), 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, base.Compare(tc.other))
			assert.Equal(t, tc.want < 0, base.Before(tc.other))
			assert.Equal(t, tc.want > 0, base.After(tc.other))
			assert.Equal(t, tc.want == 0, base.Equal(tc.other))
		})
	}
}

func TestDateIsZero(t *testing.T) {
	assert.True(t, Date{}.IsZero())
	assert.False(t, NewDate(2018, time.March, 16).IsZero())
}

func TestMenuDateRangeContains(t *testing.T) {
	r := MenuDateRange{
		Start: NewDate(2018, time.March, 10),
		End:   NewDate(2018, time.March, 16),
	}

	assert.True(t, r.Contains(NewDate(2018, time.March, 10)), "start day is inclusive")
	assert.True(t, r.Contains(NewDate(2018, time.March, 16)), "end day is inclusive")
	assert.True(t, r.Contains(NewDate(2018, time.March, 12)))
	assert.False(t, r.Contains(NewDate(2018, time.March, 9)))
	assert.False(t, r.Contains(NewDate(2018, time.March, 17)))

	assert.False(t, MenuDateRange{}.Contains(NewDate(2018, time.March, 12)), "unset range covers nothing")
}

func TestMenuCovers(t *testing.T) {
	m := Menu{ID: "menu-1"}
	assert.False(t, m.Covers(NewDate(2018, time.March, 16)), "menu without a range covers nothing")

	m.DateRange = MenuDateRange{
		Start: NewDate(2018, time.March, 16),
		End:   NewDate(2018, time.March, 16),
	}
	assert.True(t, m.Covers(NewDate(2018, time.March, 16)))
	assert.False(t, m.Covers(NewDate(2018, time.March, 15)))
}

func TestOrderIDRoundTrip(t *testing.T) {
	id := OrderID{
		VendorID: "vendor-1",
		UserID:   "user-1",
		Date:     NewDate(2018, time.March, 16),
	}

	assert.Equal(t, "vendor-1/user-1/2018-03-16", id.String())

	parsed, err := ParseOrderID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseOrderID("vendor-1/user-1")
	assert.Error(t, err)

	_, err = ParseOrderID("vendor-1/user-1/not-a-date")
	assert.Error(t, err)
}

func TestPurchaseOrderIDRoundTrip(t *testing.T) {
	id := PurchaseOrderID{
		VendorID: "vendor-1",
		Date:     NewDate(2018, time.March, 16),
	}

	assert.Equal(t, "vendor-1/2018-03-16", id.String())

	parsed, err := ParsePurchaseOrderID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParsePurchaseOrderID("vendor-1")
	assert.Error(t, err)
}
