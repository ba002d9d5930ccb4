package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestReturnDateFrom(t *testing.T) {
	approvedAt := time.Date(2025, 3, 10, 23, 45, 12, 0, time.UTC)
	require.Equal(t, date(2025, 3, 15), ReturnDateFrom(approvedAt, 5))

	// time-of-day must not leak into the date arithmetic
	require.Equal(t, date(2025, 3, 11), ReturnDateFrom(approvedAt, 1))

	// month rollover
	require.Equal(t, date(2025, 4, 9), ReturnDateFrom(approvedAt, 30))
}

func TestIsOverdue(t *testing.T) {
	now := date(2025, 3, 20)
	past := date(2025, 3, 15)
	today := date(2025, 3, 20)
	future := date(2025, 3, 25)

	cases := []struct {
		name       string
		status     Status
		returnDate *time.Time
		want       bool
	}{
		{"approved past due", StatusApproved, &past, true},
		{"approved due today", StatusApproved, &today, false},
		{"approved due later", StatusApproved, &future, false},
		{"approved without date", StatusApproved, nil, false},
		{"pending with past date", StatusPending, &past, false},
		{"rejected with past date", StatusRejected, &past, false},
		{"returned with past date", StatusReturned, &past, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := BorrowRequest{Status: tc.status, ReturnDate: tc.returnDate}
			require.Equal(t, tc.want, r.IsOverdueAt(now))
		})
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusApproved, StatusRejected, StatusReturned} {
		require.True(t, s.Valid())
	}
	require.False(t, Status("cancelled").Valid())
	require.False(t, Status("").Valid())
}
