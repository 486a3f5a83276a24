package rosters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/meridian-hris/meridian/internal/platform/httpx"
)

var dayShift = PatternDay{Label: "day", StartHHMM: "09:00", EndHHMM: "17:00"}
var nightShift = PatternDay{Label: "night", StartHHMM: "22:00", EndHHMM: "06:00"}
var dayOff = PatternDay{}

func TestGenerateShiftsSingleEmployee(t *testing.T) {
	from := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	shifts, err := GenerateShifts(context.Background(), "r1", "tenant-1",
		[]PatternDay{dayShift, dayShift, dayOff}, []string{"e1"}, from, 6)
	require.NoError(t, err)
	// Pattern repeats twice over 6 days with one rest day per cycle.
	require.Len(t, shifts, 4)
	for _, shift := range shifts {
		require.Equal(t, "r1", shift.RosterID)
		require.Equal(t, "tenant-1", shift.TenantID)
		require.Equal(t, "e1", shift.EmployeeID)
		require.Equal(t, 8*time.Hour, shift.EndsAt.Sub(shift.StartsAt))
	}
	require.Equal(t, from.Add(9*time.Hour), shifts[0].StartsAt)
}

func TestGenerateShiftsStaggersEmployees(t *testing.T) {
	from := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	shifts, err := GenerateShifts(context.Background(), "r1", "tenant-1",
		[]PatternDay{dayShift, dayOff}, []string{"e1", "e2"}, from, 2)
	require.NoError(t, err)
	require.Len(t, shifts, 2)

	// e1 starts on the first pattern slot, e2 is offset by one day.
	byEmployee := map[string]Shift{}
	for _, shift := range shifts {
		byEmployee[shift.EmployeeID] = shift
	}
	require.Equal(t, from.Add(9*time.Hour), byEmployee["e1"].StartsAt)
	require.Equal(t, from.AddDate(0, 0, 1).Add(9*time.Hour), byEmployee["e2"].StartsAt)
}

func TestGenerateShiftsOvernightEndsNextDay(t *testing.T) {
	from := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	shifts, err := GenerateShifts(context.Background(), "r1", "tenant-1",
		[]PatternDay{nightShift}, []string{"e1"}, from, 1)
	require.NoError(t, err)
	require.Len(t, shifts, 1)
	require.Equal(t, from.Add(22*time.Hour), shifts[0].StartsAt)
	require.Equal(t, from.AddDate(0, 0, 1).Add(6*time.Hour), shifts[0].EndsAt)
}

func TestGenerateShiftsSortedDeterministically(t *testing.T) {
	from := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	shifts, err := GenerateShifts(context.Background(), "r1", "tenant-1",
		[]PatternDay{dayShift}, []string{"e3", "e1", "e2"}, from, 2)
	require.NoError(t, err)
	require.Len(t, shifts, 6)
	for i := 1; i < len(shifts); i++ {
		prev, cur := shifts[i-1], shifts[i]
		if prev.StartsAt.Equal(cur.StartsAt) {
			require.LessOrEqual(t, prev.EmployeeID, cur.EmployeeID)
		} else {
			require.True(t, prev.StartsAt.Before(cur.StartsAt))
		}
	}
}

func TestGenerateShiftsEmptyPatternRejected(t *testing.T) {
	_, err := GenerateShifts(context.Background(), "r1", "tenant-1",
		nil, []string{"e1"}, time.Now(), 7)
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestGenerateShiftsMalformedTimeRejected(t *testing.T) {
	_, err := GenerateShifts(context.Background(), "r1", "tenant-1",
		[]PatternDay{{StartHHMM: "9am", EndHHMM: "17:00"}}, []string{"e1"}, time.Now(), 7)
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestGenerateShiftsNonPositiveDaysRejected(t *testing.T) {
	_, err := GenerateShifts(context.Background(), "r1", "tenant-1",
		[]PatternDay{dayShift}, []string{"e1"}, time.Now(), 0)
	require.ErrorIs(t, err, httpx.ErrValidation)
}
