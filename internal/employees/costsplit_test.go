package employees

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/meridian-hris/meridian/internal/platform/httpx"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(t time.Time) *time.Time { return &t }

func TestValidateCostSplitsEmptySetAllowed(t *testing.T) {
	require.NoError(t, ValidateCostSplits(nil))
}

func TestValidateCostSplitsSingleFullSplit(t *testing.T) {
	splits := []CostSplitInput{
		{CostCenter: "ENG", Percent: 100, From: day(2025, 1, 1)},
	}
	require.NoError(t, ValidateCostSplits(splits))
}

func TestValidateCostSplitsConcurrentSplitsSumTo100(t *testing.T) {
	splits := []CostSplitInput{
		{CostCenter: "ENG", Percent: 60, From: day(2025, 1, 1)},
		{CostCenter: "OPS", Percent: 40, From: day(2025, 1, 1)},
	}
	require.NoError(t, ValidateCostSplits(splits))
}

func TestValidateCostSplitsPercentOutOfRange(t *testing.T) {
	err := ValidateCostSplits([]CostSplitInput{
		{CostCenter: "ENG", Percent: 0, From: day(2025, 1, 1)},
	})
	require.ErrorIs(t, err, httpx.ErrValidation)

	err = ValidateCostSplits([]CostSplitInput{
		{CostCenter: "ENG", Percent: 120, From: day(2025, 1, 1)},
	})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestValidateCostSplitsEndBeforeStart(t *testing.T) {
	err := ValidateCostSplits([]CostSplitInput{
		{CostCenter: "ENG", Percent: 100, From: day(2025, 6, 1), To: datePtr(day(2025, 1, 1))},
	})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestValidateCostSplitsSameCentreOverlap(t *testing.T) {
	err := ValidateCostSplits([]CostSplitInput{
		{CostCenter: "ENG", Percent: 100, From: day(2025, 1, 1), To: datePtr(day(2025, 6, 1))},
		{CostCenter: "ENG", Percent: 100, From: day(2025, 3, 1)},
	})
	require.ErrorIs(t, err, httpx.ErrValidation)
	require.Contains(t, err.Error(), "overlapping")
}

func TestValidateCostSplitsUnderCoverageRejected(t *testing.T) {
	err := ValidateCostSplits([]CostSplitInput{
		{CostCenter: "ENG", Percent: 60, From: day(2025, 1, 1)},
		{CostCenter: "OPS", Percent: 30, From: day(2025, 1, 1)},
	})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestValidateCostSplitsPartialPeriodGapRejected(t *testing.T) {
	// OPS drops out mid-year leaving ENG alone at 60.
	err := ValidateCostSplits([]CostSplitInput{
		{CostCenter: "ENG", Percent: 60, From: day(2025, 1, 1)},
		{CostCenter: "OPS", Percent: 40, From: day(2025, 1, 1), To: datePtr(day(2025, 7, 1))},
	})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestValidateCostSplitsSequentialSameCentre(t *testing.T) {
	splits := []CostSplitInput{
		{CostCenter: "ENG", Percent: 100, From: day(2025, 1, 1), To: datePtr(day(2025, 7, 1))},
		{CostCenter: "ENG", Percent: 100, From: day(2025, 7, 1)},
	}
	require.NoError(t, ValidateCostSplits(splits))
}

func TestValidateCostSplitsToleratesRounding(t *testing.T) {
	splits := []CostSplitInput{
		{CostCenter: "A", Percent: 33.33, From: day(2025, 1, 1)},
		{CostCenter: "B", Percent: 33.33, From: day(2025, 1, 1)},
		{CostCenter: "C", Percent: 33.34, From: day(2025, 1, 1)},
	}
	require.NoError(t, ValidateCostSplits(splits))
}
