package employees

import (
	"fmt"
	"sort"
	"time"

	"github.com/meridian-hris/meridian/internal/platform/httpx"
)

// Allowed drift when summing split percentages, covering float rounding.
const percentTolerance = 0.01

// farFuture stands in for the open end of a split when sweeping intervals.
var farFuture = time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)

// ValidateCostSplits checks a replace-set of cost splits as a whole:
// every percent must be in (0, 100], every range must be well-formed, no two
// splits for the same cost centre may overlap, and at every point in time
// covered by any split the active percentages must sum to exactly 100.
func ValidateCostSplits(splits []CostSplitInput) error {
	if len(splits) == 0 {
		return nil
	}

	for i, split := range splits {
		if split.Percent <= 0 || split.Percent > 100 {
			return fmt.Errorf("%w: split %d percent %.2f out of range", httpx.ErrValidation, i, split.Percent)
		}
		if split.To != nil && !split.To.After(split.From) {
			return fmt.Errorf("%w: split %d end date not after start date", httpx.ErrValidation, i)
		}
	}

	for i := range splits {
		for j := i + 1; j < len(splits); j++ {
			if splits[i].CostCenter != splits[j].CostCenter {
				continue
			}
			if rangesOverlap(splits[i], splits[j]) {
				return fmt.Errorf("%w: overlapping splits for cost centre %s",
					httpx.ErrValidation, splits[i].CostCenter)
			}
		}
	}

	// Sweep the interval boundaries and check full coverage.
	boundaries := make([]time.Time, 0, len(splits)*2)
	for _, split := range splits {
		boundaries = append(boundaries, split.From, splitEnd(split))
	}
	sort.Slice(boundaries, func(i, j int) bool { return boundaries[i].Before(boundaries[j]) })

	for i := 0; i < len(boundaries)-1; i++ {
		start, end := boundaries[i], boundaries[i+1]
		if !start.Before(end) {
			continue
		}
		var sum float64
		var covered bool
		for _, split := range splits {
			if !split.From.After(start) && splitEnd(split).After(start) {
				sum += split.Percent
				covered = true
			}
		}
		if !covered {
			continue
		}
		if sum < 100-percentTolerance || sum > 100+percentTolerance {
			return fmt.Errorf("%w: splits active on %s sum to %.2f, want 100",
				httpx.ErrValidation, start.Format("2006-01-02"), sum)
		}
	}
	return nil
}

func splitEnd(split CostSplitInput) time.Time {
	if split.To == nil {
		return farFuture
	}
	return *split.To
}

func rangesOverlap(a, b CostSplitInput) bool {
	return a.From.Before(splitEnd(b)) && b.From.Before(splitEnd(a))
}
