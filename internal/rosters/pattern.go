package rosters

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/meridian-hris/meridian/internal/platform/httpx"
)

// patternWorkers bounds the per-employee expansion fan-out.
const patternWorkers = 8

// GenerateShifts expands a rotation pattern into concrete shifts for each
// employee, starting each employee one day further into the rotation so the
// roster staggers. The pattern repeats until `days` calendar days are filled.
func GenerateShifts(ctx context.Context, rosterID, tenantID string, pattern []PatternDay, employeeIDs []string, from time.Time, days int) ([]Shift, error) {
	if len(pattern) == 0 {
		return nil, fmt.Errorf("%w: rotation pattern is empty", httpx.ErrValidation)
	}
	if days <= 0 {
		return nil, fmt.Errorf("%w: day count must be positive", httpx.ErrValidation)
	}
	for i, day := range pattern {
		if day.Off() {
			continue
		}
		if _, _, err := parseHHMM(day.StartHHMM); err != nil {
			return nil, fmt.Errorf("%w: pattern day %d start: %v", httpx.ErrValidation, i, err)
		}
		if _, _, err := parseHHMM(day.EndHHMM); err != nil {
			return nil, fmt.Errorf("%w: pattern day %d end: %v", httpx.ErrValidation, i, err)
		}
	}

	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)

	var mu sync.Mutex
	var shifts []Shift

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(patternWorkers)
	for offset, employeeID := range employeeIDs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			generated := expandEmployee(rosterID, tenantID, pattern, employeeID, offset, from, days)
			mu.Lock()
			shifts = append(shifts, generated...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(shifts, func(i, j int) bool {
		if !shifts[i].StartsAt.Equal(shifts[j].StartsAt) {
			return shifts[i].StartsAt.Before(shifts[j].StartsAt)
		}
		return shifts[i].EmployeeID < shifts[j].EmployeeID
	})
	return shifts, nil
}

func expandEmployee(rosterID, tenantID string, pattern []PatternDay, employeeID string, offset int, from time.Time, days int) []Shift {
	var shifts []Shift
	for day := 0; day < days; day++ {
		slot := pattern[(day+offset)%len(pattern)]
		if slot.Off() {
			continue
		}
		date := from.AddDate(0, 0, day)
		startH, startM, _ := parseHHMM(slot.StartHHMM)
		endH, endM, _ := parseHHMM(slot.EndHHMM)
		start := date.Add(time.Duration(startH)*time.Hour + time.Duration(startM)*time.Minute)
		end := date.Add(time.Duration(endH)*time.Hour + time.Duration(endM)*time.Minute)
		// Overnight shifts end on the following day.
		if !end.After(start) {
			end = end.AddDate(0, 0, 1)
		}
		shifts = append(shifts, Shift{
			ID:         uuid.NewString(),
			RosterID:   rosterID,
			TenantID:   tenantID,
			EmployeeID: employeeID,
			StartsAt:   start,
			EndsAt:     end,
			Label:      slot.Label,
		})
	}
	return shifts
}

func parseHHMM(raw string) (int, int, error) {
	hh, mm, ok := strings.Cut(raw, ":")
	if !ok {
		return 0, 0, fmt.Errorf("malformed time %q", raw)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("malformed hour %q", raw)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("malformed minute %q", raw)
	}
	return hour, minute, nil
}
