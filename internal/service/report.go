package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/comedorlabs/comedor-server/internal/logger"
	"github.com/comedorlabs/comedor-server/internal/model"
)

// Report derives dashboard aggregates from the entry ledger. Both reports
// are pure projections over one ledger snapshot; they never mutate state.
type Report struct {
	entryStore model.EntryStore
	directory  model.UserDirectory
	logger     *logger.Logger
}

// NewReport creates the aggregation service.
func NewReport(entryStore model.EntryStore, directory model.UserDirectory, logger *logger.Logger) *Report {
	return &Report{
		entryStore: entryStore,
		directory:  directory,
		logger:     logger,
	}
}

// Hourly buckets the date's entries into the 24 clock hours. All 24 buckets
// are always present, zero counts included, ordered "00:00" to "23:00".
func (r *Report) Hourly(ctx context.Context, date model.Date) ([]model.HourlyBucket, error) {
	entries, err := r.entryStore.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries for date %s: %w", date, err)
	}

	buckets := make([]model.HourlyBucket, 24)
	for h := range buckets {
		buckets[h].Hour = fmt.Sprintf("%02d:00", h)
	}
	for _, e := range entries {
		buckets[e.Time.Hour()].Count++
	}

	return buckets, nil
}

// ByDepartment counts the date's entries per department of the scanning
// user, sorted descending by count with first-seen order breaking ties.
// Users missing from the directory, or without a department, are grouped
// under model.UnassignedDepartment.
func (r *Report) ByDepartment(ctx context.Context, date model.Date) ([]model.DepartmentCount, error) {
	entries, err := r.entryStore.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries for date %s: %w", date, err)
	}

	counts := make(map[string]int)
	resolved := make(map[string]string)
	firstSeen := make([]string, 0)

	for _, e := range entries {
		dept, ok := resolved[e.UserID]
		if !ok {
			dept, err = r.departmentOf(ctx, e.UserID)
			if err != nil {
				return nil, err
			}
			resolved[e.UserID] = dept
		}

		if _, ok := counts[dept]; !ok {
			firstSeen = append(firstSeen, dept)
		}
		counts[dept]++
	}

	result := make([]model.DepartmentCount, 0, len(firstSeen))
	for _, dept := range firstSeen {
		result = append(result, model.DepartmentCount{Department: dept, Count: counts[dept]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})

	return result, nil
}

func (r *Report) departmentOf(ctx context.Context, userID string) (string, error) {
	user, err := r.directory.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		// Entries outlive directory rows; report them rather than fail.
		r.logger.Debug("Report service: entry user missing from directory",
			"user_id", userID)
		return model.UnassignedDepartment, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get user %q: %w", userID, err)
	}
	if user.Department == "" {
		return model.UnassignedDepartment, nil
	}
	return user.Department, nil
}
