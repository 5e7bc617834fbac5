// Copyright (c) 2026 Jogakzip. All rights reserved.
// Author: dev@jogakzip.app

package group_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jogakzip/api/internal/core/group"
)

/*
TestEvaluate_AgeBadge tests the calendar-year age qualification, including
the exact boundary instant and leap-day arithmetic.
*/
func TestEvaluate_AgeBadge(t *testing.T) {
	createdAt := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		now       time.Time
		qualifies bool
	}{
		{"one_day_after_creation", createdAt.AddDate(0, 0, 1), false},
		{"one_second_before_anniversary", createdAt.AddDate(1, 0, 0).Add(-time.Second), false},
		{"exact_anniversary", createdAt.AddDate(1, 0, 0), true},
		{"well_past_anniversary", createdAt.AddDate(3, 2, 1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			names := group.Evaluate(group.Snapshot{CreatedAt: createdAt}, tt.now)

			if tt.qualifies {
				assert.Contains(t, names, group.BadgeGroupAgeOneYear)
			} else {
				assert.NotContains(t, names, group.BadgeGroupAgeOneYear)
			}
		})
	}
}

/*
TestEvaluate_AgeBadge_LeapDay ensures a Feb 29 creation date resolves via
calendar arithmetic rather than fixed-duration math.
*/
func TestEvaluate_AgeBadge_LeapDay(t *testing.T) {
	createdAt := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)

	// AddDate(1,0,0) on Feb 29 normalizes to Mar 1 of the next year.
	names := group.Evaluate(group.Snapshot{CreatedAt: createdAt}, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	assert.Contains(t, names, group.BadgeGroupAgeOneYear)

	names = group.Evaluate(group.Snapshot{CreatedAt: createdAt}, time.Date(2025, 2, 28, 23, 59, 59, 0, time.UTC))
	assert.NotContains(t, names, group.BadgeGroupAgeOneYear)
}

/*
TestEvaluate_CountThresholds tests the like and post count milestones.
*/
func TestEvaluate_CountThresholds(t *testing.T) {
	recent := time.Now().Add(-time.Hour)

	tests := []struct {
		name      string
		likeCount int
		postCount int
		expected  []string
	}{
		{"nothing_qualifies", 0, 0, nil},
		{"just_below_both", 9999, 19, nil},
		{"likes_at_threshold", 10000, 0, []string{group.BadgeGroupLikes10K}},
		{"posts_at_threshold", 0, 20, []string{group.BadgeGroupPosts20}},
		{"both_over", 15000, 30, []string{group.BadgeGroupLikes10K, group.BadgeGroupPosts20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := group.Snapshot{CreatedAt: recent, LikeCount: tt.likeCount, PostCount: tt.postCount}
			names := group.Evaluate(snapshot, time.Now())

			if tt.expected == nil {
				assert.Empty(t, names)
				return
			}
			assert.ElementsMatch(t, tt.expected, names)
		})
	}
}
