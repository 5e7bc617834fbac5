// Copyright (c) 2026 Jogakzip. All rights reserved.
// Author: dev@jogakzip.app

package group

import "time"

// # Badge Names

const (
	BadgeGroupAgeOneYear = "group-age-1-year"
	BadgeGroupLikes10K   = "group-likes-10000"
	BadgeGroupPosts20    = "group-posts-20"

	// BadgePostLikes10K is granted to the owning group when one of its posts
	// crosses the like threshold. Evaluated on post-like, not here.
	BadgePostLikes10K = "post-likes-10000"
)

// # Thresholds

const (
	// LikeThreshold applies to both the group-level and post-level like badges.
	LikeThreshold = 10000

	// PostThreshold is the number of posts required for the posting badge.
	PostThreshold = 20
)

// Snapshot is the subset of a group's state needed to evaluate badge
// eligibility at a point in time.
type Snapshot struct {
	CreatedAt time.Time
	LikeCount int
	PostCount int
}

/*
Evaluate decides which group-level badges a snapshot currently qualifies for.

It is a pure function: persistence of the result is the reconcile step in the
service layer, which tolerates badges that were already granted.

Parameters:
  - snapshot: Snapshot (createdAt, likeCount, postCount)
  - now: time.Time (injected for testability)

Returns:
  - []string: Names of every badge the snapshot qualifies for
*/
func Evaluate(snapshot Snapshot, now time.Time) []string {
	var names []string

	if qualifiesAge(snapshot.CreatedAt, now) {
		names = append(names, BadgeGroupAgeOneYear)
	}

	if snapshot.LikeCount >= LikeThreshold {
		names = append(names, BadgeGroupLikes10K)
	}

	if snapshot.PostCount >= PostThreshold {
		names = append(names, BadgeGroupPosts20)
	}

	return names
}

// qualifiesAge reports whether a full calendar year has elapsed since
// createdAt. The boundary instant (exactly one year later) qualifies.
// AddDate handles leap days the way calendars do, not as 365*24h.
func qualifiesAge(createdAt, now time.Time) bool {
	return !now.Before(createdAt.AddDate(1, 0, 0))
}
