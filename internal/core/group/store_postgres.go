// Copyright (c) 2026 Jogakzip. All rights reserved.
// Author: dev@jogakzip.app

package group

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jogakzip/api/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed group store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Group Retrieval

/*
List returns a filtered and paginated list of groups.

Description: Uses ILIKE for keyword search. The total is counted in its own
query over the same WHERE clause, so pages past the end of the result set
still carry accurate metadata.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit: int
  - offset: int

Returns:
  - []*Group: Slice of matching groups
  - int: Total record count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Group, int, error) {
	whereClause, args := listFilterClause(filter)

	// The total runs as its own query: an offset past the last row returns
	// no page rows, and the envelope must still report the real count.
	var total int
	countQuery := "SELECT COUNT(*) FROM core.groups" + whereClause
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_groups")
	}

	pageQuery := fmt.Sprintf(`
		SELECT
			id, name, imageurl, ispublic, introduction,
			likecount, postcount, badgecount, createdat
		FROM core.groups%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, whereClause, sortClause(filter.Sort), len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, pageQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_groups")
	}
	defer rows.Close()

	groups := make([]*Group, 0)
	for rows.Next() {
		group := &Group{}
		err := rows.Scan(
			&group.ID, &group.Name, &group.ImageURL, &group.IsPublic, &group.Introduction,
			&group.LikeCount, &group.PostCount, &group.BadgeCount, &group.CreatedAt,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_group")
		}
		groups = append(groups, group)
	}

	return groups, total, nil
}

// listFilterClause builds the WHERE clause shared by the page query and its
// count query, so both always see the same row set. Numbering starts at $1.
func listFilterClause(filter Filter) (string, []any) {
	clause := " WHERE ispublic = $1"
	args := []any{filter.IsPublic}

	if filter.Keyword != "" {
		clause += " AND name ILIKE $2"
		args = append(args, "%"+filter.Keyword+"%")
	}

	return clause, args
}

// sortClause maps a sort key to its ORDER BY expression. Unknown keys fall
// back to newest-first.
func sortClause(sort string) string {
	switch sort {
	case SortMostPosted:
		return "postcount DESC, createdat DESC"
	case SortMostLiked:
		return "likecount DESC, createdat DESC"
	default:
		return "createdat DESC"
	}
}

/*
FindByID retrieves a single group record by its primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Group: Hydrated entity including the password digest
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Group, error) {
	const query = `
		SELECT
			id, name, passworddigest, imageurl, ispublic, introduction,
			likecount, postcount, badgecount, createdat
		FROM core.groups
		WHERE id = $1
	`
	group := &Group{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&group.ID, &group.Name, &group.PasswordDigest, &group.ImageURL, &group.IsPublic, &group.Introduction,
		&group.LikeCount, &group.PostCount, &group.BadgeCount, &group.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_group_by_id")
	}
	return group, nil
}

/*
ExistsByName reports whether a group with the given name exists.

Parameters:
  - context: context.Context
  - name: string

Returns:
  - bool: True when present
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ExistsByName(context context.Context, name string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM core.groups WHERE name = $1)`
	var exists bool
	if err := repository.db.QueryRow(context, query, name).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "group_exists_by_name")
	}
	return exists, nil
}

// # Group Mutation

/*
Create inserts a new group record.

Parameters:
  - context: context.Context
  - group: *Group

Returns:
  - error: Conflict on duplicate name, other persistence failures
*/
func (repository *PostgresRepository) Create(context context.Context, group *Group) error {
	const query = `
		INSERT INTO core.groups (
			id, name, passworddigest, imageurl, ispublic, introduction, createdat
		) VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING createdat
	`
	err := repository.db.QueryRow(context, query,
		group.ID, group.Name, group.PasswordDigest, group.ImageURL, group.IsPublic, group.Introduction,
	).Scan(&group.CreatedAt)

	return dberr.Wrap(err, "create_group")
}

/*
Update applies the provided fields of a group in place.

Description: Uses COALESCE so that NULL parameters (absent input fields) keep
the stored value, while provided values overwrite, including empty strings.

Parameters:
  - context: context.Context
  - id: string
  - input: UpdateInput

Returns:
  - *Group: The updated entity
  - error: NotFound if missing, other persistence failures
*/
func (repository *PostgresRepository) Update(context context.Context, id string, input UpdateInput) (*Group, error) {
	const query = `
		UPDATE core.groups
		SET
			name = COALESCE($2, name),
			imageurl = COALESCE($3, imageurl),
			ispublic = COALESCE($4, ispublic),
			introduction = COALESCE($5, introduction)
		WHERE id = $1
		RETURNING
			id, name, imageurl, ispublic, introduction,
			likecount, postcount, badgecount, createdat
	`
	group := &Group{}
	err := repository.db.QueryRow(context, query,
		id, input.Name, input.ImageURL, input.IsPublic, input.Introduction,
	).Scan(
		&group.ID, &group.Name, &group.ImageURL, &group.IsPublic, &group.Introduction,
		&group.LikeCount, &group.PostCount, &group.BadgeCount, &group.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "update_group")
	}
	return group, nil
}

/*
Delete removes a group and everything it owns in one transaction.

Description: Deletion order respects foreign keys: comments of the group's
posts, then tag associations, then posts, then badges, then the group row.
Shared tag rows are deliberately not touched.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Transactional or persistence failures
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {

	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_delete_group_tx")
	}
	defer transaction.Rollback(context)

	statements := []struct {
		action string
		query  string
	}{
		{"delete_group_comments", `
			DELETE FROM core.comments
			WHERE postid IN (SELECT id FROM core.posts WHERE groupid = $1)
		`},
		{"delete_group_post_tags", `
			DELETE FROM core.posttags
			WHERE postid IN (SELECT id FROM core.posts WHERE groupid = $1)
		`},
		{"delete_group_posts", `DELETE FROM core.posts WHERE groupid = $1`},
		{"delete_group_badges", `DELETE FROM core.badges WHERE groupid = $1`},
		{"delete_group", `DELETE FROM core.groups WHERE id = $1`},
	}

	for _, statement := range statements {
		if _, err := transaction.Exec(context, statement.query, id); err != nil {
			return dberr.Wrap(err, statement.action)
		}
	}

	return transaction.Commit(context)
}

// # Social Counters

/*
PushLike atomically increments the like counter.

Description: The increment and the read-back happen in one statement, so two
concurrent likes can never lose an increment.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Group: The entity as of the increment
  - error: NotFound if missing
*/
func (repository *PostgresRepository) PushLike(context context.Context, id string) (*Group, error) {
	const query = `
		UPDATE core.groups
		SET likecount = likecount + 1
		WHERE id = $1
		RETURNING
			id, name, imageurl, ispublic, introduction,
			likecount, postcount, badgecount, createdat
	`
	group := &Group{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&group.ID, &group.Name, &group.ImageURL, &group.IsPublic, &group.Introduction,
		&group.LikeCount, &group.PostCount, &group.BadgeCount, &group.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "push_group_like")
	}
	return group, nil
}

// # Badge Persistence

/*
GrantBadge records a badge, tolerating duplicates.

Description: ON CONFLICT DO NOTHING against the (groupid, name) unique
constraint makes concurrent grants of the same badge converge on one row.

Parameters:
  - context: context.Context
  - groupID: string
  - name: string

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) GrantBadge(context context.Context, groupID, name string) error {
	const query = `
		INSERT INTO core.badges (groupid, name, createdat)
		VALUES ($1, $2, NOW())
		ON CONFLICT (groupid, name) DO NOTHING
	`
	_, err := repository.db.Exec(context, query, groupID, name)
	if err != nil && !dberr.IsUniqueViolation(err) {
		return dberr.Wrap(err, "grant_badge")
	}
	return nil
}

/*
RecountBadges recomputes badgeCount from the badge rows and persists it.

Description: A full recount, not an increment, so the counter self-heals
after any missed or duplicate grant attempt.

Parameters:
  - context: context.Context
  - groupID: string

Returns:
  - int: The fresh badge count
  - error: Persistence failures
*/
func (repository *PostgresRepository) RecountBadges(context context.Context, groupID string) (int, error) {
	const query = `
		UPDATE core.groups
		SET badgecount = (SELECT COUNT(*) FROM core.badges WHERE groupid = $1)
		WHERE id = $1
		RETURNING badgecount
	`
	var count int
	if err := repository.db.QueryRow(context, query, groupID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "recount_badges")
	}
	return count, nil
}

/*
ListBadges returns the badges held by a group, oldest first.

Parameters:
  - context: context.Context
  - groupID: string

Returns:
  - []Badge: Granted badges
  - error: Retrieval failures
*/
func (repository *PostgresRepository) ListBadges(context context.Context, groupID string) ([]Badge, error) {
	const query = `SELECT name FROM core.badges WHERE groupid = $1 ORDER BY createdat ASC`
	rows, err := repository.db.Query(context, query, groupID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_badges")
	}
	defer rows.Close()

	badges := make([]Badge, 0)
	for rows.Next() {
		badge := Badge{}
		if err := rows.Scan(&badge.Name); err != nil {
			return nil, dberr.Wrap(err, "scan_badge")
		}
		badges = append(badges, badge)
	}

	return badges, nil
}

// # Cross-Domain Directory

// The post domain reaches groups only through these primitives, keeping the
// package dependency one-directional.

/*
AuthDigest returns the password digest of a group.

Parameters:
  - context: context.Context
  - groupID: string

Returns:
  - string: The stored bcrypt digest
  - error: NotFound if missing
*/
func (repository *PostgresRepository) AuthDigest(context context.Context, groupID string) (string, error) {
	const query = `SELECT passworddigest FROM core.groups WHERE id = $1`
	var digest string
	if err := repository.db.QueryRow(context, query, groupID).Scan(&digest); err != nil {
		return "", dberr.Wrap(err, "get_group_auth_digest")
	}
	return digest, nil
}

/*
IncrementPostCount atomically bumps the group's post counter.

Parameters:
  - context: context.Context
  - groupID: string

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) IncrementPostCount(context context.Context, groupID string) error {
	const query = `UPDATE core.groups SET postcount = postcount + 1 WHERE id = $1`
	_, err := repository.db.Exec(context, query, groupID)
	return dberr.Wrap(err, "increment_group_post_count")
}
