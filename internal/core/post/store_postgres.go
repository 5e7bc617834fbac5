// Copyright (c) 2026 Jogakzip. All rights reserved.
// Author: dev@jogakzip.app

package post

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jogakzip/api/internal/platform/dberr"
	"github.com/jogakzip/api/pkg/slice"
	"github.com/jogakzip/api/pkg/uuid"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed post store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// queryRunner abstracts pool vs transaction for the shared tag helpers.
type queryRunner interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// # Post Retrieval

/*
List returns a filtered and paginated list of a group's posts.

Description: Uses ILIKE for keyword search on the title. The total is counted
in its own query over the same WHERE clause, so pages past the end of the
result set still carry accurate metadata. Tag lists are not hydrated here.

Parameters:
  - context: context.Context
  - groupID: string
  - filter: Filter
  - limit: int
  - offset: int

Returns:
  - []*Post: Matching posts
  - int: Total record count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, groupID string, filter Filter, limit, offset int) ([]*Post, int, error) {
	whereClause, args := listFilterClause(groupID, filter)

	// The total runs as its own query: an offset past the last row returns
	// no page rows, and the envelope must still report the real count.
	var total int
	countQuery := "SELECT COUNT(*) FROM core.posts" + whereClause
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_posts")
	}

	pageQuery := fmt.Sprintf(`
		SELECT
			id, groupid, nickname, title, imageurl, location, moment,
			ispublic, likecount, commentcount, createdat
		FROM core.posts%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, whereClause, sortClause(filter.Sort), len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, pageQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_posts")
	}
	defer rows.Close()

	posts := make([]*Post, 0)
	for rows.Next() {
		post := &Post{}
		err := rows.Scan(
			&post.ID, &post.GroupID, &post.Nickname, &post.Title, &post.ImageURL, &post.Location, &post.Moment,
			&post.IsPublic, &post.LikeCount, &post.CommentCount, &post.CreatedAt,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_post")
		}
		posts = append(posts, post)
	}

	return posts, total, nil
}

// listFilterClause builds the WHERE clause shared by the page query and its
// count query, so both always see the same row set. Numbering starts at $1.
func listFilterClause(groupID string, filter Filter) (string, []any) {
	clause := " WHERE groupid = $1 AND ispublic = $2"
	args := []any{groupID, filter.IsPublic}

	if filter.Keyword != "" {
		clause += " AND title ILIKE $3"
		args = append(args, "%"+filter.Keyword+"%")
	}

	return clause, args
}

// sortClause maps a sort key to its ORDER BY expression. Unknown keys fall
// back to newest-first.
func sortClause(sort string) string {
	switch sort {
	case SortMostCommented:
		return "commentcount DESC, createdat DESC"
	case SortMostLiked:
		return "likecount DESC, createdat DESC"
	default:
		return "createdat DESC"
	}
}

/*
FindByID retrieves a post and its tag names.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Post: Hydrated entity including the password digest and tags
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Post, error) {
	const query = `
		SELECT
			id, groupid, nickname, title, content, passworddigest, imageurl,
			location, moment, ispublic, likecount, commentcount, createdat
		FROM core.posts
		WHERE id = $1
	`
	post := &Post{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&post.ID, &post.GroupID, &post.Nickname, &post.Title, &post.Content, &post.PasswordDigest, &post.ImageURL,
		&post.Location, &post.Moment, &post.IsPublic, &post.LikeCount, &post.CommentCount, &post.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_post_by_id")
	}

	tags, err := tagNames(context, repository.db, id)
	if err != nil {
		return nil, err
	}
	post.Tags = tags

	return post, nil
}

// # Post Mutation

/*
Create inserts a post, its tag rows, and its associations atomically.

Description: Tag rows are upserted by name so that tags shared with earlier
posts are reused rather than duplicated. Rolls back completely if any stage
fails.

Parameters:
  - context: context.Context
  - post: *Post

Returns:
  - error: Transactional or persistence failures
*/
func (repository *PostgresRepository) Create(context context.Context, post *Post) error {

	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_create_post_tx")
	}
	defer transaction.Rollback(context)

	const insertQuery = `
		INSERT INTO core.posts (
			id, groupid, nickname, title, content, passworddigest,
			imageurl, location, moment, ispublic, createdat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		RETURNING createdat
	`
	err = transaction.QueryRow(context, insertQuery,
		post.ID, post.GroupID, post.Nickname, post.Title, post.Content, post.PasswordDigest,
		post.ImageURL, post.Location, post.Moment, post.IsPublic,
	).Scan(&post.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_post")
	}

	if err := attachTags(context, transaction, post.ID, post.Tags); err != nil {
		return err
	}

	return transaction.Commit(context)
}

/*
Update applies the provided fields and reconciles the tag set.

Description: COALESCE keeps stored values for absent fields. When input.Tags
is non-nil the association set is diffed: new names are attached (creating
tag rows as needed), names no longer listed are detached, unchanged links are
left alone.

Parameters:
  - context: context.Context
  - id: string
  - input: UpdateInput

Returns:
  - *Post: The updated entity with its tags
  - error: NotFound if missing, other persistence failures
*/
func (repository *PostgresRepository) Update(context context.Context, id string, input UpdateInput) (*Post, error) {

	transaction, err := repository.db.Begin(context)
	if err != nil {
		return nil, dberr.Wrap(err, "begin_update_post_tx")
	}
	defer transaction.Rollback(context)

	const updateQuery = `
		UPDATE core.posts
		SET
			nickname = COALESCE($2, nickname),
			title = COALESCE($3, title),
			content = COALESCE($4, content),
			imageurl = COALESCE($5, imageurl),
			location = COALESCE($6, location),
			moment = COALESCE($7, moment),
			ispublic = COALESCE($8, ispublic)
		WHERE id = $1
		RETURNING
			id, groupid, nickname, title, content, imageurl, location,
			moment, ispublic, likecount, commentcount, createdat
	`
	post := &Post{}
	err = transaction.QueryRow(context, updateQuery,
		id, input.Nickname, input.Title, input.Content, input.ImageURL, input.Location, input.Moment, input.IsPublic,
	).Scan(
		&post.ID, &post.GroupID, &post.Nickname, &post.Title, &post.Content, &post.ImageURL, &post.Location,
		&post.Moment, &post.IsPublic, &post.LikeCount, &post.CommentCount, &post.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "update_post")
	}

	if input.Tags != nil {
		current, err := tagNames(context, transaction, id)
		if err != nil {
			return nil, err
		}

		if err := attachTags(context, transaction, id, slice.Difference(input.Tags, current)); err != nil {
			return nil, err
		}

		if stale := slice.Difference(current, input.Tags); len(stale) > 0 {
			const detachQuery = `
				DELETE FROM core.posttags
				WHERE postid = $1
				  AND tagid IN (SELECT id FROM core.tags WHERE name = ANY($2))
			`
			if _, err := transaction.Exec(context, detachQuery, id, stale); err != nil {
				return nil, dberr.Wrap(err, "detach_post_tags")
			}
		}

		post.Tags = input.Tags
	} else {
		tags, err := tagNames(context, transaction, id)
		if err != nil {
			return nil, err
		}
		post.Tags = tags
	}

	if err := transaction.Commit(context); err != nil {
		return nil, dberr.Wrap(err, "commit_update_post_tx")
	}
	return post, nil
}

/*
Delete removes a post, its comments, and its tag associations atomically.
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
		return dberr.Wrap(err, "begin_delete_post_tx")
	}
	defer transaction.Rollback(context)

	statements := []struct {
		action string
		query  string
	}{
		{"delete_post_comments", `DELETE FROM core.comments WHERE postid = $1`},
		{"delete_post_tags", `DELETE FROM core.posttags WHERE postid = $1`},
		{"delete_post", `DELETE FROM core.posts WHERE id = $1`},
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

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Post: The entity as of the increment
  - error: NotFound if missing
*/
func (repository *PostgresRepository) PushLike(context context.Context, id string) (*Post, error) {
	const query = `
		UPDATE core.posts
		SET likecount = likecount + 1
		WHERE id = $1
		RETURNING id, groupid, likecount
	`
	post := &Post{}
	if err := repository.db.QueryRow(context, query, id).Scan(&post.ID, &post.GroupID, &post.LikeCount); err != nil {
		return nil, dberr.Wrap(err, "push_post_like")
	}
	return post, nil
}

/*
CountComments returns the live comment count for a post.

Parameters:
  - context: context.Context
  - postID: string

Returns:
  - int: Comment row count
  - error: Retrieval failures
*/
func (repository *PostgresRepository) CountComments(context context.Context, postID string) (int, error) {
	const query = `SELECT COUNT(*) FROM core.comments WHERE postid = $1`
	var count int
	if err := repository.db.QueryRow(context, query, postID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count_post_comments")
	}
	return count, nil
}

// # Tag Helpers

// attachTags upserts tag rows by name and links them to the post. Runs
// inside the caller's transaction.
func attachTags(context context.Context, transaction pgx.Tx, postID string, names []string) error {
	const upsertQuery = `
		INSERT INTO core.tags (id, name)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`
	const linkQuery = `
		INSERT INTO core.posttags (postid, tagid, createdat)
		VALUES ($1, $2, NOW())
		ON CONFLICT DO NOTHING
	`

	for _, name := range names {
		var tagID string
		if err := transaction.QueryRow(context, upsertQuery, uuid.New(), name).Scan(&tagID); err != nil {
			return dberr.Wrap(err, "upsert_tag")
		}
		if _, err := transaction.Exec(context, linkQuery, postID, tagID); err != nil {
			return dberr.Wrap(err, "link_post_tag")
		}
	}

	return nil
}

// tagNames returns a post's tag names in attachment order.
func tagNames(context context.Context, runner queryRunner, postID string) ([]string, error) {
	const query = `
		SELECT t.name
		FROM core.posttags pt
		JOIN core.tags t ON t.id = pt.tagid
		WHERE pt.postid = $1
		ORDER BY pt.createdat ASC, t.name ASC
	`
	rows, err := runner.Query(context, query, postID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_post_tags")
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, dberr.Wrap(err, "scan_tag_name")
		}
		names = append(names, name)
	}

	return names, nil
}

// # Cross-Domain Directory

// The comment domain reaches posts only through these primitives.

/*
Exists verifies that a post row is present.

Parameters:
  - context: context.Context
  - postID: string

Returns:
  - error: NotFound if missing
*/
func (repository *PostgresRepository) Exists(context context.Context, postID string) error {
	const query = `SELECT EXISTS (SELECT 1 FROM core.posts WHERE id = $1)`
	var exists bool
	if err := repository.db.QueryRow(context, query, postID).Scan(&exists); err != nil {
		return dberr.Wrap(err, "post_exists")
	}
	if !exists {
		return dberr.ErrNotFound
	}
	return nil
}

/*
IncrementCommentCount atomically bumps the post's comment counter.

Parameters:
  - context: context.Context
  - postID: string

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) IncrementCommentCount(context context.Context, postID string) error {
	const query = `UPDATE core.posts SET commentcount = commentcount + 1 WHERE id = $1`
	_, err := repository.db.Exec(context, query, postID)
	return dberr.Wrap(err, "increment_post_comment_count")
}
