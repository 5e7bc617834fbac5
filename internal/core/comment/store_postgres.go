// Copyright (c) 2026 Jogakzip. All rights reserved.
// Author: dev@jogakzip.app

package comment

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jogakzip/api/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed comment store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
ListByPost returns a page of a post's comments, oldest first.

Parameters:
  - context: context.Context
  - postID: string
  - limit: int
  - offset: int

Returns:
  - []*Comment: Matching comments
  - int: Total record count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListByPost(context context.Context, postID string, limit, offset int) ([]*Comment, int, error) {

	// The total runs as its own query: an offset past the last row returns
	// no page rows, and the envelope must still report the real count.
	const countQuery = `SELECT COUNT(*) FROM core.comments WHERE postid = $1`
	var total int
	if err := repository.db.QueryRow(context, countQuery, postID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_comments")
	}

	const pageQuery = `
		SELECT id, postid, nickname, content, createdat
		FROM core.comments
		WHERE postid = $1
		ORDER BY createdat ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := repository.db.Query(context, pageQuery, postID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_comments")
	}
	defer rows.Close()

	comments := make([]*Comment, 0)
	for rows.Next() {
		comment := &Comment{}
		err := rows.Scan(&comment.ID, &comment.PostID, &comment.Nickname, &comment.Content, &comment.CreatedAt)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_comment")
		}
		comments = append(comments, comment)
	}

	return comments, total, nil
}

/*
FindByID retrieves a single comment record by its primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Comment: Hydrated entity including the password digest
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Comment, error) {
	const query = `
		SELECT id, postid, nickname, content, passworddigest, createdat
		FROM core.comments
		WHERE id = $1
	`
	comment := &Comment{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&comment.ID, &comment.PostID, &comment.Nickname, &comment.Content, &comment.PasswordDigest, &comment.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_comment_by_id")
	}
	return comment, nil
}

/*
Create inserts a new comment record.

Parameters:
  - context: context.Context
  - comment: *Comment

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	const query = `
		INSERT INTO core.comments (id, postid, nickname, content, passworddigest, createdat)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING createdat
	`
	err := repository.db.QueryRow(context, query,
		comment.ID, comment.PostID, comment.Nickname, comment.Content, comment.PasswordDigest,
	).Scan(&comment.CreatedAt)

	return dberr.Wrap(err, "create_comment")
}

/*
Update applies the provided fields of a comment in place.

Description: COALESCE keeps stored values for absent fields while provided
values overwrite, including empty strings.

Parameters:
  - context: context.Context
  - id: string
  - input: UpdateInput

Returns:
  - *Comment: The updated entity
  - error: NotFound if missing, other persistence failures
*/
func (repository *PostgresRepository) Update(context context.Context, id string, input UpdateInput) (*Comment, error) {
	const query = `
		UPDATE core.comments
		SET
			nickname = COALESCE($2, nickname),
			content = COALESCE($3, content)
		WHERE id = $1
		RETURNING id, postid, nickname, content, createdat
	`
	comment := &Comment{}
	err := repository.db.QueryRow(context, query, id, input.Nickname, input.Content).Scan(
		&comment.ID, &comment.PostID, &comment.Nickname, &comment.Content, &comment.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "update_comment")
	}
	return comment, nil
}

/*
Delete removes a comment record.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM core.comments WHERE id = $1`
	_, err := repository.db.Exec(context, query, id)
	return dberr.Wrap(err, "delete_comment")
}
