package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/uniexpo/fair-system/models"
)

var (
	ErrCommentNotFound      = errors.New("comment not found")
	ErrCommentRecordInvalid = errors.New("comment task record conflict or invalid")
	ErrCommentAuthorInvalid = errors.New("comment author conflict or invalid")
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id int) (*models.Comment, error)
	ListByRecord(ctx context.Context, recordID int) ([]*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id int) error
}

type postgresCommentRepository struct {
	db *sql.DB
}

func NewPostgresCommentRepository(db *sql.DB) CommentRepository {
	return &postgresCommentRepository{db: db}
}

func (r *postgresCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comentarios_desenvolvimento (id_registro, id_usuario, comentario)
		VALUES ($1, $2, $3)
		RETURNING id_comentario, created_at`

	err := r.db.QueryRowContext(ctx, query,
		comment.RecordID,
		comment.AuthorID,
		comment.Text,
	).Scan(&comment.ID, &comment.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			switch pqErr.Constraint {
			case "comentarios_desenvolvimento_id_registro_fkey":
				return ErrCommentRecordInvalid
			case "comentarios_desenvolvimento_id_usuario_fkey":
				return ErrCommentAuthorInvalid
			}
		}
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *postgresCommentRepository) GetByID(ctx context.Context, id int) (*models.Comment, error) {
	query := `SELECT id_comentario, id_registro, id_usuario, comentario, created_at FROM comentarios_desenvolvimento WHERE id_comentario = $1`
	c := &models.Comment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.RecordID, &c.AuthorID, &c.Text, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return c, nil
}

func (r *postgresCommentRepository) ListByRecord(ctx context.Context, recordID int) ([]*models.Comment, error) {
	query := `
		SELECT c.id_comentario, c.id_registro, c.id_usuario, c.comentario, c.created_at, u.nome
		FROM comentarios_desenvolvimento c
		JOIN usuarios u ON u.id_usuario = c.id_usuario
		WHERE c.id_registro = $1
		ORDER BY c.created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]*models.Comment, 0)
	for rows.Next() {
		var c models.Comment
		var u models.User
		if err := rows.Scan(&c.ID, &c.RecordID, &c.AuthorID, &c.Text, &c.CreatedAt, &u.Name); err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		u.ID = c.AuthorID
		c.Author = &u
		comments = append(comments, &c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}
	return comments, nil
}

func (r *postgresCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE comentarios_desenvolvimento SET comentario = $1 WHERE id_comentario = $2`,
		comment.Text, comment.ID)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	return checkAffectedRows(result, ErrCommentNotFound)
}

func (r *postgresCommentRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comentarios_desenvolvimento WHERE id_comentario = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return checkAffectedRows(result, ErrCommentNotFound)
}
