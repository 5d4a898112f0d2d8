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
	ErrUserNotFound           = errors.New("user not found")
	ErrUserEmailConflict      = errors.New("email address is already in use")
	ErrUserRoleInvalid        = errors.New("user role conflict or invalid")
	ErrUserDeleteRestricted   = errors.New("user is referenced by other records and cannot be deleted")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, roleFilter *models.RoleID) ([]*models.User, error)
	ListByTeam(ctx context.Context, teamID int) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdatePasswordHash(ctx context.Context, id int, hash string) error
	UpdatePhotoKey(ctx context.Context, id int, key *string) error
	Delete(ctx context.Context, id int) error
}

type postgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

const userColumns = `id_usuario, nome, email, senha_hash, id_tipo_usuario, id_matricula, cpf, telefone, instituicao, curso, foto_key, created_at`

func (r *postgresUserRepository) scanUser(row interface{ Scan(dest ...interface{}) error }, u *models.User) error {
	return row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.RoleID,
		&u.Registration,
		&u.CPF,
		&u.Phone,
		&u.Institution,
		&u.Course,
		&u.PhotoKey,
		&u.CreatedAt,
	)
}

func (r *postgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO usuarios (nome, email, senha_hash, id_tipo_usuario, id_matricula, cpf, telefone, instituicao, curso)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id_usuario, created_at`

	err := r.db.QueryRowContext(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.RoleID,
		user.Registration,
		user.CPF,
		user.Phone,
		user.Institution,
		user.Course,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				if pqErr.Constraint == "usuarios_email_key" {
					return ErrUserEmailConflict
				}
			case "23503":
				if pqErr.Constraint == "usuarios_id_tipo_usuario_fkey" {
					return ErrUserRoleInvalid
				}
			}
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *postgresUserRepository) findOne(ctx context.Context, query string, args ...interface{}) (*models.User, error) {
	u := &models.User{}
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := r.scanUser(row, u); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return u, nil
}

func (r *postgresUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM usuarios WHERE id_usuario = $1`, userColumns)
	return r.findOne(ctx, query, id)
}

func (r *postgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM usuarios WHERE email = $1`, userColumns)
	return r.findOne(ctx, query, email)
}

func (r *postgresUserRepository) List(ctx context.Context, roleFilter *models.RoleID) ([]*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM usuarios`, userColumns)
	args := []interface{}{}
	if roleFilter != nil {
		query += ` WHERE id_tipo_usuario = $1`
		args = append(args, *roleFilter)
	}
	query += ` ORDER BY nome ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		var u models.User
		if err := r.scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, &u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

func (r *postgresUserRepository) ListByTeam(ctx context.Context, teamID int) ([]*models.User, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM usuarios u
		JOIN membro_equipes m ON m.id_usuario = u.id_usuario
		WHERE m.id_equipe = $1
		ORDER BY u.nome ASC`,
		prefixColumns("u", userColumns))

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by team: %w", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		var u models.User
		if err := r.scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, &u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

func (r *postgresUserRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE usuarios
		SET nome = $1, email = $2, id_tipo_usuario = $3, id_matricula = $4,
		    cpf = $5, telefone = $6, instituicao = $7, curso = $8
		WHERE id_usuario = $9`

	result, err := r.db.ExecContext(ctx, query,
		user.Name,
		user.Email,
		user.RoleID,
		user.Registration,
		user.CPF,
		user.Phone,
		user.Institution,
		user.Course,
		user.ID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" && pqErr.Constraint == "usuarios_email_key" {
			return ErrUserEmailConflict
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) UpdatePasswordHash(ctx context.Context, id int, hash string) error {
	query := `UPDATE usuarios SET senha_hash = $1 WHERE id_usuario = $2`
	result, err := r.db.ExecContext(ctx, query, hash, id)
	if err != nil {
		return fmt.Errorf("failed to update password hash: %w", err)
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) UpdatePhotoKey(ctx context.Context, id int, key *string) error {
	query := `UPDATE usuarios SET foto_key = $1 WHERE id_usuario = $2`
	result, err := r.db.ExecContext(ctx, query, key, id)
	if err != nil {
		return fmt.Errorf("failed to update photo key: %w", err)
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM usuarios WHERE id_usuario = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrUserDeleteRestricted
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return checkAffectedRows(result, ErrUserNotFound)
}
