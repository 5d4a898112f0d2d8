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
	ErrTeamNotFound         = errors.New("team not found")
	ErrTeamProjectInvalid   = errors.New("team project conflict or invalid")
	ErrMemberNotFound       = errors.New("team member not found")
	ErrMemberConflict       = errors.New("user is already a member of this team")
	ErrMemberUserInvalid    = errors.New("member user conflict or invalid")
	ErrTeamFull             = errors.New("team has reached the event's member limit")
)

type TeamRepository interface {
	GetByID(ctx context.Context, id int) (*models.Team, error)
	GetByProject(ctx context.Context, projectID int) (*models.Team, error)
	// GetOrCreateByProject returns the project's team, creating it on first use.
	GetOrCreateByProject(ctx context.Context, exec SQLExecutor, projectID int) (*models.Team, error)
	Delete(ctx context.Context, id int) error

	// AddMemberBounded inserts a membership only while the team is below
	// maxMembers, in a single statement. Returns ErrTeamFull when the guard
	// fails and ErrMemberConflict on the (team, user) unique index.
	AddMemberBounded(ctx context.Context, exec SQLExecutor, member *models.TeamMember, maxMembers int) error
	ListMembers(ctx context.Context, teamID int) ([]*models.TeamMember, error)
	GetMemberByID(ctx context.Context, memberID int) (*models.TeamMember, error)
	UpdateMemberRole(ctx context.Context, memberID int, role models.MemberRole) error
	RemoveMember(ctx context.Context, memberID int) error
	// UserEnrolledInEvent reports whether the user already belongs to any team
	// whose project lives under the given event.
	UserEnrolledInEvent(ctx context.Context, userID, eventID int) (bool, error)
	IsMember(ctx context.Context, teamID, userID int) (bool, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `SELECT id_equipe, id_projeto, created_at FROM equipes WHERE id_equipe = $1`
	t := &models.Team{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.ProjectID, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return t, nil
}

func (r *postgresTeamRepository) GetByProject(ctx context.Context, projectID int) (*models.Team, error) {
	query := `SELECT id_equipe, id_projeto, created_at FROM equipes WHERE id_projeto = $1`
	t := &models.Team{}
	err := r.db.QueryRowContext(ctx, query, projectID).Scan(&t.ID, &t.ProjectID, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team by project: %w", err)
	}
	return t, nil
}

func (r *postgresTeamRepository) GetOrCreateByProject(ctx context.Context, exec SQLExecutor, projectID int) (*models.Team, error) {
	executor := r.getExecutor(exec)

	// ON CONFLICT DO NOTHING + fallback select keeps this race-free without
	// an advisory lock: concurrent callers converge on the same row.
	query := `
		INSERT INTO equipes (id_projeto)
		VALUES ($1)
		ON CONFLICT (id_projeto) DO NOTHING
		RETURNING id_equipe, id_projeto, created_at`

	t := &models.Team{}
	err := executor.QueryRowContext(ctx, query, projectID).Scan(&t.ID, &t.ProjectID, &t.CreatedAt)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return nil, ErrTeamProjectInvalid
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	selectQuery := `SELECT id_equipe, id_projeto, created_at FROM equipes WHERE id_projeto = $1`
	if err := executor.QueryRowContext(ctx, selectQuery, projectID).Scan(&t.ID, &t.ProjectID, &t.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to fetch team after conflict: %w", err)
	}
	return t, nil
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM equipes WHERE id_equipe = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) AddMemberBounded(ctx context.Context, exec SQLExecutor, member *models.TeamMember, maxMembers int) error {
	executor := r.getExecutor(exec)

	// The capacity check and the insert are one statement so two concurrent
	// enrollments cannot both pass a stale count.
	query := `
		INSERT INTO membro_equipes (id_equipe, id_usuario, id_funcao)
		SELECT $1, $2, $3
		WHERE (SELECT COUNT(*) FROM membro_equipes WHERE id_equipe = $1) < $4
		RETURNING id_membro, created_at`

	err := executor.QueryRowContext(ctx, query,
		member.TeamID,
		member.UserID,
		member.Role,
		maxMembers,
	).Scan(&member.ID, &member.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTeamFull
		}
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				return ErrMemberConflict
			case "23503":
				if pqErr.Constraint == "membro_equipes_id_usuario_fkey" {
					return ErrMemberUserInvalid
				}
				return ErrTeamNotFound
			}
		}
		return fmt.Errorf("failed to add team member: %w", err)
	}
	return nil
}

func (r *postgresTeamRepository) ListMembers(ctx context.Context, teamID int) ([]*models.TeamMember, error) {
	query := `
		SELECT m.id_membro, m.id_equipe, m.id_usuario, m.id_funcao, m.created_at,
		       u.nome, u.email, u.id_tipo_usuario
		FROM membro_equipes m
		JOIN usuarios u ON u.id_usuario = m.id_usuario
		WHERE m.id_equipe = $1
		ORDER BY m.created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	defer rows.Close()

	members := make([]*models.TeamMember, 0)
	for rows.Next() {
		var m models.TeamMember
		var u models.User
		if err := rows.Scan(&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.CreatedAt, &u.Name, &u.Email, &u.RoleID); err != nil {
			return nil, fmt.Errorf("failed to scan member row: %w", err)
		}
		u.ID = m.UserID
		m.User = &u
		members = append(members, &m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating member rows: %w", err)
	}
	return members, nil
}

func (r *postgresTeamRepository) GetMemberByID(ctx context.Context, memberID int) (*models.TeamMember, error) {
	query := `SELECT id_membro, id_equipe, id_usuario, id_funcao, created_at FROM membro_equipes WHERE id_membro = $1`
	m := &models.TeamMember{}
	err := r.db.QueryRowContext(ctx, query, memberID).Scan(&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to get team member: %w", err)
	}
	return m, nil
}

func (r *postgresTeamRepository) UpdateMemberRole(ctx context.Context, memberID int, role models.MemberRole) error {
	result, err := r.db.ExecContext(ctx, `UPDATE membro_equipes SET id_funcao = $1 WHERE id_membro = $2`, role, memberID)
	if err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}
	return checkAffectedRows(result, ErrMemberNotFound)
}

func (r *postgresTeamRepository) RemoveMember(ctx context.Context, memberID int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM membro_equipes WHERE id_membro = $1`, memberID)
	if err != nil {
		return fmt.Errorf("failed to remove team member: %w", err)
	}
	return checkAffectedRows(result, ErrMemberNotFound)
}

func (r *postgresTeamRepository) UserEnrolledInEvent(ctx context.Context, userID, eventID int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM membro_equipes m
			JOIN equipes e ON e.id_equipe = m.id_equipe
			JOIN projetos p ON p.id_projeto = e.id_projeto
			WHERE m.id_usuario = $1 AND p.id_evento = $2
		)`

	var enrolled bool
	if err := r.db.QueryRowContext(ctx, query, userID, eventID).Scan(&enrolled); err != nil {
		return false, fmt.Errorf("failed to check event enrollment: %w", err)
	}
	return enrolled, nil
}

func (r *postgresTeamRepository) IsMember(ctx context.Context, teamID, userID int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM membro_equipes WHERE id_equipe = $1 AND id_usuario = $2)`
	var isMember bool
	if err := r.db.QueryRowContext(ctx, query, teamID, userID).Scan(&isMember); err != nil {
		return false, fmt.Errorf("failed to check team membership: %w", err)
	}
	return isMember, nil
}
