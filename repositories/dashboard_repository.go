package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

// DashboardRepository aggregates the counters shown on the landing panel.
type DashboardRepository interface {
	CountUsers(ctx context.Context) (int, error)
	CountUsersByRole(ctx context.Context, roleID int) (int, error)
	CountActiveEvents(ctx context.Context) (int, error)
	CountProjects(ctx context.Context) (int, error)
	CountProjectsByStatus(ctx context.Context, statusName string) (int, error)
	CountPendingAssignments(ctx context.Context) (int, error)
	CountVotes(ctx context.Context) (int, error)
}

type postgresDashboardRepository struct {
	db *sql.DB
}

func NewPostgresDashboardRepository(db *sql.DB) DashboardRepository {
	return &postgresDashboardRepository{db: db}
}

func (r *postgresDashboardRepository) count(ctx context.Context, query string, args ...interface{}) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to run dashboard count: %w", err)
	}
	return n, nil
}

func (r *postgresDashboardRepository) CountUsers(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM usuarios`)
}

func (r *postgresDashboardRepository) CountUsersByRole(ctx context.Context, roleID int) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM usuarios WHERE id_tipo_usuario = $1`, roleID)
}

func (r *postgresDashboardRepository) CountActiveEvents(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM eventos WHERE ativo = TRUE`)
}

func (r *postgresDashboardRepository) CountProjects(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM projetos`)
}

func (r *postgresDashboardRepository) CountProjectsByStatus(ctx context.Context, statusName string) (int, error) {
	return r.count(ctx, `
		SELECT COUNT(*)
		FROM projetos p
		JOIN situacao s ON s.id_situacao = p.id_situacao
		WHERE s.situacao = $1`, statusName)
}

func (r *postgresDashboardRepository) CountPendingAssignments(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM avaliador_projeto WHERE status = 'pendente'`)
}

func (r *postgresDashboardRepository) CountVotes(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM votos_populares`)
}
