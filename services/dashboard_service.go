package services

import (
	"context"

	"github.com/uniexpo/fair-system/models"
	"github.com/uniexpo/fair-system/repositories"
	"golang.org/x/sync/errgroup"
)

// DashboardStats is the admin landing panel summary.
type DashboardStats struct {
	UsersTotal          int `json:"usuarios_total"`
	StudentsTotal       int `json:"alunos_total"`
	EvaluatorsTotal     int `json:"avaliadores_total"`
	ActiveEvents        int `json:"eventos_ativos"`
	ProjectsTotal       int `json:"projetos_total"`
	ProjectsUnderReview int `json:"projetos_em_analise"`
	ProjectsApproved    int `json:"projetos_aprovados"`
	PendingAssignments  int `json:"atribuicoes_pendentes"`
	VotesTotal          int `json:"votos_total"`
}

type DashboardService interface {
	GetStats(ctx context.Context) (DashboardStats, error)
}

type dashboardService struct {
	dashboardRepo repositories.DashboardRepository
}

func NewDashboardService(dashboardRepo repositories.DashboardRepository) DashboardService {
	return &dashboardService{dashboardRepo: dashboardRepo}
}

// GetStats fans the counters out concurrently; one failed query fails the whole call.
func (s *dashboardService) GetStats(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.UsersTotal, err = s.dashboardRepo.CountUsers(gctx)
		return
	})
	g.Go(func() (err error) {
		stats.StudentsTotal, err = s.dashboardRepo.CountUsersByRole(gctx, int(models.RoleStudent))
		return
	})
	g.Go(func() (err error) {
		stats.EvaluatorsTotal, err = s.dashboardRepo.CountUsersByRole(gctx, int(models.RoleEvaluator))
		return
	})
	g.Go(func() (err error) {
		stats.ActiveEvents, err = s.dashboardRepo.CountActiveEvents(gctx)
		return
	})
	g.Go(func() (err error) {
		stats.ProjectsTotal, err = s.dashboardRepo.CountProjects(gctx)
		return
	})
	g.Go(func() (err error) {
		stats.ProjectsUnderReview, err = s.dashboardRepo.CountProjectsByStatus(gctx, models.StatusUnderReview)
		return
	})
	g.Go(func() (err error) {
		stats.ProjectsApproved, err = s.dashboardRepo.CountProjectsByStatus(gctx, models.StatusApproved)
		return
	})
	g.Go(func() (err error) {
		stats.PendingAssignments, err = s.dashboardRepo.CountPendingAssignments(gctx)
		return
	})
	g.Go(func() (err error) {
		stats.VotesTotal, err = s.dashboardRepo.CountVotes(gctx)
		return
	})

	if err := g.Wait(); err != nil {
		return DashboardStats{}, err
	}
	return stats, nil
}
