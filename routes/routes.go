package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/uniexpo/fair-system/handlers"
	"github.com/uniexpo/fair-system/middleware"
	"github.com/uniexpo/fair-system/services"
)

// Handlers groups everything SetupRoutes mounts.
type Handlers struct {
	Auth          *handlers.AuthHandler
	User          *handlers.UserHandler
	Event         *handlers.EventHandler
	Status        *handlers.StatusHandler
	Project       *handlers.ProjectHandler
	Team          *handlers.TeamHandler
	Task          *handlers.TaskHandler
	Comment       *handlers.CommentHandler
	Questionnaire *handlers.QuestionnaireHandler
	Assignment    *handlers.AssignmentHandler
	Evaluation    *handlers.EvaluationHandler
	Review        *handlers.ReviewHandler
	Vote          *handlers.VoteHandler
	Presentation  *handlers.PresentationHandler
	Dashboard     *handlers.DashboardHandler
	WebSocket     *handlers.WebSocketHandler
}

func SetupRoutes(router *chi.Mux, auth *middleware.Authenticator, h Handlers) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	// Public surface: account creation, login and the visitor-facing reads.
	router.Post("/registrar", h.Auth.Register)
	router.Post("/login", h.Auth.Login)
	router.Post("/senha/recuperar", h.Auth.ForgotPassword)

	router.Get("/eventos", h.Event.List)
	router.Get("/eventos/{eventID}", h.Event.GetByID)
	router.Get("/eventos/{eventID}/apuracao", h.Vote.TallyByEvent)

	router.Get("/ws/eventos/{eventID}", h.WebSocket.ServeEventRoom)

	// Everything below requires a valid token.
	router.Group(func(r chi.Router) {
		r.Use(auth.Authenticate)

		r.Post("/logout", h.Auth.Logout)
		r.Put("/senha", h.Auth.ChangePassword)

		r.Route("/usuarios", func(r chi.Router) {
			r.Get("/me", h.User.Me)
			r.Post("/me/foto", h.User.UploadPhoto)

			r.With(middleware.RequirePermission(services.PermViewUsers)).Get("/", h.User.List)
			r.With(middleware.RequirePermission(services.PermViewUsers)).Get("/{userID}", h.User.GetByID)
			r.With(middleware.RequirePermission(services.PermManageUsers)).Post("/", h.User.Create)
			r.Put("/{userID}", h.User.Update)
			r.With(middleware.RequirePermission(services.PermManageUsers)).Delete("/{userID}", h.User.Delete)
		})

		r.Route("/eventos", func(r chi.Router) {
			r.Use(middleware.RequirePermission(services.PermManageEvents))
			r.Post("/", h.Event.Create)
			r.Put("/{eventID}", h.Event.Update)
			r.Delete("/{eventID}", h.Event.Delete)
		})

		r.Route("/situacoes", func(r chi.Router) {
			r.Get("/", h.Status.List)
			r.Get("/{statusID}", h.Status.GetByID)
			r.With(middleware.RequirePermission(services.PermManageStatuses)).Post("/", h.Status.Create)
			r.With(middleware.RequirePermission(services.PermManageStatuses)).Put("/{statusID}", h.Status.Update)
			r.With(middleware.RequirePermission(services.PermManageStatuses)).Delete("/{statusID}", h.Status.Delete)
		})

		r.Route("/projetos", func(r chi.Router) {
			r.With(middleware.RequirePermission(services.PermViewProjects)).Get("/", h.Project.List)
			r.With(middleware.RequirePermission(services.PermViewProjects)).Get("/{projectID}", h.Project.GetByID)
			r.With(middleware.RequirePermission(services.PermManageProjects)).Post("/", h.Project.Create)
			r.With(middleware.RequirePermission(services.PermManageProjects)).Put("/{projectID}", h.Project.Update)
			r.With(middleware.RequirePermission(services.PermManageProjects)).Delete("/{projectID}", h.Project.Delete)
			r.With(middleware.RequirePermission(services.PermManageTeams)).Post("/{projectID}/inscrever", h.Project.Enroll)

			r.With(middleware.RequirePermission(services.PermViewTeams)).Get("/{projectID}/equipe", h.Team.GetByProject)
			r.With(middleware.RequirePermission(services.PermViewTasks)).Get("/{projectID}/tarefas", h.Task.ListByProject)
			r.With(middleware.RequirePermission(services.PermManageAssignments)).Get("/{projectID}/atribuicoes", h.Assignment.ListByProject)
			r.With(middleware.RequirePermission(services.PermViewEvaluations)).Get("/{projectID}/avaliacoes", h.Evaluation.ListByProject)
			r.With(middleware.RequirePermission(services.PermReviewProjects)).Get("/{projectID}/revisoes", h.Review.ListByProject)

			r.With(middleware.RequirePermission(services.PermViewProjects)).Get("/{projectID}/apresentacoes", h.Presentation.ListByProject)
			r.With(middleware.RequirePermission(services.PermManageProjects)).Post("/{projectID}/apresentacoes", h.Presentation.Upload)
		})

		r.Route("/equipes", func(r chi.Router) {
			r.Use(middleware.RequirePermission(services.PermViewTeams))
			r.Get("/{teamID}/integrantes", h.Team.ListMembers)
		})
		r.Route("/integrantes", func(r chi.Router) {
			r.Use(middleware.RequirePermission(services.PermManageTeams))
			r.Put("/{memberID}/promover", h.Team.PromoteMember)
			r.Delete("/{memberID}", h.Team.RemoveMember)
		})

		r.Route("/tarefas", func(r chi.Router) {
			r.With(middleware.RequirePermission(services.PermManageTasks)).Post("/", h.Task.Create)
			r.With(middleware.RequirePermission(services.PermViewTasks)).Get("/{taskID}", h.Task.GetByID)
			r.With(middleware.RequirePermission(services.PermManageTasks)).Put("/{taskID}", h.Task.Update)
			r.With(middleware.RequirePermission(services.PermManageTasks)).Delete("/{taskID}", h.Task.Delete)
			r.With(middleware.RequirePermission(services.PermViewTasks)).Get("/{taskID}/registros", h.Task.ListRecords)
		})

		r.Route("/registros", func(r chi.Router) {
			r.With(middleware.RequirePermission(services.PermManageTasks)).Post("/", h.Task.CreateRecord)
			r.With(middleware.RequirePermission(services.PermViewTasks)).Get("/{recordID}", h.Task.GetRecordByID)
			r.With(middleware.RequirePermission(services.PermManageTasks)).Put("/{recordID}", h.Task.UpdateRecord)
			r.With(middleware.RequirePermission(services.PermManageTasks)).Delete("/{recordID}", h.Task.DeleteRecord)
			r.With(middleware.RequirePermission(services.PermManageTasks)).Post("/{recordID}/arquivo", h.Task.UploadRecordFile)
			r.With(middleware.RequirePermission(services.PermViewTasks)).Get("/{recordID}/comentarios", h.Comment.ListByRecord)
		})

		r.Route("/comentarios", func(r chi.Router) {
			r.Post("/", h.Comment.Create)
			r.Put("/{commentID}", h.Comment.Update)
			r.Delete("/{commentID}", h.Comment.Delete)
		})

		r.Route("/questionarios", func(r chi.Router) {
			r.With(middleware.RequirePermission(services.PermViewQuestionnaires)).Get("/{questionnaireID}", h.Questionnaire.GetByID)
			r.With(middleware.RequirePermission(services.PermManageQuestionnaires)).Post("/", h.Questionnaire.Create)
			r.With(middleware.RequirePermission(services.PermManageQuestionnaires)).Put("/{questionnaireID}", h.Questionnaire.Update)
			r.With(middleware.RequirePermission(services.PermManageQuestionnaires)).Delete("/{questionnaireID}", h.Questionnaire.Delete)
			r.With(middleware.RequirePermission(services.PermManageQuestionnaires)).Post("/{questionnaireID}/perguntas", h.Questionnaire.AddQuestion)
		})
		r.With(middleware.RequirePermission(services.PermViewQuestionnaires)).
			Get("/eventos/{eventID}/questionarios", h.Questionnaire.ListByEvent)
		r.Route("/perguntas", func(r chi.Router) {
			r.Use(middleware.RequirePermission(services.PermManageQuestionnaires))
			r.Put("/{questionID}", h.Questionnaire.UpdateQuestion)
			r.Delete("/{questionID}", h.Questionnaire.DeleteQuestion)
		})

		r.Route("/atribuicoes", func(r chi.Router) {
			r.Use(middleware.RequirePermission(services.PermManageAssignments))
			r.Post("/", h.Assignment.Assign)
			r.Get("/{assignmentID}", h.Assignment.GetByID)
			r.Delete("/{assignmentID}", h.Assignment.Delete)
		})
		r.With(middleware.RequirePermission(services.PermViewEvaluations)).
			Get("/avaliadores/{evaluatorID}/atribuicoes", h.Assignment.ListByEvaluator)

		r.Route("/avaliacoes", func(r chi.Router) {
			r.With(middleware.RequirePermission(services.PermSubmitEvaluations)).Post("/", h.Evaluation.Submit)
			r.With(middleware.RequirePermission(services.PermViewEvaluations)).Get("/{evaluationID}", h.Evaluation.GetByID)
			r.Put("/{evaluationID}", h.Evaluation.Update)
			r.With(middleware.RequirePermission(services.PermManageAssignments)).Delete("/{evaluationID}", h.Evaluation.Delete)
		})

		r.Route("/revisoes", func(r chi.Router) {
			r.Use(middleware.RequirePermission(services.PermReviewProjects))
			r.Post("/", h.Review.Create)
			r.Get("/", h.Review.List)
			r.Get("/{reviewID}", h.Review.GetByID)
			r.Delete("/{reviewID}", h.Review.Delete)
		})

		r.Route("/votos", func(r chi.Router) {
			r.With(middleware.RequirePermission(services.PermVote)).Post("/", h.Vote.Create)
			r.With(middleware.RequirePermission(services.PermManageEvents)).Get("/", h.Vote.List)
			r.Get("/{voteID}", h.Vote.GetByID)
			r.Put("/{voteID}", h.Vote.Update)
			r.Delete("/{voteID}", h.Vote.Delete)
		})

		r.Route("/apresentacoes", func(r chi.Router) {
			r.With(middleware.RequirePermission(services.PermViewProjects)).Get("/{presentationID}", h.Presentation.GetByID)
			r.With(middleware.RequirePermission(services.PermManageProjects)).Delete("/{presentationID}", h.Presentation.Delete)
		})

		r.With(middleware.RequirePermission(services.PermManageUsers)).Get("/dashboard", h.Dashboard.Stats)
	})
}
