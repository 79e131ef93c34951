package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/rafaelrch/koplai/api/handler"
)

type Handlers struct {
	Auth     *apiHandler.AuthHandler
	Board    *apiHandler.BoardHandler
	Agent    *apiHandler.AgentHandler
	Invite   *apiHandler.InviteHandler
	Feedback *apiHandler.FeedbackHandler
	Health   *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/signup", handlers.Auth.SignUp)
	r.POST("/api/v1/auth/login", handlers.Auth.SignIn)
	r.POST("/api/v1/auth/logout", authMiddleware(handlers.Auth.SignOut))

	// Protected routes
	r.GET("/api/v1/profile", authMiddleware(handlers.Auth.GetProfile))
	r.PUT("/api/v1/profile", authMiddleware(handlers.Auth.UpdateProfile))

	// Column and task paths are registered before the catch-all view path so
	// /kanban/columns does not resolve as a view name.
	r.POST("/api/v1/kanban/columns", authMiddleware(handlers.Board.CreateColumn))
	r.PUT("/api/v1/kanban/columns/{id}", authMiddleware(handlers.Board.UpdateColumn))
	r.DELETE("/api/v1/kanban/columns/{id}", authMiddleware(handlers.Board.DeleteColumn))
	r.POST("/api/v1/kanban/tasks", authMiddleware(handlers.Board.CreateTask))
	r.PUT("/api/v1/kanban/tasks/{id}", authMiddleware(handlers.Board.UpdateTask))
	r.DELETE("/api/v1/kanban/tasks/{id}", authMiddleware(handlers.Board.DeleteTask))
	r.POST("/api/v1/kanban/tasks/{id}/move", authMiddleware(handlers.Board.MoveTask))
	r.GET("/api/v1/kanban/{view}", authMiddleware(handlers.Board.GetBoard))

	r.GET("/api/v1/agents", authMiddleware(handlers.Agent.ListAgents))
	r.POST("/api/v1/agents", authMiddleware(handlers.Agent.CreateAgent))
	r.GET("/api/v1/agents/{id}", authMiddleware(handlers.Agent.GetAgent))
	r.PUT("/api/v1/agents/{id}", authMiddleware(handlers.Agent.UpdateAgent))
	r.DELETE("/api/v1/agents/{id}", authMiddleware(handlers.Agent.DeleteAgent))
	r.POST("/api/v1/agents/{id}/run", authMiddleware(handlers.Agent.RunAgent))
	r.GET("/api/v1/history", authMiddleware(handlers.Agent.ListHistory))

	r.POST("/api/v1/invites", authMiddleware(handlers.Invite.CreateInvite))
	r.GET("/api/v1/invites", authMiddleware(handlers.Invite.ListInvites))
	r.POST("/api/v1/invites/accept", authMiddleware(handlers.Invite.AcceptInvite))
	r.GET("/api/v1/team", authMiddleware(handlers.Invite.ListTeam))

	r.POST("/api/v1/feedback", authMiddleware(handlers.Feedback.Submit))
	r.GET("/api/v1/feedback", authMiddleware(handlers.Feedback.List))

	return r
}
