package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"arena/core/internal/config"
	"arena/core/internal/handler/middleware"
)

func SetupRouter(
	cfg *config.Config,
	logger *zap.Logger,
	teamHandler *TeamHandler,
	competitionHandler *CompetitionHandler,
	applicationHandler *ApplicationHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORS))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	teams := api.Group("/teams")
	{
		teams.POST("", teamHandler.Create)
		teams.GET("", teamHandler.List)
		teams.GET("/user/:userId", teamHandler.ListForUser)
		teams.POST("/invite/code", teamHandler.InviteByCode)
		teams.POST("/invite", teamHandler.CreateInvitation)
		teams.POST("/join/link", teamHandler.JoinByLink)
		teams.GET("/:id", teamHandler.Get)
		teams.PATCH("/:id", teamHandler.Update)
		teams.PUT("/:id/status", teamHandler.SetStatus)
		teams.DELETE("/:id", teamHandler.Remove)
		teams.POST("/:id/members/:userId/confirm", teamHandler.ConfirmMember)
	}

	competitions := api.Group("/competitions")
	{
		competitions.POST("", competitionHandler.Create)
		competitions.GET("", competitionHandler.List)
		competitions.GET("/:id", competitionHandler.Get)
		competitions.GET("/:id/participants", competitionHandler.Participants)
		competitions.GET("/:id/teams-with-members", competitionHandler.TeamsWithMembers)
	}

	applications := api.Group("/applications")
	{
		applications.POST("", applicationHandler.Create)
		applications.GET("", applicationHandler.List)
		applications.GET("/competition/:id", applicationHandler.ListByCompetition)
		applications.GET("/region/:regionId", applicationHandler.ListByRegion)
		applications.GET("/user/:userId", applicationHandler.ListByUser)
		applications.GET("/:id", applicationHandler.Get)
		applications.PATCH("/:id", applicationHandler.Update)
	}

	return r
}
