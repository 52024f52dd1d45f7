package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"arena/core/internal/model"
	"arena/core/internal/service"
	"arena/core/pkg/response"
)

type ApplicationHandler struct {
	applicationService service.ApplicationService
	logger             *zap.Logger
}

func NewApplicationHandler(applicationService service.ApplicationService, logger *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService, logger: logger}
}

type CreateApplicationRequest struct {
	CompetitionID uuid.UUID  `json:"competition_id" binding:"required"`
	TeamID        *uuid.UUID `json:"team_id"`
	UserID        *uuid.UUID `json:"user_id"`
}

func (h *ApplicationHandler) Create(c *gin.Context) {
	var req CreateApplicationRequest
	if !bindJSON(c, &req) {
		return
	}

	app, err := h.applicationService.CreateApplication(c.Request.Context(), service.CreateApplicationInput{
		CompetitionID: req.CompetitionID,
		TeamID:        req.TeamID,
		UserID:        req.UserID,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Created(c, app)
}

func (h *ApplicationHandler) List(c *gin.Context) {
	apps, err := h.applicationService.ListApplications(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Success(c, apps)
}

func (h *ApplicationHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	app, err := h.applicationService.FindApplication(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Success(c, app)
}

func (h *ApplicationHandler) ListByRegion(c *gin.Context) {
	regionID, err := strconv.Atoi(c.Param("regionId"))
	if err != nil {
		response.BadRequest(c, "invalid regionId")
		return
	}

	apps, err := h.applicationService.ListByRegion(c.Request.Context(), regionID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Success(c, apps)
}

// ListByUser returns solo and team entries of a user; a user without teams gets a 404.
func (h *ApplicationHandler) ListByUser(c *gin.Context) {
	userID, ok := uuidParam(c, "userId")
	if !ok {
		return
	}

	apps, err := h.applicationService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Success(c, apps)
}

func (h *ApplicationHandler) ListByCompetition(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	apps, err := h.applicationService.ListByCompetition(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Success(c, apps)
}

type UpdateApplicationRequest struct {
	Status  string `json:"status" binding:"required"`
	Comment string `json:"comment"`
}

func (h *ApplicationHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req UpdateApplicationRequest
	if !bindJSON(c, &req) {
		return
	}

	app, err := h.applicationService.UpdateApplication(c.Request.Context(), id, model.ApplicationStatus(req.Status), req.Comment)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Success(c, app)
}
