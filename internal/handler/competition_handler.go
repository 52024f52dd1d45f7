package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"arena/core/internal/model"
	"arena/core/internal/service"
	"arena/core/pkg/response"
)

type CompetitionHandler struct {
	competitionService service.CompetitionService
	rosterService      service.RosterService
	logger             *zap.Logger
}

func NewCompetitionHandler(competitionService service.CompetitionService, rosterService service.RosterService, logger *zap.Logger) *CompetitionHandler {
	return &CompetitionHandler{
		competitionService: competitionService,
		rosterService:      rosterService,
		logger:             logger,
	}
}

type CreateCompetitionRequest struct {
	Name       string    `json:"name" binding:"required"`
	Type       string    `json:"type" binding:"required"`
	Discipline string    `json:"discipline" binding:"required"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	RegionID   *int      `json:"region_id"`
}

func (h *CompetitionHandler) Create(c *gin.Context) {
	var req CreateCompetitionRequest
	if !bindJSON(c, &req) {
		return
	}

	comp, err := h.competitionService.CreateCompetition(c.Request.Context(), service.CreateCompetitionInput{
		Name:       req.Name,
		Type:       model.CompetitionType(req.Type),
		Discipline: model.Discipline(req.Discipline),
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		RegionID:   req.RegionID,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Created(c, comp)
}

func (h *CompetitionHandler) List(c *gin.Context) {
	list, err := h.competitionService.ListCompetitions(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Success(c, list)
}

func (h *CompetitionHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	comp, err := h.competitionService.FindCompetition(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Success(c, comp)
}

// Participants resolves every user entered in the competition through the users service.
func (h *CompetitionHandler) Participants(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	users, err := h.rosterService.GetParticipants(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Success(c, users)
}

func (h *CompetitionHandler) TeamsWithMembers(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	rosters, err := h.rosterService.GetTeamsWithMembers(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Success(c, rosters)
}
