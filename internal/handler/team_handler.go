package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"arena/core/internal/model"
	"arena/core/internal/service"
	"arena/core/pkg/response"
)

type TeamHandler struct {
	teamService       service.TeamService
	membershipService service.MembershipService
	invitationService service.InvitationService
	logger            *zap.Logger
}

func NewTeamHandler(
	teamService service.TeamService,
	membershipService service.MembershipService,
	invitationService service.InvitationService,
	logger *zap.Logger,
) *TeamHandler {
	return &TeamHandler{
		teamService:       teamService,
		membershipService: membershipService,
		invitationService: invitationService,
		logger:            logger,
	}
}

type CreateTeamRequest struct {
	Name       string    `json:"name" binding:"required"`
	CaptainID  uuid.UUID `json:"captain_id" binding:"required"`
	RegionID   int       `json:"region_id"`
	MaxMembers int       `json:"max_members"`
	InviteCode string    `json:"invite_code"`
}

func (h *TeamHandler) Create(c *gin.Context) {
	var req CreateTeamRequest
	if !bindJSON(c, &req) {
		return
	}

	team, err := h.teamService.CreateTeam(c.Request.Context(), service.CreateTeamInput{
		Name:       req.Name,
		CaptainID:  req.CaptainID,
		RegionID:   req.RegionID,
		MaxMembers: req.MaxMembers,
		InviteCode: req.InviteCode,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Created(c, team)
}

func (h *TeamHandler) List(c *gin.Context) {
	teams, err := h.teamService.ListTeams(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Success(c, teams)
}

func (h *TeamHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	team, err := h.teamService.FindTeam(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Success(c, team)
}

type UpdateTeamRequest struct {
	Name       *string    `json:"name"`
	CaptainID  *uuid.UUID `json:"captain_id"`
	RegionID   *int       `json:"region_id"`
	MaxMembers *int       `json:"max_members"`
	InviteCode *string    `json:"invite_code"`
	Status     *string    `json:"status"`
}

func (h *TeamHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req UpdateTeamRequest
	if !bindJSON(c, &req) {
		return
	}

	input := service.UpdateTeamInput{
		Name:       req.Name,
		CaptainID:  req.CaptainID,
		RegionID:   req.RegionID,
		MaxMembers: req.MaxMembers,
		InviteCode: req.InviteCode,
	}
	if req.Status != nil {
		status := model.TeamStatus(*req.Status)
		input.Status = &status
	}

	team, err := h.teamService.UpdateTeam(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Success(c, team)
}

type SetTeamStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *TeamHandler) SetStatus(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req SetTeamStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	team, err := h.teamService.SetTeamStatus(c.Request.Context(), id, model.TeamStatus(req.Status))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Success(c, team)
}

func (h *TeamHandler) Remove(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.teamService.RemoveTeam(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Success(c, gin.H{"id": id})
}

func (h *TeamHandler) ListForUser(c *gin.Context) {
	userID, ok := uuidParam(c, "userId")
	if !ok {
		return
	}

	teams, err := h.teamService.ListTeamsForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Success(c, teams)
}

type RedeemInviteCodeRequest struct {
	Code   string    `json:"code" binding:"required"`
	UserID uuid.UUID `json:"user_id" binding:"required"`
}

// InviteByCode joins a user to the team that owns the invite code.
func (h *TeamHandler) InviteByCode(c *gin.Context) {
	var req RedeemInviteCodeRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.membershipService.RedeemInviteCode(c.Request.Context(), req.Code, req.UserID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Created(c, member)
}

type CreateInvitationRequest struct {
	TeamID    uuid.UUID `json:"team_id" binding:"required"`
	CreatedBy uuid.UUID `json:"created_by" binding:"required"`
	UsesLeft  *int      `json:"uses_left"`
}

// CreateInvitation issues an invitation link. The cleartext token appears only in this response.
func (h *TeamHandler) CreateInvitation(c *gin.Context) {
	var req CreateInvitationRequest
	if !bindJSON(c, &req) {
		return
	}

	uses := 1
	if req.UsesLeft != nil {
		if *req.UsesLeft < 1 {
			response.BadRequest(c, "uses_left must be at least 1")
			return
		}
		uses = *req.UsesLeft
	}

	inv, err := h.invitationService.CreateInvitation(c.Request.Context(), req.TeamID, req.CreatedBy, uses)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Created(c, inv)
}

type JoinByLinkRequest struct {
	Token  string    `json:"token" binding:"required"`
	UserID uuid.UUID `json:"user_id" binding:"required"`
}

func (h *TeamHandler) JoinByLink(c *gin.Context) {
	var req JoinByLinkRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.membershipService.RedeemInvitationToken(c.Request.Context(), req.Token, req.UserID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Created(c, member)
}

type ConfirmMemberRequest struct {
	Accept *bool `json:"accept" binding:"required"`
}

func (h *TeamHandler) ConfirmMember(c *gin.Context) {
	teamID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	userID, ok := uuidParam(c, "userId")
	if !ok {
		return
	}
	var req ConfirmMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.membershipService.ConfirmMembership(c.Request.Context(), teamID, userID, *req.Accept)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	response.Success(c, member)
}
