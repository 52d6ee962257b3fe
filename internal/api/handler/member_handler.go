package handler

import (
	"Cuben/internal/api/dto"
	"Cuben/internal/pkg/response"
	"Cuben/internal/service"
	"strings"

	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	memberSvc service.MemberService
}

func NewMemberHandler(memberSvc service.MemberService) *MemberHandler {
	return &MemberHandler{memberSvc: memberSvc}
}

func (s *MemberHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}
	memberDTO, err := s.memberSvc.Signup(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, memberDTO)
}

func (s *MemberHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}
	memberDTO, err := s.memberSvc.Login(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, memberDTO)
}

func (s *MemberHandler) Logout(c *gin.Context) {
	token := c.Request.Header.Get("Authorization")
	token = strings.Replace(token, "Bearer ", "", 1)
	if err := s.memberSvc.Logout(c.Request.Context(), token); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *MemberHandler) GetMe(c *gin.Context) {
	meID := c.GetUint64("member_id")
	memberDTO, err := s.memberSvc.GetMember(c.Request.Context(), meID, meID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, memberDTO)
}

func (s *MemberHandler) UpdateMe(c *gin.Context) {
	meID := c.GetUint64("member_id")
	var req dto.MemberUpdateReq
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}
	memberDTO, err := s.memberSvc.UpdateMember(c.Request.Context(), meID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, memberDTO)
}

func (s *MemberHandler) GetMember(c *gin.Context) {
	meID := c.GetUint64("member_id")
	memberID := pathID(c, "member_id")
	memberDTO, err := s.memberSvc.GetMember(c.Request.Context(), meID, memberID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, memberDTO)
}

func (s *MemberHandler) GetAgents(c *gin.Context) {
	meID := c.GetUint64("member_id")
	var inquiry dto.AgentsInquiry
	if err := c.ShouldBindQuery(&inquiry); err != nil {
		response.Error(c, err)
		return
	}
	membersDTO, err := s.memberSvc.GetAgents(c.Request.Context(), meID, &inquiry)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, membersDTO)
}

func (s *MemberHandler) LikeMember(c *gin.Context) {
	meID := c.GetUint64("member_id")
	memberID := pathID(c, "member_id")
	state, err := s.memberSvc.LikeMember(c.Request.Context(), meID, memberID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, state)
}

func (s *MemberHandler) GetAllMembers(c *gin.Context) {
	var inquiry dto.MembersInquiry
	if err := c.ShouldBindQuery(&inquiry); err != nil {
		response.Error(c, err)
		return
	}
	membersDTO, err := s.memberSvc.GetAllMembers(c.Request.Context(), &inquiry)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, membersDTO)
}

func (s *MemberHandler) UpdateMemberByAdmin(c *gin.Context) {
	adminID := c.GetUint64("member_id")
	var req dto.MemberAdminUpdateReq
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}
	memberDTO, err := s.memberSvc.UpdateMemberByAdmin(c.Request.Context(), adminID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, memberDTO)
}
