package handler

import (
	"Trellis/internal/api/dto"
	"Trellis/internal/api/middleware"
	"Trellis/internal/pkg/response"
	"Trellis/internal/pkg/util"
	"Trellis/internal/service"

	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	memberSvc service.MemberService
	uploadSvc service.UploadService
}

func NewMemberHandler(memberSvc service.MemberService, uploadSvc service.UploadService) *MemberHandler {
	return &MemberHandler{memberSvc: memberSvc, uploadSvc: uploadSvc}
}

func (s *MemberHandler) Signup(c *gin.Context) {
	var signupDTO dto.SignupDTO
	if err := c.ShouldBind(&signupDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&signupDTO); err != nil {
		response.Error(c, err)
		return
	}
	memberID, err := s.memberSvc.Signup(c.Request.Context(), signupDTO.EmailAddress, signupDTO.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]string{"memberId": memberID})
}

func (s *MemberHandler) VerifyEmail(c *gin.Context) {
	var verifyDTO dto.VerifyEmailDTO
	if err := c.ShouldBind(&verifyDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&verifyDTO); err != nil {
		response.Error(c, err)
		return
	}
	err := s.memberSvc.VerifyEmail(c.Request.Context(), verifyDTO.EmailAddress, verifyDTO.ProviderID, verifyDTO.Token)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Text(c, "Email address verified")
}

func (s *MemberHandler) Login(c *gin.Context) {
	var loginDTO dto.LoginDTO
	if err := c.ShouldBind(&loginDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&loginDTO); err != nil {
		response.Error(c, err)
		return
	}
	token, err := s.memberSvc.Login(c.Request.Context(), loginDTO.EmailAddress, loginDTO.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]string{"token": token})
}

func (s *MemberHandler) Logout(c *gin.Context) {
	signature := c.GetString("token_signature")
	if err := s.memberSvc.Logout(c.Request.Context(), signature); err != nil {
		response.Error(c, err)
		return
	}
	response.Text(c, "Logged out")
}

func (s *MemberHandler) GetInfo(c *gin.Context) {
	info, err := s.memberSvc.GetInfo(c.Request.Context(), c.Param("member_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}

func (s *MemberHandler) UpdateInfo(c *gin.Context) {
	memberID := c.GetString(middleware.MemberIDKey)

	var infoDTO dto.UpdateMemberInfoDTO
	if err := c.ShouldBind(&infoDTO); err != nil {
		response.Error(c, err)
		return
	}
	err := s.memberSvc.UpdateInfo(c.Request.Context(), memberID, memberID, &service.MemberInfoUpdate{
		Nickname:   infoDTO.Nickname,
		BriefIntro: infoDTO.BriefIntro,
		Gender:     infoDTO.Gender,
		Birthday:   infoDTO.Birthday,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Text(c, "Member info updated")
}

func (s *MemberHandler) GetStatistics(c *gin.Context) {
	stats, err := s.memberSvc.GetStatistics(c.Request.Context(), c.Param("member_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}

func (s *MemberHandler) UploadAvatar(c *gin.Context) {
	memberID := c.GetString(middleware.MemberIDKey)

	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrInvalidRequestInfo)
		return
	}
	objectName, err := s.uploadSvc.UploadAvatar(c.Request.Context(), memberID, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]string{"avatarImageFullName": objectName})
}
