package handler

import (
	"Trellis/internal/api/dto"
	"Trellis/internal/api/middleware"
	"Trellis/internal/pkg/response"
	"Trellis/internal/pkg/util"
	"Trellis/internal/service"

	"github.com/gin-gonic/gin"
)

type AttitudeHandler struct {
	attitudeSvc service.AttitudeService
}

func NewAttitudeHandler(attitudeSvc service.AttitudeService) *AttitudeHandler {
	return &AttitudeHandler{attitudeSvc: attitudeSvc}
}

// GetMapping 获取调用者对某帖的态度映射，无记录等价于全零
func (s *AttitudeHandler) GetMapping(c *gin.Context) {
	memberID := c.GetString(middleware.MemberIDKey)

	mapping, err := s.attitudeSvc.GetMapping(c.Request.Context(), memberID, c.Param("post_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, mapping)
}

func (s *AttitudeHandler) Express(c *gin.Context) {
	memberID := c.GetString(middleware.MemberIDKey)

	var expressDTO dto.ExpressAttitudeDTO
	if err := c.ShouldBind(&expressDTO); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&expressDTO); err != nil {
		response.Error(c, err)
		return
	}
	err := s.attitudeSvc.Express(c.Request.Context(), memberID,
		c.Param("post_id"), expressDTO.TargetID, expressDTO.Attitude)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Text(c, "Attitude expressed")
}
