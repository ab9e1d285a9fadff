package server

import (
	"net/http"
	"strings"

	"github.com/MarioWinter/coderr/internal/identity"
	profiledomain "github.com/MarioWinter/coderr/internal/profile/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) Register(c *gin.Context) {
	var req profiledomain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.profileSvc.Register(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (s *Server) Login(c *gin.Context) {
	var req profiledomain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.profileSvc.Login(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetProfile(c *gin.Context) {
	resp, err := s.profileSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) UpdateProfile(c *gin.Context) {
	var req profiledomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	resp, err := s.profileSvc.Update(c.Request.Context(), s.principal(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) ListBusinessProfiles(c *gin.Context) {
	s.listProfiles(c, identity.TypeBusiness)
}

func (s *Server) ListCustomerProfiles(c *gin.Context) {
	s.listProfiles(c, identity.TypeCustomer)
}

func (s *Server) listProfiles(c *gin.Context, userType identity.UserType) {
	resp, err := s.profileSvc.ListByType(c.Request.Context(), userType)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
