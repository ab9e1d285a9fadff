package server

import (
	"net/http"
	"strings"

	orderdomain "github.com/MarioWinter/coderr/internal/order/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreateOrder(c *gin.Context) {
	var req orderdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.orderSvc.Create(c.Request.Context(), s.principal(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (s *Server) ListOrders(c *gin.Context) {
	resp, err := s.orderSvc.List(c.Request.Context(), s.principal(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetOrder(c *gin.Context) {
	resp, err := s.orderSvc.Get(c.Request.Context(), s.principal(c), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) UpdateOrderStatus(c *gin.Context) {
	var req orderdomain.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	resp, err := s.orderSvc.UpdateStatus(c.Request.Context(), s.principal(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) DeleteOrder(c *gin.Context) {
	err := s.orderSvc.Delete(c.Request.Context(), s.principal(c), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) OrderCount(c *gin.Context) {
	resp, err := s.orderSvc.CountInProgress(c.Request.Context(), strings.TrimSpace(c.Param("business_user_id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) CompletedOrderCount(c *gin.Context) {
	resp, err := s.orderSvc.CountCompleted(c.Request.Context(), strings.TrimSpace(c.Param("business_user_id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
