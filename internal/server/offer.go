package server

import (
	"net/http"
	"strconv"
	"strings"

	offerdomain "github.com/MarioWinter/coderr/internal/offer/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreateOffer(c *gin.Context) {
	var req offerdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.offerSvc.Create(c.Request.Context(), s.principal(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (s *Server) ListOffers(c *gin.Context) {
	var query struct {
		CreatorID       string `form:"creator_id"`
		MinPrice        string `form:"min_price"`
		MaxDeliveryTime string `form:"max_delivery_time"`
		Search          string `form:"search"`
		Ordering        string `form:"ordering"`
		Page            string `form:"page"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	minPrice, err := parseOptionalFloat(query.MinPrice)
	if err != nil {
		AbortWithError(c, newValidationError("min_price", "invalid_min_price", "invalid min_price"))
		return
	}
	maxDelivery, err := parseOptionalInt(query.MaxDeliveryTime)
	if err != nil {
		AbortWithError(c, newValidationError("max_delivery_time", "invalid_max_delivery_time", "invalid max_delivery_time"))
		return
	}

	page := 1
	if v := strings.TrimSpace(query.Page); v != "" {
		page, err = strconv.Atoi(v)
		if err != nil || page < 1 {
			AbortWithError(c, newValidationError("page", "invalid_page", "invalid page"))
			return
		}
	}

	resp, err := s.offerSvc.List(c.Request.Context(), offerdomain.ListRequest{
		CreatorID:       strings.TrimSpace(query.CreatorID),
		MinPrice:        minPrice,
		MaxDeliveryTime: maxDelivery,
		Search:          strings.TrimSpace(query.Search),
		Ordering:        strings.TrimSpace(query.Ordering),
		Page:            page,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetOffer(c *gin.Context) {
	resp, err := s.offerSvc.Get(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) UpdateOffer(c *gin.Context) {
	var req offerdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	resp, err := s.offerSvc.Update(c.Request.Context(), s.principal(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) DeleteOffer(c *gin.Context) {
	err := s.offerSvc.Delete(c.Request.Context(), s.principal(c), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) GetOfferDetail(c *gin.Context) {
	resp, err := s.offerSvc.GetTier(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
