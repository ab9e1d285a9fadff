package server

import (
	"encoding/json"
	"net/http"
	"strings"

	reviewdomain "github.com/MarioWinter/coderr/internal/review/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreateReview(c *gin.Context) {
	var req reviewdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.reviewSvc.Create(c.Request.Context(), s.principal(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (s *Server) ListReviews(c *gin.Context) {
	var query struct {
		BusinessID string `form:"business_user_id"`
		ReviewerID string `form:"reviewer_id"`
		Ordering   string `form:"ordering"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.reviewSvc.List(c.Request.Context(), s.principal(c), reviewdomain.ListRequest{
		BusinessID: strings.TrimSpace(query.BusinessID),
		ReviewerID: strings.TrimSpace(query.ReviewerID),
		Ordering:   strings.TrimSpace(query.Ordering),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetReview(c *gin.Context) {
	resp, err := s.reviewSvc.Get(c.Request.Context(), s.principal(c), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateReview accepts rating and description only. Any other key in the
// payload fails the request instead of being silently dropped.
func (s *Server) UpdateReview(c *gin.Context) {
	var raw map[string]json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	req := reviewdomain.UpdateRequest{ID: strings.TrimSpace(c.Param("id"))}
	for key, value := range raw {
		switch key {
		case "rating":
			var rating float64
			if err := json.Unmarshal(value, &rating); err != nil {
				AbortWithError(c, reviewdomain.ErrInvalidRating)
				return
			}
			req.Rating = &rating
		case "description":
			var description string
			if err := json.Unmarshal(value, &description); err != nil {
				AbortWithError(c, invalidRequestError())
				return
			}
			req.Description = &description
		default:
			AbortWithError(c, reviewdomain.ErrUnsupportedField)
			return
		}
	}

	resp, err := s.reviewSvc.Update(c.Request.Context(), s.principal(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) DeleteReview(c *gin.Context) {
	err := s.reviewSvc.Delete(c.Request.Context(), s.principal(c), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
