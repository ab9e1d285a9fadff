package server

import (
	"strings"

	"github.com/MarioWinter/coderr/internal/identity"
	"github.com/gin-gonic/gin"
)

const (
	authScheme          = "Token"
	contextPrincipalKey = "principal"
)

// ResolvePrincipal turns an "Authorization: Token <key>" header into the
// Principal carried through the request. A missing header yields the
// anonymous principal; a present but unknown token is rejected outright.
func (s *Server) ResolvePrincipal() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			c.Set(contextPrincipalKey, identity.Anonymous())
			c.Next()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], authScheme) {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		principal, err := s.profileSvc.Authenticate(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(contextPrincipalKey, principal)
		c.Next()
	}
}

func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.principal(c).Authenticated {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		c.Next()
	}
}

func (s *Server) principal(c *gin.Context) identity.Principal {
	if v, ok := c.Get(contextPrincipalKey); ok {
		if p, ok := v.(identity.Principal); ok {
			return p
		}
	}
	return identity.Anonymous()
}
