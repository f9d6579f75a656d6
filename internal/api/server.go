// Package api serves a decoded LVB container over HTTP for read-only
// gimmick lookups.
package api

import (
	"net/http"

	"github.com/labstack/echo/v5"

	"github.com/roccodev/xeno-lvb/internal/dump"
	"github.com/roccodev/xeno-lvb/pkg/lvb"
)

type Server struct {
	container *lvb.Container
	opts      dump.Options
}

// NewServer wraps a decoded container. The container is immutable, so
// one server may answer concurrent requests without locking.
func NewServer(c *lvb.Container, opts dump.Options) *Server {
	return &Server{container: c, opts: opts}
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/v1/container", s.handleContainer)
	e.GET("/v1/gimmicks/:key", s.handleGimmick)
	e.GET("/v1/bdat/:key", s.handleBdat)
}

func (s *Server) handleContainer(c *echo.Context) error {
	return c.JSON(http.StatusOK, dump.ContainerValue(s.container, s.opts))
}

func (s *Server) handleGimmick(c *echo.Context) error {
	key := c.Param("key")
	entry, ok := s.container.Gimmick(key)
	if !ok {
		return writeNotFound(c, "gimmick "+key+" not found")
	}
	return c.JSON(http.StatusOK, dump.EntryValue(s.container, entry, s.opts))
}

func (s *Server) handleBdat(c *echo.Context) error {
	if !s.container.Modern {
		return writeBadRequest(c, "bdat ids exist only in modern-format containers")
	}
	key := c.Param("key")
	entry, ok := s.container.BdatGimmick(key)
	if !ok {
		return writeNotFound(c, "bdat id "+key+" not found")
	}
	return c.JSON(http.StatusOK, dump.EntryValue(s.container, entry, s.opts))
}
