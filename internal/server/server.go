// Package server serves augmented leaderboards over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/porjo/srdiff/internal/page"
)

const (
	httpServerReadTimeout  = 5 * time.Second
	httpServerWriteTimeout = 60 * time.Second
	shutdownTimeout        = 5 * time.Second
)

type Server struct {
	fetcher *page.Fetcher
	echo    *echo.Echo
}

func New(fetcher *page.Fetcher) *Server {
	s := &Server{fetcher: fetcher, echo: echo.New()}

	e := s.echo
	e.HideBanner = true
	e.JSONSerializer = sonicSerializer{}
	e.Server.ReadTimeout = httpServerReadTimeout
	e.Server.WriteTimeout = httpServerWriteTimeout

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				slog.Error("request", "uri", v.URI, "status", v.Status, "err", v.Error)
				return nil
			}
			slog.Info("request", "uri", v.URI, "status", v.Status)
			return nil
		},
	}))

	e.GET("/diff", s.DiffHandler)
	e.GET("/diff.json", s.DiffJSONHandler)
	e.GET("/feed", s.FeedHandler)

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run listens on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	errc := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", addr)
		errc <- s.echo.Start(addr)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	ctx2, cancel2 := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel2()
	if err := s.echo.Shutdown(ctx2); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// sonicSerializer swaps echo's encoding/json for sonic.
type sonicSerializer struct{}

func (sonicSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := sonic.ConfigDefault.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (sonicSerializer) Deserialize(c echo.Context, i interface{}) error {
	if err := sonic.ConfigDefault.NewDecoder(c.Request().Body).Decode(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return nil
}
