//
//  Copyright © Manetu Inc. All rights reserved.
//

// Package rest implements the HTTP validation server: a filing document is
// posted as YAML and the violation report comes back as JSON.
package rest

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xbrldq/dqengine/internal/logging"
	"github.com/xbrldq/dqengine/pkg/core"
	"github.com/xbrldq/dqengine/pkg/filing/parsers"
	"github.com/xbrldq/dqengine/pkg/service"
)

var logger = logging.GetLogger("dqengine.rest")

const agent string = "rest"

// Server serves the validation REST API.
type Server struct {
	echo *echo.Echo
}

type errorResponse struct {
	Error string `json:"error"`
}

type ruleInfo struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// CreateServer creates and starts a new validation server exposing:
//
//	POST /v1/validate  - validate a filing document (YAML body), returns the report as JSON
//	GET  /v1/rules     - list the registered rules
//	GET  /metrics      - Prometheus metrics
func CreateServer(engine *core.Engine, port int) (service.Server, error) {
	e := echo.New()
	e.HideBanner = true

	e.POST("/v1/validate", func(c echo.Context) error {
		data, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}

		f, err := parsers.Parse(data)
		if err != nil {
			logger.Debugf(agent, "validate", "rejected filing: %v", err)
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}

		report, err := engine.Evaluate(c.Request().Context(), f)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusOK, report)
	})

	e.GET("/v1/rules", func(c echo.Context) error {
		out := make([]ruleInfo, 0, len(engine.Rules()))
		for _, r := range engine.Rules() {
			out = append(out, ruleInfo{ID: r.ID, Description: r.Description})
		}
		return c.JSON(http.StatusOK, out)
	})

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Start server in goroutine since e.Start() blocks
	go func() {
		if err := e.Start(fmt.Sprintf(":%d", port)); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal(err)
		}
	}()

	logger.Infof(agent, "start", "validation service listening on :%d", port)

	return &Server{
		echo: e,
	}, nil
}

// Stop gracefully stops the Server by shutting down the Echo HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
