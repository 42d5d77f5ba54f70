package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"SigBoard/internal/domain/models"
	domrepo "SigBoard/internal/domain/repository"
	"SigBoard/internal/usecase"
	xhttp "SigBoard/pkg/http"
	xlogger "SigBoard/pkg/logger"
)

// BoardHandler serves the read-only board surface. Both snapshot endpoints
// answer 200 with the raw wire shapes regardless of backend health; a broken
// store shows up as the offline default and empty lists, never as a 5xx.
type BoardHandler struct {
	log          *xlogger.Logger
	snap         *usecase.SnapshotService
	store        domrepo.RecordStore
	hub          *WSHub
	defaultLimit int
	limitCap     int
}

func NewBoardHandler(
	log *xlogger.Logger,
	snap *usecase.SnapshotService,
	store domrepo.RecordStore,
	hub *WSHub,
	defaultLimit, limitCap int,
) *BoardHandler {
	if defaultLimit <= 0 {
		defaultLimit = usecase.DefaultLimit
	}
	if limitCap <= 0 {
		limitCap = 100
	}
	return &BoardHandler{
		log:          log,
		snap:         snap,
		store:        store,
		hub:          hub,
		defaultLimit: defaultLimit,
		limitCap:     limitCap,
	}
}

// RegisterRoutes registers all board routes.
func (h *BoardHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/status", h.GetStatus)
	e.GET("/signals", h.GetSignals)
	e.GET("/healthz", h.Healthz)
	if h.hub != nil {
		e.GET("/ws/status", h.hub.ServeWS)
	}
}

// GetStatus serves the composed status snapshot. Responses are never
// cacheable: consumers poll this endpoint and must always see fresh state.
func (h *BoardHandler) GetStatus(c echo.Context) error {
	snap := h.snap.GetSnapshot(c.Request().Context())

	c.Response().Header().Set("Cache-Control", "no-store")
	c.Response().Header().Set("Pragma", "no-cache")
	return c.JSON(http.StatusOK, snap)
}

// GetSignals serves the most recent signals. An unparseable or invalid limit
// falls back to the default instead of rejecting the request, and anything
// above the cap is clamped.
func (h *BoardHandler) GetSignals(c echo.Context) error {
	req := &models.SignalsRequest{}
	if details := xhttp.ReadAndValidateRequest(c, req); details != nil {
		h.log.Warn("signals limit rejected, serving default",
			xlogger.String("limit", c.QueryParam("limit")),
		)
		req.Limit = h.defaultLimit
	}
	if req.Limit > h.limitCap {
		req.Limit = h.limitCap
	}

	snap := h.snap.GetSignalsSnapshot(c.Request().Context(), req.Limit)

	c.Response().Header().Set("Cache-Control", "no-store")
	return c.JSON(http.StatusOK, snap)
}

// Healthz reports backend reachability. Unlike the snapshot endpoints this
// one does surface store failures, so probes can tell degraded from healthy.
func (h *BoardHandler) Healthz(c echo.Context) error {
	if err := h.store.Health(c.Request().Context()); err != nil {
		h.log.Error("health check failed", xlogger.Error(err))
		return xhttp.DataResponse(c, http.StatusServiceUnavailable, map[string]string{
			"redis": "unreachable",
		})
	}
	return xhttp.SuccessResponse(c, map[string]string{"redis": "ok"})
}
