package main

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type checkMessageRequest struct {
	UserID string `json:"user_id"`
	Text   string `json:"text"`
}

type checkMessageResponse struct {
	Blocked bool `json:"blocked"`
	Score   int  `json:"score"`
}

type reportViolationRequest struct {
	UserID string `json:"user_id"`
}

func (srv *Server) handleHealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (srv *Server) handleCheckMessage(c echo.Context) error {
	var req checkMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.UserID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}
	ctx, span := tracer.Start(c.Request().Context(), "handleCheckMessage")
	defer span.End()
	now := time.Now()

	// coarse quota first; a denial is itself a signal for the violation tracker
	if !srv.quota.Allow(req.UserID) {
		quotaDeniedCount.Inc()
		blocked, err := srv.engine.ReportRateLimitViolation(ctx, req.UserID, now)
		if err != nil {
			srv.logger.Error("reporting quota violation", "err", err, "user", req.UserID)
		}
		return c.JSON(http.StatusTooManyRequests, map[string]any{
			"error":   "rate_limited",
			"blocked": blocked,
		})
	}

	messagesCheckedCount.Inc()
	blocked, err := srv.engine.ProcessMessage(ctx, req.UserID, req.Text, now)
	if err != nil {
		srv.logger.Error("processing message", "err", err, "user", req.UserID)
		return echo.NewHTTPError(http.StatusInternalServerError, "message evaluation failed")
	}
	score, err := srv.engine.Suspicion(ctx, req.UserID)
	if err != nil {
		srv.logger.Error("reading suspicion score", "err", err, "user", req.UserID)
	}
	return c.JSON(http.StatusOK, checkMessageResponse{
		Blocked: blocked,
		Score:   score,
	})
}

func (srv *Server) handleReportViolation(c echo.Context) error {
	var req reportViolationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.UserID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}
	blocked, err := srv.engine.ReportRateLimitViolation(c.Request().Context(), req.UserID, time.Now())
	if err != nil {
		srv.logger.Error("recording violation", "err", err, "user", req.UserID)
		return echo.NewHTTPError(http.StatusInternalServerError, "violation tracking failed")
	}
	return c.JSON(http.StatusOK, map[string]any{"blocked": blocked})
}

func (srv *Server) handleGetAccount(c echo.Context) error {
	ctx := c.Request().Context()
	userID := c.Param("id")

	acct, err := srv.engine.Accounts.GetAccount(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "account lookup failed")
	}
	score, err := srv.engine.Suspicion(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "score lookup failed")
	}
	flags, err := srv.engine.Flags.Get(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "flag lookup failed")
	}

	out := map[string]any{
		"user_id": userID,
		"blocked": false,
		"score":   score,
		"flags":   flags,
	}
	if acct != nil {
		out["blocked"] = acct.Blocked
		if acct.Blocked {
			out["block_reason"] = acct.BlockReason
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (srv *Server) handleListEvents(c echo.Context) error {
	limit := 50
	if c.QueryParam("limit") != "" {
		if err := echo.QueryParamsBinder(c).Int("limit", &limit).BindError(); err != nil || limit < 1 || limit > 500 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
	}
	evs, err := srv.engine.Accounts.ListAbuseEvents(c.Request().Context(), c.QueryParam("user_id"), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "event lookup failed")
	}
	return c.JSON(http.StatusOK, map[string]any{"events": evs})
}
