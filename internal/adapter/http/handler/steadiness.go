package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/steadyapp/steady-backend/internal/adapter/http/handler/dto"
	"github.com/steadyapp/steady-backend/internal/domain/models"
	"github.com/steadyapp/steady-backend/internal/domain/types"
	"github.com/steadyapp/steady-backend/pkg/logger"
	wrap "github.com/steadyapp/steady-backend/pkg/logger/wrapper"
	"github.com/steadyapp/steady-backend/pkg/validator"
)

type Steadiness struct {
	service SteadinessService
	city    string
	l       logger.Logger
}

type SteadinessService interface {
	Load(ctx context.Context, driverID string, sessions []models.Session) error
	GetSteadinessScore(ctx context.Context, driverID string, period types.Period) (models.SteadinessResult, error)
	GetConsistencyBreakdown(ctx context.Context, driverID string) (models.ConsistencyBreakdown, error)
	GetVolatilityTrend(ctx context.Context, driverID string, weeks int) (models.VolatilityTrend, error)
}

func NewSteadiness(service SteadinessService, city string, l logger.Logger) *Steadiness {
	return &Steadiness{
		service: service,
		city:    city,
		l:       l,
	}
}

// GetScore godoc
// @Summary      Steadiness score
// @Description  Returns the driver's income steadiness score, percentile rank and comparison text for the requested period granularity.
// @Tags         Steadiness
// @Produce      json
// @Param        driver_id  query  string  true   "Driver ID"
// @Param        period     query  string  false  "Aggregation period"  Enums(daily, weekly, monthly)  default(weekly)
// @Success      200  {object}  dto.SteadinessScoreResponse
// @Failure      400  {object}  map[string]string
// @Failure      422  {object}  map[string]map[string]string
// @Router       /steadiness/score [get]
func (h *Steadiness) GetScore(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "get_steadiness_score")

	driverID := r.URL.Query().Get("driver_id")
	periodStr := r.URL.Query().Get("period")
	if periodStr == "" {
		periodStr = string(types.PeriodWeekly)
	}

	v := validator.New()
	v.Check(driverID != "", "driver_id", "must be provided")
	v.Check(validator.PermittedValue(periodStr, string(types.PeriodDaily), string(types.PeriodWeekly), string(types.PeriodMonthly)),
		"period", "must be one of daily, weekly or monthly")
	if !v.Valid() {
		h.l.Warn(ctx, "invalid request data")
		failedValidationResponse(w, v.Errors)
		return
	}

	ctx = wrap.WithDriverID(ctx, driverID)

	period, err := types.ParsePeriod(periodStr)
	if err != nil {
		h.l.Warn(ctx, "unknown period granularity", "period", periodStr)
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.GetSteadinessScore(ctx, driverID, period)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to compute steadiness score", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"steadiness": dto.ToScoreResponse(result, h.city)}, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write response", err)
		internalErrorResponse(w, err.Error())
		return
	}

	h.l.Info(ctx, "steadiness score served", "score", result.Score, "percentile", result.Percentile)
}

// GetBreakdown godoc
// @Summary      Consistency breakdown
// @Description  Splits the driver's consistency into hour, earnings-rate and zone components with actionable insights.
// @Tags         Steadiness
// @Produce      json
// @Param        driver_id  query  string  true  "Driver ID"
// @Success      200  {object}  dto.BreakdownResponse
// @Failure      422  {object}  map[string]map[string]string
// @Router       /steadiness/breakdown [get]
func (h *Steadiness) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "get_consistency_breakdown")

	driverID := r.URL.Query().Get("driver_id")

	v := validator.New()
	v.Check(driverID != "", "driver_id", "must be provided")
	if !v.Valid() {
		h.l.Warn(ctx, "invalid request data")
		failedValidationResponse(w, v.Errors)
		return
	}

	ctx = wrap.WithDriverID(ctx, driverID)

	result, err := h.service.GetConsistencyBreakdown(ctx, driverID)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to compute consistency breakdown", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"breakdown": dto.ToBreakdownResponse(result)}, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write response", err)
		internalErrorResponse(w, err.Error())
		return
	}

	h.l.Info(ctx, "consistency breakdown served", "overall_score", result.OverallScore)
}

// GetVolatility godoc
// @Summary      Volatility trend
// @Description  Returns rolling-window earnings volatility over the lookback and whether it is improving, declining or stable.
// @Tags         Steadiness
// @Produce      json
// @Param        driver_id  query  string  true   "Driver ID"
// @Param        weeks      query  int     false  "Lookback in weeks (1-104)"
// @Success      200  {object}  dto.VolatilityResponse
// @Failure      422  {object}  map[string]map[string]string
// @Router       /steadiness/volatility [get]
func (h *Steadiness) GetVolatility(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "get_volatility_trend")

	driverID := r.URL.Query().Get("driver_id")
	weeksStr := r.URL.Query().Get("weeks")

	weeks := 0
	var weeksErr error
	if weeksStr != "" {
		weeks, weeksErr = strconv.Atoi(weeksStr)
	}

	v := validator.New()
	v.Check(driverID != "", "driver_id", "must be provided")
	v.Check(weeksErr == nil, "weeks", "must be an integer")
	if weeksErr == nil && weeksStr != "" {
		v.Check(weeks >= 1 && weeks <= 104, "weeks", "must be between 1 and 104")
	}
	if !v.Valid() {
		h.l.Warn(ctx, "invalid request data")
		failedValidationResponse(w, v.Errors)
		return
	}

	ctx = wrap.WithDriverID(ctx, driverID)

	result, err := h.service.GetVolatilityTrend(ctx, driverID, weeks)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to compute volatility trend", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"volatility": dto.ToVolatilityResponse(result)}, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write response", err)
		internalErrorResponse(w, err.Error())
		return
	}

	h.l.Info(ctx, "volatility trend served", "direction", result.Direction)
}

// LoadSessions godoc
// @Summary      Load driver sessions
// @Description  Replaces one driver's session history. Percentile caches are recomputed on the next read.
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Param        request  body  dto.LoadSessionsRequest  true  "Session history"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]string
// @Failure      422  {object}  map[string]map[string]string
// @Router       /sessions [post]
func (h *Steadiness) LoadSessions(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "load_sessions")

	var req dto.LoadSessionsRequest
	if err := readJSON(w, r, &req); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to read request JSON data", err)
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	v := validator.New()
	req.Validate(v)
	if !v.Valid() {
		h.l.Warn(ctx, "invalid request data")
		failedValidationResponse(w, v.Errors)
		return
	}

	ctx = wrap.WithDriverID(ctx, req.DriverID)

	if err := h.service.Load(ctx, req.DriverID, req.ToModel()); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to load sessions", err)
		errorResponse(w, GetCode(err), err.Error())
		return
	}

	response := envelope{
		"driver_id":       req.DriverID,
		"sessions_loaded": len(req.Sessions),
	}

	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write response", err)
		internalErrorResponse(w, err.Error())
		return
	}

	h.l.Info(ctx, "sessions loaded", "count", len(req.Sessions))
}
