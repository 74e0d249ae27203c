package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/jmac122/OSRS-Dashboard/internal/catalog"
	"github.com/jmac122/OSRS-Dashboard/internal/model"
	"github.com/jmac122/OSRS-Dashboard/internal/overrides"
	"github.com/jmac122/OSRS-Dashboard/internal/prices"
	"github.com/jmac122/OSRS-Dashboard/internal/slayer"
	"github.com/jmac122/OSRS-Dashboard/internal/telemetry"
)

// OverrideStore is the read/write view the API needs over user overrides.
type OverrideStore interface {
	overrides.Reader
	Set(ctx context.Context, userID, param string, value float64) error
	Delete(ctx context.Context, userID, param string) error
}

// App holds what the handlers depend on.
type App struct {
	Engine    *slayer.Engine
	Catalog   catalog.Repo
	Prices    prices.Oracle
	Overrides OverrideStore
	Events    telemetry.Repository
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// calcFailure is the refusal body: callers always get gp_hr plus a
// human-readable reason, and the requirement/actual pair when a gate failed.
type calcFailure struct {
	GPPerHour    float64              `json:"gp_hr"`
	Error        string               `json:"error"`
	Requirements *slayer.Requirements `json:"requirements,omitempty"`
}

func writeCalcError(w http.ResponseWriter, err error) {
	var vErr *slayer.ValidationError
	var nfErr *slayer.NotFoundError
	var reqErr *slayer.RequirementsNotMetError
	var duErr *slayer.DataUnavailableError

	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, calcFailure{Error: vErr.Error()})
	case errors.As(err, &nfErr):
		writeJSON(w, http.StatusNotFound, calcFailure{Error: nfErr.Error()})
	case errors.As(err, &reqErr):
		reqs := reqErr.Requirements
		writeJSON(w, http.StatusForbidden, calcFailure{Error: reqErr.Error(), Requirements: &reqs})
	case errors.As(err, &duErr):
		writeJSON(w, http.StatusBadGateway, calcFailure{Error: duErr.Error()})
	default:
		log.Printf("[server] calculation error: %v", err)
		writeJSON(w, http.StatusInternalServerError, calcFailure{Error: "internal calculation error"})
	}
}

type calcRequest struct {
	MonsterID        string            `json:"monster_id,omitempty"`
	MasterID         string            `json:"master_id,omitempty"`
	UserID           string            `json:"user_id,omitempty"`
	IncludeBreakdown bool              `json:"include_breakdown,omitempty"`
	UserLevels       *model.UserLevels `json:"user_levels,omitempty"`
}

func (req calcRequest) levels() model.UserLevels {
	if req.UserLevels == nil {
		return model.DefaultLevels()
	}
	return *req.UserLevels
}

// resolveOverrides fetches the user's overrides; a failed lookup degrades to
// no overrides rather than a failed calculation.
func (app *App) resolveOverrides(ctx context.Context, userID string) overrides.Overrides {
	if userID == "" || app.Overrides == nil {
		return overrides.Overrides{}
	}
	ov, err := app.Overrides.Get(ctx, userID)
	if err != nil {
		log.Printf("[server] could not fetch overrides for %s: %v", userID, err)
		return overrides.Overrides{}
	}
	return ov
}

func (app *App) record(eventType telemetry.EventType, metadata telemetry.EventMetadata) {
	if app.Events == nil {
		return
	}
	if err := app.Events.RecordEvent(eventType, metadata); err != nil {
		log.Printf("[server] telemetry record failed: %v", err)
	}
}

func (app *App) recordCalcFailure(err error, metadata telemetry.EventMetadata) {
	var reqErr *slayer.RequirementsNotMetError
	if errors.As(err, &reqErr) {
		app.record(telemetry.EventCalcRefused, metadata)
		return
	}
	app.record(telemetry.EventCalcFailed, metadata)
}

// RegisterAPIRoutes wires every API endpoint onto the router.
func RegisterAPIRoutes(r *mux.Router, rr *RouteRegistry, app *App) {
	Handle(r, rr, http.MethodGet, "/api/v1/health", "Liveness check", "", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	Handle(r, rr, http.MethodGet, "/api/v1/routes", "List registered routes", "", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, rr.List())
	})

	Handle(r, rr, http.MethodGet, "/api/v1/slayer/masters", "List slayer masters", "", func(w http.ResponseWriter, req *http.Request) {
		masters, err := app.Catalog.Masters(req.Context())
		if err != nil {
			writeJSON(w, http.StatusBadGateway, calcFailure{Error: err.Error()})
			return
		}
		app.record(telemetry.EventCatalogListed, telemetry.EventMetadata{"kind": "masters"})
		writeJSON(w, http.StatusOK, sortedValues(masters))
	})

	Handle(r, rr, http.MethodGet, "/api/v1/slayer/monsters", "List slayer monsters", "", func(w http.ResponseWriter, req *http.Request) {
		monsters, err := app.Catalog.Monsters(req.Context())
		if err != nil {
			writeJSON(w, http.StatusBadGateway, calcFailure{Error: err.Error()})
			return
		}
		app.record(telemetry.EventCatalogListed, telemetry.EventMetadata{"kind": "monsters"})
		writeJSON(w, http.StatusOK, sortedValues(monsters))
	})

	Handle(r, rr, http.MethodGet, "/api/v1/prices/{itemID}", "Latest price for one item", "", func(w http.ResponseWriter, req *http.Request) {
		itemID, err := strconv.Atoi(mux.Vars(req)["itemID"])
		if err != nil || itemID <= 0 {
			writeJSON(w, http.StatusBadRequest, calcFailure{Error: "item id must be a positive integer"})
			return
		}
		price, ok := app.Prices.Price(req.Context(), itemID)
		if !ok {
			writeJSON(w, http.StatusNotFound, calcFailure{Error: "no price data for item"})
			return
		}
		app.record(telemetry.EventPriceLookup, telemetry.EventMetadata{"item_id": itemID})
		writeJSON(w, http.StatusOK, price)
	})

	Handle(r, rr, http.MethodPost, "/api/v1/slayer/specific", "GP/hour for one monster",
		`{"monster_id":"gargoyles","user_levels":{"slayer":85,"combat":110}}`,
		func(w http.ResponseWriter, req *http.Request) {
			var body calcRequest
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
				writeJSON(w, http.StatusBadRequest, calcFailure{Error: "invalid request body"})
				return
			}
			start := time.Now()
			ov := app.resolveOverrides(req.Context(), body.UserID)
			result, err := app.Engine.ComputeSpecific(req.Context(), body.MonsterID, body.levels(), ov)
			if err != nil {
				app.recordCalcFailure(err, telemetry.EventMetadata{"monster": body.MonsterID})
				writeCalcError(w, err)
				return
			}
			app.record(telemetry.EventCalcSpecific, telemetry.EventMetadata{
				"monster":     body.MonsterID,
				"gp_hr":       result.GPPerHour,
				"duration_ms": float64(time.Since(start).Microseconds()) / 1000,
			})
			writeJSON(w, http.StatusOK, result)
		})

	Handle(r, rr, http.MethodPost, "/api/v1/slayer/expected", "Weighted GP/hour across a master's tasks",
		`{"master_id":"nieve","include_breakdown":true}`,
		func(w http.ResponseWriter, req *http.Request) {
			var body calcRequest
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
				writeJSON(w, http.StatusBadRequest, calcFailure{Error: "invalid request body"})
				return
			}
			start := time.Now()
			ov := app.resolveOverrides(req.Context(), body.UserID)
			result, err := app.Engine.ComputeExpected(req.Context(), body.MasterID, body.levels(), ov, body.IncludeBreakdown)
			if err != nil {
				app.recordCalcFailure(err, telemetry.EventMetadata{"master": body.MasterID})
				writeCalcError(w, err)
				return
			}
			app.record(telemetry.EventCalcExpected, telemetry.EventMetadata{
				"master":      body.MasterID,
				"gp_hr":       result.GPPerHour,
				"duration_ms": float64(time.Since(start).Microseconds()) / 1000,
			})
			writeJSON(w, http.StatusOK, result)
		})

	Handle(r, rr, http.MethodPost, "/api/v1/slayer/breakdown", "Detailed per-task report for a master",
		`{"master_id":"duradel","user_levels":{"slayer":90,"combat":115}}`,
		func(w http.ResponseWriter, req *http.Request) {
			var body calcRequest
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
				writeJSON(w, http.StatusBadRequest, calcFailure{Error: "invalid request body"})
				return
			}
			start := time.Now()
			ov := app.resolveOverrides(req.Context(), body.UserID)
			result, err := app.Engine.ComputeBreakdown(req.Context(), body.MasterID, body.levels(), ov)
			if err != nil {
				app.recordCalcFailure(err, telemetry.EventMetadata{"master": body.MasterID})
				writeCalcError(w, err)
				return
			}
			app.record(telemetry.EventCalcBreakdown, telemetry.EventMetadata{
				"master":      body.MasterID,
				"gp_hr":       result.Overall.ExpectedGPPerHour,
				"duration_ms": float64(time.Since(start).Microseconds()) / 1000,
			})
			writeJSON(w, http.StatusOK, result)
		})

	Handle(r, rr, http.MethodGet, "/api/v1/users/{userID}/overrides", "List a user's overrides", "", func(w http.ResponseWriter, req *http.Request) {
		if app.Overrides == nil {
			writeJSON(w, http.StatusNotFound, calcFailure{Error: "override store not configured"})
			return
		}
		ov, err := app.Overrides.Get(req.Context(), mux.Vars(req)["userID"])
		if err != nil {
			writeJSON(w, http.StatusBadGateway, calcFailure{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, ov)
	})

	Handle(r, rr, http.MethodPut, "/api/v1/users/{userID}/overrides/{param}", "Set a user override",
		`{"value":420}`,
		func(w http.ResponseWriter, req *http.Request) {
			if app.Overrides == nil {
				writeJSON(w, http.StatusNotFound, calcFailure{Error: "override store not configured"})
				return
			}
			var body struct {
				Value float64 `json:"value"`
			}
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
				writeJSON(w, http.StatusBadRequest, calcFailure{Error: "invalid request body"})
				return
			}
			vars := mux.Vars(req)
			if err := overrides.Validate(vars["param"], body.Value); err != nil {
				writeJSON(w, http.StatusBadRequest, calcFailure{Error: err.Error()})
				return
			}
			if err := app.Overrides.Set(req.Context(), vars["userID"], vars["param"], body.Value); err != nil {
				writeJSON(w, http.StatusBadGateway, calcFailure{Error: err.Error()})
				return
			}
			app.record(telemetry.EventOverrideUpdated, telemetry.EventMetadata{
				"user":  vars["userID"],
				"param": vars["param"],
			})
			writeJSON(w, http.StatusOK, map[string]any{"user_id": vars["userID"], "param": vars["param"], "value": body.Value})
		})

	Handle(r, rr, http.MethodDelete, "/api/v1/users/{userID}/overrides/{param}", "Remove a user override", "", func(w http.ResponseWriter, req *http.Request) {
		if app.Overrides == nil {
			writeJSON(w, http.StatusNotFound, calcFailure{Error: "override store not configured"})
			return
		}
		vars := mux.Vars(req)
		if err := app.Overrides.Delete(req.Context(), vars["userID"], vars["param"]); err != nil {
			writeJSON(w, http.StatusBadGateway, calcFailure{Error: err.Error()})
			return
		}
		app.record(telemetry.EventOverrideUpdated, telemetry.EventMetadata{
			"user":    vars["userID"],
			"param":   vars["param"],
			"deleted": true,
		})
		writeJSON(w, http.StatusOK, map[string]any{"user_id": vars["userID"], "param": vars["param"], "deleted": true})
	})

	Handle(r, rr, http.MethodGet, "/api/v1/stats", "Usage stats for the last day", "", func(w http.ResponseWriter, req *http.Request) {
		if app.Events == nil {
			writeJSON(w, http.StatusOK, telemetry.Stats{})
			return
		}
		since := time.Now().Add(-24 * time.Hour)
		events, err := app.Events.GetEvents(since, nil)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, calcFailure{Error: err.Error()})
			return
		}
		stats, err := telemetry.CalculateStats(events, since)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, calcFailure{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, stats)
	})
}

// sortedValues flattens an id-keyed map into a stable id-ordered slice.
func sortedValues[V any](m map[string]V) []V {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]V, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}
