package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/elatovg/gce-snapshots/internal/app"
	"github.com/elatovg/gce-snapshots/internal/retention"
	cerrors "github.com/elatovg/gce-snapshots/pkg/errors"
	"github.com/elatovg/gce-snapshots/pkg/logger"
	"github.com/elatovg/gce-snapshots/pkg/ports"
	"github.com/elatovg/gce-snapshots/pkg/utils/validator"
	"go.uber.org/zap"
)

// SnapshotHandler runs one rotation per POST /snapshots. Only one rotation
// runs at a time; concurrent requests get 409.
type SnapshotHandler struct {
	app       app.AppRunner
	validator validator.Validator
	mu        sync.Mutex
}

type SnapshotRequest struct {
	Project string `json:"project"`
	Zone    string `json:"zone"`
	Name    string `json:"name"`
	Days    *int   `json:"days"`
	Offset  string `json:"offset"`
	Wait    bool   `json:"wait"`
}

type DiskSummary struct {
	Disk    string   `json:"disk"`
	Created string   `json:"created"`
	Deleted []string `json:"deleted"`
}

type SnapshotResponse struct {
	Instance string        `json:"instance"`
	Created  int           `json:"created"`
	Deleted  int           `json:"deleted"`
	Disks    []DiskSummary `json:"disks"`
}

func NewSnapshotHandler(app app.AppRunner, validator validator.Validator) *SnapshotHandler {
	return &SnapshotHandler{app: app, validator: validator}
}

// HandleSnapshots processes the POST /snapshots endpoint
func (h *SnapshotHandler) HandleSnapshots(w http.ResponseWriter, r *http.Request) {
	logger.Log.Debug("Handling snapshot rotation request",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)

	if r.Method != http.MethodPost {
		logger.Log.Warn("Invalid method attempted",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)
		sendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req SnapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.Error("Failed to decode request body", zap.Error(err))
		sendError(w, http.StatusBadRequest, cerrors.NewErrInvalidJSON(err).Error())
		return
	}

	opts, err := h.options(req)
	if err != nil {
		logger.Log.Warn("Request validation failed", zap.Error(err))
		sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !h.mu.TryLock() {
		err := cerrors.NewErrRunInProgress()
		logger.Log.Warn("Rejected concurrent rotation", zap.String("instance", opts.Instance))
		sendError(w, http.StatusConflict, err.Error())
		return
	}
	defer h.mu.Unlock()

	logger.Log.Info("Starting snapshot rotation",
		zap.String("project", opts.Project),
		zap.String("zone", opts.Zone),
		zap.String("instance", opts.Instance),
		zap.Int("days", opts.Days),
	)

	// A started rotation runs to completion even if the client goes away.
	result, err := h.app.Run(context.WithoutCancel(r.Context()), opts, ports.HTTP)
	if err != nil {
		status := StatusFor(err)
		if status == http.StatusInternalServerError {
			logger.Log.Error("Snapshot rotation failed", zap.Error(err))
			sendError(w, status, cerrors.NewErrAppRun(err).Error())
			return
		}
		logger.Log.Warn("Snapshot rotation rejected", zap.Error(err), zap.Int("status", status))
		sendError(w, status, err.Error())
		return
	}

	sendResponse(w, http.StatusOK, summarize(opts.Instance, result))
}

// HandleHealth answers liveness probes.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	sendResponse(w, http.StatusOK, map[string]interface{}{"status": "ok"})
}

// StatusFor maps a run error to the HTTP status returned to the caller.
func StatusFor(err error) int {
	switch {
	case errors.As(err, &cerrors.ErrInputValidation{}),
		errors.As(err, &cerrors.ErrInvalidRetention{}),
		errors.As(err, &cerrors.ErrNoDisksFound{}):
		return http.StatusBadRequest
	case errors.As(err, &cerrors.ErrInstanceNotFound{}):
		return http.StatusNotFound
	case errors.As(err, &cerrors.ErrRunInProgress{}):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// options fills unset request fields with the command line defaults and
// validates the result.
func (h *SnapshotHandler) options(req SnapshotRequest) (app.RunOptions, error) {
	opts := app.RunOptions{
		Project:         req.Project,
		Zone:            req.Zone,
		Instance:        req.Name,
		Days:            app.DefaultDays,
		TimestampOffset: req.Offset,
		Wait:            req.Wait,
	}
	if opts.Zone == "" {
		opts.Zone = app.DefaultZone
	}
	if opts.Instance == "" {
		opts.Instance = app.DefaultInstance
	}

	if err := h.validator.ValidateProject(opts.Project); err != nil {
		return opts, err
	}
	if err := h.validator.ValidateZone(opts.Zone); err != nil {
		return opts, err
	}
	if err := h.validator.ValidateInstanceName(opts.Instance); err != nil {
		return opts, err
	}
	if req.Days != nil {
		days, err := h.validator.ValidateRetentionDays(strconv.Itoa(*req.Days))
		if err != nil {
			return opts, err
		}
		opts.Days = days
	}
	if err := h.validator.ValidateOffset(opts.TimestampOffset); err != nil {
		return opts, err
	}
	return opts, nil
}

func summarize(instance string, result *retention.Result) SnapshotResponse {
	resp := SnapshotResponse{
		Instance: instance,
		Created:  result.CreatedCount(),
		Deleted:  result.DeletedCount(),
		Disks:    []DiskSummary{},
	}
	if result == nil {
		return resp
	}
	if result.Instance != nil {
		resp.Instance = result.Instance.Name
	}
	for _, d := range result.Disks {
		deleted := d.Deleted
		if deleted == nil {
			deleted = []string{}
		}
		resp.Disks = append(resp.Disks, DiskSummary{Disk: d.Disk.ID, Created: d.Created, Deleted: deleted})
	}
	return resp
}

func sendError(w http.ResponseWriter, statusCode int, message string) {
	logger.Log.Debug("Sending error response",
		zap.Int("status_code", statusCode),
		zap.String("message", message),
	)
	sendResponse(w, statusCode, map[string]interface{}{
		"error": message,
	})
}

// sendResponse writes a JSON response with given status and data
func sendResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Log.Error("Failed to encode response",
			zap.Error(err),
			zap.Int("status_code", statusCode),
		)
	}
}
