package query

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/go-sod/spatial/internal/httputil"
	"github.com/go-sod/spatial/internal/logging"
)

const maxBodyBytes = 64 * 1024 * 1024

// Register mounts a handler for every operation at /<op>.
func (s *Service) Register(mux *http.ServeMux) {
	for _, op := range Ops {
		mux.Handle("/"+string(op), httputil.RequireBearer(s.cfg.Token, s.Handler(op)))
	}
}

func (s *Service) Handler(op Op) http.Handler {
	return &handler{svc: s, op: op}
}

type handler struct {
	svc *Service
	op  Op
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req Request
	ctx, cancel := context.WithTimeout(r.Context(), h.svc.cfg.RequestTimeout)
	defer cancel()

	requestID := uuid.New().String()
	logger := logging.FromContext(ctx).With("requestId", requestID, "op", h.op)
	ctx = logging.WithLogger(ctx, logger)

	if r.Method != http.MethodPost {
		msg := fmt.Sprintf("method %v is not allowed", r.Method)
		logger.Debug(msg)
		httputil.RespError(w, http.StatusMethodNotAllowed, msg)
		return
	}

	if t := r.Header.Get("content-type"); len(t) < 16 || t[:16] != "application/json" {
		logger.Debug("content-type is not application/json")
		httputil.RespError(w, http.StatusUnsupportedMediaType, "content-type is not application/json")
		return
	}

	defer r.Body.Close()

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	d := json.NewDecoder(r.Body)
	d.DisallowUnknownFields()
	if err := d.Decode(&req); err != nil {
		httputil.DecodeErr(ctx, w, err)
		return
	}

	if len(req.Queries) > h.svc.cfg.MaxBatch {
		httputil.RespBadRequest(ctx, w, "too many queries, max allowed len is %d", h.svc.cfg.MaxBatch)
		return
	}

	results := make([]Result, len(req.Queries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, q := range req.Queries {
		i, q := i, q
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := h.svc.Answer(gctx, h.op, q)
			if err != nil {
				return fmt.Errorf("query %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		switch {
		case badRequest(err):
			httputil.RespBadRequest(ctx, w, "%v", err)
		case errors.Is(err, ErrNoPredictor):
			logger.Debug(err)
			httputil.RespError(w, http.StatusNotImplemented, err.Error())
		case errors.Is(err, context.DeadlineExceeded):
			logger.Warnw("request timed out", "queries", len(req.Queries))
			httputil.RespError(w, http.StatusServiceUnavailable, "request timed out")
		default:
			httputil.RespInternalError(ctx, w, "query processing error: %v", err)
		}
		return
	}

	logger.Debugw("request served", "queries", len(req.Queries))
	httputil.RespJSON(ctx, w, http.StatusOK, Response{RequestID: requestID, Results: results})
}
