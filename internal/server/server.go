// Package server exposes the rotation engine over HTTP and websockets.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/bmharper/rotator"
	"github.com/bmharper/rotator/internal/config"
	"github.com/bmharper/rotator/internal/wire"
)

// ErrTooLarge is returned when an image exceeds the configured pixel budget.
var ErrTooLarge = errors.New("server: image too large")

type ctxKey int

const requestIDKey ctxKey = 0

// RotateServer serves rotation requests. It holds no per-request state.
type RotateServer struct {
	cfg      *config.Config
	params   *rotator.Params
	log      *slog.Logger
	upgrader websocket.Upgrader
}

// NewRotateServer creates a server from cfg. A nil log discards output.
func NewRotateServer(cfg *config.Config, log *slog.Logger) *RotateServer {
	if log == nil {
		log = rotator.Logger()
	}
	params := &rotator.Params{
		GapThreshold:  cfg.GapThreshold,
		MaxResolution: cfg.MaxResolution,
	}
	s := &RotateServer{
		cfg:    cfg,
		params: params,
		log:    log,
	}
	s.upgrader = websocket.Upgrader{
		CheckOrigin: s.checkOrigin,
	}
	return s
}

// Handler returns the routes of the server.
func (s *RotateServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/Rotate", s.cors(s.HandleRotate))
	mux.HandleFunc("/ws", s.HandleWebSocket)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	return s.withRequestID(mux)
}

// withRequestID tags each request with an id, taken from X-Request-ID when
// the client sends one.
func (s *RotateServer) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func (s *RotateServer) cors(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.cfg.AllowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next(w, r)
	}
}

func (s *RotateServer) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	return s.cfg.AllowedOrigin == "*" || origin == "" || origin == s.cfg.AllowedOrigin
}

// HandleRotate serves POST /api/Rotate.
func (s *RotateServer) HandleRotate(w http.ResponseWriter, r *http.Request) {
	id := requestID(r.Context())
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req wire.RotateRequest
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.writeError(w, id, fmt.Errorf("%w: body exceeds %v bytes", ErrTooLarge, maxErr.Limit))
			return
		}
		s.writeError(w, id, fmt.Errorf("%w: decoding request: %v", rotator.ErrInvalidInput, err))
		return
	}
	img, angle, err := req.Decode()
	if err != nil {
		s.writeError(w, id, err)
		return
	}

	out, err := s.rotate(id, img, angle)
	if err != nil {
		s.writeError(w, id, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(wire.FromImage(out)); err != nil {
		s.log.Warn("Writing response failed", "requestId", id, "err", err)
	}
}

// rotate runs the engine after checking the pixel budget.
func (s *RotateServer) rotate(id string, img *rotator.Image, angle float64) (*rotator.Image, error) {
	if s.cfg.MaxPixels > 0 && img.Width > 0 && img.Height > 0 && img.Width > s.cfg.MaxPixels/img.Height {
		return nil, fmt.Errorf("%w: %vx%v exceeds %v pixels", ErrTooLarge, img.Width, img.Height, s.cfg.MaxPixels)
	}
	out, err := rotator.RotateWithParams(img, angle, s.params)
	if err != nil {
		s.log.Info("Rotate rejected", "requestId", id, "err", err)
		return nil, err
	}
	s.log.Debug("Rotated", "requestId", id, "angle", angle,
		"inWidth", img.Width, "inHeight", img.Height, "outWidth", out.Width, "outHeight", out.Height)
	return out, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, rotator.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, rotator.ErrIndexOutOfRange):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func (s *RotateServer) writeError(w http.ResponseWriter, id string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.Error("Rotate failed", "requestId", id, "err", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(wire.ErrorResponse{Error: err.Error(), RequestID: id})
}
