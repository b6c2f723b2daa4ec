package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/reflow-controller/internal/notifications"
	"github.com/thatsimonsguy/reflow-controller/internal/reflow"
)

type Server struct {
	manager *reflow.Manager
}

type ActiveResponse struct {
	Index      int      `json:"index"`
	Name       string   `json:"name"`
	CustomSlot int      `json:"custom_slot"`
	Setpoints  []uint16 `json:"setpoints"`
}

type SelectRequest struct {
	Index *int `json:"index"`
}

type SlotRequest struct {
	Slot int `json:"slot"`
}

type SetpointRequest struct {
	Value *uint16 `json:"value"`
}

type SetpointResponse struct {
	Step    int    `json:"step"`
	Value   uint16 `json:"value"`
	Applied *bool  `json:"applied,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func NewServer(manager *reflow.Manager) *Server {
	return &Server{manager: manager}
}

// Handler returns the API routes wrapped in the CORS handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/profiles", s.handleProfiles)
	mux.HandleFunc("/api/profiles/", s.handleProfileOperations)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func (s *Server) Start(port int) error {
	addr := fmt.Sprintf("0.0.0.0:%d", port)
	log.Info().Str("address", addr).Msg("Starting REST API server")

	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleProfiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, s.manager.List())
}

func (s *Server) handleProfileOperations(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/profiles/")
	parts := strings.Split(path, "/")

	if parts[0] == "" {
		s.writeError(w, http.StatusNotFound, "Profile ID required")
		return
	}

	if parts[0] == "active" {
		s.handleActive(w, r, parts[1:])
		return
	}

	idx, err := strconv.Atoi(parts[0])
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Profile ID must be an integer")
		return
	}

	switch {
	case len(parts) == 1 && r.Method == http.MethodGet:
		s.getProfile(w, idx)
	case len(parts) == 2 && parts[1] == "dump" && r.Method == http.MethodGet:
		s.dumpProfile(w, idx)
	case len(parts) == 1, len(parts) == 2 && parts[1] == "dump":
		s.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	default:
		s.writeError(w, http.StatusNotFound, "Invalid path")
	}
}

func (s *Server) handleActive(w http.ResponseWriter, r *http.Request, parts []string) {
	if len(parts) == 0 {
		switch r.Method {
		case http.MethodGet:
			s.writeActive(w)
		case http.MethodPut:
			s.selectProfile(w, r)
		default:
			s.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
		return
	}

	switch {
	case len(parts) == 1 && parts[0] == "slot" && r.Method == http.MethodPut:
		s.selectSlot(w, r)
	case len(parts) == 1 && parts[0] == "next" && r.Method == http.MethodPost:
		s.step(w, s.manager.Next)
	case len(parts) == 1 && parts[0] == "previous" && r.Method == http.MethodPost:
		s.step(w, s.manager.Previous)
	case len(parts) == 1 && parts[0] == "save" && r.Method == http.MethodPost:
		s.save(w)
	case len(parts) == 2 && parts[0] == "setpoints":
		s.handleSetpoint(w, r, parts[1])
	default:
		s.writeError(w, http.StatusNotFound, "Unknown operation")
	}
}

func (s *Server) getProfile(w http.ResponseWriter, idx int) {
	d, err := s.manager.Describe(idx)
	if err != nil {
		s.writeError(w, http.StatusNotFound, "Profile not found")
		return
	}
	s.writeJSON(w, http.StatusOK, d)
}

func (s *Server) dumpProfile(w http.ResponseWriter, idx int) {
	if _, err := s.manager.Describe(idx); err != nil {
		s.writeError(w, http.StatusNotFound, "Profile not found")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := s.manager.Dump(w, idx); err != nil {
		log.Error().Err(err).Int("index", idx).Msg("Failed to write profile dump")
	}
}

func (s *Server) writeActive(w http.ResponseWriter) {
	active := s.manager.Active()
	s.writeJSON(w, http.StatusOK, ActiveResponse{
		Index:      active.Index,
		Name:       active.Name,
		CustomSlot: active.Slot,
		Setpoints:  active.Setpoints,
	})
}

func (s *Server) selectProfile(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Index == nil {
		s.writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	idx, err := s.manager.Select(*req.Index)
	if err != nil {
		log.Error().Err(err).Int("index", idx).Msg("Profile selected but not persisted")
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	log.Info().Int("requested", *req.Index).Int("index", idx).Msg("Profile selected via API")
	s.writeActive(w)
}

func (s *Server) selectSlot(w http.ResponseWriter, r *http.Request) {
	var req SlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if _, ok := s.manager.Registry().IndexOfSlot(req.Slot); !ok {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid slot. Must be between 1 and %d", len(s.manager.Registry().Customs())))
		return
	}

	idx := s.manager.SelectCustomSlot(req.Slot)
	log.Info().Int("slot", req.Slot).Int("index", idx).Msg("Custom profile selected via API")
	s.writeActive(w)
}

func (s *Server) step(w http.ResponseWriter, move func() (int, error)) {
	if _, err := move(); err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeActive(w)
}

func (s *Server) handleSetpoint(w http.ResponseWriter, r *http.Request, rawStep string) {
	step, err := strconv.Atoi(rawStep)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Step must be an integer")
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.writeJSON(w, http.StatusOK, SetpointResponse{Step: step, Value: s.manager.Setpoint(step)})
	case http.MethodPut:
		var req SetpointRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Value == nil {
			s.writeError(w, http.StatusBadRequest, "Invalid JSON payload")
			return
		}

		applied := s.manager.SetSetpoint(step, *req.Value)
		if !applied {
			log.Warn().Int("step", step).Uint16("value", *req.Value).Msg("Setpoint change ignored")
		}
		s.writeJSON(w, http.StatusOK, SetpointResponse{Step: step, Value: s.manager.Setpoint(step), Applied: &applied})
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (s *Server) save(w http.ResponseWriter) {
	err := s.manager.SaveCurrent()
	switch {
	case errors.Is(err, reflow.ErrNotPersistable):
		s.writeError(w, http.StatusConflict, "Selected profile is built-in and cannot be saved")
	case err != nil:
		notifications.StorageProblem("save", err)
		s.writeError(w, http.StatusInternalServerError, err.Error())
	default:
		log.Info().Int("slot", s.manager.CustomSlotNumber()).Msg("Custom profile saved via API")
		s.writeActive(w)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

