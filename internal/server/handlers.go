package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/elemental-vibe/internal/elements"
	"github.com/jonathan/elemental-vibe/internal/narrative"
	"github.com/jonathan/elemental-vibe/internal/radar"
	"go.uber.org/zap"
)

// Radar size bounds accepted by GET /radar.svg
const (
	minRadarSize = 120
	maxRadarSize = 4096
)

// ReadingRequest is the body of POST /profile, /reading and /reading/stream.
type ReadingRequest struct {
	Birthdate string `json:"birthdate" validate:"required,max=32"`
	Name      string `json:"name" validate:"max=200"`
}

// ProfileResponse is a reading with its character assets
type ProfileResponse struct {
	Reading elements.Reading   `json:"reading"`
	Assets  elements.AssetPair `json:"assets"`
}

// ReadingResponse is a finished reading with its narrative or apology
type ReadingResponse struct {
	ID        string             `json:"id"`
	Reading   elements.Reading   `json:"reading"`
	Assets    elements.AssetPair `json:"assets"`
	Narrative *narrative.Outcome `json:"narrative,omitempty"`
	Message   string             `json:"message,omitempty"`
}

// newValidator reports json field names in validation errors
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeReading parses and validates a ReadingRequest body
func (s *Server) decodeReading(r *http.Request) (ReadingRequest, error) {
	var req ReadingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	if err := s.validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return req, &ErrValidation{Field: fe.Field(), Message: "failed " + fe.Tag() + " check"}
		}
		return req, &ErrValidation{Field: "body", Message: err.Error()}
	}
	return req, nil
}

// orchestrator builds a per-request orchestrator. observer may be nil.
func (s *Server) orchestrator(observer func(narrative.State)) *narrative.Orchestrator {
	opts := append([]narrative.Option{narrative.WithLogger(s.logger)}, s.narrativeOptions...)
	if observer != nil {
		opts = append(opts, narrative.WithStateObserver(observer))
	}
	return narrative.New(s.client, opts...)
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"narrative": s.client != nil,
	})
}

// handleProfile scores a submission without contacting the collaborator
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeReading(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	reading := elements.Evaluate(req.Birthdate, req.Name)
	s.jsonResponse(w, http.StatusOK, ProfileResponse{
		Reading: reading,
		Assets:  s.assets.Lookup(reading.Archetype.Name),
	})
}

// handleRadar renders the radar chart of a submission as SVG
func (s *Server) handleRadar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	birthdate := q.Get("birthdate")
	if birthdate == "" {
		err := &ErrValidation{Field: "birthdate", Message: "is required"}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	size := s.radarSize
	if raw := q.Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < minRadarSize || n > maxRadarSize {
			verr := &ErrValidation{Field: "size", Message: "must be an integer between 120 and 4096"}
			s.errorResponse(w, HTTPStatus(verr), verr.Error())
			return
		}
		size = n
	}

	var buf bytes.Buffer
	if err := radar.WriteSVG(&buf, elements.Calculate(birthdate, q.Get("name")), size); err != nil {
		s.logger.Error("Failed to render radar", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to render radar")
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// handleReading scores a submission and blocks until its narrative is ready.
// A failed narrative still answers 200 with the reading and an apology message.
func (s *Server) handleReading(w http.ResponseWriter, r *http.Request) {
	if s.client == nil {
		s.errorResponse(w, HTTPStatus(ErrNarrativeDisabled), ErrNarrativeDisabled.Error())
		return
	}
	req, err := s.decodeReading(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	sub := narrative.NewSession(s.orchestrator(nil)).Submit(r.Context(), req.Birthdate, req.Name)
	s.jsonResponse(w, http.StatusOK, ReadingResponse{
		ID:        sub.ID.String(),
		Reading:   sub.Reading,
		Assets:    s.assets.Lookup(sub.Reading.Archetype.Name),
		Narrative: sub.Outcome,
		Message:   sub.Message(),
	})
}

// handleReadingStream streams the reading, every orchestrator state and the
// final narrative via SSE.
func (s *Server) handleReadingStream(w http.ResponseWriter, r *http.Request) {
	if s.client == nil {
		s.errorResponse(w, HTTPStatus(ErrNarrativeDisabled), ErrNarrativeDisabled.Error())
		return
	}
	req, err := s.decodeReading(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	id := uuid.New().String()
	reading := elements.Evaluate(req.Birthdate, req.Name)
	if err := sse.WriteEvent("reading", ProfileResponse{
		Reading: reading,
		Assets:  s.assets.Lookup(reading.Archetype.Name),
	}); err != nil {
		s.logger.Debug("Client went away before the reading was sent", zap.Error(err))
		return
	}

	o := s.orchestrator(func(state narrative.State) {
		if err := sse.WriteEvent("state", map[string]string{"state": string(state)}); err != nil {
			s.logger.Debug("Error writing SSE event", zap.Error(err))
		}
	})
	outcome, err := o.Run(r.Context(), narrative.InputFromReading(reading))
	if err != nil {
		sse.WriteEvent("failure", map[string]string{"message": narrative.ApologyMessage}) //nolint:errcheck
		sse.WriteComplete(id, string(narrative.StateFailed))
		return
	}
	sse.WriteEvent("narrative", outcome) //nolint:errcheck
	sse.WriteComplete(id, string(narrative.StateSucceeded))
}
