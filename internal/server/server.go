// Package server exposes the session over HTTP: generation, story state,
// settings and playback control.
package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/book-expert/logger"
	"github.com/gorilla/mux"

	"github.com/redredchen01/velvet-whisper/internal/core"
	"github.com/redredchen01/velvet-whisper/internal/persona"
	"github.com/redredchen01/velvet-whisper/internal/playback"
	"github.com/redredchen01/velvet-whisper/internal/session"
	"github.com/redredchen01/velvet-whisper/internal/settings"
)

const maxRequestBody = 1 << 20

// Server routes the HTTP API onto one session.
type Server struct {
	router  *mux.Router
	session *session.Session
	log     *logger.Logger
}

// New builds the router.
func New(sess *session.Session, log *logger.Logger) *Server {
	srv := &Server{
		router:  mux.NewRouter(),
		session: sess,
		log:     log,
	}

	srv.routes()

	return srv
}

// Handler returns the root handler for an http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/catalog", s.handleCatalog).Methods(http.MethodGet)
	api.HandleFunc("/generate", s.handleGenerate).Methods(http.MethodPost)
	api.HandleFunc("/story", s.handleStory).Methods(http.MethodGet)
	api.HandleFunc("/reset", s.handleReset).Methods(http.MethodPost)
	api.HandleFunc("/settings", s.handleGetSettings).Methods(http.MethodGet)
	api.HandleFunc("/settings", s.handlePutSettings).Methods(http.MethodPut)
	api.HandleFunc("/playback", s.handlePlaybackState).Methods(http.MethodGet)
	api.HandleFunc("/playback/play", s.handlePlay).Methods(http.MethodPost)
	api.HandleFunc("/playback/pause", s.handlePause).Methods(http.MethodPost)
	api.HandleFunc("/playback/restart", s.handleRestart).Methods(http.MethodPost)
}

type catalogResponse struct {
	Narrators  []persona.NarratorProfile `json:"narrators"`
	Identities []persona.IdentityProfile `json:"identities"`
	Tones      []persona.EmotionalTone   `json:"tones"`
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, catalogResponse{
		Narrators:  persona.Narrators,
		Identities: persona.Identities,
		Tones:      persona.Tones,
	})
}

type generateResponse struct {
	ID string `json:"id"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var input session.GenerateInput

	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&input)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))

		return
	}

	id, err := s.session.StartGeneration(input)
	if err != nil {
		s.writeError(w, statusForError(err), err)

		return
	}

	s.log.Info("Generation %s accepted", id)
	s.writeJSON(w, http.StatusAccepted, generateResponse{ID: id})
}

type audioInfo struct {
	DurationSeconds float64 `json:"durationSeconds"`
	SampleRate      int     `json:"sampleRate"`
	Channels        int     `json:"channels"`
}

type storyResponse struct {
	Status   core.Status `json:"status"`
	Title    string      `json:"title,omitempty"`
	Story    string      `json:"story,omitempty"`
	ImageURL string      `json:"imageUrl,omitempty"`
	Audio    *audioInfo  `json:"audio,omitempty"`
	Error    string      `json:"error,omitempty"`
}

func (s *Server) handleStory(w http.ResponseWriter, _ *http.Request) {
	snapshot := s.session.Story()

	resp := storyResponse{
		Status: snapshot.Status,
		Title:  snapshot.Title,
		Story:  snapshot.Story,
		Error:  snapshot.Error,
	}

	if len(snapshot.Image.Data) > 0 {
		resp.ImageURL = fmt.Sprintf(
			"data:%s;base64,%s",
			snapshot.Image.MIMEType,
			base64.StdEncoding.EncodeToString(snapshot.Image.Data),
		)
	}

	if snapshot.Audio != nil {
		resp.Audio = &audioInfo{
			DurationSeconds: snapshot.Audio.Duration(),
			SampleRate:      snapshot.Audio.SampleRate,
			Channels:        snapshot.Audio.Channels,
		}
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	err := s.session.Reset()
	if err != nil {
		s.writeError(w, statusForError(err), err)

		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"status": string(core.StatusIdle)})
}

func (s *Server) handleGetSettings(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.session.Settings())
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var cfg settings.Settings

	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&cfg)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid settings body: %w", err))

		return
	}

	err = s.session.SaveSettings(cfg)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)

		return
	}

	s.writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handlePlaybackState(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.session.Player().Snapshot())
}

func (s *Server) handlePlay(w http.ResponseWriter, _ *http.Request) {
	err := s.session.Player().Play()
	if err != nil {
		s.writeError(w, statusForError(err), err)

		return
	}

	s.writeJSON(w, http.StatusOK, s.session.Player().Snapshot())
}

func (s *Server) handlePause(w http.ResponseWriter, _ *http.Request) {
	s.session.Player().Pause()
	s.writeJSON(w, http.StatusOK, s.session.Player().Snapshot())
}

func (s *Server) handleRestart(w http.ResponseWriter, _ *http.Request) {
	err := s.session.Player().Restart()
	if err != nil {
		s.writeError(w, statusForError(err), err)

		return
	}

	s.writeJSON(w, http.StatusOK, s.session.Player().Snapshot())
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(payload)
	if err != nil {
		s.log.Error("Failed to encode response: %v", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.log.Error("Request failed (%d): %v", status, err)
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

// statusForError maps the failure taxonomy onto response codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, core.ErrGenerationInFlight):
		return http.StatusConflict
	case errors.Is(err, core.ErrCredentialMissing),
		errors.Is(err, core.ErrMalformedResponse),
		errors.Is(err, persona.ErrUnknownNarrator),
		errors.Is(err, persona.ErrUnknownIdentity),
		errors.Is(err, persona.ErrUnknownTone):
		return http.StatusBadRequest
	case errors.Is(err, playback.ErrNoBuffer):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
