// Package api provides HTTP handlers for HealthBot endpoints.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ConnectHealth/HealthBot/internal/content"
	"github.com/ConnectHealth/HealthBot/internal/convo"
	"github.com/ConnectHealth/HealthBot/internal/models"
	"github.com/ConnectHealth/HealthBot/internal/phone"
)

// DefaultUsername is used when a session is opened without a username.
const DefaultUsername = "guest"

type createSessionRequest struct {
	Username string `json:"username"`
}

type selectCategoryRequest struct {
	Key string `json:"key"`
}

type selectSubCategoryRequest struct {
	Label string `json:"label"`
}

type answerPromptRequest struct {
	MessageID int64         `json:"message_id"`
	Answer    models.Answer `json:"answer"`
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

type dialRequest struct {
	Number   string `json:"number"`
	Callback string `json:"callback,omitempty"`
}

// sessionResult is the snapshot the shell re-renders from after every action.
type sessionResult struct {
	SessionID      string           `json:"session_id,omitempty"`
	Timeline       []models.Message `json:"timeline"`
	ActiveCategory string           `json:"active_category,omitempty"`
	Busy           bool             `json:"busy"`
}

type dialResult struct {
	DialURI string `json:"dial_uri"`
}

// snapshot assembles the render state for a session.
func snapshot(sess *convo.Session) sessionResult {
	return sessionResult{
		Timeline:       sess.Timeline(),
		ActiveCategory: sess.ActiveCategory(),
		Busy:           sess.Busy(),
	}
}

// lookupSession resolves the {id} path segment; on failure it writes the 404
// envelope and returns nil.
func (s *Server) lookupSession(w http.ResponseWriter, r *http.Request) *convo.Session {
	id := r.PathValue("id")
	sess, err := s.registry.Get(id)
	if err != nil {
		slog.Warn("Server.lookupSession: session not found", "sessionID", id, "path", r.URL.Path)
		writeJSONResponse(w, http.StatusNotFound, models.Error("Session not found"))
		return nil
	}
	return sess
}

func (s *Server) categoriesHandler(w http.ResponseWriter, r *http.Request) {
	slog.Debug("Server.categoriesHandler: listing categories")
	writeJSONResponse(w, http.StatusOK, models.Success(content.Categories()))
}

func (s *Server) createSessionHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.createSessionHandler: processing create request")

	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.createSessionHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	if req.Username == "" {
		req.Username = DefaultUsername
	}

	sess := convo.NewSession(req.Username, s.responder)
	id := s.registry.Add(sess)

	result := snapshot(sess)
	result.SessionID = id
	slog.Info("Server.createSessionHandler: session created", "sessionID", id, "username", req.Username)
	writeJSONResponse(w, http.StatusCreated, models.Success(result))
}

func (s *Server) deleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	slog.Debug("Server.deleteSessionHandler: processing delete request", "sessionID", id)
	if err := s.registry.Remove(id); err != nil {
		writeJSONResponse(w, http.StatusNotFound, models.Error("Session not found"))
		return
	}
	slog.Info("Server.deleteSessionHandler: session discarded", "sessionID", id)
	writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("Session discarded", nil))
}

func (s *Server) timelineHandler(w http.ResponseWriter, r *http.Request) {
	sess := s.lookupSession(w, r)
	if sess == nil {
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(snapshot(sess)))
}

// subCategoriesHandler implements the shell's rendering gate: the sub-category
// list exists only once a category is active.
func (s *Server) subCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	sess := s.lookupSession(w, r)
	if sess == nil {
		return
	}
	active := sess.ActiveCategory()
	if active == "" {
		writeJSONResponse(w, http.StatusConflict, models.Error("Select a category first"))
		return
	}
	subs, ok := content.SubCategoriesFor(active)
	if !ok {
		slog.Error("Server.subCategoriesHandler: active category missing from tables", "category", active)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Internal server error"))
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(subs))
}

func (s *Server) selectCategoryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	sess := s.lookupSession(w, r)
	if sess == nil {
		return
	}
	var req selectCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.selectCategoryHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}

	if err := sess.SelectCategory(req.Key); err != nil {
		s.writeEngineError(w, "selectCategoryHandler", err)
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(snapshot(sess)))
}

func (s *Server) selectSubCategoryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	sess := s.lookupSession(w, r)
	if sess == nil {
		return
	}
	var req selectSubCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.selectSubCategoryHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}

	if err := sess.SelectSubCategory(req.Label); err != nil {
		s.writeEngineError(w, "selectSubCategoryHandler", err)
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(snapshot(sess)))
}

func (s *Server) answerPromptHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	sess := s.lookupSession(w, r)
	if sess == nil {
		return
	}
	var req answerPromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.answerPromptHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}

	if err := sess.AnswerPrompt(req.MessageID, req.Answer); err != nil {
		s.writeEngineError(w, "answerPromptHandler", err)
		return
	}
	writeJSONResponse(w, http.StatusOK, models.Success(snapshot(sess)))
}

func (s *Server) sendMessageHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	sess := s.lookupSession(w, r)
	if sess == nil {
		return
	}
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.sendMessageHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}

	err := sess.SendFreeText(r.Context(), req.Text)
	switch {
	case errors.Is(err, models.ErrEmptyMessage):
		// Whitespace-only input is ignored without touching the timeline.
		writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("Empty message ignored", snapshot(sess)))
	case errors.Is(err, models.ErrSessionBusy):
		writeJSONResponse(w, http.StatusConflict, models.Busy("A reply is still on its way; please wait for it before sending again"))
	case err != nil:
		s.writeEngineError(w, "sendMessageHandler", err)
	default:
		writeJSONResponse(w, http.StatusOK, models.Success(snapshot(sess)))
	}
}

// dialHandler resolves a helpline number to its tel: URI and, when a callback
// number is supplied and a dialer is configured, places a bridging call.
// Dialer absence or failure is reported in the envelope, never thrown.
func (s *Server) dialHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	sess := s.lookupSession(w, r)
	if sess == nil {
		return
	}
	var req dialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.dialHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}

	cleaned := phone.CleanNumber(req.Number)
	if cleaned == "" {
		slog.Warn("Server.dialHandler: number has no dialable characters", "number", req.Number)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Number contains no dialable digits"))
		return
	}
	result := dialResult{DialURI: phone.DialURI(req.Number)}

	if req.Callback == "" {
		writeJSONResponse(w, http.StatusOK, models.Success(result))
		return
	}
	if s.dialer == nil {
		slog.Warn("Server.dialHandler: dialer not configured", "number", cleaned)
		writeJSONResponse(w, http.StatusServiceUnavailable, models.Error("Cannot open the phone dialer; please dial the number directly"))
		return
	}
	if err := s.dialer.Dial(r.Context(), req.Callback, req.Number); err != nil {
		slog.Error("Server.dialHandler: dial failed", "error", err, "number", cleaned)
		writeJSONResponse(w, http.StatusBadGateway, models.Error("Failed to place the call; please dial the number directly"))
		return
	}
	slog.Info("Server.dialHandler: call placed", "number", cleaned)
	writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("Call placed", result))
}

// writeEngineError maps conversation engine sentinels to HTTP envelopes.
func (s *Server) writeEngineError(w http.ResponseWriter, handler string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrUnknownCategory),
		errors.Is(err, models.ErrUnknownSubCategory),
		errors.Is(err, models.ErrUnknownMessage),
		errors.Is(err, models.ErrInvalidAnswer),
		errors.Is(err, models.ErrMessageTooLong):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrNoActiveCategory):
		status = http.StatusConflict
	case errors.Is(err, models.ErrSessionClosed):
		status = http.StatusGone
	}
	slog.Warn("Server."+handler+": engine rejected request", "error", err, "status", status)
	writeJSONResponse(w, status, models.Error(err.Error()))
}
