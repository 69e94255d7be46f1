package handlers

import (
	"net/http"

	"github.com/tbellam/AssistGo/internal/adapter"
	"github.com/tbellam/AssistGo/internal/adapter/utils"
)

// SessionInfoHandler godoc
// @Summary      Get session details
// @Tags         Sessions
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  api.SessionInfoResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /session/{id} [get]
func SessionInfoHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	sessionId := utils.GetChiURLParam(r, "id")
	sess, found := engine().SessionInfo(sessionId)
	if !found {
		WriteErrorResponse(w, http.StatusNotFound, sessionId, "session not found")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToSessionInfoResponse(sess))
}

// SessionFilesHandler godoc
// @Summary      List files attached to a session
// @Tags         Sessions
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {array}   api.FileSummary
// @Failure      404  {object}  api.ErrorResponse
// @Router       /session/{id}/files [get]
func SessionFilesHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	sessionId := utils.GetChiURLParam(r, "id")
	files, found := engine().SessionFiles(sessionId)
	if !found {
		WriteErrorResponse(w, http.StatusNotFound, sessionId, "session not found")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToFileSummaries(files))
}

// ClearSessionHandler godoc
// @Summary      Delete a session and its history
// @Tags         Sessions
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      204  "cleared"
// @Failure      404  {object}  api.ErrorResponse
// @Router       /session/{id} [delete]
func ClearSessionHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	sessionId := utils.GetChiURLParam(r, "id")
	if !engine().ClearSession(r.Context(), sessionId) {
		WriteErrorResponse(w, http.StatusNotFound, sessionId, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StatusHandler godoc
// @Summary      Engine status
// @Tags         Ops
// @Produce      json
// @Success      200  {object}  api.StatusResponse
// @Router       /status [get]
func StatusHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToStatusResponse(engine().Status(r.Context())))
}
