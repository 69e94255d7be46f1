package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tbellam/AssistGo/internal/adapter"
	"github.com/tbellam/AssistGo/internal/adapter/utils"
	"github.com/tbellam/AssistGo/internal/api"
	"github.com/tbellam/AssistGo/internal/config"
	"github.com/tbellam/AssistGo/internal/domain/chatModel"
	"github.com/tbellam/AssistGo/internal/fileproc"
)

// AskHandler godoc
// @Summary      Answer a query
// @Description  Runs the full retrieval-augmented answer pipeline for one query within a session.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request  body      api.AskRequest  true  "Query, optional language and session id"
// @Success      200      {object}  api.AskResponse
// @Failure      400      {object}  api.ErrorResponse
// @Router       /ask [post]
func AskHandler(w http.ResponseWriter, request *http.Request) {

	if !validateContext(request.Context()) {
		logRH.Warn("Invalid Context by request ", request.RemoteAddr)
		return
	}

	var requestData api.AskRequest
	defer closeBody(request.Body)
	if err := json.NewDecoder(request.Body).Decode(&requestData); err != nil || strings.TrimSpace(requestData.Query) == "" {
		logRH.Warn("Bad Ask Request: ", "error:", err)
		WriteErrorResponse(w, http.StatusBadRequest, requestData.SessionID, "query is required")
		return
	}

	sessionId := requestData.SessionID
	if sessionId == "" {
		sessionId = utils.GetNewUUID()
		logRH.Debug("new session", "sessionId", sessionId)
	}

	//retrieval is on unless the caller switched it off
	useRetrieval := true
	if requestData.UseRetrieval != nil {
		useRetrieval = *requestData.UseRetrieval
	}

	result := engine().Answer(request.Context(), chatModel.AskRequest{
		Query:         requestData.Query,
		Language:      requestData.Language,
		SessionId:     sessionId,
		UseRetrieval:  useRetrieval,
		WantSentiment: requestData.WantSentiment,
	})

	writeJsonResponse(w, http.StatusOK, adapter.ToAskResponse(sessionId, result))
}

// IngestHandler godoc
// @Summary      Ingest text into the knowledge store
// @Tags         Ingestion
// @Accept       json
// @Produce      json
// @Param        request  body      api.IngestRequest  true  "Text and optional source/metadata"
// @Success      201      {object}  api.IngestResponse
// @Failure      400      {object}  api.ErrorResponse
// @Router       /ingest [post]
func IngestHandler(w http.ResponseWriter, request *http.Request) {
	if !validateContext(request.Context()) {
		logRH.Warn("Invalid Context by request ", request.RemoteAddr)
		return
	}

	var requestData api.IngestRequest
	defer closeBody(request.Body)
	if err := json.NewDecoder(request.Body).Decode(&requestData); err != nil || strings.TrimSpace(requestData.Text) == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "", "text is required")
		return
	}
	source := requestData.Source
	if source == "" {
		source = "manual"
	}

	id := engine().Ingest(request.Context(), requestData.Text, source, requestData.Metadata)
	writeJsonResponse(w, http.StatusCreated, api.IngestResponse{DocumentID: id})
}

// UploadHandler godoc
// @Summary      Upload a file into a session
// @Description  Receives a file via multipart/form-data, extracts its text and attaches it to the session.
// @Tags         Ingestion
// @Accept       multipart/form-data
// @Produce      json
// @Param        session_id  formData  string  false  "Session id; a new session is created when omitted"
// @Param        document    formData  file    true   "The file to upload"
// @Success      201  {object}  api.UploadResponse
// @Failure      400  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /upload [post]
func UploadHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	targetDir, errString := getTargetDirectory()
	if errString != "" {
		logRH.Error("Couldn't get target directory :", "err", errString)
		WriteErrorResponse(w, http.StatusInternalServerError, "", errString)
		return
	}

	if err := r.ParseMultipartForm(config.MaxUploadSize); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
		return
	}

	sessionId := r.FormValue("session_id")
	if sessionId == "" {
		sessionId = utils.GetNewUUID()
	}

	fileReader, fileMetadata, err := r.FormFile("document")
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, sessionId, "Could not retrieve file")
		return
	}
	defer fileReader.Close()

	filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), fileMetadata.Filename)
	tempFilePath := filepath.Join(targetDir, filename)
	destinationFileWriter, err := os.Create(tempFilePath)
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, sessionId, "Storage error")
		return
	}

	if _, err := io.Copy(destinationFileWriter, fileReader); err != nil {
		destinationFileWriter.Close()
		WriteErrorResponse(w, http.StatusInternalServerError, sessionId, "Write error")
		return
	}
	destinationFileWriter.Close()
	defer os.Remove(tempFilePath)

	fc, err := fileproc.Process(tempFilePath, fileMetadata.Filename)
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, sessionId, "Processing error")
		return
	}

	engine().AttachFiles(r.Context(), sessionId, []chatModel.FileContext{fc})

	writeJsonResponse(w, http.StatusCreated, api.UploadResponse{
		SessionID: sessionId,
		Files:     adapter.ToFileSummaries([]chatModel.FileContext{fc}),
	})
}
