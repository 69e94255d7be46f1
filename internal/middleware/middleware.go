package middleware

import (
	"net/http"
	"strconv"

	"github.com/tbellam/AssistGo/internal/handlers"
	"github.com/tbellam/AssistGo/internal/metrics"
	"github.com/tbellam/AssistGo/pkg/logger_i"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logger_i.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
	id           string
}

var AskHandler = Wrap(handlers.AskHandler)
var IngestHandler = Wrap(handlers.IngestHandler)
var UploadHandler = Wrap(handlers.UploadHandler)
var SessionInfoHandler = Wrap(handlers.SessionInfoHandler)
var SessionFilesHandler = Wrap(handlers.SessionFilesHandler)
var ClearSessionHandler = Wrap(handlers.ClearSessionHandler)
var StatusHandler = Wrap(handlers.StatusHandler)

func Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: 200} //metrics
		re := processRequest(requestResponseStruct{req: r, writer: rec})

		if re.badRequest.isBadRequest {
			handleBadRequest(re)
			return
		}
		next(rec, re.req)

		metrics.HttpRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rec.Status)).Inc() //metrics
	}
}
func processRequest(re requestResponseStruct) requestResponseStruct {
	re.logger = logger_i.NewLogger("middleware")
	re.logger.Info("New request received")
	re = injectTrace(re)
	re = authenticate(re)
	if re.badRequest.isBadRequest {
		return re //stop if auth fails
	}
	re = rateLimiter(re)
	return re
}
