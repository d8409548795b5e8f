package logging

import (
	"errors"
	"net/http"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"
)

const RequestIDHeader = "X-Request-ID"

// statusCoder is implemented by errors that carry the HTTP status they were
// answered with. Errors below 500 are client mistakes and log as warnings.
type statusCoder interface {
	StatusCode() int
}

func LoggingWrapper(
	loggingName string,
	log *logrus.Logger,
	handler func(http.ResponseWriter, *http.Request, *LogData) error,
) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		logData := NewLogData(log)

		requestID := req.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.Must(uuid.NewV4()).String()
		}
		w.Header().Set(RequestIDHeader, requestID)
		logData.AddData("requestID", requestID)
		logData.AddData("method", req.Method)
		logData.AddData("path", req.URL.Path)

		log.WithField("requestID", requestID).Debugf("Handler.%v.Start", loggingName)

		endTimer := logData.AddTiming("duration")
		err := handler(w, req, logData)
		endTimer()

		if err != nil {
			entry := logData.Log().WithError(err)
			var coded statusCoder
			if errors.As(err, &coded) && coded.StatusCode() < http.StatusInternalServerError {
				entry.WithField("status", coded.StatusCode()).Warnf("Handler.%v.Rejected", loggingName)
				return
			}
			entry.Errorf("Handler.%v.Error", loggingName)
			return
		}

		logData.Log().Infof("Handler.%v.Complete", loggingName)
	}
}
