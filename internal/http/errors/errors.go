package errors

import (
	"encoding/json"
	"net/http"

	"github.com/dropDatabas3/wizauth/internal/observability/logger"
)

// errorResponse es el único formato de error que ve el cliente.
type errorResponse struct {
	Detail any `json:"detail"`
}

// WriteError serializa err como {"detail": ...} con el status que corresponda.
// Los 401 llevan WWW-Authenticate; el código interno va en X-Error-Code.
func WriteError(w http.ResponseWriter, err error) {
	appErr := FromError(err)

	detail := appErr.Detail
	if detail == nil {
		detail = appErr.Message
	}

	h := w.Header()
	h.Set("Content-Type", "application/json; charset=utf-8")
	h.Set("X-Error-Code", appErr.Code)
	if appErr.HTTPStatus == http.StatusUnauthorized {
		h.Set("WWW-Authenticate", "Bearer")
	}
	w.WriteHeader(appErr.HTTPStatus)
	_ = json.NewEncoder(w).Encode(errorResponse{Detail: detail})
}

// WriteErrorCtx es WriteError + log con el logger del request. 5xx a nivel
// error (con la causa), el resto a debug.
func WriteErrorCtx(w http.ResponseWriter, r *http.Request, err error) {
	appErr := FromError(err)
	log := logger.From(r.Context())
	if appErr.HTTPStatus >= 500 {
		log.Error("request error", logger.String("code", appErr.Code), logger.Err(appErr.Err))
	} else {
		log.Debug("request rejected", logger.String("code", appErr.Code), logger.Err(appErr.Err))
	}
	WriteError(w, appErr)
}
