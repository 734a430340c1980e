package helpers

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	httperrors "github.com/dropDatabas3/wizauth/internal/http/errors"
)

// MaxBodyBytes limita los bodies de entrada.
const MaxBodyBytes = 1 << 20

// MediaType devuelve el media type del Content-Type, en minúsculas y sin parámetros.
func MediaType(r *http.Request) string {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(ct))
	}
	return mt
}

// IsForm reporta si el body viene como formulario.
func IsForm(r *http.Request) bool {
	mt := MediaType(r)
	return mt == "application/x-www-form-urlencoded" || mt == "multipart/form-data"
}

// ReadJSON decodifica el body JSON en v (tolerante a campos desconocidos) y
// lo valida con los tags `validate`. Devuelve un *AppError listo para escribir.
func ReadJSON(w http.ResponseWriter, r *http.Request, v any) error {
	mt := MediaType(r)
	if mt != "" && mt != "application/json" {
		return httperrors.ErrUnsupportedMediaType.WithDetail("Content-Type must be application/json")
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var mbe *http.MaxBytesError
		switch {
		case errors.As(err, &mbe):
			return httperrors.ErrBodyTooLarge.WithCause(err)
		case errors.Is(err, io.EOF):
			// body vacío: que decida la validación
		default:
			return httperrors.ErrInvalidJSON.WithCause(err)
		}
	}
	return Validate(v)
}

// ReadForm parsea un body urlencoded/multipart con el mismo límite que ReadJSON.
func ReadForm(w http.ResponseWriter, r *http.Request) (url.Values, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if MediaType(r) == "multipart/form-data" {
		if err := r.ParseMultipartForm(MaxBodyBytes); err != nil {
			return nil, httperrors.ErrBadRequest.WithDetail("invalid form body").WithCause(err)
		}
		return r.PostForm, nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, httperrors.ErrBadRequest.WithDetail("invalid form body").WithCause(err)
	}
	return r.PostForm, nil
}

// WriteJSON escribe una respuesta JSON estándar.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Message es la respuesta {"message": ...} de las operaciones sin payload.
type Message struct {
	Message string `json:"message"`
}

func WriteMessage(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, Message{Message: msg})
}
