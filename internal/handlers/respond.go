// Package handlers implements the JSON HTTP API.
package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sasfit/sasback/internal/assistant"
	"github.com/sasfit/sasback/internal/auth"
	"github.com/sasfit/sasback/internal/middleware"
	"github.com/sasfit/sasback/internal/models"
	"github.com/sasfit/sasback/internal/validator"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

const msgInternal = "Error interno del servidor"

// Deps holds what every handler group needs.
type Deps struct {
	DB         *sql.DB
	Issuer     *auth.Issuer
	Validator  *validator.Validator
	Assistant  *assistant.Dispatcher
	Production bool // hides error details
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("handlers: encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

// fail maps err onto a response. Unexpected errors are logged under op with
// the request id and answered with 500; details are echoed only outside
// production.
func (d *Deps) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Datos inválidos", "fields": verrs})
	case errors.Is(err, models.ErrNotFound):
		writeError(w, http.StatusNotFound, "Recurso no encontrado")
	case errors.Is(err, models.ErrDuplicateEmail):
		writeError(w, http.StatusConflict, "El email ya está registrado")
	case errors.Is(err, models.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "Datos inválidos")
	default:
		reqID := middleware.RequestIDFromContext(r.Context())
		log.Printf("handlers: %s (request %s): %v", op, reqID, err)
		body := map[string]any{"error": msgInternal}
		if reqID != "" {
			body["request_id"] = reqID
		}
		if !d.Production {
			body["details"] = err.Error()
		}
		writeJSON(w, http.StatusInternalServerError, body)
	}
}

// bind decodes the JSON body into dst and validates it. On failure it writes
// the response and returns false.
func (d *Deps) bind(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			writeError(w, http.StatusRequestEntityTooLarge, "El cuerpo de la petición es demasiado grande")
		case errors.Is(err, io.EOF):
			writeError(w, http.StatusBadRequest, "El cuerpo de la petición está vacío")
		default:
			writeError(w, http.StatusBadRequest, "JSON inválido")
		}
		return false
	}
	if err := d.Validator.Validate(dst); err != nil {
		d.fail(w, r, "validate request", err)
		return false
	}
	return true
}

// pathID parses the {id} URL parameter.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "ID inválido")
		return 0, false
	}
	return id, true
}

// queryInt reads a positive integer query parameter, clamped to hi.
func queryInt(r *http.Request, name string, def, hi int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v <= 0 {
		return def
	}
	if v > hi {
		return hi
	}
	return v
}
