package api

import (
	"errors"
	"net/http"

	"github.com/okian/yodataller/internal/domain/taller"
	"github.com/okian/yodataller/pkg/logger"
)

// tallerResponse is the 200 body of GET /taller/{name}.
type tallerResponse struct {
	Query  string `json:"query"`
	Person string `json:"person"`
	Taller bool   `json:"taller"`
}

// errorBody is the failure body of GET /taller/{name}.
type errorBody struct {
	Query string `json:"query"`
	Error string `json:"error"`
}

// TallerHandler handles height comparison requests.
type TallerHandler struct {
	deps Dependencies
}

// NewTallerHandler creates a new taller handler.
func NewTallerHandler(deps Dependencies) *TallerHandler {
	return &TallerHandler{deps: deps}
}

// HandleTaller handles GET /taller/{name} requests.
func (h *TallerHandler) HandleTaller(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	ctx := logger.WithFields(r.Context(), logger.String("query", name))

	out, err := h.deps.IsTallerThan(ctx, name)
	if err != nil {
		status, msg := errorStatus(err)
		writeJSON(w, status, errorBody{Query: name, Error: msg})
		return
	}
	writeJSON(w, http.StatusOK, tallerResponse{
		Query:  name,
		Person: out.Person,
		Taller: out.Taller,
	})
}

// errorStatus maps a comparison error to its HTTP status and public message.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, taller.ErrPersonNotFound):
		return http.StatusNotFound, msgPersonNotFound
	case errors.Is(err, taller.ErrHeightNotFound):
		return http.StatusNotFound, msgHeightNotFound
	default:
		return http.StatusInternalServerError, msgUnexpected
	}
}
