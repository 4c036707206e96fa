package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/heartmarshall/userdict/internal/domain"
	"github.com/heartmarshall/userdict/internal/service/userdict"
)

// userDictService defines the dictionary operations served over HTTP.
type userDictService interface {
	GetAllWords() map[uuid.UUID]domain.Word
	AddWord(ctx context.Context, p domain.WordProperty) (uuid.UUID, error)
	UpdateWord(ctx context.Context, id string, p domain.WordProperty) error
	DeleteWord(ctx context.Context, id string) error
	ImportDictionary(ctx context.Context, entries map[uuid.UUID]domain.Word, override bool) (*userdict.ImportResult, error)
	ApplyJTalkDictionary(ctx context.Context) error
}

// UserDictHandler serves the user dictionary REST endpoints.
type UserDictHandler struct {
	svc     userDictService
	log     *slog.Logger
	maxBody int64
}

// NewUserDictHandler creates a UserDictHandler. Request bodies larger than
// maxBody bytes are rejected; zero means no limit.
func NewUserDictHandler(svc userDictService, logger *slog.Logger, maxBody int64) *UserDictHandler {
	return &UserDictHandler{
		svc:     svc,
		log:     logger.With("handler", "user_dict"),
		maxBody: maxBody,
	}
}

type addWordResponse struct {
	WordUUID string `json:"word_uuid"`
}

// List handles GET /user_dict.
func (h *UserDictHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.GetAllWords())
}

// Add handles POST /user_dict_word. The new identifier is returned even
// when the word was stored but could not be applied.
func (h *UserDictHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req domain.WordProperty
	if !h.decode(w, r, &req) {
		return
	}

	id, err := h.svc.AddWord(r.Context(), req)
	if err != nil {
		if id != uuid.Nil {
			err = &domain.WordError{ID: id, Err: err}
		}
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, addWordResponse{WordUUID: id.String()})
}

// Update handles PUT /user_dict_word/{word_uuid}.
func (h *UserDictHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.WordProperty
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.svc.UpdateWord(r.Context(), r.PathValue("word_uuid"), req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /user_dict_word/{word_uuid}.
func (h *UserDictHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteWord(r.Context(), r.PathValue("word_uuid")); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Import handles POST /import_user_dict?override=true|false. The body is a
// JSON object of word records keyed by identifier.
func (h *UserDictHandler) Import(w http.ResponseWriter, r *http.Request) {
	override := false
	if v := r.URL.Query().Get("override"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "override must be a boolean")
			return
		}
		override = b
	}

	var entries map[uuid.UUID]domain.Word
	if !h.decode(w, r, &entries) {
		return
	}

	result, err := h.svc.ImportDictionary(r.Context(), entries, override)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Apply handles POST /user_dict/apply.
func (h *UserDictHandler) Apply(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ApplyJTalkDictionary(r.Context()); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *UserDictHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := r.Body
	if h.maxBody > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
