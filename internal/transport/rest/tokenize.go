package rest

import (
	"net/http"

	"github.com/heartmarshall/userdict/internal/adapter/kagome"
)

type tokenizer interface {
	Tokenize(text string) []kagome.Token
}

// TokenizeHandler exposes the in-process analyzer so dictionary changes can
// be checked without a speech engine.
type TokenizeHandler struct {
	tok tokenizer
}

// NewTokenizeHandler creates a TokenizeHandler.
func NewTokenizeHandler(tok tokenizer) *TokenizeHandler {
	return &TokenizeHandler{tok: tok}
}

// Tokenize handles GET /tokenize?text=.
func (h *TokenizeHandler) Tokenize(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	if text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	writeJSON(w, http.StatusOK, h.tok.Tokenize(text))
}
