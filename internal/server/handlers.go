package server

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/five82/tango/internal/auth"
	"github.com/five82/tango/internal/vocab"
)

type handler struct {
	deps   Deps
	logger *zap.Logger
}

func (h *handler) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.health)
	mux.HandleFunc("GET /folders", h.listFolders)
	mux.HandleFunc("POST /folders", h.createFolder)
	mux.HandleFunc("DELETE /folders/{folderName}", h.deleteFolder)
	mux.HandleFunc("GET /folders/{folderName}/words", h.listWords)
	mux.HandleFunc("POST /folders/{folderName}/words", h.addWord)
	mux.HandleFunc("DELETE /folders/{folderName}/words/{wordId}", h.deleteWord)
	mux.HandleFunc("PATCH /folders/{folderName}/words/{wordId}/favorite", h.setFavorite)
	mux.HandleFunc("POST /translate", h.translate)
	return mux
}

type createFolderRequest struct {
	FolderName string `json:"folderName"`
}

type favoriteRequest struct {
	IsFavorite *bool `json:"isFavorite"`
}

type translateRequest struct {
	Text string `json:"text"`
	From string `json:"from"`
	To   string `json:"to"`
}

type wordsResponse struct {
	Words []vocab.Word `json:"words"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	if h.deps.Pinger != nil {
		if err := h.deps.Pinger.PingContext(r.Context()); err != nil {
			h.logger.Error("health check failed", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) listFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := h.deps.Folders.List(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(folders))
}

func (h *handler) createFolder(w http.ResponseWriter, r *http.Request) {
	uid := auth.UserID(r.Context())
	if uid == "" {
		h.fail(w, r, vocab.ErrUnauthorized)
		return
	}
	var req createFolderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	folder, err := h.deps.Folders.Create(r.Context(), uid, req.FolderName)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, folder)
}

func (h *handler) deleteFolder(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Folders.Delete(r.Context(), auth.UserID(r.Context()), r.PathValue("folderName")); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "folder deleted"})
}

func (h *handler) listWords(w http.ResponseWriter, r *http.Request) {
	words, err := h.deps.Words.List(r.Context(), auth.UserID(r.Context()), r.PathValue("folderName"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(words))
}

func (h *handler) addWord(w http.ResponseWriter, r *http.Request) {
	uid := auth.UserID(r.Context())
	if uid == "" {
		h.fail(w, r, vocab.ErrUnauthorized)
		return
	}
	var req vocab.NewWord
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	word, err := h.deps.Words.Add(r.Context(), uid, r.PathValue("folderName"), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, word)
}

func (h *handler) deleteWord(w http.ResponseWriter, r *http.Request) {
	err := h.deps.Words.Delete(r.Context(), auth.UserID(r.Context()), r.PathValue("folderName"), r.PathValue("wordId"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "word deleted"})
}

func (h *handler) setFavorite(w http.ResponseWriter, r *http.Request) {
	uid := auth.UserID(r.Context())
	if uid == "" {
		h.fail(w, r, vocab.ErrUnauthorized)
		return
	}
	var req favoriteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if req.IsFavorite == nil {
		h.fail(w, r, vocab.Invalid("isFavorite must be a boolean"))
		return
	}
	words, err := h.deps.Words.SetFavorite(r.Context(), uid, r.PathValue("folderName"), r.PathValue("wordId"), *req.IsFavorite)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wordsResponse{Words: nonNil(words)})
}

func (h *handler) translate(w http.ResponseWriter, r *http.Request) {
	if auth.UserID(r.Context()) == "" {
		h.fail(w, r, vocab.ErrUnauthorized)
		return
	}
	var req translateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	if strings.TrimSpace(req.Text) == "" || strings.TrimSpace(req.From) == "" || strings.TrimSpace(req.To) == "" {
		h.fail(w, r, vocab.Invalid("text, from and to are required"))
		return
	}
	if h.deps.Translator == nil {
		h.fail(w, r, vocab.ErrUpstream)
		return
	}
	out, err := h.deps.Translator.Translate(r.Context(), req.Text, req.From, req.To)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
