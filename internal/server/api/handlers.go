package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/guncedev/gunce/internal/common"
	"github.com/guncedev/gunce/internal/diary"
	"github.com/guncedev/gunce/internal/repositories/entries"
	"github.com/guncedev/gunce/internal/server/auth"
	"github.com/guncedev/gunce/internal/service"
)

type createEntryRequest struct {
	diary.Entry
	// Encrypt asks for the content to be sealed before it is stored.
	Encrypt bool `json:"encrypt"`
}

type unlockRequest struct {
	Password string `json:"password"`
}

type unlockResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *Handler) unlock(w http.ResponseWriter, r *http.Request) {
	var req unlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.svc.Unlock(req.Password); err != nil {
		writeError(w, err)
		return
	}

	token, err := auth.GenerateToken([]byte(h.secretKey), h.tokenValidity)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, unlockResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(h.tokenValidity),
	})
}

func (h *Handler) createEntry(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	stored, err := h.svc.CreateEntry(r.Context(), &req.Entry, req.Encrypt)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

func (h *Handler) getEntry(w http.ResponseWriter, r *http.Request) {
	e, err := h.svc.GetEntry(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *Handler) getEntryContent(w http.ResponseWriter, r *http.Request) {
	content, err := h.svc.GetEntryContent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"content": content})
}

func (h *Handler) listEntries(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, err)
		return
	}

	list, err := h.svc.ListEntries(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []*diary.Entry{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) updateEntry(w http.ResponseWriter, r *http.Request) {
	var patch service.UpdatePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	updated, err := h.svc.UpdateEntry(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) deleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteEntry(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listTags(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Tags(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []*diary.Tag{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) createTag(w http.ResponseWriter, r *http.Request) {
	var t diary.Tag
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	stored, err := h.svc.CreateTag(r.Context(), &t)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, stored)
}

// parseFilter builds a list filter from the query string: from/to bound
// entry_date, tag/sentiment/q narrow further, favorites=true keeps starred
// entries only.
func parseFilter(r *http.Request) (entries.Filter, error) {
	q := r.URL.Query()
	f := entries.Filter{
		Tag:           q.Get("tag"),
		Sentiment:     diary.Sentiment(q.Get("sentiment")),
		Search:        q.Get("q"),
		FavoritesOnly: q.Get("favorites") == "true",
	}

	if v := q.Get("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, &common.ValidationError{Field: "from"}
		}
		f.From = t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return f, &common.ValidationError{Field: "to"}
		}
		f.To = t
	}
	if f.Sentiment != "" && !f.Sentiment.Valid() {
		return f, &common.ValidationError{Field: "sentiment"}
	}
	return f, nil
}
