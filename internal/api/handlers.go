package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/navinbhat12/api-about-nothing/internal/domain"
	"github.com/navinbhat12/api-about-nothing/internal/service/listing"
	"github.com/navinbhat12/api-about-nothing/pkg/errors"
)

// Handler serves the read-only resource endpoints over one dataset snapshot.
type Handler struct {
	dataset    *domain.Dataset
	forceHTTPS bool
	logger     *zap.Logger
}

func NewHandler(dataset *domain.Dataset, forceHTTPS bool, logger *zap.Logger) *Handler {
	return &Handler{
		dataset:    dataset,
		forceHTTPS: forceHTTPS,
		logger:     logger,
	}
}

func (h *Handler) links(r *http.Request) listing.LinkBuilder {
	return listing.NewLinkBuilder(r, h.forceHTTPS)
}

// Root lists the principal cast. It is neither filtered nor paginated.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, h.logger, http.StatusOK, h.dataset.PrincipalCast())
}

func (h *Handler) ListCharacters(w http.ResponseWriter, r *http.Request) {
	page := listing.List(listing.Characters, h.dataset.Characters, r.URL.Query(), h.links(r))
	respondJSON(w, h.logger, http.StatusOK, page)
}

func (h *Handler) GetCharacter(w http.ResponseWriter, r *http.Request) {
	character, err := h.findCharacter(chi.URLParam(r, "id"))
	if err != nil {
		respondLookupError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, character)
}

func (h *Handler) ListEpisodes(w http.ResponseWriter, r *http.Request) {
	page := listing.List(listing.Episodes, h.dataset.Episodes, r.URL.Query(), h.links(r))
	respondJSON(w, h.logger, http.StatusOK, page)
}

func (h *Handler) GetEpisode(w http.ResponseWriter, r *http.Request) {
	episode, err := h.findEpisode(chi.URLParam(r, "id"))
	if err != nil {
		respondLookupError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, episode)
}

func (h *Handler) ListQuotes(w http.ResponseWriter, r *http.Request) {
	page := listing.List(listing.Quotes, h.dataset.Quotes, r.URL.Query(), h.links(r))
	respondJSON(w, h.logger, http.StatusOK, page)
}

// QuotesByCharacter returns every quote of one character, unpaginated.
func (h *Handler) QuotesByCharacter(w http.ResponseWriter, r *http.Request) {
	character, err := h.findCharacter(chi.URLParam(r, "characterId"))
	if err != nil {
		respondLookupError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, h.dataset.QuotesByCharacter(character))
}

func (h *Handler) QuotesByEpisode(w http.ResponseWriter, r *http.Request) {
	episode, err := h.findEpisode(chi.URLParam(r, "episodeId"))
	if err != nil {
		respondLookupError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, h.dataset.QuotesByEpisode(episode))
}

type healthResponse struct {
	Status     string `json:"status"`
	Characters int    `json:"characters"`
	Episodes   int    `json:"episodes"`
	Quotes     int    `json:"quotes"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, h.logger, http.StatusOK, healthResponse{
		Status:     "ok",
		Characters: len(h.dataset.Characters),
		Episodes:   len(h.dataset.Episodes),
		Quotes:     len(h.dataset.Quotes),
	})
}

func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, h.logger, http.StatusNotFound, "Not found")
}

func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed")
}

func (h *Handler) findCharacter(rawID string) (domain.Character, error) {
	id, ok := parseID(rawID)
	if ok {
		if character, found := h.dataset.CharacterByID(id); found {
			return character, nil
		}
	}
	return domain.Character{}, errors.NewNotFoundError("Character", rawID)
}

func (h *Handler) findEpisode(rawID string) (domain.Episode, error) {
	id, ok := parseID(rawID)
	if ok {
		if episode, found := h.dataset.EpisodeByID(id); found {
			return episode, nil
		}
	}
	return domain.Episode{}, errors.NewNotFoundError("Episode", rawID)
}

// parseID accepts only base-10 integers; anything else can never match a record.
func parseID(raw string) (int, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return id, true
}
