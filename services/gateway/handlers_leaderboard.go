package gateway

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"launchpad/pkg/mulearn"
)

func (g *Gateway) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	q := mulearn.LeaderboardQuery{Search: strings.TrimSpace(r.URL.Query().Get("search"))}
	if q.Search != "" && len(q.Search) < 3 {
		respondError(w, http.StatusBadRequest, errors.New("search needs at least 3 characters"))
		return
	}
	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && page > 0 {
		q.Page = page
	}
	if perPage, err := strconv.Atoi(r.URL.Query().Get("per_page")); err == nil && perPage > 0 {
		q.PerPage = perPage
	}

	board, err := g.upstream.Leaderboard(r.Context(), q)
	if err != nil {
		respondActionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, board)
}
