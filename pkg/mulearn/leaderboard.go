package mulearn

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"
)

// minSearchLength matches the upstream's rejection of shorter search terms.
const minSearchLength = 3

// LeaderboardQuery selects a page of the Launchpad leaderboard. Search is
// optional; when set it must be at least three characters.
type LeaderboardQuery struct {
	Page    int
	PerPage int
	Search  string
}

// Leaderboard fetches one page of ranked students.
func (c *Client) Leaderboard(ctx context.Context, q LeaderboardQuery) (Leaderboard, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = 10
	}
	q.Search = strings.TrimSpace(q.Search)
	if q.Search != "" && len(q.Search) < minSearchLength {
		return Leaderboard{}, errors.New("mulearn: leaderboard search needs at least 3 characters")
	}

	query := url.Values{
		"pageIndex": {strconv.Itoa(q.Page)},
		"perPage":   {strconv.Itoa(q.PerPage)},
	}
	if q.Search != "" {
		query.Set("search", q.Search)
	}

	var out Leaderboard
	err := c.get(ctx, "/launchpad/launchpad-leaderboard/", "", query, &out)
	return out, err
}
