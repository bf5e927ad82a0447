package fixtures

import (
	"net/url"
	"strconv"
	"strings"

	"pizza-mock/internal/models"
)

const defaultPageLimit = 10

// PageQuery carries the listing query parameters.
type PageQuery struct {
	Page  int
	Limit int
	Name  string
}

// PageInfo describes one page of a filtered listing.
type PageInfo struct {
	More       bool `json:"more"`
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
}

// ParsePageQuery reads page, limit and name from the query string,
// falling back to page 0 and limit 10.
func ParsePageQuery(values url.Values) PageQuery {
	q := PageQuery{Page: 0, Limit: defaultPageLimit, Name: values.Get("name")}
	if p, err := strconv.Atoi(values.Get("page")); err == nil && p >= 0 {
		q.Page = p
	}
	if l, err := strconv.Atoi(values.Get("limit")); err == nil && l > 0 {
		q.Limit = l
	}
	return q
}

// MatchName applies the listing name filter: case-insensitive substring
// match after stripping at most one leading and one trailing '*'. An
// empty or wildcard-only filter matches everything.
func MatchName(filter, name string) bool {
	f := strings.ToLower(strings.TrimSpace(filter))
	if f == "" || f == "*" {
		return true
	}
	f = strings.TrimPrefix(f, "*")
	f = strings.TrimSuffix(f, "*")
	if f == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), f)
}

func pageInfo(q PageQuery, total int) PageInfo {
	totalPages := (total + q.Limit - 1) / q.Limit
	return PageInfo{
		More:       (q.Page+1)*q.Limit < total,
		Page:       q.Page,
		Limit:      q.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

func pageBounds(q PageQuery, total int) (int, int) {
	start := q.Page * q.Limit
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}
	return start, end
}

// FilterUsers returns one page of the user directory matching the query.
func (s *Store) FilterUsers(q PageQuery) ([]*models.User, PageInfo) {
	filtered := []*models.User{}
	for _, u := range s.Users() {
		if MatchName(q.Name, u.Name) {
			filtered = append(filtered, u)
		}
	}
	start, end := pageBounds(q, len(filtered))
	return filtered[start:end], pageInfo(q, len(filtered))
}

// FilterFranchises returns one page of the franchise list matching the query.
func (s *Store) FilterFranchises(q PageQuery) ([]*models.Franchise, PageInfo) {
	filtered := []*models.Franchise{}
	for _, f := range s.Franchises() {
		if MatchName(q.Name, f.Name) {
			filtered = append(filtered, f)
		}
	}
	start, end := pageBounds(q, len(filtered))
	return filtered[start:end], pageInfo(q, len(filtered))
}
