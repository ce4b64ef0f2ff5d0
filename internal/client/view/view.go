// Package view computes the visible slice of the user table from the raw
// collection: filter, then sort by last-seen time, then paginate.
//
// Every function here is pure and total: the same inputs always give the
// same page, and no input makes them fail.
package view

import (
	"slices"
	"strings"

	"github.com/dmitrijs2005/useradmin/internal/client/models"
)

// Direction is the sort order of the last-seen column.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Query holds the inputs of the pipeline besides the raw collection.
type Query struct {
	Filter      string
	Direction   Direction
	RowsPerPage int
	Page        int
}

// Page is one computed page of the table.
type Page struct {
	Rows       []models.User
	Number     int
	Total      int // filtered records across all pages
	TotalPages int
}

// IDs returns the ids of the rows on the page, in display order.
func (p Page) IDs() []string {
	ids := make([]string, len(p.Rows))
	for i, u := range p.Rows {
		ids[i] = u.ID
	}
	return ids
}

// Apply runs the full pipeline.
func Apply(users []models.User, q Query) Page {
	filtered := Filter(users, q.Filter)
	sorted := Sort(filtered, q.Direction)
	return Page{
		Rows:       Paginate(sorted, q.RowsPerPage, q.Page),
		Number:     q.Page,
		Total:      len(sorted),
		TotalPages: TotalPages(len(sorted), q.RowsPerPage),
	}
}

// Filter keeps users whose full name, email or status name contains text,
// ignoring case. An empty text keeps everything, in input order.
func Filter(users []models.User, text string) []models.User {
	if text == "" {
		return slices.Clone(users)
	}
	needle := strings.ToLower(text)

	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if matches(u, needle) {
			out = append(out, u)
		}
	}
	return out
}

func matches(u models.User, needle string) bool {
	return strings.Contains(strings.ToLower(u.FullName), needle) ||
		strings.Contains(strings.ToLower(u.Email), needle) ||
		strings.Contains(strings.ToLower(u.Status.String()), needle)
}

// Sort orders users by last login time. Users that never logged in count as
// time zero. Equal times keep their input order. Any direction other than
// Asc sorts most recent first.
func Sort(users []models.User, dir Direction) []models.User {
	out := slices.Clone(users)
	slices.SortStableFunc(out, func(a, b models.User) int {
		c := a.LastSeen().Compare(b.LastSeen())
		if dir == Asc {
			return c
		}
		return -c
	})
	return out
}

// Paginate returns rows [(page-1)*rowsPerPage, page*rowsPerPage). Pages
// outside the available range give an empty slice; page is never clamped.
func Paginate(users []models.User, rowsPerPage, page int) []models.User {
	if rowsPerPage <= 0 || page <= 0 {
		return []models.User{}
	}
	start := (page - 1) * rowsPerPage
	if start >= len(users) {
		return []models.User{}
	}
	end := min(start+rowsPerPage, len(users))
	return slices.Clone(users[start:end])
}

// TotalPages is ceil(count/rowsPerPage); zero records give zero pages.
func TotalPages(count, rowsPerPage int) int {
	if count <= 0 || rowsPerPage <= 0 {
		return 0
	}
	return (count + rowsPerPage - 1) / rowsPerPage
}
