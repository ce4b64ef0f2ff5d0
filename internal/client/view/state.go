package view

import "github.com/dmitrijs2005/useradmin/internal/client/models"

const DefaultRowsPerPage = 10

// State is the table state owned by the UI: filter text, sort direction and
// pagination position.
type State struct {
	filter      string
	direction   Direction
	rowsPerPage int
	page        int
}

// NewState returns a state sorted most recent first, on page 1.
// Non-positive rowsPerPage falls back to DefaultRowsPerPage.
func NewState(rowsPerPage int) *State {
	if rowsPerPage <= 0 {
		rowsPerPage = DefaultRowsPerPage
	}
	return &State{direction: Desc, rowsPerPage: rowsPerPage, page: 1}
}

func (s *State) Filter() string {
	return s.filter
}

func (s *State) SetFilter(text string) {
	s.filter = text
}

func (s *State) Direction() Direction {
	return s.direction
}

func (s *State) SetDirection(d Direction) {
	s.direction = d
}

func (s *State) RowsPerPage() int {
	return s.rowsPerPage
}

func (s *State) Page() int {
	return s.page
}

// ToggleSort flips the sort direction.
func (s *State) ToggleSort() {
	if s.direction == Asc {
		s.direction = Desc
		return
	}
	s.direction = Asc
}

// SetRowsPerPage changes the page size and goes back to page 1.
func (s *State) SetRowsPerPage(n int) {
	s.rowsPerPage = n
	s.page = 1
}

// SetPage stores p as is. Out-of-range pages render empty.
func (s *State) SetPage(p int) {
	s.page = p
}

func (s *State) Query() Query {
	return Query{
		Filter:      s.filter,
		Direction:   s.direction,
		RowsPerPage: s.rowsPerPage,
		Page:        s.page,
	}
}

// Apply runs the pipeline for users with the current state.
func (s *State) Apply(users []models.User) Page {
	return Apply(users, s.Query())
}
