// Package state owns the single in-memory project collection. Every read
// path (calendar, search, stats) derives from it by pure recomputation;
// there are no secondary caches to invalidate.
package state

import (
	"sort"
	"strings"
	"sync"

	"github.com/novaqhq/novaq/internal/calendar"
	"github.com/novaqhq/novaq/internal/model"
)

// Store holds the current project list and notifies subscribers when it
// is replaced.
type Store struct {
	mu       sync.RWMutex
	projects []model.Project
	subs     map[int]func()
	nextSub  int
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// Replace swaps in a fresh project list and notifies subscribers.
// Callbacks run on the caller's goroutine, after the lock is released.
func (s *Store) Replace(projects []model.Project) {
	s.mu.Lock()
	s.projects = make([]model.Project, len(projects))
	copy(s.projects, projects)
	subs := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// Projects returns a snapshot of the current list, most recent first.
func (s *Store) Projects() []model.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// Project looks up a single project by id.
func (s *Store) Project(id string) (model.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.projects {
		if p.ID == id {
			return p, true
		}
	}
	return model.Project{}, false
}

// Subscribe registers a callback invoked after every Replace. The returned
// cancel function removes the subscription.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subs == nil {
		s.subs = make(map[int]func())
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// SearchResult holds dashboard search matches.
type SearchResult struct {
	Projects []model.Project
	Events   []calendar.Event
}

// Search matches projects by name or description and events by title,
// case-insensitively. Each list is capped at limit. Event matches are
// ordered by absolute start time; project order follows the stored list.
func (s *Store) Search(term string, limit int) SearchResult {
	term = strings.ToLower(strings.TrimSpace(term))
	var res SearchResult
	if term == "" || limit <= 0 {
		return res
	}

	projects := s.Projects()
	for _, p := range projects {
		if len(res.Projects) == limit {
			break
		}
		if strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term) {
			res.Projects = append(res.Projects, p)
		}
	}

	for _, ev := range calendar.Flatten(projects) {
		if len(res.Events) == limit {
			break
		}
		if strings.Contains(strings.ToLower(ev.Title), term) {
			res.Events = append(res.Events, ev)
		}
	}

	return res
}

// Stats summarizes the project list for the sidebar.
type Stats struct {
	Projects   int
	Completed  int
	InProgress int
	Events     int
	TimeSpent  float64 // hours, summed across projects
}

// Stats recomputes summary counts from the current list.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st Stats
	st.Projects = len(s.projects)
	for _, p := range s.projects {
		switch p.Status {
		case model.StatusCompleted:
			st.Completed++
		case model.StatusInProgress:
			st.InProgress++
		}
		st.Events += len(p.CalendarEvents)
		st.TimeSpent += p.TimeSpentOnProject
	}
	return st
}

// UpcomingEvents returns the next n events on or after the given day key,
// across all projects, soonest first.
func (s *Store) UpcomingEvents(fromDate string, n int) []calendar.Event {
	flat := calendar.Flatten(s.Projects())
	var out []calendar.Event
	for _, ev := range flat {
		if ev.Date >= fromDate {
			out = append(out, ev)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartAt < out[j].StartAt })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
