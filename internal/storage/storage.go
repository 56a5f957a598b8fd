package storage

import (
	"sort"
	"sync"
	"time"

	"github.com/lehigh-university-libraries/glycemic/internal/models"
)

// SessionStore keeps selection sessions in memory. Sessions handed out are
// copies; changes go through Set or Update.
type SessionStore struct {
	sessions map[string]*models.Session
	mu       sync.RWMutex
}

func New() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*models.Session),
	}
}

func (s *SessionStore) Get(sessionID string) (*models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, exists := s.sessions[sessionID]
	if !exists {
		return nil, false
	}
	return clone(session), true
}

func (s *SessionStore) Set(sessionID string, session *models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = clone(session)
}

// Update applies fn to the stored session while holding the write lock and
// returns the result. It reports false when the session does not exist.
func (s *SessionStore) Update(sessionID string, fn func(*models.Session)) (*models.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.sessions[sessionID]
	if !exists {
		return nil, false
	}
	fn(session)
	session.UpdatedAt = time.Now()
	return clone(session), true
}

// GetAll returns every session, oldest first
func (s *SessionStore) GetAll() []*models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Session, 0, len(s.sessions))
	for _, v := range s.sessions {
		result = append(result, clone(v))
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

// Delete removes a session and reports whether it existed
func (s *SessionStore) Delete(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	return exists
}

func clone(session *models.Session) *models.Session {
	c := *session
	c.Selected = append([]models.Food{}, session.Selected...)
	return &c
}
