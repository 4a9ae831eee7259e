package session

import (
	"sync"

	"github.com/dimaskresna/lelang-bot/internal/model"
)

// Store keeps per-chat auction sessions in memory. All methods are safe for
// concurrent use; Get returns a copy so callers never observe partial writes.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*model.Session
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[int64]*model.Session),
	}
}

// Get returns a copy of the chat's session. ok is false when the chat has
// never stored anything.
func (s *Store) Get(chatID int64) (model.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[chatID]
	if !ok {
		return model.Session{}, false
	}
	return *sess, true
}

// Update applies fn to the chat's session under the lock, creating the
// session on first use. fn receives the live record and may mutate it freely.
func (s *Store) Update(chatID int64, fn func(*model.Session)) model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[chatID]
	if !ok {
		sess = &model.Session{ChatID: chatID}
		s.sessions[chatID] = sess
	}
	fn(sess)
	return *sess
}

// Clear wipes the chat's credentials and monitoring state in one step. The
// auction and limit settings survive so the user can log back in and resume.
func (s *Store) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[chatID]
	if !ok {
		return
	}
	sess.BearerToken = ""
	sess.CookieHeader = ""
	sess.Passkey = ""
	sess.MonitoringActive = false
}

// SetMonitoring flips the chat's monitoring flag, creating the session if
// needed.
func (s *Store) SetMonitoring(chatID int64, active bool) {
	s.Update(chatID, func(sess *model.Session) {
		sess.MonitoringActive = active
	})
}
