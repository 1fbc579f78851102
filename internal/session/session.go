package session

import (
	"sync"
	"time"

	"github.com/mkraev/neurocontent-bot/types"
)

// Session is the transient conversational state of one user. It never
// touches durable storage: a restart drops every in-flight flow.
type Session struct {
	Step        types.SessionStep
	ContentType types.ContentType
	FieldValue  string
	UpdatedAt   time.Time
}

// Manager keeps one Session per user id. Critical sections are O(1) map
// operations; nothing network-bound ever runs under the lock.
type Manager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[int64]*Session)}
}

// StartFlow begins collecting a field for the chosen content type. Any
// previously collected value is discarded.
func (m *Manager) StartFlow(userID int64, contentType types.ContentType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = &Session{
		Step:        types.StepAwaitingField,
		ContentType: contentType,
		UpdatedAt:   time.Now(),
	}
}

// SetField stores the collected text and moves to confirmation. Returns
// false when the user is not in the field-collection step; free text outside
// the flow is ignored.
func (m *Manager) SetField(userID int64, text string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if !ok || s.Step != types.StepAwaitingField {
		return false
	}
	s.FieldValue = text
	s.Step = types.StepAwaitingConfirm
	s.UpdatedAt = time.Now()
	return true
}

// TakeConfirmed atomically hands out the collected data and resets the
// session to idle. A double-tapped confirm resolves here: the second call
// finds the session already idle and gets ok=false.
func (m *Manager) TakeConfirmed(userID int64) (contentType types.ContentType, fieldValue string, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, found := m.sessions[userID]
	if !found || s.Step != types.StepAwaitingConfirm {
		return "", "", false
	}
	contentType = s.ContentType
	fieldValue = s.FieldValue
	delete(m.sessions, userID)
	return contentType, fieldValue, true
}

// Clear drops the session from any step (cancel, back-to-menu, /start).
func (m *Manager) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// Peek returns a snapshot of the user's session, Step=StepIdle when none.
func (m *Manager) Peek(userID int64) (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[userID]
	if !ok {
		return Session{Step: types.StepIdle}, false
	}
	return *s, true
}
