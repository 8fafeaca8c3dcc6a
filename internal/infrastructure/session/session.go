// Package session holds the per-browser state of the web app: the in-progress
// referral status update, the last visited case list and one-shot flash messages.
package session

import (
	"github.com/acp/web/internal/domain/referral"
)

// Data is the JSON document persisted for one session id
type Data struct {
	ReferralStatusUpdateData *referral.StatusUpdateSessionData `json:"referralStatusUpdateData,omitempty"`
	RecentCaseListPath       string                            `json:"recentCaseListPath,omitempty"`
	Flash                    map[string][]string               `json:"flash,omitempty"`
}

// Session is the request-scoped view of a stored session.
// It is not safe for concurrent use; one request owns it.
type Session struct {
	id       string
	data     Data
	isNew    bool
	modified bool
}

func newSession(id string, data Data, isNew bool) *Session {
	return &Session{id: id, data: data, isNew: isNew}
}

// ID returns the session id
func (s *Session) ID() string {
	return s.id
}

// IsNew reports whether the session was created during this request
func (s *Session) IsNew() bool {
	return s.isNew
}

// Modified reports whether the session changed since it was loaded
func (s *Session) Modified() bool {
	return s.modified
}

// StatusUpdate returns the in-progress status update, or nil when none exists.
// Callers that change the record must hand it back through SetStatusUpdate.
func (s *Session) StatusUpdate() *referral.StatusUpdateSessionData {
	return s.data.ReferralStatusUpdateData
}

// SetStatusUpdate replaces the in-progress status update
func (s *Session) SetStatusUpdate(d *referral.StatusUpdateSessionData) {
	s.data.ReferralStatusUpdateData = d
	s.modified = true
}

// ClearStatusUpdate removes any in-progress status update
func (s *Session) ClearStatusUpdate() {
	if s.data.ReferralStatusUpdateData == nil {
		return
	}
	s.data.ReferralStatusUpdateData = nil
	s.modified = true
}

// RecentCaseListPath returns the last case list the user visited
func (s *Session) RecentCaseListPath() string {
	return s.data.RecentCaseListPath
}

// SetRecentCaseListPath remembers path as the last visited case list
func (s *Session) SetRecentCaseListPath(path string) {
	if s.data.RecentCaseListPath == path {
		return
	}
	s.data.RecentCaseListPath = path
	s.modified = true
}

// AddFlash queues message under key for the next rendered page
func (s *Session) AddFlash(key, message string) {
	if s.data.Flash == nil {
		s.data.Flash = make(map[string][]string)
	}
	s.data.Flash[key] = append(s.data.Flash[key], message)
	s.modified = true
}

// Flash returns and removes every message queued under key
func (s *Session) Flash(key string) []string {
	messages, ok := s.data.Flash[key]
	if !ok {
		return nil
	}
	delete(s.data.Flash, key)
	if len(s.data.Flash) == 0 {
		s.data.Flash = nil
	}
	s.modified = true
	return messages
}

// FirstFlash returns and removes the first message queued under key
func (s *Session) FirstFlash(key string) string {
	messages := s.Flash(key)
	if len(messages) == 0 {
		return ""
	}
	return messages[0]
}
