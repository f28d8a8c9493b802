package conversation

import (
	"sync"

	"github.com/samber/do"
)

// Store keeps per-user conversational state. One state exists per user
// identity, created lazily on first access and held for the process
// lifetime. Lock/Unlock serialize whole requests per identity: the
// orchestration loop is not safe to run twice concurrently for the
// same user.
type Store interface {
	Lock(userID int64)
	Unlock(userID int64)

	History(userID int64) []Turn
	Append(userID int64, turns ...Turn)

	Language(userID int64) Language
	SetLanguage(userID int64, lang Language)
}

var _ Store = (*Service)(nil)

type Service struct {
	mu     sync.Mutex
	states map[int64]*state
}

type state struct {
	requestMu sync.Mutex

	turns    []Turn
	language Language
}

func New(_ *do.Injector) (*Service, error) {
	return &Service{
		states: map[int64]*state{},
	}, nil
}

func (s *Service) get(userID int64) *state {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.states[userID]
	if !ok {
		st = &state{}
		s.states[userID] = st
	}

	return st
}

func (s *Service) Lock(userID int64) {
	s.get(userID).requestMu.Lock()
}

func (s *Service) Unlock(userID int64) {
	s.get(userID).requestMu.Unlock()
}

func (s *Service) History(userID int64) []Turn {
	st := s.get(userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Turn, len(st.turns))
	copy(out, st.turns)

	return out
}

func (s *Service) Append(userID int64, turns ...Turn) {
	st := s.get(userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	st.turns = append(st.turns, turns...)
}

func (s *Service) Language(userID int64) Language {
	st := s.get(userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	return st.language
}

func (s *Service) SetLanguage(userID int64, lang Language) {
	st := s.get(userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	st.language = lang
}
