// Package session holds the client's authentication state. A single Store
// owns the token pair, the signed-in identity and the professor profile,
// persists them across runs, and tells the UI which screen set applies.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/flaviaglenda/turmas/internal/client/api"
	"github.com/flaviaglenda/turmas/internal/filex"
)

// Status is the coarse authentication state the UI branches on.
type Status int

const (
	// StatusLoading means Restore has not finished yet.
	StatusLoading Status = iota
	StatusUnauthenticated
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusUnauthenticated:
		return "unauthenticated"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// state is the on-disk snapshot of a session.
type state struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	Identity     *api.Identity  `json:"identity,omitempty"`
	Professor    *api.Professor `json:"professor,omitempty"`
}

// Store is the single owner of session state. It implements api.TokenSource,
// so token rotations done by the HTTP layer land back here and get persisted.
type Store struct {
	mu          sync.Mutex
	path        string
	status      Status
	st          state
	subscribers []func(Status)
	restoreOnce sync.Once
}

// NewStore creates a store that persists its state at path.
func NewStore(path string) *Store {
	return &Store{path: path, status: StatusLoading}
}

// Status returns the current authentication status.
func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Identity returns the signed-in identity, or nil.
func (s *Store) Identity() *api.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Identity
}

// Professor returns the signed-in professor profile, or nil.
func (s *Store) Professor() *api.Professor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Professor
}

// Subscribe registers fn to be called on every status change. The callback
// runs outside the store's lock.
func (s *Store) Subscribe(fn func(Status)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Tokens implements api.TokenSource.
func (s *Store) Tokens() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.AccessToken, s.st.RefreshToken
}

// SetTokens implements api.TokenSource. A rotated pair is persisted
// immediately so a restart does not resurrect revoked tokens.
func (s *Store) SetTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.AccessToken = access
	s.st.RefreshToken = refresh
	s.persistLocked()
}

// Restore loads the persisted session and validates it against the backend.
// It runs at most once per store; later calls are no-ops. A session that no
// longer validates is cleared rather than surfaced as an error.
func (s *Store) Restore(ctx context.Context, backend api.Backend) {
	s.restoreOnce.Do(func() {
		if !s.load() {
			s.Clear()
			return
		}

		identity, err := backend.CurrentIdentity(ctx)
		if err != nil {
			s.Clear()
			return
		}
		professor, err := backend.GetProfessor(ctx)
		if err != nil {
			s.Clear()
			return
		}

		s.mu.Lock()
		s.st.Identity = identity
		s.st.Professor = professor
		s.persistLocked()
		s.mu.Unlock()
		s.setStatus(StatusAuthenticated)
	})
}

// Set installs a freshly authenticated session.
func (s *Store) Set(sess *api.Session, professor *api.Professor) {
	s.mu.Lock()
	identity := sess.Identity
	s.st = state{
		AccessToken:  sess.Tokens.AccessToken,
		RefreshToken: sess.Tokens.RefreshToken,
		Identity:     &identity,
		Professor:    professor,
	}
	s.persistLocked()
	s.mu.Unlock()
	s.setStatus(StatusAuthenticated)
}

// Clear wipes the session from memory and disk.
func (s *Store) Clear() {
	s.mu.Lock()
	s.st = state{}
	os.Remove(s.path)
	s.mu.Unlock()
	s.setStatus(StatusUnauthenticated)
}

// SignOut revokes the session server-side and clears local state. The local
// clear happens even when the server call fails, so a dead server cannot
// trap the user in a session.
func (s *Store) SignOut(ctx context.Context, backend api.Backend) error {
	err := backend.SignOut(ctx)
	s.Clear()
	return err
}

// load reads the persisted state. It reports whether a usable token pair
// was found.
func (s *Store) load() bool {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return false
	}

	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		return false
	}
	if st.AccessToken == "" || st.RefreshToken == "" {
		return false
	}

	s.mu.Lock()
	s.st = st
	s.mu.Unlock()
	return true
}

func (s *Store) persistLocked() {
	if s.st.AccessToken == "" && s.st.RefreshToken == "" {
		return
	}
	data, err := json.MarshalIndent(s.st, "", "  ")
	if err != nil {
		return
	}
	_ = filex.WriteFileAtomic(s.path, data, 0o600)
}

func (s *Store) setStatus(status Status) {
	s.mu.Lock()
	changed := s.status != status
	s.status = status
	subs := make([]func(Status), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	if !changed {
		return
	}
	for _, fn := range subs {
		fn(status)
	}
}
