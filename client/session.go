package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/muhammadheryan/marketplace/model"
	"github.com/muhammadheryan/marketplace/utils/logger"
	"go.uber.org/zap"
)

// Session is what the client remembers between runs. It is never refreshed:
// it lives until logout, account deletion, or the first 401.
type Session struct {
	Token string            `json:"token"`
	User  *model.UserEntity `json:"user"`
}

type Store interface {
	// Load returns nil, nil when nothing is stored.
	Load() (*Session, error)
	Save(s *Session) error
	Clear() error
}

// Navigator moves the user to the login screen.
type Navigator interface {
	ToLogin()
}

type NavigatorFunc func()

func (f NavigatorFunc) ToLogin() { f() }

type MemoryStore struct {
	mu      sync.Mutex
	session *Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil, nil
	}
	s := *m.session
	return &s, nil
}

func (m *MemoryStore) Save(s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.session = &cp
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}

// FileStore keeps the session as JSON in a single file readable only by its owner.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load() (*Session, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}

func (f *FileStore) Save(s *Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return os.Rename(tmp, f.path)
}

func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// Manager is the single owner of the client session.
type Manager struct {
	store     Store
	navigator Navigator
}

// NewManager wires a store and a navigator; a nil navigator makes Logout only clear.
func NewManager(store Store, navigator Navigator) *Manager {
	return &Manager{store: store, navigator: navigator}
}

func (m *Manager) current() *Session {
	s, err := m.store.Load()
	if err != nil {
		logger.Warn("[Manager] load session", zap.String("error", err.Error()))
		return nil
	}
	return s
}

// IsLoggedIn only checks that a token is present; it does not validate it.
func (m *Manager) IsLoggedIn() bool {
	return m.Token() != ""
}

func (m *Manager) Token() string {
	if s := m.current(); s != nil {
		return s.Token
	}
	return ""
}

func (m *Manager) User() *model.UserEntity {
	if s := m.current(); s != nil {
		return s.User
	}
	return nil
}

func (m *Manager) Save(token string, user *model.UserEntity) error {
	return m.store.Save(&Session{Token: token, User: user})
}

func (m *Manager) Clear() error {
	return m.store.Clear()
}

// Logout clears the session unconditionally and sends the user to login.
func (m *Manager) Logout() {
	if err := m.store.Clear(); err != nil {
		logger.Warn("[Manager] clear session", zap.String("error", err.Error()))
	}
	if m.navigator != nil {
		m.navigator.ToLogin()
	}
}
