package store

import (
	"sync"
)

// User 会话用户
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// SessionStore 会话状态
// 保存当前用户身份和访问令牌,生命周期与登录/登出绑定
type SessionStore struct {
	mu           sync.RWMutex
	user         *User
	accessToken  string
	refreshToken string
}

// NewSessionStore 创建会话状态
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Begin 开始会话
func (s *SessionStore) Begin(user User, accessToken, refreshToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := user
	s.user = &u
	s.accessToken = accessToken
	s.refreshToken = refreshToken
}

// End 结束会话
func (s *SessionStore) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.accessToken = ""
	s.refreshToken = ""
}

// User 返回当前用户
func (s *SessionStore) User() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

// UserID 返回当前用户 ID,未登录时返回空串
func (s *SessionStore) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.ID
}

// AccessToken 返回当前访问令牌
func (s *SessionStore) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// Authenticated 判断是否已登录
func (s *SessionStore) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.accessToken != ""
}
