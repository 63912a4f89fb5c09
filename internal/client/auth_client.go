package client

import (
	"context"
	"fmt"
)

// AuthClient 认证服务客户端
type AuthClient struct {
	client *httpClient
}

// NewAuthClient 创建认证客户端
func NewAuthClient(baseURL string) *AuthClient {
	return &AuthClient{
		client: newHTTPClient(baseURL),
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken  string                 `json:"accessToken"`
	RefreshToken string                 `json:"refreshToken,omitempty"`
	User         map[string]interface{} `json:"user,omitempty"`
}

// Login 登录
func (c *AuthClient) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	req := LoginRequest{
		Email:    email,
		Password: password,
	}

	var resp LoginResponse
	if err := c.client.postJSON(ctx, "/auth/login", nil, req, &resp); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	return &resp, nil
}
