package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"fairTune/business/listener"
)

type TokenData struct {
	ListenerID string    `json:"listener_id"`
	Role       string    `json:"role"`
	Token      string    `json:"token"`
	IssuedAt   time.Time `json:"issued_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

type TokenRepository struct {
	client *redis.Client
}

var _ listener.SessionTokenStore = (*TokenRepository)(nil)

func NewTokenRepository(client *redis.Client) *TokenRepository {
	return &TokenRepository{
		client: client,
	}
}

func (r *TokenRepository) StoreToken(ctx context.Context, listenerID, role, token string, ttl time.Duration) error {
	key := fmt.Sprintf("token:listener:%s", listenerID)

	now := time.Now()
	data := TokenData{
		ListenerID: listenerID,
		Role:       role,
		Token:      token,
		IssuedAt:   now,
		ExpiresAt:  now.Add(ttl),
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal token data: %w", err)
	}

	err = r.client.Set(ctx, key, jsonData, ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to store token in Redis: %w", err)
	}

	// store a reverse lookup token -> listener_id for quick validation
	tokenKey := fmt.Sprintf("token:lookup:%s", token)
	err = r.client.Set(ctx, tokenKey, listenerID, ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to store token lookup: %w", err)
	}

	return nil
}

// GetTokenData retrieve token data by listener ID
func (r *TokenRepository) GetTokenData(ctx context.Context, listenerID string) (*TokenData, error) {
	key := fmt.Sprintf("token:listener:%s", listenerID)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.New("token not found")
		}
		return nil, fmt.Errorf("failed to get token from Redis: %w", err)
	}

	var tokenData TokenData
	err = json.Unmarshal([]byte(val), &tokenData)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal token data: %w", err)
	}

	return &tokenData, nil
}

// ValidateToken checks if a token exists and is valid
func (r *TokenRepository) ValidateToken(ctx context.Context, token string) (string, error) {
	tokenKey := fmt.Sprintf("token:lookup:%s", token)

	listenerID, err := r.client.Get(ctx, tokenKey).Result()
	if err != nil {
		if err == redis.Nil {
			return "", errors.New("token not found or expired")
		}
		return "", fmt.Errorf("failed to validate token: %w", err)
	}

	return listenerID, nil
}

// RevokeToken drops both directions of a listener's session token.
func (r *TokenRepository) RevokeToken(ctx context.Context, listenerID string) error {
	data, err := r.GetTokenData(ctx, listenerID)
	if err != nil {
		return err
	}

	tokenKey := fmt.Sprintf("token:lookup:%s", data.Token)
	if err := r.client.Del(ctx, tokenKey).Err(); err != nil {
		return fmt.Errorf("failed to drop token lookup: %w", err)
	}

	key := fmt.Sprintf("token:listener:%s", listenerID)
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to drop token: %w", err)
	}

	return nil
}
