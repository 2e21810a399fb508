package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pathxpress/internal/models"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
}

// SessionData is one authenticated portal session, keyed by an opaque
// token.
type SessionData struct {
	UserID    uint      `json:"user_id"`
	Role      string    `json:"role"`
	ClientID  *uint     `json:"client_id"`
	CreatedAt time.Time `json:"created_at"`
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Session management
func (c *Client) SetSession(token string, data *SessionData, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	return c.rdb.Set(ctx, "session:"+token, jsonData, ttl).Err()
}

func (c *Client) GetSession(token string) (*SessionData, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "session:"+token).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("session not found")
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session SessionData
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	return &session, nil
}

func (c *Client) DeleteSession(token string) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, "session:"+token).Err()
}

// Service config cache. The settings service reads through this key
// and deletes it when an admin updates a setting.
const serviceConfigKey = "service_config"

func (c *Client) SetServiceConfig(cfg *models.ServiceConfig, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal service config: %w", err)
	}

	return c.rdb.Set(ctx, serviceConfigKey, jsonData, ttl).Err()
}

func (c *Client) GetServiceConfig() (*models.ServiceConfig, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, serviceConfigKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("service config not cached")
		}
		return nil, fmt.Errorf("failed to get service config: %w", err)
	}

	var cfg models.ServiceConfig
	if err := json.Unmarshal([]byte(val), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal service config: %w", err)
	}

	return &cfg, nil
}

func (c *Client) InvalidateServiceConfig() error {
	ctx := context.Background()
	return c.rdb.Del(ctx, serviceConfigKey).Err()
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
