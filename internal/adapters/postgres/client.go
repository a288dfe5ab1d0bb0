package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Client owns the connection pool shared by the novel and profile stores
type Client struct {
	pool *pgxpool.Pool
}

// New connects and pings the database
func New(ctx context.Context, dsn string) (*Client, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	return &Client{pool: pool}, nil
}

// Close releases the pool
func (c *Client) Close() error {
	c.pool.Close()
	return nil
}

// Novels returns a repository for the novel stored under id
func (c *Client) Novels(id string) *NovelStore {
	return &NovelStore{pool: c.pool, id: id}
}

// Profiles returns the profile store
func (c *Client) Profiles() *ProfileStore {
	return &ProfileStore{pool: c.pool}
}
