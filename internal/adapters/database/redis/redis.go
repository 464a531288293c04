package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Badsnus/qrgen-studio/internal/adapters/database/redis/drafts"
	"github.com/Badsnus/qrgen-studio/internal/adapters/database/redis/entitlements"
)

type Client struct {
	Drafts       *drafts.Storage
	Entitlements *entitlements.Storage

	clients []*redis.Client
}

type Options struct {
	Host     string
	Port     int
	Password string
}

// New connects one client per logical database: drafts in 0, entitlements in 1.
func New(ctx context.Context, opts Options) (*Client, error) {
	draftClient, err := connect(ctx, opts, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to ping draft storage: %w", err)
	}
	entitlementClient, err := connect(ctx, opts, 1)
	if err != nil {
		_ = draftClient.Close()
		return nil, fmt.Errorf("failed to ping entitlement storage: %w", err)
	}

	return &Client{
		Drafts:       drafts.NewStorage(draftClient),
		Entitlements: entitlements.NewStorage(entitlementClient),
		clients:      []*redis.Client{draftClient, entitlementClient},
	}, nil
}

func connect(ctx context.Context, opts Options, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func (c *Client) Close() error {
	var first error
	for _, client := range c.clients {
		if err := client.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
