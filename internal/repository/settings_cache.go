package repository

import (
	"context"
	"time"

	"github.com/dailysync/standup-backend/internal/entity"
	gocache "github.com/patrickmn/go-cache"
)

var _ SettingsRepository = &SettingsCache{}

// SettingsCache decorates a SettingsRepository with an in-memory TTL cache.
// Settings are read on every advisory request but change rarely, so a short
// TTL keeps the database out of the hot path. Updates invalidate immediately.
type SettingsCache struct {
	inner SettingsRepository
	cache *gocache.Cache
}

func NewSettingsCache(inner SettingsRepository, ttl time.Duration) *SettingsCache {
	return &SettingsCache{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func setupKey(orgID string) string  { return "setup:" + orgID }
func configKey(orgID string) string { return "llm:" + orgID }

func (c *SettingsCache) GetSetup(ctx context.Context, orgID string) (*entity.OrganizationSetup, error) {
	if cached, ok := c.cache.Get(setupKey(orgID)); ok {
		setup := cached.(entity.OrganizationSetup)
		return &setup, nil
	}

	setup, err := c.inner.GetSetup(ctx, orgID)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(setupKey(orgID), *setup)
	return setup, nil
}

func (c *SettingsCache) GetLLMConfig(ctx context.Context, orgID string) (entity.LLMConfig, error) {
	if cached, ok := c.cache.Get(configKey(orgID)); ok {
		return cached.(entity.LLMConfig), nil
	}

	cfg, err := c.inner.GetLLMConfig(ctx, orgID)
	if err != nil {
		return entity.LLMConfig{}, err
	}
	c.cache.SetDefault(configKey(orgID), cfg)
	return cfg, nil
}

func (c *SettingsCache) UpdateLLMConfig(ctx context.Context, orgID string, cfg entity.LLMConfig) error {
	if err := c.inner.UpdateLLMConfig(ctx, orgID, cfg); err != nil {
		return err
	}
	c.cache.Delete(configKey(orgID))
	c.cache.Delete(setupKey(orgID))
	return nil
}
