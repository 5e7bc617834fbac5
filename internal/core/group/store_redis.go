// Copyright (c) 2026 Jogakzip. All rights reserved.
// Author: dev@jogakzip.app

package group

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/jogakzip/api/internal/platform/constants"
)

// VisibilityCache caches is-public lookups for groups. A cache failure is
// never fatal; callers fall back to the relational store.
type VisibilityCache interface {

	/*
		Get returns the cached visibility of a group.

		Returns:
		  - bool: The cached isPublic value
		  - bool: True when the key was present
		  - error: Connectivity failures
	*/
	Get(context context.Context, groupID string) (bool, bool, error)

	// Set caches the visibility of a group with the standard TTL.
	Set(context context.Context, groupID string, isPublic bool) error

	// Invalidate drops the cached visibility after an update or delete.
	Invalidate(context context.Context, groupID string) error
}

// RedisVisibilityCache implements [VisibilityCache] using Redis.
type RedisVisibilityCache struct {
	client *redis.Client
}

// NewRedisVisibilityCache creates a Redis-backed group visibility cache.
func NewRedisVisibilityCache(client *redis.Client) *RedisVisibilityCache {
	return &RedisVisibilityCache{client: client}
}

// Get looks up the cached visibility flag.
func (cache *RedisVisibilityCache) Get(context context.Context, groupID string) (bool, bool, error) {
	key := constants.RedisPrefixGroupVisibility + groupID

	value, err := cache.client.Get(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, false, nil
		}
		return false, false, err
	}

	isPublic, err := strconv.ParseBool(value)
	if err != nil {
		return false, false, err
	}

	return isPublic, true, nil
}

// Set caches the visibility flag with the standard TTL.
func (cache *RedisVisibilityCache) Set(context context.Context, groupID string, isPublic bool) error {
	key := constants.RedisPrefixGroupVisibility + groupID
	return cache.client.Set(context, key, strconv.FormatBool(isPublic), constants.VisibilityCacheTTL).Err()
}

// Invalidate removes the cached visibility flag.
func (cache *RedisVisibilityCache) Invalidate(context context.Context, groupID string) error {
	key := constants.RedisPrefixGroupVisibility + groupID
	return cache.client.Del(context, key).Err()
}
