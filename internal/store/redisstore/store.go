// Package redisstore caches assembled analytics overviews. The analytics
// endpoint performs one AI call per refresh, so repeated dashboard loads
// within the TTL are served from redis instead.
package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/saludplus/consultas-backend/internal/analytics"
)

type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(addr, password string, db int, ttl time.Duration) *Store {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Store{rdb: rdb, ttl: ttl}
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

func overviewKey(days int) string {
	return fmt.Sprintf("analytics:overview:%d", days)
}

func (s *Store) GetOverview(ctx context.Context, days int) (*analytics.Overview, bool) {
	raw, err := s.rdb.Get(ctx, overviewKey(days)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Msg("analytics cache read failed")
		}
		return nil, false
	}
	var ov analytics.Overview
	if err := json.Unmarshal(raw, &ov); err != nil {
		log.Warn().Err(err).Msg("analytics cache entry corrupt")
		return nil, false
	}
	return &ov, true
}

func (s *Store) SetOverview(ctx context.Context, days int, ov *analytics.Overview) {
	raw, err := json.Marshal(ov)
	if err != nil {
		log.Warn().Err(err).Msg("analytics cache marshal failed")
		return
	}
	if err := s.rdb.Set(ctx, overviewKey(days), raw, s.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("analytics cache write failed")
	}
}
