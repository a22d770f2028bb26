package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"passkey_auth_ms/domain"

	"github.com/go-webauthn/webauthn/webauthn"
	"github.com/redis/go-redis/v9"
)

var ctx = context.Background()

// IChallengeService holds outstanding ceremony challenges server side, keyed
// by an opaque ceremony id. A challenge survives at most one Consume.
type IChallengeService interface {
	Store(kind domain.CeremonyKind, ceremonyID string, session *webauthn.SessionData) error
	Consume(kind domain.CeremonyKind, ceremonyID string) (*webauthn.SessionData, error)
}

type ChallengeService struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewChallengeService(rdb *redis.Client, ttl time.Duration) IChallengeService {
	return &ChallengeService{rdb: rdb, ttl: ttl}
}

func (s *ChallengeService) key(kind domain.CeremonyKind, ceremonyID string) string {
	return fmt.Sprintf("webauthn:%s:%s", kind, ceremonyID)
}

func (s *ChallengeService) Store(kind domain.CeremonyKind, ceremonyID string, session *webauthn.SessionData) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("%w: encode challenge: %v", domain.ErrStorage, err)
	}
	if err := s.rdb.Set(ctx, s.key(kind, ceremonyID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: store challenge: %v", domain.ErrStorage, err)
	}
	return nil
}

// Consume fetches and deletes in a single round trip so two completions
// racing for one challenge cannot both succeed.
func (s *ChallengeService) Consume(kind domain.CeremonyKind, ceremonyID string) (*webauthn.SessionData, error) {
	val, err := s.rdb.GetDel(ctx, s.key(kind, ceremonyID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrChallengeExpired
		}
		return nil, fmt.Errorf("%w: consume challenge: %v", domain.ErrStorage, err)
	}

	var session webauthn.SessionData
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("%w: decode challenge: %v", domain.ErrStorage, err)
	}
	return &session, nil
}
