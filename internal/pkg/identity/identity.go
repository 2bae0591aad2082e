// Package identity keeps the front-end's read-only, cache-invalidated copies
// of the account and its WeChat link. The backend owns both records; a cache
// hit only ever delays how fresh the copy is, never who owns the truth.
package identity

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ResHubApp/ResHub/app/models"
	"github.com/ResHubApp/ResHub/internal/pkg/cache"
	"github.com/ResHubApp/ResHub/internal/pkg/token"
	"github.com/ResHubApp/ResHub/internal/pkg/wxauth"
)

const (
	userTTL = 30 * time.Second
	linkTTL = 30 * time.Second

	userKeyPrefix = "identity:user:"
	linkKeyPrefix = "identity:wxlink:"

	// notLinked marks a cached "no link" answer so it is distinguishable
	// from a cache miss.
	notLinked = "null"
)

type Service struct {
	backend wxauth.Backend
	store   cache.Store
}

func NewService(backend wxauth.Backend, store cache.Store) *Service {
	return &Service{backend: backend, store: store}
}

// cacheKeys derives per-account keys from the token's subject claim. A token
// we cannot peek into is served uncached.
func cacheKeys(accessToken string) (userKey, linkKey string, ok bool) {
	sub, _, err := token.Peek(accessToken)
	if err != nil || sub == "" {
		return "", "", false
	}
	return userKeyPrefix + sub, linkKeyPrefix + sub, true
}

// CurrentUser returns the account copy, from cache when fresh.
func (s *Service) CurrentUser(ctx context.Context, accessToken string) (*models.User, error) {
	userKey, _, cacheable := cacheKeys(accessToken)

	if cacheable {
		if raw, ok := s.store.Get(userKey); ok {
			var u models.User
			if json.Unmarshal([]byte(raw), &u) == nil {
				return &u, nil
			}
		}
	}

	u, err := s.backend.CurrentUser(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if raw, err := json.Marshal(u); err == nil {
			s.store.Set(userKey, string(raw), userTTL)
		}
	}
	return u, nil
}

// LinkStatus returns the current link copy, nil meaning unlinked. The
// unlinked answer is cached too, so settings-page polling does not hammer the
// backend.
func (s *Service) LinkStatus(ctx context.Context, accessToken string) (*wxauth.LinkRecord, error) {
	_, linkKey, cacheable := cacheKeys(accessToken)

	if cacheable {
		if raw, ok := s.store.Get(linkKey); ok {
			if raw == notLinked {
				return nil, nil
			}
			var rec wxauth.LinkRecord
			if json.Unmarshal([]byte(raw), &rec) == nil {
				return &rec, nil
			}
		}
	}

	rec, err := s.backend.LinkStatus(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if rec == nil {
			s.store.Set(linkKey, notLinked, linkTTL)
		} else if raw, err := json.Marshal(rec); err == nil {
			s.store.Set(linkKey, string(raw), linkTTL)
		}
	}
	return rec, nil
}

// Invalidate drops both copies after any flow that changes them (login, link,
// unlink). The next read goes to the backend.
func (s *Service) Invalidate(accessToken string) {
	userKey, linkKey, cacheable := cacheKeys(accessToken)
	if !cacheable {
		return
	}
	s.store.Delete(userKey)
	s.store.Delete(linkKey)
}
