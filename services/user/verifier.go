package user

import (
	"context"
	"errors"
	"fmt"

	userRepo "gearbook/database/repository/user"
	"gearbook/models"
	"gearbook/utils"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// TokenVerifier resolves a bearer token to an authenticated session. The
// route guard consumes this through an interface so it can be tested without
// Redis or Mongo behind it.
type TokenVerifier struct {
	Repo  userRepo.UserRepository
	Cache *redis.Client
}

// NewTokenVerifier builds the production verifier.
func NewTokenVerifier(repo userRepo.UserRepository, cache *redis.Client) *TokenVerifier {
	return &TokenVerifier{Repo: repo, Cache: cache}
}

// Verify checks the token signature, then matches its hash against the
// session cache, falling back to the user document on a cache miss. Returns
// the user ID and a session snapshot on success.
func (v *TokenVerifier) Verify(ctx context.Context, token string) (string, models.Session, error) {
	userID, role, err := utils.ExtractClaimsFromToken(token)
	if err != nil {
		return "", models.Session{}, fmt.Errorf("invalid token: %w", err)
	}

	computedHash := utils.HashToken(token)

	if v.Cache != nil {
		rec, err := utils.GetSession(ctx, v.Cache, userID)
		if err == nil {
			if rec.TokenHash != computedHash {
				return "", models.Session{}, errors.New("token mismatch")
			}
			// Refresh the TTL on a hit.
			_ = v.Cache.Expire(ctx, utils.AuthCachePrefix+userID, utils.AuthCacheTTL).Err()
			return userID, models.Session{Token: token, Role: rec.Role}, nil
		}
		if !errors.Is(err, redis.Nil) {
			utils.GetLogger().Warn("TokenVerifier: session cache lookup failed, falling back to DB",
				zap.Error(err))
		}
	}

	// Cache miss: check the stored token hash on the user document.
	usr, err := v.Repo.GetByIDWithProjection(userID, bson.M{"id": 1, "role": 1, "token_hash": 1, "email": 1})
	if err != nil || usr == nil {
		return "", models.Session{}, errors.New("authentication error")
	}
	if usr.TokenHash == "" || usr.TokenHash != computedHash {
		return "", models.Session{}, errors.New("token mismatch")
	}

	if v.Cache != nil {
		rec := utils.SessionRecord{TokenHash: computedHash, Role: usr.Role, Email: usr.Email}
		_ = utils.SaveSession(ctx, v.Cache, userID, rec)
	}

	// The role claim in the token must agree with the stored role.
	if usr.Role != role {
		return "", models.Session{}, errors.New("role mismatch")
	}

	return userID, models.Session{Token: token, Role: usr.Role}, nil
}
