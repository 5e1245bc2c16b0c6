package services

import (
	"SteamProfile/apperrors"
	models "SteamProfile/models/postgres"
	redis_models "SteamProfile/models/redis"
	"SteamProfile/repositories"
	redis_services "SteamProfile/services/redis"
	"SteamProfile/utils"
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LocalSessionService keeps sessions in SQL and mirrors them into Redis when
// a cache is configured. cache may be nil.
type LocalSessionService struct {
	store *repositories.Store
	cache *redis_services.RedisClient
	ttl   time.Duration
}

func NewSessionService(store *repositories.Store, cache *redis_services.RedisClient, ttl time.Duration) *LocalSessionService {
	return &LocalSessionService{store: store, cache: cache, ttl: ttl}
}

// CreateSession opens a new session for a user who just authenticated
func (s *LocalSessionService) CreateSession(ctx context.Context, user *models.User) (*models.Session, error) {
	now := time.Now().UTC()
	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
		LastSeen:  now,
	}
	if err := s.store.Sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	s.cacheSession(ctx, session, user)
	return session, nil
}

func (s *LocalSessionService) cacheSession(ctx context.Context, session *models.Session, user *models.User) {
	if s.cache == nil {
		return
	}
	cached := &redis_models.CachedSession{
		SessionID: session.ID,
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		ExpiresAt: session.ExpiresAt,
	}
	if err := s.cache.SaveSession(ctx, cached); err != nil {
		utils.GetLogger().Warn("Could not cache session", zap.String("session_id", session.ID), zap.Error(err))
	}
}

func (s *LocalSessionService) forget(ctx context.Context, sessionIDs ...string) {
	if s.cache == nil {
		return
	}
	for _, id := range sessionIDs {
		if err := s.cache.DeleteSession(ctx, id); err != nil {
			utils.GetLogger().Warn("Could not evict cached session", zap.String("session_id", id), zap.Error(err))
		}
	}
}

// forgetUser evicts every cached session of userID so the next restore reloads
// the account from SQL
func (s *LocalSessionService) forgetUser(ctx context.Context, userID uint) {
	if s.cache == nil {
		return
	}
	ids, err := s.store.Sessions.ListIDsForUser(ctx, userID)
	if err != nil {
		utils.GetLogger().Warn("Could not list sessions to evict", zap.Uint("user_id", userID), zap.Error(err))
		return
	}
	s.forget(ctx, ids...)
}

func (s *LocalSessionService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	session, err := s.store.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Expired(time.Now()) {
		return nil, apperrors.NewUnauthorized("Session expired")
	}
	return session, nil
}

// RestoreSession validates that the session is live and belongs to userID.
// The Redis copy answers first; SQL is the source of truth on a miss.
func (s *LocalSessionService) RestoreSession(ctx context.Context, sessionID string, userID uint) (*SessionDetails, error) {
	now := time.Now().UTC()

	if s.cache != nil {
		cached, err := s.cache.GetSession(ctx, sessionID)
		if err != nil {
			utils.GetLogger().Warn("Session cache unavailable", zap.Error(err))
		}
		if cached != nil && cached.UserID == userID && now.Before(cached.ExpiresAt) {
			if err := s.cache.TouchSession(ctx, sessionID, now); err != nil {
				utils.GetLogger().Warn("Could not record session activity", zap.Error(err))
			}
			return &SessionDetails{
				Session: models.Session{ID: cached.SessionID, UserID: cached.UserID, ExpiresAt: cached.ExpiresAt, LastSeen: now},
				User:    models.User{ID: cached.UserID, Username: cached.Username, Email: cached.Email},
			}, nil
		}
	}

	session, err := s.store.Sessions.Get(ctx, sessionID)
	if apperrors.IsNotFound(err) {
		return nil, apperrors.NewUnauthorized("Session not found")
	}
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, apperrors.NewUnauthorized("Session does not belong to this user")
	}
	if session.Expired(now) {
		return nil, apperrors.NewUnauthorized("Session expired")
	}

	user, err := s.store.Users.GetByID(ctx, userID)
	if apperrors.IsNotFound(err) {
		return nil, apperrors.NewUnauthorized("User no longer exists")
	}
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cacheSession(ctx, session, user)
		if err := s.cache.TouchSession(ctx, sessionID, now); err != nil {
			utils.GetLogger().Warn("Could not record session activity", zap.Error(err))
		}
	} else if err := s.store.Sessions.UpdateLastSeen(ctx, sessionID, now); err != nil {
		utils.GetLogger().Warn("Could not update last seen", zap.Error(err))
	}
	session.LastSeen = now

	return &SessionDetails{Session: *session, User: *user}, nil
}

func (s *LocalSessionService) EndSession(ctx context.Context, sessionID string) error {
	if err := s.store.Sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.forget(ctx, sessionID)
	return nil
}

func (s *LocalSessionService) EndAllSessions(ctx context.Context, userID uint) error {
	ids, err := s.store.Sessions.DeleteForUser(ctx, userID)
	if err != nil {
		return err
	}
	s.forget(ctx, ids...)
	return nil
}

// DeleteExpired purges sessions past their expiry
func (s *LocalSessionService) DeleteExpired(ctx context.Context) (int64, error) {
	return s.store.Sessions.DeleteExpired(ctx, time.Now().UTC())
}
