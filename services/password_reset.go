package services

import (
	"SteamProfile/apperrors"
	"SteamProfile/constants/economy"
	models "SteamProfile/models/postgres"
	"SteamProfile/repositories"
	"SteamProfile/utils"
	"context"
	"crypto/rand"
	"math/big"
	"strings"
	"time"

	"go.uber.org/zap"
)

// LocalPasswordResetService issues short numeric codes. Delivery of the code
// is left to the caller; the service only returns it.
type LocalPasswordResetService struct {
	store    *repositories.Store
	sessions *LocalSessionService
}

func NewPasswordResetService(store *repositories.Store, sessions *LocalSessionService) *LocalPasswordResetService {
	return &LocalPasswordResetService{store: store, sessions: sessions}
}

func generateResetCode() (string, error) {
	var b strings.Builder
	for i := 0; i < economy.ResetCodeLength; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", apperrors.NewInternal(err, "could not generate reset code")
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String(), nil
}

func (s *LocalPasswordResetService) RequestReset(ctx context.Context, email string) (string, error) {
	user, err := s.store.Users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return "", err
	}

	code, err := generateResetCode()
	if err != nil {
		return "", err
	}
	now := time.Now().UTC()
	err = s.store.PasswordResets.Create(ctx, &models.PasswordResetCode{
		UserID:    user.ID,
		Code:      code,
		ExpiresAt: now.Add(economy.ResetCodeValidity),
		CreatedAt: now,
	})
	if err != nil {
		return "", err
	}

	utils.GetLogger().Info("Password reset requested", zap.Uint("user_id", user.ID))
	return code, nil
}

func (s *LocalPasswordResetService) validCode(ctx context.Context, store *repositories.Store, email, code string) (*models.User, *models.PasswordResetCode, error) {
	user, err := store.Users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, nil, err
	}
	reset, err := store.PasswordResets.GetValid(ctx, user.ID, strings.TrimSpace(code), time.Now().UTC())
	if err != nil {
		return nil, nil, err
	}
	return user, reset, nil
}

func (s *LocalPasswordResetService) VerifyResetCode(ctx context.Context, email, code string) (bool, error) {
	_, _, err := s.validCode(ctx, s.store, email, code)
	if apperrors.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ResetPassword consumes the code, stores the new password and signs the user
// out everywhere
func (s *LocalPasswordResetService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	hashed, err := hashPassword(newPassword)
	if err != nil {
		return err
	}

	var userID uint
	err = s.store.Transaction(ctx, func(tx *repositories.Store) error {
		user, reset, err := s.validCode(ctx, tx, email, code)
		if apperrors.IsNotFound(err) {
			return apperrors.NewValidation("Invalid or expired reset code")
		}
		if err != nil {
			return err
		}
		userID = user.ID
		if err := tx.PasswordResets.MarkUsed(ctx, reset.ID); err != nil {
			return err
		}
		return tx.Users.UpdateFields(ctx, user.ID, map[string]interface{}{"password_hash": hashed})
	})
	if err != nil {
		return err
	}

	return s.sessions.EndAllSessions(ctx, userID)
}

// CleanupExpiredCodes drops codes past their validity
func (s *LocalPasswordResetService) CleanupExpiredCodes(ctx context.Context) (int64, error) {
	return s.store.PasswordResets.DeleteExpired(ctx, time.Now().UTC())
}
