package services

import (
	"SteamProfile/apperrors"
	"SteamProfile/constants/economy"
	models "SteamProfile/models/postgres"
	"SteamProfile/repositories"
	"SteamProfile/utils"
	"context"
	"net/mail"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// LocalUserService implements UserService over the database
type LocalUserService struct {
	store    *repositories.Store
	sessions *LocalSessionService
	jwt      *utils.JWTManager
}

func NewUserService(store *repositories.Store, sessions *LocalSessionService, jwt *utils.JWTManager) *LocalUserService {
	return &LocalUserService{store: store, sessions: sessions, jwt: jwt}
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperrors.NewInternal(err, "could not hash password")
	}
	return string(hashed), nil
}

func checkPassword(user *models.User, password string) error {
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return apperrors.NewUnauthorized("Invalid credentials")
	}
	return nil
}

func validateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return apperrors.NewValidation("Username is required")
	}
	if len(username) > economy.MaxUsernameLength {
		return apperrors.NewValidation("Username is longer than %d characters", economy.MaxUsernameLength)
	}
	return nil
}

func validateEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return apperrors.NewValidation("Invalid email address")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < economy.MinPasswordLength {
		return apperrors.NewValidation("Password must be at least %d characters", economy.MinPasswordLength)
	}
	return nil
}

func (s *LocalUserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := validateUsername(input.Username); err != nil {
		return nil, err
	}
	if err := validateEmail(input.Email); err != nil {
		return nil, err
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashed,
		IsDeveloper:  input.IsDeveloper,
	}
	err = s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := tx.Users.Create(ctx, user); err != nil {
			if apperrors.IsConflict(err) {
				return apperrors.NewConflict("Username or email already in use")
			}
			return err
		}
		_, err := tx.Wallets.GetOrCreate(ctx, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Info("User registered", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

func (s *LocalUserService) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	if strings.TrimSpace(identifier) == "" || password == "" {
		return nil, apperrors.NewValidation("Identifier and password are required")
	}

	user, err := s.store.Users.GetByEmailOrUsername(ctx, strings.TrimSpace(identifier))
	if apperrors.IsNotFound(err) {
		return nil, apperrors.NewUnauthorized("Invalid credentials")
	}
	if err != nil {
		return nil, err
	}
	if err := checkPassword(user, password); err != nil {
		return nil, err
	}

	session, err := s.sessions.CreateSession(ctx, user)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.store.Users.TouchLastLogin(ctx, user.ID, now); err != nil {
		utils.GetLogger().Warn("Could not record last login", zap.Uint("user_id", user.ID), zap.Error(err))
	}
	user.LastLogin = &now

	token, _, err := s.jwt.Issue(user.ID, user.Email, user.Username, session.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: *user, Token: token, SessionID: session.ID, ExpiresAt: session.ExpiresAt}, nil
}

func (s *LocalUserService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.EndSession(ctx, sessionID)
}

func (s *LocalUserService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	return s.store.Users.GetByID(ctx, userID)
}

func (s *LocalUserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.store.Users.GetByUsername(ctx, username)
}

func (s *LocalUserService) SearchUsers(ctx context.Context, query string) ([]models.User, error) {
	return s.store.Users.List(ctx, strings.TrimSpace(query))
}

func (s *LocalUserService) UpdateProfile(ctx context.Context, userID uint, input ProfileInput) (*models.User, error) {
	fields := map[string]interface{}{}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.ProfilePicture != nil {
		fields["profile_picture"] = *input.ProfilePicture
	}
	if len(fields) > 0 {
		if err := s.store.Users.UpdateFields(ctx, userID, fields); err != nil {
			return nil, err
		}
	}
	return s.store.Users.GetByID(ctx, userID)
}

// verified loads the user and checks the password they typed
func (s *LocalUserService) verified(ctx context.Context, userID uint, password string) (*models.User, error) {
	user, err := s.store.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := checkPassword(user, password); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUsername renames the user. Friend requests are keyed by username, so
// they are renamed in the same transaction.
func (s *LocalUserService) UpdateUsername(ctx context.Context, userID uint, username, currentPassword string) error {
	username = strings.TrimSpace(username)
	if err := validateUsername(username); err != nil {
		return err
	}
	user, err := s.verified(ctx, userID, currentPassword)
	if err != nil {
		return err
	}
	if user.Username == username {
		return nil
	}

	err = s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := tx.Users.UpdateFields(ctx, userID, map[string]interface{}{"username": username}); err != nil {
			if apperrors.IsConflict(err) {
				return apperrors.NewConflict("Username %s is taken", username)
			}
			return err
		}
		return tx.FriendRequests.RenameUser(ctx, user.Username, username)
	})
	if err != nil {
		return err
	}
	// cached sessions carry the username that authorizes inbox actions
	s.sessions.forgetUser(ctx, userID)
	return nil
}

func (s *LocalUserService) UpdateEmail(ctx context.Context, userID uint, email, currentPassword string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return err
	}
	if _, err := s.verified(ctx, userID, currentPassword); err != nil {
		return err
	}
	err := s.store.Users.UpdateFields(ctx, userID, map[string]interface{}{"email": email})
	if apperrors.IsConflict(err) {
		return apperrors.NewConflict("Email %s is already in use", email)
	}
	if err != nil {
		return err
	}
	s.sessions.forgetUser(ctx, userID)
	return nil
}

func (s *LocalUserService) UpdatePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	if _, err := s.verified(ctx, userID, currentPassword); err != nil {
		return err
	}
	hashed, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.store.Users.UpdateFields(ctx, userID, map[string]interface{}{"password_hash": hashed})
}

// DeleteAccount removes the user with everything they own and ends their sessions
func (s *LocalUserService) DeleteAccount(ctx context.Context, userID uint, password string) error {
	if _, err := s.verified(ctx, userID, password); err != nil {
		return err
	}

	var sessionIDs []string
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		ids, err := tx.Sessions.DeleteForUser(ctx, userID)
		if err != nil {
			return err
		}
		sessionIDs = ids
		return tx.Users.Delete(ctx, userID)
	})
	if err != nil {
		return err
	}

	s.sessions.forget(ctx, sessionIDs...)
	utils.GetLogger().Info("User deleted", zap.Uint("user_id", userID))
	return nil
}
