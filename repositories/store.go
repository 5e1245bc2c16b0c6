package repositories

import (
	"SteamProfile/apperrors"
	"context"

	"gorm.io/gorm"
)

// Store groups one repository per aggregate over the same handle. Inside
// Transaction every repository shares the transaction.
type Store struct {
	db *gorm.DB

	Users          *UserRepository
	Sessions       *SessionRepository
	PasswordResets *PasswordResetRepository
	Friendships    *FriendshipRepository
	FriendRequests *FriendRequestRepository
	Wallets        *WalletRepository
	Features       *FeatureRepository
	OwnedGames     *OwnedGameRepository
	Collections    *CollectionRepository
	Reviews        *ReviewRepository
	News           *NewsRepository
	Forum          *ForumRepository
	Achievements   *AchievementRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:             db,
		Users:          &UserRepository{DB: db},
		Sessions:       &SessionRepository{DB: db},
		PasswordResets: &PasswordResetRepository{DB: db},
		Friendships:    &FriendshipRepository{DB: db},
		FriendRequests: &FriendRequestRepository{DB: db},
		Wallets:        &WalletRepository{DB: db},
		Features:       &FeatureRepository{DB: db},
		OwnedGames:     &OwnedGameRepository{DB: db},
		Collections:    &CollectionRepository{DB: db},
		Reviews:        &ReviewRepository{DB: db},
		News:           &NewsRepository{DB: db},
		Forum:          &ForumRepository{DB: db},
		Achievements:   &AchievementRepository{DB: db},
	}
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn with a Store bound to a single transaction. Everything
// inside fn must go through tx; the outer Store may be waiting for the same
// connection.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
	if err == nil {
		return nil
	}
	return apperrors.FromDB(err, "transaction")
}
