package services

import (
	"SteamProfile/apperrors"
	"SteamProfile/constants/economy"
	models "SteamProfile/models/postgres"
	"SteamProfile/repositories"
	"context"

	"github.com/shopspring/decimal"
)

// LocalWalletService implements WalletService. Wallets are created on first use.
type LocalWalletService struct {
	store *repositories.Store
}

func NewWalletService(store *repositories.Store) *LocalWalletService {
	return &LocalWalletService{store: store}
}

func (s *LocalWalletService) GetWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	if userID == 0 {
		return nil, apperrors.NewValidation("Invalid user id")
	}
	return s.store.Wallets.GetOrCreate(ctx, userID)
}

func (s *LocalWalletService) GetBalance(ctx context.Context, userID uint) (decimal.Decimal, error) {
	wallet, err := s.GetWallet(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return wallet.Balance, nil
}

func (s *LocalWalletService) GetPoints(ctx context.Context, userID uint) (int, error) {
	wallet, err := s.GetWallet(ctx, userID)
	if err != nil {
		return 0, err
	}
	return wallet.Points, nil
}

// AddMoney credits amount, which must be in (0, MaxDeposit]
func (s *LocalWalletService) AddMoney(ctx context.Context, userID uint, amount decimal.Decimal) error {
	if !amount.IsPositive() || amount.GreaterThan(decimal.NewFromInt(economy.MaxDeposit)) {
		return apperrors.NewValidation("Amount must be greater than 0 and at most %d", economy.MaxDeposit)
	}
	return s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if _, err := tx.Wallets.GetOrCreate(ctx, userID); err != nil {
			return err
		}
		return tx.Wallets.Credit(ctx, userID, amount)
	})
}

// AddPoints credits achievement points
func (s *LocalWalletService) AddPoints(ctx context.Context, userID uint, points int) error {
	if points <= 0 {
		return apperrors.NewValidation("Points must be positive")
	}
	return s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if _, err := tx.Wallets.GetOrCreate(ctx, userID); err != nil {
			return err
		}
		return tx.Wallets.CreditPoints(ctx, userID, points)
	})
}
