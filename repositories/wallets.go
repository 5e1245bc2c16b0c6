package repositories

import (
	"SteamProfile/apperrors"
	models "SteamProfile/models/postgres"
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type WalletRepository struct {
	DB *gorm.DB
}

func (r *WalletRepository) GetByUserID(ctx context.Context, userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		return nil, apperrors.FromDB(err, "wallet")
	}
	return &wallet, nil
}

// GetOrCreate returns the user's wallet, creating an empty one the first time
func (r *WalletRepository) GetOrCreate(ctx context.Context, userID uint) (*models.Wallet, error) {
	wallet, err := r.GetByUserID(ctx, userID)
	if err == nil || !apperrors.IsNotFound(err) {
		return wallet, err
	}

	wallet = &models.Wallet{UserID: userID, Balance: decimal.Zero}
	err = apperrors.FromDB(r.DB.WithContext(ctx).Create(wallet).Error, "wallet")
	if apperrors.IsConflict(err) {
		// created concurrently
		return r.GetByUserID(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	return wallet, nil
}

func (r *WalletRepository) Credit(ctx context.Context, userID uint, amount decimal.Decimal) error {
	return r.update(ctx, userID, "balance", gorm.Expr("balance + ?", amount))
}

func (r *WalletRepository) CreditPoints(ctx context.Context, userID uint, points int) error {
	return r.update(ctx, userID, "points", gorm.Expr("points + ?", points))
}

// Debit subtracts amount only when the balance covers it. The check and the
// write are one statement, so concurrent debits cannot overdraw.
func (r *WalletRepository) Debit(ctx context.Context, userID uint, amount decimal.Decimal) (bool, error) {
	result := r.DB.WithContext(ctx).Model(&models.Wallet{}).
		Where("user_id = ? AND balance >= ?", userID, amount).
		Update("balance", gorm.Expr("balance - ?", amount))
	if result.Error != nil {
		return false, apperrors.FromDB(result.Error, "wallet")
	}
	return result.RowsAffected == 1, nil
}

// DebitPoints is Debit for points
func (r *WalletRepository) DebitPoints(ctx context.Context, userID uint, points int) (bool, error) {
	result := r.DB.WithContext(ctx).Model(&models.Wallet{}).
		Where("user_id = ? AND points >= ?", userID, points).
		Update("points", gorm.Expr("points - ?", points))
	if result.Error != nil {
		return false, apperrors.FromDB(result.Error, "wallet")
	}
	return result.RowsAffected == 1, nil
}

func (r *WalletRepository) update(ctx context.Context, userID uint, column string, expr interface{}) error {
	result := r.DB.WithContext(ctx).Model(&models.Wallet{}).Where("user_id = ?", userID).Update(column, expr)
	if result.Error != nil {
		return apperrors.FromDB(result.Error, "wallet")
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFound("wallet for user %d not found", userID)
	}
	return nil
}
