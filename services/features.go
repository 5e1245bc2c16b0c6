package services

import (
	"SteamProfile/apperrors"
	models "SteamProfile/models/postgres"
	"SteamProfile/repositories"
	"SteamProfile/utils"
	"context"

	"go.uber.org/zap"
)

// LocalFeaturesService implements FeaturesService over the database
type LocalFeaturesService struct {
	store *repositories.Store
}

func NewFeaturesService(store *repositories.Store) *LocalFeaturesService {
	return &LocalFeaturesService{store: store}
}

func (s *LocalFeaturesService) GetAllFeatures(ctx context.Context) ([]models.Feature, error) {
	return s.store.Features.List(ctx)
}

func (s *LocalFeaturesService) GetUserFeatures(ctx context.Context, userID uint) ([]models.UserFeature, error) {
	return s.store.Features.ListForUser(ctx, userID)
}

// GetFeaturesByCategories groups the catalog by feature type
func (s *LocalFeaturesService) GetFeaturesByCategories(ctx context.Context, userID uint) (map[string][]models.UserFeature, error) {
	features, err := s.store.Features.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	categories := make(map[string][]models.UserFeature)
	for _, f := range features {
		categories[f.Type] = append(categories[f.Type], f)
	}
	return categories, nil
}

func (s *LocalFeaturesService) GetEquippedFeatures(ctx context.Context, userID uint) ([]models.Feature, error) {
	return s.store.Features.ListEquipped(ctx, userID)
}

func (s *LocalFeaturesService) IsFeaturePurchased(ctx context.Context, userID, featureID uint) (bool, error) {
	return s.store.Features.IsOwned(ctx, userID, featureID)
}

// PurchaseFeature debits the price and records ownership in one transaction.
// The debit only succeeds while the balance covers the price and the
// ownership row cannot be inserted twice, so concurrent purchases of the same
// feature charge at most once.
func (s *LocalFeaturesService) PurchaseFeature(ctx context.Context, userID, featureID uint) error {
	if userID == 0 || featureID == 0 {
		return apperrors.NewValidation("Invalid user or feature id")
	}

	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		owned, err := tx.Features.IsOwned(ctx, userID, featureID)
		if err != nil {
			return err
		}
		if owned {
			return apperrors.NewConflict("Feature already purchased")
		}

		feature, err := tx.Features.GetByID(ctx, featureID)
		if err != nil {
			return err
		}
		if _, err := tx.Users.GetByID(ctx, userID); err != nil {
			return err
		}
		if _, err := tx.Wallets.GetOrCreate(ctx, userID); err != nil {
			return err
		}

		debited, err := tx.Wallets.Debit(ctx, userID, feature.Price)
		if err != nil {
			return err
		}
		if !debited {
			return apperrors.NewValidation("Insufficient funds")
		}

		err = tx.Features.AddOwnership(ctx, userID, featureID)
		if apperrors.IsConflict(err) {
			return apperrors.NewConflict("Feature already purchased")
		}
		return err
	})
	if err != nil {
		return err
	}

	utils.GetLogger().Info("Feature purchased", zap.Uint("user_id", userID), zap.Uint("feature_id", featureID))
	return nil
}

// EquipFeature equips an owned feature, replacing whatever of the same type
// was equipped
func (s *LocalFeaturesService) EquipFeature(ctx context.Context, userID, featureID uint) error {
	return s.store.Transaction(ctx, func(tx *repositories.Store) error {
		owned, err := tx.Features.IsOwned(ctx, userID, featureID)
		if err != nil {
			return err
		}
		if !owned {
			return apperrors.NewValidation("Feature is not owned")
		}
		feature, err := tx.Features.GetByID(ctx, featureID)
		if err != nil {
			return err
		}
		if err := tx.Features.UnequipType(ctx, userID, feature.Type); err != nil {
			return err
		}
		return tx.Features.SetEquipped(ctx, userID, featureID, true)
	})
}

func (s *LocalFeaturesService) UnequipFeature(ctx context.Context, userID, featureID uint) error {
	return s.store.Features.SetEquipped(ctx, userID, featureID, false)
}
