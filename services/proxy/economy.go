package proxy

import (
	models "SteamProfile/models/postgres"
	"SteamProfile/services"
	"context"

	"github.com/shopspring/decimal"
)

type WalletServiceProxy struct {
	*ServiceProxy
}

func NewWalletServiceProxy(base *ServiceProxy) *WalletServiceProxy {
	return &WalletServiceProxy{ServiceProxy: base}
}

func (p *WalletServiceProxy) GetWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := p.get(ctx, idPath("/api/Wallet/%d", userID), nil, &wallet); err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (p *WalletServiceProxy) GetBalance(ctx context.Context, userID uint) (decimal.Decimal, error) {
	var resp struct {
		Balance decimal.Decimal `json:"balance"`
	}
	err := p.get(ctx, idPath("/api/Wallet/%d/balance", userID), nil, &resp)
	return resp.Balance, err
}

func (p *WalletServiceProxy) GetPoints(ctx context.Context, userID uint) (int, error) {
	var resp struct {
		Points int `json:"points"`
	}
	err := p.get(ctx, idPath("/api/Wallet/%d/points", userID), nil, &resp)
	return resp.Points, err
}

func (p *WalletServiceProxy) AddMoney(ctx context.Context, userID uint, amount decimal.Decimal) error {
	return p.post(ctx, idPath("/api/Wallet/%d/add-money", userID), nil, services.AmountInput{Amount: amount}, nil)
}

type FeaturesServiceProxy struct {
	*ServiceProxy
}

func NewFeaturesServiceProxy(base *ServiceProxy) *FeaturesServiceProxy {
	return &FeaturesServiceProxy{ServiceProxy: base}
}

func (p *FeaturesServiceProxy) GetAllFeatures(ctx context.Context) ([]models.Feature, error) {
	features := []models.Feature{}
	err := p.get(ctx, "/api/Features", nil, &features)
	return features, err
}

func (p *FeaturesServiceProxy) GetUserFeatures(ctx context.Context, userID uint) ([]models.UserFeature, error) {
	features := []models.UserFeature{}
	err := p.get(ctx, idPath("/api/Features/user/%d", userID), nil, &features)
	return features, err
}

func (p *FeaturesServiceProxy) GetFeaturesByCategories(ctx context.Context, userID uint) (map[string][]models.UserFeature, error) {
	categories := map[string][]models.UserFeature{}
	err := p.get(ctx, idPath("/api/Features/user/%d/categories", userID), nil, &categories)
	return categories, err
}

func (p *FeaturesServiceProxy) GetEquippedFeatures(ctx context.Context, userID uint) ([]models.Feature, error) {
	features := []models.Feature{}
	err := p.get(ctx, idPath("/api/Features/user/%d/equipped", userID), nil, &features)
	return features, err
}

func (p *FeaturesServiceProxy) IsFeaturePurchased(ctx context.Context, userID, featureID uint) (bool, error) {
	var resp struct {
		Purchased bool `json:"purchased"`
	}
	err := p.get(ctx, idPath("/api/Features/purchased/%d/%d", userID, featureID), nil, &resp)
	return resp.Purchased, err
}

func (p *FeaturesServiceProxy) PurchaseFeature(ctx context.Context, userID, featureID uint) error {
	return p.post(ctx, "/api/Features/purchase", nil, services.FeatureRequest{UserID: userID, FeatureID: featureID}, nil)
}

func (p *FeaturesServiceProxy) EquipFeature(ctx context.Context, userID, featureID uint) error {
	return p.post(ctx, "/api/Features/equip", nil, services.FeatureRequest{UserID: userID, FeatureID: featureID}, nil)
}

func (p *FeaturesServiceProxy) UnequipFeature(ctx context.Context, userID, featureID uint) error {
	return p.post(ctx, "/api/Features/unequip", nil, services.FeatureRequest{UserID: userID, FeatureID: featureID}, nil)
}
