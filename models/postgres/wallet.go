package postgres

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

/*
 * 'Wallet' holds the money balance and the achievement points of one user.
 * It is created lazily the first time it is read.
 */
type Wallet struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `gorm:"not null;uniqueIndex" json:"userId"`
	Balance   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"balance"`
	Points    int             `gorm:"not null;default:0" json:"points"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

/*
 * 'Feature' is a purchasable cosmetic. Metadata carries presentation details
 * (image path, colors, offsets) that the backend stores but never reads.
 */
type Feature struct {
	ID          uint            `gorm:"primaryKey" json:"featureId"`
	Name        string          `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Type        string          `gorm:"size:30;not null;index" json:"type"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"value"`
	Description string          `gorm:"size:500" json:"description"`
	Source      string          `gorm:"size:255" json:"source"`
	Metadata    datatypes.JSON  `json:"metadata,omitempty"`
}

// FeatureUser records that a user owns a feature. The composite key makes a
// second purchase of the same feature impossible.
type FeatureUser struct {
	UserID      uint      `gorm:"primaryKey;autoIncrement:false" json:"userId"`
	FeatureID   uint      `gorm:"primaryKey;autoIncrement:false" json:"featureId"`
	Equipped    bool      `gorm:"not null;default:false" json:"equipped"`
	PurchasedAt time.Time `json:"purchasedAt"`
}

func (FeatureUser) TableName() string {
	return "feature_users"
}

// UserFeature is a catalog entry seen from one user
type UserFeature struct {
	Feature
	Owned    bool `json:"owned"`
	Equipped bool `json:"equipped"`
}
