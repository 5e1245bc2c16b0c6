package web

import (
	"SteamProfile/apperrors"
	models "SteamProfile/models/postgres"
	"context"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func (s *Site) wallet(c *gin.Context) {
	me, _ := currentUser(c)
	wallet, err := s.svc.Wallets.GetWallet(c.Request.Context(), me.ID)
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "wallet.html", gin.H{"wallet": wallet})
}

func (s *Site) addMoney(c *gin.Context) {
	amount, err := decimal.NewFromString(c.PostForm("amount"))
	if err != nil {
		done(c, apperrors.NewValidation("Amount must be a number"), "", "/wallet")
		return
	}
	me, _ := currentUser(c)
	err = s.svc.Wallets.AddMoney(c.Request.Context(), me.ID, amount)
	done(c, err, "Money added", "/wallet")
}

type shopCategory struct {
	Name     string
	Features []models.UserFeature
}

func (s *Site) shop(c *gin.Context) {
	ctx := c.Request.Context()
	me, _ := currentUser(c)

	byCategory, err := s.svc.Features.GetFeaturesByCategories(ctx, me.ID)
	if err != nil {
		renderError(c, err)
		return
	}
	balance, err := s.svc.Wallets.GetBalance(ctx, me.ID)
	if err != nil {
		renderError(c, err)
		return
	}

	categories := make([]shopCategory, 0, len(byCategory))
	for name, features := range byCategory {
		categories = append(categories, shopCategory{Name: name, Features: features})
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })

	render(c, http.StatusOK, "shop.html", gin.H{"categories": categories, "balance": balance})
}

func formFeatureID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.PostForm("featureId"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidation("Invalid feature id")
	}
	return uint(id), nil
}

func (s *Site) purchase(c *gin.Context) {
	s.featureAction(c, s.svc.Features.PurchaseFeature, "Feature purchased")
}

func (s *Site) equip(c *gin.Context) {
	s.featureAction(c, s.svc.Features.EquipFeature, "Feature equipped")
}

func (s *Site) unequip(c *gin.Context) {
	s.featureAction(c, s.svc.Features.UnequipFeature, "Feature unequipped")
}

func (s *Site) featureAction(c *gin.Context, action func(ctx context.Context, userID, featureID uint) error, success string) {
	featureID, err := formFeatureID(c)
	if err != nil {
		done(c, err, "", "/shop")
		return
	}
	me, _ := currentUser(c)
	done(c, action(c.Request.Context(), me.ID, featureID), success, "/shop")
}
