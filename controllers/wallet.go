package controllers

import (
	"SteamProfile/services"
	"SteamProfile/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// WalletController only exposes the caller's own wallet
type WalletController struct {
	Wallets services.WalletService
}

// @Summary Get the caller's wallet
// @Tags wallet
// @Produce json
// @Param userId path int true "Caller id"
// @Success 200 {object} postgres.Wallet
// @Failure 403 {object} object{error=string}
// @Router /api/Wallet/{userId} [get]
// @Security ApiKeyAuth
func (wc *WalletController) Get(c *gin.Context) {
	userID, ok := self(c, "userId")
	if !ok {
		return
	}
	wallet, err := wc.Wallets.GetWallet(c.Request.Context(), userID)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, wallet)
}

// @Summary Wallet balance
// @Tags wallet
// @Produce json
// @Param userId path int true "Caller id"
// @Success 200 {object} object{balance=string}
// @Router /api/Wallet/{userId}/balance [get]
// @Security ApiKeyAuth
func (wc *WalletController) Balance(c *gin.Context) {
	userID, ok := self(c, "userId")
	if !ok {
		return
	}
	balance, err := wc.Wallets.GetBalance(c.Request.Context(), userID)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

// @Summary Wallet points
// @Tags wallet
// @Produce json
// @Param userId path int true "Caller id"
// @Success 200 {object} object{points=integer}
// @Router /api/Wallet/{userId}/points [get]
// @Security ApiKeyAuth
func (wc *WalletController) Points(c *gin.Context) {
	userID, ok := self(c, "userId")
	if !ok {
		return
	}
	points, err := wc.Wallets.GetPoints(c.Request.Context(), userID)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"points": points})
}

// @Summary Add money to the wallet
// @Description Deposits must be above 0 and at most 500
// @Tags wallet
// @Accept json
// @Produce json
// @Param userId path int true "Caller id"
// @Param input body services.AmountInput true "Amount"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Router /api/Wallet/{userId}/add-money [post]
// @Security ApiKeyAuth
func (wc *WalletController) AddMoney(c *gin.Context) {
	userID, ok := self(c, "userId")
	if !ok {
		return
	}
	var input services.AmountInput
	if !bindJSON(c, &input) {
		return
	}
	if err := wc.Wallets.AddMoney(c.Request.Context(), userID, input.Amount); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	message(c, "Money added")
}
