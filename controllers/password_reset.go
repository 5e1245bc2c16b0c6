package controllers

import (
	"SteamProfile/services"
	"SteamProfile/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

type PasswordResetController struct {
	Resets services.PasswordResetService
	// ExposeCodes returns the generated code in the response
	ExposeCodes bool
}

// @Summary Request a password reset code
// @Description Generates a 6 digit code valid for 15 minutes
// @Tags password
// @Accept json
// @Produce json
// @Param input body services.ResetRequestInput true "Account email"
// @Success 200 {object} object{message=string,code=string}
// @Failure 404 {object} object{error=string}
// @Router /api/PasswordReset/request [post]
func (pc *PasswordResetController) Request(c *gin.Context) {
	var input services.ResetRequestInput
	if !bindJSON(c, &input) {
		return
	}
	code, err := pc.Resets.RequestReset(c.Request.Context(), input.Email)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	body := gin.H{"message": "Reset code generated"}
	if pc.ExposeCodes {
		body["code"] = code
	}
	c.JSON(http.StatusOK, body)
}

// @Summary Verify a password reset code
// @Tags password
// @Accept json
// @Produce json
// @Param input body services.ResetVerifyInput true "Email and code"
// @Success 200 {object} object{valid=boolean}
// @Router /api/PasswordReset/verify [post]
func (pc *PasswordResetController) Verify(c *gin.Context) {
	var input services.ResetVerifyInput
	if !bindJSON(c, &input) {
		return
	}
	valid, err := pc.Resets.VerifyResetCode(c.Request.Context(), input.Email, input.Code)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": valid})
}

// @Summary Reset the password with a code
// @Description Consumes the code and ends every session of the account
// @Tags password
// @Accept json
// @Produce json
// @Param input body services.ResetPasswordInput true "Email, code and new password"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Router /api/PasswordReset/reset [post]
func (pc *PasswordResetController) Reset(c *gin.Context) {
	var input services.ResetPasswordInput
	if !bindJSON(c, &input) {
		return
	}
	if err := pc.Resets.ResetPassword(c.Request.Context(), input.Email, input.Code, input.NewPassword); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	message(c, "Password has been reset")
}
