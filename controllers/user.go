package controllers

import (
	"SteamProfile/apperrors"
	"SteamProfile/middleware"
	"SteamProfile/services"
	"SteamProfile/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

type UsersController struct {
	Users    services.UserService
	Sessions services.SessionService
}

// @Summary Register a new account
// @Description Creates the user and an empty wallet
// @Tags users
// @Accept json
// @Produce json
// @Param input body services.RegisterInput true "Account data"
// @Success 201 {object} postgres.User
// @Failure 400 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /api/Users/register [post]
func (uc *UsersController) Register(c *gin.Context) {
	var input services.RegisterInput
	if !bindJSON(c, &input) {
		return
	}
	user, err := uc.Users.Register(c.Request.Context(), input)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// @Summary Log in
// @Description Logs in with email or username and returns a JWT bound to a new session
// @Tags users
// @Accept json
// @Produce json
// @Param input body services.LoginInput true "Credentials"
// @Success 200 {object} services.LoginResult
// @Failure 401 {object} object{error=string}
// @Router /api/Users/login [post]
func (uc *UsersController) Login(c *gin.Context) {
	var input services.LoginInput
	if !bindJSON(c, &input) {
		return
	}
	result, err := uc.Users.Login(c.Request.Context(), input.Identifier, input.Password)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Log out
// @Description Ends a session of the caller, the current one when none is given
// @Tags users
// @Accept json
// @Produce json
// @Param input body services.SessionRequest false "Session to end"
// @Success 200 {object} object{message=string}
// @Router /api/Users/logout [post]
// @Security ApiKeyAuth
func (uc *UsersController) Logout(c *gin.Context) {
	var input services.SessionRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &input) {
		return
	}
	if input.SessionID == "" {
		input.SessionID = c.GetString(middleware.SessionIDKey)
	} else if !ownsSession(c, uc.Sessions, input.SessionID) {
		return
	}
	if err := uc.Users.Logout(c.Request.Context(), input.SessionID); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	message(c, "Successfully logged out")
}

// @Summary Current user
// @Tags users
// @Produce json
// @Success 200 {object} postgres.User
// @Router /api/Users/me [get]
// @Security ApiKeyAuth
func (uc *UsersController) Me(c *gin.Context) {
	caller, err := middleware.Caller(c)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	user, err := uc.Users.GetUserByID(c.Request.Context(), caller.ID)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Summary Search users
// @Description Lists users whose username contains the search text
// @Tags users
// @Produce json
// @Param search query string false "Part of a username"
// @Success 200 {array} postgres.User
// @Router /api/Users [get]
// @Security ApiKeyAuth
func (uc *UsersController) Search(c *gin.Context) {
	users, err := uc.Users.SearchUsers(c.Request.Context(), c.Query("search"))
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// @Summary Get a user by id
// @Tags users
// @Produce json
// @Param id path int true "User id"
// @Success 200 {object} postgres.User
// @Failure 404 {object} object{error=string}
// @Router /api/Users/{id} [get]
// @Security ApiKeyAuth
func (uc *UsersController) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := uc.Users.GetUserByID(c.Request.Context(), id)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Summary Get a user by username
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} postgres.User
// @Failure 404 {object} object{error=string}
// @Router /api/Users/by-username/{username} [get]
// @Security ApiKeyAuth
func (uc *UsersController) GetByUsername(c *gin.Context) {
	user, err := uc.Users.GetUserByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Summary Update profile
// @Description Changes the description and the profile picture; omitted fields are kept
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User id"
// @Param input body services.ProfileInput true "Profile fields"
// @Success 200 {object} postgres.User
// @Failure 403 {object} object{error=string}
// @Router /api/Users/{id}/profile [put]
// @Security ApiKeyAuth
func (uc *UsersController) UpdateProfile(c *gin.Context) {
	id, ok := self(c, "id")
	if !ok {
		return
	}
	var input services.ProfileInput
	if !bindJSON(c, &input) {
		return
	}
	user, err := uc.Users.UpdateProfile(c.Request.Context(), id, input)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Summary Change username
// @Description Requires the current password
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User id"
// @Param input body services.UsernameInput true "New username"
// @Success 200 {object} object{message=string}
// @Failure 401 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /api/Users/{id}/username [put]
// @Security ApiKeyAuth
func (uc *UsersController) UpdateUsername(c *gin.Context) {
	id, ok := self(c, "id")
	if !ok {
		return
	}
	var input services.UsernameInput
	if !bindJSON(c, &input) {
		return
	}
	if err := uc.Users.UpdateUsername(c.Request.Context(), id, input.Username, input.CurrentPassword); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	message(c, "Username updated")
}

// @Summary Change email
// @Description Requires the current password
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User id"
// @Param input body services.EmailInput true "New email"
// @Success 200 {object} object{message=string}
// @Failure 401 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /api/Users/{id}/email [put]
// @Security ApiKeyAuth
func (uc *UsersController) UpdateEmail(c *gin.Context) {
	id, ok := self(c, "id")
	if !ok {
		return
	}
	var input services.EmailInput
	if !bindJSON(c, &input) {
		return
	}
	if err := uc.Users.UpdateEmail(c.Request.Context(), id, input.Email, input.CurrentPassword); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	message(c, "Email updated")
}

// @Summary Change password
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User id"
// @Param input body services.PasswordChangeInput true "Current and new password"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Router /api/Users/{id}/password [put]
// @Security ApiKeyAuth
func (uc *UsersController) UpdatePassword(c *gin.Context) {
	id, ok := self(c, "id")
	if !ok {
		return
	}
	var input services.PasswordChangeInput
	if !bindJSON(c, &input) {
		return
	}
	if err := uc.Users.UpdatePassword(c.Request.Context(), id, input.CurrentPassword, input.NewPassword); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	message(c, "Password updated")
}

// @Summary Delete account
// @Description Deletes the caller's account and everything it owns. Requires the password.
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User id"
// @Param input body services.PasswordConfirmation true "Current password"
// @Success 200 {object} object{message=string}
// @Failure 401 {object} object{error=string}
// @Router /api/Users/{id} [delete]
// @Security ApiKeyAuth
func (uc *UsersController) Delete(c *gin.Context) {
	id, ok := self(c, "id")
	if !ok {
		return
	}
	var input services.PasswordConfirmation
	if !bindJSON(c, &input) {
		return
	}
	if input.Password == "" {
		utils.AbortWithError(c, apperrors.NewValidation("Password is required"))
		return
	}
	if err := uc.Users.DeleteAccount(c.Request.Context(), id, input.Password); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	message(c, "Account deleted")
}
