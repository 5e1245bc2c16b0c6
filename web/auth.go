package web

import (
	"SteamProfile/apperrors"
	models "SteamProfile/models/postgres"
	"SteamProfile/services"
	"SteamProfile/services/proxy"
	"SteamProfile/utils"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Cookie session keys
const (
	userIDKey    = "userId"
	usernameKey  = "username"
	tokenKey     = "token"
	sessionIDKey = "sessionId"
	userKey      = "webUser"
)

// requireUser restores the server side session named by the cookie. In remote
// mode the bearer token travels with the request context, so every proxy call
// made while handling the request acts for this user.
func (s *Site) requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, _ := session.Get(userIDKey).(uint)
		sessionID, _ := session.Get(sessionIDKey).(string)
		if userID == 0 || sessionID == "" {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		if s.svc.Remote {
			client := proxy.NewClientSession()
			token, _ := session.Get(tokenKey).(string)
			client.Set(token, sessionID, nil)
			ctx = proxy.WithSession(ctx, client)
			c.Request = c.Request.WithContext(ctx)
		}

		details, err := s.svc.Sessions.RestoreSession(ctx, sessionID, userID)
		if err != nil {
			if apperrors.IsUnauthorized(err) || apperrors.IsNotFound(err) {
				clearLogin(session)
				c.Redirect(http.StatusSeeOther, "/login")
				c.Abort()
				return
			}
			renderError(c, err)
			c.Abort()
			return
		}

		user := details.User
		c.Set(userKey, &user)
		c.Next()
	}
}

func currentUser(c *gin.Context) (*models.User, bool) {
	if value, ok := c.Get(userKey); ok {
		user, ok := value.(*models.User)
		return user, ok && user != nil
	}
	session := sessions.Default(c)
	userID, _ := session.Get(userIDKey).(uint)
	username, _ := session.Get(usernameKey).(string)
	if userID == 0 {
		return nil, false
	}
	return &models.User{ID: userID, Username: username}, true
}

func rememberLogin(session sessions.Session, result *services.LoginResult) error {
	session.Set(userIDKey, result.User.ID)
	session.Set(usernameKey, result.User.Username)
	session.Set(tokenKey, result.Token)
	session.Set(sessionIDKey, result.SessionID)
	return session.Save()
}

func clearLogin(session sessions.Session) {
	session.Delete(userIDKey)
	session.Delete(usernameKey)
	session.Delete(tokenKey)
	session.Delete(sessionIDKey)
	if err := session.Save(); err != nil {
		utils.GetLogger().Warn("Could not clear web session", zap.Error(err))
	}
}

func (s *Site) loginPage(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{"identifier": ""})
}

func (s *Site) login(c *gin.Context) {
	identifier := c.PostForm("identifier")
	password := c.PostForm("password")

	ctx := c.Request.Context()
	if s.svc.Remote {
		ctx = proxy.WithSession(ctx, proxy.NewClientSession())
	}
	result, err := s.svc.Users.Login(ctx, identifier, password)
	if err != nil {
		render(c, apperrors.HTTPStatus(err), "login.html", gin.H{"error": err.Error(), "identifier": identifier})
		return
	}
	if err := rememberLogin(sessions.Default(c), result); err != nil {
		renderError(c, apperrors.NewInternal(err, "Could not save the session"))
		return
	}
	c.Redirect(http.StatusSeeOther, "/profile/"+result.User.Username)
}

func (s *Site) registerPage(c *gin.Context) {
	render(c, http.StatusOK, "register.html", gin.H{})
}

func (s *Site) register(c *gin.Context) {
	input := services.RegisterInput{
		Username:    c.PostForm("username"),
		Email:       c.PostForm("email"),
		Password:    c.PostForm("password"),
		IsDeveloper: c.PostForm("isDeveloper") == "on",
	}
	if input.Password != c.PostForm("confirmPassword") {
		render(c, http.StatusBadRequest, "register.html", gin.H{"error": "Passwords do not match", "form": input})
		return
	}
	if _, err := s.svc.Users.Register(c.Request.Context(), input); err != nil {
		render(c, apperrors.HTTPStatus(err), "register.html", gin.H{"error": err.Error(), "form": input})
		return
	}
	flash(c, "Account created, you can log in now")
	c.Redirect(http.StatusSeeOther, "/login")
}

func (s *Site) logout(c *gin.Context) {
	session := sessions.Default(c)
	sessionID, _ := session.Get(sessionIDKey).(string)
	if err := s.svc.Users.Logout(c.Request.Context(), sessionID); err != nil && !apperrors.IsNotFound(err) {
		utils.GetLogger().Warn("Could not end session", zap.String("session_id", sessionID), zap.Error(err))
	}
	clearLogin(session)
	c.Redirect(http.StatusSeeOther, "/login")
}
