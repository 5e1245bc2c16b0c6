package web

import (
	"SteamProfile/apperrors"
	"SteamProfile/utils"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// render fills in what every page needs: the CSRF token, the signed in user
// and the pending flash messages
func render(c *gin.Context, status int, name string, data gin.H) {
	data["csrf"] = CSRFToken(c)
	if user, ok := currentUser(c); ok {
		data["me"] = user
	}

	session := sessions.Default(c)
	if flashes := session.Flashes(); len(flashes) > 0 {
		data["flashes"] = flashes
		if err := session.Save(); err != nil {
			utils.GetLogger().Warn("Could not consume flashes", zap.Error(err))
		}
	}
	c.HTML(status, name, data)
}

func renderError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		utils.GetLogger().Error("page failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	render(c, status, "error.html", gin.H{"status": status, "error": err.Error()})
}

func flash(c *gin.Context, message string) {
	session := sessions.Default(c)
	session.AddFlash(message)
	if err := session.Save(); err != nil {
		utils.GetLogger().Warn("Could not save flash", zap.Error(err))
	}
}

// done redirects after a form post, flashing err when the action failed
func done(c *gin.Context, err error, success, target string) {
	if err != nil {
		flash(c, err.Error())
	} else if success != "" {
		flash(c, success)
	}
	c.Redirect(http.StatusSeeOther, target)
}
