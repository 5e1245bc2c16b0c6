// Package web is the server rendered site. It talks to the same service
// interfaces as the REST API, so it runs against the database or against a
// remote API depending on how app.Build wired the services.
package web

import (
	"SteamProfile/app"
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

const cookieName = "steamprofile"

// Site serves the pages
type Site struct {
	svc *app.Services
}

func NewSite(svc *app.Services) *Site {
	return &Site{svc: svc}
}

// Templates parses the embedded pages
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"csrfField": func(token string) template.HTML {
			return template.HTML(`<input type="hidden" name="` + csrfFormField + `" value="` + template.HTMLEscapeString(token) + `">`)
		},
	}).ParseFS(templatesFS, "templates/*.html"))
}

// Register mounts the session store, CSRF protection and every page on r.
// secure marks the cookie HTTPS only.
func (s *Site) Register(r *gin.Engine, cookieKey string, secure bool) {
	store := cookie.NewStore([]byte(cookieKey))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.SetHTMLTemplate(Templates())
	r.Use(sessions.Sessions(cookieName, store))
	r.Use(CSRF())

	r.GET("/", s.home)
	r.GET("/login", s.loginPage)
	r.POST("/login", s.login)
	r.GET("/register", s.registerPage)
	r.POST("/register", s.register)

	signedIn := r.Group("/")
	signedIn.Use(s.requireUser())
	{
		signedIn.POST("/logout", s.logout)
		signedIn.GET("/profile/:username", s.profile)

		signedIn.POST("/friends/request", s.sendFriendRequest)
		signedIn.POST("/friends/accept", s.acceptFriendRequest)
		signedIn.POST("/friends/reject", s.rejectFriendRequest)
		signedIn.POST("/friends/cancel", s.cancelFriendRequest)
		signedIn.POST("/friends/remove", s.removeFriend)

		signedIn.GET("/wallet", s.wallet)
		signedIn.POST("/wallet/add", s.addMoney)

		signedIn.GET("/shop", s.shop)
		signedIn.POST("/shop/purchase", s.purchase)
		signedIn.POST("/shop/equip", s.equip)
		signedIn.POST("/shop/unequip", s.unequip)
	}
}

func (s *Site) home(c *gin.Context) {
	if user, ok := currentUser(c); ok {
		c.Redirect(http.StatusSeeOther, "/profile/"+user.Username)
		return
	}
	c.Redirect(http.StatusSeeOther, "/login")
}
