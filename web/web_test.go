package web_test

import (
	"SteamProfile/app"
	"SteamProfile/testhelpers"
	"SteamProfile/utils"
	"SteamProfile/web"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var csrfPattern = regexp.MustCompile(`name="_csrf" value="([^"]+)"`)

type browser struct {
	t      *testing.T
	base   string
	client *http.Client
	csrf   string
}

func newBrowser(t *testing.T, base string) *browser {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	b := &browser{t: t, base: base, client: &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}}
	status, body, _ := b.get("/login")
	require.Equal(t, http.StatusOK, status)
	match := csrfPattern.FindStringSubmatch(body)
	require.Len(t, match, 2, "login page carries a CSRF field")
	b.csrf = match[1]
	return b
}

func (b *browser) get(path string) (int, string, string) {
	b.t.Helper()
	resp, err := b.client.Get(b.base + path)
	require.NoError(b.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	return resp.StatusCode, string(body), resp.Header.Get("Location")
}

// post submits a form with the CSRF token and returns the status and redirect target
func (b *browser) post(path string, form url.Values) (int, string) {
	b.t.Helper()
	if form == nil {
		form = url.Values{}
	}
	if form.Get("_csrf") == "" {
		form.Set("_csrf", b.csrf)
	}
	resp, err := b.client.PostForm(b.base+path, form)
	require.NoError(b.t, err)
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, resp.Header.Get("Location")
}

func (b *browser) signUp(username string) {
	b.t.Helper()
	status, location := b.post("/register", url.Values{
		"username":        {username},
		"email":           {username + "@example.com"},
		"password":        {"password123"},
		"confirmPassword": {"password123"},
	})
	require.Equal(b.t, http.StatusSeeOther, status)
	require.Equal(b.t, "/login", location)

	status, location = b.post("/login", url.Values{"identifier": {username}, "password": {"password123"}})
	require.Equal(b.t, http.StatusSeeOther, status)
	require.Equal(b.t, "/profile/"+username, location)
}

func startSite(t *testing.T, svc *app.Services) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	web.NewSite(svc).Register(r, "test-cookie-key-0123456789abcdef", false)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv.URL
}

func localSite(t *testing.T) string {
	t.Helper()
	db := testhelpers.SetupTestDB(t)
	svc, err := app.NewLocal(app.LocalOptions{
		DB:         db,
		DriverName: "sqlite",
		JWT:        utils.NewJWTManager("secret", time.Hour),
		SessionTTL: time.Hour,
	})
	require.NoError(t, err)
	return startSite(t, svc)
}

func TestPostWithoutCSRFIsRejected(t *testing.T) {
	base := localSite(t)
	b := newBrowser(t, base)

	status, _ := b.post("/login", url.Values{"_csrf": {"forged"}, "identifier": {"x"}, "password": {"y"}})
	assert.Equal(t, http.StatusForbidden, status)

	other := newBrowser(t, base)
	status, _ = b.post("/login", url.Values{"_csrf": {other.csrf}, "identifier": {"x"}, "password": {"y"}})
	assert.Equal(t, http.StatusForbidden, status, "tokens are bound to the cookie session")
}

func TestPagesRequireLogin(t *testing.T) {
	b := newBrowser(t, localSite(t))

	status, _, location := b.get("/wallet")
	assert.Equal(t, http.StatusSeeOther, status)
	assert.Equal(t, "/login", location)

	status, _ = b.post("/login", url.Values{"identifier": {"nobody"}, "password": {"password123"}})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestLoginAndLogout(t *testing.T) {
	b := newBrowser(t, localSite(t))
	b.signUp("alice")

	status, body, _ := b.get("/profile/alice")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "<h1>alice</h1>")
	assert.Contains(t, body, "No pending requests")

	status, location := b.post("/logout", nil)
	assert.Equal(t, http.StatusSeeOther, status)
	assert.Equal(t, "/login", location)

	status, _, location = b.get("/profile/alice")
	assert.Equal(t, http.StatusSeeOther, status)
	assert.Equal(t, "/login", location)
}

func TestFriendActions(t *testing.T) {
	base := localSite(t)
	alice := newBrowser(t, base)
	alice.signUp("alice")
	bob := newBrowser(t, base)
	bob.signUp("bob")

	status, location := alice.post("/friends/request", url.Values{"username": {"bob"}, "back": {"/profile/bob"}})
	assert.Equal(t, http.StatusSeeOther, status)
	assert.Equal(t, "/profile/bob", location)

	_, body, _ := alice.get("/profile/bob")
	assert.Contains(t, body, "Cancel friend request")
	assert.Contains(t, body, "Friend request sent")

	_, body, _ = bob.get("/profile/bob")
	assert.Contains(t, body, `<a href="/profile/alice">alice</a>`)

	status, _ = bob.post("/friends/accept", url.Values{"username": {"alice"}})
	assert.Equal(t, http.StatusSeeOther, status)

	_, body, _ = bob.get("/profile/alice")
	assert.Contains(t, body, "Remove friend")
	assert.Contains(t, body, "Friends (1)")
}

func TestWalletAndShop(t *testing.T) {
	b := newBrowser(t, localSite(t))
	b.signUp("alice")

	b.post("/wallet/add", url.Values{"amount": {"100"}})
	_, body, _ := b.get("/wallet")
	assert.Contains(t, body, `<span id="balance">100.00</span>`)

	b.post("/wallet/add", url.Values{"amount": {"abc"}})
	_, body, _ = b.get("/wallet")
	assert.Contains(t, body, "Amount must be a number")

	_, body, _ = b.get("/shop")
	ids := regexp.MustCompile(`name="featureId" value="(\d+)"><button type="submit">Buy`).FindStringSubmatch(body)
	require.Len(t, ids, 2)

	b.post("/shop/purchase", url.Values{"featureId": {ids[1]}})
	_, body, _ = b.get("/shop")
	assert.Contains(t, body, "Feature purchased")
	assert.True(t, strings.Contains(body, `value="`+ids[1]+`"><button type="submit">Equip`))

	b.post("/shop/equip", url.Values{"featureId": {ids[1]}})
	_, body, _ = b.get("/shop")
	assert.True(t, strings.Contains(body, `value="`+ids[1]+`"><button type="submit">Unequip`))
}

func TestSiteOverRemoteServices(t *testing.T) {
	api := testhelpers.NewTestServer(t, nil)
	apiServer := httptest.NewServer(api.Router)
	t.Cleanup(apiServer.Close)

	base := startSite(t, app.NewRemote(apiServer.URL, apiServer.Client()))
	alice := newBrowser(t, base)
	alice.signUp("alice")
	bob := newBrowser(t, base)
	bob.signUp("bob")

	alice.post("/wallet/add", url.Values{"amount": {"42.50"}})
	_, body, _ := alice.get("/wallet")
	assert.Contains(t, body, `<span id="balance">42.50</span>`)

	_, body, _ = bob.get("/wallet")
	assert.Contains(t, body, `<span id="balance">0.00</span>`, "each browser acts with its own token")
}
