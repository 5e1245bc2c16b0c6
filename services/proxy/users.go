package proxy

import (
	models "SteamProfile/models/postgres"
	"SteamProfile/services"
	"context"
	"net/url"
)

type UserServiceProxy struct {
	*ServiceProxy
}

func NewUserServiceProxy(base *ServiceProxy) *UserServiceProxy {
	return &UserServiceProxy{ServiceProxy: base}
}

func (p *UserServiceProxy) Register(ctx context.Context, input services.RegisterInput) (*models.User, error) {
	var user models.User
	if err := p.post(ctx, "/api/Users/register", nil, input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates and stores the token in the call's session
func (p *UserServiceProxy) Login(ctx context.Context, identifier, password string) (*services.LoginResult, error) {
	var result services.LoginResult
	err := p.post(ctx, "/api/Users/login", nil, services.LoginInput{Identifier: identifier, Password: password}, &result)
	if err != nil {
		return nil, err
	}
	user := result.User
	p.Session(ctx).Set(result.Token, result.SessionID, &user)
	return &result, nil
}

func (p *UserServiceProxy) Logout(ctx context.Context, sessionID string) error {
	session := p.Session(ctx)
	if err := p.post(ctx, "/api/Users/logout", nil, services.SessionRequest{SessionID: sessionID}, nil); err != nil {
		return err
	}
	if session.SessionID() == sessionID {
		session.Clear()
	}
	return nil
}

func (p *UserServiceProxy) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := p.get(ctx, idPath("/api/Users/%d", userID), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (p *UserServiceProxy) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := p.get(ctx, "/api/Users/by-username/"+url.PathEscape(username), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (p *UserServiceProxy) SearchUsers(ctx context.Context, query string) ([]models.User, error) {
	users := []models.User{}
	err := p.get(ctx, "/api/Users", url.Values{"search": {query}}, &users)
	return users, err
}

func (p *UserServiceProxy) UpdateProfile(ctx context.Context, userID uint, input services.ProfileInput) (*models.User, error) {
	var user models.User
	if err := p.put(ctx, idPath("/api/Users/%d/profile", userID), nil, input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (p *UserServiceProxy) UpdateUsername(ctx context.Context, userID uint, username, currentPassword string) error {
	return p.put(ctx, idPath("/api/Users/%d/username", userID), nil,
		services.UsernameInput{Username: username, CurrentPassword: currentPassword}, nil)
}

func (p *UserServiceProxy) UpdateEmail(ctx context.Context, userID uint, email, currentPassword string) error {
	return p.put(ctx, idPath("/api/Users/%d/email", userID), nil,
		services.EmailInput{Email: email, CurrentPassword: currentPassword}, nil)
}

func (p *UserServiceProxy) UpdatePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	return p.put(ctx, idPath("/api/Users/%d/password", userID), nil,
		services.PasswordChangeInput{CurrentPassword: currentPassword, NewPassword: newPassword}, nil)
}

func (p *UserServiceProxy) DeleteAccount(ctx context.Context, userID uint, password string) error {
	if err := p.delete(ctx, idPath("/api/Users/%d", userID), nil, services.PasswordConfirmation{Password: password}, nil); err != nil {
		return err
	}
	p.Session(ctx).Clear()
	return nil
}

type SessionServiceProxy struct {
	*ServiceProxy
}

func NewSessionServiceProxy(base *ServiceProxy) *SessionServiceProxy {
	return &SessionServiceProxy{ServiceProxy: base}
}

func (p *SessionServiceProxy) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	var session models.Session
	if err := p.get(ctx, "/api/Session/"+url.PathEscape(sessionID), nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (p *SessionServiceProxy) RestoreSession(ctx context.Context, sessionID string, userID uint) (*services.SessionDetails, error) {
	var details services.SessionDetails
	err := p.post(ctx, "/api/Session/restore", nil, services.SessionRequest{SessionID: sessionID, UserID: userID}, &details)
	if err != nil {
		return nil, err
	}
	return &details, nil
}

func (p *SessionServiceProxy) EndSession(ctx context.Context, sessionID string) error {
	return p.delete(ctx, "/api/Session/"+url.PathEscape(sessionID), nil, nil, nil)
}

func (p *SessionServiceProxy) EndAllSessions(ctx context.Context, userID uint) error {
	return p.delete(ctx, idPath("/api/Session/user/%d", userID), nil, nil, nil)
}

type PasswordResetServiceProxy struct {
	*ServiceProxy
}

func NewPasswordResetServiceProxy(base *ServiceProxy) *PasswordResetServiceProxy {
	return &PasswordResetServiceProxy{ServiceProxy: base}
}

// RequestReset returns the code only when the server is configured to expose it
func (p *PasswordResetServiceProxy) RequestReset(ctx context.Context, email string) (string, error) {
	var resp struct {
		Code string `json:"code"`
	}
	if err := p.post(ctx, "/api/PasswordReset/request", nil, services.ResetRequestInput{Email: email}, &resp); err != nil {
		return "", err
	}
	return resp.Code, nil
}

func (p *PasswordResetServiceProxy) VerifyResetCode(ctx context.Context, email, code string) (bool, error) {
	var resp struct {
		Valid bool `json:"valid"`
	}
	err := p.post(ctx, "/api/PasswordReset/verify", nil, services.ResetVerifyInput{Email: email, Code: code}, &resp)
	return resp.Valid, err
}

func (p *PasswordResetServiceProxy) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	return p.post(ctx, "/api/PasswordReset/reset", nil,
		services.ResetPasswordInput{Email: email, Code: code, NewPassword: newPassword}, nil)
}
