package web

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"beautrip/internal/adapters/authprovider"
	"beautrip/internal/adapters/http/middleware"
	"beautrip/internal/application/orchestrators"
	domainAccount "beautrip/internal/domain/account"
	"beautrip/internal/logging"
)

// socialProviders are the OAuth providers offered on the login page.
var socialProviders = []string{"google", "kakao"}

const pkceCookieName = "beautrip_pkce"

// handleLoginForm handles GET /login
func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.renderLogin(w, r, http.StatusOK, "", "")
}

func (s *Server) renderLogin(w http.ResponseWriter, r *http.Request, status int, loginID, errMsg string) {
	s.renderTemplate(w, r, status, "login.html", map[string]any{
		"Title":     "로그인",
		"LoginID":   loginID,
		"Next":      r.FormValue("next"),
		"Error":     errMsg,
		"Social":    s.socialLoginEnabled(),
		"Providers": socialProviders,
	})
}

// handleLogin handles POST /login
// Form: login_id, password, next
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	input := orchestrators.LoginInput{}
	if isJSONBody(r) {
		var body struct {
			LoginID  string `json:"login_id"`
			Password string `json:"password"`
		}
		if err := strictDecode(r, &body); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		input.LoginID, input.Password = body.LoginID, body.Password
	} else {
		input.LoginID, input.Password = r.FormValue("login_id"), r.FormValue("password")
	}

	result, err := orchestrators.ExecuteLogin(r.Context(), input,
		orchestrators.LoginDeps{AccountStore: s.stores.Accounts})
	if err != nil {
		commandError(w, r, err, func(msg string) {
			s.renderLogin(w, r, http.StatusUnauthorized, input.LoginID, msg)
		})
		return
	}

	if err := s.startSession(w, middleware.Session{
		AccountID:   result.AccountID,
		LoginID:     result.LoginID,
		DisplayName: result.DisplayName,
		Role:        result.Role,
		Language:    result.Language,
	}); err != nil {
		internalError(w, r, err)
		return
	}
	if isJSONBody(r) {
		writeJSON(w, http.StatusOK, map[string]string{"account_id": result.AccountID, "role": result.Role})
		return
	}
	redirectBack(w, r, "/")
}

func (s *Server) startSession(w http.ResponseWriter, sess middleware.Session) error {
	token, err := s.sessions.Create(sess)
	if err != nil {
		return err
	}
	middleware.SetSessionCookie(w, token)
	return nil
}

// handleLogout handles POST /logout
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		s.sessions.Delete(cookie.Value)
	}
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		logging.FromContext(r.Context()).Info("auth_event", "event", "logout", "login_id", sess.LoginID)
	}
	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleSignupForm handles GET /signup
func (s *Server) handleSignupForm(w http.ResponseWriter, r *http.Request) {
	s.renderSignup(w, r, http.StatusOK, nil, "")
}

func (s *Server) renderSignup(w http.ResponseWriter, r *http.Request, status int, form map[string]string, errMsg string) {
	s.renderTemplate(w, r, status, "signup.html", map[string]any{
		"Title":     "회원가입",
		"Form":      form,
		"Error":     errMsg,
		"Languages": domainAccount.ValidLanguages,
		"Default":   s.locale(r).Code,
	})
}

// handleSignup handles POST /signup
// Form: login_id, password, password_confirm, email, language
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	input := orchestrators.SignupInput{
		LoginID:         r.FormValue("login_id"),
		Password:        r.FormValue("password"),
		PasswordConfirm: r.FormValue("password_confirm"),
		Email:           r.FormValue("email"),
		Language:        strings.ToUpper(r.FormValue("language")),
	}
	if !slices.Contains(domainAccount.ValidLanguages, input.Language) {
		input.Language = s.locale(r).Code
	}

	acct, err := orchestrators.ExecuteSignup(r.Context(), input, orchestrators.SignupDeps{
		AccountStore: s.stores.Accounts,
		Outbox:       s.outboxEnqueuer(),
		GenerateID:   s.generateID,
		Now:          s.now,
	})
	if err != nil {
		commandError(w, r, err, func(msg string) {
			s.renderSignup(w, r, http.StatusUnprocessableEntity, map[string]string{
				"login_id": input.LoginID,
				"email":    input.Email,
				"language": input.Language,
			}, msg)
		})
		return
	}

	if err := s.startSession(w, sessionFor(acct)); err != nil {
		internalError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// outboxEnqueuer returns nil when no outbox store is wired so signup skips email.
func (s *Server) outboxEnqueuer() orchestrators.OutboxEnqueuer {
	if s.stores.Outbox == nil {
		return nil
	}
	return s.stores.Outbox
}

func sessionFor(acct domainAccount.Account) middleware.Session {
	return middleware.Session{
		AccountID:   acct.ID,
		LoginID:     acct.LoginID,
		DisplayName: acct.DisplayName(),
		Role:        acct.Role,
		Language:    acct.PreferredLanguage,
	}
}

// handleAuthStart handles GET /auth/{provider}
// Stores a PKCE verifier in a short-lived cookie and redirects to the provider.
func (s *Server) handleAuthStart(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")
	if !s.socialLoginEnabled() || !slices.Contains(socialProviders, provider) {
		s.notFound(w, r)
		return
	}
	verifier, challenge, err := authprovider.NewVerifier()
	if err != nil {
		internalError(w, r, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     pkceCookieName,
		Value:    verifier,
		Path:     "/auth",
		HttpOnly: true,
		Secure:   middleware.SecureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   600,
	})
	http.Redirect(w, r, s.auth.AuthorizeURL(provider, s.publicURL(r)+"/auth/callback", challenge), http.StatusFound)
}

// handleAuthCallback handles GET /auth/callback?code=...
func (s *Server) handleAuthCallback(w http.ResponseWriter, r *http.Request) {
	if !s.socialLoginEnabled() {
		s.notFound(w, r)
		return
	}
	verifier := ""
	if cookie, err := r.Cookie(pkceCookieName); err == nil {
		verifier = cookie.Value
	}
	http.SetCookie(w, &http.Cookie{Name: pkceCookieName, Path: "/auth", MaxAge: -1})

	acct, err := orchestrators.ExecuteAuthCallback(r.Context(), orchestrators.AuthCallbackInput{
		Code:     r.URL.Query().Get("code"),
		Verifier: verifier,
		Language: s.locale(r).Code,
	}, orchestrators.AuthCallbackDeps{
		Provider:     s.auth,
		AccountStore: s.stores.Accounts,
		GenerateID:   s.generateID,
		Now:          s.now,
	})
	if err != nil {
		if !errors.Is(err, orchestrators.ErrMissingCode) {
			logErr(r, "auth_callback_failed", err)
		}
		s.renderLogin(w, r, http.StatusUnauthorized, "", "소셜 로그인에 실패했습니다. 다시 시도해주세요.")
		return
	}
	if err := s.startSession(w, sessionFor(acct)); err != nil {
		internalError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// publicURL is the configured external base URL or one derived from the request.
func (s *Server) publicURL(r *http.Request) string {
	if s.opts.PublicURL != "" {
		return strings.TrimRight(s.opts.PublicURL, "/")
	}
	scheme := "http"
	if r.TLS != nil || s.opts.SecureCookies {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
