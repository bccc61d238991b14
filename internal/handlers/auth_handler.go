package handlers

import (
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"ecoquest/internal/security"
	"ecoquest/internal/service"

	"golang.org/x/oauth2"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService    *service.AuthService
	profileService *service.ProfileService
	emailService   *service.EmailService
	templates      *template.Template
	googleOAuth    *oauth2.Config
	baseURL        string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	authService *service.AuthService,
	profileService *service.ProfileService,
	emailService *service.EmailService,
	templates *template.Template,
	googleOAuth *oauth2.Config,
	baseURL string,
) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		profileService: profileService,
		emailService:   emailService,
		templates:      templates,
		googleOAuth:    googleOAuth,
		baseURL:        baseURL,
	}
}

func (h *AuthHandler) googleEnabled() bool {
	return h.googleOAuth != nil && h.googleOAuth.ClientID != "" && h.googleOAuth.ClientSecret != ""
}

func (h *AuthHandler) render(w http.ResponseWriter, name string, data interface{}) {
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("Error rendering %s: %v", name, err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// isLoggedIn reports whether the request carries a valid session
func (h *AuthHandler) isLoggedIn(r *http.Request) bool {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return false
	}
	_, err = h.authService.ValidateSession(cookie.Value)
	return err == nil
}

// Home redirects to the dashboard or the login page
func (h *AuthHandler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if h.isLoggedIn(r) {
		http.Redirect(w, r, "/home", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// ShowLogin renders the login page
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	if h.isLoggedIn(r) {
		http.Redirect(w, r, "/home", http.StatusSeeOther)
		return
	}
	h.render(w, "login.tmpl", LoginViewData{
		Title:       "Login",
		Success:     r.URL.Query().Get("message"),
		GoogleLogin: h.googleEnabled(),
	})
}

// Login handles login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	password := r.FormValue("password")
	remember := r.FormValue("remember") == "on"

	session, user, err := h.authService.Login(name, password)
	if err != nil {
		h.render(w, "login.tmpl", LoginViewData{
			Title:       "Login",
			Error:       "Invalid name or password",
			Name:        name,
			GoogleLogin: h.googleEnabled(),
		})
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, session.ID, session.ExpiresAt))

	if remember {
		if token, expires := h.authService.IssueRememberToken(user.ID); token != "" {
			http.SetCookie(w, security.CreateSessionCookie(r, RememberCookieName, token, expires))
		}
	}

	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

// ShowRegister renders the registration page
func (h *AuthHandler) ShowRegister(w http.ResponseWriter, r *http.Request) {
	if h.isLoggedIn(r) {
		http.Redirect(w, r, "/home", http.StatusSeeOther)
		return
	}
	h.render(w, "register.tmpl", RegisterViewData{
		Title:       "Join Us",
		GoogleLogin: h.googleEnabled(),
	})
}

// Register handles registration form submission
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	password := r.FormValue("password")
	email := strings.TrimSpace(r.FormValue("email"))
	ageValue := strings.TrimSpace(r.FormValue("age"))

	renderError := func(msg string) {
		h.render(w, "register.tmpl", RegisterViewData{
			Title:       "Join Us",
			Error:       msg,
			Name:        name,
			Email:       email,
			Age:         ageValue,
			GoogleLogin: h.googleEnabled(),
		})
	}

	age, err := strconv.Atoi(ageValue)
	if err != nil {
		renderError("Please tell us your age")
		return
	}

	user, err := h.authService.Register(r.Context(), h.emailService, name, password, age, email)
	if err != nil {
		renderError(err.Error())
		return
	}

	if err := h.profileService.EnsureWelcomeBadge(user.ID); err != nil {
		log.Printf("Failed to unlock welcome badge for user %d: %v", user.ID, err)
	}

	// Auto-login after registration
	session, _, err := h.authService.Login(name, password)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, session.ID, session.ExpiresAt))
	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

// Logout handles logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		_ = h.authService.Logout(cookie.Value)
	}

	http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
	http.SetCookie(w, security.CreateDeleteCookie(r, RememberCookieName))
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// ShowForgotPassword renders the password reset request page
func (h *AuthHandler) ShowForgotPassword(w http.ResponseWriter, r *http.Request) {
	h.render(w, "forgot_password.tmpl", ForgotPasswordViewData{Title: "Reset Password"})
}

// ForgotPassword handles the password reset request
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	if err := h.authService.RequestPasswordReset(r.Context(), h.emailService, email); err != nil {
		log.Printf("Password reset request failed: %v", err)
	}

	// Always the same response; never reveal whether the email exists
	h.render(w, "forgot_password.tmpl", ForgotPasswordViewData{
		Title:   "Reset Password",
		Success: "If an account exists for that email, a reset link is on its way.",
	})
}

// ShowResetPassword renders the new password form for a reset token
func (h *AuthHandler) ShowResetPassword(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	h.render(w, "reset_password.tmpl", ResetPasswordViewData{
		Title: "Choose a New Password",
		Token: token,
	})
}

// ResetPassword applies the new password for a valid reset token
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	token := r.FormValue("token")
	password := r.FormValue("password")
	confirm := r.FormValue("confirm_password")

	if password != confirm {
		h.render(w, "reset_password.tmpl", ResetPasswordViewData{
			Title: "Choose a New Password",
			Token: token,
			Error: "Passwords do not match",
		})
		return
	}

	if err := h.authService.ResetPassword(token, password); err != nil {
		h.render(w, "reset_password.tmpl", ResetPasswordViewData{
			Title: "Choose a New Password",
			Token: token,
			Error: err.Error(),
		})
		return
	}

	http.Redirect(w, r, "/login?message="+url.QueryEscape("Password updated. You can log in now."), http.StatusSeeOther)
}
