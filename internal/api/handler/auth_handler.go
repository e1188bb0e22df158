package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gigcircle/gigcircle/internal/api/metrics"
	"github.com/gigcircle/gigcircle/internal/core/domain"
	"github.com/gigcircle/gigcircle/internal/core/ports"
)

// CookieConfig describes the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

const DefaultCookieName = "gigcircle.sid"

type AuthHandler struct {
	auth     ports.AuthService
	sessions ports.SessionService
	media    ports.MediaStorage
	cookie   CookieConfig
	log      zerolog.Logger
}

func NewAuthHandler(auth ports.AuthService, sessions ports.SessionService, media ports.MediaStorage, cookie CookieConfig, log zerolog.Logger) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = DefaultCookieName
	}
	return &AuthHandler{auth: auth, sessions: sessions, media: media, cookie: cookie, log: log}
}

type loginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type registerForm struct {
	Username    string `form:"username"    validate:"required,max=254"`
	Password    string `form:"password"    validate:"required"`
	Name        string `form:"name"        validate:"max=200"`
	Role        string `form:"role"`
	Description string `form:"description"`
	Instrument  string `form:"instrument"`
}

var uploadFields = []string{"profile_picture", "video", "audio"}

// ShowLogin renders the login form.
//
// @Summary      Login page
// @Tags         auth
// @Produce      html
// @Success      200
// @Router       /login [get]
func (h *AuthHandler) ShowLogin(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", nil)
}

// ShowRegister renders the registration form.
//
// @Summary      Registration page
// @Tags         auth
// @Produce      html
// @Success      200
// @Router       /register [get]
func (h *AuthHandler) ShowRegister(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", nil)
}

// Login authenticates with email and password and starts a session.
// Every kind of credential failure gets the same redirect.
//
// @Summary      Log in
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Param        username  formData  string  true  "Email"
// @Param        password  formData  string  true  "Password"
// @Success      303  "Redirect to /profile, or back to /login on failure"
// @Failure      500  {string}  string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil || c.Validate(&form) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	user, err := h.auth.Authenticate(c.Request().Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}

	if err := h.startSession(c, user); err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.Redirect(http.StatusSeeOther, "/profile")
}

// Register creates an account from the multipart registration form and
// logs the new user in.
//
// @Summary      Register
// @Tags         auth
// @Accept       multipart/form-data
// @Param        username         formData  string  true   "Email"
// @Param        password         formData  string  true   "Password"
// @Param        name             formData  string  false  "Display name"
// @Param        role             formData  string  false  "musician, band_member or event_organizer"
// @Param        description      formData  string  false  "Description"
// @Param        instrument       formData  string  false  "Instrument"
// @Param        profile_picture  formData  file    false  "Profile picture"
// @Param        video            formData  file    false  "Video"
// @Param        audio            formData  file    false  "Audio"
// @Success      303  "Redirect to /profile, or to /login when the email is taken"
// @Failure      500  {string}  string
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil || c.Validate(&form) != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return c.Redirect(http.StatusSeeOther, "/register")
	}

	paths, err := saveUploads(c, h.media, h.log, uploadFields...)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return err
	}

	in := ports.RegisterInput{
		Email:          form.Username,
		Password:       form.Password,
		Name:           form.Name,
		Role:           domain.Role(form.Role),
		Description:    form.Description,
		ProfilePicture: paths["profile_picture"],
		Video:          paths["video"],
		Audio:          paths["audio"],
	}
	if s := strings.TrimSpace(form.Instrument); s != "" {
		in.Instrument = &s
	}

	user, err := h.auth.Register(c.Request().Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return err
	}

	if err := h.startSession(c, user); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	return c.Redirect(http.StatusSeeOther, "/profile")
}

// Logout ends the session and clears the cookie.
//
// @Summary      Log out
// @Tags         auth
// @Success      303  "Redirect to /"
// @Failure      500  {string}  string
// @Router       /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.cookie.Name); err == nil {
		if err := h.sessions.Destroy(c.Request().Context(), cookie.Value); err != nil {
			return err
		}
	}
	ClearSessionCookie(c, h.cookie)
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) startSession(c echo.Context, user *domain.User) error {
	token, err := h.sessions.Establish(c.Request().Context(), user)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookie.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearSessionCookie expires the session cookie on the client.
func ClearSessionCookie(c echo.Context, cfg CookieConfig) {
	c.SetCookie(&http.Cookie{
		Name:     cfg.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
