package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mzeinebou/edusmart/internal/auth"
	"github.com/mzeinebou/edusmart/internal/model"
)

const sessionCookieName = "session"

// requireAuth checks the session cookie against the token table and the
// current identity, and stores the identity in the request context.
func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		valid, err := h.store.ValidToken(cookie.Value)
		if err != nil {
			slog.Error("token lookup failed", "error", err)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		id := h.session.Identity()
		if !valid || id == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		ctx := model.ContextWithIdentity(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireGrader silently sends non-teachers back to the default view.
// No grading handler, and therefore no model call, is ever reached by a
// student identity.
func (h *Handler) requireGrader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := model.IdentityFromContext(r.Context())
		if id == nil || model.ResolveView(id.Role, model.ViewGrader) != model.ViewGrader {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		if ok, _ := h.store.ValidToken(cookie.Value); ok && h.session.Identity() != nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
	}
	h.render(w, r, "login.html", pageData{Role: model.RoleStudent})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	in := auth.Input{
		Email:     r.FormValue("email"),
		FirstName: r.FormValue("first_name"),
		LastName:  r.FormValue("last_name"),
		Role:      model.Role(r.FormValue("role")),
	}

	seq, ok := h.login.Begin()
	if !ok {
		// A submission is already pending; ignore the duplicate.
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	defer h.login.Finish(seq)

	id, err := auth.Login(h.policy, in)
	if err != nil {
		h.renderLoginError(w, r, in, err)
		return
	}

	if err := h.session.Login(id); err != nil {
		slog.Error("login persist failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	token, err := h.store.CreateToken()
	if err != nil {
		slog.Error("token create failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.config.SecureCookies,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		_ = h.store.DeleteToken(cookie.Value)
	}
	if err := h.session.Logout(); err != nil {
		slog.Error("logout failed", "error", err)
	}
	_ = h.store.DeleteAllTokens()

	// Abandon any in-flight flow; late results are discarded.
	h.quiz.tracker.Reset()
	h.grader.tracker.Reset()
	h.quiz.set(nil)
	h.grader.set(nil)

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.config.SecureCookies,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handler) renderLoginError(w http.ResponseWriter, r *http.Request, in auth.Input, err error) {
	var (
		vErr *auth.ValidationError
		aErr *auth.AccessDeniedError
	)
	msgID := "ErrInvalidEmail"
	switch {
	case errors.As(err, &vErr):
		if vErr.Field == "name" {
			msgID = "ErrMissingNames"
		}
	case errors.As(err, &aErr):
		msgID = "ErrAccessDenied"
	}

	h.renderStatus(w, r, http.StatusUnprocessableEntity, "login.html", pageData{
		Error:     msgID,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Role:      in.Role,
	})
}
