package mockrouter

import (
	"io"
	"net/http"

	"pizza-mock/internal/common/errors"
	"pizza-mock/internal/common/validation"
	"pizza-mock/internal/models"
)

type credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(r.Body)
}

// handleLogin answers PUT /api/auth. The session is replaced only on a
// successful credential match; a failed login leaves it untouched.
func (rt *Router) handleLogin(w http.ResponseWriter, r *http.Request, _ params) {
	body, err := readBody(r)
	if err != nil {
		rt.writeError(w, errors.NewBadRequestError("invalid request body", err.Error()))
		return
	}
	if err := validation.ValidateLogin(body); err != nil {
		rt.writeError(w, errors.NewBadRequestError("invalid login request", err.Error()))
		return
	}

	var creds credentials
	if err := unmarshalJSON(body, &creds); err != nil {
		rt.writeError(w, errors.NewBadRequestError("invalid login request", err.Error()))
		return
	}

	user, ok := rt.store.UserByEmail(creds.Email)
	if !ok || user.Password != creds.Password {
		rt.writeError(w, errors.NewUnauthorizedError("bad credentials"))
		return
	}

	sess := &models.Session{User: user, Token: rt.tokens.SessionToken()}
	if err := rt.sessions.Set(r.Context(), sess); err != nil {
		rt.writeError(w, errors.NewBadRequestError("failed to store session", err.Error()))
		return
	}

	rt.log.Info("login", map[string]interface{}{"email": creds.Email})
	rt.writeJSON(w, http.StatusOK, authResponse{User: user, Token: sess.Token})
}

// handleRegister answers POST /api/auth. A new user always gets the
// Diner role and the next directory id, and is logged in immediately.
func (rt *Router) handleRegister(w http.ResponseWriter, r *http.Request, _ params) {
	body, err := readBody(r)
	if err != nil {
		rt.writeError(w, errors.NewBadRequestError("invalid request body", err.Error()))
		return
	}
	if err := validation.ValidateRegister(body); err != nil {
		rt.writeError(w, errors.NewBadRequestError("invalid registration request", err.Error()))
		return
	}

	var creds credentials
	if err := unmarshalJSON(body, &creds); err != nil {
		rt.writeError(w, errors.NewBadRequestError("invalid registration request", err.Error()))
		return
	}

	if _, exists := rt.store.UserByEmail(creds.Email); exists {
		rt.writeError(w, errors.NewConflictError("email already registered", creds.Email))
		return
	}

	user := &models.User{
		ID:       rt.store.NextUserID(),
		Name:     creds.Name,
		Email:    creds.Email,
		Password: creds.Password,
		Roles:    []models.UserRole{{Role: models.RoleDiner}},
	}
	if err := rt.store.AddUser(user); err != nil {
		rt.writeError(w, errors.NewConflictError("email already registered", creds.Email))
		return
	}

	sess := &models.Session{User: user, Token: rt.tokens.SessionToken()}
	if err := rt.sessions.Set(r.Context(), sess); err != nil {
		rt.writeError(w, errors.NewBadRequestError("failed to store session", err.Error()))
		return
	}

	rt.log.Info("register", map[string]interface{}{"email": creds.Email, "id": user.ID})
	rt.writeJSON(w, http.StatusOK, authResponse{User: user, Token: sess.Token})
}

// handleLogout answers DELETE /api/auth. Clearing is unconditional, even
// with no active session.
func (rt *Router) handleLogout(w http.ResponseWriter, r *http.Request, _ params) {
	if err := rt.sessions.Clear(r.Context()); err != nil {
		rt.writeError(w, errors.NewBadRequestError("failed to clear session", err.Error()))
		return
	}
	rt.writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// currentSession fetches the active session, or nil when logged out.
func (rt *Router) currentSession(r *http.Request) (*models.Session, error) {
	return rt.sessions.Get(r.Context())
}
