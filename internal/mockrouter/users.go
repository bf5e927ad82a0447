package mockrouter

import (
	"encoding/json"
	"fmt"
	"net/http"

	"pizza-mock/internal/common/errors"
	"pizza-mock/internal/fixtures"
	"pizza-mock/internal/models"
)

type userListResponse struct {
	Users []*models.User `json:"users"`
	fixtures.PageInfo
}

// handleMe answers GET /api/user/me with the session user, or JSON null
// when nobody is logged in.
func (rt *Router) handleMe(w http.ResponseWriter, r *http.Request, _ params) {
	sess, err := rt.currentSession(r)
	if err != nil {
		rt.writeError(w, errors.NewBadRequestError("failed to load session", err.Error()))
		return
	}
	if sess == nil {
		rt.writeJSON(w, http.StatusOK, nil)
		return
	}
	rt.writeJSON(w, http.StatusOK, sess.User)
}

// handleListUsers answers GET /api/user with one page of the directory.
func (rt *Router) handleListUsers(w http.ResponseWriter, r *http.Request, _ params) {
	q := fixtures.ParsePageQuery(r.URL.Query())
	users, info := rt.store.FilterUsers(q)
	rt.writeJSON(w, http.StatusOK, userListResponse{Users: users, PageInfo: info})
}

// handleDeleteUser answers DELETE /api/user/:id.
func (rt *Router) handleDeleteUser(w http.ResponseWriter, r *http.Request, p params) {
	id := p[0]
	if !rt.store.RemoveUserByID(id) {
		rt.writeError(w, errors.NewNotFoundError(fmt.Sprintf("user with id %s not found", id)))
		return
	}
	rt.log.Info("user deleted", map[string]interface{}{"id": id})
	rt.writeJSON(w, http.StatusOK, map[string]string{"message": "user deleted", "id": id})
}

// handleUpdateUser answers PUT /api/user/:id. The patch body is merged
// into the session user; the directory entry is re-keyed when the email
// changes, so a later login uses the new credentials.
func (rt *Router) handleUpdateUser(w http.ResponseWriter, r *http.Request, _ params) {
	sess, err := rt.currentSession(r)
	if err != nil {
		rt.writeError(w, errors.NewBadRequestError("failed to load session", err.Error()))
		return
	}
	if sess == nil {
		rt.writeError(w, errors.NewUnauthorizedError("no active session"))
		return
	}

	body, err := readBody(r)
	if err != nil {
		rt.writeError(w, errors.NewBadRequestError("invalid request body", err.Error()))
		return
	}

	oldEmail := sess.User.Email
	updated := sess.User.Clone()
	if err := json.Unmarshal(body, updated); err != nil {
		rt.writeError(w, errors.NewBadRequestError("invalid update request", err.Error()))
		return
	}

	if updated.Email == "" {
		rt.writeError(w, errors.NewUnprocessableError("update dropped the email field"))
		return
	}

	if err := rt.store.ReplaceUser(oldEmail, updated); err != nil {
		rt.writeError(w, errors.NewConflictError("email already registered", err.Error()))
		return
	}
	sess.User = updated
	if err := rt.sessions.Set(r.Context(), sess); err != nil {
		rt.writeError(w, errors.NewBadRequestError("failed to store session", err.Error()))
		return
	}

	rt.log.Info("user updated", map[string]interface{}{"id": updated.ID, "email": updated.Email})
	rt.writeJSON(w, http.StatusOK, authResponse{User: updated, Token: sess.Token})
}
