package mockrouter

import (
	"net/http"
	"strconv"

	"pizza-mock/internal/common/errors"
	"pizza-mock/internal/fixtures"
	"pizza-mock/internal/models"
)

type franchiseListResponse struct {
	Franchises []*models.Franchise `json:"franchises"`
	fixtures.PageInfo
}

type createFranchiseRequest struct {
	Name   string                  `json:"name"`
	Admins []models.FranchiseAdmin `json:"admins"`
}

type createStoreRequest struct {
	Name string `json:"name"`
}

// handleListFranchises answers GET /api/franchise with one page of the
// franchise list, filtered and paginated like the user directory.
func (rt *Router) handleListFranchises(w http.ResponseWriter, r *http.Request, _ params) {
	q := fixtures.ParsePageQuery(r.URL.Query())
	franchises, info := rt.store.FilterFranchises(q)
	rt.writeJSON(w, http.StatusOK, franchiseListResponse{Franchises: franchises, PageInfo: info})
}

// handleCreateFranchise answers POST /api/franchise: next id, no stores.
func (rt *Router) handleCreateFranchise(w http.ResponseWriter, r *http.Request, _ params) {
	body, err := readBody(r)
	if err != nil {
		rt.writeError(w, errors.NewBadRequestError("invalid request body", err.Error()))
		return
	}
	var req createFranchiseRequest
	if err := unmarshalJSON(body, &req); err != nil {
		rt.writeError(w, errors.NewBadRequestError("invalid franchise request", err.Error()))
		return
	}

	f := rt.store.CreateFranchise(req.Name, req.Admins)
	rt.log.Info("franchise created", map[string]interface{}{"id": f.ID, "name": f.Name})
	rt.writeJSON(w, http.StatusOK, f)
}

// handleUserFranchises answers GET /api/franchise/:userId with the
// franchises the user administers.
func (rt *Router) handleUserFranchises(w http.ResponseWriter, r *http.Request, p params) {
	rt.writeJSON(w, http.StatusOK, rt.store.FranchisesByAdmin(p[0]))
}

// handleDeleteFranchise answers DELETE /api/franchise/:id. The UI treats
// the delete as fire-and-forget, so the reply is a message either way.
func (rt *Router) handleDeleteFranchise(w http.ResponseWriter, r *http.Request, p params) {
	id, _ := strconv.Atoi(p[0])
	rt.store.RemoveFranchise(id)
	rt.writeJSON(w, http.StatusOK, map[string]string{"message": "franchise deleted"})
}

// handleCreateStore answers POST /api/franchise/:id/store.
func (rt *Router) handleCreateStore(w http.ResponseWriter, r *http.Request, p params) {
	franchiseID, _ := strconv.Atoi(p[0])

	body, err := readBody(r)
	if err != nil {
		rt.writeError(w, errors.NewBadRequestError("invalid request body", err.Error()))
		return
	}
	var req createStoreRequest
	if err := unmarshalJSON(body, &req); err != nil {
		rt.writeError(w, errors.NewBadRequestError("invalid store request", err.Error()))
		return
	}

	st, ok := rt.store.CreateStore(franchiseID, req.Name)
	if !ok {
		rt.writeError(w, errors.NewNotFoundError("franchise not found"))
		return
	}
	rt.log.Info("store created", map[string]interface{}{"franchiseId": franchiseID, "storeId": st.ID})
	rt.writeJSON(w, http.StatusOK, st)
}

// handleDeleteStore answers DELETE /api/franchise/:id/store/:storeId.
func (rt *Router) handleDeleteStore(w http.ResponseWriter, r *http.Request, p params) {
	franchiseID, _ := strconv.Atoi(p[0])
	storeID, _ := strconv.Atoi(p[1])
	rt.store.RemoveStore(franchiseID, storeID)
	rt.writeJSON(w, http.StatusOK, map[string]string{"message": "store deleted"})
}
