package mockrouter

import (
	"net/http"

	"pizza-mock/internal/common/errors"
	"pizza-mock/internal/common/validation"
	"pizza-mock/internal/models"
)

type verifyRequest struct {
	JWT string `json:"jwt"`
}

type verifyResponse struct {
	Message string                 `json:"message"`
	Payload map[string]interface{} `json:"payload"`
}

// handleMenu answers GET /api/order/menu with the fixed menu.
func (rt *Router) handleMenu(w http.ResponseWriter, r *http.Request, _ params) {
	rt.writeJSON(w, http.StatusOK, rt.store.Menu())
}

// handleCreateOrder answers POST /api/order: the submitted order is
// echoed back with a generated id and a signed proof of purchase.
func (rt *Router) handleCreateOrder(w http.ResponseWriter, r *http.Request, _ params) {
	body, err := readBody(r)
	if err != nil {
		rt.writeError(w, errors.NewBadRequestError("invalid request body", err.Error()))
		return
	}
	if err := validation.ValidateOrder(body); err != nil {
		rt.writeError(w, errors.NewBadRequestError("invalid order request", err.Error()))
		return
	}

	var order models.Order
	if err := unmarshalJSON(body, &order); err != nil {
		rt.writeError(w, errors.NewBadRequestError("invalid order request", err.Error()))
		return
	}

	order.ID = rt.store.NextOrderID()
	jwt, err := rt.tokens.OrderToken(order)
	if err != nil {
		rt.writeError(w, errors.NewBadRequestError("failed to issue order token", err.Error()))
		return
	}

	rt.log.Info("order placed", map[string]interface{}{
		"orderId":     order.ID,
		"franchiseId": order.FranchiseID,
		"items":       len(order.Items),
	})
	rt.writeJSON(w, http.StatusOK, models.OrderReceipt{Order: order, JWT: jwt})
}

// handleOrderHistory answers GET /api/order. Without a session this is a
// structured 401 rather than a hard failure.
func (rt *Router) handleOrderHistory(w http.ResponseWriter, r *http.Request, _ params) {
	sess, err := rt.currentSession(r)
	if err != nil {
		rt.writeError(w, errors.NewBadRequestError("failed to load session", err.Error()))
		return
	}
	if sess == nil {
		rt.writeError(w, errors.NewUnauthorizedError("order history requires a session"))
		return
	}

	history := models.OrderHistory{
		DinerID: sess.User.ID,
		Orders: []models.Order{
			{
				ID:          1,
				FranchiseID: 1,
				StoreID:     "1",
				Date:        "2024-06-05T05:14:40.000Z",
				Items: []models.OrderItem{
					{ID: 1, MenuID: 1, Description: "Veggie", Price: 0.05},
				},
			},
		},
		Page: 1,
	}
	rt.writeJSON(w, http.StatusOK, history)
}

// handleVerifyOrder answers POST /api/order/verify by checking the proof
// of purchase issued at order time.
func (rt *Router) handleVerifyOrder(w http.ResponseWriter, r *http.Request, _ params) {
	body, err := readBody(r)
	if err != nil {
		rt.writeError(w, errors.NewBadRequestError("invalid request body", err.Error()))
		return
	}
	var req verifyRequest
	if err := unmarshalJSON(body, &req); err != nil {
		rt.writeError(w, errors.NewBadRequestError("invalid verify request", err.Error()))
		return
	}

	payload, err := rt.tokens.VerifyOrderToken(req.JWT)
	if err != nil {
		rt.writeError(w, errors.NewBadRequestError("invalid jwt", err.Error()))
		return
	}
	rt.writeJSON(w, http.StatusOK, verifyResponse{Message: "valid", Payload: payload})
}
