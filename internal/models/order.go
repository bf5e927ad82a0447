// internal/models/order.go
package models

// MenuItem is one pizza on the static menu.
type MenuItem struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// OrderItem is one line of a submitted order.
type OrderItem struct {
	ID          int     `json:"id,omitempty"`
	MenuID      int     `json:"menuId"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// Order is an order as submitted by the session user. StoreID stays a
// string because that is how the UI serializes its store selector.
type Order struct {
	ID          int         `json:"id,omitempty"`
	FranchiseID int         `json:"franchiseId"`
	StoreID     string      `json:"storeId"`
	Date        string      `json:"date,omitempty"`
	Items       []OrderItem `json:"items"`
}

// OrderReceipt is the response to placing an order: the order echoed back
// with a generated id, plus the JWT-shaped proof of purchase.
type OrderReceipt struct {
	Order Order  `json:"order"`
	JWT   string `json:"jwt"`
}

// OrderHistory is the session user's past orders.
type OrderHistory struct {
	DinerID string  `json:"dinerId"`
	Orders  []Order `json:"orders"`
	Page    int     `json:"page"`
}
