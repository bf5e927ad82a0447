// internal/models/franchise.go
package models

// Store is one outlet of a franchise.
type Store struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	TotalRevenue *float64 `json:"totalRevenue,omitempty"`
}

// FranchiseAdmin identifies a user administering a franchise.
type FranchiseAdmin struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Franchise is one record in the franchise fixture list.
type Franchise struct {
	ID     int              `json:"id"`
	Name   string           `json:"name"`
	Stores []Store          `json:"stores"`
	Admins []FranchiseAdmin `json:"admins,omitempty"`
}

// Clone returns a deep copy of the franchise.
func (f *Franchise) Clone() *Franchise {
	if f == nil {
		return nil
	}
	cp := *f
	cp.Stores = make([]Store, len(f.Stores))
	copy(cp.Stores, f.Stores)
	if f.Admins != nil {
		cp.Admins = make([]FranchiseAdmin, len(f.Admins))
		copy(cp.Admins, f.Admins)
	}
	return &cp
}

// AdministeredBy reports whether the given user id appears in Admins.
func (f *Franchise) AdministeredBy(userID string) bool {
	for _, a := range f.Admins {
		if a.ID == userID {
			return true
		}
	}
	return false
}
