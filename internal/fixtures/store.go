// Package fixtures holds the in-memory data standing in for the real
// backend during isolated UI testing. A Store is scoped to one test
// context or one mock-server instance; nothing survives the run.
package fixtures

import (
	"fmt"
	"sync"

	"pizza-mock/internal/models"
)

// Store is the explicit fixture-store object passed into the router
// constructor. All mutations stay inside this object.
type Store struct {
	mu sync.Mutex

	users     map[string]*models.User // keyed by email
	userOrder []string                // emails in insertion order, for stable listings

	franchises []*models.Franchise
	menu       []models.MenuItem

	nextUserID      int
	nextFranchiseID int
	nextStoreID     int
	nextOrderID     int
}

// NewStore returns an empty fixture store. Use the Seed helpers to load
// the canonical data sets.
func NewStore() *Store {
	return &Store{
		users:           make(map[string]*models.User),
		nextUserID:      1,
		nextFranchiseID: 1,
		nextStoreID:     1,
		nextOrderID:     1,
	}
}

// ---- users ----

// UserByEmail returns a copy of the user stored under email.
func (s *Store) UserByEmail(email string) (*models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	return u.Clone(), ok
}

// AddUser inserts a user under its email key. The email must not already
// be present in the directory.
func (s *Store) AddUser(u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[u.Email]; exists {
		return fmt.Errorf("email %s already registered", u.Email)
	}
	s.users[u.Email] = u.Clone()
	s.userOrder = append(s.userOrder, u.Email)
	if id := parseNumericID(u.ID); id >= s.nextUserID {
		s.nextUserID = id + 1
	}
	return nil
}

// NextUserID allocates the next user id as a string.
func (s *Store) NextUserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextUserID
	s.nextUserID++
	return fmt.Sprintf("%d", id)
}

// UserCount returns the number of users in the directory.
func (s *Store) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// Users returns all users in insertion order.
func (s *Store) Users() []*models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.User, 0, len(s.userOrder))
	for _, email := range s.userOrder {
		if u, ok := s.users[email]; ok {
			out = append(out, u.Clone())
		}
	}
	return out
}

// RemoveUserByID removes the user with the given id from the directory.
func (s *Store) RemoveUserByID(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, email := range s.userOrder {
		u, ok := s.users[email]
		if !ok || u.ID != id {
			continue
		}
		delete(s.users, email)
		s.userOrder = append(s.userOrder[:i], s.userOrder[i+1:]...)
		return true
	}
	return false
}

// ReplaceUser persists an updated user record, re-keying the directory
// when the email changed. The previous record at oldEmail is removed.
// Re-keying onto an email that already belongs to another user is
// rejected, leaving both records untouched.
func (s *Store) ReplaceUser(oldEmail string, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if oldEmail != u.Email {
		if _, taken := s.users[u.Email]; taken {
			return fmt.Errorf("email %s already registered", u.Email)
		}
		delete(s.users, oldEmail)
		for i, email := range s.userOrder {
			if email == oldEmail {
				s.userOrder[i] = u.Email
				break
			}
		}
	}
	s.users[u.Email] = u.Clone()
	return nil
}

// ---- franchises ----

// Franchises returns all franchises in fixture order.
func (s *Store) Franchises() []*models.Franchise {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Franchise, 0, len(s.franchises))
	for _, f := range s.franchises {
		out = append(out, f.Clone())
	}
	return out
}

// FranchisesByAdmin returns the franchises administered by the user.
func (s *Store) FranchisesByAdmin(userID string) []*models.Franchise {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*models.Franchise{}
	for _, f := range s.franchises {
		if f.AdministeredBy(userID) {
			out = append(out, f.Clone())
		}
	}
	return out
}

// CreateFranchise assigns the next franchise id and an empty store list.
func (s *Store) CreateFranchise(name string, admins []models.FranchiseAdmin) *models.Franchise {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := &models.Franchise{
		ID:     s.nextFranchiseID,
		Name:   name,
		Stores: []models.Store{},
		Admins: admins,
	}
	s.nextFranchiseID++
	s.franchises = append(s.franchises, f)
	return f.Clone()
}

// AddFranchise inserts a preloaded fixture franchise.
func (s *Store) AddFranchise(f *models.Franchise) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.franchises = append(s.franchises, f.Clone())
	if f.ID >= s.nextFranchiseID {
		s.nextFranchiseID = f.ID + 1
	}
	for _, st := range f.Stores {
		if st.ID >= s.nextStoreID {
			s.nextStoreID = st.ID + 1
		}
	}
}

// RemoveFranchise deletes the franchise with the given id.
func (s *Store) RemoveFranchise(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, f := range s.franchises {
		if f.ID == id {
			s.franchises = append(s.franchises[:i], s.franchises[i+1:]...)
			return true
		}
	}
	return false
}

// CreateStore adds a store to the franchise and assigns the next store id.
func (s *Store) CreateStore(franchiseID int, name string) (*models.Store, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.franchises {
		if f.ID != franchiseID {
			continue
		}
		st := models.Store{ID: s.nextStoreID, Name: name}
		s.nextStoreID++
		f.Stores = append(f.Stores, st)
		return &st, true
	}
	return nil, false
}

// RemoveStore deletes a store from the franchise.
func (s *Store) RemoveStore(franchiseID, storeID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.franchises {
		if f.ID != franchiseID {
			continue
		}
		for i, st := range f.Stores {
			if st.ID == storeID {
				f.Stores = append(f.Stores[:i], f.Stores[i+1:]...)
				return true
			}
		}
	}
	return false
}

// ---- menu and orders ----

// Menu returns the static menu list.
func (s *Store) Menu() []models.MenuItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.MenuItem, len(s.menu))
	copy(out, s.menu)
	return out
}

// SetMenu replaces the static menu list.
func (s *Store) SetMenu(items []models.MenuItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menu = make([]models.MenuItem, len(items))
	copy(s.menu, items)
}

// NextOrderID allocates the next order id.
func (s *Store) NextOrderID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextOrderID
	s.nextOrderID++
	return id
}

func parseNumericID(id string) int {
	n := 0
	for _, c := range id {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
	}
	return n
}
