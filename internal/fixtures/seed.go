package fixtures

import "pizza-mock/internal/models"

func revenue(v float64) *float64 { return &v }

// standardMenu is the fixed two-item menu every seed serves.
func standardMenu() []models.MenuItem {
	return []models.MenuItem{
		{ID: 1, Title: "Veggie", Image: "pizza1.png", Price: 0.0038, Description: "A garden of delight"},
		{ID: 2, Title: "Pepperoni", Image: "pizza2.png", Price: 0.0042, Description: "Spicy treat"},
	}
}

// SeedBasic loads the small user set and franchise list used by the core
// ordering flows: one diner, one franchisee, one admin.
func SeedBasic(s *Store) {
	users := []*models.User{
		{ID: "3", Name: "Kai Chen", Email: "d@jwt.com", Password: "a", Roles: []models.UserRole{{Role: models.RoleDiner}}},
		{ID: "4", Name: "Oscar George", Email: "f@jwt.com", Password: "a", Roles: []models.UserRole{{Role: models.RoleFranchisee}}},
		{ID: "5", Name: "Alice Smith", Email: "admin@jwt.com", Password: "a", Roles: []models.UserRole{{Role: models.RoleAdmin}}},
	}
	for _, u := range users {
		_ = s.AddUser(u)
	}

	s.AddFranchise(&models.Franchise{
		ID:   2,
		Name: "LotaPizza",
		Stores: []models.Store{
			{ID: 4, Name: "Lehi"},
			{ID: 5, Name: "Springville"},
			{ID: 6, Name: "American Fork"},
		},
	})
	s.AddFranchise(&models.Franchise{
		ID:     3,
		Name:   "PizzaCorp",
		Stores: []models.Store{{ID: 7, Name: "Spanish Fork"}},
		Admins: []models.FranchiseAdmin{{ID: "4", Name: "Oscar George", Email: "f@jwt.com"}},
	})
	s.AddFranchise(&models.Franchise{ID: 4, Name: "topSpot", Stores: []models.Store{}})

	s.SetMenu(standardMenu())
}

// SeedDirectory loads the fifteen-user admin directory and the
// revenue-bearing franchise list used by the admin listing flows.
func SeedDirectory(s *Store) {
	type entry struct {
		id, name, email, password string
		role                      models.Role
	}
	entries := []entry{
		{"1", "Alex Marin", "a@jwt.com", "admin", models.RoleAdmin},
		{"2", "Bella Cruz", "bella@jwt.com", "diner", models.RoleDiner},
		{"3", "Chase Nguyen", "chase@jwt.com", "diner", models.RoleDiner},
		{"4", "Dina Patel", "dina@jwt.com", "diner", models.RoleDiner},
		{"5", "Eli Romero", "eli@jwt.com", "diner", models.RoleDiner},
		{"6", "Fiona Brooks", "fiona@jwt.com", "diner", models.RoleDiner},
		{"7", "George Li", "george@jwt.com", "diner", models.RoleDiner},
		{"8", "Harper Singh", "harper@jwt.com", "diner", models.RoleDiner},
		{"9", "Isaac Turner", "isaac@jwt.com", "diner", models.RoleDiner},
		{"10", "Julia Vega", "julia@jwt.com", "diner", models.RoleDiner},
		{"11", "Kai Morgan", "kai@jwt.com", "diner", models.RoleDiner},
		{"12", "Leah Park", "leah@jwt.com", "diner", models.RoleDiner},
		{"13", "Mason Patel", "mason@jwt.com", "diner", models.RoleDiner},
		{"14", "Nora Diaz", "nora@jwt.com", "diner", models.RoleDiner},
		{"15", "Oliver Zhao", "oliver@jwt.com", "admin", models.RoleAdmin},
	}
	for _, e := range entries {
		_ = s.AddUser(&models.User{
			ID: e.id, Name: e.name, Email: e.email, Password: e.password,
			Roles: []models.UserRole{{Role: e.role}},
		})
	}

	franchises := []*models.Franchise{
		{ID: 1, Name: "pizzaPocket",
			Admins: []models.FranchiseAdmin{{ID: "4", Name: "pizza franchisee", Email: "f@jwt.com"}},
			Stores: []models.Store{{ID: 1, Name: "SLC", TotalRevenue: revenue(0)}}},
		{ID: 2, Name: "CheesyBites",
			Admins: []models.FranchiseAdmin{{ID: "5", Name: "cheese admin", Email: "c@jwt.com"}},
			Stores: []models.Store{{ID: 2, Name: "NYC", TotalRevenue: revenue(1000)}}},
		{ID: 3, Name: "SliceMasters",
			Admins: []models.FranchiseAdmin{{ID: "6", Name: "slice admin", Email: "s@jwt.com"}},
			Stores: []models.Store{{ID: 3, Name: "LA", TotalRevenue: revenue(500)}}},
		{ID: 4, Name: "DoughNation",
			Admins: []models.FranchiseAdmin{{ID: "7", Name: "dough admin", Email: "d@jwt.com"}},
			Stores: []models.Store{{ID: 4, Name: "Chicago", TotalRevenue: revenue(300)}}},
		{ID: 5, Name: "PepperoniKing",
			Admins: []models.FranchiseAdmin{{ID: "8", Name: "pepperoni admin", Email: "p@jwt.com"}},
			Stores: []models.Store{{ID: 5, Name: "Boston", TotalRevenue: revenue(700)}}},
	}
	for _, f := range franchises {
		s.AddFranchise(f)
	}

	s.SetMenu(standardMenu())
}
