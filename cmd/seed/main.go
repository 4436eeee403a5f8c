// Command seed loads the canteen's menu fixtures and a handful of demo
// users into the configured database. Safe to re-run: items are keyed by
// name, users by email.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"strings"
	"time"

	"github.com/jaswdr/faker"
	"github.com/schollz/progressbar/v3"

	"github.com/campuscanteen/canteen-api/internal/config"
	"github.com/campuscanteen/canteen-api/internal/menu"
	"github.com/campuscanteen/canteen-api/internal/storage"
	"github.com/campuscanteen/canteen-api/internal/user"
)

type fixture struct {
	name        string
	description string
	price       float64
	category    string
	vegetarian  bool
	prepMinutes int
}

var fixtures = []fixture{
	{"Paneer Tikka Wrap", "Char-grilled paneer with mint chutney in a whole-wheat wrap", 90, "Signature Wraps & Bites", true, 12},
	{"Chicken Shawarma Roll", "Spiced chicken, pickled onion and garlic sauce", 110, "Signature Wraps & Bites", false, 12},
	{"Falafel Bites", "Crisp chickpea fritters with tahini dip", 70, "Signature Wraps & Bites", true, 10},
	{"Buddha Bowl", "Quinoa, roasted vegetables, hummus and seeds", 130, "Wholesome Bowls & Greens", true, 15},
	{"Grilled Chicken Salad", "Leafy greens, grilled chicken, lemon dressing", 120, "Wholesome Bowls & Greens", false, 12},
	{"Masala Chai", "Strong milk tea with crushed spices", 20, "The Brew Bar", true, 5},
	{"Cold Coffee", "Blended iced coffee with a scoop of ice cream", 60, "The Brew Bar", true, 6},
	{"Espresso", "Double shot", 40, "The Brew Bar", true, 3},
	{"Chocolate Brownie", "Warm fudge brownie", 50, "Sweet Indulgences", true, 8},
	{"Gulab Jamun", "Two pieces, served warm", 40, "Sweet Indulgences", true, 5},
	{"Classic Belgian Waffle", "Maple syrup and butter", 80, "Waffles", true, 10},
	{"Nutella Waffle", "Hazelnut spread and banana", 95, "Waffles", true, 10},
	{"Veg Samosa", "Two pieces with tamarind chutney", 25, "Snacks", true, 6},
	{"French Fries", "Peri-peri seasoning", 55, "Snacks", true, 8},
}

func main() {
	demoUsers := flag.Int("users", 5, "number of demo users to create")
	flag.Parse()

	cfg := config.Load()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := storage.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	db := client.Database(cfg.MongoDB)
	if err := storage.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("ensure indexes: %v", err)
	}

	menuRepo := menu.NewMongoRepo(db)
	users := user.NewMongoRepo(db)

	existing, err := menuRepo.List(ctx, menu.Query{})
	if err != nil {
		log.Fatalf("list menu: %v", err)
	}
	have := make(map[string]bool, len(existing))
	for _, it := range existing {
		have[it.Name] = true
	}

	bar := progressbar.Default(int64(len(fixtures)), "menu items")
	created := 0
	for _, f := range fixtures {
		_ = bar.Add(1)
		if have[f.name] {
			continue
		}
		it := &menu.Item{
			Name:            f.name,
			Description:     f.description,
			Price:           f.price,
			Category:        f.category,
			Image:           "/images/" + slug(f.name) + ".jpg",
			IsVegetarian:    f.vegetarian,
			IsAvailable:     true,
			PreparationTime: f.prepMinutes,
		}
		if err := menuRepo.Create(ctx, it); err != nil {
			log.Fatalf("create %q: %v", f.name, err)
		}
		created++
	}
	log.Printf("menu: %d created, %d already present", created, len(fixtures)-created)

	f := faker.New()
	bar = progressbar.Default(int64(*demoUsers), "demo users")
	for i := 0; i < *demoUsers; i++ {
		_ = bar.Add(1)
		hash, err := user.HashPassword("password123")
		if err != nil {
			log.Fatalf("hash: %v", err)
		}
		u := &user.User{
			Name:     f.Person().Name(),
			Email:    f.Internet().Email(),
			Password: hash,
			Phone:    f.Phone().Number(),
			Role:     user.RoleUser,
		}
		if err := users.Create(ctx, u); err != nil {
			if errors.Is(err, user.ErrAlreadyExist) {
				continue
			}
			log.Fatalf("create user: %v", err)
		}
	}
	log.Printf("seed complete")
}

func slug(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, " ", "-")
	return s
}
