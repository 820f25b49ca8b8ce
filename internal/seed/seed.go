package seed

import (
	"context"
	"log"

	"bazaar-orders/internal/domain"
	"bazaar-orders/internal/repo"
)

var defaultProducts = []domain.Product{
	{Name: "Fstq akbary", PricePerKg: 18500},
	{Name: "Noky irany brzhaw", PricePerKg: 4000},
	{Name: "Mewzh ozbaki", PricePerKg: 8000},
	{Name: "Tekalay charas", PricePerKg: 14000},
	{Name: "Gulla barozha", PricePerKg: 4500},
	{Name: "Tekala taybat", PricePerKg: 18000},
	{Name: "Ganma shami", PricePerKg: 4500},
	{Name: "Muqarmsh", PricePerKg: 4250},
	{Name: "Kolaka kam xwe", PricePerKg: 7000},
	{Name: "Gwez sax", PricePerKg: 6000},
	{Name: "Alibaba sada", PricePerKg: 4500},
	{Name: "Badam swer", PricePerKg: 14000},
	{Name: "Fstq ahmady", PricePerKg: 16500},
	{Name: "Kolakay spi", PricePerKg: 7500},
	{Name: "Gazo sada", PricePerKg: 15500},
}

var defaultUsers = []domain.User{
	{Username: "sender", Password: "sender123", Role: domain.RoleSender},
	{Username: "receiver", Password: "receiver123", Role: domain.RoleReceiver},
	{Username: "admin", Password: "admin123", Role: domain.RoleAdmin},
}

// Run creates the default users when missing and the default product list
// when the catalog is empty. Safe to call on every startup.
func Run(ctx context.Context, users repo.UserRepo, products repo.ProductRepo) error {
	for _, u := range defaultUsers {
		existing, err := users.FindByUsername(ctx, u.Username)
		if err != nil {
			return err
		}
		if existing == nil {
			user := u
			if err := users.CreateUser(ctx, &user); err != nil {
				return err
			}
			log.Printf("Created user: %s", user.Username)
		}
	}

	existing, err := products.ListProducts(ctx)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		for _, p := range defaultProducts {
			product := p
			if err := products.CreateProduct(ctx, &product); err != nil {
				return err
			}
			log.Printf("Created product: %s", product.Name)
		}
	}

	log.Println("Database seeded successfully")
	return nil
}
