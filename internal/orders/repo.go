package orders

import (
	"context"

	"github.com/ariefcatur/go-cart-sidebar/internal/storefront"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo reads the product catalog.
type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, sku, name, section, price_cents, available, created_at, updated_at
                                FROM products ORDER BY section, sku`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Section, &p.PriceCents, &p.Available, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Menu lists available products with a positive price.
func (r *Repo) Menu(ctx context.Context) ([]storefront.MenuItem, error) {
	ps, err := r.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return menuItems(ps), nil
}

func menuItems(ps []Product) []storefront.MenuItem {
	out := make([]storefront.MenuItem, 0, len(ps))
	for _, p := range ps {
		if !p.Available || p.PriceCents <= 0 || p.Name == "" {
			continue
		}
		out = append(out, storefront.MenuItem{Name: p.Name, PriceCents: p.PriceCents, Section: p.Section})
	}
	return out
}
