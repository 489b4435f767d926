package models

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Drink is a catalog item.
type Drink struct {
	Name  string
	Price decimal.Decimal
}

// Catalog is the fixed drink name → price table. It is read-only once built.
type Catalog struct {
	prices map[string]decimal.Decimal
}

// DefaultPrices is the catalog used when the configuration does not define one.
func DefaultPrices() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"Cola":  decimal.RequireFromString("1.50"),
		"Water": decimal.RequireFromString("1.00"),
		"Juice": decimal.RequireFromString("2.00"),
	}
}

// NewCatalog validates prices and returns an immutable catalog. Names must be
// non-empty and prices strictly positive whole cents.
func NewCatalog(prices map[string]decimal.Decimal) (*Catalog, error) {
	if len(prices) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}

	c := &Catalog{prices: make(map[string]decimal.Decimal, len(prices))}
	for name, price := range prices {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("catalog contains a drink with an empty name")
		}
		if !price.IsPositive() {
			return nil, fmt.Errorf("price of %q must be positive, got %s", name, price)
		}
		if !IsCents(price) {
			return nil, fmt.Errorf("price of %q has more than two decimal places: %s", name, price)
		}
		c.prices[name] = price
	}
	return c, nil
}

// Price returns the price of drink and whether it is on offer.
func (c *Catalog) Price(drink string) (decimal.Decimal, bool) {
	p, ok := c.prices[drink]
	return p, ok
}

// Drinks lists the catalog sorted by name.
func (c *Catalog) Drinks() []Drink {
	drinks := make([]Drink, 0, len(c.prices))
	for name, price := range c.prices {
		drinks = append(drinks, Drink{Name: name, Price: price})
	}
	sort.Slice(drinks, func(i, j int) bool { return drinks[i].Name < drinks[j].Name })
	return drinks
}
