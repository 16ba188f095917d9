package validation

import "github.com/ktpm/catalog/internal/server/models"

const (
	ProductNameMinLen = 3
	ProductNameMaxLen = 100
	DescriptionMaxLen = 500
	PriceMin          = 0.01
	PriceMax          = 999_999_999
	QuantityMin       = 0
	QuantityMax       = 99_999
)

// IsValidCategory reports whether s names a catalog category, ignoring case.
func IsValidCategory(s string) bool {
	_, ok := models.ParseCategory(s)
	return ok
}

// ProductProblems returns the JSON names of every field of p that breaks a
// rule. Every field is checked; an empty result means p is valid.
func ProductProblems(p *models.Product) []string {
	if p == nil {
		return []string{"product"}
	}

	var problems []string

	if IsBlank(p.ProductName) ||
		!IsSizeInRange(p.ProductName, ProductNameMinLen, ProductNameMaxLen) ||
		ContainsThreat(p.ProductName) {
		problems = append(problems, "productName")
	}
	if p.Price < PriceMin || p.Price > PriceMax {
		problems = append(problems, "price")
	}
	if p.Quantity < QuantityMin || p.Quantity > QuantityMax {
		problems = append(problems, "quantity")
	}
	if IsBlank(p.Description) ||
		!IsSizeInRange(p.Description, 0, DescriptionMaxLen) ||
		ContainsThreat(p.Description) {
		problems = append(problems, "description")
	}
	if !IsValidCategory(string(p.Category)) {
		problems = append(problems, "category")
	}

	return problems
}

// IsValidProduct reports whether p passes every rule in ProductProblems.
func IsValidProduct(p *models.Product) bool {
	return len(ProductProblems(p)) == 0
}
