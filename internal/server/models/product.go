package models

import "strings"

// Category is one of the fixed catalog sections.
type Category string

const (
	CategorySmartphone Category = "SMARTPHONE"
	CategoryLaptops    Category = "LAPTOPS"
	CategoryHeadphones Category = "HEADPHONES"
	CategoryCameras    Category = "CAMERAS"
)

// Categories lists every valid Category.
var Categories = []Category{
	CategorySmartphone,
	CategoryLaptops,
	CategoryHeadphones,
	CategoryCameras,
}

// ParseCategory matches s case-insensitively against Categories.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, true
		}
	}
	return "", false
}

type Product struct {
	ID          string   `json:"id"`
	ProductName string   `json:"productName"`
	Price       float64  `json:"price"`
	Quantity    int      `json:"quantity"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
}
