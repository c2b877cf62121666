package enums

import "fmt"

// ProductCategory buckets catalog listings for browsing and search.
type ProductCategory string

const (
	ProductCategoryDresses     ProductCategory = "dresses"
	ProductCategoryTops        ProductCategory = "tops"
	ProductCategoryBottoms     ProductCategory = "bottoms"
	ProductCategoryOuterwear   ProductCategory = "outerwear"
	ProductCategoryShoes       ProductCategory = "shoes"
	ProductCategoryAccessories ProductCategory = "accessories"
)

var validProductCategories = []ProductCategory{
	ProductCategoryDresses,
	ProductCategoryTops,
	ProductCategoryBottoms,
	ProductCategoryOuterwear,
	ProductCategoryShoes,
	ProductCategoryAccessories,
}

// String implements fmt.Stringer.
func (p ProductCategory) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProductCategory.
func (p ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}
