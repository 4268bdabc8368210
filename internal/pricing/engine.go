package pricing

import (
	"errors"
	"math"
	"strings"

	"lotline-backend/internal/models"

	"gorm.io/gorm"
)

// ErrNegativeRetail is the only rejection a price calculation can produce.
var ErrNegativeRetail = errors.New("retail price cannot be negative")

// DefaultVendorName receives items whose source matches no active vendor.
const DefaultVendorName = "Amazon Bstock"

type Quote struct {
	CostPrice  float64 `json:"cost_price"`
	MinPrice   float64 `json:"min_price"`
	VendorName string  `json:"vendor_name"`
}

// Engine derives cost and minimum-bid prices from retail price and vendor
// coefficients. It is a pure function over a vendor snapshot; no state is
// mutated.
type Engine struct {
	vendors []models.Vendor
}

func NewEngine(db *gorm.DB) (*Engine, error) {
	vendors, err := LoadVendors(db)
	if err != nil {
		return nil, err
	}
	return &Engine{vendors: vendors}, nil
}

// NewEngineWithVendors builds an engine from an explicit vendor snapshot.
func NewEngineWithVendors(vendors []models.Vendor) *Engine {
	return &Engine{vendors: vendors}
}

// LoadVendors returns all active vendors.
func LoadVendors(db *gorm.DB) ([]models.Vendor, error) {
	var vendors []models.Vendor
	if err := db.Where("is_active = ?", true).Order("name asc").Find(&vendors).Error; err != nil {
		return nil, err
	}
	return vendors, nil
}

// Calculate prices an item:
//
//	cost_price = retail × cost_coefficient
//	min_price  = cost_price + retail × min_price_margin
//
// both rounded to cents. The vendor is matched by substring against the
// item source; unmatched sources fall back to the default vendor.
func (e *Engine) Calculate(retailPrice float64, source string) (Quote, error) {
	if retailPrice < 0 {
		return Quote{}, ErrNegativeRetail
	}

	vendor := e.match(source)
	if vendor == nil {
		return Quote{VendorName: "Unknown"}, nil
	}

	cost := round2(retailPrice * vendor.CostCoefficient)
	minPrice := round2(cost + retailPrice*vendor.MinPriceMargin)

	return Quote{CostPrice: cost, MinPrice: minPrice, VendorName: vendor.Name}, nil
}

func (e *Engine) match(source string) *models.Vendor {
	lower := strings.ToLower(source)
	for i := range e.vendors {
		if strings.Contains(lower, strings.ToLower(e.vendors[i].Name)) {
			return &e.vendors[i]
		}
	}
	for i := range e.vendors {
		if e.vendors[i].Name == DefaultVendorName {
			return &e.vendors[i]
		}
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
