package checkoutControllers

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/alok9064/CarveLane/models"
)

var (
	// ErrEmptyCart means there is nothing to check out for the user.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrProductGone means a line references a product that no longer
	// exists in the catalog. Only returned in strict pricing mode.
	ErrProductGone = errors.New("product is no longer available")
)

// LineItem is one priced line of a checkout, with the customization
// fields that travel into the order.
type LineItem struct {
	ProductID         uint
	ProductName       string
	Quantity          int
	UnitPrice         decimal.Decimal
	Subtotal          decimal.Decimal
	CustomizationText string
	ImagePath         string
	Whatsapp          string
	UseDefault        bool
}

// Pricing is the authoritative amount for a checkout. Unit prices are
// read from the catalog at call time; client-supplied prices are never
// trusted.
type Pricing struct {
	Items []LineItem
	Total decimal.Decimal
}

// AmountPaise converts the total to the gateway's minor currency units.
func (p *Pricing) AmountPaise() int64 {
	return p.Total.Mul(decimal.NewFromInt(100)).IntPart()
}

// priceCart loads the user's cart rows and prices them against the
// catalog. In strict mode a vanished product fails the whole pass;
// otherwise the line is dropped, matching the storefront's historical
// behavior.
func priceCart(db *gorm.DB, userID uint, strict bool) (*Pricing, error) {
	var cartItems []models.CartItem
	if err := db.Where("user_id = ?", userID).Order("added_at").Find(&cartItems).Error; err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrEmptyCart
	}

	productIDs := make([]uint, 0, len(cartItems))
	for _, item := range cartItems {
		productIDs = append(productIDs, item.ProductID)
	}

	var products []models.Product
	if err := db.Where("id IN ?", productIDs).Find(&products).Error; err != nil {
		return nil, err
	}
	productsByID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		productsByID[p.ID] = p
	}

	pricing := &Pricing{Total: decimal.Zero}
	for _, item := range cartItems {
		product, ok := productsByID[item.ProductID]
		if !ok {
			if strict {
				return nil, ErrProductGone
			}
			continue
		}

		subtotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		pricing.Items = append(pricing.Items, LineItem{
			ProductID:         product.ID,
			ProductName:       product.Name,
			Quantity:          item.Quantity,
			UnitPrice:         product.Price,
			Subtotal:          subtotal,
			CustomizationText: item.CustomizationText,
			ImagePath:         item.ImagePath,
			Whatsapp:          item.Whatsapp,
			UseDefault:        item.UseDefault,
		})
		pricing.Total = pricing.Total.Add(subtotal)
	}

	if len(pricing.Items) == 0 {
		return nil, ErrEmptyCart
	}
	return pricing, nil
}

// priceBuyNow prices the single transient selection. A vanished product
// always fails here regardless of mode; with one line there is nothing
// sensible left to check out.
func priceBuyNow(db *gorm.DB, sel *models.BuyNowSelection) (*Pricing, error) {
	var product models.Product
	if err := db.First(&product, "id = ?", sel.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductGone
		}
		return nil, err
	}

	subtotal := product.Price.Mul(decimal.NewFromInt(int64(sel.Quantity)))
	return &Pricing{
		Items: []LineItem{{
			ProductID:         product.ID,
			ProductName:       product.Name,
			Quantity:          sel.Quantity,
			UnitPrice:         product.Price,
			Subtotal:          subtotal,
			CustomizationText: sel.CustomizationText,
			ImagePath:         sel.ImagePath,
			Whatsapp:          sel.Whatsapp,
			UseDefault:        sel.UseDefault,
		}},
		Total: subtotal,
	}, nil
}
