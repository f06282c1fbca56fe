package cart

import (
	"github.com/harshava123/powderlegacy/internal/domain"
	"github.com/harshava123/powderlegacy/pkg/errors"
)

// Compose builds a cart line item from a product, a chosen size and the
// requested quantity. Price, image and stock are snapshotted here; the line
// never follows later catalog changes.
//
// When the size tracks stock (> 0) and the request exceeds it, the quantity
// is silently clamped to the available units rather than rejected.
func Compose(product *domain.Product, sizeLabel string, quantity int) (domain.CartLineItem, error) {
	if product == nil {
		return domain.CartLineItem{}, &errors.ErrValidation{Message: "product is required"}
	}
	size := product.SizeByLabel(sizeLabel)
	if size == nil {
		return domain.CartLineItem{}, &errors.ErrValidation{
			Message: "size selection required",
			Fields:  map[string]string{"size": "unknown size " + sizeLabel},
		}
	}
	if quantity < 1 {
		return domain.CartLineItem{}, &errors.ErrValidation{
			Message: "quantity must be at least 1",
			Fields:  map[string]string{"quantity": "must be positive"},
		}
	}

	if size.Stock > 0 && quantity > size.Stock {
		quantity = size.Stock
	}

	return domain.CartLineItem{
		ProductID: product.ID,
		Size:      size.Label,
		Name:      product.Name,
		Category:  product.Category,
		Image:     product.FirstImage(""),
		Price:     size.Price,
		Quantity:  quantity,
		MaxStock:  size.Stock,
	}, nil
}
