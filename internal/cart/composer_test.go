package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshava123/powderlegacy/internal/domain"
	"github.com/harshava123/powderlegacy/pkg/errors"
)

func testProduct() *domain.Product {
	return &domain.Product{
		ID:       10,
		Name:     "Smitha Manjan",
		Category: "oral-care",
		Images:   []string{"/images/smitha-manjan.jpg"},
		Sizes: []domain.ProductSize{
			{Label: "50g", Price: 400, Stock: 80},
			{Label: "100g", Price: 700, Stock: 2},
		},
	}
}

func TestComposeSnapshotsProduct(t *testing.T) {
	item, err := Compose(testProduct(), "50g", 3)
	require.NoError(t, err)

	assert.Equal(t, int64(10), item.ProductID)
	assert.Equal(t, "50g", item.Size)
	assert.Equal(t, "Smitha Manjan", item.Name)
	assert.Equal(t, "/images/smitha-manjan.jpg", item.Image)
	assert.Equal(t, int64(400), item.Price)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, 80, item.MaxStock)
}

func TestComposeClampsToStock(t *testing.T) {
	// 3 requested, only 2 tracked units: the line is accepted at 2
	item, err := Compose(testProduct(), "100g", 3)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, 2, item.MaxStock)
}

func TestComposeUntrackedStockIsNotClamped(t *testing.T) {
	p := testProduct()
	p.Sizes[0].Stock = 0
	item, err := Compose(p, "50g", 500)
	require.NoError(t, err)
	assert.Equal(t, 500, item.Quantity)
}

func TestComposeRejectsBadInput(t *testing.T) {
	_, err := Compose(nil, "50g", 1)
	assert.IsType(t, &errors.ErrValidation{}, err)

	_, err = Compose(testProduct(), "5kg", 1)
	assert.IsType(t, &errors.ErrValidation{}, err)

	_, err = Compose(testProduct(), "50g", 0)
	assert.IsType(t, &errors.ErrValidation{}, err)
}
