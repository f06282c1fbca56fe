package catalog

import "github.com/harshava123/powderlegacy/internal/domain"

// seedProducts returns the full storefront range: traditional bath, hair and
// oral care powders with their size tiers.
func seedProducts() []*domain.Product {
	return []*domain.Product{
		{
			ID: 1, Name: "Sassy Sunnipindi", Category: "skin-care",
			Images: []string{"/images/Sassy Sunnupindi/Sassy Sunnipindi 1.jpg"},
			Sizes: []domain.ProductSize{
				{Label: "200g", WeightKG: 0.25, Price: 350, Stock: 50},
				{Label: "400g", WeightKG: 0.50, Price: 700, Stock: 30},
				{Label: "800g", WeightKG: 0.80, Price: 1400, Stock: 30},
			},
		},
		{
			ID: 2, Name: "Authentic Avarampoo", Category: "skin-care",
			Images: []string{"/images/Authentic Avarampoo/Authentic Avarampoo 1.jpg"},
			Sizes: []domain.ProductSize{
				{Label: "200g", WeightKG: 0.25, Price: 400, Stock: 45},
				{Label: "400g", WeightKG: 0.50, Price: 800, Stock: 25},
				{Label: "800g", WeightKG: 0.80, Price: 1600, Stock: 30},
			},
		},
		{
			ID: 3, Name: "Multani Marvel", Category: "skin-care",
			Images: []string{"/images/Multani Marvel/Multani Marvel 1.jpg"},
			Sizes: []domain.ProductSize{
				{Label: "200g", WeightKG: 0.40, Price: 400, Stock: 60},
				{Label: "400g", WeightKG: 0.65, Price: 800, Stock: 35},
				{Label: "800g", WeightKG: 0.80, Price: 1600, Stock: 30},
			},
		},
		{
			ID: 4, Name: "Serene Sandalwood", Category: "skin-care",
			Images: []string{"/images/Serene Sandalwood/Serene Sandalwood 1.jpg"},
			Sizes: []domain.ProductSize{
				{Label: "200g", WeightKG: 0.30, Price: 400, Stock: 40},
				{Label: "400g", WeightKG: 0.55, Price: 800, Stock: 20},
				{Label: "800g", WeightKG: 0.80, Price: 1600, Stock: 30},
			},
		},
		{
			ID: 5, Name: "Neem Nourish", Category: "skin-care",
			Images: []string{"/images/Neem Nourish/Neem Nourish 1.jpg"},
			Sizes: []domain.ProductSize{
				{Label: "200g", WeightKG: 0.25, Price: 400, Stock: 55},
				{Label: "400g", WeightKG: 0.50, Price: 800, Stock: 30},
				{Label: "800g", WeightKG: 0.80, Price: 1600, Stock: 30},
			},
		},
		{
			ID: 6, Name: "Vibrant Vetiver", Category: "skin-care",
			Images: []string{"/images/Vibrant Vetiver/Vibrant Vetiver 1.jpg"},
			Sizes: []domain.ProductSize{
				{Label: "200g", WeightKG: 0.25, Price: 400, Stock: 50},
				{Label: "400g", WeightKG: 0.50, Price: 800, Stock: 30},
				{Label: "800g", WeightKG: 0.80, Price: 1600, Stock: 30},
			},
		},
		{
			ID: 7, Name: "Anti Hairfall", Category: "hair-care",
			Images: []string{"/images/Anti Hairfall/Anti Hairfall 1.jpg"},
			Sizes: []domain.ProductSize{
				{Label: "200g", WeightKG: 0.20, Price: 400, Stock: 70},
				{Label: "400g", WeightKG: 0.40, Price: 800, Stock: 60},
				{Label: "800g", WeightKG: 0.80, Price: 1600, Stock: 40},
			},
		},
		{
			ID: 8, Name: "Anti Oily", Category: "hair-care",
			Images: []string{"/images/Anti Oily/Anti Oily 1.jpg"},
			Sizes: []domain.ProductSize{
				{Label: "200g", WeightKG: 0.26, Price: 400, Stock: 65},
				{Label: "400g", WeightKG: 0.50, Price: 800, Stock: 35},
				{Label: "800g", WeightKG: 0.80, Price: 1600, Stock: 30},
			},
		},
		{
			ID: 9, Name: "Anti Dandruff", Category: "hair-care",
			Images: []string{"/images/Anti Dandruff/Anti Dandruff 1.jpg"},
			Sizes: []domain.ProductSize{
				{Label: "200g", WeightKG: 0.20, Price: 400, Stock: 60},
				{Label: "400g", WeightKG: 0.40, Price: 800, Stock: 30},
				{Label: "800g", WeightKG: 0.80, Price: 1600, Stock: 30},
			},
		},
		{
			ID: 10, Name: "Smitha Manjan", Category: "oral-care",
			Images: []string{"/images/Smitha Manjan/Smitha Manjan 1.jpg"},
			Sizes: []domain.ProductSize{
				{Label: "50g", WeightKG: 0.05, Price: 400, Stock: 80},
				{Label: "100g", WeightKG: 0.10, Price: 800, Stock: 50},
				{Label: "200g", WeightKG: 0.20, Price: 1600, Stock: 30},
			},
		},
		{
			ID: 11, Name: "Radiant Rose", Category: "skin-care",
			Images: []string{"/images/Radiant Rose/Radiant Rose 1.jpg"},
			Sizes: []domain.ProductSize{
				{Label: "200g", WeightKG: 0.20, Price: 400, Stock: 45},
				{Label: "400g", WeightKG: 0.40, Price: 800, Stock: 25},
				{Label: "800g", WeightKG: 0.80, Price: 1600, Stock: 30},
			},
		},
	}
}
