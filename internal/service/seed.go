package service

import (
	"context"

	"github.com/mvolkova/kids_shop/internal/logging"
	"github.com/mvolkova/kids_shop/internal/models"
)

// demoProducts is the fixed demo catalog. Slug is the idempotency
// key: reruns of SeedDemo insert nothing for slugs already present.
var demoProducts = []models.Product{
	{
		Name:        "Cloud Hoodie",
		Slug:        "cloud-hoodie",
		Description: "Soft fleece hoodie with a cloud print",
		Price:       34.90,
		Rating:      4.8,
		ReviewCount: 112,
		Colors: models.ColorList{
			{Name: "Sky Blue", Swatch: "#9cc8f5"},
			{Name: "Cream", Swatch: "#f4ecd9"},
		},
		Images:   models.ImageList{"/img/cloud-hoodie-1.jpg", "/img/cloud-hoodie-2.jpg"},
		Category: "hoodies",
		AgeGroup: "4-6",
	},
	{
		Name:        "Dino Tee",
		Slug:        "dino-tee",
		Description: "Organic cotton t-shirt with a friendly dinosaur",
		Price:       14.50,
		Rating:      4.6,
		ReviewCount: 87,
		Colors: models.ColorList{
			{Name: "Forest", Swatch: "#3c7a4e"},
		},
		Images:   models.ImageList{"/img/dino-tee-1.jpg"},
		Category: "t-shirts",
		AgeGroup: "2-4",
	},
	{
		Name:        "Puddle Boots",
		Slug:        "puddle-boots",
		Description: "Waterproof rubber boots for rainy days",
		Price:       22.00,
		Rating:      4.9,
		ReviewCount: 203,
		Colors: models.ColorList{
			{Name: "Yellow", Swatch: "#f5d442"},
			{Name: "Navy", Swatch: "#24365c"},
		},
		Images:   models.ImageList{"/img/puddle-boots-1.jpg", "/img/puddle-boots-2.jpg"},
		Category: "shoes",
		AgeGroup: "4-6",
	},
	{
		Name:        "Starry Pajama Set",
		Slug:        "starry-pajama-set",
		Description: "Two-piece pajama set with glow-in-the-dark stars",
		Price:       27.90,
		Rating:      4.7,
		ReviewCount: 65,
		Colors: models.ColorList{
			{Name: "Midnight", Swatch: "#1b2040"},
		},
		Images:   models.ImageList{"/img/starry-pajama-1.jpg"},
		Category: "sleepwear",
		AgeGroup: "6-8",
	},
	{
		Name:        "Rainbow Beanie",
		Slug:        "rainbow-beanie",
		Description: "Knitted beanie with rainbow stripes",
		Price:       11.00,
		Rating:      4.4,
		ReviewCount: 31,
		Colors:      models.ColorList{},
		Images:      models.ImageList{"/img/rainbow-beanie-1.jpg"},
		Category:    "accessories",
		AgeGroup:    "2-4",
	},
}

// SeedDemo inserts the demo rows that are not present yet and
// reports how many were created.
func (s *CatalogService) SeedDemo(ctx context.Context) (int, error) {
	inserted := 0
	for i := range demoProducts {
		p := demoProducts[i]
		created, err := s.Repo.ProductBySlugOrCreate(ctx, &p)
		if err != nil {
			return inserted, err
		}
		if created {
			inserted++
			s.index(ctx, &p)
		}
	}
	logging.FromContext(ctx).Info("demo seed finished", "inserted", inserted)
	return inserted, nil
}
