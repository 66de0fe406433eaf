package presenter

import (
	"fmt"
	"strings"

	"github.com/utafrali/catalogview/internal/domain"
)

// NoImageLabel is shown in place of an image when the URL does not look like
// a web URL.
const NoImageLabel = "No image available"

// Card is the structured display payload for one surviving product row. All
// numeric fields arrive pre-formatted; the rendering layer only places them.
type Card struct {
	ProductID string `json:"product_id"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	Price     string `json:"price"`
	Discount  string `json:"discount"`
	Rating    string `json:"rating"`
	Features  string `json:"features"`
	Stock     string `json:"stock"`
	ImageURL  string `json:"image_url,omitempty"`
	ImageNote string `json:"image_note,omitempty"`
}

// Cards formats each product into its display card, preserving order.
func Cards(products []domain.Product) []Card {
	cards := make([]Card, len(products))
	for i, p := range products {
		cards[i] = newCard(p)
	}
	return cards
}

func newCard(p domain.Product) Card {
	c := Card{
		ProductID: p.ID,
		Title:     p.Name,
		Category:  p.Category,
		Price:     fmt.Sprintf("₹%.2f", p.Price),
		Discount:  fmt.Sprintf("%g%%", p.Discount),
		Rating:    fmt.Sprintf("%.1f stars", p.Rating),
		Features:  p.Features,
		Stock:     stockLabel(p),
	}

	// An image is referenced only when the cell plausibly holds a web URL.
	if strings.HasPrefix(p.ImageURL, "http") {
		c.ImageURL = p.ImageURL
	} else {
		c.ImageNote = NoImageLabel
	}

	return c
}

func stockLabel(p domain.Product) string {
	if p.InStock {
		return "Yes"
	}
	return "Out of Stock"
}
