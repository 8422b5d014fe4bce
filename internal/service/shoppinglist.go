package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"gorm.io/gorm"
)

// ShoppingListItem is one aggregated line of the exported list: the same
// ingredient used by several carted recipes collapses into a single row with
// the amounts summed.
type ShoppingListItem struct {
	Name            string
	MeasurementUnit string
	Amount          int64
}

type ShoppingListService struct {
	db *gorm.DB
}

func NewShoppingListService(db *gorm.DB) *ShoppingListService {
	return &ShoppingListService{db: db}
}

// Items aggregates ingredient amounts across every recipe in the user's cart.
// The summation happens in the datastore, one query for the whole cart.
func (s *ShoppingListService) Items(ctx context.Context, userID uuid.UUID) ([]ShoppingListItem, error) {
	var items []ShoppingListItem
	err := s.db.WithContext(ctx).
		Table("ingredient_lines").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(ingredient_lines.amount) AS amount").
		Joins("JOIN ingredients ON ingredients.id = ingredient_lines.ingredient_id").
		Joins("JOIN recipes ON recipes.id = ingredient_lines.recipe_id AND recipes.deleted_at IS NULL").
		Joins("JOIN cart_items ON cart_items.recipe_id = ingredient_lines.recipe_id").
		Joins("JOIN shopping_carts ON shopping_carts.id = cart_items.cart_id").
		Where("shopping_carts.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// RenderPDF produces the downloadable shopping-list document. An empty cart
// yields an explicit "list is empty" page rather than a blank file.
func (s *ShoppingListService) RenderPDF(items []ShoppingListItem) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	if len(items) == 0 {
		pdf.SetFont("Helvetica", "B", 24)
		pdf.Cell(0, 12, "Shopping list is empty!")
		return renderToBytes(pdf)
	}

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Shopping list:")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 14)
	for i, item := range items {
		line := fmt.Sprintf("%d. %s - %d %s", i+1, item.Name, item.Amount, item.MeasurementUnit)
		pdf.Cell(0, 8, line)
		pdf.Ln(8)
	}
	return renderToBytes(pdf)
}

func renderToBytes(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
