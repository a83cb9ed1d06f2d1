package response

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sparetrack/sparetrack-api/internal/domain/entity"
)

// CatalogItem is the retailer-facing view of an item. It deliberately omits
// the purchase price; retailers only see what they pay.
type CatalogItem struct {
	ID               uuid.UUID        `json:"id"`
	CategoryID       uuid.UUID        `json:"category_id"`
	SubcategoryID    *uuid.UUID       `json:"subcategory_id,omitempty"`
	ItemName         string           `json:"item_name"`
	PartNumber       *string          `json:"part_number,omitempty"`
	CompatibleModels *string          `json:"compatible_models,omitempty"`
	SellingPrice     decimal.Decimal  `json:"selling_price"`
	StockQuantity    int              `json:"stock_quantity"`
	Category         *entity.Category `json:"category,omitempty"`
	Subcategory      *entity.Category `json:"subcategory,omitempty"`
}

// NewCatalogItems maps items to their retailer-facing view.
func NewCatalogItems(items []entity.Item) []CatalogItem {
	out := make([]CatalogItem, 0, len(items))
	for i := range items {
		item := &items[i]
		out = append(out, CatalogItem{
			ID:               item.ID,
			CategoryID:       item.CategoryID,
			SubcategoryID:    item.SubcategoryID,
			ItemName:         item.ItemName,
			PartNumber:       item.PartNumber,
			CompatibleModels: item.CompatibleModels,
			SellingPrice:     item.SellingPrice,
			StockQuantity:    item.StockQuantity,
			Category:         item.Category,
			Subcategory:      item.Subcategory,
		})
	}
	return out
}
