package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un item.
type CreateItemRequest struct {
	Name     string           `json:"name"`
	Category string           `json:"category"`
	Unit     string           `json:"unit"`
	MinStock *decimal.Decimal `json:"minStock"`
	Active   *bool            `json:"active"`
}

// UpdateItemRequest entrada para actualizar un item (campos opcionales).
type UpdateItemRequest struct {
	Name     *string          `json:"name"`
	Category *string          `json:"category"`
	Unit     *string          `json:"unit"`
	MinStock *decimal.Decimal `json:"minStock"`
	Active   *bool            `json:"active"`
}

// ItemResponse salida de un item.
type ItemResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category,omitempty"`
	Unit      string          `json:"unit,omitempty"`
	MinStock  decimal.Decimal `json:"minStock"`
	Active    bool            `json:"active"`
	CreatedBy string          `json:"createdBy,omitempty"`
	UpdatedBy string          `json:"updatedBy,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ItemListResponse lista paginada de items.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// ItemStockResponse item con su stock calculado (resumen y alertas).
type ItemStockResponse struct {
	Item  ItemResponse    `json:"item"`
	Stock decimal.Decimal `json:"stock"`
}
