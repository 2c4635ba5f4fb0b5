package dto

import "time"

// CreateWarehouseRequest entrada para crear una bodega.
type CreateWarehouseRequest struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
	IsPrimary   *bool  `json:"isPrimary"`
	Active      *bool  `json:"active"`
}

// UpdateWarehouseRequest entrada para actualizar una bodega (campos opcionales).
type UpdateWarehouseRequest struct {
	Name        *string `json:"name"`
	Code        *string `json:"code"`
	Description *string `json:"description"`
	IsPrimary   *bool   `json:"isPrimary"`
	Active      *bool   `json:"active"`
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Active      bool      `json:"active"`
	IsPrimary   bool      `json:"isPrimary"`
	CreatedBy   string    `json:"createdBy,omitempty"`
	UpdatedBy   string    `json:"updatedBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// WarehouseListResponse lista paginada de bodegas.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// PurgeWarehouseRequest body opcional para la purga: bodega destino explícita.
type PurgeWarehouseRequest struct {
	TargetWarehouseID string `json:"targetWarehouseId"`
}

// PurgeWarehouseResponse resultado de una purga.
type PurgeWarehouseResponse struct {
	RemovedID  string `json:"removedId"`
	TargetID   string `json:"targetId"`
	Reassigned int64  `json:"reassignedMovements"`
}
