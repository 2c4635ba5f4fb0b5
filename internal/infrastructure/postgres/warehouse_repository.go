package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jforero/kardex-api/internal/domain"
	"github.com/jforero/kardex-api/internal/domain/entity"
	"github.com/jforero/kardex-api/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL
// (usable con pool o tx).
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de persistencia para bodegas.
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

const warehouseColumns = `id, code, name, description, active, is_primary, created_by, updated_by, created_at, updated_at`

// Create persiste una nueva bodega. Colisión de code -> ErrDuplicateCode.
func (r *WarehouseRepo) Create(ctx context.Context, warehouse *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (` + warehouseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		warehouse.ID, warehouse.Code, warehouse.Name, nullable(warehouse.Description),
		warehouse.Active, warehouse.IsPrimary, nullable(warehouse.CreatedBy), nullable(warehouse.UpdatedBy),
		warehouse.CreatedAt, warehouse.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("insert warehouse: %w", err)
	}
	return nil
}

// GetByID obtiene una bodega por ID. Devuelve (nil, nil) si no existe.
func (r *WarehouseRepo) GetByID(ctx context.Context, id string) (*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE id = $1`
	wh, err := scanWarehouse(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return wh, nil
}

// Update actualiza una bodega. Un code que colisione -> ErrDuplicateCode.
func (r *WarehouseRepo) Update(ctx context.Context, warehouse *entity.Warehouse) error {
	query := `
		UPDATE warehouses
		SET code = $2, name = $3, description = $4, active = $5, is_primary = $6, updated_by = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		warehouse.ID, warehouse.Code, warehouse.Name, nullable(warehouse.Description),
		warehouse.Active, warehouse.IsPrimary, nullable(warehouse.UpdatedBy), warehouse.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("update warehouse: %w", err)
	}
	return nil
}

// List lista bodegas con filtros y paginación; devuelve también el total.
func (r *WarehouseRepo) List(ctx context.Context, filter repository.WarehouseFilter) ([]*entity.Warehouse, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.Active != nil {
		where += fmt.Sprintf(" AND active = $%d", pos)
		args = append(args, *filter.Active)
		pos++
	}
	if filter.Q != "" {
		where += fmt.Sprintf(" AND (name ILIKE $%d OR code ILIKE $%d OR description ILIKE $%d)", pos, pos, pos)
		args = append(args, "%"+filter.Q+"%")
		pos++
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM warehouses`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count warehouses: %w", err)
	}

	query := `SELECT ` + warehouseColumns + ` FROM warehouses` + where +
		fmt.Sprintf(" ORDER BY name, id LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		wh, err := scanWarehouse(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, wh)
	}
	return list, total, rows.Err()
}

// ListActiveExcept lista bodegas activas distintas de excludeID, ordenadas por
// (code, name) para que la resolución de destino de una purga sea determinista.
func (r *WarehouseRepo) ListActiveExcept(ctx context.Context, excludeID string) ([]*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses
		WHERE active = true AND id <> $1 ORDER BY code, name`
	rows, err := r.q.Query(ctx, query, excludeID)
	if err != nil {
		return nil, fmt.Errorf("list active warehouses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		wh, err := scanWarehouse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, wh)
	}
	return list, rows.Err()
}

// Delete borra físicamente una bodega. Solo se invoca desde la transacción de
// purga, después de reasignar su kardex.
func (r *WarehouseRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM warehouses WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete warehouse: %w", err)
	}
	return nil
}

func scanWarehouse(row pgx.Row) (*entity.Warehouse, error) {
	var w entity.Warehouse
	var description, createdBy, updatedBy *string
	if err := row.Scan(&w.ID, &w.Code, &w.Name, &description, &w.Active, &w.IsPrimary,
		&createdBy, &updatedBy, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}
	w.Description = deref(description)
	w.CreatedBy = deref(createdBy)
	w.UpdatedBy = deref(updatedBy)
	return &w, nil
}
