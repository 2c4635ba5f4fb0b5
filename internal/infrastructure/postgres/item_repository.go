package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jforero/kardex-api/internal/domain/entity"
	"github.com/jforero/kardex-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, name, category, unit, min_stock, active, created_by, updated_by, created_at, updated_at`

// Create persiste un nuevo item.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, nullable(item.Category), nullable(item.Unit), item.MinStock,
		item.Active, nullable(item.CreatedBy), nullable(item.UpdatedBy), item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un item por ID. Devuelve (nil, nil) si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	item, err := scanItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// Update actualiza un item existente.
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	query := `
		UPDATE items
		SET name = $2, category = $3, unit = $4, min_stock = $5, active = $6, updated_by = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, nullable(item.Category), nullable(item.Unit), item.MinStock,
		item.Active, nullable(item.UpdatedBy), item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// List lista items con filtros y paginación; devuelve también el total sin paginar.
func (r *ItemRepo) List(ctx context.Context, filter repository.ItemFilter) ([]*entity.Item, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.Active != nil {
		where += fmt.Sprintf(" AND active = $%d", pos)
		args = append(args, *filter.Active)
		pos++
	}
	if filter.Category != "" {
		where += fmt.Sprintf(" AND category = $%d", pos)
		args = append(args, filter.Category)
		pos++
	}
	if filter.Q != "" {
		where += fmt.Sprintf(" AND (name ILIKE $%d OR category ILIKE $%d)", pos, pos)
		args = append(args, "%"+filter.Q+"%")
		pos++
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM items`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	query := `SELECT ` + itemColumns + ` FROM items` + where +
		fmt.Sprintf(" ORDER BY name, id LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, item)
	}
	return list, total, rows.Err()
}

// Delete borra físicamente un item. El caso de uso verifica antes que no tenga
// movimientos.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	var category, unit, createdBy, updatedBy *string
	if err := row.Scan(&it.ID, &it.Name, &category, &unit, &it.MinStock,
		&it.Active, &createdBy, &updatedBy, &it.CreatedAt, &it.UpdatedAt); err != nil {
		return nil, err
	}
	it.Category = deref(category)
	it.Unit = deref(unit)
	it.CreatedBy = deref(createdBy)
	it.UpdatedBy = deref(updatedBy)
	return &it, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
