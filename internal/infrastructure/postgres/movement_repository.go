package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jforero/kardex-api/internal/domain"
	"github.com/jforero/kardex-api/internal/domain/entity"
	"github.com/jforero/kardex-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL
// (usable con pool o tx). El kardex es append-only: no expone UPDATE ni DELETE
// de filas individuales.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, seq, item_id, warehouse_id, type, qty, to_stock, note, transfer_id, idempotency_key, created_by, created_at`

// Create persiste un movimiento. seq y created_at los asigna el servidor
// (secuencia y now()): el orden total (created_at, seq) no depende del reloj
// de la instancia que escribe. Una idempotency key repetida -> ErrDuplicateRequest.
func (r *MovementRepo) Create(ctx context.Context, movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, item_id, warehouse_id, type, qty, to_stock, note, transfer_id, idempotency_key, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING seq, created_at`
	err := r.q.QueryRow(ctx, query,
		movement.ID, movement.ItemID, movement.WarehouseID, movement.Type,
		movement.Qty, movement.ToStock, nullable(movement.Note), nullable(movement.TransferID),
		nullable(movement.IdempotencyKey), nullable(movement.CreatedBy),
	).Scan(&movement.Seq, &movement.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) && constraintName(err) == "stock_movements_idempotency_key_key" {
			return domain.ErrDuplicateRequest
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// ListForPair devuelve el kardex completo de un (item, bodega) en orden de
// creación (created_at, seq), la entrada del replay.
func (r *MovementRepo) ListForPair(ctx context.Context, itemID, warehouseID string) ([]entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements
		WHERE item_id = $1 AND warehouse_id = $2
		ORDER BY created_at, seq`
	rows, err := r.q.Query(ctx, query, itemID, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list movements for pair: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// ListForItem devuelve todos los movimientos de un item (todas las bodegas) en
// orden de creación.
func (r *MovementRepo) ListForItem(ctx context.Context, itemID string) ([]entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements
		WHERE item_id = $1
		ORDER BY created_at, seq`
	rows, err := r.q.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list movements for item: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// List lista movimientos con filtros y paginación, más reciente primero.
func (r *MovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	pos := 1
	add := func(cond string, v any) {
		where += fmt.Sprintf(" AND "+cond, pos)
		args = append(args, v)
		pos++
	}
	if filter.ItemID != "" {
		add("item_id = $%d", filter.ItemID)
	}
	if filter.WarehouseID != "" {
		add("warehouse_id = $%d", filter.WarehouseID)
	}
	if filter.TransferID != "" {
		add("transfer_id = $%d", filter.TransferID)
	}
	if filter.Type != "" {
		add("type = $%d", filter.Type)
	}
	if filter.From != nil {
		add("created_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("created_at <= $%d", *filter.To)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM stock_movements`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	query := `SELECT ` + movementColumns + ` FROM stock_movements` + where +
		fmt.Sprintf(" ORDER BY created_at DESC, seq DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.StockMovement, 0)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, total, rows.Err()
}

// CountByItem cuenta los movimientos de un item en todas las bodegas.
func (r *MovementRepo) CountByItem(ctx context.Context, itemID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM stock_movements WHERE item_id = $1`, itemID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count movements by item: %w", err)
	}
	return n, nil
}

// LockPair serializa escritores del mismo (item, bodega) con un advisory lock
// transaccional. El kardex no tiene fila de stock que bloquear con FOR UPDATE,
// así que el lock se toma sobre el hash de la clave compuesta; se libera solo
// en el Commit/Rollback de la transacción en curso.
func (r *MovementRepo) LockPair(ctx context.Context, itemID, warehouseID string) error {
	_, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, itemID+":"+warehouseID)
	if err != nil {
		return fmt.Errorf("lock pair: %w", err)
	}
	return nil
}

// ReassignWarehouse mueve el histórico completo de una bodega a otra
// preservando created_at y seq. Única mutación sancionada del kardex;
// solo se usa dentro de la transacción de purga.
func (r *MovementRepo) ReassignWarehouse(ctx context.Context, fromWarehouseID, toWarehouseID string) (int64, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE stock_movements SET warehouse_id = $2 WHERE warehouse_id = $1`,
		fromWarehouseID, toWarehouseID,
	)
	if err != nil {
		return 0, fmt.Errorf("reassign movements: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func collectMovements(rows pgx.Rows) ([]entity.StockMovement, error) {
	var list []entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, *m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var note, transferID, idemKey, createdBy *string
	if err := row.Scan(&m.ID, &m.Seq, &m.ItemID, &m.WarehouseID, &m.Type, &m.Qty,
		&m.ToStock, &note, &transferID, &idemKey, &createdBy, &m.CreatedAt); err != nil {
		return nil, err
	}
	m.Note = deref(note)
	m.TransferID = deref(transferID)
	m.IdempotencyKey = deref(idemKey)
	m.CreatedBy = deref(createdBy)
	return &m, nil
}
