package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jforero/kardex-api/internal/application/dto"
	"github.com/jforero/kardex-api/internal/application/usecase"
	"github.com/jforero/kardex-api/internal/domain"
	"github.com/jforero/kardex-api/internal/domain/entity"
	"github.com/jforero/kardex-api/internal/domain/repository"
)

func str(s string) *string { return &s }
func boolPtr(b bool) *bool { return &b }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestItemCreate_Defaults(t *testing.T) {
	uc := usecase.NewItemUseCase(newMemItemRepo(), &memMovementRepo{})

	out, err := uc.Create(context.Background(), "admin-1", dto.CreateItemRequest{Name: "  Tornillo 3mm  "})
	require.NoError(t, err)

	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "Tornillo 3mm", out.Name, "el nombre se guarda sin espacios sobrantes")
	assert.True(t, out.MinStock.IsZero(), "minStock por defecto es 0")
	assert.True(t, out.Active, "los items nacen activos")
	assert.Equal(t, "admin-1", out.CreatedBy)
}

func TestItemCreate_Validacion(t *testing.T) {
	uc := usecase.NewItemUseCase(newMemItemRepo(), &memMovementRepo{})
	ctx := context.Background()

	_, err := uc.Create(ctx, "a", dto.CreateItemRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "nombre vacío")

	_, err = uc.Create(ctx, "a", dto.CreateItemRequest{Name: "Tornillo", MinStock: decPtr("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "minStock negativo")
}

func TestItemUpdate_CamposOpcionales(t *testing.T) {
	repo := newMemItemRepo()
	uc := usecase.NewItemUseCase(repo, &memMovementRepo{})
	ctx := context.Background()

	created, err := uc.Create(ctx, "a", dto.CreateItemRequest{Name: "Tornillo", Category: "ferretería"})
	require.NoError(t, err)

	out, err := uc.Update(ctx, created.ID, "b", dto.UpdateItemRequest{MinStock: decPtr("25")})
	require.NoError(t, err)

	assert.Equal(t, "Tornillo", out.Name, "los campos ausentes no cambian")
	assert.Equal(t, "ferretería", out.Category)
	assert.True(t, out.MinStock.Equal(decimal.NewFromInt(25)))
	assert.Equal(t, "b", out.UpdatedBy)

	_, err = uc.Update(ctx, created.ID, "b", dto.UpdateItemRequest{Name: str("  ")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "un nombre presente no puede quedar vacío")

	_, err = uc.Update(ctx, "nope", "b", dto.UpdateItemRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemDeactivate_EsBajaLogica(t *testing.T) {
	repo := newMemItemRepo()
	uc := usecase.NewItemUseCase(repo, &memMovementRepo{})
	ctx := context.Background()

	created, err := uc.Create(ctx, "a", dto.CreateItemRequest{Name: "Tornillo"})
	require.NoError(t, err)

	require.NoError(t, uc.Deactivate(ctx, created.ID, "b"))

	out, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, out.Active, "el item sigue existiendo pero inactivo")
}

func TestItemPurge_SoloSinMovimientos(t *testing.T) {
	repo := newMemItemRepo()
	movRepo := &memMovementRepo{}
	uc := usecase.NewItemUseCase(repo, movRepo)
	ctx := context.Background()

	created, err := uc.Create(ctx, "a", dto.CreateItemRequest{Name: "Tornillo"})
	require.NoError(t, err)

	// Con kardex: la purga se rechaza y el item sobrevive.
	require.NoError(t, movRepo.Create(ctx, &entity.StockMovement{
		ID: "m1", ItemID: created.ID, WarehouseID: "w1", Type: entity.MovementTypeIN,
		Qty: decimal.NewFromInt(1), CreatedAt: time.Now(),
	}))
	err = uc.Purge(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrItemHasMoves)
	_, err = uc.GetByID(ctx, created.ID)
	assert.NoError(t, err)

	// Sin kardex: la purga procede.
	other, err := uc.Create(ctx, "a", dto.CreateItemRequest{Name: "Tuerca"})
	require.NoError(t, err)
	require.NoError(t, uc.Purge(ctx, other.ID))
	_, err = uc.GetByID(ctx, other.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemList_FiltraPorActivo(t *testing.T) {
	repo := newMemItemRepo()
	uc := usecase.NewItemUseCase(repo, &memMovementRepo{})
	ctx := context.Background()

	_, err := uc.Create(ctx, "a", dto.CreateItemRequest{Name: "Activo"})
	require.NoError(t, err)
	inactive, err := uc.Create(ctx, "a", dto.CreateItemRequest{Name: "Inactivo", Active: boolPtr(false)})
	require.NoError(t, err)

	out, err := uc.List(ctx, repository.ItemFilter{Active: boolPtr(true), Limit: 50})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.NotEqual(t, inactive.ID, out.Items[0].ID)
}
