package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

// ErrInvalidMovementType tipo de movimiento distinto de entrada/salida.
var ErrInvalidMovementType = fmt.Errorf("%w: tipo de movimiento inválido", domain.ErrInvalidInput)

// RegisterMovementUseCase registra movimientos manuales (sin documento) de forma transaccional.
// A diferencia del flujo de documentos, aquí una salida nunca deja el stock negativo.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	ledger   *StockLedger
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner, ledger *StockLedger) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, ledger: ledger}
}

// RegisterMovement valida el tipo, ajusta el stock y guarda el movimiento en una sola transacción.
// Salida con cantidad > stock_actual retorna domain.ErrInsufficientStock y no cambia nada.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, in dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	dir := entity.Direction(in.Type)
	if !dir.Valid() {
		return nil, ErrInvalidMovementType
	}
	if in.Quantity <= 0 || in.ProductID <= 0 {
		return nil, domain.ErrInvalidInput
	}

	var (
		mov     *entity.Movement
		product *entity.Product
	)
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
	) error {
		p, err := productRepo.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}

		var stock int
		switch dir {
		case entity.DirectionIn:
			stock, err = uc.ledger.Apply(ctx, productRepo, in.ProductID, in.Quantity, dir)
		case entity.DirectionOut:
			// Actualización condicional: solo resta si stock_actual >= cantidad.
			stock, err = productRepo.DecreaseStockIfAvailable(ctx, in.ProductID, in.Quantity)
		}
		if err != nil {
			return err
		}
		p.Stock = stock
		product = p

		mov, err = uc.ledger.Record(ctx, movRepo, in.ProductID, in.Quantity, dir, uc.ledger.now(), Posting{})
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			return nil, domain.ErrInsufficientStock
		}
		return nil, err
	}
	return dto.FromMovement(mov, product), nil
}
