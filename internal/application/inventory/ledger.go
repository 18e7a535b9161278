package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

// Posting identifica el origen de los movimientos que registra el libro.
// Reference agrupa todos los movimientos de una misma llamada (UUID); DocumentID es opcional.
type Posting struct {
	Reference  string
	DocumentID *int64
}

// StockLedger mantiene stock_actual por producto y el libro append-only de movimientos.
// Trabaja siempre con los repositorios de la transacción del caller.
type StockLedger struct {
	now func() time.Time
}

// NewStockLedger construye el libro con el reloj del sistema (UTC).
func NewStockLedger() *StockLedger {
	return &StockLedger{now: func() time.Time { return time.Now().UTC() }}
}

// WithClock reemplaza el reloj (tests).
func (l *StockLedger) WithClock(now func() time.Time) *StockLedger {
	return &StockLedger{now: now}
}

// Apply suma (entrada) o resta (salida) quantity a stock_actual. No hay piso: el stock puede quedar negativo.
// El ajuste es un incremento atómico en almacenamiento, nunca lectura + escritura.
func (l *StockLedger) Apply(
	ctx context.Context,
	productRepo repository.ProductRepository,
	productID int64, quantity int, dir entity.Direction,
) (int, error) {
	if !dir.Valid() || quantity <= 0 {
		return 0, domain.ErrInvalidInput
	}
	stock, err := productRepo.AdjustStock(ctx, productID, dir.Delta(quantity))
	if err != nil {
		return 0, fmt.Errorf("ajustar stock producto %d: %w", productID, err)
	}
	return stock, nil
}

// Record agrega un movimiento inmutable al libro.
func (l *StockLedger) Record(
	ctx context.Context,
	movRepo repository.MovementRepository,
	productID int64, quantity int, dir entity.Direction,
	at time.Time, posting Posting,
) (*entity.Movement, error) {
	mov := &entity.Movement{
		ProductID:  productID,
		Direction:  dir,
		Quantity:   quantity,
		Date:       at,
		Reference:  posting.Reference,
		DocumentID: posting.DocumentID,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, fmt.Errorf("registrar movimiento: %w", err)
	}
	return mov, nil
}

// Post aplica el efecto sobre el stock y registra el movimiento con la hora actual.
func (l *StockLedger) Post(
	ctx context.Context,
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
	productID int64, quantity int, dir entity.Direction,
	posting Posting,
) (*entity.Movement, error) {
	if _, err := l.Apply(ctx, productRepo, productID, quantity, dir); err != nil {
		return nil, err
	}
	return l.Record(ctx, movRepo, productID, quantity, dir, l.now(), posting)
}

// PostDelta registra la entrada (delta > 0) o salida (delta < 0) y devuelve el stock resultante
// tal como quedó en almacenamiento. delta 0 no hace nada.
func (l *StockLedger) PostDelta(
	ctx context.Context,
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
	productID int64, delta int,
	posting Posting,
) (int, bool, error) {
	if delta == 0 {
		return 0, false, nil
	}
	dir, qty := entity.DirectionIn, delta
	if delta < 0 {
		dir, qty = entity.DirectionOut, -delta
	}
	stock, err := l.Apply(ctx, productRepo, productID, qty, dir)
	if err != nil {
		return 0, false, err
	}
	if _, err := l.Record(ctx, movRepo, productID, qty, dir, l.now(), posting); err != nil {
		return 0, false, err
	}
	return stock, true, nil
}

// Reverse deshace el efecto de un movimiento previo aplicando la dirección contraria.
// No modifica el movimiento original. Solo registra un movimiento compensatorio si compensate es true.
func (l *StockLedger) Reverse(
	ctx context.Context,
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
	quantity int, originalDir entity.Direction, productID int64,
	posting Posting, compensate bool,
) error {
	opposite := originalDir.Opposite()
	if _, err := l.Apply(ctx, productRepo, productID, quantity, opposite); err != nil {
		return err
	}
	if !compensate {
		return nil
	}
	_, err := l.Record(ctx, movRepo, productID, quantity, opposite, l.now(), posting)
	return err
}
