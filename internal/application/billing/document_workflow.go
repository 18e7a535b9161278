package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/application/inventory"
	"github.com/jhoicas/facturacion-api/internal/domain"
	domainbilling "github.com/jhoicas/facturacion-api/internal/domain/billing"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
	"github.com/jhoicas/facturacion-api/pkg/logger"
)

// ReversalPolicy decide cómo se revierten los efectos de stock de un documento.
type ReversalPolicy struct {
	// CompensatingMovements registra un movimiento de dirección contraria por cada reversión.
	CompensatingMovements bool
	// ReverseOnDelete revierte el stock de las líneas al eliminar el documento.
	ReverseOnDelete bool
}

// DocumentWorkflow crea, modifica y elimina documentos manteniendo stock y libro consistentes.
// Cada llamada corre en una sola transacción.
type DocumentWorkflow struct {
	txRunner     BillingTxRunner
	docRepo      repository.DocumentRepository
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
	ledger       *inventory.StockLedger
	policy       ReversalPolicy
	log          *logger.Logger
	now          func() time.Time
}

// NewDocumentWorkflow construye el flujo de documentos.
func NewDocumentWorkflow(
	txRunner BillingTxRunner,
	docRepo repository.DocumentRepository,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
	ledger *inventory.StockLedger,
	policy ReversalPolicy,
	log *logger.Logger,
) *DocumentWorkflow {
	return &DocumentWorkflow{
		txRunner:     txRunner,
		docRepo:      docRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
		ledger:       ledger,
		policy:       policy,
		log:          log,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Create persiste cabecera y líneas y aplica el efecto de stock de cada línea.
// VENTA genera salidas (sin piso de stock); COMPRA genera entradas.
func (w *DocumentWorkflow) Create(ctx context.Context, in dto.DocumentRequest) (*dto.DocumentResponse, error) {
	op, lines, err := w.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	doc := &entity.Document{
		Type:       in.Type,
		Number:     in.Number,
		Operation:  op,
		CustomerID: in.CustomerID,
		SupplierID: in.SupplierID,
		Date:       w.now(),
	}
	reference := uuid.New().String()

	err = w.txRunner.RunDocument(ctx, func(
		docRepo repository.DocumentRepository,
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
	) error {
		if err := docRepo.Create(ctx, doc); err != nil {
			return err
		}
		created, err := w.postLines(ctx, docRepo, productRepo, movRepo, doc, lines, reference)
		if err != nil {
			return err
		}
		doc.Lines = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	w.log.Info().
		Int64("documento_id", doc.ID).
		Str("numero", doc.Number).
		Str("operacion", string(doc.Operation)).
		Int("lineas", len(doc.Lines)).
		Str("referencia", reference).
		Msg("documento registrado")
	return dto.FromDocument(doc), nil
}

// Update reemplaza el documento completo. Primero revierte todas las líneas existentes con la
// operación original, luego borra las líneas, sobrescribe la cabecera y aplica las nuevas líneas
// con la operación nueva.
func (w *DocumentWorkflow) Update(ctx context.Context, id int64, in dto.DocumentRequest) (*dto.DocumentResponse, error) {
	op, lines, err := w.validate(ctx, in)
	if err != nil {
		return nil, err
	}
	reference := uuid.New().String()
	var doc *entity.Document

	err = w.txRunner.RunDocument(ctx, func(
		docRepo repository.DocumentRepository,
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
	) error {
		current, err := docRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}

		if err := w.reverseLines(ctx, productRepo, movRepo, current, reference); err != nil {
			return err
		}
		if err := docRepo.DeleteLines(ctx, id); err != nil {
			return err
		}

		current.Type = in.Type
		current.Number = in.Number
		current.Operation = op
		current.CustomerID = in.CustomerID
		current.SupplierID = in.SupplierID
		if err := docRepo.UpdateHeader(ctx, current); err != nil {
			return err
		}

		created, err := w.postLines(ctx, docRepo, productRepo, movRepo, current, lines, reference)
		if err != nil {
			return err
		}
		current.Lines = created
		doc = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	w.log.Info().
		Int64("documento_id", doc.ID).
		Str("operacion", string(doc.Operation)).
		Int("lineas", len(doc.Lines)).
		Str("referencia", reference).
		Bool("compensatorios", w.policy.CompensatingMovements).
		Msg("documento actualizado")
	return dto.FromDocument(doc), nil
}

// Delete elimina el documento y sus líneas. El stock solo se revierte si la política lo indica.
func (w *DocumentWorkflow) Delete(ctx context.Context, id int64) error {
	reference := uuid.New().String()
	err := w.txRunner.RunDocument(ctx, func(
		docRepo repository.DocumentRepository,
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
	) error {
		current, err := docRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if w.policy.ReverseOnDelete {
			if err := w.reverseLines(ctx, productRepo, movRepo, current, reference); err != nil {
				return err
			}
		}
		return docRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	w.log.Info().
		Int64("documento_id", id).
		Bool("stock_revertido", w.policy.ReverseOnDelete).
		Msg("documento eliminado")
	return nil
}

// Get devuelve cabecera, líneas y total.
func (w *DocumentWorkflow) Get(ctx context.Context, id int64) (*dto.DocumentResponse, error) {
	doc, err := w.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return dto.FromDocument(doc), nil
}

// List lista documentos con sus líneas.
func (w *DocumentWorkflow) List(ctx context.Context, skip, limit int) ([]*dto.DocumentResponse, error) {
	list, err := w.docRepo.List(ctx, limit, skip)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DocumentResponse, 0, len(list))
	for _, d := range list {
		if d.Lines == nil {
			lines, err := w.docRepo.GetLines(ctx, d.ID)
			if err != nil {
				return nil, err
			}
			d.Lines = lines
		}
		out = append(out, dto.FromDocument(d))
	}
	return out, nil
}

// validate normaliza la operación, valida cabecera y líneas y comprueba cliente/proveedor
// antes de abrir la transacción.
func (w *DocumentWorkflow) validate(ctx context.Context, in dto.DocumentRequest) (entity.Operation, []domainbilling.LineRequest, error) {
	op, _ := entity.ParseOperation(in.Operation)
	if err := domainbilling.ValidateHeader(in.Type, in.Number, op); err != nil {
		return "", nil, err
	}
	lines := make([]domainbilling.LineRequest, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, domainbilling.LineRequest{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	if err := domainbilling.ValidateLines(lines); err != nil {
		return "", nil, err
	}

	if in.CustomerID != nil {
		c, err := w.customerRepo.GetByID(ctx, *in.CustomerID)
		if err != nil {
			return "", nil, err
		}
		if c == nil {
			return "", nil, fmt.Errorf("%w: cliente %d", domain.ErrNotFound, *in.CustomerID)
		}
	}
	if in.SupplierID != nil {
		s, err := w.supplierRepo.GetByID(ctx, *in.SupplierID)
		if err != nil {
			return "", nil, err
		}
		if s == nil {
			return "", nil, fmt.Errorf("%w: proveedor %d", domain.ErrNotFound, *in.SupplierID)
		}
	}
	return op, lines, nil
}

// postLines resuelve cada producto, captura el precio según la operación, persiste la línea
// y aplica su efecto en el libro. Un producto inexistente aborta toda la llamada.
func (w *DocumentWorkflow) postLines(
	ctx context.Context,
	docRepo repository.DocumentRepository,
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
	doc *entity.Document,
	lines []domainbilling.LineRequest,
	reference string,
) ([]*entity.DocumentLine, error) {
	dir := doc.Operation.Direction()
	posting := inventory.Posting{Reference: reference, DocumentID: &doc.ID}
	created := make([]*entity.DocumentLine, 0, len(lines))

	for i, l := range lines {
		product, err := productRepo.GetByID(ctx, l.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("línea %d, producto %d: %w", i+1, l.ProductID, domain.ErrUnresolvedProduct)
		}
		line := entity.NewDocumentLine(doc.ID, product, l.Quantity, doc.Operation)
		if err := docRepo.CreateLine(ctx, line); err != nil {
			return nil, err
		}
		if _, err := w.ledger.Post(ctx, productRepo, movRepo, product.ID, l.Quantity, dir, posting); err != nil {
			return nil, err
		}
		created = append(created, line)
	}
	if err := domainbilling.CheckSubtotals(created); err != nil {
		return nil, err
	}
	return created, nil
}

// reverseLines deshace el efecto de stock de las líneas actuales usando la operación original del documento.
func (w *DocumentWorkflow) reverseLines(
	ctx context.Context,
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
	doc *entity.Document,
	reference string,
) error {
	dir := doc.Operation.Direction()
	posting := inventory.Posting{Reference: reference, DocumentID: &doc.ID}
	for _, l := range doc.Lines {
		err := w.ledger.Reverse(ctx, productRepo, movRepo, l.Quantity, dir, l.ProductID, posting, w.policy.CompensatingMovements)
		if err != nil {
			// El producto de una línea antigua pudo desaparecer; se trata como no resuelto.
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("revertir producto %d: %w", l.ProductID, domain.ErrUnresolvedProduct)
			}
			return err
		}
	}
	return nil
}
