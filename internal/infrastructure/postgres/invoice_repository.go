package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mobiquip/backoffice-api/internal/domain/entity"
	"github.com/mobiquip/backoffice-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo InvoiceRepository over PostgreSQL (usable with pool or tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository builds the adapter. Pass pool or tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persists the invoice header.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `
		INSERT INTO customer_invoices (
			id, number, customer_id, job_id, status, invoice_date, due_date,
			callout_fee, discount_type, discount_value, vat_exempt, vat_rate,
			parts_total, labour_total, sub_total, discount_amount, tax_amount, net_total,
			notes, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.Number, invoice.CustomerID, nullIfEmpty(invoice.JobID), invoice.Status,
		invoice.InvoiceDate, invoice.DueDate,
		invoice.CalloutFee, invoice.DiscountType, invoice.DiscountValue, invoice.VATExempt, invoice.VATRate,
		invoice.PartsTotal, invoice.LabourTotal, invoice.SubTotal, invoice.DiscountAmount, invoice.TaxAmount, invoice.NetTotal,
		nullIfEmpty(invoice.Notes), invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice number already exists: %w", err)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// Update persists the header, including the recomputed totals.
func (r *InvoiceRepo) Update(invoice *entity.Invoice) error {
	query := `
		UPDATE customer_invoices
		SET customer_id = $2, status = $3, invoice_date = $4, due_date = $5,
		    callout_fee = $6, discount_type = $7, discount_value = $8, vat_exempt = $9, vat_rate = $10,
		    parts_total = $11, labour_total = $12, sub_total = $13, discount_amount = $14, tax_amount = $15, net_total = $16,
		    notes = $17, updated_at = $18
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.CustomerID, invoice.Status, invoice.InvoiceDate, invoice.DueDate,
		invoice.CalloutFee, invoice.DiscountType, invoice.DiscountValue, invoice.VATExempt, invoice.VATRate,
		invoice.PartsTotal, invoice.LabourTotal, invoice.SubTotal, invoice.DiscountAmount, invoice.TaxAmount, invoice.NetTotal,
		nullIfEmpty(invoice.Notes), invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// CreateService persists a labour line.
func (r *InvoiceRepo) CreateService(line *entity.InvoiceService) error {
	query := `
		INSERT INTO invoice_services (id, invoice_id, service_type_id, description, duration, rate, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.InvoiceID, nullIfEmpty(line.ServiceTypeID), line.Description, line.Duration, line.Rate, line.Amount,
	)
	if err != nil {
		return fmt.Errorf("insert invoice service: %w", err)
	}
	return nil
}

// CreatePart persists a part line.
func (r *InvoiceRepo) CreatePart(line *entity.InvoicePart) error {
	query := `
		INSERT INTO invoice_parts (id, invoice_id, part_id, name, quantity, unit_cost, total_cost, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.InvoiceID, nullIfEmpty(line.PartID), line.Name, line.Quantity, line.UnitCost, line.TotalCost, line.Amount,
	)
	if err != nil {
		return fmt.Errorf("insert invoice part: %w", err)
	}
	return nil
}

// DeleteLines removes every line of an invoice (before re-insert on update).
func (r *InvoiceRepo) DeleteLines(invoiceID string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM invoice_services WHERE invoice_id = $1`, invoiceID); err != nil {
		return fmt.Errorf("delete invoice services: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM invoice_parts WHERE invoice_id = $1`, invoiceID); err != nil {
		return fmt.Errorf("delete invoice parts: %w", err)
	}
	return nil
}

const invoiceColumns = `
	id, number, customer_id, COALESCE(job_id, ''), status, invoice_date, due_date,
	callout_fee, discount_type, discount_value, vat_exempt, vat_rate,
	parts_total, labour_total, sub_total, discount_amount, tax_amount, net_total,
	COALESCE(notes, ''), created_at, updated_at`

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(
		&inv.ID, &inv.Number, &inv.CustomerID, &inv.JobID, &inv.Status, &inv.InvoiceDate, &inv.DueDate,
		&inv.CalloutFee, &inv.DiscountType, &inv.DiscountValue, &inv.VATExempt, &inv.VATRate,
		&inv.PartsTotal, &inv.LabourTotal, &inv.SubTotal, &inv.DiscountAmount, &inv.TaxAmount, &inv.NetTotal,
		&inv.Notes, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// GetByID returns an invoice header by ID, nil when missing.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM customer_invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// GetServicesByInvoiceID returns the labour lines in insertion order.
func (r *InvoiceRepo) GetServicesByInvoiceID(invoiceID string) ([]*entity.InvoiceService, error) {
	query := `
		SELECT id, invoice_id, COALESCE(service_type_id, ''), description, duration, rate, amount
		FROM invoice_services WHERE invoice_id = $1
		ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice services: %w", err)
	}
	defer rows.Close()

	var out []*entity.InvoiceService
	for rows.Next() {
		var l entity.InvoiceService
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.ServiceTypeID, &l.Description, &l.Duration, &l.Rate, &l.Amount); err != nil {
			return nil, fmt.Errorf("scan invoice service: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

// GetPartsByInvoiceID returns the part lines in insertion order.
func (r *InvoiceRepo) GetPartsByInvoiceID(invoiceID string) ([]*entity.InvoicePart, error) {
	query := `
		SELECT id, invoice_id, COALESCE(part_id, ''), name, quantity, unit_cost, total_cost, amount
		FROM invoice_parts WHERE invoice_id = $1
		ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice parts: %w", err)
	}
	defer rows.Close()

	var out []*entity.InvoicePart
	for rows.Next() {
		var l entity.InvoicePart
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.PartID, &l.Name, &l.Quantity, &l.UnitCost, &l.TotalCost, &l.Amount); err != nil {
			return nil, fmt.Errorf("scan invoice part: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

// List returns invoice headers, newest first.
func (r *InvoiceRepo) List(limit, offset int) ([]*entity.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM customer_invoices
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var out []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

// NextNumber allocates the next invoice number for a prefix. The upsert on
// the counter row serialises concurrent allocations; called inside the
// billing transaction so an aborted create does not burn a number visible to
// a committed one.
func (r *InvoiceRepo) NextNumber(prefix string) (string, error) {
	query := `
		INSERT INTO invoice_counters (prefix, value)
		VALUES ($1, 1)
		ON CONFLICT (prefix) DO UPDATE SET value = invoice_counters.value + 1
		RETURNING value`
	var value int64
	if err := r.q.QueryRow(context.Background(), query, prefix).Scan(&value); err != nil {
		return "", fmt.Errorf("next invoice number: %w", err)
	}
	return fmt.Sprintf("%s-%06d", prefix, value), nil
}
