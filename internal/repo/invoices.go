package repo

import "github.com/dnoice/workforce-tracker/internal/store"

// InvoicePatch holds a partial update; nil fields are left untouched.
type InvoicePatch struct {
	Number     *string
	ClientName *string
	Amount     *float64
	Status     *string
	Date       *string
	DueDate    *string
}

func (p InvoicePatch) apply(inv *store.Invoice) {
	if p.Number != nil {
		inv.Number = *p.Number
	}
	if p.ClientName != nil {
		inv.ClientName = *p.ClientName
	}
	if p.Amount != nil {
		inv.Amount = *p.Amount
	}
	if p.Status != nil {
		inv.Status = *p.Status
	}
	if p.Date != nil {
		inv.Date = *p.Date
	}
	if p.DueDate != nil {
		inv.DueDate = *p.DueDate
	}
}

func (r *Repository) AddInvoice(inv store.Invoice) (*store.Invoice, error) {
	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	inv.ID = newID()
	inv.CreatedAt = store.Timestamp()
	if inv.Status == "" {
		inv.Status = store.InvoiceDraft
	}
	doc.Invoices = append(doc.Invoices, inv)

	return &inv, r.store.Save(doc)
}

func (r *Repository) GetInvoice(id string) (*store.Invoice, error) {
	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range doc.Invoices {
		if doc.Invoices[i].ID == id {
			return &doc.Invoices[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *Repository) ListInvoices() ([]store.Invoice, error) {
	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	return doc.Invoices, nil
}

// ListInvoicesInRange filters on the invoice date, inclusive.
func (r *Repository) ListInvoicesInRange(start, end string) ([]store.Invoice, error) {
	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	var invoices []store.Invoice
	for _, inv := range doc.Invoices {
		if inRange(inv.Date, start, end) {
			invoices = append(invoices, inv)
		}
	}
	return invoices, nil
}

func (r *Repository) UpdateInvoice(id string, patch InvoicePatch) (*store.Invoice, error) {
	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	for i := range doc.Invoices {
		if doc.Invoices[i].ID == id {
			patch.apply(&doc.Invoices[i])
			return &doc.Invoices[i], r.store.Save(doc)
		}
	}
	return nil, ErrNotFound
}

func (r *Repository) DeleteInvoice(id string) error {
	doc, err := r.load()
	if err != nil {
		return err
	}
	for i := range doc.Invoices {
		if doc.Invoices[i].ID == id {
			doc.Invoices = append(doc.Invoices[:i], doc.Invoices[i+1:]...)
			return r.store.Save(doc)
		}
	}
	return ErrNotFound
}
