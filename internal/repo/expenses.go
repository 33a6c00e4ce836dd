package repo

import "github.com/dnoice/workforce-tracker/internal/store"

func (r *Repository) AddExpense(ex store.Expense) (*store.Expense, error) {
	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	ex.ID = newID()
	ex.CreatedAt = store.Timestamp()
	doc.Expenses = append(doc.Expenses, ex)

	return &ex, r.store.Save(doc)
}

// ListExpensesInRange filters on the expense date, inclusive.
func (r *Repository) ListExpensesInRange(start, end string) ([]store.Expense, error) {
	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	var expenses []store.Expense
	for _, ex := range doc.Expenses {
		if inRange(ex.Date, start, end) {
			expenses = append(expenses, ex)
		}
	}
	return expenses, nil
}
