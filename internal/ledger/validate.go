package ledger

import "strings"

const minNameLength = 2

// Validate checks the draft against the business rules. It is called before
// any identity assignment or write; a non-nil result blocks the mutation
// entirely.
func (d TransactionDraft) Validate() error {
	if !d.Type.Valid() {
		return &ValidationError{Field: "type", Reason: "must be income or expense"}
	}
	if !d.Amount.IsPositive() {
		return &ValidationError{Field: "amount", Reason: "must be positive"}
	}
	if d.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "is required"}
	}

	if d.Type == TypeExpense {
		if len(strings.TrimSpace(d.Beneficiary)) < minNameLength {
			return &ValidationError{Field: "beneficiary", Reason: "must be at least 2 characters for an expense"}
		}
		if strings.TrimSpace(d.Category) == "" {
			return &ValidationError{Field: "category", Reason: "is required for an expense"}
		}
		if strings.TrimSpace(d.Domain) == "" {
			return &ValidationError{Field: "domain", Reason: "is required for an expense"}
		}
	}
	return nil
}

// ValidateBudget checks budget fields for create and update.
func ValidateBudget(b Budget) error {
	if len(strings.TrimSpace(b.Name)) < minNameLength {
		return &ValidationError{Field: "name", Reason: "must be at least 2 characters"}
	}
	if !b.Amount.IsPositive() {
		return &ValidationError{Field: "amount", Reason: "must be positive"}
	}
	return nil
}
