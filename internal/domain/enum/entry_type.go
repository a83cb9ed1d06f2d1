package enum

// EntryType is the direction of a ledger entry. Debit increases what the
// customer owes the shop; credit decreases it.
type EntryType string

const (
	EntryTypeDebit  EntryType = "debit"
	EntryTypeCredit EntryType = "credit"
)

func (t EntryType) IsValid() bool {
	return t == EntryTypeDebit || t == EntryTypeCredit
}
