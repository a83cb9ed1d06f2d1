package enum

// PaymentMode is how an invoice was settled at the counter.
type PaymentMode string

const (
	PaymentModeCash   PaymentMode = "cash"
	PaymentModeOnline PaymentMode = "online"
	PaymentModeCredit PaymentMode = "credit"
	PaymentModeMixed  PaymentMode = "mixed"
)

func (m PaymentMode) IsValid() bool {
	switch m {
	case PaymentModeCash, PaymentModeOnline, PaymentModeCredit, PaymentModeMixed:
		return true
	}
	return false
}
