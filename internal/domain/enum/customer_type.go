package enum

// CustomerType classifies a customer account. Walk-ins are created ad hoc at
// the counter; B2B retailers are onboarded explicitly with a credit limit.
type CustomerType string

const (
	CustomerTypeB2B    CustomerType = "b2b"
	CustomerTypeWalkIn CustomerType = "walkin"
)

func (t CustomerType) IsValid() bool {
	return t == CustomerTypeB2B || t == CustomerTypeWalkIn
}
