package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateInvoiceNumber produces a short unique invoice number, e.g. INV-9F3A2B1C.
func GenerateInvoiceNumber() string {
	return "INV-" + strings.ToUpper(uuid.New().String()[:8])
}

// GenerateOrderNumber produces a short unique order number, e.g. ORD-4C7D1E.
func GenerateOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.New().String()[:6])
}
