package models

import "github.com/shopspring/decimal"

// Shipping carriers offered on the sale ticket.
const (
	CarrierBlueExpress = "Blue Express"
	CarrierChilexpress = "Chilexpress"
	CarrierStarken     = "Starken"
	CarrierPickup      = "Retiro en tienda"
)

var Carriers = []string{CarrierBlueExpress, CarrierChilexpress, CarrierStarken, CarrierPickup}

// TicketLineItem and Ticket only live for the duration of the admin ticket
// form; they are never written to the database.
type TicketLineItem struct {
	ID        int
	Name      string `validate:"required"`
	Sku       string
	Size      string
	Price     decimal.Decimal
	Quantity  int `validate:"min=1"`
	ProductID *int64
}

func (l TicketLineItem) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Ticket struct {
	Customer string `validate:"required"`
	Phone    string
	Address  string
	Lines    []TicketLineItem `validate:"min=1,dive"`
	Carrier  string
}
