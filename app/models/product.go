package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductStatus string

const (
	StatusAvailable ProductStatus = "disponible"
	StatusReserved  ProductStatus = "reservado"
	StatusSold      ProductStatus = "vendido"
)

// ProductStatuses lists the valid statuses in the order the admin shows them.
var ProductStatuses = []ProductStatus{StatusAvailable, StatusReserved, StatusSold}

func (s ProductStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusReserved, StatusSold:
		return true
	}
	return false
}

// Variant is a size option of a product. The short json keys match the rows
// already stored in the hosted database.
type Variant struct {
	Size  string `json:"t" yaml:"talla"`
	Stock int    `json:"s" yaml:"stock"`
}

type Product struct {
	ID             int64            `gorm:"primaryKey;autoIncrement"`
	Name           string           `gorm:"column:nombre;size:255;not null"`
	Price          decimal.Decimal  `gorm:"column:precio;type:decimal(12,0);not null"`
	SalePrice      *decimal.Decimal `gorm:"column:precio_oferta;type:decimal(12,0)"`
	Photos         []string         `gorm:"column:fotos;type:json;serializer:json"`
	CategoryID     int64            `gorm:"column:categoria_id;not null;index"`
	SubcategoryID  int64            `gorm:"column:subcategoria_id;index"`
	Variants       []Variant        `gorm:"column:variantes;type:json;serializer:json"`
	Location       string           `gorm:"column:ubicacion;size:100"`
	Status         ProductStatus    `gorm:"column:estado;size:20;not null;default:disponible;index"`
	Featured       bool             `gorm:"column:destacado;not null;default:false"`
	WhatsAppClicks int              `gorm:"column:clicks_whatsapp;not null;default:0"`
	CreatedAt      time.Time        `gorm:"column:created_at;index"`
	SoldAt         *time.Time       `gorm:"column:vendido_at"`
}

func (Product) TableName() string { return "productos" }

func (p *Product) HasSale() bool {
	return p.SalePrice != nil
}

func (p *Product) HasSizes() bool {
	return len(p.Variants) > 0
}

// Variant returns the variant with the given size label.
func (p *Product) Variant(size string) (Variant, bool) {
	for _, v := range p.Variants {
		if v.Size == size {
			return v, true
		}
	}
	return Variant{}, false
}
