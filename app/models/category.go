package models

type Category struct {
	ID     int64  `gorm:"primaryKey;autoIncrement" json:"id" yaml:"id"`
	Name   string `gorm:"column:nombre;size:100;not null" json:"nombre" yaml:"nombre"`
	Emoji  string `gorm:"column:emoji;size:16" json:"emoji" yaml:"emoji"`
	Active bool   `gorm:"column:activa;not null;default:true" json:"activa" yaml:"activa"`
	Order  int    `gorm:"column:orden;not null;default:0;index" json:"orden" yaml:"orden"`

	Subcategories []Subcategory `gorm:"foreignKey:CategoryID" json:"-" yaml:"subcategorias"`
}

func (Category) TableName() string { return "categorias" }

type Subcategory struct {
	ID           int64    `gorm:"primaryKey;autoIncrement" json:"id" yaml:"id"`
	CategoryID   int64    `gorm:"column:categoria_id;not null;index" json:"categoria_id" yaml:"categoria_id"`
	Name         string   `gorm:"column:nombre;size:100;not null" json:"nombre" yaml:"nombre"`
	DefaultSizes []string `gorm:"column:tallas_default;type:json;serializer:json" json:"tallas_default" yaml:"tallas_default"`
}

func (Subcategory) TableName() string { return "subcategorias" }
