package models

// StoreConfig is the singleton configuration row. The json tags follow the
// column names so rows pushed by the database (row_to_json) decode directly.
type StoreConfig struct {
	ID                int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	StoreName         string `gorm:"column:nombre_tienda;size:100;not null" json:"nombre_tienda" validate:"required,max=100"`
	Description       string `gorm:"column:descripcion;type:text" json:"descripcion"`
	Address           string `gorm:"column:direccion;size:255" json:"direccion" validate:"max=255"`
	Hours             string `gorm:"column:horario;size:255" json:"horario" validate:"max=255"`
	WhatsApp          string `gorm:"column:whatsapp;size:20;not null" json:"whatsapp" validate:"required,number,min=8,max=15"`
	Email             string `gorm:"column:email;size:255" json:"email" validate:"omitempty,email"`
	Instagram         string `gorm:"column:instagram;size:100" json:"instagram" validate:"max=100"`
	Facebook          string `gorm:"column:facebook;size:100" json:"facebook" validate:"max=100"`
	BannerActive      bool   `gorm:"column:banner_activo;not null;default:false" json:"banner_activo"`
	BannerText        string `gorm:"column:banner_texto;size:255" json:"banner_texto" validate:"max=255"`
	BannerSubtext     string `gorm:"column:banner_subtexto;size:255" json:"banner_subtexto" validate:"max=255"`
	BannerEmoji       string `gorm:"column:banner_emoji;size:16" json:"banner_emoji"`
	MessageTemplate   string `gorm:"column:mensaje_whatsapp_template;type:text" json:"mensaje_whatsapp_template"`
	LogoSVG           string `gorm:"column:logo_svg;type:text" json:"logo_svg"`
	HideSoldAfterDays int    `gorm:"column:dias_ocultar_vendidos;not null;default:0" json:"dias_ocultar_vendidos" validate:"min=0"`
}

func (StoreConfig) TableName() string { return "config" }
