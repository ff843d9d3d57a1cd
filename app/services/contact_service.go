package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/paoluke/tienda/app/models"
	"github.com/paoluke/tienda/app/utils/calc"
	"github.com/paoluke/tienda/app/utils/format"
)

const DefaultMessageTemplate = "Hola! Me interesa:\n\nProducto: {producto}\nSKU: {sku}\nTalla: {talla}\nPrecio: {precio}\n\nVi el producto en PaoLUKE"

// SingleSize is used for {talla} when a product has no size variants.
const SingleSize = "Única"

type ContactLink struct {
	URL     string
	Message string
}

// ConfigSource yields the live store configuration.
type ConfigSource interface {
	Current(ctx context.Context) (models.StoreConfig, error)
}

type ContactService struct {
	config ConfigSource
}

func NewContactService(config ConfigSource) *ContactService {
	return &ContactService{config: config}
}

// Compose builds the WhatsApp deep link for a product and the chosen size.
func (s *ContactService) Compose(ctx context.Context, product models.Product, size string) (*ContactLink, error) {
	if calc.IsSoldOut(product) {
		return nil, models.ErrSoldOut
	}

	size = strings.TrimSpace(size)
	if product.HasSizes() {
		if size == "" {
			return nil, models.ErrSizeRequired
		}
		v, ok := product.Variant(size)
		if !ok {
			return nil, models.NewValidationError("talla", fmt.Sprintf("La talla %s no existe para este producto.", size))
		}
		if v.Stock <= 0 {
			return nil, models.NewValidationError("talla", fmt.Sprintf("La talla %s está agotada.", size))
		}
	} else {
		size = ""
	}

	template := DefaultMessageTemplate
	phone := ""
	cfg, err := s.config.Current(ctx)
	if err != nil {
		log.Printf("Compose: WARN store config unavailable, using default template: %v", err)
	} else {
		phone = cfg.WhatsApp
		if strings.TrimSpace(cfg.MessageTemplate) != "" {
			template = cfg.MessageTemplate
		}
	}

	msg := ComposeMessage(template, product, size)
	return &ContactLink{URL: WhatsAppURL(phone, msg), Message: msg}, nil
}

// ComposeMessage fills the first occurrence of each placeholder and strips
// emoji from the result.
func ComposeMessage(template string, product models.Product, size string) string {
	if size == "" {
		size = SingleSize
	}
	msg := template
	msg = strings.Replace(msg, "{producto}", product.Name, 1)
	msg = strings.Replace(msg, "{sku}", format.FormatSku(product.ID), 1)
	msg = strings.Replace(msg, "{talla}", size, 1)
	msg = strings.Replace(msg, "{precio}", format.FormatPrice(calc.EffectivePrice(product)), 1)
	return format.StripEmoji(msg)
}

// WhatsAppURL percent-encodes the message with spaces as %20.
func WhatsAppURL(phone, message string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", digits, text)
}
