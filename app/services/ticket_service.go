package services

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mattn/go-runewidth"
	"github.com/paoluke/tienda/app/models"
	"github.com/paoluke/tienda/app/utils/calc"
	"github.com/paoluke/tienda/app/utils/format"
	"github.com/shopspring/decimal"
)

// TicketWidth is the column count of a 58mm thermal roll.
const TicketWidth = 32

const (
	blankField         = "________________"
	defaultStoreName   = "PAOLUKE"
	defaultInstagram   = "paoluke.cl"
	ticketDateLayout   = "02-01-2006 15:04"
	printBlockedReason = "Completa los datos obligatorios para imprimir"
)

var ticketValidator = validator.New()

// TicketComposer edits an in-progress sale ticket. A ticket always keeps at
// least one line.
type TicketComposer struct {
	ticket models.Ticket
}

func NewTicketComposer() *TicketComposer {
	return &TicketComposer{ticket: models.Ticket{
		Lines:   []models.TicketLineItem{{ID: 1, Quantity: 1}},
		Carrier: models.CarrierBlueExpress,
	}}
}

// ComposerFromTicket resumes a ticket posted back by the admin form.
func ComposerFromTicket(t models.Ticket) *TicketComposer {
	c := &TicketComposer{ticket: t}
	c.ticket.Lines = append([]models.TicketLineItem(nil), t.Lines...)
	if len(c.ticket.Lines) == 0 {
		c.ticket.Lines = []models.TicketLineItem{{ID: 1, Quantity: 1}}
	}
	for i := range c.ticket.Lines {
		clampLine(&c.ticket.Lines[i])
	}
	c.SetCarrier(t.Carrier)
	return c
}

func (c *TicketComposer) Ticket() models.Ticket {
	t := c.ticket
	t.Lines = append([]models.TicketLineItem(nil), c.ticket.Lines...)
	return t
}

func (c *TicketComposer) SetCustomer(name, phone, address string) {
	c.ticket.Customer = strings.TrimSpace(name)
	c.ticket.Phone = strings.TrimSpace(phone)
	c.ticket.Address = strings.TrimSpace(address)
}

// SetCarrier falls back to Blue Express for unknown carriers.
func (c *TicketComposer) SetCarrier(carrier string) {
	for _, known := range models.Carriers {
		if carrier == known {
			c.ticket.Carrier = carrier
			return
		}
	}
	c.ticket.Carrier = models.CarrierBlueExpress
}

func (c *TicketComposer) nextID() int {
	max := 0
	for _, l := range c.ticket.Lines {
		if l.ID > max {
			max = l.ID
		}
	}
	return max + 1
}

// AddLine appends a blank line and returns its id.
func (c *TicketComposer) AddLine() int {
	id := c.nextID()
	c.ticket.Lines = append(c.ticket.Lines, models.TicketLineItem{ID: id, Quantity: 1})
	return id
}

// RemoveLine is a no-op when id is the only line left.
func (c *TicketComposer) RemoveLine(id int) {
	if len(c.ticket.Lines) <= 1 {
		return
	}
	out := c.ticket.Lines[:0]
	for _, l := range c.ticket.Lines {
		if l.ID != id {
			out = append(out, l)
		}
	}
	c.ticket.Lines = out
}

func clampLine(l *models.TicketLineItem) {
	if l.Quantity < 1 {
		l.Quantity = 1
	}
	if l.Price.IsNegative() {
		l.Price = decimal.Zero
	}
}

// UpdateLine replaces the editable fields of line id.
func (c *TicketComposer) UpdateLine(id int, line models.TicketLineItem) {
	for i := range c.ticket.Lines {
		if c.ticket.Lines[i].ID != id {
			continue
		}
		line.ID = id
		clampLine(&line)
		c.ticket.Lines[i] = line
		return
	}
}

// SelectSoldProduct fills line id from a sold product: first variant size
// (or Única) and the effective price.
func (c *TicketComposer) SelectSoldProduct(id int, p models.Product) {
	size := SingleSize
	if len(p.Variants) > 0 && p.Variants[0].Size != "" {
		size = p.Variants[0].Size
	}
	productID := p.ID

	for i := range c.ticket.Lines {
		l := &c.ticket.Lines[i]
		if l.ID != id {
			continue
		}
		l.Name = p.Name
		l.Sku = format.FormatSku(p.ID)
		l.Size = size
		l.Price = calc.EffectivePrice(p)
		l.ProductID = &productID
		return
	}
}

func (c *TicketComposer) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.ticket.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Validate blocks printing until the customer and every line name are set.
func (c *TicketComposer) Validate() error {
	if err := ticketValidator.Struct(c.ticket); err != nil {
		return models.NewValidationError("ticket", printBlockedReason)
	}
	return nil
}

func (c *TicketComposer) CanPrint() bool {
	return c.Validate() == nil
}

// Render lays the ticket out as fixed-width text for the thermal printer.
// cfg may be nil when the store configuration could not be loaded.
func (c *TicketComposer) Render(cfg *models.StoreConfig, now time.Time) string {
	var store models.StoreConfig
	if cfg != nil {
		store = *cfg
	}

	name := strings.TrimSpace(format.StripEmoji(store.StoreName))
	if name == "" {
		name = defaultStoreName
	}
	instagram := strings.TrimPrefix(strings.TrimSpace(store.Instagram), "@")
	if instagram == "" {
		instagram = defaultInstagram
	}

	var doc ticketDoc
	doc.center(strings.ToUpper(name))
	doc.rule('=')
	doc.text("Fecha: " + now.Format(ticketDateLayout))
	doc.text("Cliente: " + orBlank(c.ticket.Customer))
	doc.text("Fono: " + orBlank(c.ticket.Phone))
	doc.text("Dirección de envío:")
	doc.text(orBlank(c.ticket.Address))
	doc.rule('-')

	doc.text("PRODUCTOS:")
	for _, l := range c.ticket.Lines {
		doc.text(orBlank(l.Name))
		doc.text("SKU: " + orDefault(l.Sku, "______") + " | Talla: " + orDefault(l.Size, "___"))
		doc.columns(
			"Cant: "+strconv.Itoa(l.Quantity)+" x "+format.FormatPrice(l.Price),
			format.FormatPrice(l.Subtotal()),
		)
	}
	doc.rule('-')

	doc.columns("TOTAL:", format.FormatPrice(c.Total()))
	doc.text("Envío: " + c.ticket.Carrier)
	doc.rule('-')

	doc.center("¡Gracias por tu compra!")
	doc.center("Instagram: @" + instagram)
	if addr := strings.TrimSpace(store.Address); addr != "" {
		doc.center(addr)
	}
	doc.rule('=')

	return doc.String()
}

func orBlank(s string) string {
	return orDefault(s, blankField)
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

type ticketDoc struct {
	lines []string
}

func (d *ticketDoc) String() string {
	return strings.Join(d.lines, "\n") + "\n"
}

func (d *ticketDoc) rule(ch rune) {
	d.lines = append(d.lines, strings.Repeat(string(ch), TicketWidth))
}

func (d *ticketDoc) text(s string) {
	for _, para := range strings.Split(format.StripEmoji(s), "\n") {
		d.lines = append(d.lines, wrap(para, TicketWidth)...)
	}
}

func (d *ticketDoc) center(s string) {
	for _, line := range wrap(format.StripEmoji(s), TicketWidth) {
		pad := (TicketWidth - runewidth.StringWidth(line)) / 2
		d.lines = append(d.lines, strings.Repeat(" ", pad)+line)
	}
}

// columns puts left and right on one line, or on two when they do not fit.
func (d *ticketDoc) columns(left, right string) {
	left, right = format.StripEmoji(left), format.StripEmoji(right)
	gap := TicketWidth - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if gap >= 1 {
		d.lines = append(d.lines, left+strings.Repeat(" ", gap)+right)
		return
	}
	d.lines = append(d.lines, wrap(left, TicketWidth)...)
	d.lines = append(d.lines, runewidth.FillLeft(runewidth.Truncate(right, TicketWidth, ""), TicketWidth))
}

// wrap breaks s on spaces so that no line is wider than width columns.
// Words longer than a line are cut.
func wrap(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := ""
	for _, w := range words {
		for runewidth.StringWidth(w) > width {
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			head := runewidth.Truncate(w, width, "")
			lines = append(lines, head)
			w = w[len(head):]
		}
		switch {
		case current == "":
			current = w
		case runewidth.StringWidth(current)+1+runewidth.StringWidth(w) <= width:
			current += " " + w
		default:
			lines = append(lines, current)
			current = w
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
