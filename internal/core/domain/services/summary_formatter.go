package services

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

const pickupLine = "Retirada no local: seu pedido fica disponível no endereço do fornecedor."

// encodeURIComponent leaves these unescaped; url.QueryEscape does not.
var uriComponentFixups = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// SummaryFormatter renders an order as the text sent to the customer over the
// external messaging channel.
type SummaryFormatter struct {
	location *time.Location
}

// NewSummaryFormatter creates a formatter whose greeting follows the wall clock
// of location. A nil location means time.Local.
func NewSummaryFormatter(location *time.Location) SummaryFormatter {
	if location == nil {
		location = time.Local
	}
	return SummaryFormatter{location: location}
}

// Greeting picks the salutation for the local hour of now.
func (f SummaryFormatter) Greeting(now time.Time) string {
	switch hour := now.In(f.location).Hour(); {
	case hour >= 6 && hour < 12:
		return "Bom dia"
	case hour >= 12 && hour < 18:
		return "Boa tarde"
	default:
		return "Boa noite"
	}
}

// Text builds the unescaped message. Output depends only on the order and the
// hour bucket of now.
func (f SummaryFormatter) Text(o *order.Order, now time.Time) (string, error) {
	if err := o.Validate(); err != nil {
		return "", errs.NewMalformedOrderErrorWithCause("order cannot be summarized", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s, %s!\n", f.Greeting(now), o.CustomerName())
	fmt.Fprintf(&b, "Resumo do seu pedido em %s:\n", o.Supplier().Name())
	for _, item := range o.Items() {
		fmt.Fprintf(&b, "%dx %s - %s\n", item.Quantity(), item.Dish().Name(), item.LineSubtotal())
	}
	fmt.Fprintf(&b, "Total: %s\n", o.TotalValue())

	switch o.FulfillmentMode() {
	case order.Delivery:
		fmt.Fprintf(&b, "Endereço de entrega:\n%s", o.DeliveryAddress())
	case order.Pickup:
		b.WriteString(pickupLine)
	}

	if notes := o.Notes(); notes != "" {
		fmt.Fprintf(&b, "\nObservações: %s", notes)
	}

	return b.String(), nil
}

// Format returns Text escaped as a URI component.
func (f SummaryFormatter) Format(o *order.Order, now time.Time) (string, error) {
	text, err := f.Text(o, now)
	if err != nil {
		return "", err
	}
	return uriComponentFixups.Replace(url.QueryEscape(text)), nil
}
