package mapper

import (
	"strings"

	"order-notification-service/internal/models"
)

// FreeChargeLabel is rendered when an extra charge of a given type is absent.
// The field is always present in the email, never omitted.
const FreeChargeLabel = "Ücretsiz"

// OrderEmail is the flattened, pre-formatted projection of an order plus its
// context, handed to the template engine. Every field is already localized;
// templates interpolate only, they never format.
type OrderEmail struct {
	OrderID          string
	OrderURL         string
	CreatedDate      string
	OrganizationName string
	Balance          string
	AvailableCredit  string
	Note             string
	Address          EmailAddress
	PaidWithBalance  bool
	PaymentType      string
	DeliveryTime     string
	TotalPrice       string
	DeliveryCharge   string
	CreditCharge     string
	Items            []EmailItem
}

// EmailAddress is the delivery address block of the email.
type EmailAddress struct {
	AddressLine string
	County      string
	City        string
	ZipCode     string
	Country     string
}

// EmailItem is one pre-formatted order line.
type EmailItem struct {
	Name       string
	Count      string
	Unit       string
	Price      string
	TotalPrice string
}

// ToOrderEmail flattens an order, its organization and the inventory catalog
// into the email view model. It is a pure function of its inputs: a product
// id missing from the catalog falls back to the raw id, and absent optional
// fields (note, charges) render as defaults, never as errors.
func ToOrderEmail(order models.Order, org models.Organization, inventories []models.Inventory, baseURL string) OrderEmail {
	names := make(map[string]string, len(inventories))
	for _, inv := range inventories {
		names[inv.ProductID] = inv.Name
	}

	items := make([]EmailItem, 0, len(order.Items))
	var computedTotal float64
	for _, item := range order.Items {
		name := item.ProductID
		if n, ok := names[item.ProductID]; ok && n != "" {
			name = n
		}
		lineTotal := item.Price * item.Count
		computedTotal += lineTotal
		items = append(items, EmailItem{
			Name:       name,
			Count:      FormatCount(item.Count),
			Unit:       item.Unit,
			Price:      FormatTRY(item.Price),
			TotalPrice: FormatTRY(lineTotal),
		})
	}

	total := order.TotalPrice
	if total == 0 {
		total = computedTotal
	}

	return OrderEmail{
		OrderID:          order.ID,
		OrderURL:         strings.TrimRight(baseURL, "/") + "/orders/" + order.ID,
		CreatedDate:      FormatCreatedDate(order.CreatedDate),
		OrganizationName: org.Name,
		Balance:          FormatTRY(org.Balance),
		AvailableCredit:  FormatTRY(org.Balance + org.CreditLimit),
		Note:             order.Note,
		Address: EmailAddress{
			AddressLine: order.DeliveryAddress.AddressLine,
			County:      order.DeliveryAddress.County,
			City:        order.DeliveryAddress.City,
			ZipCode:     order.DeliveryAddress.ZipCode,
			Country:     order.DeliveryAddress.Country,
		},
		PaidWithBalance: order.PaymentMethodType == models.PaymentMethodBalance,
		PaymentType:     models.TranslatePaymentMethod(order.PaymentMethodType),
		DeliveryTime:    FormatDeliveryWindow(order.DeliveryTime),
		TotalPrice:      FormatTRY(total),
		DeliveryCharge:  formatCharge(findCharge(order.ExtraCharges, models.ExtraChargeLowPriceDelivery)),
		CreditCharge:    formatCharge(findCharge(order.ExtraCharges, models.ExtraChargeUsingCredit)),
		Items:           items,
	}
}

// findCharge returns the first charge of the given type, at most one per type
// is rendered.
func findCharge(charges []models.ExtraCharge, t models.ExtraChargeType) *models.ExtraCharge {
	for i := range charges {
		if charges[i].Type == t {
			return &charges[i]
		}
	}
	return nil
}

func formatCharge(charge *models.ExtraCharge) string {
	if charge == nil {
		return FreeChargeLabel
	}
	return FormatTRY(charge.Price)
}
