package models

import "time"

// PaymentMethodType identifies how an order was paid.
type PaymentMethodType string

const (
	PaymentMethodBalance PaymentMethodType = "balance"
	PaymentMethodCard    PaymentMethodType = "card"
)

// TranslatePaymentMethod returns the Turkish display label for a payment
// method. Unrecognized values pass through unchanged.
func TranslatePaymentMethod(t PaymentMethodType) string {
	switch t {
	case PaymentMethodBalance:
		return "Bakiye"
	case PaymentMethodCard:
		return "Kredi Kartı"
	default:
		return string(t)
	}
}

// ExtraChargeType identifies a surcharge applied on top of the order items.
type ExtraChargeType string

const (
	ExtraChargeLowPriceDelivery ExtraChargeType = "lowPriceDeliveryCharge"
	ExtraChargeUsingCredit      ExtraChargeType = "usingCreditCharge"
)

// ExtraCharge is a typed surcharge attached to an order. An order carries
// zero or more of these.
type ExtraCharge struct {
	Type  ExtraChargeType `json:"Type"`
	Price float64         `json:"Price"`
}

// OrderItem is a single order line.
type OrderItem struct {
	ProductID string  `json:"ProductId"`
	Count     float64 `json:"Count"`
	Unit      string  `json:"Unit"`
	Price     float64 `json:"Price"`
}

// Address is the delivery address attached to an order.
type Address struct {
	AddressLine string `json:"AddressLine"`
	County      string `json:"County"`
	City        string `json:"City"`
	ZipCode     string `json:"ZipCode"`
	Country     string `json:"Country"`
}

// Order is a placed order as carried in the notification event payload.
// It is immutable from this service's perspective: everything needed to
// describe the order comes with the event, never from a mutation.
type Order struct {
	ID                string            `json:"Id"`
	OrganizationID    string            `json:"OrganizationId"`
	Items             []OrderItem       `json:"Items"`
	ExtraCharges      []ExtraCharge     `json:"ExtraCharges"`
	PaymentMethodType PaymentMethodType `json:"PaymentMethodType"`
	DeliveryAddress   Address           `json:"DeliveryAddress"`
	DeliveryTime      time.Time         `json:"DeliveryTime"`
	Note              string            `json:"Note"`
	TotalPrice        float64           `json:"TotalPrice"`
	CreatedDate       time.Time         `json:"CreatedDate"`
}
