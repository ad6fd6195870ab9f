package models

import "time"

// InterimCollectionDescription marks a payment-only transaction. Records
// carrying this description have no production fields and are immutable.
const InterimCollectionDescription = "Ara Tahsilat"

// Customer is a factory customer. The ID is a client-generated timestamp
// string; name matching and search are case-insensitive.
type Customer struct {
	ID        string    `json:"id" bson:"id"`
	Name      string    `json:"name" bson:"name"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Address   string    `json:"address,omitempty" bson:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// TinSizes holds one value per tin can size variant (16L, 10L, 5L).
// Depending on context the values are counts or unit prices.
type TinSizes struct {
	S16 float64 `json:"s16" bson:"s16"`
	S10 float64 `json:"s10" bson:"s10"`
	S5  float64 `json:"s5" bson:"s5"`
}

// JugSizes holds one value per plastic jug size variant (10L, 5L, 2L).
type JugSizes struct {
	S10 float64 `json:"s10" bson:"s10"`
	S5  float64 `json:"s5" bson:"s5"`
	S2  float64 `json:"s2" bson:"s2"`
}

// Transaction records a single pressing visit: olives in, oil out, containers
// sold, payments taken. TotalCost and RemainingBalance are derived at save
// time and stored.
type Transaction struct {
	ID               string    `json:"id" bson:"id"`
	CustomerID       string    `json:"customerId" bson:"customerId"`
	CustomerName     string    `json:"customerName" bson:"customerName"`
	Date             time.Time `json:"date" bson:"date"`
	OliveKg          float64   `json:"oliveKg" bson:"oliveKg"`
	OilLitre         float64   `json:"oilLitre" bson:"oilLitre"`
	PricePerKg       float64   `json:"pricePerKg" bson:"pricePerKg"`
	TinCounts        TinSizes  `json:"tinCounts" bson:"tinCounts"`
	TinPrices        TinSizes  `json:"tinPrices" bson:"tinPrices"`
	PlasticCounts    JugSizes  `json:"plasticCounts" bson:"plasticCounts"`
	PlasticPrices    JugSizes  `json:"plasticPrices" bson:"plasticPrices"`
	PaymentReceived  float64   `json:"paymentReceived" bson:"paymentReceived"`
	PaymentLoss      float64   `json:"paymentLoss" bson:"paymentLoss"`
	TotalCost        float64   `json:"totalCost" bson:"totalCost"`
	RemainingBalance float64   `json:"remainingBalance" bson:"remainingBalance"`
	Description      string    `json:"description,omitempty" bson:"description,omitempty"`
}

// IsInterimCollection reports whether the transaction is a payment-only
// interim collection record.
func (t Transaction) IsInterimCollection() bool {
	return t.Description == InterimCollectionDescription
}
