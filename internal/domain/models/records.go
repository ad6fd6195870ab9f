package models

import "time"

// TinPurchase records a stock purchase of tin cans. One unit price applies
// uniformly to every size quantity on the record; TotalCost is derived at
// save time.
type TinPurchase struct {
	ID          string    `json:"id" bson:"id"`
	Date        time.Time `json:"date" bson:"date"`
	S16         float64   `json:"s16" bson:"s16"`
	S10         float64   `json:"s10" bson:"s10"`
	S5          float64   `json:"s5" bson:"s5"`
	TinPrice    float64   `json:"tinPrice" bson:"tinPrice"`
	TotalCost   float64   `json:"totalCost" bson:"totalCost"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

// PlasticPurchase records a stock purchase of plastic jugs.
type PlasticPurchase struct {
	ID           string    `json:"id" bson:"id"`
	Date         time.Time `json:"date" bson:"date"`
	S10          float64   `json:"s10" bson:"s10"`
	S5           float64   `json:"s5" bson:"s5"`
	S2           float64   `json:"s2" bson:"s2"`
	PlasticPrice float64   `json:"plasticPrice" bson:"plasticPrice"`
	TotalCost    float64   `json:"totalCost" bson:"totalCost"`
	Description  string    `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

// WorkerExpense records wages paid to a factory worker.
type WorkerExpense struct {
	ID          string    `json:"id" bson:"id"`
	Date        time.Time `json:"date" bson:"date"`
	WorkerName  string    `json:"workerName" bson:"workerName"`
	DaysWorked  float64   `json:"daysWorked" bson:"daysWorked"`
	Amount      float64   `json:"amount" bson:"amount"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
}

// OverheadExpense records a general factory running cost (electricity,
// maintenance, fuel and the like).
type OverheadExpense struct {
	ID          string    `json:"id" bson:"id"`
	Date        time.Time `json:"date" bson:"date"`
	Description string    `json:"description" bson:"description"`
	Amount      float64   `json:"amount" bson:"amount"`
}

// PomaceRevenue records by-product sales of olive pomace. TotalRevenue is
// derived (loadKg * pricePerKg) at save time.
type PomaceRevenue struct {
	ID           string    `json:"id" bson:"id"`
	Date         time.Time `json:"date" bson:"date"`
	TruckCount   float64   `json:"truckCount" bson:"truckCount"`
	LoadKg       float64   `json:"loadKg" bson:"loadKg"`
	PricePerKg   float64   `json:"pricePerKg" bson:"pricePerKg"`
	TotalRevenue float64   `json:"totalRevenue" bson:"totalRevenue"`
	Description  string    `json:"description,omitempty" bson:"description,omitempty"`
}

// OilPurchase records olive oil bought in bulk tins for resale.
type OilPurchase struct {
	ID           string    `json:"id" bson:"id"`
	Date         time.Time `json:"date" bson:"date"`
	SupplierName string    `json:"supplierName" bson:"supplierName"`
	TinCount     float64   `json:"tinCount" bson:"tinCount"`
	TinPrice     float64   `json:"tinPrice" bson:"tinPrice"`
	TotalCost    float64   `json:"totalCost" bson:"totalCost"`
	Description  string    `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

// OilSale records olive oil tins sold on.
type OilSale struct {
	ID           string    `json:"id" bson:"id"`
	Date         time.Time `json:"date" bson:"date"`
	CustomerName string    `json:"customerName" bson:"customerName"`
	TinCount     float64   `json:"tinCount" bson:"tinCount"`
	TinPrice     float64   `json:"tinPrice" bson:"tinPrice"`
	TotalRevenue float64   `json:"totalRevenue" bson:"totalRevenue"`
	Description  string    `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}
