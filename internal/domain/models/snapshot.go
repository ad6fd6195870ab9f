package models

// DefaultPrices is the singleton configuration record used to pre-fill new
// transaction forms. Changing it has no effect on already-stored records.
type DefaultPrices struct {
	PricePerKg       float64  `json:"pricePerKg" bson:"pricePerKg"`
	TinPrices        TinSizes `json:"tinPrices" bson:"tinPrices"`
	PlasticPrices    JugSizes `json:"plasticPrices" bson:"plasticPrices"`
	OilPurchasePrice float64  `json:"oilPurchasePrice" bson:"oilPurchasePrice"`
	OilSalePrice     float64  `json:"oilSalePrice" bson:"oilSalePrice"`
}

// BuiltinDefaultPrices returns the fixed fallback used when a stored ledger
// carries no default-prices record.
func BuiltinDefaultPrices() DefaultPrices {
	return DefaultPrices{
		PricePerKg:       3,
		TinPrices:        TinSizes{S16: 80, S10: 70, S5: 60},
		PlasticPrices:    JugSizes{S10: 20, S5: 15, S2: 10},
		OilPurchasePrice: 200,
		OilSalePrice:     250,
	}
}

// IsZero reports whether the record has never been populated.
func (d DefaultPrices) IsZero() bool {
	return d == DefaultPrices{}
}

// Snapshot is the full ledger document for one user: every named collection
// plus the default-prices singleton. It is read and written wholesale; the
// persistence layer treats each write as a full-document replace.
type Snapshot struct {
	Customers        []Customer        `json:"customers" bson:"customers"`
	Transactions     []Transaction     `json:"transactions" bson:"transactions"`
	WorkerExpenses   []WorkerExpense   `json:"workerExpenses" bson:"workerExpenses"`
	FactoryOverhead  []OverheadExpense `json:"factoryOverhead" bson:"factoryOverhead"`
	PomaceRevenues   []PomaceRevenue   `json:"pomaceRevenues" bson:"pomaceRevenues"`
	TinPurchases     []TinPurchase     `json:"tinPurchases" bson:"tinPurchases"`
	PlasticPurchases []PlasticPurchase `json:"plasticPurchases" bson:"plasticPurchases"`
	OilPurchases     []OilPurchase     `json:"oilPurchases" bson:"oilPurchases"`
	OilSales         []OilSale         `json:"oilSales" bson:"oilSales"`
	DefaultPrices    DefaultPrices     `json:"defaultPrices" bson:"defaultPrices"`
}

// Normalize defaults missing collections to empty slices and an unset
// default-prices record to the built-in defaults, so callers can fold over
// the snapshot without nil checks.
func (s *Snapshot) Normalize() {
	if s.Customers == nil {
		s.Customers = []Customer{}
	}
	if s.Transactions == nil {
		s.Transactions = []Transaction{}
	}
	if s.WorkerExpenses == nil {
		s.WorkerExpenses = []WorkerExpense{}
	}
	if s.FactoryOverhead == nil {
		s.FactoryOverhead = []OverheadExpense{}
	}
	if s.PomaceRevenues == nil {
		s.PomaceRevenues = []PomaceRevenue{}
	}
	if s.TinPurchases == nil {
		s.TinPurchases = []TinPurchase{}
	}
	if s.PlasticPurchases == nil {
		s.PlasticPurchases = []PlasticPurchase{}
	}
	if s.OilPurchases == nil {
		s.OilPurchases = []OilPurchase{}
	}
	if s.OilSales == nil {
		s.OilSales = []OilSale{}
	}
	if s.DefaultPrices.IsZero() {
		s.DefaultPrices = BuiltinDefaultPrices()
	}
}

// EmptySnapshot returns a normalized snapshot with no records.
func EmptySnapshot() Snapshot {
	var s Snapshot
	s.Normalize()
	return s
}
