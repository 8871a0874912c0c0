package models

// RecordKind enumerates the record ledgers kept by the store.
type RecordKind string

const (
	KindProduction        RecordKind = "production"
	KindPurchase          RecordKind = "purchase"
	KindStockOut          RecordKind = "stock_out"
	KindPrestationProd    RecordKind = "prestation_prod"
	KindPrestationEtuvage RecordKind = "prestation_etuvage"
)

// ProductionRecord captures one packed production lot.
type ProductionRecord struct {
	ID              string  `json:"id" bson:"id"`
	Date            string  `json:"date" bson:"date"` // YYYY-MM-DD, compared literally
	LotNumber       string  `json:"lotNumber" bson:"lot_number"`
	ClientName      string  `json:"clientName" bson:"client_name"`
	ProductName     string  `json:"productName" bson:"product_name"`
	Packaging       string  `json:"packaging" bson:"packaging"`
	EmployeeCount   int     `json:"employeeCount" bson:"employee_count"`
	TotalWeightKg   float64 `json:"totalWeightKg" bson:"total_weight_kg"`
	WasteKg         float64 `json:"wasteKg" bson:"waste_kg"`
	InfestationRate float64 `json:"infestationRate" bson:"infestation_rate"`
	Timestamp       int64   `json:"timestamp" bson:"timestamp"`
	UserID          string  `json:"userId,omitempty" bson:"user_id,omitempty"`
	UserName        string  `json:"userName,omitempty" bson:"user_name,omitempty"`
}

// PurchaseRecord captures an incoming purchase of inputs or supplies.
// LotNumber and ClientName are optional free-text links, not foreign keys.
type PurchaseRecord struct {
	ID          string  `json:"id" bson:"id"`
	Date        string  `json:"date" bson:"date"`
	Supplier    string  `json:"supplier" bson:"supplier"`
	Category    string  `json:"category" bson:"category"`
	Designation string  `json:"designation" bson:"designation"`
	Quantity    float64 `json:"quantity" bson:"quantity"`
	Unit        string  `json:"unit" bson:"unit"`
	UnitPrice   float64 `json:"unitPrice" bson:"unit_price"`
	TotalAmount float64 `json:"totalAmount" bson:"total_amount"`
	LotNumber   string  `json:"lotNumber,omitempty" bson:"lot_number,omitempty"`
	ClientName  string  `json:"clientName,omitempty" bson:"client_name,omitempty"`
	Timestamp   int64   `json:"timestamp" bson:"timestamp"`
}

// StockOutRecord captures stock leaving the warehouse.
type StockOutRecord struct {
	ID          string  `json:"id" bson:"id"`
	Date        string  `json:"date" bson:"date"`
	Designation string  `json:"designation" bson:"designation"`
	Category    string  `json:"category" bson:"category"`
	Quantity    float64 `json:"quantity" bson:"quantity"`
	Unit        string  `json:"unit" bson:"unit"`
	Destination string  `json:"destination" bson:"destination"`
	LotNumber   string  `json:"lotNumber,omitempty" bson:"lot_number,omitempty"`
	Timestamp   int64   `json:"timestamp" bson:"timestamp"`
}

// PrestationProdRecord is a billable processing service (sorting, sizing, washing...).
type PrestationProdRecord struct {
	ID          string  `json:"id" bson:"id"`
	Date        string  `json:"date" bson:"date"`
	ClientName  string  `json:"clientName" bson:"client_name"`
	ServiceType string  `json:"serviceType" bson:"service_type"`
	QuantityKg  float64 `json:"quantityKg" bson:"quantity_kg"`
	UnitPrice   float64 `json:"unitPrice" bson:"unit_price"`
	Amount      float64 `json:"amount" bson:"amount"`
	Notes       string  `json:"notes,omitempty" bson:"notes,omitempty"`
	Timestamp   int64   `json:"timestamp" bson:"timestamp"`
}

// PrestationEtuvageRecord is a billable steaming treatment service.
type PrestationEtuvageRecord struct {
	ID            string  `json:"id" bson:"id"`
	Date          string  `json:"date" bson:"date"`
	ClientName    string  `json:"clientName" bson:"client_name"`
	ProductName   string  `json:"productName" bson:"product_name"`
	LotNumber     string  `json:"lotNumber,omitempty" bson:"lot_number,omitempty"`
	QuantityKg    float64 `json:"quantityKg" bson:"quantity_kg"`
	DurationHours float64 `json:"durationHours" bson:"duration_hours"`
	TemperatureC  float64 `json:"temperatureC" bson:"temperature_c"`
	UnitPrice     float64 `json:"unitPrice" bson:"unit_price"`
	Amount        float64 `json:"amount" bson:"amount"`
	Notes         string  `json:"notes,omitempty" bson:"notes,omitempty"`
	Timestamp     int64   `json:"timestamp" bson:"timestamp"`
}

// Snapshot is a consistent copy of every collection held by the store.
type Snapshot struct {
	Users              []User                    `json:"users"`
	Production         []ProductionRecord        `json:"records"`
	Purchases          []PurchaseRecord          `json:"purchases"`
	StockOuts          []StockOutRecord          `json:"stockOuts"`
	PrestationsProd    []PrestationProdRecord    `json:"prestationsProd"`
	PrestationsEtuvage []PrestationEtuvageRecord `json:"prestationsEtuvage"`
	MasterData         MasterData                `json:"masterData"`
}
