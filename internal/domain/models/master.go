package models

import "fmt"

// MasterCategory names one of the controlled vocabularies.
type MasterCategory string

const (
	MasterProducts           MasterCategory = "products"
	MasterClients            MasterCategory = "clients"
	MasterPackagings         MasterCategory = "packagings"
	MasterSuppliers          MasterCategory = "suppliers"
	MasterPurchaseCategories MasterCategory = "purchaseCategories"
	MasterServiceTypes       MasterCategory = "serviceTypes"
)

// MasterCategories lists every category in display order.
var MasterCategories = []MasterCategory{
	MasterProducts,
	MasterPackagings,
	MasterClients,
	MasterServiceTypes,
	MasterSuppliers,
	MasterPurchaseCategories,
}

// MasterData holds the dropdown vocabularies curated by administrators.
type MasterData struct {
	Products           []string `json:"products" bson:"products"`
	Clients            []string `json:"clients" bson:"clients"`
	Packagings         []string `json:"packagings" bson:"packagings"`
	Suppliers          []string `json:"suppliers" bson:"suppliers"`
	PurchaseCategories []string `json:"purchaseCategories" bson:"purchase_categories"`
	ServiceTypes       []string `json:"serviceTypes" bson:"service_types"`
}

// DefaultMasterData returns the vocabulary used when nothing has been persisted yet.
func DefaultMasterData() MasterData {
	return MasterData{
		Products:           []string{"Tomate Roma", "Tomate Cerise", "Poivron Rouge", "Poivron Vert", "Concombre"},
		Clients:            []string{"Marché de Gros", "Superette Center", "Export France", "Export Dubaï"},
		Packagings:         []string{"Caisse 10kg", "Caisse 5kg", "Plateau", "Vrac"},
		Suppliers:          []string{"AgriPlus", "Sidi Bel Abbes Semences", "Local Farmer"},
		PurchaseCategories: []string{"Intrants", "Emballages", "Maintenance", "Semences"},
		ServiceTypes:       []string{"Triage", "Calibrage", "Conditionnement", "Lavage"},
	}
}

// ParseMasterCategory validates a category name coming from the outside.
func ParseMasterCategory(value string) (MasterCategory, error) {
	for _, c := range MasterCategories {
		if string(c) == value {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown master data category %q", value)
}

// List returns the values of one category.
func (m MasterData) List(category MasterCategory) []string {
	switch category {
	case MasterProducts:
		return m.Products
	case MasterClients:
		return m.Clients
	case MasterPackagings:
		return m.Packagings
	case MasterSuppliers:
		return m.Suppliers
	case MasterPurchaseCategories:
		return m.PurchaseCategories
	case MasterServiceTypes:
		return m.ServiceTypes
	default:
		return nil
	}
}

// WithList returns a copy of m where category is replaced by values.
func (m MasterData) WithList(category MasterCategory, values []string) MasterData {
	out := m.Clone()
	switch category {
	case MasterProducts:
		out.Products = values
	case MasterClients:
		out.Clients = values
	case MasterPackagings:
		out.Packagings = values
	case MasterSuppliers:
		out.Suppliers = values
	case MasterPurchaseCategories:
		out.PurchaseCategories = values
	case MasterServiceTypes:
		out.ServiceTypes = values
	}
	return out
}

// Clone deep-copies every list.
func (m MasterData) Clone() MasterData {
	return MasterData{
		Products:           append([]string(nil), m.Products...),
		Clients:            append([]string(nil), m.Clients...),
		Packagings:         append([]string(nil), m.Packagings...),
		Suppliers:          append([]string(nil), m.Suppliers...),
		PurchaseCategories: append([]string(nil), m.PurchaseCategories...),
		ServiceTypes:       append([]string(nil), m.ServiceTypes...),
	}
}
