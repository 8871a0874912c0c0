package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/packhouse/internal/store"
)

// CRUD groups the four routes of one record ledger.
type CRUD struct {
	List   gin.HandlerFunc
	Create gin.HandlerFunc
	Update gin.HandlerFunc
	Delete gin.HandlerFunc
}

// LedgerHandler serves purchases, stock-outs and both prestation ledgers.
type LedgerHandler struct {
	store  *store.Store
	logger *zap.Logger
}

// NewLedgerHandler constructs the HTTP handler adapter.
func NewLedgerHandler(s *store.Store, logger *zap.Logger) *LedgerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerHandler{store: s, logger: logger}
}

// Purchases returns the purchase routes.
func (h *LedgerHandler) Purchases() CRUD {
	return CRUD{
		List:   listRecords(h.store.Purchases),
		Create: createRecord(h.logger, h.store.CreatePurchase),
		Update: updateRecord(h.logger, h.store.UpdatePurchase),
		Delete: deleteRecord(h.logger, h.store.DeletePurchase),
	}
}

// StockOuts returns the stock-out routes.
func (h *LedgerHandler) StockOuts() CRUD {
	return CRUD{
		List:   listRecords(h.store.StockOuts),
		Create: createRecord(h.logger, h.store.CreateStockOut),
		Update: updateRecord(h.logger, h.store.UpdateStockOut),
		Delete: deleteRecord(h.logger, h.store.DeleteStockOut),
	}
}

// PrestationsProd returns the processing-service routes.
func (h *LedgerHandler) PrestationsProd() CRUD {
	return CRUD{
		List:   listRecords(h.store.PrestationsProd),
		Create: createRecord(h.logger, h.store.CreatePrestationProd),
		Update: updateRecord(h.logger, h.store.UpdatePrestationProd),
		Delete: deleteRecord(h.logger, h.store.DeletePrestationProd),
	}
}

// PrestationsEtuvage returns the steaming-service routes.
func (h *LedgerHandler) PrestationsEtuvage() CRUD {
	return CRUD{
		List:   listRecords(h.store.PrestationsEtuvage),
		Create: createRecord(h.logger, h.store.CreatePrestationEtuvage),
		Update: updateRecord(h.logger, h.store.UpdatePrestationEtuvage),
		Delete: deleteRecord(h.logger, h.store.DeletePrestationEtuvage),
	}
}
