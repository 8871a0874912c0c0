// Package permission decides which views a user may open.
package permission

import "github.com/mamadbah2/packhouse/internal/domain/models"

// CanAccess reports whether user may open view. Administrators see every
// view; operators only those listed in their allow-list.
func CanAccess(user models.User, view models.ViewID) bool {
	switch user.Role {
	case models.RoleAdmin:
		return true
	case models.RoleOperator:
		for _, allowed := range user.AllowedTabs {
			if allowed == view {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// VisibleViews lists the views user may open, in tab-bar order.
func VisibleViews(user models.User) []models.ViewID {
	out := make([]models.ViewID, 0, len(models.AllViews))
	for _, v := range models.AllViews {
		if CanAccess(user, v) {
			out = append(out, v)
		}
	}
	return out
}

// ForKind returns the view guarding a record kind.
func ForKind(kind models.RecordKind) models.ViewID {
	switch kind {
	case models.KindProduction:
		return models.ViewProduction
	case models.KindPurchase, models.KindStockOut:
		return models.ViewStock
	case models.KindPrestationProd:
		return models.ViewPrestationProd
	case models.KindPrestationEtuvage:
		return models.ViewPrestationEtuvage
	default:
		return models.ViewManagement
	}
}
