package models

// Role is the single role carried by a user.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleOperator Role = "OPERATOR"
)

// ViewID identifies a top-level tab of the application.
type ViewID string

const (
	ViewProduction        ViewID = "production"
	ViewPrestationProd    ViewID = "prestation_prod"
	ViewPrestationEtuvage ViewID = "prestation_etuvage"
	ViewStock             ViewID = "stock"
	ViewInsights          ViewID = "insights"
	ViewManagement        ViewID = "management"
)

// AllViews lists every view in tab-bar order.
var AllViews = []ViewID{
	ViewProduction,
	ViewPrestationProd,
	ViewPrestationEtuvage,
	ViewStock,
	ViewInsights,
	ViewManagement,
}

// User is an account of the back office. Password is compared in plaintext;
// it is a convenience login, not a security boundary.
type User struct {
	ID          string   `json:"id" bson:"id"`
	Name        string   `json:"name" bson:"name"`
	Username    string   `json:"username" bson:"username"`
	Password    string   `json:"password,omitempty" bson:"password"`
	Role        Role     `json:"role" bson:"role"`
	AllowedTabs []ViewID `json:"allowedTabs" bson:"allowed_tabs"`
	CreatedAt   int64    `json:"createdAt" bson:"created_at"`
}

// Public strips the credential before the user leaves the process.
func (u User) Public() User {
	u.Password = ""
	u.AllowedTabs = append([]ViewID(nil), u.AllowedTabs...)
	return u
}
