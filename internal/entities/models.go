package entities

// Roles de usuario.
const (
	RoleAdmin = "admin"
	RoleUser  = "usuario"
)

// Estados de una consulta.
const (
	InquiryPending   = "pendiente"
	InquiryContacted = "contactado"
	InquiryClosed    = "cerrado"
)

type Vehicle struct {
	ID          ID       `json:"id,omitempty"`
	Brand       string   `json:"brand"`
	Model       string   `json:"model"`
	Year        int      `json:"year"`
	Color       string   `json:"color"`
	Price       float64  `json:"price"`
	Images      []string `json:"images"`
	Description string   `json:"description"`
}

type User struct {
	ID       ID     `json:"id,omitempty"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"` // bcrypt hash, never plain text
	Role     string `json:"rol"`
}

type Booking struct {
	ID        ID     `json:"id,omitempty"`
	Code      string `json:"code,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Date      string `json:"date"`
	VehicleID ID     `json:"vehicleId,omitempty"`
	UserID    ID     `json:"userId,omitempty"`
}

type Inquiry struct {
	ID        ID     `json:"id,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
	VehicleID ID     `json:"vehicleId,omitempty"`
	Date      string `json:"date"`
	Status    string `json:"status"`
}

func ValidRole(rol string) bool {
	return rol == RoleAdmin || rol == RoleUser
}

func ValidInquiryStatus(status string) bool {
	switch status {
	case InquiryPending, InquiryContacted, InquiryClosed:
		return true
	}
	return false
}
