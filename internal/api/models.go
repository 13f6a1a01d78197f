package api

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Vickycabo/CAPE/internal/entities"
)

var (
	emailRe  = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	digitsRe = regexp.MustCompile(`^[0-9]+$`)
)

// Opciones fijas de los selects del formulario de vehículos. Un valor fuera
// de la lista va por el campo custom correspondiente.
var (
	knownBrands = []string{"Toyota", "Chevrolet", "Honda", "Mercedes-Benz"}
	knownColors = []string{"Rojo", "Blanco", "Negro", "Gris", "Azul"}
)

func knownOption(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}

// FieldErrors mapea campo -> mensaje para mostrar errores inline. Un mapa
// vacío significa formulario válido.
type FieldErrors map[string]string

func (f FieldErrors) Valid() bool {
	return len(f) == 0
}

// Login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() FieldErrors {
	errs := FieldErrors{}
	if r.Email == "" {
		errs["email"] = "El email es obligatorio"
	} else if !emailRe.MatchString(r.Email) {
		errs["email"] = "El email no es válido"
	}
	if r.Password == "" {
		errs["password"] = "La contraseña es obligatoria"
	}
	return errs
}

// Registro
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r RegisterRequest) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(r.Name) == "" {
		errs["name"] = "El nombre es obligatorio"
	}
	if r.Email == "" {
		errs["email"] = "El email es obligatorio"
	} else if !emailRe.MatchString(r.Email) {
		errs["email"] = "El email no es válido"
	}
	if len(r.Password) < 4 {
		errs["password"] = "La contraseña debe tener al menos 4 caracteres"
	}
	return errs
}

// Vehículo. El formulario manda año, precio e imágenes como texto; el payload
// hacia el store siempre lleva los numéricos como números.
type VehicleRequest struct {
	Brand       string `json:"brand"`
	CustomBrand string `json:"customBrand,omitempty"`
	Model       string `json:"model"`
	Year        string `json:"year"`
	Color       string `json:"color"`
	CustomColor string `json:"customColor,omitempty"`
	Price       string `json:"price"`
	Images      string `json:"images"`
	Description string `json:"description"`
}

func (r VehicleRequest) Validate() FieldErrors {
	errs := FieldErrors{}
	if r.Brand == "" && r.CustomBrand == "" {
		errs["brand"] = "La marca es obligatoria"
	} else if r.Brand != "" && !knownOption(knownBrands, r.Brand) {
		errs["brand"] = "Marca desconocida"
	}
	if strings.TrimSpace(r.Model) == "" {
		errs["model"] = "El modelo es obligatorio"
	}
	if r.Year == "" {
		errs["year"] = "El año es obligatorio"
	} else if year, err := strconv.Atoi(r.Year); err != nil || year < 2000 || year > 2030 {
		errs["year"] = "El año debe estar entre 2000 y 2030"
	}
	if r.Color == "" && r.CustomColor == "" {
		errs["color"] = "El color es obligatorio"
	} else if r.Color != "" && !knownOption(knownColors, r.Color) {
		errs["color"] = "Color desconocido"
	}
	if r.Price == "" {
		errs["price"] = "El precio es obligatorio"
	} else if price, err := strconv.ParseFloat(r.Price, 64); err != nil || price < 1 {
		errs["price"] = "El precio debe ser mayor o igual a 1"
	}
	if strings.TrimSpace(r.Images) == "" {
		errs["images"] = "Al menos una imagen es obligatoria"
	}
	if strings.TrimSpace(r.Description) == "" {
		errs["description"] = "La descripción es obligatoria"
	}
	return errs
}

// ToVehicle coacciona los campos de texto a sus tipos reales. Asume un
// request ya validado.
func (r VehicleRequest) ToVehicle() entities.Vehicle {
	year, _ := strconv.Atoi(r.Year)
	price, _ := strconv.ParseFloat(r.Price, 64)

	images := []string{}
	for _, img := range strings.Split(r.Images, ",") {
		if trimmed := strings.TrimSpace(img); trimmed != "" {
			images = append(images, trimmed)
		}
	}

	brand := r.Brand
	if brand == "" {
		brand = r.CustomBrand
	}
	color := r.Color
	if color == "" {
		color = r.CustomColor
	}

	return entities.Vehicle{
		Brand:       brand,
		Model:       strings.TrimSpace(r.Model),
		Year:        year,
		Color:       color,
		Price:       price,
		Images:      images,
		Description: strings.TrimSpace(r.Description),
	}
}

// Reserva
type BookingRequest struct {
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
	Date      string      `json:"date"`
	VehicleID entities.ID `json:"vehicleId,omitempty"`
}

func (r BookingRequest) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(r.Name) == "" {
		errs["name"] = "El nombre es obligatorio"
	}
	if r.Email == "" {
		errs["email"] = "El email es obligatorio"
	} else if !emailRe.MatchString(r.Email) {
		errs["email"] = "El email no es válido"
	}
	if r.Phone == "" {
		errs["phone"] = "El teléfono es obligatorio"
	} else if !digitsRe.MatchString(r.Phone) {
		errs["phone"] = "El teléfono sólo admite dígitos"
	}
	if r.Date == "" {
		errs["date"] = "La fecha es obligatoria"
	}
	return errs
}

// Consulta
type InquiryRequest struct {
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
	Message   string      `json:"message"`
	VehicleID entities.ID `json:"vehicleId,omitempty"`
}

func (r InquiryRequest) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(r.Name) == "" {
		errs["name"] = "El nombre es obligatorio"
	}
	if r.Email == "" {
		errs["email"] = "El email es obligatorio"
	} else if !emailRe.MatchString(r.Email) {
		errs["email"] = "El email no es válido"
	}
	if r.Phone == "" {
		errs["phone"] = "El teléfono es obligatorio"
	} else if !digitsRe.MatchString(r.Phone) {
		errs["phone"] = "El teléfono sólo admite dígitos"
	}
	if strings.TrimSpace(r.Message) == "" {
		errs["message"] = "El mensaje es obligatorio"
	}
	return errs
}

// Cambios en lote (roles de usuario o estados de consulta).
type ChangeEntry struct {
	ID    entities.ID `json:"id"`
	Value string      `json:"value"`
}

type BatchChangeRequest struct {
	Changes []ChangeEntry `json:"changes"`
}
