package service

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/Vickycabo/CAPE/internal/entities"
	"github.com/Vickycabo/CAPE/internal/store"
)

// VehicleFilters son los filtros del catálogo tal como llegan del formulario:
// texto plano, donde vacío significa "sin filtrar". Componen con AND.
type VehicleFilters struct {
	Brand    string
	Year     string
	MaxPrice string
}

type CatalogService struct {
	vehicles *store.VehicleClient
}

func NewCatalogService(vehicles *store.VehicleClient) *CatalogService {
	return &CatalogService{vehicles: vehicles}
}

// Load recarga el catálogo completo desde el store.
func (s *CatalogService) Load(ctx context.Context) ([]entities.Vehicle, error) {
	return s.vehicles.List(ctx)
}

// Vehicles devuelve la vista filtrada sobre la caché del cliente.
func (s *CatalogService) Vehicles(f VehicleFilters) []entities.Vehicle {
	return FilterVehicles(s.vehicles.Cached(), f)
}

// Options deriva las listas de opciones de filtrado del catálogo sin filtrar.
func (s *CatalogService) Options() (brands []string, years []int, prices []float64) {
	all := s.vehicles.Cached()
	return AvailableBrands(all), AvailableYears(all), AvailablePrices(all)
}

// GetByID devuelve (nil, nil) cuando el vehículo no existe.
func (s *CatalogService) GetByID(ctx context.Context, id entities.ID) (*entities.Vehicle, error) {
	return s.vehicles.GetByID(ctx, id)
}

func (s *CatalogService) Add(ctx context.Context, v entities.Vehicle) (*entities.Vehicle, error) {
	return s.vehicles.Create(ctx, v)
}

func (s *CatalogService) Update(ctx context.Context, id entities.ID, v entities.Vehicle) (*entities.Vehicle, error) {
	return s.vehicles.Update(ctx, id, v)
}

func (s *CatalogService) Delete(ctx context.Context, id entities.ID) error {
	return s.vehicles.Delete(ctx, id)
}

// FilterVehicles filtra por marca (substring, sin distinguir mayúsculas),
// año (igualdad exacta como texto) y precio máximo (price <= max).
func FilterVehicles(all []entities.Vehicle, f VehicleFilters) []entities.Vehicle {
	brand := strings.ToLower(f.Brand)
	maxPrice, hasMax := 0.0, false
	if f.MaxPrice != "" {
		if parsed, err := strconv.ParseFloat(f.MaxPrice, 64); err == nil {
			maxPrice, hasMax = parsed, true
		}
	}

	filtered := make([]entities.Vehicle, 0, len(all))
	for _, v := range all {
		matchBrand := brand == "" || strings.Contains(strings.ToLower(v.Brand), brand)
		matchYear := f.Year == "" || strconv.Itoa(v.Year) == f.Year
		matchPrice := !hasMax || v.Price <= maxPrice
		if matchBrand && matchYear && matchPrice {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// AvailableBrands devuelve las marcas del catálogo sin duplicados,
// ordenadas alfabéticamente.
func AvailableBrands(all []entities.Vehicle) []string {
	seen := make(map[string]bool)
	brands := []string{}
	for _, v := range all {
		if v.Brand != "" && !seen[v.Brand] {
			seen[v.Brand] = true
			brands = append(brands, v.Brand)
		}
	}
	sort.Strings(brands)
	return brands
}

// AvailableYears devuelve los años sin duplicados, de mayor a menor.
func AvailableYears(all []entities.Vehicle) []int {
	seen := make(map[int]bool)
	years := []int{}
	for _, v := range all {
		if v.Year != 0 && !seen[v.Year] {
			seen[v.Year] = true
			years = append(years, v.Year)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// AvailablePrices devuelve los precios sin duplicados, de menor a mayor.
func AvailablePrices(all []entities.Vehicle) []float64 {
	seen := make(map[float64]bool)
	prices := []float64{}
	for _, v := range all {
		if v.Price != 0 && !seen[v.Price] {
			seen[v.Price] = true
			prices = append(prices, v.Price)
		}
	}
	sort.Float64s(prices)
	return prices
}
