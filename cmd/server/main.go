package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Vickycabo/CAPE/internal/api"
	"github.com/Vickycabo/CAPE/internal/auth"
	"github.com/Vickycabo/CAPE/internal/config"
	"github.com/Vickycabo/CAPE/internal/service"
	"github.com/Vickycabo/CAPE/internal/session"
	"github.com/Vickycabo/CAPE/internal/store"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Clientes de recursos contra el store REST
	vehicles := store.NewVehicleClient(cfg.StoreURL, log)
	users := store.NewUserClient(cfg.StoreURL, log)
	bookings := store.NewBookingClient(cfg.StoreURL, log)
	inquiries := store.NewInquiryClient(cfg.StoreURL, log)

	sessions := session.NewStore(cfg.SessionFile, log)
	notify := service.NewNotifyService(cfg.Notify, log)

	authSvc := service.NewAuthService(users, sessions, []byte(cfg.JWTSecret), log)
	catalogSvc := service.NewCatalogService(vehicles)
	adminSvc := service.NewAdminService(authSvc, log)
	bookingSvc := service.NewBookingService(bookings, vehicles, notify, log)
	inquirySvc := service.NewInquiryService(inquiries, vehicles, notify, log)

	authHandler := api.NewAuthHandler(authSvc)
	vehicleHandler := api.NewVehicleHandler(catalogSvc)
	bookingHandler := api.NewBookingHandler(bookingSvc)
	inquiryHandler := api.NewInquiryHandler(inquirySvc)
	adminHandler := api.NewAdminHandler(adminSvc)

	mw := auth.NewMiddleware(authSvc)

	r := mux.NewRouter()
	r.Use(mw.WithSession)

	// Public endpoints
	r.HandleFunc("/api/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/logout", authHandler.Logout).Methods("POST")
	r.HandleFunc("/api/vehiculos", vehicleHandler.List).Methods("GET")
	r.HandleFunc("/api/vehiculos/opciones", vehicleHandler.Options).Methods("GET")
	r.HandleFunc("/api/vehiculos/{id}", vehicleHandler.Get).Methods("GET")
	r.HandleFunc("/api/consultas", inquiryHandler.Create).Methods("POST")

	// Logged-in endpoints
	r.Handle("/api/reservas", mw.RequireLogin(http.HandlerFunc(bookingHandler.Create))).Methods("POST")

	// Vehicle management (admin)
	r.Handle("/api/vehiculos", mw.RequireAdmin(http.HandlerFunc(vehicleHandler.Create))).Methods("POST")
	r.Handle("/api/vehiculos/{id}", mw.RequireAdmin(http.HandlerFunc(vehicleHandler.Update))).Methods("PUT")
	r.Handle("/api/vehiculos/{id}", mw.RequireAdmin(http.HandlerFunc(vehicleHandler.Delete))).Methods("DELETE")

	// Admin dashboard (protected)
	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(mw.RequireAdmin)
	admin.HandleFunc("/usuarios", adminHandler.ListUsers).Methods("GET")
	admin.HandleFunc("/usuarios/cambios", adminHandler.CommitRoleChanges).Methods("POST")
	admin.HandleFunc("/usuarios/{id}", adminHandler.DeleteUser).Methods("DELETE")
	admin.HandleFunc("/reservas", bookingHandler.List).Methods("GET")
	admin.HandleFunc("/reservas/{id}", bookingHandler.Delete).Methods("DELETE")
	admin.HandleFunc("/consultas", inquiryHandler.List).Methods("GET")
	admin.HandleFunc("/consultas/cambios", inquiryHandler.CommitStatusChanges).Methods("POST")
	admin.HandleFunc("/consultas/{id}", inquiryHandler.Delete).Methods("DELETE")

	// Cualquier ruta desconocida vuelve al catálogo
	r.NotFoundHandler = http.RedirectHandler("/api/vehiculos", http.StatusFound)

	// Resincronización periódica de cachés contra el store
	if cfg.ResyncMinutes > 0 {
		resync := service.NewResyncService(vehicles, users, bookings, inquiries, log)
		c := cron.New()
		if _, err := c.AddFunc(fmt.Sprintf("@every %dm", cfg.ResyncMinutes), func() {
			resync.Run(context.Background())
		}); err != nil {
			log.Fatalf("Failed to schedule resync job: %v", err)
		}
		c.Start()
		defer c.Stop()
	}

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	log.Printf("Server running on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handlers.LoggingHandler(log.Writer(), cors(r))))
}
