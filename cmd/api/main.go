package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/retailops/corepos-backend/internal/modules/auth"
	"github.com/retailops/corepos-backend/internal/modules/batch"
	"github.com/retailops/corepos-backend/internal/modules/cashier"
	"github.com/retailops/corepos-backend/internal/modules/catalog"
	"github.com/retailops/corepos-backend/internal/modules/checkout"
	"github.com/retailops/corepos-backend/internal/modules/customer"
	"github.com/retailops/corepos-backend/internal/modules/store"
	"github.com/retailops/corepos-backend/internal/modules/tax"
	"github.com/retailops/corepos-backend/internal/modules/tender"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Successfully connected to the database!")

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Phase 1: Identity ───────────────────────────────────
	jwtKey := []byte(os.Getenv("JWT_SECRET"))

	cashierRepo := cashier.NewPostgresRepository(db)
	cashierService := cashier.NewService(cashierRepo)
	cashier.NewHandler(cashierService).RegisterRoutes(router)

	authService := auth.NewService(cashierRepo, jwtKey)
	auth.NewHandler(authService).RegisterRoutes(router)

	// Everything past login requires a bearer token.
	router.Group(func(protected chi.Router) {
		protected.Use(auth.Middleware(jwtKey))

		// ── Phase 2: Reference data ─────────────────────────
		storeRepo := store.NewPostgresRepository(db)
		storeService := store.NewService(storeRepo)
		store.NewHandler(storeService).RegisterRoutes(protected)

		catalogRepo := catalog.NewPostgresRepository(db)
		catalogService := catalog.NewService(catalogRepo)
		catalog.NewHandler(catalogService).RegisterRoutes(protected)

		customerRepo := customer.NewPostgresRepository(db)
		customerService := customer.NewService(customerRepo)
		customer.NewHandler(customerService).RegisterRoutes(protected)

		tenderRepo := tender.NewPostgresRepository(db)
		tenderService := tender.NewService(tenderRepo)
		tender.NewHandler(tenderService).RegisterRoutes(protected)

		taxRepo := tax.NewPostgresRepository(db)
		taxService := tax.NewService(taxRepo)
		tax.NewHandler(taxService).RegisterRoutes(protected)

		// ── Phase 3: Shifts & Checkout ──────────────────────
		batchRepo := batch.NewPostgresRepository(db)
		batchService := batch.NewService(batchRepo)
		batch.NewHandler(batchService).RegisterRoutes(protected)

		checkoutTimeout := 15 * time.Second
		if raw := os.Getenv("CHECKOUT_TIMEOUT_SECONDS"); raw != "" {
			if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
				checkoutTimeout = time.Duration(secs) * time.Second
			}
		}
		checkoutRepo := checkout.NewPostgresRepository(db)
		checkoutService := checkout.NewService(checkoutRepo, checkoutTimeout)
		checkout.NewHandler(checkoutService).RegisterRoutes(protected)
	})

	// ── Start Server ─────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("CorePOS API server starting on :%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
