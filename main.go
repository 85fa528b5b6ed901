package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"grana/database"
	"grana/handlers"
	"grana/middleware"
	"grana/migrations"
	"grana/services"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func main() {
	noExit := flag.Bool("no-exit", false, "Don't exit after database setup")
	setupOnly := flag.Bool("setup-only", false, "Run migrations and exit")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	db, err := database.Open(database.Path())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	log.Println("Running migrations...")
	if err := migrations.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if *setupOnly && !*noExit {
		log.Println("Database setup completed successfully. Exiting.")
		return
	}

	services.StartAlertScheduler(db)

	h := handlers.New(db)

	r := mux.NewRouter()
	r.Use(middleware.EnableCORS)

	registerRoutes(r, h)
	apiRouter := r.PathPrefix("/api").Subrouter()
	registerRoutes(apiRouter, h)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Handler:      r,
		Addr:         ":" + port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	log.Printf("Starting server on port %s...", port)
	log.Fatal(srv.ListenAndServe())
}

// registerRoutes sets up all API routes
func registerRoutes(r *mux.Router, h *handlers.Handler) {
	// Public routes (no auth required)
	r.HandleFunc("/health", h.HealthCheck).Methods("GET", "OPTIONS")
	r.HandleFunc("/auth/register", h.Register).Methods("POST", "OPTIONS")
	r.HandleFunc("/auth/login", h.Login).Methods("POST", "OPTIONS")

	// Create a subrouter for authenticated routes
	protectedRouter := r.PathPrefix("").Subrouter()
	protectedRouter.Use(middleware.AuthMiddleware)

	// Transaction routes
	protectedRouter.HandleFunc("/transactions", h.ListTransactions).Methods("GET")
	protectedRouter.HandleFunc("/transactions", h.CreateTransaction).Methods("POST")
	protectedRouter.HandleFunc("/transactions/{id}", h.GetTransaction).Methods("GET")
	protectedRouter.HandleFunc("/transactions/{id}", h.UpdateTransaction).Methods("PUT")
	protectedRouter.HandleFunc("/transactions/{id}", h.DeleteTransaction).Methods("DELETE")

	// Category routes
	protectedRouter.HandleFunc("/categories", h.ListCategories).Methods("GET")
	protectedRouter.HandleFunc("/categories", h.CreateCategory).Methods("POST")
	protectedRouter.HandleFunc("/categories/{id}", h.UpdateCategory).Methods("PUT")
	protectedRouter.HandleFunc("/categories/{id}", h.DeleteCategory).Methods("DELETE")

	// Budget routes; the static paths go first so mux does not swallow
	// them as {id}
	protectedRouter.HandleFunc("/budgets/usage", h.ListBudgetUsages).Methods("GET")
	protectedRouter.HandleFunc("/budgets/alerts", h.GetBudgetAlerts).Methods("GET")
	protectedRouter.HandleFunc("/budgets/suggestions", h.GetBudgetSuggestions).Methods("GET")
	protectedRouter.HandleFunc("/budgets", h.ListBudgets).Methods("GET")
	protectedRouter.HandleFunc("/budgets", h.CreateBudget).Methods("POST")
	protectedRouter.HandleFunc("/budgets/{id}", h.GetBudget).Methods("GET")
	protectedRouter.HandleFunc("/budgets/{id}", h.UpdateBudget).Methods("PUT")
	protectedRouter.HandleFunc("/budgets/{id}", h.DeleteBudget).Methods("DELETE")
	protectedRouter.HandleFunc("/budgets/{id}/usage", h.GetBudgetUsage).Methods("GET")
	protectedRouter.HandleFunc("/budgets/{id}/projection", h.GetBudgetProjection).Methods("GET")

	// Goal routes
	protectedRouter.HandleFunc("/goals", h.ListGoals).Methods("GET")
	protectedRouter.HandleFunc("/goals", h.CreateGoal).Methods("POST")
	protectedRouter.HandleFunc("/goals/{id}", h.GetGoal).Methods("GET")
	protectedRouter.HandleFunc("/goals/{id}", h.UpdateGoal).Methods("PUT")
	protectedRouter.HandleFunc("/goals/{id}", h.DeleteGoal).Methods("DELETE")
	protectedRouter.HandleFunc("/goals/{id}/status", h.ChangeGoalStatus).Methods("PATCH")
	protectedRouter.HandleFunc("/goals/{id}/contributions", h.ListContributions).Methods("GET")
	protectedRouter.HandleFunc("/goals/{id}/contributions", h.AddContribution).Methods("POST")

	// Report routes
	protectedRouter.HandleFunc("/reports/monthly", h.MonthlyReport).Methods("GET")
	protectedRouter.HandleFunc("/reports/categories", h.CategoryReport).Methods("GET")
	protectedRouter.HandleFunc("/reports/evolution", h.EvolutionReport).Methods("GET")
	protectedRouter.HandleFunc("/reports/comparative", h.ComparativeReport).Methods("GET")
	protectedRouter.HandleFunc("/reports/patterns", h.PatternReport).Methods("GET")
	protectedRouter.HandleFunc("/reports/top", h.TopReport).Methods("GET")

	// Notification routes
	protectedRouter.HandleFunc("/notifications", h.ListNotifications).Methods("GET")
	protectedRouter.HandleFunc("/notifications/{id}/read", h.MarkNotificationRead).Methods("POST")
}
