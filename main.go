package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"madebread/backend/database"
	"madebread/backend/handlers"
	"madebread/backend/middleware"
	"madebread/backend/migrations"
	"madebread/backend/models"
	"madebread/backend/security"
	"madebread/backend/services"
	"madebread/backend/store"
)

func main() {
	// Parse command line flags
	noExit := flag.Bool("no-exit", false, "Don't exit after database reset")
	resetDB := flag.Bool("reset-db", false, "Force reset the database")
	flag.Parse()

	isResetDB := os.Getenv("RESET_DB") == "true" || *resetDB

	// Check environment
	isDevelopment := os.Getenv("APP_ENV") != "production" &&
		os.Getenv("ENVIRONMENT") != "production" &&
		os.Getenv("ENV") != "production"

	if isDevelopment {
		log.Println("Running in development environment")
	}

	// Use an encryption key from environment or generate a default one
	encryptionKey := os.Getenv("ENCRYPTION_KEY")
	if encryptionKey == "" {
		log.Println("Warning: ENCRYPTION_KEY not set, using a default key. This is NOT secure for production!")
		encryptionKey = "default-key-for-development-only"
	}
	security.InitializeEncryption(encryptionKey)

	// Initialize database
	if err := database.InitDB(); err != nil {
		log.Fatal(err)
	}

	if err := migrations.RunMigrations(database.DB); err != nil {
		log.Printf("Warning: Failed to run migrations: %v", err)
	}

	// If running in reset mode, exit after database setup is complete
	// unless --no-exit flag is provided
	if isResetDB && !*noExit {
		log.Println("Database reset completed successfully. Exiting.")
		return
	}

	// Initialize Firebase Admin SDK
	log.Println("Initializing Firebase Admin SDK...")
	if err := middleware.InitializeFirebase(); err != nil {
		log.Printf("Warning: Failed to initialize Firebase: %v", err)
		log.Println("Auth token verification will be disabled!")
	}

	// Pick the document store and identity provider: Firestore when Firebase
	// is configured, the SQLite fallback otherwise.
	var accounts store.AccountStore
	var identity store.Identity
	if client := middleware.FirestoreClient(); client != nil {
		accounts = store.NewFirestoreStore(client)
		identity = store.NewFirebaseIdentity(middleware.AuthClient())
		log.Println("Using Firestore document store")
	} else {
		accounts = store.NewLocalStore(database.DB)
		identity = store.NewLocalIdentity(database.DB)
		log.Println("Using local SQLite document store")
	}

	resolver := services.NewAccessResolver(accounts, identity)

	// Create router
	r := mux.NewRouter()
	r.Use(middleware.EnableCORS)

	// Register routes with both direct paths and /api prefix to maintain compatibility
	registerRoutes(r, resolver)
	apiRouter := r.PathPrefix("/api").Subrouter()
	registerRoutes(apiRouter, resolver)

	// Serve static files from the "dist" directory for the frontend
	fs := http.FileServer(http.Dir("./dist"))
	r.PathPrefix("/assets/").Handler(http.StripPrefix("", fs))
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/assets/") {
			log.Printf("Serving index.html for path: %s", r.URL.Path)
		}
		http.ServeFile(w, r, "./dist/index.html")
	}).Methods("GET")

	// Configure the server
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
func registerRoutes(r *mux.Router, resolver *services.AccessResolver) {
	accessHandler := handlers.NewAccessHandler(resolver)
	permissionsHandler := handlers.NewPermissionsHandler(resolver)
	teamHandler := handlers.NewTeamHandler(resolver)

	// Public routes (no auth required)
	r.HandleFunc("/health", handlers.HealthCheck).Methods("GET", "OPTIONS")

	// Create a subrouter for authenticated routes
	protected := r.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.Use(middleware.ResolveAccess(resolver))

	// Access context
	protected.HandleFunc("/access/context", accessHandler.GetAccessContext).Methods("GET")

	// Permissions matrix; edits are owner-only
	protected.HandleFunc("/permissions", permissionsHandler.GetPermissionsMatrix).Methods("GET")
	protected.Handle("/permissions/roles/{role}",
		middleware.RequireOwner()(http.HandlerFunc(permissionsHandler.UpdateRolePermission))).Methods("PUT")
	protected.Handle("/permissions/reset",
		middleware.RequireOwner()(http.HandlerFunc(permissionsHandler.ResetPermissions))).Methods("POST")

	// Team management
	teamRouter := protected.PathPrefix("/team").Subrouter()
	teamRouter.Use(middleware.RequireCapability(resolver, models.CapabilityTeam))
	teamRouter.HandleFunc("", teamHandler.GetTeamMembers).Methods("GET")
	teamRouter.HandleFunc("", teamHandler.AddTeamMember).Methods("POST")
	teamRouter.HandleFunc("/{memberId}", teamHandler.RemoveTeamMember).Methods("DELETE")

	// Expenses
	expensesRouter := protected.PathPrefix("/expenses").Subrouter()
	expensesRouter.Use(middleware.RequireCapability(resolver, models.CapabilityExpenses))
	expensesRouter.HandleFunc("", handlers.GetExpenses).Methods("GET")
	expensesRouter.HandleFunc("", handlers.AddExpense).Methods("POST")
	expensesRouter.HandleFunc("/{id}", handlers.DeleteExpense).Methods("DELETE")

	// Income
	incomeRouter := protected.PathPrefix("/income").Subrouter()
	incomeRouter.Use(middleware.RequireCapability(resolver, models.CapabilityIncome))
	incomeRouter.HandleFunc("", handlers.GetIncome).Methods("GET")
	incomeRouter.HandleFunc("", handlers.AddIncome).Methods("POST")
	incomeRouter.HandleFunc("/{id}", handlers.DeleteIncome).Methods("DELETE")

	// Petty cash
	pettyCashRouter := protected.PathPrefix("/pettycash").Subrouter()
	pettyCashRouter.Use(middleware.RequireCapability(resolver, models.CapabilityPettyCash))
	pettyCashRouter.HandleFunc("", handlers.GetPettyCashEntries).Methods("GET")
	pettyCashRouter.HandleFunc("", handlers.AddPettyCashEntry).Methods("POST")
	pettyCashRouter.HandleFunc("/balance", handlers.GetPettyCashBalance).Methods("GET")

	// Customers (any authenticated team member)
	protected.HandleFunc("/customers", handlers.GetCustomers).Methods("GET")
	protected.HandleFunc("/customers", handlers.AddCustomer).Methods("POST")
	protected.HandleFunc("/customers/{id}", handlers.UpdateCustomer).Methods("PUT")
	protected.HandleFunc("/customers/{id}", handlers.DeleteCustomer).Methods("DELETE")

	// Store info; any member can read it, the owner edits it
	protected.HandleFunc("/store-info", handlers.GetStoreInfo).Methods("GET")
	protected.Handle("/store-info",
		middleware.RequireOwner()(http.HandlerFunc(handlers.SaveStoreInfo))).Methods("PUT")

	// Check printing
	checksRouter := protected.PathPrefix("/checks").Subrouter()
	checksRouter.Use(middleware.RequireCapability(resolver, models.CapabilityCheckPrinting))
	checksRouter.HandleFunc("", handlers.GetChecks).Methods("GET")
	checksRouter.HandleFunc("", handlers.IssueCheck).Methods("POST")
	checksRouter.HandleFunc("/bank-account", handlers.GetBankAccount).Methods("GET")
	checksRouter.HandleFunc("/bank-account", handlers.SaveBankAccount).Methods("PUT")
}
