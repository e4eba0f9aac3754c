package main

import (
    "context"
    "encoding/json"
    "fmt"
    "log"
    "net/http"
    "os"
    "os/signal"
    "runtime"
    "syscall"
    "time"

    _ "github.com/go-sql-driver/mysql"
    "github.com/gorilla/mux"

    "arbt-storefront-api/cart"
    "arbt-storefront-api/config"
    "arbt-storefront-api/database"
    "arbt-storefront-api/events"
    "arbt-storefront-api/handlers"
    "arbt-storefront-api/middleware"
    "arbt-storefront-api/queue"
    "arbt-storefront-api/services/auth"
    "arbt-storefront-api/services/email"
    "arbt-storefront-api/services/shipping"
    "arbt-storefront-api/worker"
)

func corsMiddleware(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Access-Control-Allow-Origin", "*")
        w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
        w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization")

        if r.Method == "OPTIONS" {
            w.WriteHeader(http.StatusOK)
            return
        }
        next.ServeHTTP(w, r)
    })
}

type responseWriter struct {
    http.ResponseWriter
    status int
}

func (rw *responseWriter) WriteHeader(code int) {
    rw.status = code
    rw.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        start := time.Now()

        wrapper := &responseWriter{ResponseWriter: w, status: http.StatusOK}
        next.ServeHTTP(wrapper, r)

        // Only slow requests and errors make it into the log.
        elapsed := time.Since(start)
        if elapsed > 500*time.Millisecond || wrapper.status >= 400 {
            log.Printf(
                "%s %s %s %d %v",
                r.Method,
                r.RequestURI,
                r.RemoteAddr,
                wrapper.status,
                elapsed,
            )
        }
    })
}

func main() {
    log.SetFlags(log.LstdFlags | log.Lshortfile | log.Lmicroseconds | log.LUTC)

    numCPU := runtime.NumCPU()
    runtime.GOMAXPROCS(numCPU)
    log.Printf("Server starting with %d CPUs available", numCPU)

    cfg := config.Load()
    log.Printf("Configuration loaded successfully")

    var db *database.Connection
    var err error
    for retries := 0; retries < 5; retries++ {
        db, err = database.NewConnection(cfg.Database)
        if err == nil {
            break
        }
        retryDelay := time.Duration(retries+1) * time.Second
        log.Printf("Failed to connect to database (attempt %d/5): %v. Retrying in %v...",
            retries+1, err, retryDelay)
        time.Sleep(retryDelay)
    }

    if err != nil {
        log.Fatalf("Failed to connect to database after retries: %v", err)
    }
    defer db.Close()

    ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
    defer cancel()

    if err := db.GetDB().PingContext(ctx); err != nil {
        log.Fatalf("Failed to ping database: %v", err)
    }
    log.Println("Successfully connected to database")

    jobQueue, err := queue.NewQueue(cfg.Redis.URL, "storefront_jobs")
    if err != nil {
        log.Fatalf("Failed to connect to Redis: %v", err)
    }
    defer jobQueue.Close()
    log.Println("Successfully connected to Redis")

    // The cart engine, its Redis-backed store and the change-signal bus. The
    // bus subscriber here only logs; the storefront clients poll GET /api/cart
    // after mutations, so the log line is the server-side trace of the signal.
    bus := events.NewBus()
    bus.Subscribe(events.CartUpdated, func() {
        log.Printf("Signal raised: %s", events.CartUpdated)
    })
    cartStore := cart.NewRedisStoreFromClient(jobQueue.Client())
    cartEngine := cart.NewEngine(cartStore, bus)

    emailService := email.NewSMTPService(cfg.SMTP)
    jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer, db)
    feeResolver := shipping.NewClient(db, cfg.Shipping.FeeURL, cfg.Shipping.DefaultFee)

    workerConcurrency := cfg.Redis.WorkerConcurrency
    if workerConcurrency < 2 {
        workerConcurrency = 2
    } else if workerConcurrency > 8 {
        workerConcurrency = 8
    }

    orderWorker := worker.NewWorker(jobQueue, db, emailService)
    orderWorker.Start(workerConcurrency)
    defer orderWorker.Stop()
    log.Printf("Started order worker with %d threads", workerConcurrency)

    cartHandler := handlers.NewCartHandler(cartEngine, db, feeResolver, cfg)
    checkoutHandler := handlers.NewCheckoutHandler(cartHandler, feeResolver, cfg.Shipping.DefaultFee)
    paymentHandler := handlers.NewPaymentHandler(cartHandler, cartEngine, db, feeResolver, jobQueue)
    productHandler := handlers.NewProductHandler(db)
    orderHandler := handlers.NewOrderHandler(db)
    bookingHandler := handlers.NewBookingHandler(db, jobQueue, emailService)
    reviewHandler := handlers.NewReviewHandler(db)
    contentHandler := handlers.NewContentHandler(db)
    adminHandler := handlers.NewAdminHandler(db)
    authHandler := handlers.NewAuthHandler(jwtService)

    rateLimiter := middleware.NewRateLimiter(jobQueue.Client())
    requireAuth := middleware.AuthMiddleware(jwtService)
    optionalAuth := middleware.OptionalAuth(jwtService)

    router := mux.NewRouter()
    router.Use(corsMiddleware)
    router.Use(loggingMiddleware)
    router.Use(middleware.SecurityHeadersMiddleware)
    router.Use(rateLimiter.RateLimitMiddleware())

    api := router.PathPrefix("/api").Subrouter()

    // Auth
    api.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST", "OPTIONS")
    api.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
    api.Handle("/auth/me", requireAuth(http.HandlerFunc(authHandler.Me))).Methods("GET", "OPTIONS")

    // Catalog
    api.HandleFunc("/products", productHandler.GetProducts).Methods("GET", "OPTIONS")

    // Cart. OptionalAuth so signed-in users get their own service fee while
    // guests still carry a session cart.
    api.Handle("/cart", optionalAuth(http.HandlerFunc(cartHandler.AddToCart))).Methods("POST", "OPTIONS")
    api.Handle("/cart", optionalAuth(http.HandlerFunc(cartHandler.UpdateCart))).Methods("PUT", "OPTIONS")
    api.Handle("/cart", optionalAuth(http.HandlerFunc(cartHandler.GetCart))).Methods("GET", "OPTIONS")
    api.Handle("/cart/remove", optionalAuth(http.HandlerFunc(cartHandler.RemoveFromCart))).Methods("POST", "OPTIONS")

    // Checkout
    api.Handle("/checkout/totals", optionalAuth(http.HandlerFunc(checkoutHandler.GetTotals))).Methods("GET", "OPTIONS")
    api.HandleFunc("/shipping-fee", checkoutHandler.GetShippingFee).Methods("POST", "OPTIONS")
    api.HandleFunc("/shipping-fee/default", checkoutHandler.GetDefaultFee).Methods("GET", "OPTIONS")
    api.Handle("/payment-process", requireAuth(http.HandlerFunc(paymentHandler.ProcessPayment))).Methods("POST", "OPTIONS")

    // Orders
    api.Handle("/orders", requireAuth(http.HandlerFunc(orderHandler.GetMyOrders))).Methods("GET", "OPTIONS")
    api.Handle("/orders/{id}", requireAuth(http.HandlerFunc(orderHandler.GetOrder))).Methods("GET", "OPTIONS")

    // Bookings
    api.Handle("/bookings", optionalAuth(http.HandlerFunc(bookingHandler.CreateBooking))).Methods("POST", "OPTIONS")
    api.Handle("/bookings", requireAuth(http.HandlerFunc(bookingHandler.GetMyBookings))).Methods("GET", "OPTIONS")

    // Reviews and public content
    api.HandleFunc("/reviews", reviewHandler.GetReviews).Methods("GET", "OPTIONS")
    api.Handle("/reviews", optionalAuth(http.HandlerFunc(reviewHandler.CreateReview))).Methods("POST", "OPTIONS")
    api.HandleFunc("/team", contentHandler.GetTeamMembers).Methods("GET", "OPTIONS")
    api.HandleFunc("/subscription-plans", contentHandler.GetSubscriptionPlans).Methods("GET", "OPTIONS")
    api.HandleFunc("/promotions", contentHandler.GetPromotions).Methods("GET", "OPTIONS")

    // Back office
    admin := api.PathPrefix("/admin").Subrouter()
    admin.Use(requireAuth)
    admin.Use(middleware.RequireAdmin())
    admin.HandleFunc("/summary", adminHandler.GetDashboard).Methods("GET", "OPTIONS")
    admin.HandleFunc("/reports/orders", adminHandler.GetOrdersPage).Methods("GET", "OPTIONS")
    admin.HandleFunc("/reports/sales", adminHandler.GetSalesReport).Methods("GET", "OPTIONS")
    admin.HandleFunc("/orders/{id}/status", orderHandler.UpdateOrderStatus).Methods("PUT", "OPTIONS")
    admin.HandleFunc("/products", productHandler.CreateProduct).Methods("POST", "OPTIONS")
    admin.HandleFunc("/products/archived", productHandler.GetArchivedProducts).Methods("GET", "OPTIONS")
    admin.HandleFunc("/products/{id}", productHandler.UpdateProduct).Methods("PUT", "OPTIONS")
    admin.HandleFunc("/products/{id}", productHandler.DeleteProduct).Methods("DELETE", "OPTIONS")
    admin.HandleFunc("/products/{id}/archive", productHandler.ArchiveProduct).Methods("POST", "OPTIONS")
    admin.HandleFunc("/products/{id}/unarchive", productHandler.UnarchiveProduct).Methods("POST", "OPTIONS")
    admin.HandleFunc("/bookings", bookingHandler.GetAllBookings).Methods("GET", "OPTIONS")
    admin.HandleFunc("/bookings/{id}/status", bookingHandler.UpdateBookingStatus).Methods("PUT", "OPTIONS")
    admin.HandleFunc("/reviews/{id}", reviewHandler.DeleteReview).Methods("DELETE", "OPTIONS")
    admin.HandleFunc("/team", contentHandler.GetAllTeamMembers).Methods("GET", "OPTIONS")
    admin.HandleFunc("/team", contentHandler.SaveTeamMember).Methods("POST", "PUT", "OPTIONS")
    admin.HandleFunc("/team/{id}", contentHandler.DeleteTeamMember).Methods("DELETE", "OPTIONS")
    admin.HandleFunc("/subscription-plans", contentHandler.GetAllSubscriptionPlans).Methods("GET", "OPTIONS")
    admin.HandleFunc("/subscription-plans", contentHandler.SaveSubscriptionPlan).Methods("POST", "PUT", "OPTIONS")
    admin.HandleFunc("/promotions", contentHandler.GetAllPromotions).Methods("GET", "OPTIONS")
    admin.HandleFunc("/promotions", contentHandler.SavePromotion).Methods("POST", "PUT", "OPTIONS")
    admin.HandleFunc("/promotions/{id}", contentHandler.DeletePromotion).Methods("DELETE", "OPTIONS")

    startTime := time.Now()

    api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
        ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
        defer cancel()

        health := struct {
            Status    string `json:"status"`
            Time      string `json:"time"`
            Database  string `json:"database"`
            Redis     string `json:"redis"`
            Uptime    string `json:"uptime"`
            GoVersion string `json:"go_version"`
        }{
            Status:    "ok",
            Time:      time.Now().Format(time.RFC3339),
            Database:  "connected",
            Redis:     "connected",
            Uptime:    fmt.Sprintf("%v", time.Since(startTime)),
            GoVersion: runtime.Version(),
        }

        dbCtx, dbCancel := context.WithTimeout(ctx, 500*time.Millisecond)
        defer dbCancel()

        if err := db.GetDB().PingContext(dbCtx); err != nil {
            health.Status = "degraded"
            health.Database = "error"
        }

        redisCtx, redisCancel := context.WithTimeout(ctx, 500*time.Millisecond)
        defer redisCancel()

        if err := jobQueue.Client().Ping(redisCtx).Err(); err != nil {
            health.Status = "degraded"
            health.Redis = "error"
        }

        w.Header().Set("Content-Type", "application/json")
        json.NewEncoder(w).Encode(health)
    }).Methods("GET")

    srv := &http.Server{
        Addr:           fmt.Sprintf(":%s", cfg.Server.Port),
        Handler:        router,
        ReadTimeout:    15 * time.Second,
        WriteTimeout:   30 * time.Second,
        IdleTimeout:    120 * time.Second,
        MaxHeaderBytes: 1 << 20,
    }

    go func() {
        log.Printf("Server starting on port %s", cfg.Server.Port)
        if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
            log.Fatalf("Server error: %v", err)
        }
    }()

    stop := make(chan os.Signal, 1)
    signal.Notify(stop, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

    <-stop
    log.Println("Shutdown signal received, gracefully shutting down...")

    shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
    defer shutdownCancel()

    log.Println("Shutting down HTTP server...")
    if err := srv.Shutdown(shutdownCtx); err != nil {
        log.Printf("Server forced to shutdown: %v", err)
    }

    log.Println("Stopping order worker...")
    orderWorker.Stop()

    time.Sleep(2 * time.Second)

    log.Println("Closing database connections...")
    db.Close()

    log.Println("Closing Redis connections...")
    jobQueue.Close()

    log.Println("Server exited properly")
}
