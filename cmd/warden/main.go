package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"time"

	"colonywars/internal/alliance"
	"colonywars/internal/colony"
	"colonywars/internal/coordination"
	"colonywars/internal/fees"
	"colonywars/internal/season"
	"colonywars/internal/settings"
	"colonywars/internal/siege"
	"colonywars/internal/territory"
	"colonywars/internal/warclock"
	"colonywars/pkg/app"
	"colonywars/pkg/config"
	"colonywars/pkg/gamebridge"
	"colonywars/pkg/module"
	"colonywars/pkg/ratelimit"
	"colonywars/pkg/version"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "go.uber.org/automaxprocs"

	wardenMiddleware "colonywars/pkg/middleware"
)

// customLoggerMiddleware logs requests but excludes health check endpoints
func customLoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Skip logging for health check endpoints
		if strings.HasSuffix(r.URL.Path, "/health") {
			next.ServeHTTP(w, r)
			return
		}

		// Use the default chi logger for all other requests
		middleware.Logger(next).ServeHTTP(w, r)
	})
}

// corsMiddleware adds CORS headers for cross-subdomain requests
func corsMiddleware(next http.Handler) http.Handler {
	allowedSuffix := config.GetEnv("CORS_ORIGIN_SUFFIX", "")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		if allowedSuffix != "" && (strings.HasSuffix(origin, "."+allowedSuffix) || origin == "https://"+allowedSuffix) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-CSRF-Token")
		w.Header().Set("Access-Control-Max-Age", "86400")

		// Handle preflight requests
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	// Display startup banner
	displayBanner()

	// Display version information
	versionInfo := version.Get()
	log.Printf("🏷️  Version: %s | Build: %s", version.GetVersionString(), versionInfo.BuildDate)
	log.Printf("🖥️  CPUs: %d | GOMAXPROCS: %d", runtime.NumCPU(), runtime.GOMAXPROCS(0))

	ctx := context.Background()

	// Initialize application with shared components
	appCtx, err := app.InitializeApp("warden")
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer appCtx.Shutdown(ctx)

	// Print memory stats (compact)
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	log.Printf("💾 Memory: %s heap | %s total", formatBytes(m.HeapAlloc), formatBytes(m.Sys))
	printMemoryLimits()

	// Initialize Chi router
	r := chi.NewRouter()

	// Global middleware
	r.Use(customLoggerMiddleware) // Custom logger that excludes health checks
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsMiddleware)
	r.Use(wardenMiddleware.TracingMiddleware)

	// Health check endpoint with version info
	r.Get("/health", enhancedHealthHandler)

	// Wallet authentication middleware shared by all modules
	authMiddleware := wardenMiddleware.NewAuthMiddleware()

	// CASBIN authorization over MongoDB-backed policies
	authz, err := wardenMiddleware.NewCasbinAuth(appCtx.MongoDB.Client, "warden")
	if err != nil {
		log.Fatalf("Failed to initialize authorization: %v", err)
	}
	if err := authz.SeedAdminPolicies(); err != nil {
		log.Printf("⚠️  Admin policy seeding failed: %v", err)
	} else {
		log.Printf("🔒 CASBIN authorization enabled")
	}

	// Game-core bridge for staking, combat power and treasury operations
	bridge := gamebridge.NewClient()

	// Redis-backed action cooldowns shared by the war services
	limiter := ratelimit.New(appCtx.Redis)

	// War tuning knobs, read once at startup
	cfg := config.War()

	// Initialize modules in dependency order
	feesModule := fees.NewModule(appCtx.MongoDB, appCtx.Redis, bridge, authMiddleware, authz)
	colonyModule := colony.NewModule(appCtx.MongoDB, appCtx.Redis, bridge, &cfg, authMiddleware)
	settingsModule := settings.NewModule(appCtx.MongoDB, appCtx.Redis, authMiddleware, authz)
	seasonModule := season.NewModule(appCtx.MongoDB, appCtx.Redis, colonyModule.GetService(), settingsModule.GetService(), bridge, &cfg, authMiddleware, authz)
	allianceModule := alliance.NewModule(appCtx.MongoDB, appCtx.Redis, colonyModule.GetService(), settingsModule.GetService(), limiter, &cfg, authMiddleware)
	territoryModule := territory.NewModule(appCtx.MongoDB, appCtx.Redis, colonyModule.GetService(), feesModule.GetService(), seasonModule.GetService(), settingsModule.GetService(), limiter, &cfg, authMiddleware, authz)
	siegeModule := siege.NewModule(appCtx.MongoDB, appCtx.Redis, territoryModule.GetService(), colonyModule.GetService(), allianceModule.GetService(), seasonModule.GetService(), feesModule.GetService(), settingsModule.GetService(), limiter, bridge, &cfg, authMiddleware, authz)
	coordinationModule := coordination.NewModule(appCtx.MongoDB, appCtx.Redis, colonyModule.GetService(), allianceModule.GetService(), seasonModule.GetService(), siegeModule.GetService(), settingsModule.GetService(), &cfg, authMiddleware)

	modules := []module.Module{
		feesModule,
		colonyModule,
		settingsModule,
		seasonModule,
		allianceModule,
		territoryModule,
		siegeModule,
		coordinationModule,
	}

	// Mount module routes with configurable API prefix
	apiPrefix := config.GetAPIPrefix()

	// Create unified Huma API configuration
	humaConfig := huma.DefaultConfig("Colony Wars API Server", "1.0.0")
	humaConfig.Info.Description = "Seasonal territory warfare metagame server with modular architecture"

	// Create the unified API on main router
	var unifiedAPI huma.API
	if apiPrefix == "" {
		unifiedAPI = humachi.New(r, humaConfig)
	} else {
		// Mount the API under the prefix
		r.Route(apiPrefix, func(prefixRouter chi.Router) {
			unifiedAPI = humachi.New(prefixRouter, humaConfig)
		})
	}

	// Register all module routes on the unified API
	feesModule.RegisterUnifiedRoutes(unifiedAPI, "/fees")
	colonyModule.RegisterUnifiedRoutes(unifiedAPI, "/colonies")
	settingsModule.RegisterUnifiedRoutes(unifiedAPI, "/settings")
	seasonModule.RegisterUnifiedRoutes(unifiedAPI, "/seasons")
	allianceModule.RegisterUnifiedRoutes(unifiedAPI, "/alliances")
	territoryModule.RegisterUnifiedRoutes(unifiedAPI, "/territories")
	siegeModule.RegisterUnifiedRoutes(unifiedAPI, "/sieges")
	coordinationModule.RegisterUnifiedRoutes(unifiedAPI, "/coordination")

	// Start background services for all modules
	for _, mod := range modules {
		go mod.StartBackgroundTasks(ctx)
	}

	// Periodic war sweeps: phase sync, siege resolution, neglect, diplomacy, stress
	clock := warclock.New(seasonModule.GetService(), siegeModule.GetService(), colonyModule.GetService(), territoryModule.GetService(), allianceModule.GetService(), &cfg)
	if err := clock.Start(); err != nil {
		log.Fatalf("Failed to start war clock: %v", err)
	}

	// HTTP server setup
	port := app.GetPort("8080")
	host := config.GetHost()

	// Main server
	srv := &http.Server{
		Addr:         host + ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Display server configuration
	serverAddr := host + ":" + port
	if host == "0.0.0.0" {
		log.Printf("🚀 Server: http://localhost:%s%s | OpenAPI: %s/openapi.json", port, apiPrefix, apiPrefix)
	} else {
		log.Printf("🚀 Server: http://%s%s | OpenAPI: %s/openapi.json", serverAddr, apiPrefix, apiPrefix)
	}

	// Start main server
	go func() {
		slog.Info("Starting main API warden server", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Main server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Received shutdown signal, initiating graceful shutdown...")

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP servers
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Main server forced to shutdown", "error", err)
	}

	// Stop the war sweeps before tearing down the modules they call into
	clock.Stop()

	// Stop background services for all modules
	for _, mod := range modules {
		mod.Stop()
	}

	// Application context will handle database and telemetry shutdown
	appCtx.Shutdown(shutdownCtx)

	slog.Info("Warden shutdown completed successfully")
}

func enhancedHealthHandler(w http.ResponseWriter, r *http.Request) {
	// Health checks are excluded from logging to reduce noise
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	versionInfo := version.Get()
	response := fmt.Sprintf(`{
		"status": "healthy",
		"architecture": "warden",
		"version": "%s",
		"git_commit": "%s",
		"build_date": "%s",
		"go_version": "%s",
		"platform": "%s"
	}`, versionInfo.Version, versionInfo.GitCommit, versionInfo.BuildDate, versionInfo.GoVersion, versionInfo.Platform)

	w.Write([]byte(response))
}

func displayBanner() {
	file, err := os.Open("banner.txt")
	if err != nil {
		// Fallback to inline banner if file not found
		fmt.Print("\033[38;5;33m")
		fmt.Print("COLONY WARS API Server\n")
		fmt.Print("\033[0m")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		fmt.Print("\033[38;5;33m")
		fmt.Print("COLONY WARS API Server\n")
		fmt.Print("\033[0m")
		return
	}

	lines := strings.Split(string(content), "\n")
	colors := []string{
		"\033[38;5;33m", // Bright blue
		"\033[38;5;39m", // Cyan
		"\033[38;5;75m", // Light blue
		"\033[38;5;51m", // Bright cyan
		"\033[38;5;33m", // Bright blue
		"\033[38;5;39m", // Cyan
	}

	fmt.Print("\n")
	for i, line := range lines {
		if line != "" && i < len(colors) {
			fmt.Print(colors[i])
			fmt.Println(line)
		}
	}
	fmt.Print("\033[0m") // Reset colors
	fmt.Print("\n")
}

// formatBytes converts bytes to human readable format
func formatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// printMemoryLimits reads and displays container memory limits
func printMemoryLimits() {
	// Try cgroups v2 first (newer systems)
	if limit := readCgroupV2MemoryLimit(); limit > 0 {
		log.Printf("📦 Container limit: %s", formatBytes(uint64(limit)))
		return
	}

	// Try cgroups v1 (older systems)
	if limit := readCgroupV1MemoryLimit(); limit > 0 {
		log.Printf("📦 Container limit: %s", formatBytes(uint64(limit)))
		return
	}
}

// readCgroupV2MemoryLimit reads memory limit from cgroups v2
func readCgroupV2MemoryLimit() int64 {
	data, err := os.ReadFile("/sys/fs/cgroup/memory.max")
	if err != nil {
		return 0
	}

	limitStr := strings.TrimSpace(string(data))
	if limitStr == "max" {
		return 0 // No limit set
	}

	limit, err := strconv.ParseInt(limitStr, 10, 64)
	if err != nil {
		return 0
	}

	return limit
}

// readCgroupV1MemoryLimit reads memory limit from cgroups v1
func readCgroupV1MemoryLimit() int64 {
	data, err := os.ReadFile("/sys/fs/cgroup/memory/memory.limit_in_bytes")
	if err != nil {
		return 0
	}

	limitStr := strings.TrimSpace(string(data))
	limit, err := strconv.ParseInt(limitStr, 10, 64)
	if err != nil {
		return 0
	}

	// cgroups v1 sometimes returns very large values when no limit is set
	// Anything larger than 1TB is probably "unlimited"
	if limit > 1024*1024*1024*1024 {
		return 0
	}

	return limit
}
