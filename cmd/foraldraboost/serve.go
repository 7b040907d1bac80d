package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Fiskerik/foraldra-boost-sub000/internal/api"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/cache"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/store"
	"github.com/Fiskerik/foraldra-boost-sub000/internal/store/sqlite"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the planning API over HTTP",
	Long: `Run the HTTP API: plan calculation, strategy comparison, what-if
search, and saved-plan storage.

Examples:
  foraldraboost serve
  foraldraboost serve --port 3000 --db plans.db
  foraldraboost serve --redis localhost:6379 --cache-ttl 30m
`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetInt("port")
		dbPath, _ := cmd.Flags().GetString("db")
		redisAddr, _ := cmd.Flags().GetString("redis")
		cacheTTL, _ := cmd.Flags().GetDuration("cache-ttl")

		var st store.Store
		if dbPath != "" {
			sqlStore, err := sqlite.New(dbPath)
			if err != nil {
				log.Fatalf("Failed to open database: %v", err)
			}
			st = sqlStore
			log.Printf("Saved plans persist to %s", dbPath)
		} else {
			st = store.NewMemory()
			log.Printf("Saved plans held in memory only")
		}
		defer st.Close()

		var resultCache cache.Cache
		if redisAddr != "" {
			redisCache := cache.NewRedis(redisAddr, cacheTTL)
			defer redisCache.Close()
			resultCache = redisCache
			log.Printf("Result cache on redis at %s", redisAddr)
		} else {
			resultCache = cache.NewMemory()
		}

		handler := api.NewHandler(st, resultCache)
		router := api.NewRouter(handler)

		server := &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		go func() {
			log.Printf("Planning API listening on http://localhost:%d", port)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("Server failed: %v", err)
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Println("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Fatalf("Server forced to shutdown: %v", err)
		}

		log.Println("Server stopped")
	},
}

func init() {
	serveCmd.Flags().Int("port", 8080, "HTTP server port")
	serveCmd.Flags().String("db", "", "SQLite database path for saved plans (empty keeps them in memory)")
	serveCmd.Flags().String("redis", "", "Redis address for the result cache (empty uses an in-process cache)")
	serveCmd.Flags().Duration("cache-ttl", 15*time.Minute, "How long cached calculation results stay valid")
}
