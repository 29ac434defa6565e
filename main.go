package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"Canopy/internal/auth"
	"Canopy/internal/calc/anchor"
	"Canopy/internal/calc/canopy"
	"Canopy/internal/calc/column"
	"Canopy/internal/calc/importer"
	"Canopy/internal/calc/loads"
	"Canopy/internal/calc/report"
	"Canopy/internal/calc/section"
	"Canopy/internal/calc/weld"
	"Canopy/internal/config"
	"Canopy/internal/export"
	"Canopy/internal/version"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, cfg *config.Config) {
	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"version":    version.Version,
			"commit":     version.GitCommit,
			"build_time": version.BuildTime,
		})
	}).Methods("GET")

	tools := api.NewRoute().Subrouter()
	if cfg.AuthEnabled() {
		authEnv := &auth.Authenv{
			JWTkey:       []byte(cfg.TokenKey),
			Login:        cfg.OperatorLogin,
			PasswordHash: cfg.OperatorPasswordHash,
			SecureCookie: cfg.TLS(),
		}
		api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
		api.HandleFunc("/logout", authEnv.LogoutHandler).Methods("POST")
		tools.Use(authEnv.AuthMiddleware)
	} else {
		log.Println("TOKEN_KEY not set, calculation API is open")
	}

	sectionH := &section.Handler{}
	loadsH := &loads.Handler{}
	columnH := &column.Handler{}
	weldH := &weld.Handler{}
	anchorH := &anchor.Handler{}
	canopyH := &canopy.Handler{Workers: cfg.BatchWorkers}
	exportH := &export.Handler{}
	importH := &importer.Handler{Workers: cfg.BatchWorkers}
	reportH := &report.Handler{}

	tools.HandleFunc("/catalog", sectionH.Catalog).Methods("GET")
	tools.HandleFunc("/tools/loads/calc", loadsH.Calc).Methods("POST")
	tools.HandleFunc("/tools/section/select", sectionH.Calc).Methods("POST")
	tools.HandleFunc("/tools/column/calc", columnH.Calc).Methods("POST")
	tools.HandleFunc("/tools/column/size", columnH.Size).Methods("POST")
	tools.HandleFunc("/tools/weld/calc", weldH.Calc).Methods("POST")
	tools.HandleFunc("/tools/weld/recommend", weldH.Recommend).Methods("POST")
	tools.HandleFunc("/tools/anchor/calc", anchorH.Calc).Methods("POST")

	tools.HandleFunc("/tools/canopy/calc", canopyH.Calc).Methods("POST")
	tools.HandleFunc("/tools/canopy/batch", canopyH.Batch).Methods("POST")
	tools.HandleFunc("/tools/canopy/import", importH.Canopy).Methods("POST")
	tools.HandleFunc("/tools/canopy/txt", exportH.Text).Methods("POST")
	tools.HandleFunc("/tools/canopy/dxf", exportH.DXF).Methods("POST")
	tools.HandleFunc("/tools/canopy/xlsx", exportH.XLSX).Methods("POST")
	tools.HandleFunc("/tools/canopy/png", exportH.PNG).Methods("POST")
	tools.HandleFunc("/tools/canopy/svg", exportH.SVG).Methods("POST")
	tools.HandleFunc("/tools/report/pdf", reportH.Generate).Methods("POST")

	if st, err := os.Stat(cfg.StaticDir); err == nil && st.IsDir() {
		mux.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.StaticDir)))
	}
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config: ", err)
	}

	mux := mux.NewRouter()
	HandleList(mux, cfg)
	handler := CORS(mux)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("%s listening on %s", version.String(), cfg.Addr)
	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Server error: %v", err)
			cancel()
		}
	}()

	<-ctx.Done()
	fmt.Println("Shutdown signal received")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
	log.Println("Server stopped")

	wg.Wait()
}
