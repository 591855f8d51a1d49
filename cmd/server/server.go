package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	chimiddleware "github.com/go-chi/chi/middleware"
	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	mppayment "github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/redis/go-redis/v9"
	"github.com/y0usad/lyoki-site/internal/auth"
	"github.com/y0usad/lyoki-site/internal/eventengine"
	"github.com/y0usad/lyoki-site/internal/features/admin"
	"github.com/y0usad/lyoki-site/internal/features/order"
	"github.com/y0usad/lyoki-site/internal/features/payment"
	"github.com/y0usad/lyoki-site/internal/features/product"
	"github.com/y0usad/lyoki-site/internal/features/user"
	"github.com/y0usad/lyoki-site/internal/middlewares"
	"golang.org/x/sync/errgroup"
)

type ServerConfig struct {
	Addr                   string
	DB                     *sql.DB
	RedisClient            *redis.Client
	TokenManager           *auth.TokenService
	GoogleClientID         string
	MercadoPagoAccessToken string
	FrontendBaseURL        string
	BackendBaseURL         string
}

type server struct {
	*ServerConfig

	doneCh        chan struct{}   // used to signal internal go routines to shutdown
	internalSrvWG *sync.WaitGroup // used to wait for all internal go routines within individual routes to finish before shutting down the server.

	eventEngine eventengine.SubscribeRegisterPublisher
	srv         *http.Server
}

func NewServer(serverConfig *ServerConfig) *server {
	srv := &server{
		ServerConfig:  serverConfig,
		doneCh:        make(chan struct{}),
		internalSrvWG: &sync.WaitGroup{},
	}

	return srv
}

func (s *server) Run() {
	router := chi.NewRouter()

	// strip trailing slashes at the end of the url
	// e.g. /products/1/ -> /products/1
	// this middleware should be applied to all routes
	// to ensure that the url is correctly formatted
	router.Use(chimiddleware.StripSlashes)

	s.prep()

	router.Mount("/api/v1", s.v1Router()) // api version 1 subrouter

	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%s", s.Addr),
		Handler: router,
	}

	// start server and listen for [os.Signal] signals to graceful shutdown server.
	s.listenAndServe()
}

func (s *server) listenAndServe() {
	shutdownCtx, shutdownCancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer shutdownCancel()

	errGrp, shutdownCtx := errgroup.WithContext(shutdownCtx)

	errGrp.Go(
		func() error {
			log.Printf("server started and is listening at port %s...\n", s.Addr)

			if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) && err != nil {
				return fmt.Errorf("failed to start server: %w", err)
			}

			return nil
		},
	)

	errGrp.Go(
		func() error {
			<-shutdownCtx.Done() // block and listen shutdown signals
			println()
			log.Println("hold and wait, server is gracefully shutting down...")

			ctx, cancel := context.WithTimeout(
				context.Background(),
				(20 * time.Second),
			)
			defer cancel()

			log.Println("server has stopped receiving new requests")
			log.Println("waiting for all pending requests to finish....")
			if err := s.srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("server failed shutdown gracefully: %w", err)
			}

			return nil
		},
	)

	if err := errGrp.Wait(); err != nil {
		log.Fatal(err.Error())
	}
	log.Println("all pending requests completed!")

	log.Println("waiting for all internal pending go routines....")
	close(s.doneCh)
	s.internalSrvWG.Wait()
	log.Println("all internal go routines are done")

	log.Println("closing other resources...")
	if err := s.DB.Close(); err != nil {
		log.Println("server failed to close db for shutdown")
	}
	if err := s.RedisClient.Close(); err != nil {
		log.Println("server failed to close redis client for shutdown")
	}

	log.Println("server has been gracefully shutdown")
	os.Exit(0)
}

// prep prepares server dependencies needed for server to function
func (s *server) prep() {
	s.eventEngine = eventengine.NewEventEngine(
		&eventengine.EventEngineConfig{
			DoneCh:        s.doneCh,
			InternalSrvWG: s.internalSrvWG,
		},
	)
}

func (s *server) v1Router() *chi.Mux {
	r := chi.NewRouter()

	// health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	//middleware
	middleware := middlewares.NewMiddleware(
		s.TokenManager,
	)

	// order feature; wired before the product event handler so its events
	// are registered by the time subscriptions happen.
	orderStore := order.NewStore(s.DB)
	orderService := order.NewService(
		orderStore,
		s.eventEngine,
	)
	orderHandler := order.NewHandler(orderService)
	orderHandler.RegisterRoutes(r)

	// product feature
	productStore := product.NewStore(s.DB)
	productCache := product.NewCachedStore(
		productStore,
		s.RedisClient,
	)
	productService := product.NewService(
		productCache,
		s.eventEngine,
	)
	product.NewHandlerEvents(
		&product.HandlerEventsConfig{
			DoneCh:        s.doneCh,
			InternalSrvWG: s.internalSrvWG,
			EventEngine:   s.eventEngine,
			Cache:         productCache,
		},
	)
	productHandler := product.NewHandler(
		productService,
		middleware,
	)
	productHandler.RegisterRoutes(r)

	// user feature
	userStore := user.NewStore(s.DB)
	userService := user.NewService(
		userStore,
		s.TokenManager,
		auth.NewGoogleVerifier(s.GoogleClientID),
	)
	userHandler := user.NewHandler(
		userService,
		middleware,
	)
	userHandler.RegisterRoutes(r)

	//admin feature
	adminStore := admin.NewStore(s.DB)
	adminService := admin.NewService(
		adminStore,
		s.TokenManager,
		orderService,
	)
	adminHandler := admin.NewHandler(
		adminService,
		middleware,
	)
	adminHandler.RegisterRoutes(r)

	// payment feature
	mpCfg, err := mpconfig.New(s.MercadoPagoAccessToken)
	if err != nil {
		log.Fatalf("failed to configure mercado pago client: %v", err)
	}
	paymentService := payment.NewService(
		preference.NewClient(mpCfg),
		mppayment.NewClient(mpCfg),
		orderService,
		s.FrontendBaseURL,
		s.BackendBaseURL,
	)
	paymentHandler := payment.NewHandler(paymentService)
	paymentHandler.RegisterRoutes(r)

	return r
}
