package main

import (
	"context"
	"errors"
	"expvar"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"dinefinder/docs" //this is required to generate swagger docs
	"dinefinder/internal/auth"
	"dinefinder/internal/domain/claims"
	"dinefinder/internal/domain/favorites"
	"dinefinder/internal/domain/history"
	"dinefinder/internal/domain/restaurants"
	"dinefinder/internal/domain/reviews"
	"dinefinder/internal/domain/storage"
	"dinefinder/internal/ratelimiter"
)

type application struct {
	config        config
	store         *storage.Container
	logger        *zap.SugaredLogger
	authenticator auth.Authenticator
	rateLimiter   ratelimiter.Limiter

	catalog   *restaurants.Catalog
	reviews   *reviews.Service
	favorites *favorites.Registry
	claims    *claims.Arbiter
	history   *history.Projector
}

type config struct {
	Addr           string   `env:"ADDR" envDefault:":8080"`
	Env            string   `env:"ENV" envDefault:"development"`
	APIURL         string   `env:"EXTERNAL_URL" envDefault:"localhost:8080"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"https://*,http://*"`
	DB             dbConfig
	Auth           authConfig
	RateLimiter    ratelimiter.Config
}

type authConfig struct {
	Basic basicConfig
	Token tokenConfig
}

type tokenConfig struct {
	Secret string        `env:"AUTH_TOKEN_SECRET,required"`
	Iss    string        `env:"AUTH_TOKEN_ISS" envDefault:"dinefinder"`
	Exp    time.Duration `env:"AUTH_TOKEN_EXP" envDefault:"72h"`
}

type basicConfig struct {
	User string `env:"AUTH_BASIC_USER" envDefault:"admin"`
	Pass string `env:"AUTH_BASIC_PASS"`
}

type dbConfig struct {
	Driver       string `env:"DB_DRIVER" envDefault:"sqlite"`
	Addr         string `env:"DB_ADDR"`
	MaxOpenConns int32  `env:"DB_MAX_OPEN_CONNS" envDefault:"30"`
	MaxIdleTime  string `env:"DB_MAX_IDLE_TIME" envDefault:"15m"`
	SQLitePath   string `env:"SQLITE_PATH" envDefault:"dinefinder.db"`
}

// newApplication wires the domain services over store. A nil limiter
// disables rate limiting.
func newApplication(
	cfg config,
	store *storage.Container,
	logger *zap.SugaredLogger,
	authenticator auth.Authenticator,
	limiter ratelimiter.Limiter,
) *application {
	catalog := restaurants.NewCatalog(store.Restaurants)
	reviewService := reviews.NewService(store.Reviews, catalog)

	return &application{
		config:        cfg,
		store:         store,
		logger:        logger,
		authenticator: authenticator,
		rateLimiter:   limiter,
		catalog:       catalog,
		reviews:       reviewService,
		favorites:     favorites.NewRegistry(store.Favorites, catalog),
		claims:        claims.NewArbiter(store, store.Restaurants, store.Reviews),
		history:       history.NewProjector(reviewService, catalog),
	}
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	r.Use(app.RateLimiterMiddleware)

	//Set a timeout value on the request context (ctx), that will signal through ctx.Done() that the request has timed out and further processing should be stopped
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/v1/swagger/doc.json")))

		r.Route("/restaurants", func(r chi.Router) {
			r.Get("/", app.listRestaurantsHandler)
			r.With(app.UserAuthMiddleware).Post("/", app.createRestaurantHandler)

			r.Route("/{restaurantID}", func(r chi.Router) {
				r.Get("/", app.getRestaurantHandler)
				r.Get("/reviews", app.listRestaurantReviewsHandler)

				r.Group(func(r chi.Router) {
					r.Use(app.UserAuthMiddleware)
					r.Post("/reviews", app.createReviewHandler)
					r.Post("/favorite", app.addFavoriteHandler)
					r.Delete("/favorite", app.removeFavoriteHandler)
				})
			})
		})

		r.Route("/reviews/{reviewID}", func(r chi.Router) {
			r.Use(app.UserAuthMiddleware)
			r.Put("/", app.updateReviewHandler)
			r.Delete("/", app.deleteReviewHandler)
		})

		r.Route("/users/me", func(r chi.Router) {
			r.Use(app.UserAuthMiddleware)
			r.Get("/favorites", app.listFavoritesHandler)
			r.Get("/favorites/ids", app.listFavoriteIDsHandler)
			r.Get("/history", app.historyHandler)
		})

		r.Route("/owner", func(r chi.Router) {
			r.Use(app.OwnerAuthMiddleware)
			r.Get("/dashboard", app.ownerDashboardHandler)
			r.Post("/restaurants", app.createOwnedRestaurantHandler)
			r.Route("/restaurants/{restaurantID}", func(r chi.Router) {
				r.Put("/", app.updateOwnedRestaurantHandler)
				r.Post("/claim", app.claimRestaurantHandler)
				r.Get("/reviews", app.ownerRestaurantReviewsHandler)
			})
		})
	})
	return r
}

func (app *application) run(mux http.Handler) error {
	// Docs
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.APIURL
	docs.SwaggerInfo.BasePath = "/v1"

	srv := &http.Server{
		Addr:         app.config.Addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	// Implementing graceful shutdown
	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.Addr, "env", app.config.Env)

	return nil
}
