package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/docs"
	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/queue"
	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/ratelimiter"
	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/service"
	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/store/mongo"
	"github.com/BM-ACADEMY/Anbunatureproducts-ecommerces/internal/worker"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config             config
	logger             *zap.SugaredLogger
	rateLimiter        ratelimiter.Limiter
	storage            *mongo.Storage
	broker             queue.Broker
	productService     *service.ProductService
	cartService        *service.CartService
	orderService       *service.OrderService
	stockWorker        *worker.StockAdjustmentWorker
	notificationWorker *worker.NotificationWorker
}

type config struct {
	addr        string
	env         string
	apiURL      string
	rateLimiter ratelimiter.Config
	mongo       mongoConfig
	rabbitMQ    rabbitMQConfig
	smtp        smtpConfig
}

type mongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type rabbitMQConfig struct {
	URL           string
	MaxRetries    int
	RetryDelay    time.Duration
	PrefetchCount int
}

type smtpConfig struct {
	Host          string
	Port          int
	Username      string
	Password      string
	From          string
	OperatorEmail string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(app.rateLimiterMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", app.listProductsHandler)
			r.Post("/", app.createProductHandler)
			r.Get("/combo-offers", app.listComboOffersHandler)

			r.Route("/{product_id}", func(r chi.Router) {
				r.Get("/", app.getProductHandler)
				r.Put("/", app.updateProductHandler)
				r.Delete("/", app.deleteProductHandler)
				r.Post("/resolve", app.resolveSelectionHandler)
				r.Patch("/details", app.updateDetailsHandler)

				r.Route("/attributes", func(r chi.Router) {
					r.Post("/", app.addAttributeGroupHandler)
					r.Route("/{group_name}", func(r chi.Router) {
						r.Delete("/", app.removeAttributeGroupHandler)
						r.Post("/options", app.addAttributeOptionHandler)
						r.Delete("/options/{option_name}", app.removeAttributeOptionHandler)
					})
				})
			})
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(app.requireUserID)

			r.Get("/", app.listCartHandler)
			r.Post("/", app.addCartLineHandler)
			r.Patch("/{line_id}", app.updateCartLineHandler)
			r.Delete("/{line_id}", app.removeCartLineHandler)
			r.Post("/{line_id}/increment", app.incrementCartLineHandler)
			r.Post("/{line_id}/decrement", app.decrementCartLineHandler)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/all", app.listAllOrdersHandler)
			r.Get("/stats", app.orderStatsHandler)
			r.Put("/{order_id}/tracking", app.updateTrackingHandler)
			r.Delete("/{order_id}", app.deleteOrderHandler)

			r.Group(func(r chi.Router) {
				r.Use(app.requireUserID)

				r.Get("/", app.listOrdersHandler)
				r.Post("/", app.placeOrderHandler)
				r.Post("/{order_id}/cancel", app.cancelOrderHandler)
			})
		})

		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	// docs
	docs.SwaggerInfo.Title = "Anbu Nature Products"
	docs.SwaggerInfo.Description = "Attribute-priced storefront API"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/api/v1"

	// workers
	if app.stockWorker != nil {
		if err := app.stockWorker.Start(); err != nil {
			return fmt.Errorf("failed to start stock adjustment worker: %w", err)
		}
	}
	if app.notificationWorker != nil {
		if err := app.notificationWorker.Start(); err != nil {
			return fmt.Errorf("failed to start notification worker: %w", err)
		}
	}

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		if app.stockWorker != nil {
			app.stockWorker.Stop()
		}
		if app.notificationWorker != nil {
			app.notificationWorker.Stop()
		}

		if app.storage != nil {
			if err := app.storage.Close(ctx); err != nil {
				app.logger.Errorw("error closing MongoDB", "error", err)
			} else {
				app.logger.Info("MongoDB connection closed gracefully")
			}
		}

		if app.broker != nil {
			if err := app.broker.Close(); err != nil {
				app.logger.Errorw("error closing RabbitMQ", "error", err)
			} else {
				app.logger.Info("RabbitMQ connection closed gracefully")
			}
		}

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server have started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
