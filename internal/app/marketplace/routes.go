// Package marketplace предоставляет маршруты для основного приложения.
package marketplace

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/magabrotheeeer/business-marketplace/internal/config"
	"github.com/magabrotheeeer/business-marketplace/internal/http/handlers/auth/confirm"
	"github.com/magabrotheeeer/business-marketplace/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/business-marketplace/internal/http/handlers/auth/profile"
	"github.com/magabrotheeeer/business-marketplace/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/business-marketplace/internal/http/handlers/auth/resend"
	docremove "github.com/magabrotheeeer/business-marketplace/internal/http/handlers/document/remove"
	"github.com/magabrotheeeer/business-marketplace/internal/http/handlers/document/download"
	"github.com/magabrotheeeer/business-marketplace/internal/http/handlers/document/upload"
	"github.com/magabrotheeeer/business-marketplace/internal/http/handlers/health"
	"github.com/magabrotheeeer/business-marketplace/internal/http/handlers/listing/create"
	"github.com/magabrotheeeer/business-marketplace/internal/http/handlers/listing/inquire"
	"github.com/magabrotheeeer/business-marketplace/internal/http/handlers/listing/list"
	"github.com/magabrotheeeer/business-marketplace/internal/http/handlers/listing/read"
	"github.com/magabrotheeeer/business-marketplace/internal/http/handlers/listing/sellerlist"
	"github.com/magabrotheeeer/business-marketplace/internal/http/handlers/listing/update"
	"github.com/magabrotheeeer/business-marketplace/internal/http/handlers/listing/verify"
	"github.com/magabrotheeeer/business-marketplace/internal/http/handlers/meta/options"
	"github.com/magabrotheeeer/business-marketplace/internal/http/handlers/payment/listingfee"
	"github.com/magabrotheeeer/business-marketplace/internal/http/handlers/payment/subscriptionfee"
	"github.com/magabrotheeeer/business-marketplace/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/business-marketplace/internal/services/auth"
	documentservice "github.com/magabrotheeeer/business-marketplace/internal/services/document"
	listingservice "github.com/magabrotheeeer/business-marketplace/internal/services/listing"
	metaservice "github.com/magabrotheeeer/business-marketplace/internal/services/meta"
	paymentservice "github.com/magabrotheeeer/business-marketplace/internal/services/payment"
)

// Предел памяти разбора multipart-формы при загрузке документа.
const maxUploadFormSize = 12 << 20

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config,
	authService *authservice.Service,
	listingService *listingservice.Service,
	paymentService *paymentservice.Service,
	documentService *documentservice.Service,
	metaService *metaservice.Service,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	metaHandler := options.New(logger, metaService)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Post("/verify-email", confirm.New(logger, authService).ServeHTTP)

		r.Get("/industries", metaHandler.Industries)
		r.Get("/regions", metaHandler.Regions)
		r.Get("/risk-grades", metaHandler.RiskGrades)

		// Публичные маршруты листингов: токен необязателен, но если он
		// передан, проекция строится для аутентифицированного вызывающего.
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.IdentityMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/businesses", list.New(logger, listingService).ServeHTTP)
			r.Get("/businesses/{id}", read.New(logger, listingService).ServeHTTP)
			r.Post("/businesses", create.New(logger, listingService).ServeHTTP)
			r.Post("/businesses/{id}/verify", verify.New(logger, listingService).ServeHTTP)
			r.Post("/businesses/{id}/inquiry", inquire.New(logger, listingService).ServeHTTP)
			r.Post("/businesses/{id}/payment", listingfee.New(logger, paymentService, cfg.Payments.ListingFee).ServeHTTP)
			r.Get("/businesses/{id}/documents/{documentID}", download.New(logger, documentService).ServeHTTP)
		})

		// Группа с обязательной JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/profile", profile.New(logger, authService).ServeHTTP)
			r.Post("/verify-email/resend", resend.New(logger, authService).ServeHTTP)
			r.Get("/businesses/seller", sellerlist.New(logger, listingService).ServeHTTP)
			r.Put("/businesses/{id}", update.New(logger, listingService).ServeHTTP)
			r.Post("/businesses/{id}/documents", upload.New(logger, documentService, maxUploadFormSize).ServeHTTP)
			r.Delete("/businesses/{id}/documents/{documentID}", docremove.New(logger, documentService).ServeHTTP)
			r.Post("/subscription/payment", subscriptionfee.New(logger, paymentService, cfg.Payments.SubscriptionFee).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", health.New().ServeHTTP)
}
