package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/quickserve-app/quickserve-api/internal/audit"
	"github.com/quickserve-app/quickserve-api/internal/cache"
	"github.com/quickserve-app/quickserve-api/internal/config"
	"github.com/quickserve-app/quickserve-api/internal/handlers"
	infraRepo "github.com/quickserve-app/quickserve-api/internal/infra/repository"
	"github.com/quickserve-app/quickserve-api/internal/middleware"
	"github.com/quickserve-app/quickserve-api/internal/storage"
	ucBooking "github.com/quickserve-app/quickserve-api/internal/usecase/booking"
	ucChat "github.com/quickserve-app/quickserve-api/internal/usecase/chat"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	logger *zap.Logger,
	presence *cache.Presence,
	store *storage.LocalStore,
) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	chatRepo := infraRepo.NewChatGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		auditDispatcher,
	)

	updateBookingStatusUC := ucBooking.NewUpdateStatus(
		bookingRepo,
		auditDispatcher,
	)

	// ======================================================
	// USE CASES — CHAT
	// ======================================================
	getOrCreateConversationUC := ucChat.NewGetOrCreateConversation(chatRepo)
	listConversationsUC := ucChat.NewListConversations(chatRepo, presence)
	sendMessageUC := ucChat.NewSendMessage(chatRepo)
	fetchMessagesUC := ucChat.NewFetchMessages(chatRepo)
	editMessageUC := ucChat.NewEditMessage(chatRepo)
	deleteMessageUC := ucChat.NewDeleteMessage(chatRepo)
	deleteConversationUC := ucChat.NewDeleteConversation(chatRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db, presence)
	serviceHandler := handlers.NewServiceHandler(db, auditDispatcher)

	bookingHandler := handlers.NewBookingHandler(
		db,
		createBookingUC,
		updateBookingStatusUC,
		logger,
	)

	chatHandler := handlers.NewChatHandler(
		getOrCreateConversationUC,
		listConversationsUC,
		sendMessageUC,
		fetchMessagesUC,
		editMessageUC,
		deleteMessageUC,
		deleteConversationUC,
		logger,
	)

	uploadHandler := handlers.NewUploadHandler(store, logger)
	adminHandler := handlers.NewAdminHandler(db, auditDispatcher)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// STATIC UPLOADS
	// ======================================================
	r.Static("/uploads", cfg.UploadDir)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/services", serviceHandler.Browse)
		api.GET("/services/:id", serviceHandler.Get)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdateMe)
			secured.POST("/me/ping", meHandler.Ping)

			// ------------------------------
			// PROVIDER SERVICES
			// ------------------------------
			provider := secured.Group("/me/services")
			provider.Use(middleware.RequireRole(middleware.RoleProvider))
			{
				provider.GET("", serviceHandler.ListMine)
				provider.POST("", serviceHandler.Create)
				provider.PATCH("/:id", serviceHandler.Update)
				provider.DELETE("/:id", serviceHandler.Delete)
			}

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.POST("/bookings",
				middleware.RequireRole(middleware.RoleCustomer),
				bookingHandler.Create,
			)
			secured.GET("/bookings", bookingHandler.ListMine)
			secured.PATCH("/bookings/:id/status",
				middleware.RequireRole(middleware.RoleProvider, middleware.RoleAdmin),
				bookingHandler.UpdateStatus,
			)

			// ------------------------------
			// CHAT
			// ------------------------------
			chat := secured.Group("/chat")
			{
				chat.POST("/conversations", chatHandler.CreateConversation)
				chat.GET("/conversations", chatHandler.ListConversations)
				chat.DELETE("/conversations/:id", chatHandler.DeleteConversation)

				chat.GET("/messages", chatHandler.GetMessages)
				chat.POST("/messages", chatHandler.SendMessage)
				chat.PATCH("/messages/:id", chatHandler.EditMessage)
				chat.DELETE("/messages/:id", chatHandler.DeleteMessage)

				chat.POST("/audio", uploadHandler.UploadAudio)
			}

			// ------------------------------
			// UPLOADS
			// ------------------------------
			secured.POST("/uploads", uploadHandler.Upload)

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(middleware.RoleAdmin))
			{
				admin.GET("/users", adminHandler.ListUsers)
				admin.PATCH("/users/:id/active", adminHandler.SetUserActive)

				admin.GET("/bookings", adminHandler.ListBookings)

				admin.GET("/services", adminHandler.ListServices)
				admin.PATCH("/services/:id/deactivate", adminHandler.DeactivateService)

				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
