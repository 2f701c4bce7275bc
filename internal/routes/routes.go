package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/payment"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/storage"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/realtime"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
	ucCampaign "github.com/BruksfildServices01/salon-scheduler/internal/usecase/campaign"
	ucFinance "github.com/BruksfildServices01/salon-scheduler/internal/usecase/finance"
	ucWaitlist "github.com/BruksfildServices01/salon-scheduler/internal/usecase/waitlist"
)

// Dependencies são os singletons montados no main. Payments e Images
// ficam nil quando a integração não está configurada.
type Dependencies struct {
	DB      *gorm.DB
	Config  *config.Config
	Log     *zap.Logger
	Audit   *audit.Dispatcher
	Hub     *realtime.Hub
	Metrics *metrics.Metrics
	Locker  ucAppointment.SlotLocker

	Payments *payment.MercadoPago
	Images   *storage.S3
}

func RegisterRoutes(r *gin.Engine, d Dependencies) {
	cfg := d.Config
	clock := timezone.Clock(time.Now)

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	r.Use(d.Metrics.Middleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	waitlistRepo := infraRepo.NewWaitlistGormRepository(d.DB)
	financeRepo := infraRepo.NewFinanceGormRepository(d.DB)
	campaignRepo := infraRepo.NewCampaignGormRepository(d.DB)

	// interfaces só recebem o cliente quando ele existe; um ponteiro nil
	// dentro da interface não seria detectado pelos casos de uso
	var (
		gateway ucAppointment.DepositGateway
		lookup  ucAppointment.PaymentLookup
		images  ucCampaign.ImageStore
	)
	if d.Payments != nil {
		gateway = d.Payments
		lookup = d.Payments
	}
	if d.Images != nil {
		images = d.Images
	}

	var events realtime.Publisher
	if d.Hub != nil {
		events = d.Hub
	}

	deps := ucAppointment.Deps{
		Repo:    appointmentRepo,
		Audit:   d.Audit,
		Events:  events,
		Metrics: d.Metrics,
		Log:     d.Log,
		Clock:   clock,
	}

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	holdTTL := time.Duration(cfg.SlotHoldSeconds) * time.Second

	requestBookingUC := ucAppointment.NewRequestBooking(deps, d.Locker, gateway, holdTTL)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(deps)
	historyUC := ucAppointment.NewGetClientHistory(deps, financeRepo)

	waitlistSvc := ucWaitlist.NewService(waitlistRepo, appointmentRepo, d.Audit, events, d.Metrics, clock)
	financeSvc := ucFinance.NewService(financeRepo, d.Audit, clock)
	campaignSvc := ucCampaign.NewService(campaignRepo, images, d.Audit, clock)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, cfg)
	meHandler := handlers.NewMeHandler(d.DB)
	salonHandler := handlers.NewSalonHandler(d.DB)
	serviceHandler := handlers.NewServiceHandler(d.DB)
	clientHandler := handlers.NewClientHandler(d.DB, historyUC)
	workingHoursHandler := handlers.NewWorkingHoursHandler(d.DB)

	appointmentHandler := handlers.NewAppointmentHandler(handlers.AppointmentUseCases{
		Create:   ucAppointment.NewCreatePrivateAppointment(deps),
		ByDate:   ucAppointment.NewListAppointmentsByDate(appointmentRepo),
		ByMonth:  ucAppointment.NewListAppointmentsByMonth(appointmentRepo),
		Board:    ucAppointment.NewGetDayBoard(deps),
		Confirm:  ucAppointment.NewConfirmAppointment(deps),
		Cancel:   cancelAppointmentUC,
		Complete: ucAppointment.NewCompleteAppointment(deps),
		Deposit:  ucAppointment.NewMarkDepositPaid(deps),
	})

	slotHandler := handlers.NewSlotHandler(
		ucAppointment.NewLiberateSlot(deps, waitlistRepo),
		ucAppointment.NewBlockSlot(deps),
		ucAppointment.NewWithdrawSlot(deps),
	)

	waitlistHandler := handlers.NewWaitlistHandler(waitlistSvc)
	financeHandler := handlers.NewFinanceHandler(financeSvc, appointmentRepo)
	campaignHandler := handlers.NewCampaignHandler(campaignSvc, appointmentRepo)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, appointmentRepo)
	liveHandler := handlers.NewLiveHandler(d.Hub)

	publicHandler := handlers.NewPublicHandler(
		d.DB,
		appointmentRepo,
		ucAppointment.NewListOpenSlots(deps),
		ucAppointment.NewGetAvailability(appointmentRepo),
	)

	customerHandler := handlers.NewCustomerHandler(handlers.CustomerDeps{
		DB:       d.DB,
		Config:   cfg,
		Repo:     appointmentRepo,
		Book:     requestBookingUC,
		Cancel:   cancelAppointmentUC,
		History:  historyUC,
		Waitlist: waitlistSvc,
	})

	paymentHandler := handlers.NewPaymentHandler(
		ucAppointment.NewHandlePaymentNotification(deps, lookup),
		d.Log,
	)

	publicLimit := middleware.NewRateLimiter(cfg.PublicRateLimit, cfg.PublicRateBurst)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		publicAPI.Use(publicLimit.Middleware())
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/open-slots", publicHandler.OpenSlots)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)

			publicAPI.POST("/:slug/customers/register", customerHandler.Register)
			publicAPI.POST("/:slug/customers/login", customerHandler.Login)
		}

		api.POST("/payments/mercadopago/webhook", paymentHandler.Webhook)

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", publicLimit.Middleware(), authHandler.Register)
		api.POST("/auth/login", publicLimit.Middleware(), authHandler.Login)

		// ------------------------------
		// 👤 CLIENTE FINAL
		// ------------------------------
		customer := api.Group("/customer")
		customer.Use(middleware.AuthMiddleware(cfg), middleware.RequireCustomer())
		{
			customer.POST("/bookings", customerHandler.Book)
			customer.PATCH("/bookings/:id/cancel", customerHandler.Cancel)
			customer.GET("/history", customerHandler.History)
			customer.POST("/waitlist", customerHandler.JoinWaitlist)
		}

		// ------------------------------
		// 🔐 API PRIVADA (EQUIPE)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg), middleware.RequireStaff())
		{
			secured.GET("/me", meHandler.GetMe)
			secured.GET("/me/live", liveHandler.Stream)

			secured.GET("/me/salon", salonHandler.Get)
			secured.PATCH("/me/salon", middleware.RequireOwner(), salonHandler.Update)

			secured.GET("/me/team", authHandler.ListStaff)
			secured.POST("/me/team", middleware.RequireOwner(), authHandler.CreateStaff)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/working-hours", workingHoursHandler.Get)
			secured.PUT("/me/working-hours", workingHoursHandler.Update)

			secured.GET("/me/clients", clientHandler.List)
			secured.POST("/me/clients", clientHandler.Create)
			secured.PATCH("/me/clients/:id", clientHandler.Update)
			secured.GET("/me/clients/:id/history", clientHandler.History)

			// ------------------------------
			// SLOTS
			// ------------------------------
			secured.POST("/me/slots/liberate", slotHandler.Liberate)
			secured.POST("/me/slots/block", slotHandler.Block)
			secured.DELETE("/me/slots/:id", slotHandler.Withdraw)
			secured.GET("/me/board", appointmentHandler.Board)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/me/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/me/appointments/:id/deposit", appointmentHandler.DepositPaid)

			// ------------------------------
			// WAITLIST
			// ------------------------------
			secured.GET("/me/waitlist", waitlistHandler.List)
			secured.PATCH("/me/waitlist/:id", waitlistHandler.UpdateStatus)

			// ------------------------------
			// FINANCE
			// ------------------------------
			secured.GET("/me/finance/entries", financeHandler.List)
			secured.POST("/me/finance/entries", financeHandler.Create)
			secured.PATCH("/me/finance/entries/:id/pay", financeHandler.MarkPaid)
			secured.GET("/me/finance/summary", financeHandler.Summary)
			secured.GET("/me/finance/export", financeHandler.Export)

			// ------------------------------
			// CAMPAIGNS
			// ------------------------------
			secured.GET("/me/campaigns", campaignHandler.List)
			secured.POST("/me/campaigns", campaignHandler.Create)
			secured.GET("/me/campaigns/:id/recipients", campaignHandler.Recipients)
			secured.PATCH("/me/campaigns/:id/recipients/:recipientId/sent", campaignHandler.MarkSent)
			secured.POST("/me/campaigns/:id/image", campaignHandler.UploadImage)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
