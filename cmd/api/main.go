package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/hrportal-api/internal/application/attendance"
	"github.com/jhoicas/hrportal-api/internal/application/auth"
	"github.com/jhoicas/hrportal-api/internal/application/leave"
	"github.com/jhoicas/hrportal-api/internal/application/notification"
	"github.com/jhoicas/hrportal-api/internal/application/report"
	"github.com/jhoicas/hrportal-api/internal/application/usecase"
	"github.com/jhoicas/hrportal-api/internal/domain/repository"
	"github.com/jhoicas/hrportal-api/internal/infrastructure/erpnext"
	"github.com/jhoicas/hrportal-api/internal/infrastructure/mail"
	"github.com/jhoicas/hrportal-api/internal/infrastructure/memory"
	"github.com/jhoicas/hrportal-api/internal/infrastructure/mongodb"
	infrapdf "github.com/jhoicas/hrportal-api/internal/infrastructure/pdf"
	"github.com/jhoicas/hrportal-api/internal/infrastructure/postgres"
	"github.com/jhoicas/hrportal-api/internal/infrastructure/spreadsheet"
	httpRouter "github.com/jhoicas/hrportal-api/internal/interfaces/http"
	"github.com/jhoicas/hrportal-api/pkg/config"
	"github.com/jhoicas/hrportal-api/pkg/jwt"
	"github.com/jhoicas/hrportal-api/pkg/logger"
)

// stores repositorios del almacén de usuarios según STORE_DRIVER.
type stores struct {
	users   repository.UserRepository
	reports repository.ReportRepository
	close   func(context.Context)
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.Store.Driver {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, postgres.NewTxRunner(pool)); err != nil {
			pool.Close()
			return nil, err
		}
		return &stores{
			users:   postgres.NewUserRepository(pool),
			reports: postgres.NewReportRepository(pool),
			close:   func(context.Context) { pool.Close() },
		}, nil
	default:
		client, db, err := mongodb.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		users := mongodb.NewUserRepository(db)
		if err := users.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &stores{
			users:   users,
			reports: mongodb.NewReportRepository(db),
			close:   func(ctx context.Context) { _ = client.Disconnect(ctx) },
		}, nil
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")
	if len(cfg.GeneratedSecrets) > 0 {
		log.Warn().Strs("keys", cfg.GeneratedSecrets).Msg("secretos ausentes reemplazados por valores aleatorios de este proceso")
	}

	ctx, cancelStart := context.WithTimeout(context.Background(), 20*time.Second)
	st, err := openStores(ctx, cfg)
	cancelStart()
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("conexión al almacén de usuarios")
	}

	codec, err := jwt.NewCodec(cfg.Token.Secret, cfg.Token.Issuer, cfg.Token.Expiration)
	if err != nil {
		log.Fatal().Err(err).Msg("códec de tokens")
	}

	erp := erpnext.NewClient(erpnext.Config{
		BaseURL:   cfg.ERPNext.BaseURL,
		APIKey:    cfg.ERPNext.APIKey,
		APISecret: cfg.ERPNext.APISecret,
		Timeout:   time.Duration(cfg.ERPNext.TimeoutSeconds) * time.Second,
		PageSize:  cfg.ERPNext.PageSize,
	})
	reader := spreadsheet.NewReader()
	writer := spreadsheet.NewWriter()
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	mailer := mail.NewSMTPMailer(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		User:     cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})

	authUC := auth.NewAuthUseCase(st.users, codec, auth.APICredentials{
		User: cfg.APIAuth.User,
		Pass: cfg.APIAuth.Pass,
		Key:  cfg.APIAuth.Key,
	})
	reportUC := report.NewReportUseCase(st.reports, cfg.Reports.EmptyAsNotFound)
	attendanceSvc, err := attendance.NewService(erp, cfg.Reports.HeadcountCutoff)
	if err != nil {
		log.Fatal().Err(err).Msg("servicio de asistencia")
	}
	notificationSvc, err := notification.NewService(mailer, memory.NewOTPStore(), notification.Config{
		Issuer:        cfg.OTP.Issuer,
		PeriodSeconds: cfg.OTP.PeriodSeconds,
		Digits:        cfg.OTP.Digits,
		MaxAttempts:   cfg.OTP.MaxAttempts,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("servicio de notificaciones")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    12 * 1024 * 1024,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.App.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${ip} ${status} - ${method} ${path} (${latency})\n",
		TimeFormat: "2006/01/02 15:04:05",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "HR Portal API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ReportUC:     reportUC,
		Attendance:   attendanceSvc,
		LeaveUC:      leave.NewUseCase(erp, reader, writer),
		ResourceUC:   usecase.NewResourceUseCase(erp),
		EmployeeUC:   usecase.NewEmployeeUseCase(erp, writer),
		Notification: notificationSvc,
		Exporters:    httpRouter.Exporters{PDF: pdfGenerator, XLSX: writer},
		Codec:        codec,
		Metrics:      httpRouter.NewMetrics(),
		ServiceName:  cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	st.close(shutdownCtx)

	log.Info().Msg("aplicación detenida")
}
