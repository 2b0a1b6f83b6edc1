package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/xxxsen/bizdir/internal/config"
	"github.com/xxxsen/bizdir/internal/db"
	"github.com/xxxsen/bizdir/internal/filestore"
	"github.com/xxxsen/bizdir/internal/handler"
	"github.com/xxxsen/bizdir/internal/job"
	"github.com/xxxsen/bizdir/internal/middleware"
	"github.com/xxxsen/bizdir/internal/model"
	"github.com/xxxsen/bizdir/internal/pkg/jwt"
	"github.com/xxxsen/bizdir/internal/repo"
	"github.com/xxxsen/bizdir/internal/schedule"
	"github.com/xxxsen/bizdir/internal/search"
	"github.com/xxxsen/bizdir/internal/searchcache"
	"github.com/xxxsen/bizdir/internal/service"
)

type app struct {
	cfg       *config.Config
	db        *sql.DB
	companies *service.CompanyService
	offices   *service.OfficeService
	blog      *service.BlogService
	events    *service.EventService
	auth      *service.AuthService
	search    *service.SearchService
	compare   *service.CompareService
	contact   *service.ContactService
	export    *service.ExportService
	signer    *jwt.Signer
}

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "bizdir",
		Short: "business directory backend",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.json")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run bizdir server",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(configPath)
			if err != nil {
				return err
			}
			defer a.db.Close()
			return runServer(a)
		},
	}

	var username, plainPassword string
	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "manage admin accounts",
	}
	adminCreateCmd := &cobra.Command{
		Use:   "create",
		Short: "create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(configPath)
			if err != nil {
				return err
			}
			defer a.db.Close()
			user, err := a.auth.CreateAdmin(cmd.Context(), username, plainPassword)
			if err != nil {
				return fmt.Errorf("create admin: %w", err)
			}
			logutil.GetLogger(cmd.Context()).Info("admin created", zap.String("id", user.ID), zap.String("username", user.Username))
			return nil
		},
	}
	adminCreateCmd.Flags().StringVar(&username, "username", "", "admin username")
	adminCreateCmd.Flags().StringVar(&plainPassword, "password", "", "admin password")
	_ = adminCreateCmd.MarkFlagRequired("username")
	_ = adminCreateCmd.MarkFlagRequired("password")
	adminCmd.AddCommand(adminCreateCmd)

	var importPath string
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "import companies from a json file",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(configPath)
			if err != nil {
				return err
			}
			defer a.db.Close()
			return importCompanies(cmd.Context(), a, importPath)
		},
	}
	importCmd.Flags().StringVar(&importPath, "file", "", "json array of companies")
	_ = importCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(runCmd, adminCmd, importCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func bootstrap(configPath string) (*app, error) {
	if configPath == "" {
		return nil, fmt.Errorf("--config is required")
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger.Init(
		cfg.LogConfig.File,
		cfg.LogConfig.Level,
		int(cfg.LogConfig.FileCount),
		int(cfg.LogConfig.FileSize),
		int(cfg.LogConfig.KeepDays),
		cfg.LogConfig.Console,
	)
	logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

	conn, err := db.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.ApplyMigrations(conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return newApp(cfg, conn), nil
}

func newApp(cfg *config.Config, conn *sql.DB) *app {
	companyRepo := repo.NewCompanyRepo(conn)
	officeRepo := repo.NewOfficeRepo(conn)
	reviewRepo := repo.NewReviewRepo(conn)
	blogRepo := repo.NewBlogRepo(conn)
	eventRepo := repo.NewEventRepo(conn)
	adminRepo := repo.NewAdminUserRepo(conn)

	cache := searchcache.New[model.Company](
		searchcache.WithTTL(time.Duration(cfg.Search.CacheTTLSecond)*time.Second),
		searchcache.WithCapacity(cfg.Search.CacheSize),
	)
	history := search.NewHistory(
		cfg.Search.HistorySize,
		cfg.Search.HistoryClients,
		time.Duration(cfg.Search.HistoryTTLHours)*time.Hour,
	)
	catalog := service.NewCatalog(companyRepo, officeRepo, reviewRepo)
	searchService := service.NewSearchService(search.NewEngine(cache, history), catalog)
	companyService := service.NewCompanyService(companyRepo, officeRepo, reviewRepo, catalog, searchService)
	signer := jwt.NewSigner([]byte(cfg.JWTSecret), time.Hour*time.Duration(cfg.JWTTTLHours))

	return &app{
		cfg:       cfg,
		db:        conn,
		companies: companyService,
		offices:   service.NewOfficeService(companyRepo, officeRepo, searchService),
		blog:      service.NewBlogService(blogRepo),
		events:    service.NewEventService(eventRepo),
		auth:      service.NewAuthService(adminRepo, signer),
		search:    searchService,
		compare:   service.NewCompareService(companyService),
		contact:   service.NewContactService(service.NewEmailSender(cfg.Mail), cfg.Mail.Inbox, companyService),
		export:    service.NewExportService(catalog),
		signer:    signer,
	}
}

func importCompanies(ctx context.Context, a *app, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read import file: %w", err)
	}
	inputs, err := service.DecodeCompanies(raw)
	if err != nil {
		return fmt.Errorf("decode import file: %w", err)
	}
	created, err := a.companies.Import(ctx, inputs)
	logutil.GetLogger(ctx).Info("import finished", zap.Int("created", created), zap.Int("total", len(inputs)))
	return err
}

func runServer(a *app) error {
	cfg := a.cfg
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("file_store", cfg.FileStore.Type),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.search.Refresh(ctx); err != nil {
		return fmt.Errorf("load search index: %w", err)
	}
	scheduler := schedule.NewCronScheduler()
	if err := scheduler.AddJob(job.NewSearchRefreshJob(a.search), cfg.Search.RefreshCron); err != nil {
		return fmt.Errorf("schedule search refresh: %w", err)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	store, err := filestore.New(cfg.FileStore)
	if err != nil {
		return fmt.Errorf("init file store: %w", err)
	}

	deps := handler.RouterDeps{
		Auth:             handler.NewAuthHandler(a.auth),
		Companies:        handler.NewCompanyHandler(a.companies),
		Offices:          handler.NewOfficeHandler(a.offices),
		Search:           handler.NewSearchHandler(a.search),
		Compare:          handler.NewCompareHandler(a.compare),
		Blog:             handler.NewBlogHandler(a.blog),
		Events:           handler.NewEventHandler(a.events),
		Contact:          handler.NewContactHandler(a.contact),
		Files:            handler.NewFileHandler(store, cfg.UploadMaxBytes),
		Properties:       handler.NewPropertiesHandler(cfg.Properties, cfg.UploadMaxBytes),
		Export:           handler.NewExportHandler(a.export),
		Import:           handler.NewImportHandler(a.companies, cfg.UploadMaxBytes),
		Signer:           a.signer,
		ContactRateLimit: time.Duration(cfg.ContactRateLimitSecond) * time.Second,
	}

	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	engine, err := webapi.NewEngine(
		"/api/v1",
		addr,
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.CORSAllowlist),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}
	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", addr))

	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
