package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/openvol/missionhub/internal/database"
	"github.com/openvol/missionhub/internal/missions"
	"github.com/openvol/missionhub/internal/repository"
)

var (
	gitRevision = "unknown"
	gitBranch   = "unknown"
)

type AppConfig struct {
	userAddr  string
	adminAddr string

	db          string
	refdataFile string
	tokenKey    string

	debug bool
}

type App struct {
	logger *slog.Logger
	config *AppConfig
	uid    string

	dbm      *database.DatabaseManager
	catalog  *missions.Catalog
	workflow *missions.Workflow
	refdata  repository.RefDataRepository

	userAPI  *UserAPI
	adminAPI *AdminAPI
}

func NewApp(config *AppConfig) *App {
	app := &App{
		logger: slog.Default(),
		config: config,
		uid:    uuid.NewString(),
	}

	return app
}

func (app *App) Run() {
	db, err := getDatabase(app.config.db)

	if err != nil {
		app.logger.Error("db open error", slog.Any("error", err))
		os.Exit(1)
	}

	app.dbm = database.New(db)

	if err := app.dbm.Migrate(); err != nil {
		app.logger.Error("migrate error", slog.Any("error", err))
		os.Exit(1)
	}

	app.refdata = repository.NewRefDataFileRepo(db, app.config.refdataFile)

	if err := app.refdata.Start(); err != nil {
		app.logger.Error("refdata load error", slog.Any("error", err))
		os.Exit(1)
	}

	app.catalog = missions.NewCatalog(app.dbm)
	app.workflow = missions.NewWorkflow(app.dbm, app.catalog)

	app.userAPI = NewUserAPI(app, app.config.userAddr)
	app.adminAPI = NewAdminAPI(app, app.config.adminAddr)

	go func() {
		if err := app.userAPI.Listen(); err != nil {
			panic(err)
		}
	}()

	go func() {
		if err := app.adminAPI.Listen(); err != nil {
			panic(err)
		}
	}()

	app.logger.Info("server started",
		slog.String("uid", app.uid),
		slog.String("user_api", app.config.userAddr),
		slog.String("admin_api", app.config.adminAddr))

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	<-c

	app.logger.Info("exiting...")
	app.refdata.Stop()
	_ = app.userAPI.Shutdown()
	_ = app.adminAPI.Shutdown()
}

func getDatabase(name string) (*gorm.DB, error) {
	if name == "" {
		name = ":memory:"
	}

	return gorm.Open(sqlite.Open(name), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
}

func main() {
	fmt.Printf("version %s %s\n", gitRevision, gitBranch)

	var debug = flag.Bool("debug", false, "debug mode")
	var conf = flag.String("config", "missionhub.yml", "name of config file")
	flag.Parse()

	viper.SetConfigFile(*conf)

	viper.SetDefault("user_addr", ":8081")
	viper.SetDefault("admin_addr", ":8080")
	viper.SetDefault("db", "missionhub.sqlite")
	viper.SetDefault("refdata_file", "refdata.yml")
	viper.SetDefault("token_key", "")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Printf("config: %v, using defaults\n", err)
	}

	config := &AppConfig{
		userAddr:    viper.GetString("user_addr"),
		adminAddr:   viper.GetString("admin_addr"),
		db:          viper.GetString("db"),
		refdataFile: viper.GetString("refdata_file"),
		tokenKey:    viper.GetString("token_key"),
		debug:       *debug,
	}

	var h slog.Handler
	if config.debug {
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		h = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}

	slog.SetDefault(slog.New(h))

	if config.tokenKey == "" {
		slog.Default().Warn("token_key is empty, all requests will be rejected")
	}

	NewApp(config).Run()
}
