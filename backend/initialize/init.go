package initialize

import (
	"fmt"
	"net/http"
	"postboard/backend/app/controllers"
	"postboard/backend/app/db"
	jwtutil "postboard/backend/app/jwt"
	"postboard/backend/app/middleware"
	"postboard/backend/app/password"
	"postboard/backend/app/repo"
	"postboard/backend/app/services"
	"postboard/backend/config"
	"postboard/backend/router"

	"gorm.io/gorm"
)

type App struct {
	Cfg    *config.Config
	DB     *gorm.DB
	Router http.Handler
	Auth   *services.AuthService
	Users  *services.UserService
	Posts  *services.PostService
	Likes  *services.LikeService
}

func Build(configPath string) (*App, error) {
	// Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	InitLogger(cfg.Log)
	return BuildWithConfig(cfg)
}

func BuildWithConfig(cfg *config.Config) (*App, error) {
	// Connect DB
	gdb, err := db.Connect(db.Config{Driver: cfg.DB.Driver, DSN: cfg.DB.ResolveDSN(), LogLevel: gormLogLevel(cfg.Log.Level)})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	// Migrate
	if err := db.Migrate(gdb); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	// Services
	signer, err := jwtutil.NewSigner(cfg.JWT.Secret, cfg.JWT.Algorithm, cfg.JWT.ExpMin)
	if err != nil {
		return nil, err
	}
	hasher := password.NewHasher(cfg.Auth.Pepper, cfg.Auth.BcryptCost)
	store := repo.NewStore(gdb)
	authSvc := services.NewAuthService(store, hasher, signer)
	userSvc := services.NewUserService(store, hasher)
	postSvc := services.NewPostService(store)
	likeSvc := services.NewLikeService(store)

	// Controllers
	ctrls := router.Controllers{
		HTTP:  controllers.NewHTTPController(),
		Auth:  controllers.NewAuthController(authSvc),
		Users: controllers.NewUserController(userSvc),
		Posts: controllers.NewPostController(postSvc),
		Likes: controllers.NewLikeController(likeSvc),
	}
	mw := &middleware.Auth{Identity: authSvc}

	// Router
	h := router.NewRouter(ctrls, mw)
	// Wrap with logging middleware
	h = middleware.Logging(h)

	return &App{Cfg: cfg, DB: gdb, Router: h, Auth: authSvc, Users: userSvc, Posts: postSvc, Likes: likeSvc}, nil
}

// Close releases the database pool.
func (a *App) Close() error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
