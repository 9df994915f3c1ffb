package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/downdetect"
	projects_controllers "taskboard/internal/features/projects/controllers"
	projects_repositories "taskboard/internal/features/projects/repositories"
	projects_services "taskboard/internal/features/projects/services"
	system_healthcheck "taskboard/internal/features/system/healthcheck"
	tasks_controllers "taskboard/internal/features/tasks/controllers"
	tasks_repositories "taskboard/internal/features/tasks/repositories"
	tasks_services "taskboard/internal/features/tasks/services"
	users_controllers "taskboard/internal/features/users/controllers"
	users_middleware "taskboard/internal/features/users/middleware"
	users_repositories "taskboard/internal/features/users/repositories"
	users_services "taskboard/internal/features/users/services"
	"taskboard/internal/storage"
	cache_utils "taskboard/internal/util/cache"
	env_utils "taskboard/internal/util/env"
	_ "taskboard/swagger" // swagger docs

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/valkey-io/valkey-go"
	"gorm.io/gorm"
)

// App holds the object graph of the API. Nothing in it is process global,
// so tests can build as many instances as they need.
type App struct {
	env    *config.EnvVariables
	logger *slog.Logger
	router *gin.Engine
	server *http.Server

	UserService       *users_services.UserService
	ProjectService    *projects_services.ProjectService
	MembershipService *projects_services.MembershipService
	TaskService       *tasks_services.TaskService
}

func New(env *config.EnvVariables, db *gorm.DB, cacheClient valkey.Client, logger *slog.Logger) *App {
	userRepository := users_repositories.NewUserRepository(db)
	projectRepository := projects_repositories.NewProjectRepository(db)
	membershipRepository := projects_repositories.NewMembershipRepository(db)
	taskRepository := tasks_repositories.NewTaskRepository(db)

	userService := users_services.NewUserService(
		userRepository,
		users_services.JWTSettings{Secret: env.JwtSecret, Expiry: env.JwtExpire},
		logger,
	)
	projectService := projects_services.NewProjectService(
		projectRepository,
		membershipRepository,
		storage.NewTransactor(db),
		cacheClient,
		logger,
	)
	membershipService := projects_services.NewMembershipService(
		membershipRepository,
		projectService,
		userService,
		logger,
	)
	taskService := tasks_services.NewTaskService(
		taskRepository,
		projectService,
		userService,
		env.TasksOnProjectDelete,
		logger,
	)
	projectService.AddProjectDeletionListener(taskService)

	downdetectService := downdetect.NewDowndetectService(
		db,
		cache_utils.NewCacheUtil[string](cacheClient, "tb_health:"),
	)
	healthcheckService := system_healthcheck.NewHealthcheckService(
		downdetectService,
		env.BackendRootPath,
		logger,
	)

	a := &App{
		env:               env,
		logger:            logger,
		UserService:       userService,
		ProjectService:    projectService,
		MembershipService: membershipService,
		TaskService:       taskService,
	}

	a.router = a.setUpRouter(
		users_controllers.NewUserController(userService),
		projects_controllers.NewProjectController(projectService),
		projects_controllers.NewMembershipController(membershipService),
		tasks_controllers.NewTaskController(taskService),
		system_healthcheck.NewHealthcheckController(healthcheckService),
	)

	return a
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) setUpRouter(
	userController *users_controllers.UserController,
	projectController *projects_controllers.ProjectController,
	membershipController *projects_controllers.MembershipController,
	taskController *tasks_controllers.TaskController,
	healthcheckController *system_healthcheck.HealthcheckController,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	// Add GZIP compression middleware
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	if a.env.EnvMode == env_utils.EnvModeDevelopment {
		enableCors(router)
	}

	v1 := router.Group("/api/v1")

	// Mount Swagger UI
	v1.GET("/docs/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes
	userController.RegisterRoutes(v1)
	healthcheckController.RegisterRoutes(v1)

	// Protected routes
	protected := v1.Group("")
	protected.Use(users_middleware.AuthMiddleware(a.UserService))

	userController.RegisterProtectedRoutes(protected)
	projectController.RegisterRoutes(protected)
	membershipController.RegisterRoutes(protected)
	taskController.RegisterRoutes(protected)

	return router
}

func (a *App) Run() error {
	host := ""
	if a.env.EnvMode == env_utils.EnvModeDevelopment {
		// for dev we use localhost to avoid firewall
		// requests on each run for Windows
		host = "127.0.0.1"
	}

	a.server = &http.Server{
		Addr:              host + ":" + a.env.HttpPort,
		Handler:           a.router,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	a.logger.Info("Starting HTTP server", "addr", a.server.Addr)

	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

func enableCors(router *gin.Engine) {
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders: []string{
			"Origin",
			"Content-Length",
			"Content-Type",
			"Authorization",
			"Accept",
			"Accept-Language",
			"Accept-Encoding",
		},
	}))
}
