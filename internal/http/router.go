package api

import (
	"database/sql"
	"log"
	stdhttp "net/http"

	intconfig "abarto-backend/internal/config"
	h "abarto-backend/internal/http/handlers"
	"abarto-backend/internal/http/middleware"
	"abarto-backend/internal/registry"
	"abarto-backend/internal/repositories"
	"abarto-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// NewRouter wires the full API from the resource registry: every descriptor
// gets the same route shape, service and handler, parameterized not copied.
func NewRouter(env intconfig.Env, db *sql.DB) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"success": false,
			"error":   "route not found",
		})
	})

	adminsRepo := repositories.NewResourceRepository(db, registry.Admins)
	authSvc := services.NewAuthService(adminsRepo, env.JWTSecret, env.JWTTTL)

	repos := make([]repositories.ResourceRepository, 0, len(registry.All))
	for _, res := range registry.All {
		repos = append(repos, repositories.NewResourceRepository(db, res))
	}

	api := r.Group("/api")
	{
		sys := h.SystemHandler{DB: db}
		api.GET("/health", sys.Health)
		api.GET("/db-check", sys.DBCheck)

		authH := h.NewAuthHandler(authSvc, services.NewResourceService(adminsRepo))
		auth := api.Group("/auth")
		auth.POST("/login", authH.Login)
		auth.POST("/register", authH.Register)

		protected := api.Group("")
		protected.Use(middleware.Protect(authSvc))

		searchH := h.NewSearchHandler(services.NewSearchService(repos))
		protected.GET("/search", searchH.Global)

		for _, repo := range repos {
			mountResource(protected, repo)
		}
	}

	return r
}

func mountResource(parent *gin.RouterGroup, repo repositories.ResourceRepository) {
	res := repo.Res
	svc := services.NewResourceService(repo)
	rh := h.NewResourceHandler(svc)

	g := parent.Group("/" + res.Name)
	if res.Name == registry.Admins.Name {
		g.Use(middleware.RequireRoles("admin"))
	}

	g.GET("", rh.List)
	g.POST("", rh.Create)
	g.HEAD("", rh.HeadCollection)
	g.OPTIONS("", rh.OptionsCollection)

	// static route first so "search" never resolves as an :id
	g.GET("/search", rh.Search)

	g.GET("/:id", rh.Get)
	g.HEAD("/:id", rh.HeadItem)
	g.OPTIONS("/:id", rh.OptionsItem)

	// append-only resources (security logs) expose no mutating verbs
	if !res.AppendOnly {
		g.PUT("/:id", rh.Replace)
		g.PATCH("/:id", rh.Patch)
		g.DELETE("/:id", rh.Delete)
	}

	if res.Name == registry.Reports.Name {
		docs := h.NewReportDocsHandler(services.NewReportDocsService(repo))
		g.GET("/:id/pdf", docs.GetPDF)
	}
}
