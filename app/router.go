// Package app wires the HTTP surface together
package app

import (
	"strings"
	"time"

	"paisa/expense-api/app/ai"
	"paisa/expense-api/app/expense"
	"paisa/expense-api/app/root"
	"paisa/expense-api/app/user"
	"paisa/expense-api/internal"
	"paisa/expense-api/internal/service"
	"paisa/expense-api/pkg/middleware"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var store = persist.NewMemoryStore(time.Minute)

// NewRouter builds the gin engine on top of an already constructed
// dependency set. Callers own the lifecycle of d.DB.
func NewRouter(d *internal.Deps) *gin.Engine {
	router := gin.New()

	origins := strings.Split(viper.GetString("host.cors"), ",")

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	rateLimit := viper.GetInt("security.rate_limit")

	jwt := middleware.NewJWTMiddleware(d.JWTSecret)
	rateLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: rateLimit,
		Burst:             rateLimit * 2,
		CleanupInterval:   time.Second,
	})

	m := router.Group("/api", rateLimiter)
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		m.HEAD("/heartbeat", root.Heartbeat)

		// GET /api/validate		-> Validates a session credential
		m.GET("/validate", jwt, root.Validate)
	}

	u := m.Group("/users", middleware.BodySizeLimiter(1<<20))
	{
		// GET /api/users		-> Returns the basic info of a user
		u.GET("", jwt, func(c *gin.Context) { user.UserFetch(c, d) })

		// POST /api/users 		-> Registers a new user
		u.POST("", func(c *gin.Context) { user.UserRegister(c, d) })

		// POST /api/users/login 	-> Logs in a user and returns a session credential
		u.POST("/login", func(c *gin.Context) { user.UserLogin(c, d) })

		// POST /api/users/logout	-> Clears the auth cookie
		u.POST("/logout", user.UserLogout)

		// POST /api/users/verify	-> Redeems a verification token or code
		u.POST("/verify", func(c *gin.Context) { user.UserVerify(c, d) })

		// POST /api/users/resend	-> Re-issues a verification token
		u.POST("/resend", func(c *gin.Context) { user.UserResendVerification(c, d) })

		// POST /api/users/forgot-password	-> Requests a password reset
		u.POST("/forgot-password", func(c *gin.Context) { user.UserForgotPassword(c, d) })

		// POST /api/users/reset-password	-> Redeems a reset token
		u.POST("/reset-password", func(c *gin.Context) { user.UserResetPassword(c, d) })
	}

	e := m.Group("/expenses", middleware.BodySizeLimiter(1<<20))
	{
		// GET /api/expenses/categories	-> Returns the closed category set
		e.GET("/categories", cacheFor(5*60), expense.ExpenseCategories)

		// GET /api/expenses		-> Returns the user's expenses
		e.GET("", jwt, func(c *gin.Context) { expense.ExpenseList(c, d) })

		// POST /api/expenses		-> Records a new expense
		e.POST("", jwt, func(c *gin.Context) { expense.ExpenseCreate(c, d) })

		// PUT /api/expenses/:id	-> Updates an expense owned by the user
		e.PUT("/:id", jwt, func(c *gin.Context) { expense.ExpenseUpdate(c, d) })

		// DELETE /api/expenses/:id	-> Deletes an expense owned by the user
		e.DELETE("/:id", jwt, func(c *gin.Context) { expense.ExpenseDelete(c, d) })
	}

	a := m.Group("/ai", jwt, middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/ai/generate	-> Proxies a text generation request
		a.POST("/generate", ai.Generate)
	}

	// Dead tokens get swept rarely, lookups already reject them
	service.TokenCleanup(time.Hour*24, d.Users)

	return router
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
