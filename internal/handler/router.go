package handler

import (
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/booknest/backend/internal/config"
	"github.com/booknest/backend/internal/model"
	"github.com/booknest/backend/internal/service"
)

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,30}$`)

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernameRe.MatchString(fl.Field().String())
		})
	}
}

type Services struct {
	Auth   *service.AuthService
	Users  *service.UserService
	Books  *service.BookService
	Tokens *service.TokenIssuer
}

func NewRouter(cfg config.Config, svcs Services, log *zap.Logger) *gin.Engine {
	registerValidators()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))
	router.Use(CORSMiddleware(cfg.AllowedOrigins))

	router.GET("/ping", Ping)
	router.GET("/", Root)

	authLimit := authRateLimit(cfg.AuthRateLimit)

	auth := NewAuthHandler(svcs.Auth)
	usersH := NewUsersHandler(svcs.Users)
	booksH := NewBooksHandler(svcs.Books)

	users := router.Group("/users")
	{
		users.POST("/register", auth.Register)
		users.POST("/login", authLimit, auth.Login)
		users.POST("/verify-otp", authLimit, auth.VerifyOTP)
		users.POST("/resend-otp", authLimit, auth.ResendOTP)
		users.POST("/refresh-token", auth.Refresh)

		users.GET("/profile", AuthRequired(svcs.Tokens), usersH.GetProfile)
		users.PUT("/profile", AuthRequired(svcs.Tokens), usersH.UpdateProfile)

		users.GET("", AuthRequired(svcs.Tokens), RequireRole(model.RoleAdmin), usersH.List)
		users.GET("/:id", AuthRequired(svcs.Tokens), RequireRole(model.RoleAdmin), usersH.GetByID)
		users.PUT("/:id", AuthRequired(svcs.Tokens), usersH.Update)
		users.DELETE("/:id", AuthRequired(svcs.Tokens), usersH.Delete)
	}

	books := router.Group("/books")
	{
		books.GET("", AuthOptional(svcs.Tokens), booksH.List)
		books.GET("/:id", AuthOptional(svcs.Tokens), booksH.Get)
		books.POST("", AuthRequired(svcs.Tokens), booksH.Create)
		books.PUT("/:id", AuthRequired(svcs.Tokens), booksH.Update)
		books.DELETE("/:id", AuthRequired(svcs.Tokens), booksH.Delete)
	}

	return router
}

func authRateLimit(cfg config.RateLimitConfig) gin.HandlerFunc {
	perSecond, err := strconv.ParseFloat(cfg.PerSecond, 64)
	if err != nil || perSecond <= 0 {
		perSecond = 5
	}
	burst, err := strconv.Atoi(cfg.Burst)
	if err != nil || burst <= 0 {
		burst = 10
	}
	return RateLimitPerIP(rate.Limit(perSecond), burst)
}
