package main

import (
	"bookit/src/boot"
	"bookit/src/config"
	"bookit/src/controllers"
	"bookit/src/middlewares"
	"bookit/src/types"
	"bookit/src/utils"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"regexp"
	"strconv"
	"time"

	"github.com/covalenthq/lumberjack"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	_ "github.com/joho/godotenv/autoload"
)

const (
	apiPrefix string = "/api/v1"
)

var bookableDateValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	raw, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	date, err := utils.ParseBookingDate(raw)
	if err != nil {
		return false
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return !date.Before(today)
}

var promoCodePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9-]{2,19}$`)

var promoCodeValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	code, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return promoCodePattern.MatchString(code)
}

func setupRouter() *gin.Engine {
	router := gin.Default()
	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, "ok")
	})
	return router
}

func maintenanceModeMiddleware(g *gin.Engine) *gin.Engine {
	g.Use(func(ctx *gin.Context) {
		mm := os.Getenv("MAINTENANCE_MODE")
		atoi, err := strconv.ParseBool(mm)
		if err == nil && atoi {
			err := errors.New("server is under maintenance")
			log.Println(err.Error())
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, err.Error())
			return
		}
	})
	return g
}

func apiv1Group(g *gin.Engine) *gin.RouterGroup {
	apiv1 := g.Group(apiPrefix)
	return apiv1
}

func publicRoutes(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	apiv1.Use(middlewares.OptionalAuth)
	apiv1 = experienceHandlers(apiv1)
	apiv1 = bookingHandlers(apiv1)
	apiv1 = promoHandlers(apiv1)
	return apiv1
}

func guestAuthRoutes(g *gin.Engine) *gin.RouterGroup {
	apiv1 := apiv1Group(g)
	guest := apiv1.Group("/auth")
	guest.
		POST("/register", func(ctx *gin.Context) {
			email, status, err := controllers.AuthRegister(ctx)
			if err != nil {
				log.Printf("[AuthRegister] error: %s\n", err.Error())
				ctx.JSON(status, gin.H{"error": types.APIError{Kind: types.KIND_CONFLICT, Message: err.Error()}})
				return
			}
			ctx.JSON(status, gin.H{"data": gin.H{"email": email}})
		}).
		POST("/verify-otp", func(ctx *gin.Context) {
			status, err := controllers.AuthVerifyOTP(ctx)
			if err != nil {
				log.Printf("[AuthVerifyOTP] error: %s\n", err.Error())
				ctx.JSON(status, gin.H{"error": types.APIError{Kind: types.KIND_UNAUTHORIZED, Message: err.Error()}})
				return
			}
			ctx.Status(http.StatusNoContent)
		}).
		POST("/login", func(ctx *gin.Context) {
			token, status, err := controllers.AuthLogin(ctx)
			if err != nil {
				log.Printf("[AuthLogin] error: %s\n", err.Error())
				ctx.JSON(status, gin.H{"error": types.APIError{Kind: types.KIND_UNAUTHORIZED, Message: err.Error()}})
				return
			}
			maxAge := config.TOKEN_TTL_HOURS * 3600
			ctx.SetCookie(config.TOKEN_COOKIE_NAME, *token, maxAge, "/", "", false, true)
			ctx.JSON(http.StatusOK, gin.H{"token": token})
		}).
		POST("/logout", func(ctx *gin.Context) {
			ctx.SetCookie(config.TOKEN_COOKIE_NAME, "", -1, "/", "", false, true)
			ctx.Status(http.StatusNoContent)
		}).
		POST("/reset-password/request", func(ctx *gin.Context) {
			var body struct {
				Email string `json:"email" binding:"required,email"`
			}
			if err := ctx.ShouldBindJSON(&body); err != nil {
				badRequest(ctx, err)
				return
			}
			go controllers.AuthRequestPasswordReset(body.Email)
			ctx.Status(http.StatusAccepted)
		}).
		POST("/reset-password", func(ctx *gin.Context) {
			status, err := controllers.AuthResetPassword(ctx)
			if err != nil {
				log.Printf("[AuthResetPassword] error: %s\n", err.Error())
				ctx.JSON(status, gin.H{"error": types.APIError{Kind: types.KIND_UNAUTHORIZED, Message: err.Error()}})
				return
			}
			ctx.Status(http.StatusNoContent)
		})
	return guest
}

func initLogger() {
	cwd, _ := os.Getwd()
	serverLogs := path.Join(cwd, "logs", "server.log")
	apiLogs := path.Join(cwd, "logs", "api.log")
	gin.ForceConsoleColor()

	f, _ := os.Create(apiLogs)
	gin.DefaultWriter = io.MultiWriter(f, os.Stdout)
	log.SetOutput(&lumberjack.Logger{
		Filename:   serverLogs,
		MaxSize:    500,
		MaxBackups: 3,
		MaxAge:     30,
		Compress:   true,
	})
}

func main() {
	apiEnv := os.Getenv("API_ENV")
	if apiEnv == "local" {
		cwd, _ := os.Getwd()
		if err := godotenv.Load(path.Join(cwd, ".env")); err != nil {
			panic(err)
		}
	}
	initLogger()

	boot.InitDb()
	boot.InitScheduler()
	boot.InitQueues()

	router := setupRouter()

	appHost := os.Getenv("APP_HOST")
	if apiEnv == "local" {
		router.Use(cors.Default())
	} else {
		cc := cors.DefaultConfig()
		cc.AllowMethods = append(cc.AllowMethods, "GET", "POST", "PATCH", "PUT", "DELETE", "HEAD")
		cc.AllowHeaders = append(cc.AllowHeaders, "Origin", "Authorization")
		cc.AllowOriginFunc = func(origin string) bool {
			match, _ := regexp.MatchString(appHost, origin)
			return match
		}
		cc.AllowCredentials = true
		cc.AllowAllOrigins = false
		router.Use(cors.New(cc))
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("bookabledate", bookableDateValidatorFunc)
		v.RegisterValidation("promocode", promoCodeValidatorFunc)
	}

	router = maintenanceModeMiddleware(router)

	publicRoutes(router)

	guestAuthRoutes(router)

	authorized := router.Group(apiPrefix)
	authorized.Use(middlewares.AuthMiddleware)
	{
		authorized = userHandlers(authorized)
	}

	admin := router.Group(path.Join(apiPrefix, "admin"))
	admin.Use(middlewares.AuthMiddleware, middlewares.RequireRole(types.ROLE_ADMIN))
	{
		admin = adminExperienceHandlers(admin)
		admin = adminPromoHandlers(admin)
		admin = adminFileHandlers(admin)
		admin = adminUserHandlers(admin)
		admin = adminBookingHandlers(admin)
	}

	defer boot.StopScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("server exited: %s\n", err.Error())
	}
}
