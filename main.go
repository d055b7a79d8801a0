// main.go
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quickcare/quickcare-api/config"
	"github.com/quickcare/quickcare-api/endpoint"
	"github.com/quickcare/quickcare-api/middleware"
	"github.com/quickcare/quickcare-api/model"
	"github.com/quickcare/quickcare-api/util"
)

func registerRoutes(router *gin.Engine, cfg *config.Config) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Welcome to %s!", cfg.AppName),
		})
	})

	loginLimiter := middleware.RateLimiter(middleware.RateLimitConfig{Limit: 10, Window: time.Minute, KeyPrefix: "login"})
	emergencyLimiter := middleware.RateLimiter(middleware.RateLimitConfig{Limit: 5, Window: time.Minute, KeyPrefix: "emergency"})

	router.POST("/signup", loginLimiter, endpoint.Signup)
	router.POST("/login", loginLimiter, endpoint.Login)
	router.DELETE("/logout", endpoint.Logout)
	router.GET("/token/validate", endpoint.ValidateToken)

	router.GET("/doctor", endpoint.ListDoctors)
	router.POST("/contact", endpoint.SubmitContact)
	router.POST("/emergency", emergencyLimiter, endpoint.SubmitEmergency)
	router.POST("/diet/plan", endpoint.DietPlan)
	router.GET("/labtest/catalog", endpoint.LabTestCatalog)

	authed := router.Group("/", middleware.ValidateLoginToken())
	authed.POST("/appointment", endpoint.CreateAppointment)
	authed.GET("/appointment", endpoint.ListAppointments)
	authed.PATCH("/appointment/:id/status", endpoint.UpdateAppointmentStatus)
	authed.GET("/doctor/appointments", middleware.RequireRole(model.RoleDoctor), endpoint.DoctorAppointments)
	authed.GET("/profile", endpoint.GetProfile)
	authed.PATCH("/profile", endpoint.UpdateProfile)
	authed.POST("/labtest", endpoint.BookLabTest)
}

func main() {
	cfg := config.LoadConfig()

	util.SetJWTSecret(os.Getenv("JWTSECRET"))

	db, err := config.ConnectDatabase()
	if err != nil {
		log.Fatalf("error connecting to database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.Session{},
		&model.Doctor{},
		&model.Appointment{},
		&model.Contact{},
		&model.EmergencyRequest{},
		&model.LabBooking{},
		&model.SecurityLog{},
	); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}

	if err := model.SeedRoles(db); err != nil {
		log.Fatalf("seeding roles failed: %v", err)
	}
	if err := model.SeedDoctors(db, func(plain string) (string, string, error) {
		salt, err := util.GenerateSalt()
		if err != nil {
			return "", "", err
		}
		hash, err := util.HashPasswordArgon2(plain, salt)
		return hash, salt, err
	}); err != nil {
		log.Fatalf("seeding doctors failed: %v", err)
	}

	util.SetSecurityLoggerDB(db)

	// Redis and GeoIP are optional; the API degrades gracefully without them.
	if _, err := config.ConnectRedis(); err != nil {
		log.Printf("redis unavailable, continuing without session cache: %v", err)
	}
	if err := util.InitGeoIP(os.Getenv("GEOIP_DB_PATH")); err != nil {
		log.Printf("geoip unavailable, continuing without IP locations: %v", err)
	}
	defer util.CloseGeoIP()

	gin.SetMode(cfg.GinMode)

	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DatabaseMiddleware(db))
	if os.Getenv("APITOKEN") != "" {
		router.Use(middleware.APITokenMiddleware())
	}

	registerRoutes(router, cfg)

	address := fmt.Sprintf(":%d", cfg.AppPort)
	if err := router.Run(address); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
