package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/shiftgate/checkin-backend-go/internal/config"
	"github.com/shiftgate/checkin-backend-go/internal/domain/token"
	appHTTP "github.com/shiftgate/checkin-backend-go/internal/handler/http"
	"github.com/shiftgate/checkin-backend-go/internal/pkg/database"
	"github.com/shiftgate/checkin-backend-go/internal/pkg/jwt"
	"github.com/shiftgate/checkin-backend-go/internal/pkg/replay"
	"github.com/shiftgate/checkin-backend-go/internal/repository/fallbackqueue"
	"github.com/shiftgate/checkin-backend-go/internal/repository/postgresql"
	authService "github.com/shiftgate/checkin-backend-go/internal/service/auth"
	checkinService "github.com/shiftgate/checkin-backend-go/internal/service/checkin"
	shiftService "github.com/shiftgate/checkin-backend-go/internal/service/shift"
	tokenService "github.com/shiftgate/checkin-backend-go/internal/service/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(context.Background(), cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	shiftConfigRepo := postgresql.NewShiftConfigRepository(db)
	checkinRepo := postgresql.NewCheckInRepository(db)

	queue, err := fallbackqueue.NewQueue(cfg.Fallback.QueuePath)
	if err != nil {
		log.Fatal("Failed to initialize fallback queue:", err)
	}

	// A shared replay cache is required once verifiers scale horizontally;
	// without redis the in-process cache covers the single-instance case.
	var replayCache token.ReplayCache
	if cfg.Redis.Addr != "" {
		replayCache = replay.NewRedisCache(replay.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB))
	} else {
		replayCache = replay.NewMemoryCache()
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	tokenSvc := tokenService.NewTokenService(
		cfg.Kiosk.TokenSecret,
		time.Duration(cfg.Kiosk.TokenTTLSeconds)*time.Second,
		replayCache,
	)
	authSvc := authService.NewAuthService(employeeRepo, JWTService)
	catalog := shiftService.NewCatalog(shiftConfigRepo)
	ledger := checkinService.NewLedger(
		checkinRepo,
		queue,
		tokenSvc,
		employeeRepo,
		shiftConfigRepo,
		cfg.Kiosk.GraceMinutes,
	)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	kioskHandler := appHTTP.NewKioskHandler(tokenSvc)
	shiftHandler := appHTTP.NewShiftHandler(catalog)
	checkinHandler := appHTTP.NewCheckInHandler(ledger)

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		kioskHandler,
		shiftHandler,
		checkinHandler,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
