package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studiobook/studio-booking-backend/internal/api"
	"github.com/studiobook/studio-booking-backend/internal/auth"
	"github.com/studiobook/studio-booking-backend/internal/availability"
	"github.com/studiobook/studio-booking-backend/internal/booking"
	"github.com/studiobook/studio-booking-backend/internal/payment"
	"github.com/studiobook/studio-booking-backend/internal/photo"
	"github.com/studiobook/studio-booking-backend/internal/pkg/storage"
	"github.com/studiobook/studio-booking-backend/internal/room"
	"github.com/studiobook/studio-booking-backend/internal/roomtype"
	"github.com/studiobook/studio-booking-backend/internal/studio"
	"github.com/studiobook/studio-booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	StoragePath  string

	StripeSecretKey string
	DefaultTimezone string
	BookableDays    int
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		return nil, err
	}

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Studio Module
	studioRepo := studio.NewPgxRepository(cfg.DBPool)
	studioService := studio.NewService(studioRepo)

	// RoomType Module
	rtRepo := roomtype.NewPgxRepository(cfg.DBPool)
	rtService := roomtype.NewService(rtRepo)

	// Room Module
	roomRepo := room.NewPgxRepository(cfg.DBPool)
	roomService := room.NewService(roomRepo, studioService, rtService, cfg.DefaultTimezone)

	// Availability Module
	availRepo := availability.NewPgxRepository(cfg.DBPool)
	availService := availability.NewService(availRepo, roomService)

	// Payment provider
	provider := payment.NewStripeProvider(cfg.StripeSecretKey)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(
		bookingRepo, roomService, studioService, userService,
		availService, provider, cfg.BookableDays,
	)

	// Photo Module
	photoRepo := photo.NewPgxRepository(cfg.DBPool)
	photoService := photo.NewService(photoRepo, studioService, store)

	router := api.NewRouter(api.Config{
		IsProduction:        cfg.IsProduction,
		ProdOrigins:         cfg.ProdOrigins,
		UserService:         userService,
		StudioService:       studioService,
		RoomTypeService:     rtService,
		RoomService:         roomService,
		AvailabilityService: availService,
		BookingService:      bookingService,
		PhotoService:        photoService,
		JWTManager:          jwtManager,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
