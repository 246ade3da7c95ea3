package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/studiobook/studio-booking-backend/internal/auth"
	"github.com/studiobook/studio-booking-backend/internal/availability"
	availabilityHttp "github.com/studiobook/studio-booking-backend/internal/availability/http"
	"github.com/studiobook/studio-booking-backend/internal/booking"
	bookingHttp "github.com/studiobook/studio-booking-backend/internal/booking/http"
	"github.com/studiobook/studio-booking-backend/internal/photo"
	photoHttp "github.com/studiobook/studio-booking-backend/internal/photo/http"
	"github.com/studiobook/studio-booking-backend/internal/room"
	roomHttp "github.com/studiobook/studio-booking-backend/internal/room/http"
	"github.com/studiobook/studio-booking-backend/internal/roomtype"
	roomtypeHttp "github.com/studiobook/studio-booking-backend/internal/roomtype/http"
	"github.com/studiobook/studio-booking-backend/internal/studio"
	studioHttp "github.com/studiobook/studio-booking-backend/internal/studio/http"
	"github.com/studiobook/studio-booking-backend/internal/user"
	userHttp "github.com/studiobook/studio-booking-backend/internal/user/http"
)

// Config carries everything the router needs to assemble the API.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService         user.Service
	StudioService       studio.Service
	RoomTypeService     roomtype.Service
	RoomService         room.Service
	AvailabilityService availability.Service
	BookingService      booking.Service
	PhotoService        photo.Service

	JWTManager *auth.JWTManager
}

// NewRouter assembles middleware (CORS, logging, recovery, auth) and
// registers every module's routes under /v1.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	sysAdminMiddleware := RequireSystemAdmin(cfg.UserService)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	studioHandler := studioHttp.NewHandler(cfg.StudioService, cfg.UserService)
	roomtypeHandler := roomtypeHttp.NewHandler(cfg.RoomTypeService)
	roomHandler := roomHttp.NewHandler(cfg.RoomService, cfg.UserService)
	availabilityHandler := availabilityHttp.NewHandler(cfg.AvailabilityService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	photoHandler := photoHttp.NewHandler(cfg.PhotoService)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		studioHttp.RegisterRoutes(v1, studioHandler, authMiddleware)
		roomtypeHttp.RegisterRoutes(v1, roomtypeHandler, authMiddleware, sysAdminMiddleware)
		roomHttp.RegisterRoutes(v1, roomHandler, authMiddleware)
		availabilityHttp.RegisterRoutes(v1, availabilityHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
		photoHttp.RegisterRoutes(v1, photoHandler, authMiddleware)
	}

	return r
}
