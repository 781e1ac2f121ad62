package controller

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/labclass/scheduler/internal/service"
)

// Handler собирает HTTP-обработчики поверх сервисов
type Handler struct {
	scheduleService *service.ScheduleService
	weeklyService   *service.WeeklyService
	authService     *service.AuthService
	validate        *validator.Validate
	logger          *zap.Logger
}

func NewHandler(
	scheduleService *service.ScheduleService,
	weeklyService *service.WeeklyService,
	authService *service.AuthService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		scheduleService: scheduleService,
		weeklyService:   weeklyService,
		authService:     authService,
		validate:        validator.New(),
		logger:          logger,
	}
}

// Register вешает маршруты на echo
func (h *Handler) Register(e *echo.Echo) {
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	api := e.Group("/api")

	api.POST("/auth/login", h.Login)

	schedules := api.Group("/schedules", h.AuthMiddleware)
	schedules.POST("", h.SubmitSchedule)
	schedules.GET("/mine", h.MySchedules)
	schedules.GET("/weekly", h.WeeklyView)
	schedules.GET("/weekly/image", h.WeeklyImage)

	admin := schedules.Group("/pending", h.AdminMiddleware)
	admin.GET("", h.ListPending)
	admin.DELETE("", h.PurgePending)
	admin.POST("/:id/approve", h.ApproveSchedule)
	admin.POST("/:id/decline", h.DeclineSchedule)
}

// handleServiceError переводит ошибки сервисного слоя в HTTP-ответы
func (h *Handler) handleServiceError(c echo.Context, err error) error {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    codeValidation,
			Message: validationErr.Message,
			Field:   validationErr.Field,
		})
	}

	var conflictErr *service.ConflictError
	if errors.As(err, &conflictErr) {
		return c.JSON(http.StatusConflict, ErrorResponse{
			Code:    codeConflict,
			Message: conflictErr.Reason,
		})
	}

	if errors.Is(err, service.ErrNotFound) {
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    codeNotFound,
			Message: "Requested record was not found",
		})
	}

	h.logger.Error("Request failed", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    codeInternal,
		Message: "Operation failed, please try again",
	})
}
