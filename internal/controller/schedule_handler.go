package controller

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/labclass/scheduler/internal/service"
	"github.com/labclass/scheduler/internal/weekimage"
)

type submitScheduleRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
	Batch     string `json:"batch" validate:"required"`
	Subject   string `json:"subject" validate:"required"`
}

type declineScheduleRequest struct {
	Message string `json:"message"`
}

// SubmitSchedule принимает заявку на слот от авторизованного пользователя
func (h *Handler) SubmitSchedule(c echo.Context) error {
	var req submitScheduleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    codeValidation,
			Message: "Malformed request body",
		})
	}

	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    codeValidation,
			Message: "Date, start time, end time, batch and subject are required",
		})
	}

	schedule, err := h.scheduleService.Submit(c.Request().Context(), service.SubmitRequest{
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Batch:     req.Batch,
		Subject:   req.Subject,
		CreatedBy: currentUserID(c),
	})
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, schedule)
}

// ListPending отдаёт заявки для страницы модерации.
// ?sort=asc|desc порядок по дате, ?q= подстрочный поиск.
func (h *Handler) ListPending(c echo.Context) error {
	sortDesc := c.QueryParam("sort") == "desc"

	schedules, err := h.scheduleService.ListPending(c.Request().Context(), sortDesc)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	schedules = service.FilterPending(schedules, c.QueryParam("q"))

	return c.JSON(http.StatusOK, echo.Map{"schedules": schedules})
}

// MySchedules отдаёт записи текущего пользователя: его pending-заявки,
// одобренные слоты и отклонённые заявки с причинами
func (h *Handler) MySchedules(c echo.Context) error {
	mine, err := h.scheduleService.ListMySchedules(c.Request().Context(), currentUserID(c))
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, mine)
}

// ApproveSchedule одобряет заявку
func (h *Handler) ApproveSchedule(c echo.Context) error {
	err := h.scheduleService.Approve(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Schedule approved successfully"})
}

// DeclineSchedule отклоняет заявку с необязательной причиной
func (h *Handler) DeclineSchedule(c echo.Context) error {
	var req declineScheduleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    codeValidation,
			Message: "Malformed request body",
		})
	}

	err := h.scheduleService.Decline(c.Request().Context(), c.Param("id"), req.Message)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Schedule declined successfully"})
}

// PurgePending удаляет все необработанные заявки
func (h *Handler) PurgePending(c echo.Context) error {
	removed, err := h.scheduleService.PurgeAllPending(c.Request().Context())
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"removed": removed})
}

// WeeklyView отдаёт расписание на ближайшие 7 дней
func (h *Handler) WeeklyView(c echo.Context) error {
	week, err := h.weeklyService.WeeklyView(c.Request().Context(), time.Now())
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"week": week})
}

// WeeklyImage отдаёт то же расписание картинкой PNG
func (h *Handler) WeeklyImage(c echo.Context) error {
	week, err := h.weeklyService.WeeklyView(c.Request().Context(), time.Now())
	if err != nil {
		return h.handleServiceError(c, err)
	}

	png, err := weekimage.Render(week)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
