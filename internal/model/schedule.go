package model

import "time"

type ScheduleStatus string

const (
	ScheduleStatusPending  ScheduleStatus = "pending"  // Ожидает решения администратора
	ScheduleStatusApproved ScheduleStatus = "approved" // Подтверждено, попало в расписание
	ScheduleStatusDeclined ScheduleStatus = "declined" // Отклонено администратором
)

// PendingSchedule заявка на слот в расписании, ещё не рассмотренная админом
type PendingSchedule struct {
	ID        string         `json:"id"`
	Date      string         `json:"date"`      // ISO "YYYY-MM-DD"
	TimeSlot  string         `json:"time_slot"` // "HH:MM-HH:MM", ключ внутри даты
	StartTime string         `json:"start_time"`
	EndTime   string         `json:"end_time"`
	Batch     string         `json:"batch"`
	Subject   string         `json:"subject"`
	CreatedBy int64          `json:"created_by"`
	Status    ScheduleStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`

	// Заполняется при листинге, не хранится в БД
	ProfessorName string `json:"professor_name,omitempty"`
}

// ApprovedSlot одобренный слот. Одна строка на пару (date, time_slot) —
// апсерт строки и есть аддитивный merge расписания на дату.
type ApprovedSlot struct {
	Date        string    `json:"date"`
	TimeSlot    string    `json:"time_slot"`
	Batch       string    `json:"batch"`
	Subject     string    `json:"subject"`
	ProfessorID int64     `json:"professor_id"`
	ApprovedAt  time.Time `json:"approved_at"`

	// Заполняется агрегатором, не хранится в БД
	ProfessorName string `json:"professor_name,omitempty"`
}

// DeclinedSchedule отклонённая заявка. Сохраняет id и все поля исходной
// pending-записи плюс причину отклонения.
type DeclinedSchedule struct {
	ID             string    `json:"id"`
	Date           string    `json:"date"`
	TimeSlot       string    `json:"time_slot"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
	Batch          string    `json:"batch"`
	Subject        string    `json:"subject"`
	CreatedBy      int64     `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
	DeclineMessage string    `json:"decline_message"`
	DeclinedAt     time.Time `json:"declined_at"`
}
