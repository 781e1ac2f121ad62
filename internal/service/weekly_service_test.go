package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/labclass/scheduler/internal/model"
)

func TestWeeklyViewEmptyWeek(t *testing.T) {
	approved := newFakeApprovedRepo()
	users := newFakeUserRepo()
	svc := NewWeeklyService(approved, users, zap.NewNop())

	today := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	week, err := svc.WeeklyView(context.Background(), today)
	require.NoError(t, err)

	require.Len(t, week, 7)
	wantDates := []string{
		"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04",
		"2024-01-05", "2024-01-06", "2024-01-07",
	}
	for i, day := range week {
		assert.Equal(t, wantDates[i], day.Date)
		assert.NotNil(t, day.Slots, "empty day must be an empty sequence, not nil")
		assert.Empty(t, day.Slots)
	}
}

func TestWeeklyViewEnrichesSlots(t *testing.T) {
	approved := newFakeApprovedRepo()
	users := newFakeUserRepo()
	users.add(&model.User{ID: 7, Email: "prof@example.com", Name: "Dr. Sharma"})
	svc := NewWeeklyService(approved, users, zap.NewNop())

	ctx := context.Background()
	require.NoError(t, approved.Upsert(ctx, &model.ApprovedSlot{
		Date: "2024-01-02", TimeSlot: "09:00-10:00", Batch: "CSIT", Subject: "DBMS", ProfessorID: 7,
	}))
	require.NoError(t, approved.Upsert(ctx, &model.ApprovedSlot{
		Date: "2024-01-02", TimeSlot: "11:00-12:00", Batch: "BIM", Subject: "Networks", ProfessorID: 7,
	}))
	require.NoError(t, approved.Upsert(ctx, &model.ApprovedSlot{
		Date: "2024-01-05", TimeSlot: "14:00-15:00", Batch: "BCA", Subject: "OS", ProfessorID: 99,
	}))

	today := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	week, err := svc.WeeklyView(ctx, today)
	require.NoError(t, err)

	day2 := week[1]
	require.Len(t, day2.Slots, 2)
	// Слоты внутри дня идут по возрастанию времени
	assert.Equal(t, "09:00-10:00", day2.Slots[0].TimeSlot)
	assert.Equal(t, "11:00-12:00", day2.Slots[1].TimeSlot)
	assert.Equal(t, "Dr. Sharma", day2.Slots[0].ProfessorName)

	// Неизвестный преподаватель не ломает агрегацию
	day5 := week[4]
	require.Len(t, day5.Slots, 1)
	assert.Equal(t, "Unknown", day5.Slots[0].ProfessorName)
}

func TestWeeklyViewNameCache(t *testing.T) {
	approved := newFakeApprovedRepo()
	users := newFakeUserRepo()
	users.add(&model.User{ID: 7, Email: "prof@example.com", Name: "Dr. Sharma"})
	svc := NewWeeklyService(approved, users, zap.NewNop())

	ctx := context.Background()
	// Один преподаватель в трёх днях недели
	for _, date := range []string{"2024-01-01", "2024-01-03", "2024-01-06"} {
		require.NoError(t, approved.Upsert(ctx, &model.ApprovedSlot{
			Date: date, TimeSlot: "09:00-10:00", ProfessorID: 7,
		}))
	}

	users.getCalls = 0
	today := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.WeeklyView(ctx, today)
	require.NoError(t, err)

	assert.Equal(t, 1, users.getCalls, "name resolved once per user across the whole run")
}
