package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/labclass/scheduler/internal/model"
)

// In-memory фейки репозиториев для тестов сервисного слоя

type fakePendingRepo struct {
	mu        sync.Mutex
	items     map[string]*model.PendingSchedule
	createErr error
}

func newFakePendingRepo() *fakePendingRepo {
	return &fakePendingRepo{items: make(map[string]*model.PendingSchedule)}
}

func (f *fakePendingRepo) Create(_ context.Context, p *model.PendingSchedule) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	f.items[p.ID] = &cp
	return nil
}

func (f *fakePendingRepo) GetByID(_ context.Context, id string) (*model.PendingSchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakePendingRepo) GetByDate(_ context.Context, date string) ([]*model.PendingSchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*model.PendingSchedule
	for _, p := range f.items {
		if p.Date == date {
			cp := *p
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (f *fakePendingRepo) GetByUser(_ context.Context, userID int64) ([]*model.PendingSchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*model.PendingSchedule
	for _, p := range f.items {
		if p.CreatedBy == userID {
			cp := *p
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date < result[j].Date
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (f *fakePendingRepo) List(_ context.Context, sortDesc bool) ([]*model.PendingSchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]*model.PendingSchedule, 0, len(f.items))
	for _, p := range f.items {
		cp := *p
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			if sortDesc {
				return result[i].Date > result[j].Date
			}
			return result[i].Date < result[j].Date
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (f *fakePendingRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, id)
	return nil
}

func (f *fakePendingRepo) DeleteAll(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := int64(len(f.items))
	f.items = make(map[string]*model.PendingSchedule)
	return n, nil
}

func (f *fakePendingRepo) DeleteBefore(_ context.Context, date string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, p := range f.items {
		if p.Date < date {
			delete(f.items, id)
			n++
		}
	}
	return n, nil
}

type fakeApprovedRepo struct {
	mu        sync.Mutex
	slots     map[string]map[string]*model.ApprovedSlot // date -> timeSlot -> slot
	upsertErr error
}

func newFakeApprovedRepo() *fakeApprovedRepo {
	return &fakeApprovedRepo{slots: make(map[string]map[string]*model.ApprovedSlot)}
}

func (f *fakeApprovedRepo) Upsert(_ context.Context, slot *model.ApprovedSlot) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.slots[slot.Date] == nil {
		f.slots[slot.Date] = make(map[string]*model.ApprovedSlot)
	}
	cp := *slot
	f.slots[slot.Date][slot.TimeSlot] = &cp
	return nil
}

func (f *fakeApprovedRepo) GetByDate(_ context.Context, date string) ([]*model.ApprovedSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*model.ApprovedSlot
	for _, slot := range f.slots[date] {
		cp := *slot
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].TimeSlot < result[j].TimeSlot
	})
	return result, nil
}

func (f *fakeApprovedRepo) GetByProfessor(_ context.Context, professorID int64) ([]*model.ApprovedSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*model.ApprovedSlot
	for _, byTime := range f.slots {
		for _, slot := range byTime {
			if slot.ProfessorID == professorID {
				cp := *slot
				result = append(result, &cp)
			}
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date < result[j].Date
		}
		return result[i].TimeSlot < result[j].TimeSlot
	})
	return result, nil
}

type fakeDeclinedRepo struct {
	mu        sync.Mutex
	items     map[string]*model.DeclinedSchedule
	createErr error
}

func newFakeDeclinedRepo() *fakeDeclinedRepo {
	return &fakeDeclinedRepo{items: make(map[string]*model.DeclinedSchedule)}
}

func (f *fakeDeclinedRepo) Create(_ context.Context, d *model.DeclinedSchedule) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *d
	f.items[d.ID] = &cp
	return nil
}

func (f *fakeDeclinedRepo) GetByUser(_ context.Context, userID int64) ([]*model.DeclinedSchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*model.DeclinedSchedule
	for _, d := range f.items {
		if d.CreatedBy == userID {
			cp := *d
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].DeclinedAt.After(result[j].DeclinedAt)
	})
	return result, nil
}

type fakeUserRepo struct {
	mu       sync.Mutex
	users    map[int64]*model.User
	byEmail  map[string]*model.User
	getCalls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:   make(map[int64]*model.User),
		byEmail: make(map[string]*model.User),
	}
}

func (f *fakeUserRepo) add(user *model.User) {
	f.users[user.ID] = user
	f.byEmail[user.Email] = user
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.ID = int64(len(f.users) + 1)
	f.add(user)
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byEmail[email]
	if !ok {
		return nil, nil
	}
	return u, nil
}

// fakeLocker выполняет fn без настоящего лока
type fakeLocker struct{}

func (fakeLocker) WithDateLock(ctx context.Context, _ string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// recordingNotifier запоминает отправленные уведомления
type recordingNotifier struct {
	approved []string
	declined []string
	messages []string
}

func (n *recordingNotifier) ScheduleApproved(_ context.Context, _ *model.User, s *model.PendingSchedule) {
	n.approved = append(n.approved, s.ID)
}

func (n *recordingNotifier) ScheduleDeclined(_ context.Context, _ *model.User, s *model.PendingSchedule, message string) {
	n.declined = append(n.declined, s.ID)
	n.messages = append(n.messages, message)
}

var errStore = errors.New("store unavailable")
