package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/weighttrack/weighttrack-go/internal/model"
	"github.com/weighttrack/weighttrack-go/internal/repository"
)

// In-memory stores implementing the same contracts as the MySQL
// repositories, including sentinel errors and the goal supersede rule.

type fakeUserStore struct {
	users  map[string]*model.User // keyed by ID
	nextID int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*model.User)}
}

func (s *fakeUserStore) Create(_ context.Context, user *model.User) error {
	for _, u := range s.users {
		if u.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
	}
	s.nextID++
	user.ID = fmt.Sprintf("user-%d", s.nextID)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *fakeUserStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *fakeUserStore) GetByID(_ context.Context, id string) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) delete(id string) {
	delete(s.users, id)
}

type fakeGoalStore struct {
	goals  map[string]*model.Goal
	nextID int
}

func newFakeGoalStore() *fakeGoalStore {
	return &fakeGoalStore{goals: make(map[string]*model.Goal)}
}

func (s *fakeGoalStore) Create(_ context.Context, goal *model.Goal) error {
	for _, g := range s.goals {
		if g.UserID == goal.UserID && g.IsActive {
			g.IsActive = false
		}
	}
	s.nextID++
	goal.ID = fmt.Sprintf("goal-%d", s.nextID)
	goal.IsActive = true
	goal.CreatedAt = time.Now().Add(time.Duration(s.nextID) * time.Millisecond)
	goal.UpdatedAt = goal.CreatedAt
	cp := *goal
	s.goals[goal.ID] = &cp
	return nil
}

func (s *fakeGoalStore) GetActive(_ context.Context, userID string) (*model.Goal, error) {
	for _, g := range s.goals {
		if g.UserID == userID && g.IsActive {
			cp := *g
			return &cp, nil
		}
	}
	return nil, repository.ErrGoalNotFound
}

func (s *fakeGoalStore) GetByID(_ context.Context, userID, goalID string) (*model.Goal, error) {
	g, ok := s.goals[goalID]
	if !ok || g.UserID != userID {
		return nil, repository.ErrGoalNotFound
	}
	cp := *g
	return &cp, nil
}

func (s *fakeGoalStore) ListByUser(_ context.Context, userID string) ([]model.Goal, error) {
	var out []model.Goal
	for _, g := range s.goals {
		if g.UserID == userID {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *fakeGoalStore) Update(_ context.Context, goal *model.Goal) error {
	g, ok := s.goals[goal.ID]
	if !ok || g.UserID != goal.UserID {
		return repository.ErrGoalNotFound
	}
	g.TargetWeight = goal.TargetWeight
	g.Deadline = goal.Deadline
	return nil
}

func (s *fakeGoalStore) Delete(_ context.Context, userID, goalID string) error {
	g, ok := s.goals[goalID]
	if !ok || g.UserID != userID {
		return repository.ErrGoalNotFound
	}
	delete(s.goals, goalID)
	return nil
}

func (s *fakeGoalStore) activeCount(userID string) int {
	n := 0
	for _, g := range s.goals {
		if g.UserID == userID && g.IsActive {
			n++
		}
	}
	return n
}

type fakeWeightStore struct {
	entries map[string]*model.WeightEntry
	nextID  int
}

func newFakeWeightStore() *fakeWeightStore {
	return &fakeWeightStore{entries: make(map[string]*model.WeightEntry)}
}

func (s *fakeWeightStore) Create(_ context.Context, entry *model.WeightEntry) error {
	s.nextID++
	entry.ID = fmt.Sprintf("entry-%d", s.nextID)
	entry.CreatedAt = time.Now().Add(time.Duration(s.nextID) * time.Millisecond)
	entry.UpdatedAt = entry.CreatedAt
	cp := *entry
	s.entries[entry.ID] = &cp
	return nil
}

func (s *fakeWeightStore) GetByID(_ context.Context, userID, entryID string) (*model.WeightEntry, error) {
	e, ok := s.entries[entryID]
	if !ok || e.UserID != userID {
		return nil, repository.ErrEntryNotFound
	}
	cp := *e
	return &cp, nil
}

func (s *fakeWeightStore) ListByUser(_ context.Context, userID string, limit int) ([]model.WeightEntry, error) {
	var out []model.WeightEntry
	for _, e := range s.entries {
		if e.UserID == userID {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeWeightStore) ListByUserForRange(_ context.Context, userID, start, end string) ([]model.WeightEntry, error) {
	all, _ := s.ListByUser(context.Background(), userID, 0)
	var out []model.WeightEntry
	for _, e := range all {
		if e.Date >= start && e.Date <= end {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeWeightStore) Update(_ context.Context, entry *model.WeightEntry) error {
	e, ok := s.entries[entry.ID]
	if !ok || e.UserID != entry.UserID {
		return repository.ErrEntryNotFound
	}
	e.Weight = entry.Weight
	e.Memo = entry.Memo
	return nil
}

func (s *fakeWeightStore) Delete(_ context.Context, userID, entryID string) error {
	e, ok := s.entries[entryID]
	if !ok || e.UserID != userID {
		return repository.ErrEntryNotFound
	}
	delete(s.entries, entryID)
	return nil
}
