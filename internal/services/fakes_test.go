package services

import (
	"context"
	"errors"
	"strings"

	"tripplanner/internal/domain"
	"tripplanner/internal/domain/models"
	"tripplanner/internal/prompts"
)

type fakeTrips struct {
	byID    map[int64]models.Trip
	nextID  int64
	updates int
}

func newFakeTrips(trips ...models.Trip) *fakeTrips {
	f := &fakeTrips{byID: map[int64]models.Trip{}, nextID: 1}
	for _, t := range trips {
		f.byID[t.ID] = t
		if t.ID >= f.nextID {
			f.nextID = t.ID + 1
		}
	}
	return f
}

func (f *fakeTrips) Create(t models.Trip) (models.Trip, error) {
	t.ID = f.nextID
	f.nextID++
	f.byID[t.ID] = t
	return t, nil
}

func (f *fakeTrips) GetByID(id, userID int64) (models.Trip, error) {
	t, ok := f.byID[id]
	if !ok || t.UserID != userID {
		return models.Trip{}, domain.NotFoundError{Resource: "trip"}
	}
	return t, nil
}

func (f *fakeTrips) ListByUser(userID int64) ([]models.Trip, error) {
	out := []models.Trip{}
	for _, t := range f.byID {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTrips) Update(t models.Trip) (models.Trip, error) {
	cur, ok := f.byID[t.ID]
	if !ok || cur.UserID != t.UserID {
		return t, domain.NotFoundError{Resource: "trip"}
	}
	f.updates++
	f.byID[t.ID] = t
	return t, nil
}

func (f *fakeTrips) Delete(id, userID int64) error {
	t, ok := f.byID[id]
	if !ok || t.UserID != userID {
		return domain.NotFoundError{Resource: "trip"}
	}
	delete(f.byID, id)
	return nil
}

type fakeUsers struct {
	byID   map[int64]models.User
	nextID int64
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[int64]models.User{}, nextID: 1}
}

func (f *fakeUsers) Create(u models.User) (models.User, error) {
	u.ID = f.nextID
	f.nextID++
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsers) GetByEmail(email string) (models.User, error) {
	for _, u := range f.byID {
		if u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return models.User{}, domain.NotFoundError{Resource: "user"}
}

func (f *fakeUsers) GetByID(id int64) (models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	return u, nil
}

func (f *fakeUsers) EmailExists(email string) (bool, error) {
	_, err := f.GetByEmail(email)
	return err == nil, nil
}

func (f *fakeUsers) Update(u models.User) (models.User, error) {
	f.byID[u.ID] = u
	return u, nil
}

type fakeLogs struct {
	entries []models.GenerationLog
	fail    bool
}

func (f *fakeLogs) Insert(l models.GenerationLog) (string, error) {
	if f.fail {
		return "", domain.PersistenceError{Op: "generation_log.insert", Err: errors.New("down")}
	}
	f.entries = append(f.entries, l)
	return "id", nil
}

type fakeGenerator struct {
	reply   string
	err     error
	calls   int
	prompts []prompts.Prompt
}

func (f *fakeGenerator) Generate(ctx context.Context, p prompts.Prompt) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, p)
	if err := ctx.Err(); err != nil {
		return "", domain.TransportError{Provider: "fake", Err: err}
	}
	return f.reply, f.err
}

func (f *fakeGenerator) Provider() string { return "fake" }

type mapCache map[string]any

func (m mapCache) Get(k string) (any, bool) {
	v, ok := m[k]
	return v, ok
}

func (m mapCache) Set(k string, v any) { m[k] = v }
func (m mapCache) Delete(k string)     { delete(m, k) }
