package usecase_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/recepciones-api/internal/domain"
	"github.com/jhoicas/recepciones-api/internal/domain/entity"
	"github.com/jhoicas/recepciones-api/internal/domain/rbac"
	"github.com/jhoicas/recepciones-api/internal/domain/repository"
)

var errStore = errors.New("connection reset by peer")

// memStore almacén en memoria que implementa todos los puertos usados por los casos de uso.
// fail permite inyectar fallos por nombre de operación ("profiles.GetByID", "users.Delete", ...).
type memStore struct {
	mu         sync.Mutex
	users      map[string]*entity.User
	profiles   map[string]*entity.Profile
	locals     map[string]*entity.Local
	userLocals []entity.UserLocal
	receptions map[string]bool
	completed  map[string]bool
	fail       map[string]error
	calls      []string
}

func newMemStore() *memStore {
	return &memStore{
		users:      map[string]*entity.User{},
		profiles:   map[string]*entity.Profile{},
		locals:     map[string]*entity.Local{},
		receptions: map[string]bool{},
		completed:  map[string]bool{},
		fail:       map[string]error{},
	}
}

func (s *memStore) hit(op string) error {
	s.calls = append(s.calls, op)
	return s.fail[op]
}

// seedUser crea identidad + perfil + locales (asignados en orden, un segundo de diferencia).
func (s *memStore) seedUser(id string, role rbac.Role, locals ...string) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.users[id] = &entity.User{ID: id, Email: id + "@example.com", Status: entity.UserStatusActive, CreatedAt: now, UpdatedAt: now}
	s.profiles[id] = &entity.Profile{ID: id, FullName: "Usuario " + id, Role: role, CreatedAt: now, UpdatedAt: now}
	for i, l := range locals {
		s.seedLocal(l)
		s.userLocals = append(s.userLocals, entity.UserLocal{UserID: id, LocalName: l, AssignedAt: now.Add(time.Duration(i) * time.Second)})
	}
}

func (s *memStore) seedLocal(name string) {
	if _, ok := s.locals[name]; !ok {
		s.locals[name] = &entity.Local{Name: name, Type: entity.LocalTypeStore}
	}
}

func (s *memStore) localsOf(userID string) []string {
	var out []string
	for _, ul := range s.userLocals {
		if ul.UserID == userID {
			out = append(out, ul.LocalName)
		}
	}
	sort.Strings(out)
	return out
}

// ── UserRepository ──

type memUsers struct{ s *memStore }

var _ repository.UserRepository = memUsers{}

func (r memUsers) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.hit("users.Create"); err != nil {
		return err
	}
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.hit("users.GetByID"); err != nil {
		return nil, err
	}
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.hit("users.GetByEmail"); err != nil {
		return nil, err
	}
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memUsers) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.hit("users.Update"); err != nil {
		return err
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r memUsers) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.hit("users.Delete"); err != nil {
		return err
	}
	delete(r.s.users, id)
	return nil
}

// ── ProfileRepository ──

type memProfiles struct{ s *memStore }

var _ repository.ProfileRepository = memProfiles{}

func (r memProfiles) Create(_ context.Context, p *entity.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.hit("profiles.Create"); err != nil {
		return err
	}
	cp := *p
	r.s.profiles[p.ID] = &cp
	return nil
}

func (r memProfiles) GetByID(_ context.Context, id string) (*entity.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.hit("profiles.GetByID"); err != nil {
		return nil, err
	}
	p, ok := r.s.profiles[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r memProfiles) Update(_ context.Context, p *entity.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.hit("profiles.Update"); err != nil {
		return err
	}
	cp := *p
	r.s.profiles[p.ID] = &cp
	return nil
}

func (r memProfiles) List(_ context.Context, limit, offset int) ([]*entity.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.hit("profiles.List"); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(r.s.profiles))
	for id := range r.s.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var out []*entity.Profile
	for i, id := range ids {
		if i < offset || len(out) >= limit {
			continue
		}
		cp := *r.s.profiles[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (r memProfiles) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.hit("profiles.Delete"); err != nil {
		return err
	}
	delete(r.s.profiles, id)
	return nil
}

// ── LocalRepository ──

type memLocals struct{ s *memStore }

var _ repository.LocalRepository = memLocals{}

func (r memLocals) Create(_ context.Context, l *entity.Local) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.hit("locals.Create"); err != nil {
		return err
	}
	if _, ok := r.s.locals[l.Name]; ok {
		return domain.ErrDuplicate
	}
	cp := *l
	r.s.locals[l.Name] = &cp
	return nil
}

func (r memLocals) GetByName(_ context.Context, name string) (*entity.Local, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.hit("locals.GetByName"); err != nil {
		return nil, err
	}
	l, ok := r.s.locals[name]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r memLocals) Update(_ context.Context, l *entity.Local) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.hit("locals.Update"); err != nil {
		return err
	}
	cp := *l
	r.s.locals[l.Name] = &cp
	return nil
}

func (r memLocals) List(_ context.Context, limit, offset int) ([]*entity.Local, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	names := make([]string, 0, len(r.s.locals))
	for n := range r.s.locals {
		names = append(names, n)
	}
	sort.Strings(names)
	var out []*entity.Local
	for i, n := range names {
		if i < offset || len(out) >= limit {
			continue
		}
		cp := *r.s.locals[n]
		out = append(out, &cp)
	}
	return out, nil
}

func (r memLocals) Delete(_ context.Context, name string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.hit("locals.Delete"); err != nil {
		return err
	}
	delete(r.s.locals, name)
	return nil
}

// ── UserLocalRepository ──

type memUserLocals struct{ s *memStore }

var _ repository.UserLocalRepository = memUserLocals{}

func (r memUserLocals) ListByUser(_ context.Context, userID string) ([]entity.UserLocal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.hit("userLocals.ListByUser"); err != nil {
		return nil, err
	}
	var out []entity.UserLocal
	for _, ul := range r.s.userLocals {
		if ul.UserID == userID {
			out = append(out, ul)
		}
	}
	return out, nil
}

func (r memUserLocals) InsertMany(_ context.Context, list []entity.UserLocal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.hit("userLocals.InsertMany"); err != nil {
		return err
	}
	r.s.userLocals = append(r.s.userLocals, list...)
	return nil
}

func (r memUserLocals) DeleteByUser(_ context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.hit("userLocals.DeleteByUser"); err != nil {
		return err
	}
	kept := r.s.userLocals[:0]
	for _, ul := range r.s.userLocals {
		if ul.UserID != userID {
			kept = append(kept, ul)
		}
	}
	r.s.userLocals = kept
	return nil
}

func (r memUserLocals) ExistsByLocal(_ context.Context, name string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.hit("userLocals.ExistsByLocal"); err != nil {
		return false, err
	}
	for _, ul := range r.s.userLocals {
		if ul.LocalName == name {
			return true, nil
		}
	}
	return false, nil
}

// ── ReceptionRefRepository ──

type memReceptions struct{ s *memStore }

var _ repository.ReceptionRefRepository = memReceptions{}

func (r memReceptions) ExistsInReceptions(_ context.Context, name string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.hit("receptions.Exists"); err != nil {
		return false, err
	}
	return r.s.receptions[name], nil
}

func (r memReceptions) ExistsInCompletedReceptions(_ context.Context, name string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.hit("completedReceptions.Exists"); err != nil {
		return false, err
	}
	return r.s.completed[name], nil
}

// ── UserLocalsTxRunner ──

// memTx simula la transacción: si fn falla, restaura las asignaciones previas.
type memTx struct{ s *memStore }

func (t memTx) RunUserLocals(ctx context.Context, fn func(repo repository.UserLocalRepository) error) error {
	t.s.mu.Lock()
	if err := t.s.fail["tx.Begin"]; err != nil {
		t.s.mu.Unlock()
		return err
	}
	snapshot := append([]entity.UserLocal(nil), t.s.userLocals...)
	t.s.mu.Unlock()

	if err := fn(memUserLocals{s: t.s}); err != nil {
		t.s.mu.Lock()
		t.s.userLocals = snapshot
		t.s.mu.Unlock()
		return err
	}
	return nil
}
