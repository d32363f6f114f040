package usecase_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/spatrax/spatrax-api/internal/application/usecase"
	"github.com/spatrax/spatrax-api/internal/domain"
	"github.com/spatrax/spatrax-api/internal/domain/entity"
	"github.com/spatrax/spatrax-api/internal/domain/repository"
	"github.com/spatrax/spatrax-api/internal/infrastructure/cache"
	"github.com/spatrax/spatrax-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: KV, repositorios y colaboradores externos
// ──────────────────────────────────────────────────────────────────────────────

type fakeKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeKV() *fakeKV { return &fakeKV{data: map[string]string{}} }

func (f *fakeKV) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return "", cache.ErrMiss
	}
	return v, nil
}

func (f *fakeKV) Set(_ context.Context, key, value string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func (f *fakeKV) Del(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func (f *fakeKV) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.data[key]
	return ok
}

// memUserRepo repositorio de usuarios en memoria.
type memUserRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]entity.User
}

var _ repository.UserRepository = (*memUserRepo)(nil)

func newMemUserRepo() *memUserRepo { return &memUserRepo{nextID: 1, rows: map[int64]entity.User{}} }

func cloneUser(u entity.User) *entity.User {
	c := u
	if u.EstablishmentID != nil {
		id := *u.EstablishmentID
		c.EstablishmentID = &id
	}
	return &c
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	u.ID = r.nextID
	r.nextID++
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.rows[u.ID] = *cloneUser(*u)
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(row), nil
}

func (r *memUserRepo) GetByAuthSubject(_ context.Context, subject string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.AuthSubject == subject && subject != "" {
			return cloneUser(row), nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.Email == email {
			return cloneUser(row), nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	u.UpdatedAt = time.Now()
	r.rows[u.ID] = *cloneUser(*u)
	return nil
}

func (r *memUserRepo) ListByEstablishment(_ context.Context, establishmentID int64) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.User
	for _, row := range r.rows {
		if row.EstablishmentID != nil && *row.EstablishmentID == establishmentID {
			list = append(list, cloneUser(row))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// memEstablishmentRepo repositorio de establecimientos en memoria.
type memEstablishmentRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]entity.Establishment
}

var _ repository.EstablishmentRepository = (*memEstablishmentRepo)(nil)

func newMemEstablishmentRepo() *memEstablishmentRepo {
	return &memEstablishmentRepo{nextID: 1, rows: map[int64]entity.Establishment{}}
}

func cloneEstablishment(e entity.Establishment) *entity.Establishment {
	c := e
	c.Presets = append([]string(nil), e.Presets...)
	return &c
}

func (r *memEstablishmentRepo) Create(_ context.Context, e *entity.Establishment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.ID = r.nextID
	r.nextID++
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	r.rows[e.ID] = *cloneEstablishment(*e)
	return nil
}

func (r *memEstablishmentRepo) GetByID(_ context.Context, id int64) (*entity.Establishment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return cloneEstablishment(row), nil
}

func (r *memEstablishmentRepo) Update(_ context.Context, e *entity.Establishment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[e.ID]; !ok {
		return domain.ErrNotFound
	}
	e.UpdatedAt = time.Now()
	r.rows[e.ID] = *cloneEstablishment(*e)
	return nil
}

// memLogRepo repositorio de logs en memoria.
type memLogRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   []entity.Log
	users  *memUserRepo
}

var _ repository.LogRepository = (*memLogRepo)(nil)

func newMemLogRepo(users *memUserRepo) *memLogRepo {
	return &memLogRepo{nextID: 1, users: users}
}

func (r *memLogRepo) Create(_ context.Context, l *entity.Log) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l.ID = r.nextID
	r.nextID++
	l.CreatedAt = time.Now()
	l.UpdatedAt = l.CreatedAt
	row := *l
	row.Presets = append([]string(nil), l.Presets...)
	r.rows = append(r.rows, row)
	return nil
}

func (r *memLogRepo) withUser(l entity.Log) *entity.LogWithUser {
	u, _ := r.users.GetByID(context.Background(), l.UserID)
	lw := &entity.LogWithUser{Log: l}
	if u != nil {
		lw.User = *u
	}
	return lw
}

func (r *memLogRepo) ListRecent(_ context.Context, establishmentID int64, limit int) ([]*entity.LogWithUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []entity.Log
	for _, row := range r.rows {
		if row.EstablishmentID == establishmentID {
			matched = append(matched, row)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].PerformedAt.After(matched[j].PerformedAt) })
	if len(matched) > limit {
		matched = matched[:limit]
	}
	list := make([]*entity.LogWithUser, 0, len(matched))
	for _, row := range matched {
		list = append(list, r.withUser(row))
	}
	return list, nil
}

func (r *memLogRepo) Search(_ context.Context, search repository.LogSearch) ([]*entity.LogWithUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []entity.Log
	for _, row := range r.rows {
		if row.EstablishmentID != search.EstablishmentID {
			continue
		}
		if search.UserID != nil && row.UserID != *search.UserID {
			continue
		}
		if row.PerformedAt.Before(search.DateStart) || row.PerformedAt.After(search.DateEnd) {
			continue
		}
		matched = append(matched, row)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].PerformedAt.After(matched[j].PerformedAt) })
	list := make([]*entity.LogWithUser, 0, len(matched))
	for _, row := range matched {
		list = append(list, r.withUser(row))
	}
	return list, nil
}

// memInviteRepo repositorio de invitaciones en memoria.
type memInviteRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]entity.Invite
}

var _ repository.InviteRepository = (*memInviteRepo)(nil)

func newMemInviteRepo() *memInviteRepo {
	return &memInviteRepo{nextID: 1, rows: map[int64]entity.Invite{}}
}

func (r *memInviteRepo) Create(_ context.Context, inv *entity.Invite) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv.ID = r.nextID
	r.nextID++
	inv.CreatedAt = time.Now()
	r.rows[inv.ID] = *inv
	return nil
}

func (r *memInviteRepo) GetByID(_ context.Context, id int64) (*entity.Invite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	c := row
	return &c, nil
}

func (r *memInviteRepo) MarkAccepted(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	row.Accepted = true
	r.rows[id] = row
	return nil
}

// fakeEmail registra los envíos sin salir a la red.
type fakeEmail struct {
	mu       sync.Mutex
	welcomes []string
	invites  []usecase.InviteEmail
	err      error
}

var _ usecase.EmailSender = (*fakeEmail)(nil)

func (f *fakeEmail) SendWelcome(_ context.Context, toEmail, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.welcomes = append(f.welcomes, toEmail)
	return "msg_welcome", nil
}

func (f *fakeEmail) SendInvite(_ context.Context, in usecase.InviteEmail) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.invites = append(f.invites, in)
	return "msg_invite", nil
}

// fakeSheets genera un PDF de mentira.
type fakeSheets struct{}

var _ usecase.LogSheetGenerator = (*fakeSheets)(nil)

func (fakeSheets) GenerateLogSheet(_ context.Context, _ *entity.Establishment, _ []*entity.LogWithUser, _, _ time.Time) ([]byte, error) {
	return []byte("%PDF-fake"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Entorno de test: todos los casos de uso cableados sobre fakes
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	kv        *fakeKV
	cache     *cache.Service
	userRepo  *memUserRepo
	estRepo   *memEstablishmentRepo
	logRepo   *memLogRepo
	invRepo   *memInviteRepo
	email     *fakeEmail
	users     *usecase.UserUseCase
	est       *usecase.EstablishmentUseCase
	team      *usecase.TeamUseCase
	logs      *usecase.LogUseCase
	exports   *usecase.ExportUseCase
	invites   *usecase.InviteUseCase
	dashboard *usecase.DashboardUseCase
	onboard   *usecase.OnboardingUseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	kv := newFakeKV()
	c := cache.NewService(kv, 15*time.Minute, logger.Nop())
	userRepo := newMemUserRepo()
	estRepo := newMemEstablishmentRepo()
	logRepo := newMemLogRepo(userRepo)
	invRepo := newMemInviteRepo()
	email := &fakeEmail{}

	users := usecase.NewUserUseCase(userRepo, c)
	est := usecase.NewEstablishmentUseCase(users, estRepo, userRepo, c)
	team := usecase.NewTeamUseCase(users, userRepo, c)
	logs := usecase.NewLogUseCase(users, est, logRepo, userRepo, c)
	exports := usecase.NewExportUseCase(users, est, logs, fakeSheets{})
	invites := usecase.NewInviteUseCase(users, est, invRepo, email)
	dashboard := usecase.NewDashboardUseCase(est, team, logs)
	onboard := usecase.NewOnboardingUseCase(userRepo, invRepo, email, logger.Nop())

	return &testEnv{
		kv: kv, cache: c,
		userRepo: userRepo, estRepo: estRepo, logRepo: logRepo, invRepo: invRepo,
		email: email,
		users: users, est: est, team: team, logs: logs,
		exports: exports, invites: invites, dashboard: dashboard, onboard: onboard,
	}
}

// seedUser inserta un usuario directamente en el repositorio.
func (e *testEnv) seedUser(t *testing.T, u entity.User) *entity.User {
	t.Helper()
	if err := e.userRepo.Create(context.Background(), &u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return &u
}

// seedEstablishment inserta un establecimiento directamente en el repositorio.
func (e *testEnv) seedEstablishment(t *testing.T, est entity.Establishment) *entity.Establishment {
	t.Helper()
	if est.Presets == nil {
		est.Presets = append([]string(nil), entity.DefaultPresets...)
	}
	if err := e.estRepo.Create(context.Background(), &est); err != nil {
		t.Fatalf("seed establishment: %v", err)
	}
	return &est
}

func ptr(v int64) *int64 { return &v }
