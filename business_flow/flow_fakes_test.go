package businessflow

import (
	"context"
	"sort"

	"github.com/brandscope-io/brandscope/models"
	"github.com/brandscope-io/brandscope/repository"
	"gorm.io/gorm"
)

// The fakes below embed the repository interfaces so each test only
// implements the methods its flow actually calls. An unimplemented method
// panics, which is exactly the signal wanted.

type fakeBrandRepo struct {
	repository.BrandInfoRepository
	brand     *models.BrandInfo
	getErr    error
	upsertErr error
	upserts   []models.BrandInfo
}

func (f *fakeBrandRepo) Get(context.Context) (*models.BrandInfo, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.brand == nil {
		return nil, nil
	}
	clone := *f.brand
	return &clone, nil
}

func (f *fakeBrandRepo) Upsert(_ context.Context, brand *models.BrandInfo) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	clone := *brand
	f.brand = &clone
	f.upserts = append(f.upserts, clone)
	return nil
}

type fakeICPRepo struct {
	repository.ICPPersonaRepository
	personas map[string]*models.ICPPersona
	nextID   uint
}

func newFakeICPRepo(personas ...models.ICPPersona) *fakeICPRepo {
	repo := &fakeICPRepo{personas: make(map[string]*models.ICPPersona)}
	for _, persona := range personas {
		clone := persona
		repo.nextID++
		clone.ID = repo.nextID
		repo.personas[clone.Name] = &clone
	}
	return repo
}

func (f *fakeICPRepo) ByName(_ context.Context, name string) (*models.ICPPersona, error) {
	persona, ok := f.personas[name]
	if !ok {
		return nil, nil
	}
	clone := *persona
	return &clone, nil
}

func (f *fakeICPRepo) ListAll(context.Context) ([]*models.ICPPersona, error) {
	names := make([]string, 0, len(f.personas))
	for name := range f.personas {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]*models.ICPPersona, 0, len(names))
	for _, name := range names {
		clone := *f.personas[name]
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakeICPRepo) Save(_ context.Context, persona *models.ICPPersona) error {
	f.nextID++
	persona.ID = f.nextID
	clone := *persona
	f.personas[clone.Name] = &clone
	return nil
}

func (f *fakeICPRepo) Update(_ context.Context, persona *models.ICPPersona) error {
	if _, ok := f.personas[persona.Name]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *persona
	f.personas[clone.Name] = &clone
	return nil
}

func (f *fakeICPRepo) DeleteByName(_ context.Context, name string) error {
	if _, ok := f.personas[name]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.personas, name)
	return nil
}

func (f *fakeICPRepo) DeleteAll(context.Context) error {
	f.personas = make(map[string]*models.ICPPersona)
	return nil
}

func (f *fakeICPRepo) Count(context.Context, models.ICPPersonaFilter) (int64, error) {
	return int64(len(f.personas)), nil
}

type fakeDomainRepo struct {
	repository.CitedDomainRepository
	existing  int64
	upserted  []*models.CitedDomain
	listed    []*models.CitedDomain
	lastLimit int
	deleted   bool
}

func (f *fakeDomainRepo) UpsertBatch(_ context.Context, domains []*models.CitedDomain) error {
	f.upserted = domains
	return nil
}

func (f *fakeDomainRepo) Count(context.Context, models.CitedDomainFilter) (int64, error) {
	return f.existing + int64(len(f.upserted)), nil
}

func (f *fakeDomainRepo) ListTopCited(_ context.Context, limit int) ([]*models.CitedDomain, error) {
	f.lastLimit = limit
	return f.listed, nil
}

func (f *fakeDomainRepo) DeleteAll(context.Context) error {
	f.deleted = true
	return nil
}

type fakeChatRepo struct {
	repository.ChatSampleRepository
	existing  int64
	upserted  []*models.ChatSample
	listed    []*models.ChatSample
	lastLimit int
	deleted   bool
}

func (f *fakeChatRepo) UpsertBatch(_ context.Context, chats []*models.ChatSample) error {
	f.upserted = chats
	return nil
}

func (f *fakeChatRepo) Count(context.Context, models.ChatSampleFilter) (int64, error) {
	return f.existing + int64(len(f.upserted)), nil
}

func (f *fakeChatRepo) ListRecent(_ context.Context, limit int) ([]*models.ChatSample, error) {
	f.lastLimit = limit
	return f.listed, nil
}

func (f *fakeChatRepo) DeleteAll(context.Context) error {
	f.deleted = true
	return nil
}
