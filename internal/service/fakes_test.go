package service

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sort"
	"sync"

	"firebase.google.com/go/v4/auth"
	"github.com/presensi-sales/backend/internal/client"
	"github.com/presensi-sales/backend/internal/dto"
	"github.com/presensi-sales/backend/internal/model"
	"github.com/presensi-sales/backend/internal/repository"
)

var errBoom = errors.New("boom")

type fakePresensiRepository struct {
	mu        sync.Mutex
	records   []model.Presensi
	createErr error
	listErr   error
	creates   int
	lastQuery repository.PresensiQuery

	// afterLookup runs after every GetBySubmissionID, outside the lock.
	afterLookup func()
}

func (f *fakePresensiRepository) Create(ctx context.Context, presensi model.Presensi) (model.Presensi, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.creates++
	if f.createErr != nil {
		return model.Presensi{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, f.createErr)
	}
	for _, record := range f.records {
		if presensi.SubmissionID != "" && record.SubmissionID == presensi.SubmissionID {
			return model.Presensi{}, fmt.Errorf("%w: duplicate key submission_id", dto.ErrInternalFailure)
		}
	}
	presensi.ID = uint(len(f.records) + 1)
	f.records = append(f.records, presensi)
	return presensi, nil
}

func (f *fakePresensiRepository) GetBySubmissionID(ctx context.Context, submissionID string) (model.Presensi, error) {
	record, err := f.lookup(submissionID)
	if f.afterLookup != nil {
		f.afterLookup()
	}
	return record, err
}

func (f *fakePresensiRepository) lookup(submissionID string) (model.Presensi, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, record := range f.records {
		if record.SubmissionID == submissionID {
			return record, nil
		}
	}
	return model.Presensi{}, dto.ErrNotFound
}

func (f *fakePresensiRepository) List(ctx context.Context, query repository.PresensiQuery) ([]model.Presensi, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastQuery = query
	if f.listErr != nil {
		return nil, 0, f.listErr
	}

	var matched []model.Presensi
	for _, record := range f.records {
		if !query.From.IsZero() && record.CreatedAt.Before(query.From) {
			continue
		}
		if !query.To.IsZero() && !record.CreatedAt.Before(query.To) {
			continue
		}
		matched = append(matched, record)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := int64(len(matched))
	if query.Offset > 0 {
		if query.Offset >= len(matched) {
			matched = nil
		} else {
			matched = matched[query.Offset:]
		}
	}
	if query.Limit > 0 && len(matched) > query.Limit {
		matched = matched[:query.Limit]
	}
	return matched, total, nil
}

type fakeKunjunganRepository struct {
	created   []model.Kunjungan
	createErr error
}

func (f *fakeKunjunganRepository) Create(ctx context.Context, kunjungan model.Kunjungan) (model.Kunjungan, error) {
	if f.createErr != nil {
		return model.Kunjungan{}, f.createErr
	}
	kunjungan.ID = uint(len(f.created) + 1)
	f.created = append(f.created, kunjungan)
	return kunjungan, nil
}

type fakeAdminRepository struct {
	admins map[string]model.Admin
	calls  int
}

func newFakeAdminRepository() *fakeAdminRepository {
	return &fakeAdminRepository{admins: map[string]model.Admin{}}
}

func (f *fakeAdminRepository) Create(ctx context.Context, admin model.Admin) (model.Admin, error) {
	f.calls++
	f.admins[admin.ID] = admin
	return admin, nil
}

func (f *fakeAdminRepository) GetByID(ctx context.Context, id string) (model.Admin, error) {
	f.calls++
	admin, ok := f.admins[id]
	if !ok {
		return model.Admin{}, fmt.Errorf("%w: admin %s", dto.ErrNotFound, id)
	}
	return admin, nil
}

func (f *fakeAdminRepository) Save(ctx context.Context, admin model.Admin) (model.Admin, error) {
	f.calls++
	f.admins[admin.ID] = admin
	return admin, nil
}

type fakeStorage struct {
	mu          sync.Mutex
	uploads     map[string][]byte
	generations map[string]int64
	nextGen     int64
	deleted     []string
	uploadErr   error
	deleteErr   error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{uploads: map[string][]byte{}, generations: map[string]int64{}}
}

func (f *fakeStorage) Upload(ctx context.Context, name, contentType string, data []byte) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.uploadErr != nil {
		return 0, f.uploadErr
	}
	if _, taken := f.uploads[name]; taken {
		return 0, fmt.Errorf("%w: %s", client.ErrObjectExists, name)
	}
	f.nextGen++
	f.uploads[name] = data
	f.generations[name] = f.nextGen
	return f.nextGen, nil
}

func (f *fakeStorage) Delete(ctx context.Context, name string, generation int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deleted = append(f.deleted, name)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if f.generations[name] != generation {
		return fmt.Errorf("%w: generation mismatch for %s", dto.ErrRemoteFailure, name)
	}
	delete(f.uploads, name)
	delete(f.generations, name)
	return nil
}

func (f *fakeStorage) Bucket() string {
	return "presensi-foto"
}

func (f *fakeStorage) objectCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.uploads)
}

type fakeStream struct {
	frame  image.Image
	closed bool
}

func (s *fakeStream) Frame() (image.Image, error) {
	if s.closed {
		return nil, errors.New("closed")
	}
	return s.frame, nil
}

func (s *fakeStream) Close() error {
	s.closed = true
	return nil
}

type fakeCamera struct {
	stream  *fakeStream
	openErr error
	opens   int
	facing  client.Facing
}

func (c *fakeCamera) Open(ctx context.Context, facing client.Facing) (client.CameraStream, error) {
	c.opens++
	c.facing = facing
	if c.openErr != nil {
		return nil, c.openErr
	}
	return c.stream, nil
}

type fakeLocator struct {
	position client.Position
	err      error
	options  client.PositionOptions
}

func (l *fakeLocator) CurrentPosition(ctx context.Context, options client.PositionOptions) (client.Position, error) {
	l.options = options
	return l.position, l.err
}

type fakeGeocoder struct {
	address string
	err     error
	calls   int
}

func (g *fakeGeocoder) Reverse(ctx context.Context, latitude, longitude float64) (string, error) {
	g.calls++
	return g.address, g.err
}

type fakePasswordClient struct {
	users map[string]string
	calls int
}

func (p *fakePasswordClient) SignInWithPassword(ctx context.Context, email, password string) (client.SignInResult, error) {
	p.calls++
	if stored, ok := p.users[email]; !ok || stored != password {
		return client.SignInResult{}, fmt.Errorf("%w: INVALID_PASSWORD", dto.ErrNotAuthorized)
	}
	return client.SignInResult{UID: "uid-" + email, Email: email, IDToken: "id-token-" + email}, nil
}

type fakeAuthClient struct {
	err error
}

func (a *fakeAuthClient) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	if a.err != nil {
		return nil, a.err
	}
	email := idToken[len("id-token-"):]
	return &auth.Token{
		UID:    "uid-" + email,
		Claims: map[string]interface{}{"email": email},
	}, nil
}

func floatPtr(v float64) *float64 {
	return &v
}
