package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/user-service/internal/auth"
	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/repository"
)

// failingRepo wraps a repository and fails selected operations.
type failingRepo struct {
	repository.UserRepository
	err       error
	failOn    map[string]bool
	creates   []domain.User
	lastPatch domain.UserPatch
}

func newFailingRepo(err error, ops ...string) *failingRepo {
	r := &failingRepo{UserRepository: repository.NewMemoryUserRepository(), err: err, failOn: map[string]bool{}}
	for _, op := range ops {
		r.failOn[op] = true
	}
	return r
}

func (r *failingRepo) Create(ctx context.Context, user *domain.User) error {
	if r.failOn["create"] {
		r.creates = append(r.creates, *user)
		return r.err
	}
	if err := r.UserRepository.Create(ctx, user); err != nil {
		return err
	}
	r.creates = append(r.creates, *user)
	return nil
}

func (r *failingRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if r.failOn["getByEmail"] {
		return nil, r.err
	}
	return r.UserRepository.GetByEmail(ctx, email)
}

func (r *failingRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if r.failOn["getByID"] {
		return nil, r.err
	}
	return r.UserRepository.GetByID(ctx, id)
}

func (r *failingRepo) List(ctx context.Context) ([]domain.User, error) {
	if r.failOn["list"] {
		return nil, r.err
	}
	return r.UserRepository.List(ctx)
}

func (r *failingRepo) UpdateByID(ctx context.Context, id string, patch domain.UserPatch) (bool, error) {
	r.lastPatch = patch
	if r.failOn["update"] {
		return false, r.err
	}
	return r.UserRepository.UpdateByID(ctx, id, patch)
}

func (r *failingRepo) DeleteByID(ctx context.Context, id string) (bool, error) {
	if r.failOn["delete"] {
		return false, r.err
	}
	return r.UserRepository.DeleteByID(ctx, id)
}

func (r *failingRepo) DeleteAll(ctx context.Context) (int64, error) {
	if r.failOn["deleteAll"] {
		return 0, r.err
	}
	return r.UserRepository.DeleteAll(ctx)
}

type stubAvatar struct {
	url   string
	err   error
	calls int
}

func (s *stubAvatar) RandomImageURL(context.Context) (string, error) {
	s.calls++
	return s.url, s.err
}

func testHasher() *auth.Hasher {
	return auth.NewHasher(bcrypt.MinCost, 2)
}

var errDB = errors.New("db down")
