package impl

import (
	"context"
	"io"
	"log/slog"
	"time"

	"cardlink/internal/domain/entity"
	"cardlink/internal/domain/repository"
	"cardlink/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// --- repository mocks ---

type mockContactRepo struct {
	mock.Mock
}

func (m *mockContactRepo) Create(ctx context.Context, contact *entity.Contact) error {
	args := m.Called(ctx, contact)

	return args.Error(0)
}

func (m *mockContactRepo) FindByOwner(ctx context.Context, id, userID uuid.UUID) (*entity.Contact, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *mockContactRepo) FindByIdentifier(ctx context.Context, query repository.ContactIdentifierQuery) (*entity.Contact, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *mockContactRepo) FindBySourceCard(ctx context.Context, userID, cardID uuid.UUID) (*entity.Contact, error) {
	args := m.Called(ctx, userID, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Contact), args.Error(1)
}

func (m *mockContactRepo) ListByOwner(ctx context.Context, userID uuid.UUID) ([]*entity.Contact, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Contact), args.Error(1)
}

func (m *mockContactRepo) Update(ctx context.Context, contact *entity.Contact) error {
	args := m.Called(ctx, contact)

	return args.Error(0)
}

func (m *mockContactRepo) Delete(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)

	return args.Error(0)
}

type mockCardRepo struct {
	mock.Mock
}

func (m *mockCardRepo) Create(ctx context.Context, card *entity.Card) error {
	args := m.Called(ctx, card)

	return args.Error(0)
}

func (m *mockCardRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Card, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Card), args.Error(1)
}

func (m *mockCardRepo) FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*entity.Card, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Card), args.Error(1)
}

func (m *mockCardRepo) FindByOwner(ctx context.Context, id, userID uuid.UUID) (*entity.Card, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Card), args.Error(1)
}

func (m *mockCardRepo) ListByOwner(ctx context.Context, userID uuid.UUID) ([]*entity.Card, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Card), args.Error(1)
}

func (m *mockCardRepo) Update(ctx context.Context, card *entity.Card) error {
	args := m.Called(ctx, card)

	return args.Error(0)
}

func (m *mockCardRepo) UpdateQR(ctx context.Context, id uuid.UUID, qrCode, qrImage string) error {
	args := m.Called(ctx, id, qrCode, qrImage)

	return args.Error(0)
}

func (m *mockCardRepo) Delete(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)

	return args.Error(0)
}

func (m *mockCardRepo) FindPersonalInfo(ctx context.Context, cardID uuid.UUID) (*entity.PersonalInfo, error) {
	args := m.Called(ctx, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.PersonalInfo), args.Error(1)
}

func (m *mockCardRepo) UpsertPersonalInfo(ctx context.Context, info *entity.PersonalInfo) error {
	args := m.Called(ctx, info)

	return args.Error(0)
}

func (m *mockCardRepo) UpsertSocialLinks(ctx context.Context, links *entity.SocialLinks) error {
	args := m.Called(ctx, links)

	return args.Error(0)
}

type mockShareRepo struct {
	mock.Mock
}

func (m *mockShareRepo) Create(ctx context.Context, share *entity.VisitorContactShare) error {
	args := m.Called(ctx, share)

	return args.Error(0)
}

func (m *mockShareRepo) FindApproved(ctx context.Context, ownerCardID, visitorCardID uuid.UUID) (*entity.VisitorContactShare, error) {
	args := m.Called(ctx, ownerCardID, visitorCardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.VisitorContactShare), args.Error(1)
}

type mockScanRepo struct {
	mock.Mock
}

func (m *mockScanRepo) Create(ctx context.Context, scan *entity.CardScan) error {
	args := m.Called(ctx, scan)

	return args.Error(0)
}

func (m *mockScanRepo) ListByCard(ctx context.Context, cardID uuid.UUID) ([]*entity.CardScan, error) {
	args := m.Called(ctx, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.CardScan), args.Error(1)
}

func (m *mockScanRepo) CountByCard(ctx context.Context, cardID uuid.UUID) (int64, error) {
	args := m.Called(ctx, cardID)

	return args.Get(0).(int64), args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepo) FindAccountByEmail(ctx context.Context, email string) (*repository.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*repository.Account), args.Error(1)
}

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User, passwordHash string) error {
	args := m.Called(ctx, user, passwordHash)

	return args.Error(0)
}

// --- transaction doubles ---

// fakeRepoFactory hands the test's mocks to the transactional callback.
type fakeRepoFactory struct {
	contactRepo repository.ContactRepository
	shareRepo   repository.ShareRepository
	cardRepo    repository.CardRepository
	userRepo    repository.UserRepository
}

func (f *fakeRepoFactory) ContactRepo() repository.ContactRepository { return f.contactRepo }
func (f *fakeRepoFactory) ShareRepo() repository.ShareRepository     { return f.shareRepo }
func (f *fakeRepoFactory) CardRepo() repository.CardRepository       { return f.cardRepo }
func (f *fakeRepoFactory) UserRepo() repository.UserRepository       { return f.userRepo }

// fakeTxManager runs the callback inline against the factory's mocks.
type fakeTxManager struct {
	factory *fakeRepoFactory
}

func (m *fakeTxManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}

// --- service mocks ---

type mockQRCodeService struct {
	mock.Mock
}

func (m *mockQRCodeService) CardURL(cardID uuid.UUID) string {
	args := m.Called(cardID)

	return args.String(0)
}

func (m *mockQRCodeService) GenerateCardQR(cardID uuid.UUID) ([]byte, error) {
	args := m.Called(cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockQRCodeService) ParseCardURL(payload string) (uuid.UUID, error) {
	args := m.Called(payload)

	return args.Get(0).(uuid.UUID), args.Error(1)
}

type mockImageStore struct {
	mock.Mock
}

func (m *mockImageStore) Store(ctx context.Context, folder, filename, contentType string, content io.Reader) (string, error) {
	args := m.Called(ctx, folder, filename, contentType, content)

	return args.String(0), args.Error(1)
}

func (m *mockImageStore) Delete(ctx context.Context, url string) error {
	args := m.Called(ctx, url)

	return args.Error(0)
}

type mockLocationResolver struct {
	mock.Mock
}

func (m *mockLocationResolver) Resolve(ctx context.Context, ip string, hints service.LocationHints) entity.GeoLocation {
	args := m.Called(ctx, ip, hints)

	return args.Get(0).(entity.GeoLocation)
}

func (m *mockLocationResolver) Fallback() entity.GeoLocation {
	args := m.Called()

	return args.Get(0).(entity.GeoLocation)
}

type mockEventPublisher struct {
	mock.Mock
}

func (m *mockEventPublisher) PublishScanEvent(ctx context.Context, event *service.ScanEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *mockEventPublisher) Close() error {
	args := m.Called()

	return args.Error(0)
}

type mockPasswordHasher struct {
	mock.Mock
}

func (m *mockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *mockPasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateTokens(userID uuid.UUID) (string, string, error) {
	args := m.Called(userID)

	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockTokenService) ValidateToken(tokenString, secret string) (*jwt.Token, error) {
	args := m.Called(tokenString, secret)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*jwt.Token), args.Error(1)
}

func (m *mockTokenService) GetRefreshTokenDuration() time.Duration {
	args := m.Called()

	return args.Get(0).(time.Duration)
}
