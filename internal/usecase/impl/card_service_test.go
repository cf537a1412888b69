package impl

import (
	"context"
	"testing"

	"cardlink/internal/domain/entity"
	domainerrors "cardlink/internal/domain/errors"
	"cardlink/internal/domain/repository"
	"cardlink/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type cardServiceMocks struct {
	cardRepo   *mockCardRepo
	qrcode     *mockQRCodeService
	imageStore *mockImageStore
}

func newTestCardService(t *testing.T) (usecase.CardUsecase, *cardServiceMocks) {
	t.Helper()

	m := &cardServiceMocks{
		cardRepo:   new(mockCardRepo),
		qrcode:     new(mockQRCodeService),
		imageStore: new(mockImageStore),
	}
	svc := NewCardService(m.cardRepo, m.qrcode, m.imageStore, discardLogger())

	return svc, m
}

// expectQRSuccess wires the full generate/store/persist happy path.
func (m *cardServiceMocks) expectQRSuccess() {
	m.qrcode.On("CardURL", mock.Anything).Return("https://cardlink.example.com/public-card/x")
	m.qrcode.On("GenerateCardQR", mock.Anything).Return([]byte{0x89, 0x50}, nil)
	m.imageStore.On("Store", mock.Anything, "qrcodes", mock.Anything, "image/png", mock.Anything).
		Return("https://cdn.cardlink.example.com/qrcodes/x.png", nil)
	m.cardRepo.On("UpdateQR", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
}

func TestCardService_CreateCard(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("defaults applied and QR attached", func(t *testing.T) {
		svc, m := newTestCardService(t)
		m.cardRepo.On("Create", ctx, mock.AnythingOfType("*entity.Card")).Return(nil)
		m.expectQRSuccess()

		card, err := svc.CreateCard(ctx, userID, usecase.CreateCardInput{})

		require.NoError(t, err)
		assert.Equal(t, "cardlink", card.CardTitle)
		assert.Equal(t, "black", card.CardColor)
		assert.Equal(t, "https://cardlink.example.com/public-card/x", card.QRCode)
		assert.NotEmpty(t, card.QRImage)
	})

	t.Run("personal info requires a phone number", func(t *testing.T) {
		svc, m := newTestCardService(t)

		_, err := svc.CreateCard(ctx, userID, usecase.CreateCardInput{
			PersonalInfo: &usecase.PersonalInfoInput{FirstName: "Rahim", Email: "r@x.co"},
		})

		assert.ErrorIs(t, err, domainerrors.ErrPhoneNumberRequired)
		m.cardRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("social links capped at the limit", func(t *testing.T) {
		svc, m := newTestCardService(t)
		m.cardRepo.On("Create", ctx, mock.AnythingOfType("*entity.Card")).Return(nil)
		m.expectQRSuccess()

		links := make([]entity.SocialLink, entity.MaxSocialLinks+3)
		for i := range links {
			links[i] = entity.SocialLink{Platform: "linkedin", URL: "https://example.com"}
		}

		card, err := svc.CreateCard(ctx, userID, usecase.CreateCardInput{SocialLinks: links})

		require.NoError(t, err)
		require.NotNil(t, card.SocialLinks)
		assert.Len(t, card.SocialLinks.Links, entity.MaxSocialLinks)
	})

	t.Run("QR failure does not fail the card", func(t *testing.T) {
		svc, m := newTestCardService(t)
		m.cardRepo.On("Create", ctx, mock.AnythingOfType("*entity.Card")).Return(nil)
		m.qrcode.On("CardURL", mock.Anything).Return("https://cardlink.example.com/public-card/x")
		m.qrcode.On("GenerateCardQR", mock.Anything).Return(nil, errors.New("encoder broke"))

		card, err := svc.CreateCard(ctx, userID, usecase.CreateCardInput{CardTitle: "Work"})

		require.NoError(t, err)
		assert.Empty(t, card.QRCode)
		m.cardRepo.AssertNotCalled(t, "UpdateQR", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("QR upload failure still persists the URL", func(t *testing.T) {
		svc, m := newTestCardService(t)
		m.cardRepo.On("Create", ctx, mock.AnythingOfType("*entity.Card")).Return(nil)
		m.qrcode.On("CardURL", mock.Anything).Return("https://cardlink.example.com/public-card/x")
		m.qrcode.On("GenerateCardQR", mock.Anything).Return([]byte{0x89}, nil)
		m.imageStore.On("Store", mock.Anything, "qrcodes", mock.Anything, "image/png", mock.Anything).
			Return("", errors.New("bucket offline"))
		m.cardRepo.On("UpdateQR", mock.Anything, mock.Anything, "https://cardlink.example.com/public-card/x", "").Return(nil)

		card, err := svc.CreateCard(ctx, userID, usecase.CreateCardInput{})

		require.NoError(t, err)
		assert.Equal(t, "https://cardlink.example.com/public-card/x", card.QRCode)
		assert.Empty(t, card.QRImage)
	})
}

func TestCardService_UpdateCard(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	cardID := uuid.New()

	t.Run("patch merges set fields", func(t *testing.T) {
		svc, m := newTestCardService(t)
		existing := &entity.Card{ID: cardID, UserID: userID, CardTitle: "Work", CardColor: "black", QRCode: "set"}
		m.cardRepo.On("FindByOwner", ctx, cardID, userID).Return(existing, nil)
		m.cardRepo.On("Update", ctx, mock.AnythingOfType("*entity.Card")).Return(nil)

		newColor := "navy"
		fav := true
		card, err := svc.UpdateCard(ctx, cardID, userID, usecase.UpdateCardInput{
			CardColor:  &newColor,
			IsFavorite: &fav,
		})

		require.NoError(t, err)
		assert.Equal(t, "Work", card.CardTitle)
		assert.Equal(t, "navy", card.CardColor)
		assert.True(t, card.IsFavorite)
	})

	t.Run("personal info update keeps existing phone", func(t *testing.T) {
		svc, m := newTestCardService(t)
		infoID := uuid.New()
		existing := &entity.Card{
			ID:           cardID,
			UserID:       userID,
			QRCode:       "set",
			PersonalInfo: &entity.PersonalInfo{ID: infoID, CardID: cardID, PhoneNumber: "+123"},
		}
		m.cardRepo.On("FindByOwner", ctx, cardID, userID).Return(existing, nil)
		m.cardRepo.On("Update", ctx, mock.AnythingOfType("*entity.Card")).Return(nil)
		m.cardRepo.On("UpsertPersonalInfo", ctx, mock.MatchedBy(func(info *entity.PersonalInfo) bool {
			return info.ID == infoID && info.PhoneNumber == "+123" && info.FirstName == "Rahim"
		})).Return(nil)

		card, err := svc.UpdateCard(ctx, cardID, userID, usecase.UpdateCardInput{
			PersonalInfo: &usecase.PersonalInfoInput{FirstName: "Rahim"},
		})

		require.NoError(t, err)
		assert.Equal(t, "Rahim", card.PersonalInfo.FirstName)
		m.cardRepo.AssertExpectations(t)
	})

	t.Run("first personal info still requires phone", func(t *testing.T) {
		svc, m := newTestCardService(t)
		existing := &entity.Card{ID: cardID, UserID: userID, QRCode: "set"}
		m.cardRepo.On("FindByOwner", ctx, cardID, userID).Return(existing, nil)
		m.cardRepo.On("Update", ctx, mock.AnythingOfType("*entity.Card")).Return(nil)

		_, err := svc.UpdateCard(ctx, cardID, userID, usecase.UpdateCardInput{
			PersonalInfo: &usecase.PersonalInfoInput{FirstName: "Rahim"},
		})

		assert.ErrorIs(t, err, domainerrors.ErrPhoneNumberRequired)
	})

	t.Run("social links replaced as a set", func(t *testing.T) {
		svc, m := newTestCardService(t)
		linksID := uuid.New()
		existing := &entity.Card{
			ID:          cardID,
			UserID:      userID,
			QRCode:      "set",
			SocialLinks: &entity.SocialLinks{ID: linksID, CardID: cardID, Links: []entity.SocialLink{{Platform: "x", URL: "https://x.com/a"}}},
		}
		m.cardRepo.On("FindByOwner", ctx, cardID, userID).Return(existing, nil)
		m.cardRepo.On("Update", ctx, mock.AnythingOfType("*entity.Card")).Return(nil)
		m.cardRepo.On("UpsertSocialLinks", ctx, mock.MatchedBy(func(links *entity.SocialLinks) bool {
			return links.ID == linksID && len(links.Links) == 1 && links.Links[0].Platform == "github"
		})).Return(nil)

		card, err := svc.UpdateCard(ctx, cardID, userID, usecase.UpdateCardInput{
			SocialLinks: &[]entity.SocialLink{{Platform: "github", URL: "https://github.com/a"}},
		})

		require.NoError(t, err)
		assert.Len(t, card.SocialLinks.Links, 1)
	})

	t.Run("missing QR regenerated on update", func(t *testing.T) {
		svc, m := newTestCardService(t)
		existing := &entity.Card{ID: cardID, UserID: userID}
		m.cardRepo.On("FindByOwner", ctx, cardID, userID).Return(existing, nil)
		m.cardRepo.On("Update", ctx, mock.AnythingOfType("*entity.Card")).Return(nil)
		m.expectQRSuccess()

		title := "Work"
		card, err := svc.UpdateCard(ctx, cardID, userID, usecase.UpdateCardInput{CardTitle: &title})

		require.NoError(t, err)
		assert.NotEmpty(t, card.QRCode)
	})

	t.Run("foreign card reads as not found", func(t *testing.T) {
		svc, m := newTestCardService(t)
		m.cardRepo.On("FindByOwner", ctx, cardID, userID).Return(nil, repository.ErrCardNotFound)

		_, err := svc.UpdateCard(ctx, cardID, userID, usecase.UpdateCardInput{})

		assert.ErrorIs(t, err, domainerrors.ErrCardNotOwned)
	})
}

func TestCardService_GetCard(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	cardID := uuid.New()

	svc, m := newTestCardService(t)
	m.cardRepo.On("FindByOwner", ctx, cardID, userID).Return(nil, repository.ErrCardNotFound)

	_, err := svc.GetCard(ctx, cardID, userID)

	assert.ErrorIs(t, err, domainerrors.ErrCardNotOwned)
}

func TestCardService_DeleteCard(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	cardID := uuid.New()

	t.Run("deletes an owned card", func(t *testing.T) {
		svc, m := newTestCardService(t)
		m.cardRepo.On("Delete", ctx, cardID, userID).Return(nil)

		assert.NoError(t, svc.DeleteCard(ctx, cardID, userID))
	})

	t.Run("foreign card reads as not found", func(t *testing.T) {
		svc, m := newTestCardService(t)
		m.cardRepo.On("Delete", ctx, cardID, userID).Return(repository.ErrCardNotFound)

		assert.ErrorIs(t, svc.DeleteCard(ctx, cardID, userID), domainerrors.ErrCardNotOwned)
	})
}
