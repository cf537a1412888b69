package impl

import (
	"context"
	"testing"

	"cardlink/internal/domain/entity"
	domainerrors "cardlink/internal/domain/errors"
	"cardlink/internal/domain/repository"
	"cardlink/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type contactServiceMocks struct {
	contactRepo *mockContactRepo
	cardRepo    *mockCardRepo
	shareRepo   *mockShareRepo
	txContacts  *mockContactRepo
	txShares    *mockShareRepo
}

func newTestContactService(t *testing.T) (usecase.ContactUsecase, *contactServiceMocks) {
	t.Helper()

	m := &contactServiceMocks{
		contactRepo: new(mockContactRepo),
		cardRepo:    new(mockCardRepo),
		shareRepo:   new(mockShareRepo),
		txContacts:  new(mockContactRepo),
		txShares:    new(mockShareRepo),
	}
	txManager := &fakeTxManager{factory: &fakeRepoFactory{
		contactRepo: m.txContacts,
		shareRepo:   m.txShares,
	}}
	svc := NewContactService(m.contactRepo, m.cardRepo, m.shareRepo, txManager, discardLogger())

	return svc, m
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  string
		valid bool
	}{
		{name: "lowercased and trimmed", raw: "  John@Example.COM ", want: "john@example.com", valid: true},
		{name: "empty is valid and empty", raw: "   ", want: "", valid: true},
		{name: "missing at sign", raw: "john.example.com", want: "", valid: false},
		{name: "missing tld dot", raw: "john@example", want: "", valid: false},
		{name: "inner whitespace", raw: "jo hn@example.com", want: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, valid := normalizeEmail(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.valid, valid)
		})
	}
}

func TestResolveIdentifiers(t *testing.T) {
	t.Run("phone keeps invalid email best effort", func(t *testing.T) {
		phone, email, err := resolveIdentifiers(" +49123456 ", "not-an-email")
		require.NoError(t, err)
		assert.Equal(t, "+49123456", phone)
		assert.Empty(t, email)
	})

	t.Run("invalid email without phone fails", func(t *testing.T) {
		_, _, err := resolveIdentifiers("", "not-an-email")
		assert.ErrorIs(t, err, domainerrors.ErrInvalidEmailFormat)
	})

	t.Run("neither identifier fails", func(t *testing.T) {
		_, _, err := resolveIdentifiers("  ", "")
		assert.ErrorIs(t, err, domainerrors.ErrIdentifierRequired)
	})

	t.Run("email alone suffices", func(t *testing.T) {
		phone, email, err := resolveIdentifiers("", "Jane@Example.com")
		require.NoError(t, err)
		assert.Empty(t, phone)
		assert.Equal(t, "jane@example.com", email)
	})
}

func TestContactService_SaveContact(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	cardID := uuid.New()

	t.Run("creates a new contact", func(t *testing.T) {
		svc, m := newTestContactService(t)
		m.cardRepo.On("FindByID", ctx, cardID).Return(&entity.Card{ID: cardID}, nil)
		m.contactRepo.On("FindByIdentifier", ctx, repository.ContactIdentifierQuery{
			UserID: userID,
			CardID: cardID,
			Phone:  "+8801712345678",
			Email:  "rahim@example.com",
		}).Return(nil, repository.ErrContactNotFound)
		m.contactRepo.On("Create", ctx, mock.AnythingOfType("*entity.Contact")).Return(nil)

		result, err := svc.SaveContact(ctx, userID, cardID, usecase.SaveContactInput{
			FirstName: " Rahim ",
			Phone:     "+8801712345678",
			Email:     " Rahim@Example.com ",
		})

		require.NoError(t, err)
		assert.False(t, result.AlreadySaved)
		assert.Equal(t, "Rahim", result.Contact.FirstName)
		assert.Equal(t, "rahim@example.com", result.Contact.Email)
		require.NotNil(t, result.Contact.CardID)
		assert.Equal(t, cardID, *result.Contact.CardID)
		m.contactRepo.AssertExpectations(t)
	})

	t.Run("duplicate identifier is idempotent", func(t *testing.T) {
		svc, m := newTestContactService(t)
		existing := &entity.Contact{ID: uuid.New(), UserID: userID, Phone: "+8801712345678"}
		m.cardRepo.On("FindByID", ctx, cardID).Return(&entity.Card{ID: cardID}, nil)
		m.contactRepo.On("FindByIdentifier", ctx, mock.Anything).Return(existing, nil)

		result, err := svc.SaveContact(ctx, userID, cardID, usecase.SaveContactInput{Phone: "+8801712345678"})

		require.NoError(t, err)
		assert.True(t, result.AlreadySaved)
		assert.Same(t, existing, result.Contact)
		m.contactRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown card fails", func(t *testing.T) {
		svc, m := newTestContactService(t)
		m.cardRepo.On("FindByID", ctx, cardID).Return(nil, repository.ErrCardNotFound)

		_, err := svc.SaveContact(ctx, userID, cardID, usecase.SaveContactInput{Phone: "123"})

		assert.ErrorIs(t, err, domainerrors.ErrCardNotFound)
	})

	t.Run("no identifier fails", func(t *testing.T) {
		svc, m := newTestContactService(t)
		m.cardRepo.On("FindByID", ctx, cardID).Return(&entity.Card{ID: cardID}, nil)

		_, err := svc.SaveContact(ctx, userID, cardID, usecase.SaveContactInput{FirstName: "Rahim"})

		assert.ErrorIs(t, err, domainerrors.ErrIdentifierRequired)
	})

	t.Run("invalid email dropped when phone present", func(t *testing.T) {
		svc, m := newTestContactService(t)
		m.cardRepo.On("FindByID", ctx, cardID).Return(&entity.Card{ID: cardID}, nil)
		m.contactRepo.On("FindByIdentifier", ctx, repository.ContactIdentifierQuery{
			UserID: userID,
			CardID: cardID,
			Phone:  "+123",
			Email:  "",
		}).Return(nil, repository.ErrContactNotFound)
		m.contactRepo.On("Create", ctx, mock.AnythingOfType("*entity.Contact")).Return(nil)

		result, err := svc.SaveContact(ctx, userID, cardID, usecase.SaveContactInput{
			Phone: "+123",
			Email: "broken-email",
		})

		require.NoError(t, err)
		assert.Empty(t, result.Contact.Email)
	})
}

func TestContactService_CreateContact(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("name required", func(t *testing.T) {
		svc, _ := newTestContactService(t)

		_, err := svc.CreateContact(ctx, userID, usecase.CreateContactInput{Phone: "+123"})

		assert.ErrorIs(t, err, domainerrors.ErrContactNameRequired)
	})

	t.Run("where met folded into note", func(t *testing.T) {
		svc, m := newTestContactService(t)
		m.contactRepo.On("Create", ctx, mock.AnythingOfType("*entity.Contact")).Return(nil)

		contact, err := svc.CreateContact(ctx, userID, usecase.CreateContactInput{
			FirstName: "Karim",
			Phone:     "+123",
			Note:      "Investor",
			WhereMet:  "Dhaka Dev Summit",
		})

		require.NoError(t, err)
		assert.Equal(t, "Investor\nMet at: Dhaka Dev Summit", contact.Note)
		assert.Nil(t, contact.CardID)
	})

	t.Run("where met alone becomes the note", func(t *testing.T) {
		svc, m := newTestContactService(t)
		m.contactRepo.On("Create", ctx, mock.AnythingOfType("*entity.Contact")).Return(nil)

		contact, err := svc.CreateContact(ctx, userID, usecase.CreateContactInput{
			LastName: "Khan",
			Email:    "khan@example.com",
			WhereMet: "Airport lounge",
		})

		require.NoError(t, err)
		assert.Equal(t, "Met at: Airport lounge", contact.Note)
	})
}

func TestContactService_UpdateContact(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	contactID := uuid.New()

	t.Run("empty patch is a no-op", func(t *testing.T) {
		svc, m := newTestContactService(t)
		existing := &entity.Contact{ID: contactID, UserID: userID, FirstName: "Old"}
		m.contactRepo.On("FindByOwner", ctx, contactID, userID).Return(existing, nil)

		contact, err := svc.UpdateContact(ctx, contactID, userID, usecase.UpdateContactInput{})

		require.NoError(t, err)
		assert.Same(t, existing, contact)
		m.contactRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("patch merges set fields only", func(t *testing.T) {
		svc, m := newTestContactService(t)
		existing := &entity.Contact{ID: contactID, UserID: userID, FirstName: "Old", Phone: "+123", Company: "Acme"}
		m.contactRepo.On("FindByOwner", ctx, contactID, userID).Return(existing, nil)
		m.contactRepo.On("Update", ctx, mock.AnythingOfType("*entity.Contact")).Return(nil)

		newName := " New "
		contact, err := svc.UpdateContact(ctx, contactID, userID, usecase.UpdateContactInput{FirstName: &newName})

		require.NoError(t, err)
		assert.Equal(t, "New", contact.FirstName)
		assert.Equal(t, "Acme", contact.Company)
	})

	t.Run("clearing email keeps phone contact reachable", func(t *testing.T) {
		svc, m := newTestContactService(t)
		existing := &entity.Contact{ID: contactID, UserID: userID, Phone: "+123", Email: "a@b.co"}
		m.contactRepo.On("FindByOwner", ctx, contactID, userID).Return(existing, nil)
		m.contactRepo.On("Update", ctx, mock.AnythingOfType("*entity.Contact")).Return(nil)

		empty := ""
		contact, err := svc.UpdateContact(ctx, contactID, userID, usecase.UpdateContactInput{Email: &empty})

		require.NoError(t, err)
		assert.Empty(t, contact.Email)
	})

	t.Run("invalid email without phone fails", func(t *testing.T) {
		svc, m := newTestContactService(t)
		existing := &entity.Contact{ID: contactID, UserID: userID, Email: "a@b.co"}
		m.contactRepo.On("FindByOwner", ctx, contactID, userID).Return(existing, nil)

		bad := "not-an-email"
		_, err := svc.UpdateContact(ctx, contactID, userID, usecase.UpdateContactInput{Email: &bad})

		assert.ErrorIs(t, err, domainerrors.ErrInvalidEmailFormat)
	})

	t.Run("missing contact fails", func(t *testing.T) {
		svc, m := newTestContactService(t)
		m.contactRepo.On("FindByOwner", ctx, contactID, userID).Return(nil, repository.ErrContactNotFound)

		_, err := svc.UpdateContact(ctx, contactID, userID, usecase.UpdateContactInput{})

		assert.ErrorIs(t, err, domainerrors.ErrContactNotFound)
	})
}

func TestContactService_DeleteContact(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	contactID := uuid.New()

	t.Run("existing contact deleted", func(t *testing.T) {
		svc, m := newTestContactService(t)
		m.contactRepo.On("Delete", ctx, contactID, userID).Return(nil)

		result, err := svc.DeleteContact(ctx, contactID, userID)

		require.NoError(t, err)
		assert.True(t, result.Success)
	})

	t.Run("missing contact is a soft failure", func(t *testing.T) {
		svc, m := newTestContactService(t)
		m.contactRepo.On("Delete", ctx, contactID, userID).Return(repository.ErrContactNotFound)

		result, err := svc.DeleteContact(ctx, contactID, userID)

		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "Contact already deleted or not found", result.Message)
	})
}

func TestContactService_ShareVisitorContact(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	visitorID := uuid.New()
	ownerCardID := uuid.New()
	visitorCardID := uuid.New()

	ownerCard := &entity.Card{ID: ownerCardID, UserID: ownerID}
	visitorCard := &entity.Card{
		ID:     visitorCardID,
		UserID: visitorID,
		PersonalInfo: &entity.PersonalInfo{
			FirstName:   "Nabila",
			PhoneNumber: "+8801811111111",
			Email:       "nabila@example.com",
		},
	}

	input := usecase.ShareVisitorContactInput{OwnerCardID: ownerCardID, VisitorCardID: visitorCardID}

	t.Run("first share creates share and owner contact", func(t *testing.T) {
		svc, m := newTestContactService(t)
		m.cardRepo.On("FindByID", ctx, ownerCardID).Return(ownerCard, nil)
		m.cardRepo.On("FindByIDWithRelations", ctx, visitorCardID).Return(visitorCard, nil)
		m.shareRepo.On("FindApproved", ctx, ownerCardID, visitorCardID).Return(nil, repository.ErrShareNotFound)
		m.txShares.On("Create", ctx, mock.AnythingOfType("*entity.VisitorContactShare")).Return(nil)
		m.txContacts.On("FindBySourceCard", ctx, ownerID, visitorCardID).Return(nil, repository.ErrContactNotFound)
		m.txContacts.On("Create", ctx, mock.AnythingOfType("*entity.Contact")).Return(nil)

		result, err := svc.ShareVisitorContact(ctx, visitorID, input)

		require.NoError(t, err)
		assert.False(t, result.AlreadySaved)
		assert.Equal(t, entity.ShareStatusApproved, result.Share.Status)
		assert.Equal(t, ownerID, result.Share.OwnerID)
		m.txContacts.AssertExpectations(t)
		m.txShares.AssertExpectations(t)
	})

	t.Run("repeat share short-circuits and repairs the contact", func(t *testing.T) {
		svc, m := newTestContactService(t)
		approved := &entity.VisitorContactShare{ID: uuid.New(), Status: entity.ShareStatusApproved}
		m.cardRepo.On("FindByID", ctx, ownerCardID).Return(ownerCard, nil)
		m.cardRepo.On("FindByIDWithRelations", ctx, visitorCardID).Return(visitorCard, nil)
		m.shareRepo.On("FindApproved", ctx, ownerCardID, visitorCardID).Return(approved, nil)
		m.contactRepo.On("FindBySourceCard", ctx, ownerID, visitorCardID).Return(nil, repository.ErrContactNotFound)
		m.contactRepo.On("Create", ctx, mock.AnythingOfType("*entity.Contact")).Return(nil)

		result, err := svc.ShareVisitorContact(ctx, visitorID, input)

		require.NoError(t, err)
		assert.True(t, result.AlreadySaved)
		assert.Same(t, approved, result.Share)
		m.txShares.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		m.contactRepo.AssertExpectations(t)
	})

	t.Run("repeat share refreshes an existing contact", func(t *testing.T) {
		svc, m := newTestContactService(t)
		approved := &entity.VisitorContactShare{ID: uuid.New(), Status: entity.ShareStatusApproved}
		existing := &entity.Contact{ID: uuid.New(), UserID: ownerID, FirstName: "Stale"}
		m.cardRepo.On("FindByID", ctx, ownerCardID).Return(ownerCard, nil)
		m.cardRepo.On("FindByIDWithRelations", ctx, visitorCardID).Return(visitorCard, nil)
		m.shareRepo.On("FindApproved", ctx, ownerCardID, visitorCardID).Return(approved, nil)
		m.contactRepo.On("FindBySourceCard", ctx, ownerID, visitorCardID).Return(existing, nil)
		m.contactRepo.On("Update", ctx, mock.MatchedBy(func(c *entity.Contact) bool {
			return c.ID == existing.ID && c.FirstName == "Nabila"
		})).Return(nil)

		result, err := svc.ShareVisitorContact(ctx, visitorID, input)

		require.NoError(t, err)
		assert.True(t, result.AlreadySaved)
		m.contactRepo.AssertExpectations(t)
	})

	t.Run("concurrent first share folds into idempotent result", func(t *testing.T) {
		svc, m := newTestContactService(t)
		winner := &entity.VisitorContactShare{ID: uuid.New(), Status: entity.ShareStatusApproved}
		m.cardRepo.On("FindByID", ctx, ownerCardID).Return(ownerCard, nil)
		m.cardRepo.On("FindByIDWithRelations", ctx, visitorCardID).Return(visitorCard, nil)
		m.shareRepo.On("FindApproved", ctx, ownerCardID, visitorCardID).Return(nil, repository.ErrShareNotFound).Once()
		m.txShares.On("Create", ctx, mock.AnythingOfType("*entity.VisitorContactShare")).Return(repository.ErrDuplicateShare)
		m.shareRepo.On("FindApproved", ctx, ownerCardID, visitorCardID).Return(winner, nil).Once()

		result, err := svc.ShareVisitorContact(ctx, visitorID, input)

		require.NoError(t, err)
		assert.True(t, result.AlreadySaved)
		assert.Same(t, winner, result.Share)
	})

	t.Run("visitor must own the shared card", func(t *testing.T) {
		svc, m := newTestContactService(t)
		foreignCard := &entity.Card{ID: visitorCardID, UserID: uuid.New()}
		m.cardRepo.On("FindByID", ctx, ownerCardID).Return(ownerCard, nil)
		m.cardRepo.On("FindByIDWithRelations", ctx, visitorCardID).Return(foreignCard, nil)

		_, err := svc.ShareVisitorContact(ctx, visitorID, input)

		assert.ErrorIs(t, err, domainerrors.ErrShareNotOwnCard)
	})

	t.Run("unknown scanned card", func(t *testing.T) {
		svc, m := newTestContactService(t)
		m.cardRepo.On("FindByID", ctx, ownerCardID).Return(nil, repository.ErrCardNotFound)

		_, err := svc.ShareVisitorContact(ctx, visitorID, input)

		assert.ErrorIs(t, err, domainerrors.ErrScannedCardNotFound)
	})

	t.Run("unknown visitor card", func(t *testing.T) {
		svc, m := newTestContactService(t)
		m.cardRepo.On("FindByID", ctx, ownerCardID).Return(ownerCard, nil)
		m.cardRepo.On("FindByIDWithRelations", ctx, visitorCardID).Return(nil, repository.ErrCardNotFound)

		_, err := svc.ShareVisitorContact(ctx, visitorID, input)

		assert.ErrorIs(t, err, domainerrors.ErrVisitorCardNotFound)
	})

	t.Run("missing card ids are rejected", func(t *testing.T) {
		svc, _ := newTestContactService(t)

		_, err := svc.ShareVisitorContact(ctx, visitorID, usecase.ShareVisitorContactInput{OwnerCardID: ownerCardID})

		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	})
}

func TestDeriveContactFromCard(t *testing.T) {
	ownerID := uuid.New()
	lat := 23.7808
	location := entity.GeoLocation{Latitude: &lat, City: "Dhaka", Country: "Bangladesh"}

	t.Run("personal info preferred over card images", func(t *testing.T) {
		card := &entity.Card{
			ID:      uuid.New(),
			Logo:    "card-logo.png",
			Profile: "card-profile.png",
			PersonalInfo: &entity.PersonalInfo{
				FirstName:  "Nabila",
				Logo:       "info-logo.png",
				ProfileImg: "info-profile.png",
			},
		}

		contact := deriveContactFromCard(ownerID, card, location)

		assert.Equal(t, "info-logo.png", contact.Logo)
		assert.Equal(t, "info-profile.png", contact.ProfileImg)
		assert.Equal(t, "Dhaka", contact.City)
		require.NotNil(t, contact.Latitude)
		assert.Equal(t, lat, *contact.Latitude)
	})

	t.Run("falls back to image then card profile", func(t *testing.T) {
		card := &entity.Card{
			ID:           uuid.New(),
			Profile:      "card-profile.png",
			PersonalInfo: &entity.PersonalInfo{Image: "info-image.png"},
		}
		contact := deriveContactFromCard(ownerID, card, entity.GeoLocation{})
		assert.Equal(t, "info-image.png", contact.ProfileImg)

		card.PersonalInfo = nil
		contact = deriveContactFromCard(ownerID, card, entity.GeoLocation{})
		assert.Equal(t, "card-profile.png", contact.ProfileImg)
	})
}
