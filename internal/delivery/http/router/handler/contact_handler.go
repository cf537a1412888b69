package handler

import (
	"log/slog"
	"net/http"

	"cardlink/internal/delivery/http/response"
	"cardlink/internal/domain/entity"
	"cardlink/internal/domain/service"
	"cardlink/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ContactHandler holds dependencies for contact directory handlers.
type ContactHandler struct {
	uc       usecase.ContactUsecase
	resolver service.LocationResolver
	logger   *slog.Logger
}

// NewContactHandler is the constructor for ContactHandler, injected by Fx.
func NewContactHandler(uc usecase.ContactUsecase, resolver service.LocationResolver, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{
		uc:       uc,
		resolver: resolver,
		logger:   logger,
	}
}

type saveContactRequest struct {
	FirstName  string           `json:"firstName"`
	LastName   string           `json:"lastName"`
	Phone      string           `json:"phone"`
	Email      string           `json:"email"`
	Company    string           `json:"company"`
	JobTitle   string           `json:"jobTitle"`
	Logo       string           `json:"logo"`
	Note       string           `json:"note"`
	ProfileImg string           `json:"profileImg"`
	Location   *locationPayload `json:"location"`
}

type saveContactData struct {
	Contact      *entity.Contact `json:"contact"`
	AlreadySaved bool            `json:"alreadySaved"`
}

// Save handles saving a scanned card into the caller's contact list. The
// capture location is layered: client-reported first, then IP resolution,
// then the configured fallback.
func (h *ContactHandler) Save(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	cardID, err := pathUUID(c, "cardId")
	if err != nil {
		return response.BadRequest(c, "INVALID_CARD_ID", "Invalid card id")
	}

	var req saveContactRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid contact input")
	}

	ctx := c.Request().Context()
	location := h.resolver.Resolve(ctx, c.RealIP(), service.LocationHints{
		Timezone:       c.Request().Header.Get(HeaderXTimezone),
		AcceptLanguage: c.Request().Header.Get("Accept-Language"),
	})
	if req.Location != nil {
		location = req.Location.toGeoLocation().Merge(location)
	}

	result, err := h.uc.SaveContact(ctx, userID, cardID, usecase.SaveContactInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		Email:      req.Email,
		Company:    req.Company,
		JobTitle:   req.JobTitle,
		Logo:       req.Logo,
		Note:       req.Note,
		ProfileImg: req.ProfileImg,
		Location:   location,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	statusCode := http.StatusCreated
	message := "Contact saved successfully"
	if result.AlreadySaved {
		statusCode = http.StatusOK
		message = "Contact already saved"
	}

	return response.Success(c, statusCode, saveContactData{
		Contact:      result.Contact,
		AlreadySaved: result.AlreadySaved,
	}, message)
}

type createContactRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Company   string `json:"company"`
	JobTitle  string `json:"jobTitle"`
	Note      string `json:"note"`
	WhereMet  string `json:"whereMet"`
}

// Create handles the manual contact creation request.
func (h *ContactHandler) Create(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req createContactRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid contact input")
	}

	contact, err := h.uc.CreateContact(c.Request().Context(), userID, usecase.CreateContactInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
		Company:   req.Company,
		JobTitle:  req.JobTitle,
		Note:      req.Note,
		WhereMet:  req.WhereMet,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, contact, "Contact created successfully")
}

// List handles the contact listing request. A read failure degrades to an
// empty list so the client's directory still renders.
func (h *ContactHandler) List(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	contacts, err := h.uc.ListContacts(c.Request().Context(), userID)
	if err != nil {
		h.logger.ErrorContext(c.Request().Context(), "contact listing failed, returning empty list",
			slog.String("user_id", userID.String()),
			slog.Any("error", err))
		contacts = []*entity.Contact{}
	}
	if contacts == nil {
		contacts = []*entity.Contact{}
	}

	return response.Success(c, http.StatusOK, contacts, "Contacts retrieved successfully")
}

type updateContactRequest struct {
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	Phone      *string `json:"phone"`
	Email      *string `json:"email"`
	Company    *string `json:"company"`
	JobTitle   *string `json:"jobTitle"`
	Logo       *string `json:"logo"`
	Note       *string `json:"note"`
	ProfileImg *string `json:"profileImg"`
}

// Update handles the contact patch request.
func (h *ContactHandler) Update(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	contactID, err := pathUUID(c, "contactId")
	if err != nil {
		return response.BadRequest(c, "INVALID_CONTACT_ID", "Invalid contact id")
	}

	var req updateContactRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid contact input")
	}

	contact, err := h.uc.UpdateContact(c.Request().Context(), contactID, userID, usecase.UpdateContactInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		Email:      req.Email,
		Company:    req.Company,
		JobTitle:   req.JobTitle,
		Logo:       req.Logo,
		Note:       req.Note,
		ProfileImg: req.ProfileImg,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, contact, "Contact updated successfully")
}

// Delete handles the contact deletion request. A missing contact still
// returns 200 with success=false in the payload.
func (h *ContactHandler) Delete(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	contactID, err := pathUUID(c, "contactId")
	if err != nil {
		return response.BadRequest(c, "INVALID_CONTACT_ID", "Invalid contact id")
	}

	result, err := h.uc.DeleteContact(c.Request().Context(), contactID, userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, result, result.Message)
}

type shareContactRequest struct {
	OwnerCardID   string           `json:"ownerCardId"`
	VisitorCardID string           `json:"visitorCardId"`
	ScanLocation  *locationPayload `json:"scanLocation"`
}

type shareContactData struct {
	Share        *entity.VisitorContactShare `json:"share"`
	AlreadySaved bool                        `json:"alreadySaved"`
}

// Share handles the visitor contact share request.
func (h *ContactHandler) Share(c echo.Context) error {
	visitorID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req shareContactRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid share input")
	}

	ownerCardID, err := uuid.Parse(req.OwnerCardID)
	if err != nil {
		return response.BadRequest(c, "INVALID_CARD_ID", "Invalid ownerCardId")
	}
	visitorCardID, err := uuid.Parse(req.VisitorCardID)
	if err != nil {
		return response.BadRequest(c, "INVALID_CARD_ID", "Invalid visitorCardId")
	}

	input := usecase.ShareVisitorContactInput{
		OwnerCardID:   ownerCardID,
		VisitorCardID: visitorCardID,
	}
	if req.ScanLocation != nil {
		location := req.ScanLocation.toGeoLocation()
		input.ScanLocation = &location
	}

	result, err := h.uc.ShareVisitorContact(c.Request().Context(), visitorID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	statusCode := http.StatusCreated
	message := "Contact shared successfully"
	if result.AlreadySaved {
		statusCode = http.StatusOK
		message = "Contact already shared"
	}

	return response.Success(c, statusCode, shareContactData{
		Share:        result.Share,
		AlreadySaved: result.AlreadySaved,
	}, message)
}
