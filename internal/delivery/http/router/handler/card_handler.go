package handler

import (
	"log/slog"
	"net/http"

	"cardlink/internal/delivery/http/response"
	"cardlink/internal/domain/entity"
	"cardlink/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CardHandler holds dependencies for card management handlers.
type CardHandler struct {
	uc     usecase.CardUsecase
	logger *slog.Logger
}

// NewCardHandler is the constructor for CardHandler, injected by Fx.
func NewCardHandler(uc usecase.CardUsecase, logger *slog.Logger) *CardHandler {
	return &CardHandler{
		uc:     uc,
		logger: logger,
	}
}

type personalInfoPayload struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	JobTitle    string `json:"jobTitle"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Company     string `json:"company"`
	Image       string `json:"image"`
	Logo        string `json:"logo"`
	Note        string `json:"note"`
	Banner      string `json:"banner"`
	ProfileImg  string `json:"profileImg"`
}

func (p *personalInfoPayload) toInput() *usecase.PersonalInfoInput {
	if p == nil {
		return nil
	}

	return &usecase.PersonalInfoInput{
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		JobTitle:    p.JobTitle,
		PhoneNumber: p.PhoneNumber,
		Email:       p.Email,
		Company:     p.Company,
		Image:       p.Image,
		Logo:        p.Logo,
		Note:        p.Note,
		Banner:      p.Banner,
		ProfileImg:  p.ProfileImg,
	}
}

type createCardRequest struct {
	CardTitle    string               `json:"cardTitle"`
	CardColor    string               `json:"cardColor"`
	Logo         string               `json:"logo"`
	Profile      string               `json:"profile"`
	Cover        string               `json:"cover"`
	IsFavorite   bool                 `json:"isFavorite"`
	PersonalInfo *personalInfoPayload `json:"personalInfo"`
	SocialLinks  []entity.SocialLink  `json:"socialLinks"`
}

// Create handles the card creation request.
func (h *CardHandler) Create(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req createCardRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid card input")
	}

	card, err := h.uc.CreateCard(c.Request().Context(), userID, usecase.CreateCardInput{
		CardTitle:    req.CardTitle,
		CardColor:    req.CardColor,
		Logo:         req.Logo,
		Profile:      req.Profile,
		Cover:        req.Cover,
		IsFavorite:   req.IsFavorite,
		PersonalInfo: req.PersonalInfo.toInput(),
		SocialLinks:  req.SocialLinks,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, card, "Card created successfully")
}

// List handles the card listing request. A read failure degrades to an empty
// list so the client's card wallet still renders.
func (h *CardHandler) List(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	cards, err := h.uc.ListCards(c.Request().Context(), userID)
	if err != nil {
		h.logger.ErrorContext(c.Request().Context(), "card listing failed, returning empty list",
			slog.String("user_id", userID.String()),
			slog.Any("error", err))
		cards = []*entity.Card{}
	}
	if cards == nil {
		cards = []*entity.Card{}
	}

	return response.Success(c, http.StatusOK, cards, "Cards retrieved successfully")
}

type updateCardRequest struct {
	CardTitle    *string              `json:"cardTitle"`
	CardColor    *string              `json:"cardColor"`
	Logo         *string              `json:"logo"`
	Profile      *string              `json:"profile"`
	Cover        *string              `json:"cover"`
	IsFavorite   *bool                `json:"isFavorite"`
	PersonalInfo *personalInfoPayload `json:"personalInfo"`
	SocialLinks  *[]entity.SocialLink `json:"socialLinks"`
}

// Update handles the card patch request.
func (h *CardHandler) Update(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	cardID, err := pathUUID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_CARD_ID", "Invalid card id")
	}

	var req updateCardRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid card input")
	}

	card, err := h.uc.UpdateCard(c.Request().Context(), cardID, userID, usecase.UpdateCardInput{
		CardTitle:    req.CardTitle,
		CardColor:    req.CardColor,
		Logo:         req.Logo,
		Profile:      req.Profile,
		Cover:        req.Cover,
		IsFavorite:   req.IsFavorite,
		PersonalInfo: req.PersonalInfo.toInput(),
		SocialLinks:  req.SocialLinks,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, card, "Card updated successfully")
}

// Delete handles the card deletion request.
func (h *CardHandler) Delete(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	cardID, err := pathUUID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_CARD_ID", "Invalid card id")
	}

	if err := h.uc.DeleteCard(c.Request().Context(), cardID, userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"id": cardID.String()}, "Card deleted successfully")
}
