package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/fittrack-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fittrack-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/fittrack-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/fittrack-backend/internal/session"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

type ProfileHandler struct {
	profileService *services.ProfileService
}

func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Show handles GET /information-board. Profile is null until the first store.
func (h *ProfileHandler) Show(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	profile, err := h.profileService.Get(c.UserContext(), userID)
	if err != nil {
		return internalError(c, "load profile", err)
	}

	return c.JSON(dto.InformationBoardResponse{
		Profile: toProfileResponse(profile),
		Options: h.profileService.Options(),
	})
}

// Store handles POST /information-board-store.
func (h *ProfileHandler) Store(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	profile, err := h.profileService.Upsert(c.UserContext(), userID, services.ProfileInput{
		Birthdate: req.Birthdate,
		Gender:    req.Gender,
		HeightCM:  req.Height,
		WeightKG:  req.Weight,
		Level:     req.Level,
		Sport:     req.Sport,
		Frequency: req.TrainingFrequency(),
	})
	if err != nil {
		if verrs, ok := services.AsValidation(err); ok {
			return validationFailed(c, verrs)
		}
		return internalError(c, "store profile", err)
	}

	if isFormPost(c) {
		return c.Redirect("/information-board", fiber.StatusSeeOther)
	}

	return c.JSON(fiber.Map{"profile": toProfileResponse(profile)})
}

func toProfileResponse(profile *models.UserProfile) *dto.ProfileResponse {
	if profile == nil {
		return nil
	}
	return &dto.ProfileResponse{
		ID:        profile.ID,
		Birthdate: formatDate(profile.Birthdate),
		Gender:    profile.Gender,
		HeightCM:  profile.HeightCM,
		WeightKG:  profile.WeightKG,
		Level:     profile.Level,
		Sport:     profile.Sport,
		Frequency: profile.Frequency,
		UpdatedAt: profile.UpdatedAt,
	}
}

func formatDate(d datatypes.Date) string {
	return time.Time(d).Format(services.DateLayout)
}
