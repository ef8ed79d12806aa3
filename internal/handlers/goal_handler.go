package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/fittrack-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fittrack-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/fittrack-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/fittrack-backend/internal/session"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type GoalHandler struct {
	goalService *services.GoalService
}

func NewGoalHandler(goalService *services.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// List handles GET /goals.
func (h *GoalHandler) List(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	goals, err := h.goalService.List(c.UserContext(), userID)
	if err != nil {
		return internalError(c, "list goals", err)
	}

	resp := dto.GoalListResponse{
		Goals: make([]dto.GoalResponse, 0, len(goals)),
		Count: len(goals),
		Today: h.goalService.Today().Format(services.DateLayout),
	}
	for i := range goals {
		resp.Goals = append(resp.Goals, toGoalResponse(&goals[i].Goal, goals[i].Progress))
	}

	return c.JSON(resp)
}

// Store handles POST /goals-store.
func (h *GoalHandler) Store(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	goal, err := h.goalService.Create(c.UserContext(), userID, services.CreateGoalInput{
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		ActualWeightKG: req.ActualWeight,
		TargetWeightKG: req.TargetWeight,
	})
	if err != nil {
		if verrs, ok := services.AsValidation(err); ok {
			return validationFailed(c, verrs)
		}
		return internalError(c, "create goal", err)
	}

	if isFormPost(c) {
		return c.Redirect("/goals", fiber.StatusSeeOther)
	}

	progress := services.EvaluateGoal(goal, h.goalService.Today())
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"goal": toGoalResponse(goal, progress)})
}

// Delete handles DELETE /goals-delete/:id.
func (h *GoalHandler) Delete(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	goalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid goal ID")
	}

	if err := h.goalService.Delete(c.UserContext(), userID, goalID); err != nil {
		switch {
		case errors.Is(err, services.ErrGoalNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Goal not found",
			})
		case errors.Is(err, services.ErrNotOwner):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "You cannot delete this goal",
			})
		}
		return internalError(c, "delete goal", err)
	}

	return c.JSON(fiber.Map{"message": "Goal deleted"})
}

func toGoalResponse(goal *models.Goal, progress services.GoalProgress) dto.GoalResponse {
	return dto.GoalResponse{
		ID:              goal.ID,
		StartDate:       formatDate(goal.StartDate),
		EndDate:         formatDate(goal.EndDate),
		ActualWeightKG:  goal.ActualWeightKG,
		TargetWeightKG:  goal.TargetWeightKG,
		IsSuccess:       goal.IsSuccess,
		CreatedAt:       goal.CreatedAt,
		Status:          string(progress.Status),
		StatusLabel:     progress.Label,
		ProgressPercent: progress.ProgressPercent,
		DaysRemaining:   progress.DaysRemaining,
		DurationDays:    progress.DurationDays,
		WeightToLoseKG:  progress.WeightToLoseKG,
	}
}
