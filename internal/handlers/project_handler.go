package handlers

import (
	"Reelhouse/internal/layout"
	"Reelhouse/internal/mapper"
	"Reelhouse/internal/services"
	"github.com/gofiber/fiber/v2"
	"net/http"
)

type ProjectHandler struct {
	service services.ProjectService
}

func NewProjectHandler(service services.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

type scenePlanRequest struct {
	Scenes string `json:"scenes"`
	Shots  string `json:"shots"`
}

func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
		scenePlanRequest
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid input")
	}
	if req.Name == "" {
		return badRequest(c, "name is required")
	}
	plan, err := layout.ParseSceneShotMap(req.Scenes, req.Shots)
	if err != nil {
		return badRequest(c, err.Error())
	}

	result, err := h.service.CreateProject(req.Name, plan)
	if err != nil {
		if result != nil && result.Project != nil {
			return c.Status(http.StatusMultiStatus).JSON(mapper.ToProvisionDTO(result, err))
		}
		return errorResponse(c, err)
	}
	return c.Status(http.StatusCreated).JSON(mapper.ToProvisionDTO(result, nil))
}

func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	projects, err := h.service.GetProjects()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(map[string]interface{}{"error": "could not list projects"})
	}
	return c.JSON(mapper.ToProjectGetDTOs(projects))
}

// DiscoverProjects registers project trees found under the storage path.
func (h *ProjectHandler) DiscoverProjects(c *fiber.Ctx) error {
	projects, err := h.service.DiscoverProjects()
	if err != nil {
		if len(projects) > 0 {
			return c.Status(http.StatusMultiStatus).JSON(map[string]interface{}{
				"projects": mapper.ToProjectGetDTOs(projects),
				"error":    err.Error(),
			})
		}
		return errorResponse(c, err)
	}
	return c.JSON(mapper.ToProjectGetDTOs(projects))
}

func (h *ProjectHandler) GetProjectByID(c *fiber.Ctx) error {
	id, err := projectID(c)
	if err != nil {
		return badRequest(c, "invalid project ID")
	}
	project, err := h.service.GetProjectByID(id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(mapper.ToProjectGetDTO(project))
}

// GetScenes reads the scene/shot plan from the project tree.
func (h *ProjectHandler) GetScenes(c *fiber.Ctx) error {
	id, err := projectID(c)
	if err != nil {
		return badRequest(c, "invalid project ID")
	}
	plan, err := h.service.SceneShotMap(id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(map[string]interface{}{
		"scenes":      plan,
		"total_shots": plan.TotalShots(),
	})
}

func (h *ProjectHandler) AddScenes(c *fiber.Ctx) error {
	id, err := projectID(c)
	if err != nil {
		return badRequest(c, "invalid project ID")
	}
	var req scenePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid input")
	}
	plan, err := layout.ParseSceneShotMap(req.Scenes, req.Shots)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if len(plan) == 0 {
		return badRequest(c, "scenes are required")
	}

	result, err := h.service.AddScenes(id, plan)
	if err != nil {
		if result != nil {
			return c.Status(http.StatusMultiStatus).JSON(mapper.ToProvisionDTO(result, err))
		}
		return errorResponse(c, err)
	}
	return c.JSON(mapper.ToProvisionDTO(result, nil))
}

func (h *ProjectHandler) Rescan(c *fiber.Ctx) error {
	id, err := projectID(c)
	if err != nil {
		return badRequest(c, "invalid project ID")
	}
	homes, err := h.service.Rescan(id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(mapper.ToCategoryHomeDTOs(homes))
}

func (h *ProjectHandler) Categories(c *fiber.Ctx) error {
	id, err := projectID(c)
	if err != nil {
		return badRequest(c, "invalid project ID")
	}
	homes, err := h.service.Categories(id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(mapper.ToCategoryHomeDTOs(homes))
}

func (h *ProjectHandler) Repair(c *fiber.Ctx) error {
	id, err := projectID(c)
	if err != nil {
		return badRequest(c, "invalid project ID")
	}
	created, err := h.service.RepairProject(id)
	if created == nil {
		created = []string{}
	}
	if err != nil {
		if len(created) > 0 {
			return c.Status(http.StatusMultiStatus).JSON(map[string]interface{}{"created": created, "error": err.Error()})
		}
		return errorResponse(c, err)
	}
	return c.JSON(map[string]interface{}{"created": created})
}

func (h *ProjectHandler) CloseSession(c *fiber.Ctx) error {
	id, err := projectID(c)
	if err != nil {
		return badRequest(c, "invalid project ID")
	}
	h.service.CloseSession(id)
	return c.SendStatus(http.StatusNoContent)
}
