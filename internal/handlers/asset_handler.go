package handlers

import (
	"Reelhouse/internal/mapper"
	"Reelhouse/internal/services"
	"github.com/gofiber/fiber/v2"
	"net/http"
)

type AssetHandler struct {
	service services.AssetService
}

func NewAssetHandler(service services.AssetService) *AssetHandler {
	return &AssetHandler{service: service}
}

func (h *AssetHandler) CreateFolders(c *fiber.Ctx) error {
	id, err := projectID(c)
	if err != nil {
		return badRequest(c, "invalid project ID")
	}
	var req struct {
		Kind  string   `json:"kind"`
		Names []string `json:"names"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid input")
	}
	if req.Kind == "" {
		return badRequest(c, "kind is required")
	}
	if len(req.Names) == 0 {
		return badRequest(c, "names are required")
	}

	result, err := h.service.CreateFolders(id, services.FolderKind(req.Kind), req.Names)
	if err != nil {
		if result != nil && len(result.Folders) > 0 {
			return c.Status(http.StatusMultiStatus).JSON(mapper.ToFolderResultDTO(result, err))
		}
		return errorResponse(c, err)
	}
	return c.Status(http.StatusCreated).JSON(mapper.ToFolderResultDTO(result, nil))
}

func (h *AssetHandler) ListFolderKinds(c *fiber.Ctx) error {
	return c.JSON(services.FolderKinds())
}
