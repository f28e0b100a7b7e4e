package handlers

import (
	"Reelhouse/internal/mapper"
	"Reelhouse/internal/services"
	"github.com/gofiber/fiber/v2"
	"net/http"
)

type FileHandler struct {
	lifecycle services.LifecycleService
	scripts   services.ScriptService
}

func NewFileHandler(lifecycle services.LifecycleService, scripts services.ScriptService) *FileHandler {
	return &FileHandler{lifecycle: lifecycle, scripts: scripts}
}

type filePathRequest struct {
	Path        string `json:"path"`
	BackupFirst bool   `json:"backup_first"`
	Count       int    `json:"count"`
}

func (h *FileHandler) parsePath(c *fiber.Ctx) (uint, *filePathRequest, error) {
	id, err := projectID(c)
	if err != nil {
		return 0, nil, badRequest(c, "invalid project ID")
	}
	var req filePathRequest
	if err := c.BodyParser(&req); err != nil {
		return 0, nil, badRequest(c, "invalid input")
	}
	if req.Path == "" {
		return 0, nil, badRequest(c, "path is required")
	}
	return id, &req, nil
}

// CreateVariation copies the active file at path into its history.
func (h *FileHandler) CreateVariation(c *fiber.Ctx) error {
	id, req, err := h.parsePath(c)
	if req == nil {
		return err
	}
	snapshot, err := h.lifecycle.CreateVariation(id, req.Path)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(http.StatusCreated).JSON(mapper.ToSnapshotGetDTO(snapshot))
}

// SetActive replaces the active file with the history file at path.
func (h *FileHandler) SetActive(c *fiber.Ctx) error {
	id, req, err := h.parsePath(c)
	if req == nil {
		return err
	}
	snapshot, err := h.lifecycle.SetActive(id, req.Path, req.BackupFirst)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(mapper.ToSnapshotGetDTO(snapshot))
}

func (h *FileHandler) WriteReferenceScript(c *fiber.Ctx) error {
	id, req, err := h.parsePath(c)
	if req == nil {
		return err
	}
	script, err := h.scripts.WriteReferenceScript(id, req.Path, req.Count)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(http.StatusCreated).JSON(map[string]interface{}{"script": script})
}

func (h *FileHandler) History(c *fiber.Ctx) error {
	id, err := projectID(c)
	if err != nil {
		return badRequest(c, "invalid project ID")
	}
	path := c.Query("path")
	if path == "" {
		return badRequest(c, "path is required")
	}
	entries, err := h.lifecycle.History(id, path)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(mapper.ToHistoryEntryDTOs(entries))
}

func (h *FileHandler) Diff(c *fiber.Ctx) error {
	id, err := projectID(c)
	if err != nil {
		return badRequest(c, "invalid project ID")
	}
	path := c.Query("path")
	if path == "" {
		return badRequest(c, "path is required")
	}
	diff, err := h.lifecycle.Diff(id, path)
	if err != nil {
		return errorResponse(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(diff)
}

// Resolve answers where a file of a category lives, without touching it.
func (h *FileHandler) Resolve(c *fiber.Ctx) error {
	id, err := projectID(c)
	if err != nil {
		return badRequest(c, "invalid project ID")
	}
	category := c.Query("category")
	file := c.Query("file")
	if category == "" || file == "" {
		return badRequest(c, "category and file are required")
	}
	path, err := h.lifecycle.ResolveFile(id, category, c.Query("folder"), file, c.QueryBool("history"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(map[string]interface{}{"path": path})
}

func (h *FileHandler) SearchSnapshots(c *fiber.Ctx) error {
	filter := c.Query("filter")
	order := c.Query("order")
	limit := c.QueryInt("limit", 100)
	offset := c.QueryInt("offset", 0)

	snapshots, err := h.lifecycle.SearchSnapshots(filter, order, limit, offset)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(mapper.ToSnapshotGetDTOs(snapshots))
}
