package audit

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type AuditController struct {
	Service AuditService
}

func NewAuditController(service AuditService) *AuditController {
	return &AuditController{Service: service}
}

// ListLogs godoc
// @Summary List audit entries
// @Tags audit
// @Produce json
// @Param module query string false "Collection name"
// @Param record_id query string false "Record id"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} map[string][]models.AuditLog
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/audit-logs [get]
func (ctrl *AuditController) ListLogs(c *fiber.Ctx) error {
	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "20"), 10, 64)

	logs, err := ctrl.Service.ListLogs(c.UserContext(), c.Query("module"), c.Query("record_id"), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"logs": logs})
}
