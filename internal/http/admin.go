package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dndsfx/soundboard/internal/tasks"
)

// AdminController exposes operational endpoints for signed-in users.
type AdminController struct {
	taskClient *tasks.Client
	syncer     tasks.CatalogSyncer
}

func NewAdminController(taskClient *tasks.Client, syncer tasks.CatalogSyncer) *AdminController {
	return &AdminController{taskClient: taskClient, syncer: syncer}
}

// TriggerCatalogSync queues a catalog sync pass. When the task queue is
// disabled the sync runs inline and the response carries its summary.
// POST /api/admin/sync
func (ac *AdminController) TriggerCatalogSync(c *gin.Context) {
	if ac.taskClient != nil {
		ids, err := ac.taskClient.Add(tasks.CatalogSyncTask{}).Save()
		if err != nil {
			respondInternalError(c, err, "enqueue catalog sync")
			return
		}
		var taskID string
		if len(ids) > 0 {
			taskID = ids[0]
		}
		c.JSON(http.StatusAccepted, gin.H{"message": "Catalog sync queued", "task_id": taskID})
		return
	}

	if ac.syncer == nil {
		respondError(c, http.StatusServiceUnavailable, "Catalog sync is not configured")
		return
	}
	result, err := ac.syncer.Sync(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "run catalog sync")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "Catalog sync complete",
		"added":       result.SoundsAdded,
		"updated":     result.SoundsUpdated,
		"deactivated": result.SoundsDeactivated,
	})
}
