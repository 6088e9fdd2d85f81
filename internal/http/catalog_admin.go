package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookstore/internal/catalog"
	"github.com/mrlokans/bookstore/internal/tasks"
)

// CatalogAdminController triggers catalog refreshes. With a task
// client the refresh runs in the background with retries; without one
// it runs inline on the request.
type CatalogAdminController struct {
	catalog    *catalog.Service
	taskClient *tasks.Client
}

func NewCatalogAdminController(svc *catalog.Service, taskClient *tasks.Client) *CatalogAdminController {
	return &CatalogAdminController{
		catalog:    svc,
		taskClient: taskClient,
	}
}

// Refresh re-fetches the remote catalog into the local cache.
func (controller *CatalogAdminController) Refresh(c *gin.Context) {
	if controller.taskClient != nil {
		ids, err := controller.taskClient.Add(tasks.RefreshCatalogTask{Reason: "manual"}).Save()
		if err != nil {
			respondInternalError(c, err, "enqueue catalog refresh")
			return
		}
		respondAccepted(c, "catalog refresh enqueued", gin.H{"task_ids": ids})
		return
	}

	if err := controller.catalog.Refresh(c.Request.Context()); err != nil {
		if errors.Is(err, catalog.ErrNoRemote) {
			respondError(c, http.StatusConflict, err.Error())
			return
		}
		respondError(c, http.StatusBadGateway, "catalog refresh failed: "+err.Error())
		return
	}
	respondSuccess(c, "catalog refreshed")
}
