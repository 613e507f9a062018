package worker

import (
	"github.com/opsdesk/helpdesk-service/internal/service"
)

// StartActivityWorker registers the activity event handlers.
func StartActivityWorker(activityService *service.ActivityService) {
	if activityService == nil {
		return
	}
	activityService.RegisterHandlers()
}
