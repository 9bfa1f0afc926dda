package worker

import (
	"github.com/spec-kit/request-desk/internal/service"
)

// StartActivityWorker registers the activity event handlers.
func StartActivityWorker(activityService *service.ActivityService) {
	if activityService == nil {
		return
	}
	activityService.RegisterHandlers()
}
