package events

const (
	StreamName   = "AGRO_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

func SubjectDroughtReading(monitorID string) string { return "agro.drought." + monitorID + ".reading" }
func SubjectDroughtAlert(monitorID string) string   { return "agro.drought." + monitorID + ".alert" }
func SubjectDroughtCleared(monitorID string) string { return "agro.drought." + monitorID + ".cleared" }

func SubjectMonitorCreated(monitorID string) string { return "agro.monitor." + monitorID + ".created" }
func SubjectMonitorUpdated(monitorID string) string { return "agro.monitor." + monitorID + ".updated" }
func SubjectMonitorPaused(monitorID string) string  { return "agro.monitor." + monitorID + ".paused" }
func SubjectMonitorDeleted(monitorID string) string { return "agro.monitor." + monitorID + ".deleted" }

func SubjectRecommendationCreated(id string) string { return "agro.recommendation." + id + ".created" }
