package cache

import "strings"

const (
	GlobalKeyPrefix = "examcraft"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// PaperExportKey names one rendered document of a paper set. fingerprint
// identifies the question snapshot it was rendered from.
func PaperExportKey(paperID, variant, format, fingerprint string) string {
	return GenerateCacheKey("export", "paper", paperID, variant, format, fingerprint)
}

// DashboardKey caches the stats shown to one teacher.
func DashboardKey(teacherID string) string {
	return GenerateCacheKey("stats", "dashboard", teacherID)
}
