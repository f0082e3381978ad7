package cache

import "context"

// HealthCheck reports the Redis connection state.
func (s *CacheService) HealthCheck(ctx context.Context) map[string]string {
	status := make(map[string]string)

	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		status["redis"] = "unhealthy: " + err.Error()
	} else {
		status["redis"] = "healthy"
	}

	return status
}
