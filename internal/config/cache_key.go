package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// AdminSessionKey returns the cache key holding an admin's active session JTI.
func (r *CacheKeyStruct) AdminSessionKey(adminID int) string {
	return fmt.Sprintf("login:admin:%d", adminID)
}

// ImportBatchKey returns the cache key for a staged CSV import batch.
func (r *CacheKeyStruct) ImportBatchKey(batchID string) string {
	return fmt.Sprintf("import:batch:%s", batchID)
}

// DashboardSummaryKey returns the cache key for the dashboard KPI snapshot of a year.
func (r *CacheKeyStruct) DashboardSummaryKey(year int) string {
	return fmt.Sprintf("dashboard:summary:%d", year)
}

// NotificationChannel returns the Redis PubSub channel for live notification fan-out.
func (r *CacheKeyStruct) NotificationChannel() string {
	return "notifications:stream"
}

var CacheKey = NewCacheKeyStruct()
