package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// queryYear reads the academic year from the ?year= query, defaulting to
// the current calendar year. Out-of-range values fall back to the default
// rather than erroring, matching the year picker on the dashboard.
func queryYear(c *gin.Context) int {
	year := time.Now().Year()
	if raw := c.Query("year"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 2000 && parsed <= 2100 {
			year = parsed
		}
	}
	return year
}
