package main

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"go-jobapply-automation/internal/listing"
	"go-jobapply-automation/internal/stats"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

func newRouter(src stats.Source) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Job application filter API is running!",
			"status":  "healthy",
		})
	})

	r.GET("/ignore-terms", func(c *gin.Context) {
		scope, limit, ok := parseQuery(c)
		if !ok {
			return
		}
		rows, err := stats.New(src, scope).Top(c.Request.Context(), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if rows == nil {
			rows = []stats.TermCount{}
		}
		c.JSON(http.StatusOK, gin.H{"scope": scope, "terms": rows})
	})

	// The same rows as the CLI's fixed-width table.
	r.GET("/ignore-terms/table", func(c *gin.Context) {
		scope, limit, ok := parseQuery(c)
		if !ok {
			return
		}
		rows, err := stats.New(src, scope).Top(c.Request.Context(), limit)
		if err != nil {
			c.String(http.StatusInternalServerError, err.Error())
			return
		}
		var sb strings.Builder
		if err := stats.Render(&sb, tableTitle(scope), rows); err != nil {
			c.String(http.StatusInternalServerError, err.Error())
			return
		}
		c.String(http.StatusOK, sb.String())
	})

	return r
}

func parseQuery(c *gin.Context) (listing.Scope, int, bool) {
	scope, err := listing.ParseScope(c.DefaultQuery("scope", string(listing.ScopeFull)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", 0, false
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 || limit > maxLimit {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
		return "", 0, false
	}
	return scope, limit, true
}

func tableTitle(scope listing.Scope) string {
	if scope == listing.ScopeBrief {
		return "Brief Job Listing Ignore Terms"
	}
	return "Job Listing Ignore Terms"
}
