package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle aggregates every route handler so route registration takes a
// single dependency.
type HandlerBundle struct {
	// Availability endpoints.
	CheckAvailabilityHandler gin.HandlerFunc

	// Subscription endpoints.
	CreateSubscriptionHandler gin.HandlerFunc
	ListSubscriptionsHandler  gin.HandlerFunc
	DeleteSubscriptionHandler gin.HandlerFunc

	// Monitor endpoints.
	RunMonitorHandler gin.HandlerFunc
}
