// Package api exposes the SNS webhook. It decodes HTTP deliveries, hands
// them to the notification service and maps the outcome onto a status code.
// Successful deliveries are always acknowledged with an empty 200 response,
// whatever later happens to the announced objects.
package api
