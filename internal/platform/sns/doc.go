// Package sns decodes Amazon SNS HTTP deliveries carrying S3 event
// notifications and confirms topic subscriptions.
//
// Message signatures are not verified.
package sns
