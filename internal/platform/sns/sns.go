package sns

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Headers set by SNS on every HTTP delivery.
const (
	MessageTypeHeader = "x-amz-sns-message-type"
	MessageIDHeader   = "x-amz-sns-message-id"
)

// Delivery types.
const (
	TypeSubscriptionConfirmation = "SubscriptionConfirmation"
	TypeUnsubscribeConfirmation  = "UnsubscribeConfirmation"
	TypeNotification             = "Notification"
)

var (
	// ErrInvalidEnvelope is returned for a body that is not an SNS delivery.
	ErrInvalidEnvelope = errors.New("invalid sns envelope")

	// ErrInvalidMessage is returned for a notification whose Message is not an S3 event.
	ErrInvalidMessage = errors.New("invalid s3 event message")
)

var validate = validator.New()

// Envelope is the JSON body of an SNS HTTP delivery.
type Envelope struct {
	Type             string `json:"Type" validate:"required"`
	MessageID        string `json:"MessageId"`
	TopicArn         string `json:"TopicArn"`
	Subject          string `json:"Subject,omitempty"`
	Message          string `json:"Message"`
	Timestamp        string `json:"Timestamp"`
	Token            string `json:"Token,omitempty"`
	SubscribeURL     string `json:"SubscribeURL,omitempty" validate:"omitempty,url"`
	UnsubscribeURL   string `json:"UnsubscribeURL,omitempty" validate:"omitempty,url"`
	SignatureVersion string `json:"SignatureVersion,omitempty"`
	Signature        string `json:"Signature,omitempty"`
	SigningCertURL   string `json:"SigningCertURL,omitempty" validate:"omitempty,url"`
}

// ParseEnvelope decodes an SNS delivery body. The envelope must name its
// Type, and any URLs it carries must be absolute.
func ParseEnvelope(body []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	if err := validate.Struct(env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	return env, nil
}

// ObjectRef identifies one created object.
type ObjectRef struct {
	Bucket string
	// Key is URL-encoded as delivered by S3.
	Key  string
	Size int64
}

type s3Event struct {
	Records []struct {
		EventSource string `json:"eventSource"`
		EventName   string `json:"eventName"`
		S3          struct {
			Bucket struct {
				Name string `json:"name"`
			} `json:"bucket"`
			Object struct {
				Key  string `json:"key"`
				Size int64  `json:"size"`
			} `json:"object"`
		} `json:"s3"`
	} `json:"Records"`
}

// ParseS3Event extracts the objects listed in an S3 event notification, in
// order. A message without records, such as the s3:TestEvent sent when a
// notification is configured, yields no objects.
func ParseS3Event(message string) ([]ObjectRef, error) {
	var event s3Event
	if err := json.Unmarshal([]byte(message), &event); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}

	objects := make([]ObjectRef, 0, len(event.Records))
	for i, r := range event.Records {
		if r.S3.Bucket.Name == "" || r.S3.Object.Key == "" {
			return nil, fmt.Errorf("%w: record %d has no bucket or key", ErrInvalidMessage, i)
		}
		objects = append(objects, ObjectRef{
			Bucket: r.S3.Bucket.Name,
			Key:    r.S3.Object.Key,
			Size:   r.S3.Object.Size,
		})
	}
	return objects, nil
}
