package testutils

import (
	"encoding/json"
	"strings"
)

// Sample access log records in the current and legacy layouts.
const (
	CurrentRecord = `2015-05-13T23:39:43.945958Z my-loadbalancer 192.168.131.39:2817 10.0.0.1:80 0.000086 0.001048 0.001337 200 200 0 57 "GET https://www.example.com:443/ HTTP/1.1" "curl/7.38.0" DHE-RSA-AES128-SHA TLSv1.2`
	LegacyRecord  = `2014-02-15T23:39:43.945958Z my-loadbalancer 10.0.0.1:443 10.0.0.2:80 0.000073 0.001048 0.000057 404 404 0 - "GET /foo HTTP/1.1"`
)

// AccessLogBody joins records into a newline-terminated object body.
func AccessLogBody(records ...string) string {
	if len(records) == 0 {
		return ""
	}
	return strings.Join(records, "\n") + "\n"
}

// S3Object names an object in an S3 event notification.
type S3Object struct {
	Bucket string
	Key    string
}

// S3EventMessage builds the JSON S3 event carried in an SNS Message field.
func S3EventMessage(objects ...S3Object) string {
	type record struct {
		EventSource string `json:"eventSource"`
		EventName   string `json:"eventName"`
		S3          struct {
			Bucket struct {
				Name string `json:"name"`
			} `json:"bucket"`
			Object struct {
				Key string `json:"key"`
			} `json:"object"`
		} `json:"s3"`
	}

	records := make([]record, 0, len(objects))
	for _, o := range objects {
		var r record
		r.EventSource = "aws:s3"
		r.EventName = "ObjectCreated:Put"
		r.S3.Bucket.Name = o.Bucket
		r.S3.Object.Key = o.Key
		records = append(records, r)
	}
	return mustJSON(map[string]interface{}{"Records": records})
}

// SNSEnvelope builds an SNS HTTP delivery body of the given type.
func SNSEnvelope(messageType, message, subscribeURL string) string {
	env := map[string]string{
		"Type":      messageType,
		"MessageId": "165545c9-2a5c-472c-8df2-7ff2be2b3b1b",
		"TopicArn":  "arn:aws:sns:us-east-1:123456789012:elb-logs",
		"Message":   message,
		"Timestamp": "2015-05-13T23:40:00.000Z",
	}
	if subscribeURL != "" {
		env["SubscribeURL"] = subscribeURL
		env["Token"] = "2336412f37fb687f5d51e6e241d09c805a5a57b30d712f794cc5f6a988666d92768dd60a747ba6f3beb71854e285d6ad02428b09ceece29417f1f02d609c582afbacc99c583a916b9981dd2728f4ae6fdb82efd087cc3b7849e05798d2d2785c03b0879594eeac82c01f235d0e717736"
	}
	return mustJSON(env)
}

func mustJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
