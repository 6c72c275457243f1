package email

import (
	"time"
)

// NoSubject is used when a message carries no Subject header.
const NoSubject = "(geen onderwerp)"

// Message is the decoded content of an .eml file.
type Message struct {
	From        string
	To          []string
	Subject     string
	Body        string
	Date        time.Time
	Attachments []Attachment
}

// Attachment describes a non-text MIME part. Content is not retained.
type Attachment struct {
	Filename    string
	ContentType string
	Size        int
}

// WorkflowType classifies an incoming message for the inbox import.
type WorkflowType string

const (
	WorkflowOrder        WorkflowType = "order"
	WorkflowTask         WorkflowType = "task"
	WorkflowNotification WorkflowType = "notification"
)
