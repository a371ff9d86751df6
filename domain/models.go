package domain

import "time"

// MediaKind identifies the type of an attached media reference.
type MediaKind string

const (
	MediaPhoto     MediaKind = "photo"
	MediaVideo     MediaKind = "video"
	MediaDocument  MediaKind = "document"
	MediaAnimation MediaKind = "animation"
)

// MediaRef is an opaque handle to media attached to a message. It is passed
// through to the target channel unchanged; only the caption is rewritten.
type MediaRef struct {
	Kind   MediaKind
	FileID string
}

// InboundMessage is a message observed on one of the monitored source channels.
type InboundMessage struct {
	ChatID int64
	Text   string
	Media  *MediaRef
}

// OutboundMessage is the rewritten message to publish to the target channel.
type OutboundMessage struct {
	Text  string
	Media *MediaRef
}

// PublishStatus is the explicit result variant of a publish attempt.
type PublishStatus int

const (
	PublishOK PublishStatus = iota
	PublishRateLimited
	PublishFailed
)

// PublishResult reports the outcome of a single publish call. RetryAfter is
// only meaningful when Status is PublishRateLimited; Err only when it is
// PublishFailed.
type PublishResult struct {
	Status     PublishStatus
	RetryAfter time.Duration
	Err        error
}

// ForwardOutcome is the terminal state of the per-message pipeline.
type ForwardOutcome int

const (
	// OutcomeDropped: no retailer links, or every link was already posted.
	OutcomeDropped ForwardOutcome = iota
	// OutcomePublished: at least one new link was forwarded to the target.
	OutcomePublished
	// OutcomeFailed: an unrecoverable error; the message is abandoned.
	OutcomeFailed
)

func (o ForwardOutcome) String() string {
	switch o {
	case OutcomeDropped:
		return "dropped"
	case OutcomePublished:
		return "published"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}
