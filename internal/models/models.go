// Package models defines the core data structures for HealthBot.
//
// It includes the conversation timeline types, the scripted content types, and
// the API response envelope shared across modules.
package models

import (
	"errors"
	"time"
)

// Sender identifies which side of the conversation produced a message.
type Sender string

const (
	// SenderUser marks a message typed or tapped by the user.
	SenderUser Sender = "user"
	// SenderBot marks a scripted or generated bot message.
	SenderBot Sender = "bot"
)

// Answer is the user's response to a yes/no prompt.
type Answer string

const (
	// AnswerYes requests the detailed information block.
	AnswerYes Answer = "yes"
	// AnswerNo declines further detail.
	AnswerNo Answer = "no"
)

// IsValidAnswer checks if the given answer is supported.
func IsValidAnswer(a Answer) bool {
	return a == AnswerYes || a == AnswerNo
}

// Validation constants for input validation
const (
	// MaxFreeTextLength defines the maximum allowed length for a free-text message
	MaxFreeTextLength = 4096
)

// Error variables for better error handling and testability
var (
	ErrEmptyMessage       = errors.New("message text cannot be empty")
	ErrMessageTooLong     = errors.New("message text exceeds maximum length")
	ErrSessionBusy        = errors.New("a reply is already in flight for this session")
	ErrSessionClosed      = errors.New("session has been closed")
	ErrSessionNotFound    = errors.New("session not found")
	ErrNoActiveCategory   = errors.New("no category has been selected")
	ErrUnknownCategory    = errors.New("unknown category key")
	ErrUnknownSubCategory = errors.New("unknown sub-category for the active category")
	ErrUnknownMessage     = errors.New("no message with the given id")
	ErrInvalidAnswer      = errors.New("answer must be yes or no")
	ErrEmptyReply         = errors.New("remote endpoint returned an empty reply")
)

// YesNoPrompt marks a bot message that currently offers a binary yes/no
// continuation. Subject is the sub-category label the offer refers to; it is
// resolved against the detailed-info table when the user answers yes. A message
// whose Prompt is nil is plain, so a subject cannot exist without a pending
// prompt.
type YesNoPrompt struct {
	Subject string `json:"subject"`
}

// Message is one entry in a session's timeline. ID, Text, Sender and Timestamp
// are immutable once appended; only Prompt may be cleared in place when the
// user answers it.
type Message struct {
	ID        int64        `json:"id"`
	Text      string       `json:"text"`
	Sender    Sender       `json:"sender"`
	Timestamp time.Time    `json:"timestamp"`
	Prompt    *YesNoPrompt `json:"prompt,omitempty"`
}

// Category is a top-level scripted topic.
type Category struct {
	Key        string `json:"key"`
	Label      string `json:"label"`
	IntroReply string `json:"intro_reply"`
}

// SubCategory is a specific concern nested under a Category. BotReply is the
// short empathetic response offering more detail.
type SubCategory struct {
	Label    string `json:"label"`
	BotReply string `json:"bot_reply"`
}

// APIStatus represents the status of an API response.
type APIStatus string

const (
	// APIStatusOK indicates an API request completed successfully.
	APIStatusOK APIStatus = "ok"
	// APIStatusError indicates an API request failed with an error.
	APIStatusError APIStatus = "error"
	// APIStatusBusy indicates the session rejected the request because a reply
	// is still outstanding.
	APIStatusBusy APIStatus = "busy"
)

// APIResponse represents a standard API response with a status and optional data.
type APIResponse struct {
	Status  string      `json:"status"`            // status of the API response
	Message string      `json:"message,omitempty"` // optional message for error responses or additional info
	Result  interface{} `json:"result,omitempty"`  // optional result data for successful responses
}

// APIResponseBuilder provides a fluent interface for building API responses.
type APIResponseBuilder struct {
	response APIResponse
}

// NewAPIResponseBuilder creates a new APIResponseBuilder instance.
func NewAPIResponseBuilder() *APIResponseBuilder {
	return &APIResponseBuilder{
		response: APIResponse{},
	}
}

// WithStatus sets the status of the API response.
func (b *APIResponseBuilder) WithStatus(status APIStatus) *APIResponseBuilder {
	b.response.Status = string(status)
	return b
}

// WithMessage sets the message of the API response.
func (b *APIResponseBuilder) WithMessage(message string) *APIResponseBuilder {
	b.response.Message = message
	return b
}

// WithResult sets the result data of the API response.
func (b *APIResponseBuilder) WithResult(result interface{}) *APIResponseBuilder {
	b.response.Result = result
	return b
}

// Build constructs and returns the final APIResponse.
func (b *APIResponseBuilder) Build() APIResponse {
	return b.response
}

// Convenience functions for common response patterns

// Success creates a successful API response with optional result data.
func Success(result interface{}) APIResponse {
	return NewAPIResponseBuilder().
		WithStatus(APIStatusOK).
		WithResult(result).
		Build()
}

// SuccessWithMessage creates a successful API response with a message and optional result data.
func SuccessWithMessage(message string, result interface{}) APIResponse {
	return NewAPIResponseBuilder().
		WithStatus(APIStatusOK).
		WithMessage(message).
		WithResult(result).
		Build()
}

// Error creates an error API response with a message.
func Error(message string) APIResponse {
	return NewAPIResponseBuilder().
		WithStatus(APIStatusError).
		WithMessage(message).
		Build()
}

// Busy creates a busy API response with a message.
func Busy(message string) APIResponse {
	return NewAPIResponseBuilder().
		WithStatus(APIStatusBusy).
		WithMessage(message).
		Build()
}
