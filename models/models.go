package models

import (
	"fmt"
	"time"
)

// Link represents a cloaked tracking link
type Link struct {
	ID             string    `json:"link_id"`
	DestinationURL string    `json:"destination_url"`
	CloakedURL     string    `json:"cloaked_url"`
	Clicks         int64     `json:"clicks"`
	CreatedAt      time.Time `json:"created_at"`
}

// Geolocation carries browser-reported coordinates.
// All fields are optional and independently nullable.
type Geolocation struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
}

// CaptureEvent represents a single recorded visit with device and
// location metadata. LinkID is not required to reference an existing
// Link; orphaned events are tolerated.
type CaptureEvent struct {
	ID         int64        `json:"id"`
	LinkID     string       `json:"link_id"`
	IPAddress  string       `json:"ip_address"`
	UserAgent  string       `json:"user_agent"`
	Location   *Geolocation `json:"location,omitempty"`
	City       string       `json:"city,omitempty"`
	Country    string       `json:"country,omitempty"`
	Browser    string       `json:"browser,omitempty"`
	OS         string       `json:"os,omitempty"`
	CapturedAt time.Time    `json:"captured_at"`
}

// Error types

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// StorageError wraps a failure of the underlying durable store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
