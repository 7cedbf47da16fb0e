package domain

import "time"

// NoticeKind classifies a transient notice shown to the operator.
type NoticeKind string

const (
	NoticeValidation   NoticeKind = "VALIDATION"
	NoticeSearch       NoticeKind = "SEARCH"
	NoticePricing      NoticeKind = "PRICING"
	NoticeConfirmation NoticeKind = "CONFIRMATION"
	NoticeUpload       NoticeKind = "UPLOAD"
	NoticeGeocoding    NoticeKind = "GEOCODING"
	NoticeSuccess      NoticeKind = "SUCCESS"
	NoticeError        NoticeKind = "ERROR"
)

// Notice is a dismissable message attached to a wizard session.
type Notice struct {
	ID        string     `json:"id"`
	Kind      NoticeKind `json:"kind"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	CreatedAt time.Time  `json:"createdAt"`
}
