package model

import (
	"fmt"
	"time"
)

// RequestType describes what kind of access is being requested for a dataset.
type RequestType string

// Request type constants.
const (
	RequestAccess       RequestType = "access"
	RequestDownload     RequestType = "download"
	RequestAPI          RequestType = "api"
	RequestConsultation RequestType = "consultation"
)

// RequestPriority indicates how urgently an access request should be handled.
type RequestPriority string

// Request priority constants.
const (
	PriorityStandard RequestPriority = "standard"
	PriorityUrgent   RequestPriority = "urgent"
	PriorityCritical RequestPriority = "critical"
)

// CartItem is a pending access request for a single dataset. The cart holds
// at most one item per dataset ID; AddedAt is assigned at insertion.
type CartItem struct {
	AddedAt       time.Time
	Dataset       Dataset
	RequestType   RequestType
	Priority      RequestPriority
	Justification string
}

// Validate checks the item before it enters the cart.
func (i *CartItem) Validate() error {
	if i.Dataset.ID == "" {
		return fmt.Errorf("cart item requires a dataset")
	}

	switch i.RequestType {
	case RequestAccess, RequestDownload, RequestAPI, RequestConsultation:
	default:
		return fmt.Errorf("invalid request type %q", i.RequestType)
	}

	switch i.Priority {
	case PriorityStandard, PriorityUrgent, PriorityCritical:
	default:
		return fmt.Errorf("invalid priority %q", i.Priority)
	}

	return nil
}

// AccessRequest is a submitted cart item, stamped with a request ID on its
// way to the backend.
type AccessRequest struct {
	SubmittedAt   time.Time
	ID            string
	DatasetID     string
	DatasetName   string
	RequestType   RequestType
	Priority      RequestPriority
	Justification string
}
