package domain

import "errors"

type TrackingStatus string

const (
	TrackingPending    TrackingStatus = "Pending"
	TrackingProcessing TrackingStatus = "Processing"
	TrackingShipped    TrackingStatus = "Shipped"
	TrackingDelivered  TrackingStatus = "Delivered"
	TrackingCancelled  TrackingStatus = "Cancelled"
)

// trackingChain is the forward-only fulfilment chain. Cancelled sits outside
// the chain and is reached only through cancellation.
var trackingChain = []TrackingStatus{
	TrackingPending,
	TrackingProcessing,
	TrackingShipped,
	TrackingDelivered,
}

var (
	ErrUnknownTrackingStatus   = errors.New("invalid tracking status")
	ErrInvalidStatusTransition = errors.New("cannot revert to a previous tracking status")
	ErrOrderAlreadyCancelled   = errors.New("order is already cancelled")
	ErrOrderNotCancellable     = errors.New("cannot cancel order that is shipped or delivered")
	ErrOrderNotDeletable       = errors.New("cannot delete a delivered order")
)

func trackingIndex(s TrackingStatus) int {
	for i, status := range trackingChain {
		if status == s {
			return i
		}
	}
	return -1
}

// ValidTrackingStatus reports whether s is a member of the fulfilment chain.
// Cancelled is deliberately excluded: it is set via cancellation, never via a
// tracking update.
func ValidTrackingStatus(s TrackingStatus) bool {
	return trackingIndex(s) >= 0
}

// CanAdvanceTo checks whether the order may move to next. Transitions are
// forward-only along the chain, except that Pending is a wildcard origin: a
// fresh order may jump directly to any chain status.
func (o *Order) CanAdvanceTo(next TrackingStatus) error {
	if o.IsCancelled {
		return ErrOrderAlreadyCancelled
	}
	newIdx := trackingIndex(next)
	if newIdx < 0 {
		return ErrUnknownTrackingStatus
	}
	if o.TrackingStatus == TrackingPending {
		return nil
	}
	if newIdx <= trackingIndex(o.TrackingStatus) {
		return ErrInvalidStatusTransition
	}
	return nil
}

// CanCancel checks cancellation eligibility: only Pending and Processing
// orders can be cancelled, and only once.
func (o *Order) CanCancel() error {
	if o.IsCancelled {
		return ErrOrderAlreadyCancelled
	}
	if o.TrackingStatus == TrackingShipped || o.TrackingStatus == TrackingDelivered {
		return ErrOrderNotCancellable
	}
	return nil
}

// CanSoftDelete checks soft-delete eligibility; delivered orders are kept.
func (o *Order) CanSoftDelete() error {
	if o.TrackingStatus == TrackingDelivered {
		return ErrOrderNotDeletable
	}
	return nil
}
