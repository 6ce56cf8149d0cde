package recommender

import (
	"context"

	"fairTune/domain"
)

// EligibilityChecker decides if a track is allowed to be served to a
// listener on a given station (content policy, licensing, profile
// settings).
type EligibilityChecker interface {
	IsEligible(ctx context.Context, listenerID uint, track domain.Track, station string) (bool, error)
}

// NoopEligibilityChecker is the default implementation that allows everything.
type NoopEligibilityChecker struct{}

func (NoopEligibilityChecker) IsEligible(ctx context.Context, listenerID uint, track domain.Track, station string) (bool, error) {
	return true, nil
}

// ListenerDirectory is the slice of the listener store the content
// checker needs.
type ListenerDirectory interface {
	FindByID(ctx context.Context, id uint) (domain.Listener, error)
}

// CleanContentChecker hides explicit tracks from listeners who opted
// into clean-only playback.
type CleanContentChecker struct {
	listeners ListenerDirectory
}

func NewCleanContentChecker(listeners ListenerDirectory) *CleanContentChecker {
	return &CleanContentChecker{listeners: listeners}
}

func (c *CleanContentChecker) IsEligible(ctx context.Context, listenerID uint, track domain.Track, station string) (bool, error) {
	if !track.Explicit {
		return true, nil
	}

	listener, err := c.listeners.FindByID(ctx, listenerID)
	if err != nil {
		// fail closed for explicit content
		return false, err
	}

	return !listener.CleanOnly, nil
}

var _ EligibilityChecker = (*CleanContentChecker)(nil)
var _ EligibilityChecker = NoopEligibilityChecker{}
