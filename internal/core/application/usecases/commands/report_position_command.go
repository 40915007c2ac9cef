package commands

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrReportPositionCommandIsNotConstructed = errors.New(
	"ReportPositionCommand must be created via NewReportPositionCommand constructor",
)

// ReportPositionCommand represents a position report from a courier's device.
// The capture time orders samples; a report older than the stored position is
// discarded rather than applied.
type ReportPositionCommand struct { //nolint:recvcheck //using for validation
	actor      kernel.Actor
	lat        float64
	lng        float64
	capturedAt time.Time

	guard guard.ConstructorGuard
}

// NewReportPositionCommand creates a command carrying one position sample.
func NewReportPositionCommand(
	actor kernel.Actor,
	lat, lng float64,
	capturedAt time.Time,
) (ReportPositionCommand, error) {
	cmd := ReportPositionCommand{
		lat:   lat,
		lng:   lng,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setCapturedAt(capturedAt),
	); err != nil {
		return ReportPositionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportPositionCommand) Validate() error {
	return c.guard.Validate(ErrReportPositionCommandIsNotConstructed)
}

// Actor returns the reporting courier.
func (c ReportPositionCommand) Actor() kernel.Actor {
	return c.actor
}

// Lat returns the reported latitude.
func (c ReportPositionCommand) Lat() float64 {
	return c.lat
}

// Lng returns the reported longitude.
func (c ReportPositionCommand) Lng() float64 {
	return c.lng
}

// CapturedAt returns when the device captured the sample.
func (c ReportPositionCommand) CapturedAt() time.Time {
	return c.capturedAt
}

func (c *ReportPositionCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *ReportPositionCommand) setCapturedAt(capturedAt time.Time) error {
	if capturedAt.IsZero() {
		return errs.NewValueIsRequiredError("captured_at")
	}

	c.capturedAt = capturedAt
	return nil
}
