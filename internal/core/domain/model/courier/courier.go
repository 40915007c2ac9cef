package courier

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier or RestoreCourier constructor")
)

// PositionSample is the latest known position of a courier. Only the most
// recent sample is kept; each accepted report supersedes the previous one
// and samples are never rolled back.
type PositionSample struct {
	point      kernel.GeoPoint
	capturedAt time.Time
}

// NewPositionSample creates a position sample from a point and capture time.
func NewPositionSample(point kernel.GeoPoint, capturedAt time.Time) (PositionSample, error) {
	if err := point.Validate(); err != nil {
		return PositionSample{}, err
	}
	if capturedAt.IsZero() {
		return PositionSample{}, errs.NewValueIsRequiredError("captured_at")
	}

	return PositionSample{point: point, capturedAt: capturedAt}, nil
}

// Point returns the sampled position.
func (s PositionSample) Point() kernel.GeoPoint {
	return s.point
}

// CapturedAt returns the capture time of the sample.
func (s PositionSample) CapturedAt() time.Time {
	return s.capturedAt
}

// Courier represents a delivery-performing party. It owns the availability
// flag position reports are gated on, and the latest-position value that the
// selector and the live channel read.
//
// A courier drives one device, so position writes are single-writer; the
// capture-time guard below only protects against out-of-order arrival of
// that one writer's samples.
type Courier struct {
	// id uniquely identifies the courier
	id kernel.UUID
	// name is the human-readable name of the courier
	name string
	// available reports whether the courier currently accepts work and may
	// report positions
	available bool
	// lastPosition is the latest accepted position sample, nil before the
	// first report
	lastPosition *PositionSample
	// version counts committed writes for compare-and-set persistence
	version int64
	// guard ensures the courier was properly constructed
	guard guard.ConstructorGuard
}

// NewCourier creates an available courier with no known position yet.
func NewCourier(id kernel.UUID, name string) (*Courier, error) {
	c := &Courier{
		available: true,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCourier reconstructs a Courier aggregate from persistent storage,
// preserving availability, the last known position, and the version counter.
func RestoreCourier(
	id kernel.UUID,
	name string,
	available bool,
	lastPosition *PositionSample,
	version int64,
) (*Courier, error) {
	c := &Courier{
		available:    available,
		lastPosition: lastPosition,
		version:      version,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate ensures the Courier was created through a constructor.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// IsEqual compares two couriers by their unique identifiers.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's display name.
func (c *Courier) Name() string {
	return c.name
}

// IsAvailable reports whether the courier currently accepts work.
func (c *Courier) IsAvailable() bool {
	return c.available
}

// LastPosition returns the latest accepted position sample, or nil if the
// courier has never reported one.
func (c *Courier) LastPosition() *PositionSample {
	return c.lastPosition
}

// Version returns the optimistic-lock counter.
func (c *Courier) Version() int64 {
	return c.version
}

// SetAvailability flips the availability flag. Turning availability off
// keeps the last position readable but blocks further reports.
func (c *Courier) SetAvailability(available bool) error {
	if err := c.Validate(); err != nil {
		return err
	}

	c.available = available
	return nil
}

// RecordPosition accepts a position report from the courier's device.
//
// Fails with Forbidden while the courier is unavailable; the stored position
// is left untouched. A sample not newer than the current one is discarded
// without error so delayed retransmissions cannot rewind the position.
// Returns whether the sample was applied.
func (c *Courier) RecordPosition(point kernel.GeoPoint, capturedAt time.Time) (bool, error) {
	if err := c.Validate(); err != nil {
		return false, err
	}

	if !c.available {
		return false, errs.NewForbiddenError("report position", c.id.String())
	}

	sample, err := NewPositionSample(point, capturedAt)
	if err != nil {
		return false, err
	}

	if c.lastPosition != nil && !sample.capturedAt.After(c.lastPosition.capturedAt) {
		return false, nil
	}

	c.lastPosition = &sample
	return true, nil
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}
