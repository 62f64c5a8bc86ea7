package deposit

import (
	"fmt"
)

// SinceMetric is the unit a Since value is expressed in.
type SinceMetric byte

const (
	MetricBlockNumber SinceMetric = 0
	MetricEpoch       SinceMetric = 1
	MetricTimestamp   SinceMetric = 2
)

const (
	sinceRelativeFlag = uint64(1) << 63
	sinceMetricShift  = 61
	sinceMetricMask   = uint64(0x3) << sinceMetricShift
	sinceReservedMask = uint64(0x1f) << 56
	sinceValueMask    = uint64(1)<<56 - 1
)

// Since is a CKB since value. The highest byte holds the flags: bit 63 tells
// whether the value is relative, bits 61-62 select the metric and bits 56-60
// are reserved. The lower 56 bits hold the value.
type Since uint64

// DefaultCancelTimeout is a relative timeout of 604801 seconds, the value
// used by the deployed Godwoken tooling for deposit cancellation.
const DefaultCancelTimeout Since = 0xc000000000093a81

// NewSince builds a since value. For MetricTimestamp values are seconds;
// absolute timestamps are compared against the median time of past blocks.
func NewSince(relative bool, metric SinceMetric, value uint64) (Since, error) {
	if metric > MetricTimestamp {
		return 0, fmt.Errorf("unknown since metric %d", metric)
	}
	if value&^sinceValueMask != 0 {
		return 0, fmt.Errorf("since value %d does not fit in 56 bits", value)
	}

	s := uint64(metric)<<sinceMetricShift | value
	if relative {
		s |= sinceRelativeFlag
	}
	return Since(s), nil
}

// RelativeBlocks is satisfied n blocks after the input cell was committed.
func RelativeBlocks(n uint64) (Since, error) {
	return NewSince(true, MetricBlockNumber, n)
}

// AbsoluteBlock is satisfied from block number n.
func AbsoluteBlock(n uint64) (Since, error) {
	return NewSince(false, MetricBlockNumber, n)
}

// RelativeEpochs is satisfied once the fraction of epochs has elapsed
// since the input cell was committed.
func RelativeEpochs(number, index, length uint64) (Since, error) {
	v, err := epochValue(number, index, length)
	if err != nil {
		return 0, err
	}
	return NewSince(true, MetricEpoch, v)
}

// AbsoluteEpoch is satisfied from the given epoch fraction.
func AbsoluteEpoch(number, index, length uint64) (Since, error) {
	v, err := epochValue(number, index, length)
	if err != nil {
		return 0, err
	}
	return NewSince(false, MetricEpoch, v)
}

// RelativeSeconds is satisfied seconds after the input cell was committed.
func RelativeSeconds(seconds uint64) (Since, error) {
	return NewSince(true, MetricTimestamp, seconds)
}

// AbsoluteTimestamp is satisfied from the unix time in seconds.
func AbsoluteTimestamp(unix uint64) (Since, error) {
	return NewSince(false, MetricTimestamp, unix)
}

// epochValue packs number (24 bits), index (16 bits) and length (16 bits).
func epochValue(number, index, length uint64) (uint64, error) {
	if number >= 1<<24 || index >= 1<<16 || length >= 1<<16 {
		return 0, fmt.Errorf("epoch %d %d/%d out of range", number, index, length)
	}
	if length == 0 && index != 0 || length != 0 && index >= length {
		return 0, fmt.Errorf("epoch index %d must be lower than length %d", index, length)
	}
	return length<<40 | index<<24 | number, nil
}

// IsRelative returns whether the value is relative to the input cell.
func (s Since) IsRelative() bool {
	return uint64(s)&sinceRelativeFlag != 0
}

// Metric returns the metric flag.
func (s Since) Metric() SinceMetric {
	return SinceMetric((uint64(s) & sinceMetricMask) >> sinceMetricShift)
}

// Value returns the lower 56 bits.
func (s Since) Value() uint64 {
	return uint64(s) & sinceValueMask
}

// Validate checks the flags are well formed.
func (s Since) Validate() error {
	if uint64(s)&sinceReservedMask != 0 {
		return fmt.Errorf("since %#x has reserved bits set", uint64(s))
	}
	if s.Metric() > MetricTimestamp {
		return fmt.Errorf("since %#x has unknown metric", uint64(s))
	}
	return nil
}

func (s Since) String() string {
	return fmt.Sprintf("%#016x", uint64(s))
}
