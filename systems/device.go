package systems

import (
	"math"
	"regexp"
)

// DeviceClass is the coarse device bucket driving particle caps.
type DeviceClass uint8

const (
	ClassDesktop DeviceClass = iota
	ClassTablet
	ClassMobile
)

func (c DeviceClass) String() string {
	switch c {
	case ClassMobile:
		return "mobile"
	case ClassTablet:
		return "tablet"
	default:
		return "desktop"
	}
}

// mobileAgents matches user agents of mobile platforms.
var mobileAgents = regexp.MustCompile(`(?i)Android|webOS|iPhone|iPad|iPod|BlackBerry|IEMobile|Opera Mini`)

// DetectMobile reports whether the host counts as a mobile device:
// a mobile user agent, or a viewport narrower than mobileWidth.
func DetectMobile(userAgent string, width, mobileWidth float32) bool {
	return mobileAgents.MatchString(userAgent) || width < mobileWidth
}

// DensityPolicy maps viewport area and device class to a particle count.
type DensityPolicy struct {
	Divisor     float64 // Square pixels per particle
	MobileCap   int
	TabletCap   int
	DesktopCap  int
	TabletWidth float32 // Non-mobile viewports narrower than this are tablets
}

// DefaultDensityPolicy returns the stock caps: 15 mobile, 40 tablet, 70 desktop.
func DefaultDensityPolicy() DensityPolicy {
	return DensityPolicy{
		Divisor:     25000,
		MobileCap:   15,
		TabletCap:   40,
		DesktopCap:  70,
		TabletWidth: 1024,
	}
}

// Classify buckets a viewport width. Mobile is decided once at startup;
// the tablet tier follows the current width.
func (p DensityPolicy) Classify(mobile bool, width float32) DeviceClass {
	switch {
	case mobile:
		return ClassMobile
	case width < p.TabletWidth:
		return ClassTablet
	default:
		return ClassDesktop
	}
}

// Capacity returns the particle cap for a device class.
func (p DensityPolicy) Capacity(c DeviceClass) int {
	switch c {
	case ClassMobile:
		return p.MobileCap
	case ClassTablet:
		return p.TabletCap
	default:
		return p.DesktopCap
	}
}

// Count returns min(floor(area / divisor), cap). Degenerate viewports give 0.
func (p DensityPolicy) Count(vp Viewport, c DeviceClass) int {
	if vp.W <= 0 || vp.H <= 0 || p.Divisor <= 0 {
		return 0
	}
	n := int(math.Floor(vp.Area() / p.Divisor))
	return min(n, max(p.Capacity(c), 0))
}
