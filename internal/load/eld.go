package load

import (
	"fmt"
	"time"
)

// Telemetry is one ELD snapshot for the truck running a load.
type Telemetry struct {
	LoadID      string    `json:"loadId"`
	SpeedMPH    float64   `json:"speedMph"`
	Odometer    float64   `json:"odometer"`
	EngineHours float64   `json:"engineHours"`
	DriveMin    int       `json:"driveMinutes"` // drive time used today
	Location    string    `json:"location"`
	LastPing    time.Time `json:"lastPing"`
}

// FormatDriveTime renders minutes as the dashboard's "5h 32m" style.
func FormatDriveTime(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}
	h, m := minutes/60, minutes%60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// FormatPingAge says how stale a telemetry ping is relative to now.
func FormatPingAge(now, lastPing time.Time) string {
	if lastPing.IsZero() {
		return "no signal"
	}
	d := now.Sub(lastPing)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh %dm ago", int(d.Hours()), int(d.Minutes())%60)
	}
}

// FormatTelemetry builds the one-line ELD summary shown under a load.
func FormatTelemetry(t Telemetry, now time.Time) string {
	return fmt.Sprintf("%.0f mph near %s | odometer %.1f mi | engine %.1f h | drive time %s | ping %s",
		t.SpeedMPH, t.Location, t.Odometer, t.EngineHours,
		FormatDriveTime(t.DriveMin), FormatPingAge(now, t.LastPing))
}
