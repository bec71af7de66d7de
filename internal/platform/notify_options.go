package platform

import "time"

// DefaultAppName is reported to notification centers that group by sender.
const DefaultAppName = "VastuCrop"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// AppName overrides DefaultAppName.
	AppName string
	// IconPath, when non-empty, points to an image shown alongside the
	// notification where the platform supports it.
	IconPath string
	// Timeout is how long the notification stays up. Zero leaves it to the
	// platform.
	Timeout time.Duration
}

func (o Options) appName() string {
	if o.AppName != "" {
		return o.AppName
	}
	return DefaultAppName
}
