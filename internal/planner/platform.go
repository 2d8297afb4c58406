package planner

// PlatformSpec is the delivery constraint set for one social platform.
type PlatformSpec struct {
	Name        string
	MaxDuration float64 // Seconds.
	MaxSizeMB   int64
}

var platformSpecs = map[string]PlatformSpec{
	"youtube_shorts":  {Name: "youtube_shorts", MaxDuration: 60, MaxSizeMB: 100},
	"instagram_reels": {Name: "instagram_reels", MaxDuration: 90, MaxSizeMB: 100},
	"tiktok":          {Name: "tiktok", MaxDuration: 180, MaxSizeMB: 287},
	"facebook_reels":  {Name: "facebook_reels", MaxDuration: 60, MaxSizeMB: 100},
}

// PlatformFor looks up a platform by identifier.
func PlatformFor(name string) (PlatformSpec, bool) {
	p, ok := platformSpecs[name]
	return p, ok
}

// MaxSizeBytes returns the platform's size cap in bytes.
func (p PlatformSpec) MaxSizeBytes() int64 {
	return p.MaxSizeMB * 1024 * 1024
}

// TargetBitrateKbps computes the video bitrate that fits the platform's
// size cap for a clip of the given duration, at 90% of the cap for safety.
func (p PlatformSpec) TargetBitrateKbps(duration float64) int {
	if duration <= 0 {
		return 0
	}
	return int(float64(p.MaxSizeMB*8*1024) / duration * 0.9)
}
