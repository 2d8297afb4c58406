package probe

import (
	"math"
	"testing"
)

const videoJSON = `{
  "format": {"duration": "8.016000"},
  "streams": [
    {"codec_type": "video", "width": 1920, "height": 1080,
     "avg_frame_rate": "30000/1001", "r_frame_rate": "30000/1001"},
    {"codec_type": "audio", "duration": "8.016000"}
  ]
}`

const audioOnlyJSON = `{
  "format": {"duration": "21.350000"},
  "streams": [
    {"codec_type": "audio", "duration": "21.350000"}
  ]
}`

const coverArtJSON = `{
  "format": {"duration": "180.5"},
  "streams": [
    {"codec_type": "video", "width": 600, "height": 600,
     "avg_frame_rate": "0/0",
     "disposition": {"attached_pic": 1}},
    {"codec_type": "audio"}
  ]
}`

func TestParseJSONVideo(t *testing.T) {
	asset, err := ParseJSON("/in/bg.mp4", []byte(videoJSON))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if asset.Path != "/in/bg.mp4" {
		t.Errorf("Path = %q", asset.Path)
	}
	if math.Abs(asset.Duration-8.016) > 1e-9 {
		t.Errorf("Duration = %v, want 8.016", asset.Duration)
	}
	if asset.Width != 1920 || asset.Height != 1080 {
		t.Errorf("dimensions = %dx%d, want 1920x1080", asset.Width, asset.Height)
	}
	if math.Abs(asset.FPS-29.97) > 0.01 {
		t.Errorf("FPS = %v, want ~29.97", asset.FPS)
	}
	if !asset.HasAudio {
		t.Error("HasAudio = false, want true")
	}
	if !asset.HasVideo() {
		t.Error("HasVideo() = false, want true")
	}
	if asset.IsPortrait() {
		t.Error("IsPortrait() = true for landscape")
	}
}

func TestParseJSONAudioOnly(t *testing.T) {
	asset, err := ParseJSON("/in/voice.wav", []byte(audioOnlyJSON))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if !asset.HasAudio || asset.HasVideo() {
		t.Errorf("audio-only asset got HasAudio=%v HasVideo=%v", asset.HasAudio, asset.HasVideo())
	}
	if math.Abs(asset.Duration-21.35) > 1e-9 {
		t.Errorf("Duration = %v, want 21.35", asset.Duration)
	}
}

// An MP3 with embedded cover art reports a video stream; treating it as a
// video would send an audio file through the visual pass.
func TestParseJSONSkipsCoverArt(t *testing.T) {
	asset, err := ParseJSON("/in/music.mp3", []byte(coverArtJSON))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if asset.HasVideo() {
		t.Errorf("cover art counted as video: %dx%d", asset.Width, asset.Height)
	}
	if !asset.HasAudio {
		t.Error("HasAudio = false, want true")
	}
}

func TestParseJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed json", "{not json"},
		{"no duration anywhere", `{"format": {}, "streams": [{"codec_type": "video", "width": 10, "height": 10}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseJSON("x", []byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseFrameRate(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"30/1", 30},
		{"30000/1001", 29.97002997002997},
		{"0/0", 0},
		{"", 0},
		{"25", 25},
		{"bogus/x", 0},
		{"10/0", 0},
	}
	for _, tt := range tests {
		if got := parseFrameRate(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("parseFrameRate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
