package planner

// EncoderProfile identifies the video encoder selected for a job. Discovered
// once per process by the capability service; read-only thereafter.
type EncoderProfile struct {
	Name     string
	Hardware bool
	// Threads is the software-encode thread hint; 0 lets ffmpeg decide.
	// Unused by hardware encoders.
	Threads int
}
