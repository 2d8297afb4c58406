// Package pipeline orchestrates one build job end to end, from input
// analysis through transcoding to output validation. A failed hardware
// attempt is retried once on the software encoder; temp files are removed
// on every exit path.
//
// Build is synchronous and blocking (each stage waits on an external ffmpeg
// process); callers serving an event loop must dispatch it onto a worker
// pool. Jobs share no mutable state beyond the capability service's
// memoized encoder profile.
package pipeline
