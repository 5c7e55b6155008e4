// Package audio supervises the background-music player.
//
// A Controller tracks at most one external player process. Play replaces
// whatever is tracked, Stop ends it and IsPlaying polls it without blocking.
// The player command comes from a per-platform strategy table resolved once
// at startup, so the controller itself carries no OS conditionals.
package audio
