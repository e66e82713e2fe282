// terminal_keys.go - Map playback keys to generator actions

package main

// KeyAction is the result of one key press.
type KeyAction int

const (
	KEY_IGNORED KeyAction = iota
	KEY_HANDLED
	KEY_QUIT
)

// handlePlaybackKey applies key to p. Space toggles pause, p plays from the
// start, s stops, q / Esc / Ctrl-C quit.
func handlePlaybackKey(p PausablePlayer, key byte) KeyAction {
	switch key {
	case ' ':
		if p.IsPaused() {
			p.Resume()
		} else if p.IsPlaying() {
			p.Pause()
		} else {
			p.Play()
		}
	case 'p', 'P':
		p.Play()
	case 's', 'S':
		p.Stop()
	case 'q', 'Q', 0x1b, 0x03:
		return KEY_QUIT
	default:
		return KEY_IGNORED
	}
	return KEY_HANDLED
}
