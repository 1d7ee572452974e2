package audio

import (
	"errors"
	"os/exec"
)

// ErrNoBackend is returned when no system audio player is installed.
var ErrNoBackend = errors.New("audio: no compatible backend found")

// Backend describes a CLI player reading raw s16le stereo PCM from stdin.
type Backend struct {
	Name string
	Path string
	Args []string
}

// candidates in priority order
var backendCandidates = []Backend{
	{
		Name: "pacat",
		Args: []string{"--raw", "--format=s16le", "--rate=44100", "--channels=2", "--latency-msec=50", "--playback"},
	},
	{
		Name: "pw-cat",
		Args: []string{"--playback", "--format=s16", "--rate=44100", "--channels=2", "--latency=50ms", "-"},
	},
	{
		Name: "aplay",
		Args: []string{"-t", "raw", "-f", "S16_LE", "-r", "44100", "-c", "2", "-q"},
	},
}

// lookPath is replaced in tests.
var lookPath = exec.LookPath

// DetectBackend searches PATH for a supported player.
// Priority: pacat > pw-cat > aplay
func DetectBackend() (*Backend, error) {
	for _, c := range backendCandidates {
		path, err := lookPath(c.Name)
		if err != nil {
			continue
		}
		b := c
		b.Path = path
		b.Args = append([]string(nil), c.Args...)
		return &b, nil
	}
	return nil, ErrNoBackend
}
