package audio

import "sync"

// cueCache stores pre-generated unity-gain float buffers
type cueCache struct {
	mu    sync.RWMutex
	store [cueCount]floatBuffer
	ready [cueCount]bool
}

func newCueCache() *cueCache {
	return &cueCache{}
}

// get returns cached buffer or generates on demand
func (c *cueCache) get(cue Cue) floatBuffer {
	if cue < 0 || cue >= cueCount {
		return nil
	}

	c.mu.RLock()
	if c.ready[cue] {
		buf := c.store[cue]
		c.mu.RUnlock()
		return buf
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if c.ready[cue] {
		return c.store[cue]
	}

	buf := synthesize(cue)
	c.store[cue] = buf
	c.ready[cue] = true
	return buf
}

// preload generates the cues heard during play
func (c *cueCache) preload() {
	c.get(CuePickup)
	c.get(CueCrash)
	c.get(CueSessionStart)
}
