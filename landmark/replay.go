package landmark

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/lixenwraith/particle-morph/gesture"
)

// replayLine is one JSON line: {"hands":[[[x,y], ...21], ...]}
type replayLine struct {
	Hands [][][2]float64 `json:"hands"`
}

// ParseReplay reads JSON-lines frames; blank lines and lines starting with '#' are skipped
func ParseReplay(r io.Reader) ([]Frame, error) {
	var frames []Frame
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var rl replayLine
		if err := json.Unmarshal([]byte(line), &rl); err != nil {
			return nil, errors.Wrapf(err, "replay line %d", lineNo)
		}

		f := Frame{Hands: make([]gesture.HandSnapshot, 0, len(rl.Hands))}
		for hi, pts := range rl.Hands {
			if len(pts) != gesture.LandmarkCount {
				return nil, errors.Errorf("replay line %d hand %d: %d landmarks, want %d",
					lineNo, hi, len(pts), gesture.LandmarkCount)
			}
			var h gesture.HandSnapshot
			for i, p := range pts {
				h[i] = gesture.Landmark{X: p[0], Y: p[1]}
			}
			f.Hands = append(f.Hands, h)
		}
		frames = append(frames, f)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read replay")
	}
	return frames, nil
}

// ReplaySource plays back recorded frames, one per Acquire
// Once exhausted without looping it reports empty frames
type ReplaySource struct {
	mu     sync.Mutex
	frames []Frame
	next   int
	loop   bool
}

// NewReplaySource wraps already-parsed frames
func NewReplaySource(frames []Frame, loop bool) *ReplaySource {
	return &ReplaySource{frames: frames, loop: loop}
}

// OpenReplay loads a replay file
func OpenReplay(path string, loop bool) (*ReplaySource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open replay")
	}
	defer f.Close()

	frames, err := ParseReplay(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return NewReplaySource(frames, loop), nil
}

func (r *ReplaySource) Acquire(ctx context.Context) (Frame, error) {
	if err := ctx.Err(); err != nil {
		return Frame{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.next >= len(r.frames) {
		if !r.loop || len(r.frames) == 0 {
			return Frame{}, nil
		}
		r.next = 0
	}
	f := r.frames[r.next]
	r.next++
	return f, nil
}

// Remaining returns frames left before exhaustion or wrap
func (r *ReplaySource) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames) - r.next
}
