package playstage

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

const sampleRate = 44100

var (
	audioOnce sync.Once
	audioCtx  *audio.Context
)

func audioContext() *audio.Context {
	audioOnce.Do(func() {
		audioCtx = audio.NewContext(sampleRate)
	})
	return audioCtx
}

type soundPlayer struct {
	player *audio.Player
}

func newSoundPlayer(path string) (*soundPlayer, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sound %s: %w", path, err)
	}

	ctx := audioContext()
	reader := bytes.NewReader(b)

	switch {
	case strings.HasSuffix(strings.ToLower(path), ".wav"):
		stream, err := wav.DecodeWithSampleRate(ctx.SampleRate(), reader)
		if err != nil {
			return nil, fmt.Errorf("decode wav %s: %w", path, err)
		}
		player, err := ctx.NewPlayer(stream)
		if err != nil {
			return nil, err
		}
		return &soundPlayer{player: player}, nil
	case strings.HasSuffix(strings.ToLower(path), ".ogg"):
		stream, err := vorbis.DecodeWithSampleRate(ctx.SampleRate(), reader)
		if err != nil {
			return nil, fmt.Errorf("decode ogg %s: %w", path, err)
		}
		player, err := ctx.NewPlayer(stream)
		if err != nil {
			return nil, err
		}
		return &soundPlayer{player: player}, nil
	default:
		return nil, fmt.Errorf("unsupported sound format: %s", path)
	}
}

// PlaySound plays the sound file at path, loading and caching it on
// first use. An already-playing sound restarts from the beginning.
func (s *Scene) PlaySound(path string) error {
	sp, ok := s.sounds[path]
	if !ok {
		var err error
		sp, err = newSoundPlayer(path)
		if err != nil {
			return err
		}
		s.sounds[path] = sp
	}
	if err := sp.player.Rewind(); err != nil {
		return err
	}
	sp.player.Play()
	return nil
}

// StopSound stops a playing sound. Unknown paths are no-ops.
func (s *Scene) StopSound(path string) {
	if sp, ok := s.sounds[path]; ok {
		sp.player.Pause()
	}
}
