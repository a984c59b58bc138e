package audio

import (
	"bytes"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/rs/zerolog/log"

	"partyclock/internal/core/game"
	"partyclock/internal/core/model"
)

// Player renders game cues through the system audio device. The device
// context is created lazily on the first cue; if the platform refuses it,
// the player stays silent for the rest of the session and the game carries
// on without sound.
type Player struct {
	once    sync.Once
	context *oto.Context

	warning model.CueSpec
	buzzer  model.CueSpec
	buffers map[game.Cue][]byte
}

// NewPlayer creates a player for the given cue definitions. No audio
// resources are acquired until the first Play call.
func NewPlayer(warning, buzzer model.CueSpec) *Player {
	return &Player{
		warning: warning,
		buzzer:  buzzer,
	}
}

// Play schedules a cue and returns immediately. Completion is never awaited
// and playback failures are silently dropped.
func (player *Player) Play(cue game.Cue) {
	player.once.Do(player.init)
	if player.context == nil {
		return
	}
	buffer, ok := player.buffers[cue]
	if !ok {
		return
	}

	handle := player.context.NewPlayer(bytes.NewReader(buffer))
	handle.Play()
	duration := time.Duration(len(buffer)/bytesPerSample) * time.Second / sampleRate
	time.AfterFunc(duration+100*time.Millisecond, func() {
		_ = handle.Close()
	})
}

func (player *Player) init() {
	context, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   50 * time.Millisecond,
	})
	if err != nil {
		log.Warn().Err(err).Msg("audio unavailable, cues disabled")
		return
	}
	<-ready

	player.context = context
	player.buffers = map[game.Cue][]byte{
		game.CueWarning: Synthesize(player.warning),
		game.CueBuzzer:  Synthesize(player.buzzer),
	}
}
