package sound

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBell(t *testing.T) {
	var buffer bytes.Buffer
	bell := NewBell(&buffer)
	bell.Play(EffectKeypress)
	require.Zero(t, buffer.Len())
	bell.Play(EffectBeep)
	bell.Play(EffectBoot)
	require.Equal(t, "\a\a", buffer.String())
}

func TestRecorder(t *testing.T) {
	recorder := &Recorder{}
	recorder.Play(EffectBoot)
	recorder.Play(EffectBeep)
	require.Equal(t, []Effect{EffectBoot, EffectBeep}, recorder.Effects())
	require.Equal(t, "boot", EffectBoot.String())
}
