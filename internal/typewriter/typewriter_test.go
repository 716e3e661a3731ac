package typewriter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2122, time.June, 3, 0, 0, 0, 0, time.UTC)

func TestFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"DIRECTIVES: 1. RETURN 2. ANALYZE", "DIRECTIVES:\n1. RETURN\n2. ANALYZE"},
		{"1. FIRST", "1. FIRST"},
		{"VERSION 2.0 READY", "VERSION 2.0 READY"},
		{"ITEMS 10. TEN", "ITEMS\n10. TEN"},
		{"NO LISTS HERE", "NO LISTS HERE"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, Format(tt.input))
		})
	}
}

func TestRevealOneCharacterPerInterval(t *testing.T) {
	var reveal Reveal
	_, flushed := reveal.Start("m1", "MOTHER", 30*time.Millisecond, epoch)
	require.False(t, flushed)
	require.Equal(t, PhaseRevealing, reveal.Phase())
	require.Equal(t, "", reveal.Visible())

	deadline, ok := reveal.Deadline()
	require.True(t, ok)
	require.Equal(t, epoch.Add(30*time.Millisecond), deadline)

	require.False(t, reveal.Advance(epoch.Add(29*time.Millisecond)))
	require.Equal(t, "", reveal.Visible())
	require.False(t, reveal.Advance(epoch.Add(60*time.Millisecond)))
	require.Equal(t, "MO", reveal.Visible())
	require.True(t, reveal.Advance(epoch.Add(time.Second)))
	require.Equal(t, "MOTHER", reveal.Visible())
	require.Equal(t, PhaseDone, reveal.Phase())

	_, ok = reveal.Deadline()
	require.False(t, ok)
	require.False(t, reveal.Advance(epoch.Add(2*time.Second)))
}

func TestRevealCountsRunes(t *testing.T) {
	var reveal Reveal
	reveal.Start("m1", "• Ñ", 10*time.Millisecond, epoch)
	reveal.Advance(epoch.Add(10 * time.Millisecond))
	require.Equal(t, "•", reveal.Visible())
	require.True(t, reveal.Advance(epoch.Add(30*time.Millisecond)))
	require.Equal(t, "• Ñ", reveal.Visible())
}

func TestRevealStartFlushesPrevious(t *testing.T) {
	var reveal Reveal
	reveal.Start("m1", "FIRST", 30*time.Millisecond, epoch)
	flushed, ok := reveal.Start("m2", "SECOND", 30*time.Millisecond, epoch)
	require.True(t, ok)
	require.Equal(t, "m1", flushed)
	require.True(t, reveal.Revealing("m2"))
	require.False(t, reveal.Revealing("m1"))
}

func TestRevealEmptyTextIsDone(t *testing.T) {
	var reveal Reveal
	reveal.Start("m1", "", 30*time.Millisecond, epoch)
	require.Equal(t, PhaseDone, reveal.Phase())
}

func TestRevealFinishAndCancel(t *testing.T) {
	var reveal Reveal
	reveal.Start("m1", "MOTHER", 30*time.Millisecond, epoch)
	reveal.Finish()
	require.Equal(t, "MOTHER", reveal.Visible())
	require.Equal(t, PhaseDone, reveal.Phase())

	reveal.Cancel()
	require.Equal(t, PhaseIdle, reveal.Phase())
	require.Equal(t, "", reveal.Visible())
}

func TestPacing(t *testing.T) {
	require.Equal(t, 30*time.Millisecond, DefaultPacing.Interval(PaceStandard))
	require.Equal(t, 20*time.Millisecond, DefaultPacing.Interval(PaceAcknowledgement))
	require.Equal(t, 15*time.Millisecond, DefaultPacing.Interval(PaceBoot))
}

func TestBootEmitsOneItemPerInterval(t *testing.T) {
	boot := NewBoot(BootSequence, DefaultBootInterval)
	boot.Start(epoch)
	require.True(t, boot.Running())
	require.Empty(t, boot.Advance(epoch.Add(799*time.Millisecond)))

	var emitted []string
	for i := 1; i <= len(BootSequence); i++ {
		require.True(t, boot.Running())
		due := boot.Advance(epoch.Add(time.Duration(i) * DefaultBootInterval))
		require.Len(t, due, 1)
		emitted = append(emitted, due...)
	}
	require.Equal(t, BootSequence, emitted)
	require.False(t, boot.Running())
	_, ok := boot.Deadline()
	require.False(t, ok)
}

func TestBootCatchesUp(t *testing.T) {
	boot := NewBoot(BootSequence, DefaultBootInterval)
	boot.Start(epoch)
	require.Equal(t, BootSequence[:3], boot.Advance(epoch.Add(3*DefaultBootInterval)))
	boot.Cancel()
	require.Empty(t, boot.Advance(epoch.Add(time.Hour)))
}
