package wiki

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatLongPlanet(t *testing.T) {
	store := newSeededStore(t)
	text, err := FormatLong(store.GetAll(KindPlanet)[0])
	require.NoError(t, err)

	lines := strings.Split(text, "\n")
	require.Equal(t, "PLANET RECORD: LV-426 (ACHERON)", lines[0])
	require.Equal(t, "FRANCHISE: Alien", lines[1])
	require.Equal(t, "TYPE: MOON", lines[2])
	require.Contains(t, lines, "NOTABLE FEATURES: Derelict Engineer spacecraft, Xenomorph hive")
	require.Contains(t, lines, "GRAVITY: 1.1g")
	require.False(t, strings.HasSuffix(text, "\n"))
}

func TestFormatLongOmitsAbsentFields(t *testing.T) {
	text, err := FormatLong(&Character{Metadata: Metadata{ID: "dallas", Name: "Dallas", Franchise: "Alien"}, Occupation: "Captain"})
	require.NoError(t, err)
	require.Equal(t, "CHARACTER RECORD: DALLAS\nFRANCHISE: Alien\nOCCUPATION: Captain", text)
}

func TestFormatLongEveryKind(t *testing.T) {
	store := newSeededStore(t)
	for _, kind := range Kinds {
		for _, record := range store.GetAll(kind) {
			text, err := FormatLong(record)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(text, strings.ToUpper(string(kind))+" RECORD: "), text)
		}
	}
}

func TestFormatLongMovieYear(t *testing.T) {
	text, err := FormatLong(&Movie{Metadata: Metadata{ID: "alien", Name: "Alien", Franchise: "Alien"}, ReleaseYear: 1979})
	require.NoError(t, err)
	require.Contains(t, text, "RELEASE YEAR: 1979")

	text, err = FormatLong(&Movie{Metadata: Metadata{ID: "alien", Name: "Alien", Franchise: "Alien"}})
	require.NoError(t, err)
	require.NotContains(t, text, "RELEASE YEAR")
}

func TestFormatShort(t *testing.T) {
	store := newSeededStore(t)
	require.Equal(t, "• LV-426 (ACHERON) (ALIEN) — MOON", FormatShort(store.GetAll(KindPlanet)[0]))
	require.Equal(t, "• ALIEN: ROMULUS (ALIEN) — 2024", FormatShort(store.GetAll(KindMovie)[0]))
	require.Equal(t, "• DALLAS (ALIEN)", FormatShort(&Character{Metadata: Metadata{Name: "Dallas", Franchise: "Alien"}}))
}

func TestFormatListing(t *testing.T) {
	store := newSeededStore(t)
	text := FormatListing("aliens", store.GetAll(KindAlien))
	require.Equal(t, strings.Join([]string{
		"ALIENS: 3 RECORDS FOUND",
		"• CYBORG (ALIEN: EARTH) — HUMAN (AUGMENTED)",
		"• SYNTHETIC (ALIEN) — ANDROID",
		"• XENOMORPH XX121 (ALIEN) — XENOMORPH",
	}, "\n"), text)
}

func TestFormatHelp(t *testing.T) {
	store := newSeededStore(t)
	text := FormatHelp(store.Counts())
	require.Contains(t, text, "WEYLAND-YUTANI REFERENCE DATABASE")
	require.Contains(t, text, "ALIENS (3 RECORDS)")
	require.Contains(t, text, "PLANETS (1 RECORD)")
}
