package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxSessionHistory is how many saved tasbeeh sessions are retained.
const MaxSessionHistory = 10

// A remembrance phrase recited on the tasbeeh counter.
type Dhikr struct {
	ID              string
	Arabic          string
	Transliteration string
	Translation     string
	DefaultTarget   int
}

// DhikrCatalog is the built-in list of phrases seeded into storage on start.
var DhikrCatalog = []Dhikr{
	{ID: "subhanallah", Arabic: "سُبْحَانَ ٱللَّٰهِ", Transliteration: "Subhan Allah", Translation: "Glory be to Allah", DefaultTarget: 33},
	{ID: "alhamdulillah", Arabic: "ٱلْحَمْدُ لِلَّٰهِ", Transliteration: "Alhamdulillah", Translation: "Praise be to Allah", DefaultTarget: 33},
	{ID: "allahuakbar", Arabic: "ٱللَّٰهُ أَكْبَرُ", Transliteration: "Allahu Akbar", Translation: "Allah is the Greatest", DefaultTarget: 33},
	{ID: "lailahaillallah", Arabic: "لَا إِلَٰهَ إِلَّا ٱللَّٰهُ", Transliteration: "La ilaha illallah", Translation: "There is no god but Allah", DefaultTarget: 100},
	{ID: "istighfar", Arabic: "أَسْتَغْفِرُ ٱللَّٰهَ", Transliteration: "Astaghfirullah", Translation: "I seek forgiveness from Allah", DefaultTarget: 100},
}

// A saved run of the tasbeeh counter.
type TasbeehSession struct {
	ID      uuid.UUID
	DhikrID string
	Count   int
	// Target the user counted towards; defaults to the dhikr's DefaultTarget.
	Target     int
	RecordedAt time.Time
}

// TargetReached reports whether the session counted up to its target.
func (s TasbeehSession) TargetReached() bool {
	return s.Target > 0 && s.Count >= s.Target
}
