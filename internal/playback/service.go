package playback

import (
	"context"

	"github.com/lbriand/reverb/internal/player"
	"github.com/lbriand/reverb/internal/song"
)

// Service is the control surface of the playback store. The transport
// layer and the media-session integration only ever talk to this; neither
// reaches the player adapter directly. Operations never fail on adapter
// faults; the store degrades and keeps playing.
type Service interface {
	// Launch
	PlayWithContext(contextID string, songs []song.Song, start song.Song)
	PlaySong(s song.Song)
	CueSong(s song.Song, at float64)

	// Transport
	Toggle()
	Next()
	Previous()
	SeekTo(seconds float64)

	// Audio
	SetVolume(volume int)
	ToggleMute()

	// Modes
	ToggleShuffle() bool
	CycleRepeat() RepeatMode
	SetRepeat(mode RepeatMode)

	// Explicit queue
	Enqueue(s song.Song) bool
	EnqueueAll(songs []song.Song) int
	RemoveFromQueue(externalID string) bool
	RemoveQueueAt(index int) bool
	MoveQueueItem(fromIndex, toIndex int) bool
	ClearQueue()
	QueueSongs() []song.Song

	// Likes
	LoadLiked(ctx context.Context) error
	ToggleLike(s song.Song)
	IsLiked(externalID string) bool

	// State queries
	CurrentSong() (song.Song, bool)
	IsPlaying() bool
	CurrentTime() float64
	Duration() float64
	Volume() int
	Muted() bool
	Shuffle() bool
	Repeat() RepeatMode
	ContextID() string
	ContextSongs() []song.Song
	HistorySongs() []song.Song

	// Event subscription
	Subscribe() *Subscription

	// Lifecycle
	Run()
	Close()
}

// Control is the slice of the player adapter the store consumes. Defined
// on the consumer side so tests can substitute a double without a mock
// engine behind it.
type Control interface {
	LoadSong(externalID string)
	Play()
	Pause()
	Seek(seconds float64)
	SetVolume(volume int)
	Mute()
	Unmute()
	Status() (player.Status, error)
	Events() <-chan player.Event
}

// LikeGateway is the slice of the persistence gateway the store needs for
// the liked set.
type LikeGateway interface {
	LikedSongs(ctx context.Context) ([]song.Song, error)
	Like(ctx context.Context, s song.Song) error
	Unlike(ctx context.Context, externalID string) error
}
