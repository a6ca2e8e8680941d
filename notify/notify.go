// Package notify plays sounds and sends desktop notifications in response to
// session events. Every failure here is logged and swallowed so that audio or
// notification problems never interrupt a running session.
package notify

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/gen2brain/beeep"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"github.com/ayoisaiah/lockin/internal/config"
	"github.com/ayoisaiah/lockin/internal/pathutil"
)

var errInvalidSoundFormat = errors.New(
	"unsupported sound format: must be one of ogg, mp3, flac, or wav",
)

// Notifier reacts to session events with sounds and desktop notifications.
// It implements engine.Listener.
type Notifier struct {
	ambientStream    beep.Streamer
	sessionSound     string
	distractionSound string
	ambientSound     string
	enabled          bool
}

func New(cfg *config.Config) *Notifier {
	return &Notifier{
		enabled:          cfg.Notifications.Enabled,
		sessionSound:     cfg.Notifications.SessionSound,
		distractionSound: cfg.Notifications.DistractionSound,
		ambientSound:     cfg.Sound.Ambient,
	}
}

// prepSoundStream returns an audio stream for the specified sound. Names
// without an extension are resolved to OGG files in the data directory.
func prepSoundStream(sound string) (beep.StreamSeekCloser, error) {
	var (
		f      fs.File
		err    error
		stream beep.StreamSeekCloser
		format beep.Format
	)

	ext := filepath.Ext(sound)
	if ext == "" {
		sound += ".ogg"

		path, err := xdg.SearchDataFile(
			filepath.Join(pathutil.Dir(), "static", sound),
		)
		if err != nil {
			return nil, err
		}

		f, err = os.Open(path)
		if err != nil {
			return nil, err
		}
	} else {
		f, err = os.Open(sound)
		if err != nil {
			return nil, err
		}
	}

	defer func() {
		_ = f.Close()
	}()

	ext = filepath.Ext(sound)

	switch ext {
	case ".ogg":
		stream, format, err = vorbis.Decode(f)
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".flac":
		stream, format, err = flac.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	default:
		return nil, errInvalidSoundFormat
	}

	if err != nil {
		return nil, err
	}

	bufferSize := 10

	err = speaker.Init(
		format.SampleRate,
		format.SampleRate.N(time.Duration(int(time.Second)/bufferSize)),
	)
	if err != nil {
		return nil, err
	}

	err = stream.Seek(0)
	if err != nil {
		return nil, err
	}

	return stream, nil
}

// playSound plays the named sound to completion, then releases the speaker.
func playSound(sound string) {
	if sound == "" || sound == config.SoundOff {
		return
	}

	stream, err := prepSoundStream(sound)
	if err != nil {
		slog.Error("unable to play sound", slog.Any("error", err))
		return
	}

	done := make(chan bool)

	speaker.Play(beep.Seq(stream, beep.Callback(func() {
		done <- true
	})))

	<-done

	_ = stream.Close()

	speaker.Clear()
}

// OnStart begins looping the ambient sound if one is configured.
func (n *Notifier) OnStart(_ string) {
	if n.ambientSound == "" {
		return
	}

	stream, err := prepSoundStream(n.ambientSound)
	if err != nil {
		slog.Error(
			"unable to play ambient sound",
			slog.String("sound", n.ambientSound),
			slog.Any("error", err),
		)

		return
	}

	n.ambientStream = beep.Loop(-1, stream)

	speaker.Clear()
	speaker.Play(n.ambientStream)
}

func (n *Notifier) OnPause() {
	if n.ambientStream != nil {
		_ = speaker.Suspend()
	}
}

func (n *Notifier) OnResume() {
	if n.ambientStream != nil {
		_ = speaker.Resume()
	}
}

// OnExpire stops the ambient sound, sends a desktop notification, and plays
// the session-end sound.
func (n *Notifier) OnExpire() {
	if n.ambientStream != nil {
		speaker.Clear()
		n.ambientStream = nil
	}

	if !n.enabled {
		return
	}

	// pathToIcon will be an empty string if the file is not found
	pathToIcon, _ := xdg.SearchDataFile(
		filepath.Join(pathutil.Dir(), "static", "icon.png"),
	)

	err := beeep.Notify(
		"Session complete",
		"Time for a break!",
		pathToIcon,
	)
	if err != nil {
		slog.Error("unable to display notification", slog.Any("error", err))
	}

	playSound(n.sessionSound)
}

// OnDistraction plays the distraction sound without blocking the caller.
func (n *Notifier) OnDistraction(_ int) {
	if !n.enabled || n.distractionSound == "" {
		return
	}

	go playSound(n.distractionSound)
}
