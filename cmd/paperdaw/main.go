package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/paperdaw/paperdaw-go"
)

// Built-in demonstration grids, used for any track without a notation
// file.
var defaultNotation = map[paperdaw.TrackKind]string{
	paperdaw.Metronome: "@ . . . $ . . . $ . . . $ . . .",
	paperdaw.Lyrics:    ". . And - it - was - . . so - pre - dict -",
	paperdaw.Drum:      "K B . . S . . C . B B . . . S .",
	paperdaw.Hat:       "O . P . P . P . P . P . P . P .",
	paperdaw.Melody:    ". . G#4 - G#4 - G#4 - . . F#4 - E4 - F#4 -",
	paperdaw.Bass:      "C#2 - - - - - - - - - - - - - - -",
}

func main() {
	var (
		tempo     = flag.Int("tempo", paperdaw.DefaultTempo, "tempo in BPM (clamped to 5-480)")
		solo      = flag.String("solo", "", "play a single track: metronome|lyrics|drum|hat|melody|bass")
		wavPath   = flag.String("wav", "", "render the mix to a WAV file instead of playing")
		gain      = flag.Int("gain", paperdaw.DefaultGainControl, "gain control for every track (0-100)")
		metronome = flag.String("metronome", "", "path to metronome notation file")
		lyrics    = flag.String("lyrics", "", "path to lyrics notation file")
		drum      = flag.String("drum", "", "path to kick/snare notation file")
		hat       = flag.String("hat", "", "path to hat notation file")
		melody    = flag.String("melody", "", "path to melody notation file")
		bass      = flag.String("bass", "", "path to bass notation file")
		quiet     = flag.Bool("quiet", false, "suppress per-slot display output")
	)
	flag.Parse()

	paths := map[paperdaw.TrackKind]string{
		paperdaw.Metronome: *metronome,
		paperdaw.Lyrics:    *lyrics,
		paperdaw.Drum:      *drum,
		paperdaw.Hat:       *hat,
		paperdaw.Melody:    *melody,
		paperdaw.Bass:      *bass,
	}
	notation := make(map[paperdaw.TrackKind]string, len(paths))
	for kind, path := range paths {
		text, err := resolveNotation(kind, path)
		if err != nil {
			log.Fatal(err)
		}
		notation[kind] = text
	}

	if *wavPath != "" {
		parts := make([]paperdaw.Part, 0, len(notation))
		for _, kind := range paperdaw.TrackKinds() {
			parts = append(parts, paperdaw.Part{Kind: kind, Notation: notation[kind], GainControl: *gain})
		}
		mixed := paperdaw.RenderMix(parts, *tempo)
		wav := paperdaw.EncodeWAVFloat32LE(mixed, paperdaw.SampleRate, 1)
		if err := os.WriteFile(*wavPath, wav, 0o644); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("wrote %d samples to %s\n", len(mixed), *wavPath)
		return
	}

	player := paperdaw.NewPlayer(paperdaw.WithTempo(*tempo))
	for kind, text := range notation {
		player.SetNotation(kind, text)
		player.SetGainControl(kind, *gain)
	}
	ch := player.Watch()

	if *solo != "" {
		kind, err := parseTrackKind(*solo)
		if err != nil {
			log.Fatal(err)
		}
		if err := player.Play(kind); err != nil {
			log.Fatal(err)
		}
	} else {
		if err := player.PlayAll(); err != nil {
			log.Fatal(err)
		}
	}

	for event := range ch {
		switch event.Kind {
		case paperdaw.EventSymbol:
			if !*quiet {
				fmt.Printf("%-10s %s\n", event.Track, event.Text)
			}
		case paperdaw.EventDiagnostic:
			fmt.Printf("%-10s %s\n", event.Track, event.Text)
		case paperdaw.EventSinkStopped:
			player.StopAll()
			fmt.Println("playback completed")
			return
		}
	}
}

func resolveNotation(kind paperdaw.TrackKind, path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return defaultNotation[kind], nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func parseTrackKind(name string) (paperdaw.TrackKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "metronome":
		return paperdaw.Metronome, nil
	case "lyrics":
		return paperdaw.Lyrics, nil
	case "drum", "kick/snare", "kicksnare":
		return paperdaw.Drum, nil
	case "hat":
		return paperdaw.Hat, nil
	case "melody":
		return paperdaw.Melody, nil
	case "bass":
		return paperdaw.Bass, nil
	default:
		return 0, fmt.Errorf("invalid -solo %q (expected metronome|lyrics|drum|hat|melody|bass)", name)
	}
}
