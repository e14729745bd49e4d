// Package midi moves piano-roll notes in and out of standard MIDI files.
package midi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/jsphweid/timegrid/constants"
	"github.com/jsphweid/timegrid/logging"
	"github.com/jsphweid/timegrid/model"
	"github.com/jsphweid/timegrid/util"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

var log = logging.For("midi")

const defaultBPM = 120

func ReadMidiFile(filepath string, trackID string) (model.Notes, error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		return model.Notes{}, fmt.Errorf("error reading midi file: %w", err)
	}
	return ReadNotes(bytes.NewReader(dat), trackID)
}

type voice struct {
	channel, key uint8
}

type pending struct {
	tick     int64
	velocity uint8
}

// ReadNotes pairs note-on and note-off events into notes on the sixteenth
// grid. Notes shorter than a sixteenth get length 1; a second note starting
// on an occupied cell is dropped.
func ReadNotes(r io.Reader, trackID string) (res model.Notes, e error) {
	// smf can panic on malformed input
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if p, ok := recover().(string); ok {
			e = errors.New(p)
		}
	}()

	s, err := smf.ReadFrom(r)
	if err != nil {
		return model.Notes{}, fmt.Errorf("error parsing midi file: %w", err)
	}
	ticks, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return model.Notes{}, model.InvalidParameter("time format %v is not metric", s.TimeFormat)
	}
	sixteenth := float64(ticks.Ticks16th())

	res = model.Notes{TrackID: trackID, Tempo: tempoOf(s)}
	seen := make(map[model.NotePos]bool)
	for _, events := range s.Tracks {
		var absTicks int64
		open := make(map[voice]pending)
		for _, event := range events {
			absTicks += int64(event.Delta)
			var channel, key, velocity uint8
			switch {
			case event.Message.GetNoteOn(&channel, &key, &velocity) && velocity > 0:
				open[voice{channel, key}] = pending{tick: absTicks, velocity: velocity}
			case event.Message.GetNoteOn(&channel, &key, &velocity),
				event.Message.GetNoteOff(&channel, &key, &velocity):
				start, ok := open[voice{channel, key}]
				if !ok {
					continue
				}
				delete(open, voice{channel, key})
				n := model.Note{
					Row:      int(key),
					Column:   int(math.Round(float64(start.tick) / sixteenth)),
					Length:   util.Max(1, int(math.Round(float64(absTicks-start.tick)/sixteenth))),
					Velocity: int(start.velocity),
					TrackID:  trackID,
				}
				if seen[n.Pos()] {
					log.Debugf("dropping overlapping note at row %d column %d", n.Row, n.Column)
					continue
				}
				seen[n.Pos()] = true
				res.Notes = append(res.Notes, n)
			}
		}
	}

	sort.Slice(res.Notes, func(i, j int) bool {
		a, b := res.Notes[i], res.Notes[j]
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return a.Row < b.Row
	})
	for i := range res.Notes {
		res.Notes[i].ID = i + 1
	}
	return res, nil
}

func tempoOf(s *smf.SMF) model.TempoMeter {
	tm := model.TempoMeter{
		BPM:           defaultBPM,
		TimeSignature: model.TimeSignature{Numerator: 4, Denominator: 4},
	}
	if changes := s.TempoChanges(); len(changes) > 0 && changes[0].BPM > 0 {
		tm.BPM = changes[0].BPM
	}
	for _, events := range s.Tracks {
		for _, event := range events {
			var num, denom uint8
			if event.Message.GetMetaMeter(&num, &denom) && num > 0 && denom > 0 {
				tm.TimeSignature = model.TimeSignature{Numerator: int(num), Denominator: int(denom)}
				return tm
			}
		}
	}
	return tm
}

type timed struct {
	tick uint32
	off  bool
	msg  midi.Message
}

// WriteNotes writes a single-track file with the meter and tempo of notes
// followed by its note events on channel 0.
func WriteNotes(w io.Writer, notes model.Notes) error {
	if err := notes.Tempo.Validate(); err != nil {
		return err
	}
	ticks := smf.MetricTicks(constants.TicksPerBeat)
	sixteenth := ticks.Ticks16th()

	var events []timed
	for _, n := range notes.Notes {
		if err := n.Validate(); err != nil {
			return model.InvalidParameter("%v", err)
		}
		key := uint8(n.Row)
		events = append(events,
			timed{tick: uint32(n.Column) * sixteenth, msg: midi.NoteOn(0, key, uint8(n.Velocity))},
			timed{tick: uint32(n.End()) * sixteenth, off: true, msg: midi.NoteOff(0, key)},
		)
	}
	// note-offs first so back-to-back notes on one key do not swallow each other
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].off && !events[j].off
	})

	var tr smf.Track
	ts := notes.Tempo.TimeSignature
	tr.Add(0, smf.MetaMeter(uint8(ts.Numerator), uint8(ts.Denominator)))
	tr.Add(0, smf.MetaTempo(notes.Tempo.BPM))
	var last uint32
	for _, ev := range events {
		tr.Add(ev.tick-last, ev.msg)
		last = ev.tick
	}
	tr.Close(0)

	s := smf.New()
	s.TimeFormat = ticks
	if err := s.Add(tr); err != nil {
		return fmt.Errorf("error adding track: %w", err)
	}
	_, err := s.WriteTo(w)
	return err
}

func WriteMidiFile(filepath string, notes model.Notes) error {
	var buf bytes.Buffer
	if err := WriteNotes(&buf, notes); err != nil {
		return err
	}
	return os.WriteFile(filepath, buf.Bytes(), 0o644)
}

// PitchName names a piano-roll row in scientific pitch notation, 60 = C4.
func PitchName(row int) string {
	n := midi.Note(uint8(row))
	return fmt.Sprintf("%s%d", n.Name(), row/12-1)
}
