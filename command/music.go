// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package command

// MusicStyle is the articulation selected by the M prefix of an ANSI
// music score.
type MusicStyle uint8

const (
	MusicForeground MusicStyle = iota
	MusicBackground
	MusicNormal
	MusicLegato
	MusicStaccato
)

// PauseLength returns the articulation pause that follows a note of the
// given duration.
func (s MusicStyle) PauseLength(duration int) int {
	switch s {
	case MusicLegato:
		return 0
	case MusicStaccato:
		return duration / 4
	default:
		return duration / 8
	}
}

// MusicActionKind tags a MusicAction.
type MusicActionKind uint8

const (
	MusicPlayNote MusicActionKind = iota
	MusicPause
	MusicSetStyle
)

// MusicAction is one step of a parsed ANSI music score. Playback is the
// caller's job: the parser only describes the requested side effect.
type MusicAction struct {
	Kind   MusicActionKind
	Freq   float64 // PlayNote
	Length int     // PlayNote / Pause, in tempo-scaled units
	Dotted bool    // PlayNote
	Style  MusicStyle
}

// Duration returns the action's play time in milliseconds.
func (a MusicAction) Duration() int {
	switch a.Kind {
	case MusicPlayNote:
		if a.Length == 0 {
			return 0
		}
		if a.Dotted {
			return 360000 / a.Length
		}
		return 240000 / a.Length
	case MusicPause:
		if a.Length == 0 {
			return 0
		}
		return 240000 / a.Length
	default:
		return 0
	}
}

// Music is a complete score delivered through Sink.PlayMusic.
type Music struct {
	Actions []MusicAction
}

// NoteFreq holds the frequencies of notes C1..B7, twelve per octave.
// 440 Hz is A4 at index 33.
var NoteFreq = [12 * 7]float64{
	//  C      C#       D        D#       E        F        F#       G        G#       A        A#       B
	65.4064, 69.2957, 73.4162, 77.7817, 82.4069, 87.3071, 92.4986, 97.9989, 103.8262, 110.0000, 116.5409, 123.4708,
	130.8128, 138.5913, 146.8324, 155.5635, 164.8138, 174.6141, 184.9972, 195.9977, 207.6523, 220.0000, 233.0819, 246.9417,
	261.6256, 277.1826, 293.6648, 311.1270, 329.6276, 349.2282, 369.9944, 391.9954, 415.3047, 440.0000, 466.1638, 493.8833,
	523.2511, 554.3653, 587.3295, 622.2540, 659.2551, 698.4565, 739.9888, 783.9909, 830.6094, 880.0000, 932.3275, 987.7666,
	1046.5023, 1108.7305, 1174.6590, 1244.5079, 1318.5102, 1396.9129, 1479.9777, 1567.9817, 1661.2188, 1760.0000, 1864.6550, 1975.5332,
	2093.0045, 2217.4610, 2349.3180, 2489.0159, 2637.0205, 2793.8260, 2959.9554, 3135.9635, 3322.4376, 3520.0000, 3729.3100, 3951.0664,
	4186.0090, 4434.9220, 4698.6360, 4978.0317, 5274.0410, 5587.6520, 5919.9108, 6271.9270, 6644.8750, 7040.0000, 7458.6200, 7902.1320,
}
