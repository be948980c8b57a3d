package reel

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Delimiters of the recording text format.
const (
	halfSep       = "%"    // buttons % axes [% length]
	buttonRecSep  = "\x10" // between per-tick button records
	tickSep       = ":"    // tick:pairs
	pairSep       = "|"    // name>val|name>val
	pairValSep    = ">"    // name>val and tick>x,y
	axisSlotSep   = "^"    // between axis slots
	axisSampleSep = ";"    // tick>x,y;tick>x,y
	axisCompSep   = ","    // x,y
)

// reservedNameChars may not appear in button or axis names because they
// delimit the recording format.
const reservedNameChars = "%\x10:|>^;,"

// ErrMalformedRecording is returned when recording text does not follow the
// format written by Recording.Encode.
var ErrMalformedRecording = errors.New("malformed recording")

// Recording is a decoded input log. Button and axis entries are sparse: only
// ticks where something changed are present.
type Recording struct {
	// Buttons maps tick → button name → 1 (pressed) or 0 (released).
	Buttons map[int]map[string]int
	// Axes holds one tick → value map per axis slot, in the order the
	// controller's axes were added.
	Axes []map[int]Vec2
	// Length is the number of ticks that were recorded.
	Length int
}

// NewRecording returns an empty recording with one slot per axis.
func NewRecording(axisSlots int) *Recording {
	r := &Recording{
		Buttons: make(map[int]map[string]int),
		Axes:    make([]map[int]Vec2, axisSlots),
	}
	for i := range r.Axes {
		r.Axes[i] = make(map[int]Vec2)
	}
	return r
}

// SetButton logs a button transition at tick.
func (r *Recording) SetButton(tick int, name string, pressed bool) {
	m := r.Buttons[tick]
	if m == nil {
		m = make(map[string]int)
		r.Buttons[tick] = m
	}
	if pressed {
		m[name] = 1
	} else {
		m[name] = 0
	}
}

// SetAxis logs an axis sample at tick for the given slot.
func (r *Recording) SetAxis(slot, tick int, v Vec2) {
	r.Axes[slot][tick] = v
}

// LastTick returns the largest tick index that carries any entry, or -1.
func (r *Recording) LastTick() int {
	last := -1
	for tick := range r.Buttons {
		last = max(last, tick)
	}
	for _, slot := range r.Axes {
		for tick := range slot {
			last = max(last, tick)
		}
	}
	return last
}

// Encode writes the recording in its uncompressed text form.
func (r *Recording) Encode() string {
	var b strings.Builder

	for i, tick := range sortedTicks(r.Buttons) {
		if i > 0 {
			b.WriteString(buttonRecSep)
		}
		b.WriteString(strconv.Itoa(tick))
		b.WriteString(tickSep)
		states := r.Buttons[tick]
		names := make([]string, 0, len(states))
		for name := range states {
			names = append(names, name)
		}
		sort.Strings(names)
		for j, name := range names {
			if j > 0 {
				b.WriteString(pairSep)
			}
			b.WriteString(name)
			b.WriteString(pairValSep)
			b.WriteString(strconv.Itoa(states[name]))
		}
	}

	b.WriteString(halfSep)

	for i, slot := range r.Axes {
		if i > 0 {
			b.WriteString(axisSlotSep)
		}
		for j, tick := range sortedTicks(slot) {
			if j > 0 {
				b.WriteString(axisSampleSep)
			}
			v := slot[tick]
			b.WriteString(strconv.Itoa(tick))
			b.WriteString(pairValSep)
			b.WriteString(formatFloat(v.X))
			b.WriteString(axisCompSep)
			b.WriteString(formatFloat(v.Y))
		}
	}

	b.WriteString(halfSep)
	b.WriteString(strconv.Itoa(r.Length))
	return b.String()
}

// DecodeRecording parses text produced by Encode. The length field is
// optional; without it Length is the last tick that carries an entry.
func DecodeRecording(text string) (*Recording, error) {
	halves := strings.Split(text, halfSep)
	if len(halves) < 2 || len(halves) > 3 {
		return nil, fmt.Errorf("%w: expected 2 or 3 sections, got %d", ErrMalformedRecording, len(halves))
	}

	r := &Recording{Buttons: make(map[int]map[string]int)}

	if halves[0] != "" {
		for _, rec := range strings.Split(halves[0], buttonRecSep) {
			tickText, pairs, ok := strings.Cut(rec, tickSep)
			if !ok {
				return nil, fmt.Errorf("%w: button record %q has no tick", ErrMalformedRecording, rec)
			}
			tick, err := parseTick(tickText)
			if err != nil {
				return nil, err
			}
			states := make(map[string]int)
			r.Buttons[tick] = states
			if pairs == "" {
				continue
			}
			for _, pair := range strings.Split(pairs, pairSep) {
				name, val, ok := strings.Cut(pair, pairValSep)
				if !ok || name == "" {
					return nil, fmt.Errorf("%w: button pair %q", ErrMalformedRecording, pair)
				}
				switch val {
				case "1":
					states[name] = 1
				case "0":
					states[name] = 0
				default:
					return nil, fmt.Errorf("%w: button %q has state %q", ErrMalformedRecording, name, val)
				}
			}
		}
	}

	if halves[1] != "" {
		for _, slotText := range strings.Split(halves[1], axisSlotSep) {
			slot := make(map[int]Vec2)
			r.Axes = append(r.Axes, slot)
			if slotText == "" {
				continue
			}
			for _, sample := range strings.Split(slotText, axisSampleSep) {
				tickText, xy, ok := strings.Cut(sample, pairValSep)
				if !ok {
					return nil, fmt.Errorf("%w: axis sample %q", ErrMalformedRecording, sample)
				}
				tick, err := parseTick(tickText)
				if err != nil {
					return nil, err
				}
				xText, yText, ok := strings.Cut(xy, axisCompSep)
				if !ok {
					return nil, fmt.Errorf("%w: axis sample %q", ErrMalformedRecording, sample)
				}
				x, errX := parseFloat(xText)
				y, errY := parseFloat(yText)
				if errX != nil || errY != nil {
					return nil, fmt.Errorf("%w: axis sample %q", ErrMalformedRecording, sample)
				}
				slot[tick] = Vec2{x, y}
			}
		}
	}

	r.Length = r.LastTick()
	if len(halves) == 3 && halves[2] != "" {
		n, err := strconv.Atoi(halves[2])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: length %q", ErrMalformedRecording, halves[2])
		}
		r.Length = max(r.Length, n)
	}
	if r.Length < 0 {
		r.Length = 0
	}
	return r, nil
}

// MarshalRecording encodes and compresses r.
func MarshalRecording(r *Recording) (string, error) {
	return CompressString(r.Encode())
}

// UnmarshalRecording decompresses and decodes a string from MarshalRecording.
func UnmarshalRecording(s string) (*Recording, error) {
	text, err := DecompressString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRecording, err)
	}
	return DecodeRecording(text)
}

func parseTick(s string) (int, error) {
	tick, err := strconv.Atoi(s)
	if err != nil || tick < 0 {
		return 0, fmt.Errorf("%w: tick %q", ErrMalformedRecording, s)
	}
	return tick, nil
}

func sortedTicks[V any](m map[int]V) []int {
	ticks := make([]int, 0, len(m))
	for tick := range m {
		ticks = append(ticks, tick)
	}
	sort.Ints(ticks)
	return ticks
}

func validInputName(name string) bool {
	return name != "" && !strings.ContainsAny(name, reservedNameChars)
}
