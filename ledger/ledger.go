// Package ledger keeps analysis findings on disk so long sweeps survive restarts and can be
// compared across builds.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/p7r0x7/hortex"
	"github.com/p7r0x7/hortex/analysis"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Key scheme, "|"-separated:
//
//	r|<run>                           → Run
//	s|<variant>|<mode>|<lo>|<hi>      → scan record
//	c|<variant>|<seed>                → search record
const (
	prefixRun    = "r|"
	prefixScan   = "s|"
	prefixSearch = "c|"
)

var ErrNotFound = errors.New("ledger: not found")

// Ledger is a LevelDB database of CBOR records. Only one process may hold it open.
type Ledger struct {
	db  *leveldb.DB
	enc cbor.EncMode
}

// Run describes one invocation of an analysis program.
type Run struct {
	ID      string
	Command string
	Started time.Time
	Jobs    int
}

// ScanEntry is a stored bijectivity report.
type ScanEntry struct {
	Run      string
	Recorded time.Time
	Report   analysis.Report
}

// SearchEntry is a stored collision search or diagnosis. Cause is zero for plain searches.
type SearchEntry struct {
	Run       string
	Recorded  time.Time
	Seed      string
	Found     bool
	Collision analysis.Collision
	Cause     analysis.Cause
}

type runRecord struct {
	ID      string `cbor:"1,keyasint"`
	Command string `cbor:"2,keyasint"`
	Started int64  `cbor:"3,keyasint"`
	Jobs    int    `cbor:"4,keyasint"`
}

type scanRecord struct {
	Run         string `cbor:"1,keyasint"`
	Recorded    int64  `cbor:"2,keyasint"`
	Variant     int    `cbor:"3,keyasint"`
	Mode        uint8  `cbor:"4,keyasint"`
	Lo          uint64 `cbor:"5,keyasint"`
	Hi          uint64 `cbor:"6,keyasint"`
	Scanned     uint64 `cbor:"7,keyasint"`
	Collisions  uint64 `cbor:"8,keyasint"`
	FirstInput  uint32 `cbor:"9,keyasint"`
	FirstOutput uint32 `cbor:"10,keyasint"`
	Fingerprint uint64 `cbor:"11,keyasint"`
}

type searchRecord struct {
	Run      string `cbor:"1,keyasint"`
	Recorded int64  `cbor:"2,keyasint"`
	Variant  int    `cbor:"3,keyasint"`
	Seed     string `cbor:"4,keyasint"`
	Found    bool   `cbor:"5,keyasint"`
	A        uint32 `cbor:"6,keyasint"`
	B        uint32 `cbor:"7,keyasint"`
	Output   uint32 `cbor:"8,keyasint"`
	Draws    uint64 `cbor:"9,keyasint"`
	Cause    uint8  `cbor:"10,keyasint,omitempty"`
}

// Open opens or creates the ledger directory at path.
func Open(path string) (*Ledger, error) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, err
	}
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("ledger: open %s: %w", path, err)
	}
	return &Ledger{db: db, enc: enc}, nil
}

func (l *Ledger) Close() error { return l.db.Close() }

func (l *Ledger) put(key string, v interface{}) error {
	data, err := l.enc.Marshal(v)
	if err != nil {
		return fmt.Errorf("ledger: encode %s: %w", key, err)
	}
	if err = l.db.Put([]byte(key), data, nil); err != nil {
		return fmt.Errorf("ledger: put %s: %w", key, err)
	}
	return nil
}

func (l *Ledger) get(key string, v interface{}) error {
	data, err := l.db.Get([]byte(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return ErrNotFound
	} else if err != nil {
		return fmt.Errorf("ledger: get %s: %w", key, err)
	}
	if err = cbor.Unmarshal(data, v); err != nil {
		return fmt.Errorf("ledger: decode %s: %w", key, err)
	}
	return nil
}

// each hands the value of every key under prefix to decode, in key order.
func (l *Ledger) each(prefix string, decode func([]byte) error) error {
	it := l.db.NewIterator(util.BytesPrefix([]byte(prefix)), nil)
	defer it.Release()
	for it.Next() {
		if err := decode(it.Value()); err != nil {
			return fmt.Errorf("ledger: decode %s: %w", it.Key(), err)
		}
	}
	return it.Error()
}

func (l *Ledger) PutRun(r Run) error {
	return l.put(prefixRun+r.ID, runRecord{ID: r.ID, Command: r.Command, Started: r.Started.Unix(), Jobs: r.Jobs})
}

func (l *Ledger) Run(id string) (Run, error) {
	var rec runRecord
	if err := l.get(prefixRun+id, &rec); err != nil {
		return Run{}, err
	}
	return Run{ID: rec.ID, Command: rec.Command, Started: time.Unix(rec.Started, 0), Jobs: rec.Jobs}, nil
}

func scanKey(v hortex.Variant, mode analysis.Mode, lo, hi uint64) string {
	return fmt.Sprintf("%s%02d|%s|%09x|%09x", prefixScan, v.ID(), mode, lo, hi)
}

// PutScan records r under its variant, mode, and range, replacing any earlier report for them.
func (l *Ledger) PutScan(run string, r analysis.Report) error {
	return l.put(scanKey(r.Variant, r.Mode, r.Lo, r.Hi), scanRecord{
		Run: run, Recorded: time.Now().Unix(),
		Variant: r.Variant.ID(), Mode: uint8(r.Mode), Lo: r.Lo, Hi: r.Hi,
		Scanned: r.Scanned, Collisions: r.Collisions,
		FirstInput: r.FirstInput, FirstOutput: r.FirstOutput, Fingerprint: r.Fingerprint,
	})
}

// Scan returns the stored report for a whole-domain scan of v in mode.
func (l *Ledger) Scan(v hortex.Variant, mode analysis.Mode) (ScanEntry, error) {
	var rec scanRecord
	if err := l.get(scanKey(v, mode, 0, analysis.Domain), &rec); err != nil {
		return ScanEntry{}, err
	}
	return rec.entry()
}

// Scans returns every stored report, ordered by variant ID.
func (l *Ledger) Scans() ([]ScanEntry, error) {
	var list []ScanEntry
	err := l.each(prefixScan, func(data []byte) error {
		var rec scanRecord
		if err := cbor.Unmarshal(data, &rec); err != nil {
			return err
		}
		e, err := rec.entry()
		list = append(list, e)
		return err
	})
	return list, err
}

func (rec scanRecord) entry() (ScanEntry, error) {
	v, err := hortex.VariantOf(rec.Variant)
	return ScanEntry{
		Run: rec.Run, Recorded: time.Unix(rec.Recorded, 0),
		Report: analysis.Report{
			Variant: v, Mode: analysis.Mode(rec.Mode), Lo: rec.Lo, Hi: rec.Hi,
			Scanned: rec.Scanned, Collisions: rec.Collisions,
			FirstInput: rec.FirstInput, FirstOutput: rec.FirstOutput, Fingerprint: rec.Fingerprint,
		},
	}, err
}

func searchKey(v hortex.Variant, seed string) string {
	return fmt.Sprintf("%s%02d|%s", prefixSearch, v.ID(), seed)
}

// PutSearch records the outcome of a seeded collision search; cause is zero for plain searches.
func (l *Ledger) PutSearch(run, seed string, c analysis.Collision, found bool, cause analysis.Cause) error {
	return l.put(searchKey(c.Variant, seed), searchRecord{
		Run: run, Recorded: time.Now().Unix(), Variant: c.Variant.ID(), Seed: seed, Found: found,
		A: c.A, B: c.B, Output: c.Output, Draws: c.Draws, Cause: uint8(cause),
	})
}

// Search returns the stored outcome for v and seed.
func (l *Ledger) Search(v hortex.Variant, seed string) (SearchEntry, error) {
	var rec searchRecord
	if err := l.get(searchKey(v, seed), &rec); err != nil {
		return SearchEntry{}, err
	}
	return rec.entry()
}

// Searches returns every stored search outcome, ordered by variant ID and seed.
func (l *Ledger) Searches() ([]SearchEntry, error) {
	var list []SearchEntry
	err := l.each(prefixSearch, func(data []byte) error {
		var rec searchRecord
		if err := cbor.Unmarshal(data, &rec); err != nil {
			return err
		}
		e, err := rec.entry()
		list = append(list, e)
		return err
	})
	return list, err
}

func (rec searchRecord) entry() (SearchEntry, error) {
	v, err := hortex.VariantOf(rec.Variant)
	return SearchEntry{
		Run: rec.Run, Recorded: time.Unix(rec.Recorded, 0), Seed: rec.Seed, Found: rec.Found,
		Collision: analysis.Collision{Variant: v, A: rec.A, B: rec.B, Output: rec.Output, Draws: rec.Draws},
		Cause:     analysis.Cause(rec.Cause),
	}, err
}
