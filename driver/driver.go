package driver

import (
	"context"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/seqdedup/dedup"
)

// Opts configures a Run. Pass1Input feeds process_read rows; Pass2Input,
// if set, feeds a second stream of lookups after finalize. When
// Pass2Input is empty, Pass 1's own rows are replayed for Pass 2 (a
// single sorted stream), matching the "the driver is written against an
// io.Reader so either works" design note.
type Opts struct {
	Pass1Input    string
	Pass2Input    string
	OutputPath    string
	ProgressEvery int

	KmerLen       int
	WindowLen     int
	NumWindows    int
	ExpectedReads int
	MaxOffset     int
	MaxErrorFrac  float64
}

func (o *Opts) validate() error {
	if o.Pass1Input == "" {
		return errors.E("pass1 input path is required")
	}
	if o.OutputPath == "" {
		return errors.E("output path is required")
	}
	if o.ProgressEvery <= 0 {
		o.ProgressEvery = 1_000_000
	}
	return nil
}

// Run executes both passes end to end: it builds the engine from Opts,
// streams Pass 1, finalizes, streams Pass 2, and writes results.
func Run(ctx context.Context, opts *Opts) error {
	if err := opts.validate(); err != nil {
		return err
	}

	engine, err := dedup.New(dedup.Params{
		KmerLen:       opts.KmerLen,
		WindowLen:     opts.WindowLen,
		NumWindows:    opts.NumWindows,
		ExpectedReads: opts.ExpectedReads,
		MaxOffset:     opts.MaxOffset,
		MaxErrorFrac:  opts.MaxErrorFrac,
	})
	if err != nil {
		return errors.E(err, "creating engine")
	}

	if err := runPass1(ctx, opts, engine); err != nil {
		return err
	}
	engine.Finalize()
	log.Debug.Printf("pass 1 complete: %+v", engine.Stats())

	pass2Path := opts.Pass2Input
	if pass2Path == "" {
		pass2Path = opts.Pass1Input
	}
	if err := runPass2(ctx, opts, pass2Path, engine); err != nil {
		return err
	}
	log.Debug.Printf("pass 2 complete")
	return nil
}

// runPass1 streams opts.Pass1Input through engine. All errors encountered
// along the way -- opening, scanning, and closing the input -- are
// accumulated in a single errors.Once, matching fastq.fileHandle's errp
// field: a close failure on the deferred path must not be dropped just
// because the main body already returned.
func runPass1(ctx context.Context, opts *Opts, engine *dedup.Engine) (err error) {
	e := errors.Once{}
	defer func() { err = e.Err() }()

	r, closeFn, oerr := openInput(ctx, opts.Pass1Input)
	e.Set(oerr)
	if oerr != nil {
		return
	}
	defer func() { e.Set(closeFn()) }()

	seen := newSeenIDs(opts.ExpectedReads)
	n := 0
	e.Set(scanRows(r, func(rec row) error {
		if seen.markAndCheck([]byte(rec.ID)) {
			log.Error.Printf("duplicate read id observed in pass 1: %s", rec.ID)
		}
		// Alignment-duplicate fast path: per the core's design notes, the
		// engine is consulted only when seq_id differs from the
		// alignment-duplicate flag, not when it matches.
		if rec.HasAlignDup && rec.ID == rec.AlignDupFlag {
			n++
			return nil
		}
		engine.ProcessRead([]byte(rec.ID), []byte(rec.Fwd), []byte(rec.Rev), []byte(rec.FwdQual), []byte(rec.RevQual))
		n++
		if n%opts.ProgressEvery == 0 {
			log.Debug.Printf("pass 1: %d rows processed", n)
		}
		return nil
	}))
	return
}

// outputRow is one resolved Pass-2 record, written via tsv.RowWriter the
// same way WriteBaseStrandTsv writes its rows: the writer emits the header
// from the struct's tsv tags on the first Write and must be Flushed at
// the end.
type outputRow struct {
	ID              string `tsv:"id"`
	FinalExemplarID string `tsv:"final_exemplar_id"`
}

// runPass2 streams inputPath through engine.GetFinalExemplar and writes
// the result to opts.OutputPath. As in runPass1, every error along the
// way -- including the output gzip writer's Close, where a real write
// failure would otherwise surface silently -- feeds the same errors.Once
// so it reaches Run's return value instead of only a log line.
func runPass2(ctx context.Context, opts *Opts, inputPath string, engine *dedup.Engine) (err error) {
	e := errors.Once{}
	defer func() { err = e.Err() }()

	r, closeIn, oerr := openInput(ctx, inputPath)
	e.Set(oerr)
	if oerr != nil {
		return
	}
	defer func() { e.Set(closeIn()) }()

	w, closeOut, oerr := createOutput(ctx, opts.OutputPath)
	e.Set(oerr)
	if oerr != nil {
		return
	}
	defer func() { e.Set(closeOut()) }()

	tw := tsv.NewRowWriter(w)
	n := 0
	e.Set(scanRows(r, func(rec row) error {
		final := engine.GetFinalExemplar(rec.ID)
		if werr := tw.Write(&outputRow{ID: rec.ID, FinalExemplarID: final}); werr != nil {
			return errors.E(werr, "writing row", rec.ID)
		}
		n++
		if n%opts.ProgressEvery == 0 {
			log.Debug.Printf("pass 2: %d rows resolved", n)
		}
		return nil
	}))
	if ferr := tw.Flush(); ferr != nil {
		e.Set(errors.E(ferr, "flushing output"))
	}
	return
}
