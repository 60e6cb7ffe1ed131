package main

/*
  seqdedup marks approximate paired-end read duplicates in a
  tab-separated stream, resolving each read ID to the highest-scoring
  member of its similarity cluster.
*/

import (
	"flag"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/seqdedup/driver"
)

var (
	pass1Input    = flag.String("pass1-input", "", "Input TSV (optionally gzip-compressed) of read pairs")
	pass2Input    = flag.String("pass2-input", "", "Input TSV of read IDs to resolve in pass 2; defaults to --pass1-input")
	outputPath    = flag.String("output", "", "Output TSV path (optionally gzip-compressed)")
	kmerLen       = flag.Int("kmer-len", 16, "Minimizer k-mer length")
	windowLen     = flag.Int("window-len", 32, "Minimizer window length")
	numWindows    = flag.Int("num-windows", 4, "Number of minimizer windows per sequence")
	expectedReads = flag.Int("expected-reads", 1000000, "Expected number of reads, used to size the hash tables")
	maxOffset     = flag.Int("max-offset", 2, "Maximum alignment shift tolerated by the match predicate")
	maxErrorFrac  = flag.Float64("max-error-frac", 0.02, "Maximum combined offset+mismatch fraction tolerated by the match predicate")
	progressEvery = flag.Int("progress-every", 1000000, "Log progress every N rows")
)

func main() {
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() > 0 {
		a := flag.Args()
		log.Fatalf("unparsed flags, please check flag syntax: '%s'", strings.Join(a[len(a)-flag.NArg():], " "))
	}

	opts := driver.Opts{
		Pass1Input:    *pass1Input,
		Pass2Input:    *pass2Input,
		OutputPath:    *outputPath,
		ProgressEvery: *progressEvery,
		KmerLen:       *kmerLen,
		WindowLen:     *windowLen,
		NumWindows:    *numWindows,
		ExpectedReads: *expectedReads,
		MaxOffset:     *maxOffset,
		MaxErrorFrac:  *maxErrorFrac,
	}

	ctx := vcontext.Background()
	if err := driver.Run(ctx, &opts); err != nil {
		log.Fatalf(err.Error())
	}
	log.Debug.Printf("exiting")
}
