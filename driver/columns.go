package driver

import (
	"bufio"
	"io"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/tsv"
)

// requiredColumns are the five fields every Pass-1 row must carry.
// alignDupColumn is optional: its absence disables the fast path entirely,
// and every row is queried against the engine.
var requiredColumns = []string{"id", "fwd", "rev", "fwd_qual", "rev_qual"}

const alignDupColumn = "alignment_dup_flag"

// row is one parsed Pass-1 record. Fields are decoded by tsv.Reader via
// their `tsv` struct tags, the same header-driven column discovery
// fusion/gene_db.go and pileup/snp/basestrand.go use instead of assuming a
// fixed column layout: a header with "rev" before "id" decodes exactly the
// same as one with "id" first.
type row struct {
	ID           string `tsv:"id"`
	Fwd          string `tsv:"fwd"`
	Rev          string `tsv:"rev"`
	FwdQual      string `tsv:"fwd_qual"`
	RevQual      string `tsv:"rev_qual"`
	AlignDupFlag string `tsv:"alignment_dup_flag"`

	// HasAlignDup records whether the header carried the optional
	// alignment_dup_flag column at all. tsv.Reader has no API for "was
	// this tagged field present in the header", so scanRows sniffs the
	// header line itself before handing the stream to tsv.Reader.
	HasAlignDup bool `tsv:"-"`
}

// scanRows reads a header line followed by data lines from r, calling fn
// for every decoded row in order. It stops at the first decode error or at
// EOF. The header is sniffed once, ahead of the tsv.Reader, to validate
// required columns are present and to detect the optional
// alignment_dup_flag column; that decision is a driver-level policy the
// generic tsv package has no opinion on.
func scanRows(r io.Reader, fn func(row) error) error {
	br := bufio.NewReader(r)
	headerLine, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return errors.E(err, "reading header")
	}
	trimmed := strings.TrimRight(headerLine, "\n")
	if trimmed == "" {
		return errors.E("empty input, no header line")
	}

	present := make(map[string]bool, strings.Count(trimmed, "\t")+1)
	hasAlignDup := false
	for _, col := range strings.Split(trimmed, "\t") {
		present[col] = true
		if col == alignDupColumn {
			hasAlignDup = true
		}
	}
	for _, name := range requiredColumns {
		if !present[name] {
			return errors.E("missing required column", name)
		}
	}

	tr := tsv.NewReader(io.MultiReader(strings.NewReader(headerLine), br))
	tr.HasHeaderRow = true
	for {
		var rec row
		if err := tr.Read(&rec); err != nil {
			if err == io.EOF {
				break
			}
			return errors.E(err, "reading row")
		}
		rec.HasAlignDup = hasAlignDup
		if err := fn(rec); err != nil {
			return err
		}
	}
	return nil
}
