/*Package dedup implements approximate, similarity-based deduplication of
paired-end sequencing reads.

Given a stream of read pairs (a forward sequence, a reverse sequence, and
optional per-base quality strings), the engine groups reads whose sequences
match within a small alignment shift and mismatch budget, and reports a
single representative ("exemplar") identifier per group. Downstream
pipelines use the exemplar identity to mark duplicates without collapsing
the raw per-read data.

Two-pass usage:

  1. Pass 1: call ProcessRead once per read pair. Each call returns the
     identifier of the read's initial exemplar (itself, if the read opened
     a new cluster).
  2. Finalize: call Finalize exactly once. This releases the scratch arena
     and the exemplar index, retaining only the read->exemplar map and the
     cluster-leader table.
  3. Pass 2: call GetFinalExemplar(id) for any previously-seen read id to
     get the highest-scoring member of that read's cluster.

Matching never performs global alignment or edit-distance computation; it
accepts a bounded alignment shift and charges the shift magnitude against the
same mismatch budget as substitutions (see matchSingle and matchPair). The reverse mate is
assumed to already be supplied in the orientation the caller wants compared;
the engine does not reverse-complement anything.

The engine is single-threaded and cooperative: all operations on a given
*Engine must be called from one goroutine at a time. Two independent
*Engine values may be driven concurrently from separate goroutines.
*/
package dedup
