// Package driver reads tab-separated read-pair records, drives a
// dedup.Engine through its two passes, and writes the resolved exemplar
// for every row. It owns everything the core deliberately does not: file
// I/O, compression, column discovery, and the alignment-duplicate fast
// path.
package driver
