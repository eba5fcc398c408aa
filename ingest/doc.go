// Package ingest turns delimited fare-table text from local files or URLs
// into the raw rows the fare package builds from. It owns delimiter
// detection, quoted-field handling and source selection; it does not
// interpret any column.
package ingest
