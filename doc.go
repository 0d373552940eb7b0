// Package geprice stores the daily price history of Grand Exchange commodities
// in plain text files, so that it stays human readable and diff friendly.
//
// The core functionalities include:
//   - Data model: a Record is one day of (price, 180 days average price, traded
//     volume) for a commodity, a Series is the ordered list of records of one
//     commodity.
//   - Store: a folder holding one full history file per commodity id and one
//     file per (month, commodity) with a line per day of that month. Appending a
//     Series merges it into the month files, without ever losing a volume already
//     known when the incoming data has none.
//   - Registry: the commodity name <-> id mapping, case insensitive on names.
//   - Queries: reading back daily observations across a range of months.
//
// Fetching and parsing the remote data lives in the grandexchange package, and
// the `gep` command-line tool glues everything together.
package geprice
