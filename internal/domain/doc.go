// Package domain models SpotterNetwork severe-weather spotter reports.
//
// # Data Source
//
// Reports come from the SpotterNetwork plain-text feed at
// http://www.spotternetwork.org/feeds/reports.txt. The feed has no offset or
// pagination support: every poll returns the full sliding window of current
// reports, one report per physical line, each starting with the literal
// marker "Icon:". The embedded "\n" sequences below are two-character
// backslash-n escapes inside the line, not real newlines:
//
//	Icon: <lat>,<lon>,000,<age>,<code>,"Reported By: <name>\n<label>\nTime: <YYYY-MM-DD HH:MM:SS> UTC[\nSize: <N.NN>" (...)][\n<N> mph[ [Measured]]]\nNotes: <text>"
//
// Size and mph are optional and mutually exclusive. The age digit changes
// as a report ages (3, 4, and 5 are cosmetic variants of the same report)
// and is unrelated to report identity; see the feed package for how it is
// normalized before de-duplication.
//
// # Hazard Codes
//
// The <code> field is a decimal hazard code, "1" through "10":
//
//	1 Tornado   2 Funnel        3 Wall Cloud  4 Hail   5 Wind
//	6 Flood     7 Flash Flood   8 Other       9 Freezing Rain   10 Snow
//
// Any other value is rejected with UnknownHazardCodeError. Each code maps
// to a broader storage hazard type: Flash Flood shares the Flood broad
// type, and Other maps to the broad "other" type carrying the fixed
// sub-kind label "SN Other".
//
// # Suppression
//
// Reports with hazard code 8 (Other) whose notes field is exactly the
// literal "None" carry no actionable information and are deliberately
// dropped during parsing. The check is an exact string comparison, not a
// general emptiness test: an empty-but-not-"None" notes field is kept.
package domain
