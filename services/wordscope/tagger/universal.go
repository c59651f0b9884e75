// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package tagger

// pennToUniversal maps Penn Treebank tags to Universal POS tags.
var pennToUniversal = map[string]string{
	"CC":   "CCONJ",
	"CD":   "NUM",
	"DT":   "DET",
	"EX":   "PRON",
	"FW":   "X",
	"IN":   "ADP",
	"JJ":   "ADJ",
	"JJR":  "ADJ",
	"JJS":  "ADJ",
	"LS":   "X",
	"MD":   "AUX",
	"NN":   "NOUN",
	"NNS":  "NOUN",
	"NNP":  "PROPN",
	"NNPS": "PROPN",
	"PDT":  "DET",
	"POS":  "PART",
	"PRP":  "PRON",
	"PRP$": "PRON",
	"RB":   "ADV",
	"RBR":  "ADV",
	"RBS":  "ADV",
	"RP":   "ADP",
	"SYM":  "SYM",
	"TO":   "PART",
	"UH":   "INTJ",
	"VB":   "VERB",
	"VBD":  "VERB",
	"VBG":  "VERB",
	"VBN":  "VERB",
	"VBP":  "VERB",
	"VBZ":  "VERB",
	"WDT":  "DET",
	"WP":   "PRON",
	"WP$":  "PRON",
	"WRB":  "ADV",
	"(":    "PUNCT",
	")":    "PUNCT",
	",":    "PUNCT",
	".":    "PUNCT",
	":":    "PUNCT",
	"``":   "PUNCT",
	"''":   "PUNCT",
	"#":    "SYM",
	"$":    "SYM",
}

// UniversalPOS returns the Universal POS tag for a Penn Treebank tag, or
// "X" when the tag is not recognized.
func UniversalPOS(penn string) string {
	if u, ok := pennToUniversal[penn]; ok {
		return u
	}
	return "X"
}
