// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package affix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultVocabulary_Sizes(t *testing.T) {
	v := DefaultVocabulary()
	assert.Len(t, v.Prefixes(), 29)
	assert.Len(t, v.Suffixes(), 25)
	assert.False(t, v.Empty())
}

func TestDefaultVocabulary_DeclarationOrderPreserved(t *testing.T) {
	v := DefaultVocabulary()
	assert.Equal(t, []string{"un", "re", "pre"}, v.Prefixes()[:3])
	assert.Equal(t, "de", v.Prefixes()[len(v.Prefixes())-1])
	assert.Equal(t, []string{"ward", "ive", "en"}, v.Suffixes()[:3])
}

func TestNewVocabulary_Normalizes(t *testing.T) {
	v := NewVocabulary([]string{" Un ", "", "re", "UN"}, []string{"LY", "  "})
	assert.Equal(t, []string{"un", "re"}, v.Prefixes())
	assert.Equal(t, []string{"ly"}, v.Suffixes())
}

func TestNewVocabulary_LengthOrderIsStable(t *testing.T) {
	v := NewVocabulary([]string{"in", "inter", "im", "pre", "under"}, nil)
	assert.Equal(t, []string{"inter", "under", "pre", "in", "im"}, v.prefixesByLength)
	assert.Equal(t, []string{"in", "inter", "im", "pre", "under"}, v.Prefixes())
}

func TestNewVocabulary_CopiesInput(t *testing.T) {
	in := []string{"un", "re"}
	v := NewVocabulary(in, nil)
	in[0] = "zz"
	assert.Equal(t, []string{"un", "re"}, v.Prefixes())

	out := v.Prefixes()
	out[0] = "zz"
	assert.Equal(t, []string{"un", "re"}, v.Prefixes())
}

func TestNewVocabulary_Empty(t *testing.T) {
	v := NewVocabulary(nil, nil)
	assert.True(t, v.Empty())
	assert.Empty(t, v.Prefixes())
	assert.Empty(t, v.Suffixes())
}
