// Package analysis derives text-analysis settings from caller-supplied
// key/value index properties. The function engine does not consume these
// settings itself; they are produced for the text-index subsystem, with a
// documented default for every absent key.
package analysis

import "strings"

// Property keys.
const (
	KeyTokenizer             = "parser"
	KeyTokenizerMode         = "parser_mode"
	KeyPhraseSupport         = "support_phrase"
	KeyCharFilterType        = "char_filter_type"
	KeyCharFilterPattern     = "char_filter_pattern"
	KeyCharFilterReplacement = "char_filter_replacement"
	KeyStopwords             = "stopwords"
	KeyLowercase             = "lower_case"
	KeyDictCompression       = "dict_compression"
	KeyCustomAnalyzer        = "analyzer"
)

// Tokenizer kinds.
const (
	TokenizerNone     = "none"
	TokenizerStandard = "standard"
	TokenizerUnicode  = "unicode"
	TokenizerEnglish  = "english"
	TokenizerChinese  = "chinese"
	TokenizerICU      = "icu"
	TokenizerBasic    = "basic"
	TokenizerIK       = "ik"
	TokenizerUnknown  = "unknown"
)

// Tokenizer modes.
const (
	ModeFineGrained   = "fine_grained"
	ModeCoarseGrained = "coarse_grained"
	ModeSmart         = "ik_smart"
	ModeMaxWord       = "ik_max_word"
)

// Char filter types.
const (
	CharFilterCharReplace = "char_replace"
)

// PhraseSupportNo is the default phrase-support flag value.
const PhraseSupportNo = "false"

// CharFilter is a resolved character-filter configuration. A zero value
// means no filter applies.
type CharFilter struct {
	Type        string
	Pattern     string
	Replacement string
}

// Settings is the full resolved text-analysis configuration.
type Settings struct {
	Tokenizer       string
	TokenizerMode   string
	PhraseSupport   string
	CharFilter      CharFilter
	Stopwords       string
	Lowercase       string
	DictCompression string
	CustomAnalyzer  string
}

// knownTokenizers maps recognized tokenizer names to themselves; anything
// else resolves to TokenizerUnknown.
var knownTokenizers = map[string]string{
	TokenizerNone:     TokenizerNone,
	TokenizerStandard: TokenizerStandard,
	TokenizerUnicode:  TokenizerUnicode,
	TokenizerEnglish:  TokenizerEnglish,
	TokenizerChinese:  TokenizerChinese,
	TokenizerICU:      TokenizerICU,
	TokenizerBasic:    TokenizerBasic,
	TokenizerIK:       TokenizerIK,
}

// NormalizeTokenizer maps a raw tokenizer name to its canonical kind,
// case-insensitively; unrecognized names map to TokenizerUnknown.
func NormalizeTokenizer(name string) string {
	if t, ok := knownTokenizers[strings.ToLower(name)]; ok {
		return t
	}
	return TokenizerUnknown
}

// TokenizerFromProperties resolves the tokenizer kind; default is none.
func TokenizerFromProperties(props map[string]string) string {
	if v, ok := props[KeyTokenizer]; ok {
		return v
	}
	return TokenizerNone
}

// TokenizerModeFromProperties resolves the tokenizer mode. The default is
// coarse-grained, except for the ik tokenizer whose default is smart mode.
func TokenizerModeFromProperties(props map[string]string) string {
	if v, ok := props[KeyTokenizerMode]; ok {
		return v
	}
	if props[KeyTokenizer] == TokenizerIK {
		return ModeSmart
	}
	return ModeCoarseGrained
}

// PhraseSupportFromProperties resolves the phrase-support flag; default "false".
func PhraseSupportFromProperties(props map[string]string) string {
	if v, ok := props[KeyPhraseSupport]; ok {
		return v
	}
	return PhraseSupportNo
}

// CharFilterFromProperties resolves the character filter. Only the
// char_replace type is recognized; a missing pattern disables the filter and
// a missing replacement defaults to a single space.
func CharFilterFromProperties(props map[string]string) CharFilter {
	typ, ok := props[KeyCharFilterType]
	if !ok || typ != CharFilterCharReplace {
		return CharFilter{}
	}
	pattern, ok := props[KeyCharFilterPattern]
	if !ok {
		return CharFilter{}
	}
	replacement := " "
	if v, ok := props[KeyCharFilterReplacement]; ok {
		replacement = v
	}
	return CharFilter{
		Type:        CharFilterCharReplace,
		Pattern:     pattern,
		Replacement: replacement,
	}
}

// StopwordsFromProperties resolves the stop-word list name; default empty.
func StopwordsFromProperties(props map[string]string) string {
	return props[KeyStopwords]
}

// LowercaseFromProperties resolves the lowercase flag; default empty (the
// index layer applies its own per-tokenizer default).
func LowercaseFromProperties(props map[string]string) string {
	return props[KeyLowercase]
}

// DictCompressionFromProperties resolves the dictionary-compression flag;
// default empty.
func DictCompressionFromProperties(props map[string]string) string {
	return props[KeyDictCompression]
}

// CustomAnalyzerFromProperties resolves the custom analyzer id; default empty.
func CustomAnalyzerFromProperties(props map[string]string) string {
	return props[KeyCustomAnalyzer]
}

// SettingsFromProperties resolves every option in one pass.
func SettingsFromProperties(props map[string]string) Settings {
	return Settings{
		Tokenizer:       TokenizerFromProperties(props),
		TokenizerMode:   TokenizerModeFromProperties(props),
		PhraseSupport:   PhraseSupportFromProperties(props),
		CharFilter:      CharFilterFromProperties(props),
		Stopwords:       StopwordsFromProperties(props),
		Lowercase:       LowercaseFromProperties(props),
		DictCompression: DictCompressionFromProperties(props),
		CustomAnalyzer:  CustomAnalyzerFromProperties(props),
	}
}
