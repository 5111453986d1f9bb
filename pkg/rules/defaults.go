package rules

// DefaultRegistry returns the built-in rule sets. These cover the recognizer
// artifacts seen most often in scanned German and English book material;
// project-specific rule files can override or extend them via LoadFile.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	reg.Register(GermanRules())
	reg.Register(EnglishRules())
	return reg
}

// GermanRules returns the built-in rule set for German ("de").
func GermanRules() RuleSet {
	return RuleSet{
		Language: "de",
		Substitutions: append(ligatureSubstitutions("de"), []Substitution{
			{ID: "de-long-s", Pattern: `ſ`, Replacement: `s`},
			// Recognizers read ß as a capital B inside lowercase words
			// ("StraBe", "muB").
			{ID: "de-sharp-s", Pattern: `([a-zäöü])B([a-zäöü])`, Replacement: `${1}ß${2}`},
			{ID: "de-sharp-s-final", Pattern: `([a-zäöü])B\b`, Replacement: `${1}ß`},
			{ID: "de-zero-for-o", Pattern: `([a-zäöüß])0([a-zäöüß])`, Replacement: `${1}o${2}`},
			{ID: "de-one-for-l", Pattern: `([a-zäöüß])1([a-zäöüß])`, Replacement: `${1}l${2}`},
			// Vowel runs of three or more are recognizer stutter; German
			// never doubles a vowel past two.
			{ID: "de-run-a", Pattern: `aaa+`, Replacement: `aa`},
			{ID: "de-run-e", Pattern: `eee+`, Replacement: `ee`},
			{ID: "de-run-o", Pattern: `ooo+`, Replacement: `oo`},
			{ID: "de-run-u", Pattern: `uuu+`, Replacement: `uu`},
		}...),
		HeaderPatterns: []HeaderPattern{
			{
				ID:       "de-chapter",
				Kind:     "chapter",
				Pattern:  `(?i)^\s*(?:kapitel|chapter)\s+(\d+|[IVXLCDM]+)\s*[:.]?\s*(.*)$`,
				Keywords: []string{"kapitel", "chapter"},
			},
			{
				ID:       "de-lecture",
				Kind:     "lecture",
				Pattern:  `(?i)^\s*(?:vorlesung|lektion)\s+(\d+|[IVXLCDM]+)\s*[:.]?\s*(.*)$`,
				Keywords: []string{"vorlesung", "lektion"},
			},
			{
				ID:      "de-subsection",
				Kind:    "subsection",
				Pattern: `^\s*(\d+\.\d+\.\d+)\.?\s+(\S.*)$`,
			},
			{
				ID:      "de-section",
				Kind:    "section",
				Pattern: `^\s*(\d+\.\d+)\.?\s+(\S.*)$`,
			},
		},
		FootnotePatterns: defaultFootnotePatterns(),
		DialoguePatterns: defaultDialoguePatterns(),
		Abbreviations: []string{
			"z.B.", "u.a.", "d.h.", "bzw.", "usw.", "vgl.",
			"Dr.", "Prof.", "Nr.", "S.", "Abb.", "Kap.",
		},
	}
}

// EnglishRules returns the built-in rule set for English ("en").
func EnglishRules() RuleSet {
	return RuleSet{
		Language: "en",
		Substitutions: append(ligatureSubstitutions("en"), []Substitution{
			{ID: "en-long-s", Pattern: `ſ`, Replacement: `s`},
			{ID: "en-zero-for-o", Pattern: `([a-z])0([a-z])`, Replacement: `${1}o${2}`},
			{ID: "en-one-for-l", Pattern: `([a-z])1([a-z])`, Replacement: `${1}l${2}`},
			// Standalone lowercase l is almost always a misread I.
			{ID: "en-lone-l", Pattern: `\bl\b`, Replacement: `I`},
			{ID: "en-tbe", Pattern: `\btbe\b`, Replacement: `the`},
			{ID: "en-tlie", Pattern: `\btlie\b`, Replacement: `the`},
		}...),
		HeaderPatterns: []HeaderPattern{
			{
				ID:       "en-chapter",
				Kind:     "chapter",
				Pattern:  `(?i)^\s*chapter\s+(\d+|[IVXLCDM]+)\s*[:.]?\s*(.*)$`,
				Keywords: []string{"chapter"},
			},
			{
				ID:       "en-lecture",
				Kind:     "lecture",
				Pattern:  `(?i)^\s*lecture\s+(\d+|[IVXLCDM]+)\s*[:.]?\s*(.*)$`,
				Keywords: []string{"lecture"},
			},
			{
				ID:      "en-subsection",
				Kind:    "subsection",
				Pattern: `^\s*(\d+\.\d+\.\d+)\.?\s+(\S.*)$`,
			},
			{
				ID:      "en-section",
				Kind:    "section",
				Pattern: `^\s*(\d+\.\d+)\.?\s+(\S.*)$`,
			},
		},
		FootnotePatterns: defaultFootnotePatterns(),
		DialoguePatterns: defaultDialoguePatterns(),
		Abbreviations: []string{
			"e.g.", "i.e.", "etc.", "vs.", "cf.",
			"Dr.", "Prof.", "Mr.", "Mrs.", "Ms.", "No.", "Fig.",
		},
	}
}

func ligatureSubstitutions(lang string) []Substitution {
	return []Substitution{
		{ID: lang + "-lig-ffi", Pattern: `ﬃ`, Replacement: `ffi`},
		{ID: lang + "-lig-ffl", Pattern: `ﬄ`, Replacement: `ffl`},
		{ID: lang + "-lig-fi", Pattern: `ﬁ`, Replacement: `fi`},
		{ID: lang + "-lig-fl", Pattern: `ﬂ`, Replacement: `fl`},
		{ID: lang + "-lig-ff", Pattern: `ﬀ`, Replacement: `ff`},
	}
}

func defaultFootnotePatterns() []FootnotePattern {
	return []FootnotePattern{
		{ID: "fn-bracket", Kind: "numeric", Pattern: `^\s*\[(\d+)\]\s*(.+)$`},
		{ID: "fn-paren", Kind: "numeric", Pattern: `^\s*(\d{1,3})\)\s+(.+)$`},
		{ID: "fn-alpha", Kind: "alphabetic", Pattern: `^\s*([a-z])\)\s+(.+)$`},
		{ID: "fn-symbol", Kind: "symbol", Pattern: `^\s*(\*{1,3}|†|‡)\s*(.+)$`},
		{ID: "fn-superscript", Kind: "superscript", Pattern: `^\s*([⁰¹²³⁴⁵⁶⁷⁸⁹]+)\s*(.+)$`},
	}
}

func defaultDialoguePatterns() []DialoguePattern {
	return []DialoguePattern{
		{ID: "dlg-note", Pattern: `^\s*(\p{Lu}[\p{L}\d .'-]{0,40}?)\s*\(([^)]*)\)\s*:\s*(.+)$`},
		{ID: "dlg-plain", Pattern: `^\s*(\p{Lu}[\p{L}\d .'-]{0,40}?)\s*:\s*(.+)$`},
	}
}
