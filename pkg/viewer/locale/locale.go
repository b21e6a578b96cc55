// Package locale loads the embedded UI catalogues into gotext.
package locale

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/leonelquinteros/gotext"
)

// DefaultLanguage is used when no language is requested or the requested
// one has no catalogue.
const DefaultLanguage = "en"

const domain = "default"

//go:embed locales/*/default.po
var catalogues embed.FS

// dynamicGet is used for runtime translation key lookups.
// A function variable keeps go vet's printf check away from keys that are
// later used as format strings.
var dynamicGet = gotext.Get

var current = DefaultLanguage

func init() {
	_ = Init(DefaultLanguage)
}

// Init makes lang the active catalogue. Regional variants ("de_DE.UTF-8")
// fall back to their base language. When nothing matches, the default
// catalogue is loaded and an error is returned.
func Init(lang string) error {
	resolved, ok := resolve(lang)
	if !ok {
		if err := load(DefaultLanguage); err != nil {
			return err
		}
		return fmt.Errorf("no catalogue for %q (have %s), using %s", lang, strings.Join(Available(), ", "), DefaultLanguage)
	}
	return load(resolved)
}

func load(lang string) error {
	data, err := catalogues.ReadFile("locales/" + lang + "/" + domain + ".po")
	if err != nil {
		return fmt.Errorf("read catalogue %s: %w", lang, err)
	}

	po := gotext.NewPo()
	po.Parse(data)

	l := gotext.NewLocale("", lang)
	l.AddTranslator(domain, po)
	gotext.SetStorage(l)
	current = lang
	return nil
}

func resolve(lang string) (string, bool) {
	if lang == "" {
		return DefaultLanguage, true
	}
	have := Available()
	candidates := []string{lang}
	if i := strings.IndexAny(lang, "._@"); i > 0 {
		candidates = append(candidates, lang[:i])
	}
	for _, c := range candidates {
		c = strings.ToLower(c)
		for _, h := range have {
			if h == c {
				return h, true
			}
		}
	}
	return "", false
}

// Available lists the embedded languages.
func Available() []string {
	entries, err := catalogues.ReadDir("locales")
	if err != nil {
		return nil
	}
	langs := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			langs = append(langs, e.Name())
		}
	}
	sort.Strings(langs)
	return langs
}

// Current returns the active language.
func Current() string {
	return current
}

// T translates key. Strings that are not keys come back unchanged.
func T(key string) string {
	return dynamicGet(key)
}

// Tf translates key and formats it with args. String, error and Stringer
// args pass through Operand, since messages carry FUNC{...} markup.
func Tf(key string, args ...any) string {
	safe := make([]any, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case string:
			safe[i] = Operand(v)
		case error:
			safe[i] = Operand(v.Error())
		case fmt.Stringer:
			safe[i] = Operand(v.String())
		default:
			safe[i] = a
		}
	}
	return fmt.Sprintf(dynamicGet(key), safe...)
}

var braceReplacer = strings.NewReplacer("{", "(", "}", ")")

// Operand makes s safe to place inside FUNC{...} markup: braces become
// parentheses so a "}" in a room name cannot end the markup early.
func Operand(s string) string {
	return braceReplacer.Replace(s)
}
