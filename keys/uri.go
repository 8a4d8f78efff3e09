package keys

import (
	"fmt"
	"strings"
)

// DevPhrase is the publicly known mnemonic behind every development account.
const DevPhrase = "bottom drive obey lake curtain smoke basket hold race lonely fit walk"

// SecretURI is a parsed secret URI.
type SecretURI struct {
	Phrase   string
	Path     []Junction
	Password string
}

// ParseURI parses s. A missing phrase is replaced with DevPhrase.
func ParseURI(s string) (SecretURI, error) {
	var uri SecretURI

	rest := s
	if i := strings.Index(rest, "///"); i >= 0 {
		uri.Password = rest[i+3:]
		rest = rest[:i]
	}

	phrase := rest
	if i := strings.Index(rest, "/"); i >= 0 {
		phrase, rest = rest[:i], rest[i:]
	} else {
		rest = ""
	}
	uri.Phrase = strings.TrimSpace(phrase)
	if uri.Phrase == "" {
		uri.Phrase = DevPhrase
	}

	for rest != "" {
		hard := strings.HasPrefix(rest, "//")
		if hard {
			rest = rest[2:]
		} else {
			rest = rest[1:]
		}
		end := strings.Index(rest, "/")
		if end < 0 {
			end = len(rest)
		}
		name := rest[:end]
		if name == "" {
			return SecretURI{}, fmt.Errorf("%w: empty junction in %q", ErrInvalidJunction, s)
		}
		uri.Path = append(uri.Path, NewJunction(name, hard))
		rest = rest[end:]
	}
	return uri, nil
}

// SeedURI turns a development seed such as "Alice" or "Alice//stash" into the
// hard-derivation URI "//Alice" / "//Alice//stash" under DevPhrase.
func SeedURI(seed string) string {
	return "//" + seed
}

// String renders the URI without the password.
func (u SecretURI) String() string {
	var b strings.Builder
	if u.Phrase != DevPhrase {
		b.WriteString(u.Phrase)
	}
	for _, j := range u.Path {
		b.WriteString(j.String())
	}
	return b.String()
}
