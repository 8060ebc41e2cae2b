// Package detail turns detail-link segments into typed entity references and
// resolves those references into renderable posts.
package detail

import (
	"regexp"
	"strings"

	"github.com/orgball2608/social-detail-bot/internal/domain"
)

// idMarker is the placeholder the link builder emits in place of a username
// ("photo-id-0912345678"). It is kept as the id and the trailing digits are
// not treated as a unique suffix.
const idMarker = "id"

var (
	taggedPattern  = regexp.MustCompile(`(?i)^(post|photo|cover|video|story)[-_]([^-_]+)(?:[-_](\d{10}))?$`)
	numericPattern = regexp.MustCompile(`^\d+$`)
)

var prefixKinds = map[string]domain.EntityKind{
	"post":  domain.KindPost,
	"photo": domain.KindProfilePhoto,
	"cover": domain.KindProfileCover,
	"video": domain.KindVideo,
	"story": domain.KindStory,
}

// rule recognizes one segment shape.
type rule func(input string) (domain.ParsedID, bool)

// rules run in order; the first match wins.
var rules = []rule{
	matchTagged,
	matchLegacy,
	matchNumeric,
	matchUsername,
}

// Parse never fails: empty input yields KindUnknown, anything else degrades
// to a best guess.
func Parse(input string) domain.ParsedID {
	if input == "" {
		return domain.ParsedID{Original: input, Kind: domain.KindUnknown, ID: input}
	}
	for _, match := range rules {
		if parsed, ok := match(input); ok {
			return parsed
		}
	}
	// unreachable: matchUsername accepts every non-empty input
	return domain.ParsedID{Original: input, Kind: domain.KindUnknown, ID: input}
}

// KindForPrefix maps a segment prefix such as "photo" to its kind.
func KindForPrefix(prefix string) domain.EntityKind {
	if kind, ok := prefixKinds[strings.ToLower(prefix)]; ok {
		return kind
	}
	return domain.KindUnknown
}

func matchTagged(input string) (domain.ParsedID, bool) {
	m := taggedPattern.FindStringSubmatch(input)
	if m == nil {
		return domain.ParsedID{}, false
	}
	parsed := domain.ParsedID{
		Original: input,
		Kind:     KindForPrefix(m[1]),
		ID:       m[2],
		UniqueID: m[3],
	}
	if strings.EqualFold(parsed.ID, idMarker) && parsed.Kind.IsProfileMedia() {
		parsed.UniqueID = ""
	}
	return parsed, true
}

func matchLegacy(input string) (domain.ParsedID, bool) {
	prefix, rest, ok := strings.Cut(input, ":")
	if !ok {
		return domain.ParsedID{}, false
	}
	return domain.ParsedID{
		Original: input,
		Kind:     KindForPrefix(prefix),
		ID:       rest,
	}, true
}

func matchNumeric(input string) (domain.ParsedID, bool) {
	if !IsNumeric(input) {
		return domain.ParsedID{}, false
	}
	return domain.ParsedID{Original: input, Kind: domain.KindPost, ID: input}, true
}

func matchUsername(input string) (domain.ParsedID, bool) {
	return domain.ParsedID{Original: input, Kind: domain.KindProfilePhoto, ID: input}, true
}

// IsNumeric reports whether s is a non-empty run of ASCII digits.
func IsNumeric(s string) bool {
	return numericPattern.MatchString(s)
}
