// Package posturl builds the canonical detail segments that detail.Parse
// reads back.
package posturl

import (
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"github.com/orgball2608/social-detail-bot/internal/domain"
)

// Type is the link flavour, as used in the segment prefix.
type Type string

const (
	TypePost  Type = "post"
	TypePhoto Type = "photo"
	TypeCover Type = "cover"
	TypeVideo Type = "video"
	TypeStory Type = "story"
)

const detailRoute = "detail"

// DetailPrefix is the route detail segments are served under.
const DetailPrefix = "/" + detailRoute + "/"

// Params describes one link. Identifier is only used for photo and cover and
// must already be normalized.
type Params struct {
	Type       Type
	ID         string
	UniqueID   string
	Identifier string
}

// Build returns the canonical segment for p.
func Build(p Params) string {
	switch p.Type {
	case TypePost:
		return "post-" + p.ID + "-" + p.UniqueID
	case TypePhoto:
		if p.Identifier != "" {
			return "photo-" + p.Identifier + "-" + p.UniqueID
		}
		return "photo-id-" + p.UniqueID
	case TypeCover:
		if p.Identifier != "" {
			return "cover-" + p.Identifier + "-" + p.UniqueID
		}
		return "cover-id-" + p.UniqueID
	case TypeVideo:
		return "video-" + p.ID + "-" + p.UniqueID
	case TypeStory:
		return "story-" + p.ID + "-" + p.UniqueID
	default:
		return p.ID
	}
}

func BuildForPost(post domain.Post, t Type, identifier string) string {
	return Build(Params{
		Type:       t,
		ID:         strconv.FormatInt(post.ID, 10),
		UniqueID:   post.UniqueID,
		Identifier: identifier,
	})
}

func PostDetailURL(post domain.Post) string {
	return BuildForPost(post, TypePost, "")
}

// ProfilePhotoURL links a user's profile photo; userName may be empty.
func ProfilePhotoURL(userID, uniqueID, userName string) string {
	return Build(Params{
		Type:       TypePhoto,
		ID:         userID,
		UniqueID:   uniqueID,
		Identifier: NormalizeIdentifier(userName),
	})
}

// ProfileCoverURL links a user's cover photo; userName may be empty.
func ProfileCoverURL(userID, uniqueID, userName string) string {
	return Build(Params{
		Type:       TypeCover,
		ID:         userID,
		UniqueID:   uniqueID,
		Identifier: NormalizeIdentifier(userName),
	})
}

func VideoURL(videoID, uniqueID string) string {
	return Build(Params{Type: TypeVideo, ID: videoID, UniqueID: uniqueID})
}

func StoryURL(storyID, uniqueID string) string {
	return Build(Params{Type: TypeStory, ID: storyID, UniqueID: uniqueID})
}

// NormalizeIdentifier strips all whitespace from a username and lower-cases it.
func NormalizeIdentifier(name string) string {
	return strings.ToLower(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, name))
}

// TypeForKind maps an entity kind to its link type. ok is false for
// KindUnknown.
func TypeForKind(kind domain.EntityKind) (t Type, ok bool) {
	switch kind {
	case domain.KindPost:
		return TypePost, true
	case domain.KindProfilePhoto:
		return TypePhoto, true
	case domain.KindProfileCover:
		return TypeCover, true
	case domain.KindVideo:
		return TypeVideo, true
	case domain.KindStory:
		return TypeStory, true
	default:
		return "", false
	}
}

// Canonical returns the segment a resolved post should be linked by when it
// was requested as kind. It returns "" when the post carries no unique id,
// since every canonical form ends with one, or when a pseudo-post has no
// owner name to link by.
func Canonical(kind domain.EntityKind, post domain.Post) string {
	if post.UniqueID == "" {
		return ""
	}
	userID := strconv.FormatInt(post.UserID, 10)
	switch kind {
	case domain.KindProfilePhoto, domain.KindProfileCover:
		if !post.IsPseudo() {
			return PostDetailURL(post)
		}
		return profileCanonical(kind, userID, post)
	case domain.KindVideo:
		return VideoURL(strconv.FormatInt(post.ID, 10), post.UniqueID)
	case domain.KindStory:
		return StoryURL(strconv.FormatInt(post.ID, 10), post.UniqueID)
	default:
		return PostDetailURL(post)
	}
}

// profileCanonical links a pseudo-post by its owner's name. Names the tagged
// form cannot carry use the legacy "photo:{name}" form, and a nameless owner
// gets no link since "photo-id-..." would look up a user called "id".
func profileCanonical(kind domain.EntityKind, userID string, post domain.Post) string {
	t := TypePhoto
	if kind == domain.KindProfileCover {
		t = TypeCover
	}

	identifier := NormalizeIdentifier(post.UserName)
	switch {
	case identifier == "":
		return ""
	case strings.ContainsAny(identifier, "-_"):
		return string(t) + ":" + identifier
	default:
		return Build(Params{Type: t, ID: userID, UniqueID: post.UniqueID, Identifier: identifier})
	}
}

// Path returns the route path for a segment.
func Path(segment string) string {
	return DetailPrefix + segment
}

// SegmentFromLink extracts the detail segment from a full link
// ("https://host/detail/post-1-1234567890"), a route path
// ("/detail/post-1-1234567890") or a bare segment, which is returned as is.
// Multi-part paths after the route are joined back with "/".
func SegmentFromLink(raw string) string {
	s := strings.TrimSpace(raw)
	switch {
	case strings.Contains(s, "://"):
		u, err := url.Parse(s)
		if err != nil || u.Host == "" {
			return s
		}
		s = u.Path
	case !strings.HasPrefix(s, "/"):
		return s
	}

	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '/' })
	if len(parts) > 0 && parts[0] == detailRoute {
		parts = parts[1:]
	}
	return strings.Join(parts, "/")
}
