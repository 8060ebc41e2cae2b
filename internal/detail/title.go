package detail

import "github.com/orgball2608/social-detail-bot/internal/domain"

// Title is the header shown above a detail view of the given kind.
func Title(kind domain.EntityKind) string {
	switch kind {
	case domain.KindProfilePhoto:
		return "Profile Photo"
	case domain.KindProfileCover:
		return "Profile Cover"
	case domain.KindVideo:
		return "Video"
	case domain.KindStory:
		return "Story"
	case domain.KindPost:
		return "Post"
	default:
		return "Publication"
	}
}
