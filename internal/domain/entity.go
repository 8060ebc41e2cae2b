package domain

// EntityKind is the category of backend object a detail segment refers to.
type EntityKind string

const (
	KindPost         EntityKind = "post"
	KindProfilePhoto EntityKind = "profile_photo"
	KindProfileCover EntityKind = "profile_cover"
	KindVideo        EntityKind = "video"
	KindStory        EntityKind = "story"
	KindUnknown      EntityKind = "unknown"
)

func (k EntityKind) String() string {
	return string(k)
}

// IsProfileMedia reports whether the kind addresses a user's photo or cover
// rather than a post.
func (k EntityKind) IsProfileMedia() bool {
	return k == KindProfilePhoto || k == KindProfileCover
}

// ParsedID is a typed reference extracted from a detail segment.
type ParsedID struct {
	Original string     `json:"original"`
	Kind     EntityKind `json:"kind"`
	ID       string     `json:"id"`
	UniqueID string     `json:"unique_id,omitempty"` // empty when the segment carried none
}

// HasUniqueID reports whether the segment carried a 10-digit suffix.
func (p ParsedID) HasUniqueID() bool {
	return p.UniqueID != ""
}
