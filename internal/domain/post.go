package domain

// Post is the normalized record a detail view renders. It is either a real
// post from the API or a pseudo-post built from a user's profile media, in
// which case ID is 0.
type Post struct {
	ID               int64   `json:"id"`
	Content          string  `json:"content"`
	MediaURL         *string `json:"media_url"`
	CreatedAt        string  `json:"created_at"`
	UserID           int64   `json:"user_id"`
	UniqueID         string  `json:"unique_id"`
	UserName         string  `json:"user_name"`
	UserProfilePhoto *string `json:"user_profile_photo"`
}

// IsPseudo reports whether the post was synthesized from profile media.
func (p *Post) IsPseudo() bool {
	return p.ID == 0
}

// Media returns the media URL or "" when the post has none.
func (p *Post) Media() string {
	if p.MediaURL == nil {
		return ""
	}
	return *p.MediaURL
}
