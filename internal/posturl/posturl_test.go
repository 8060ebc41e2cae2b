package posturl

import (
	"fmt"
	"testing"

	"github.com/orgball2608/social-detail-bot/internal/detail"
	"github.com/orgball2608/social-detail-bot/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   string
	}{
		{"post", Params{Type: TypePost, ID: "123", UniqueID: "4567890123"}, "post-123-4567890123"},
		{"photo with identifier", Params{Type: TypePhoto, ID: "7", UniqueID: "9999999999", Identifier: "janedoe"}, "photo-janedoe-9999999999"},
		{"photo without identifier", Params{Type: TypePhoto, ID: "7", UniqueID: "9999999999"}, "photo-id-9999999999"},
		{"cover with identifier", Params{Type: TypeCover, ID: "7", UniqueID: "1111111111", Identifier: "jane"}, "cover-jane-1111111111"},
		{"cover without identifier", Params{Type: TypeCover, ID: "7", UniqueID: "1111111111"}, "cover-id-1111111111"},
		{"video", Params{Type: TypeVideo, ID: "55", UniqueID: "2222222222"}, "video-55-2222222222"},
		{"story", Params{Type: TypeStory, ID: "66", UniqueID: "3333333333"}, "story-66-3333333333"},
		{"other", Params{Type: "reel", ID: "77", UniqueID: "4444444444"}, "77"},
		{"identifier is not normalized", Params{Type: TypePhoto, UniqueID: "1234567890", Identifier: "Jane Doe"}, "photo-Jane Doe-1234567890"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Build(tt.params))
		})
	}
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "photo-janedoe-9999999999", ProfilePhotoURL("7", "9999999999", "Jane Doe"))
	assert.Equal(t, "photo-id-9999999999", ProfilePhotoURL("7", "9999999999", ""))
	assert.Equal(t, "photo-id-9999999999", ProfilePhotoURL("7", "9999999999", " \t "))
	assert.Equal(t, "cover-janedoe-9999999999", ProfileCoverURL("7", "9999999999", " Jane\tDOE "))
	assert.Equal(t, "cover-id-9999999999", ProfileCoverURL("7", "9999999999", ""))
	assert.Equal(t, "video-5-0000000001", VideoURL("5", "0000000001"))
	assert.Equal(t, "story-6-0000000002", StoryURL("6", "0000000002"))
	assert.Equal(t, "post-9-0000000003", PostDetailURL(domain.Post{ID: 9, UniqueID: "0000000003"}))
	assert.Equal(t, "video-9-0000000003", BuildForPost(domain.Post{ID: 9, UniqueID: "0000000003"}, TypeVideo, ""))
}

func TestNormalizeIdentifier(t *testing.T) {
	assert.Equal(t, "janedoe", NormalizeIdentifier("Jane Doe"))
	assert.Equal(t, "janedoe", NormalizeIdentifier("\nJANE doe "))
	assert.Equal(t, "", NormalizeIdentifier(""))
}

func TestPostRoundTrip(t *testing.T) {
	for _, id := range []int64{0, 1, 42, 1234567890123} {
		post := domain.Post{ID: id, UniqueID: fmt.Sprintf("%010d", id%10000000000)}
		parsed := detail.Parse(PostDetailURL(post))
		assert.Equal(t, domain.KindPost, parsed.Kind)
		assert.Equal(t, fmt.Sprint(id), parsed.ID)
		assert.Equal(t, post.UniqueID, parsed.UniqueID)
	}
}

func TestHelpersRoundTrip(t *testing.T) {
	tests := []struct {
		segment string
		kind    domain.EntityKind
		id      string
	}{
		{VideoURL("10", "1234567890"), domain.KindVideo, "10"},
		{StoryURL("11", "1234567890"), domain.KindStory, "11"},
		{ProfilePhotoURL("7", "1234567890", "Jane Doe"), domain.KindProfilePhoto, "janedoe"},
		{ProfileCoverURL("7", "1234567890", "jane"), domain.KindProfileCover, "jane"},
	}
	for _, tt := range tests {
		t.Run(tt.segment, func(t *testing.T) {
			parsed := detail.Parse(tt.segment)
			assert.Equal(t, tt.kind, parsed.Kind)
			assert.Equal(t, tt.id, parsed.ID)
			assert.Equal(t, "1234567890", parsed.UniqueID)
		})
	}
}

func TestTypeForKind(t *testing.T) {
	for kind, want := range map[domain.EntityKind]Type{
		domain.KindPost:         TypePost,
		domain.KindProfilePhoto: TypePhoto,
		domain.KindProfileCover: TypeCover,
		domain.KindVideo:        TypeVideo,
		domain.KindStory:        TypeStory,
	} {
		got, ok := TypeForKind(kind)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}
	_, ok := TypeForKind(domain.KindUnknown)
	assert.False(t, ok)
}

func TestCanonical(t *testing.T) {
	post := domain.Post{ID: 12, UserID: 7, UniqueID: "1234567890", UserName: "Jane Doe"}
	pseudo := domain.Post{ID: 0, UserID: 7, UniqueID: "1234567890", UserName: "Jane Doe"}

	assert.Equal(t, "post-12-1234567890", Canonical(domain.KindPost, post))
	assert.Equal(t, "video-12-1234567890", Canonical(domain.KindVideo, post))
	assert.Equal(t, "story-12-1234567890", Canonical(domain.KindStory, post))
	assert.Equal(t, "post-12-1234567890", Canonical(domain.KindProfilePhoto, post))
	assert.Equal(t, "photo-janedoe-1234567890", Canonical(domain.KindProfilePhoto, pseudo))
	assert.Equal(t, "cover-janedoe-1234567890", Canonical(domain.KindProfileCover, pseudo))
	assert.Equal(t, "post-12-1234567890", Canonical(domain.KindUnknown, post))
	assert.Equal(t, "", Canonical(domain.KindPost, domain.Post{ID: 12}))
}

func TestCanonical_ProfileNamesParseBack(t *testing.T) {
	tests := []struct {
		userName string
		kind     domain.EntityKind
		want     string
		wantID   string
	}{
		{"janedoe", domain.KindProfilePhoto, "photo-janedoe-1234567890", "janedoe"},
		{"john_doe", domain.KindProfilePhoto, "photo:john_doe", "john_doe"},
		{"mary-jane", domain.KindProfilePhoto, "photo:mary-jane", "mary-jane"},
		{"Mary-Jane", domain.KindProfileCover, "cover:mary-jane", "mary-jane"},
	}
	for _, tt := range tests {
		t.Run(tt.userName, func(t *testing.T) {
			pseudo := domain.Post{ID: 0, UserID: 7, UniqueID: "1234567890", UserName: tt.userName}

			segment := Canonical(tt.kind, pseudo)
			assert.Equal(t, tt.want, segment)

			parsed := detail.Parse(segment)
			assert.Equal(t, tt.kind, parsed.Kind)
			assert.Equal(t, tt.wantID, parsed.ID)
		})
	}
}

func TestCanonical_NamelessProfileHasNoLink(t *testing.T) {
	pseudo := domain.Post{ID: 0, UserID: 7, UniqueID: "1234567890"}

	assert.Equal(t, "", Canonical(domain.KindProfilePhoto, pseudo))
	assert.Equal(t, "", Canonical(domain.KindProfileCover, pseudo))
}

func TestSegmentFromLink(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"post-1-1234567890", "post-1-1234567890"},
		{"  cover:42 ", "cover:42"},
		{"/detail/post-1-1234567890", "post-1-1234567890"},
		{"/detail/post-1-1234567890/", "post-1-1234567890"},
		{"https://example.com/detail/photo-jane-1234567890", "photo-jane-1234567890"},
		{"https://example.com/detail/a/b", "a/b"},
		{"https://example.com/detail/jane%20doe", "jane doe"},
		{"https://example.com/", ""},
		{"/detail/", ""},
		{"/other/thing", "other/thing"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, SegmentFromLink(tt.raw))
		})
	}
}

func TestPath(t *testing.T) {
	assert.Equal(t, "/detail/post-1-1234567890", Path("post-1-1234567890"))
}
