package scrapers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVideoRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                   string
		title, season, episode string
		want                   VideoRequest
		wantErr                error
	}{
		{name: "valid", title: "shinchan", season: "1", episode: "1", want: VideoRequest{Title: "shinchan", Season: 1, Episode: 1}},
		{name: "trims", title: "  Naruto ", season: " 2", episode: "13 ", want: VideoRequest{Title: "Naruto", Season: 2, Episode: 13}},
		{name: "missing title", season: "1", episode: "1", wantErr: ErrMissingParams},
		{name: "missing season", title: "x", episode: "1", wantErr: ErrMissingParams},
		{name: "missing episode", title: "x", season: "1", wantErr: ErrMissingParams},
		{name: "non numeric season", title: "x", season: "one", episode: "1", wantErr: ErrInvalidNumbers},
		{name: "float episode", title: "x", season: "1", episode: "1.5", wantErr: ErrInvalidNumbers},
		{name: "zero season", title: "x", season: "0", episode: "1", wantErr: ErrInvalidNumbers},
		{name: "negative episode", title: "x", season: "1", episode: "-3", wantErr: ErrInvalidNumbers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVideoRequest(tt.title, tt.season, tt.episode)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMakeSlug(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "shinchan", MakeSlug("Shinchan"))
	assert.Equal(t, "shin-chan", MakeSlug("  Shin Chan! "))
	assert.Equal(t, "attack-on-titan", MakeSlug("Attack   on -- Titan"))
	assert.Equal(t, "dr-stone", MakeSlug("Dr. Stone"))
	assert.Equal(t, "pokémon", MakeSlug("Pokémon"))
	assert.Empty(t, MakeSlug("?!"))
}

func TestMakeSlugs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"naruto"}, MakeSlugs("Naruto"))
	assert.Equal(t, []string{"pokémon", "pok%C3%A9mon"}, MakeSlugs("Pokémon"))
	assert.Nil(t, MakeSlugs("***"))
}

func TestCandidateURLs(t *testing.T) {
	t.Parallel()

	got := CandidateURLs("https://animedekho.co/", VideoRequest{Title: "Shin Chan", Season: 2, Episode: 10})
	assert.Equal(t, []string{
		"https://animedekho.co/epi/shin-chan-2x10/",
		"https://animedekho.co/episodes/shin-chan-2x10/",
		"https://animedekho.co/epi/shin-chan/2x10/",
		"https://animedekho.co/episodes/shin-chan/2x10/",
	}, got)
}
