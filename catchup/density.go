package catchup

import "github.com/CrestNiraj12/terminalcatchup/domain"

// A picture is worth a few toots.
const (
	MediaDensity = 8
	CardDensity  = 8
)

// Density approximates how much there is to read or look at in a post. It is
// only meant as a sort key. Boosts are scored by the post they boost.
func Density(post domain.Post) float64 {
	p := post.Target()

	pollLen := 0
	if p.Poll != nil {
		for _, o := range p.Poll.Options {
			pollLen += len([]rune(o.Title))
		}
	}

	text := len([]rune(p.SpoilerText)) + TextLength(p.Content) + pollLen
	density := float64(text) / 140

	switch {
	case len(p.MediaAttachments) > 0:
		density += float64(MediaDensity * len(p.MediaAttachments))
	case p.Card != nil && p.Card.Image != "":
		density += CardDensity
	}
	return density
}
