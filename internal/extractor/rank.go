package extractor

import (
	"sort"

	"github.com/Fodders-Dev/RadioAtlas/internal/domain"
)

// Rank orders variants by descending rank key, keeping discovery order
// for equal keys. The key prefers the average bitrate when the service
// reports one, otherwise the nominal bitrate; negative values count
// as zero.
func Rank(variants []domain.AudioVariant) {
	sort.SliceStable(variants, func(i, j int) bool {
		return rankKey(variants[i]) > rankKey(variants[j])
	})
}

func rankKey(v domain.AudioVariant) int {
	avg := v.AverageBitrate
	if avg < 0 {
		avg = 0
	}
	br := v.Bitrate
	if br < 0 {
		br = 0
	}
	if avg > br {
		return avg
	}
	return br
}
