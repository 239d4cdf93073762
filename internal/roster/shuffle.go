package roster

import (
	"math/rand"

	"github.com/Shiftrdw/hukm-scheduling/internal/domain"
)

// shuffleDeterministic shuffles ids in place using a Fisher-Yates pass
// driven by a private rand.Rand seeded from seed, never the package-level
// math/rand functions — so two builds with the same seed always produce
// the same worker processing order (spec §5's determinism requirement),
// independent of any other rand usage elsewhere in the process.
func shuffleDeterministic(ids []domain.WorkerID, seed int64) {
	r := rand.New(rand.NewSource(seed))
	r.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})
}
