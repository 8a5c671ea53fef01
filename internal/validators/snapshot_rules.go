package validators

import (
	"math"

	"github.com/MKhiriev/go-save-keeper/models"
)

const maxDiagnosticLogs = 200

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// checker collects field errors and warnings. Every rule here has a twin in
// repairer; a snapshot free of errors is left untouched by Repair.
type checker struct {
	errs  []error
	warns []string
}

func (c *checker) fail(path string, err error) {
	c.errs = append(c.errs, &FieldError{Path: path, Err: err})
}

func (c *checker) warn(path, msg string) {
	c.warns = append(c.warns, path+": "+msg)
}

func (c *checker) currency(path string, v float64) {
	switch {
	case !isFinite(v):
		c.fail(path, ErrNotFinite)
	case v < 0:
		c.fail(path, ErrNegative)
	}
}

func (c *checker) capacity(path string, v float64) {
	switch {
	case !isFinite(v):
		c.fail(path, ErrNotFinite)
	case v < models.DefaultCapacity:
		c.fail(path, ErrBelowMinimum)
	}
}

func (c *checker) level(path string, v int) {
	if v < models.DefaultLevel {
		c.fail(path, ErrBelowMinimum)
	}
}

func (c *checker) fill(path string, fill, capacity float64) {
	switch {
	case !isFinite(fill):
		c.fail(path, ErrNotFinite)
	case fill < 0:
		c.fail(path, ErrNegative)
	case isFinite(capacity) && fill > capacity:
		c.fail(path, ErrFillExceedsCapacity)
	}
}

func (c *checker) critical(cs models.CriticalState) {
	c.currency("critical.coins", cs.Coins)
	c.currency("critical.gems", cs.Gems)
	c.capacity("critical.containerCapacity", cs.ContainerCapacity)
	c.level("critical.containerLevel", cs.ContainerLevel)
	c.fill("critical.containerSnot", cs.ContainerSnot, cs.ContainerCapacity)

	if cs.Inventory == nil {
		c.fail("critical.inventory", ErrMissingSection)
	} else {
		c.capacity("critical.inventory.capacity", cs.Inventory.Capacity)
		c.level("critical.inventory.level", cs.Inventory.Level)
		c.fill("critical.inventory.snot", cs.Inventory.Snot, cs.Inventory.Capacity)
	}

	if cs.Upgrades == nil {
		c.fail("critical.upgrades", ErrMissingSection)
	} else {
		c.level("critical.upgrades.pickSpeed", cs.Upgrades.PickSpeed)
		c.level("critical.upgrades.capacity", cs.Upgrades.Capacity)
		c.level("critical.upgrades.autoCollector", cs.Upgrades.AutoCollector)
		c.level("critical.upgrades.multiplier", cs.Upgrades.Multiplier)
	}
}

func (c *checker) integrity(s models.Snapshot) {
	if s.IntegrityHash == "" {
		c.warn("integrityHash", "checksum is not set")
		return
	}

	sum, err := ChecksumCritical(s.Critical)
	if err != nil {
		// non-finite values are already reported by critical()
		return
	}
	if sum != s.IntegrityHash {
		c.fail("integrityHash", models.ErrIntegrityMismatch)
	}
}

func (c *checker) regular(rs models.RegularState) {
	seen := make(map[string]struct{}, len(rs.Items))
	for _, item := range rs.Items {
		if item.ID == "" {
			c.fail("regular.items", ErrEmptyItemID)
			continue
		}
		if item.Quantity < 0 {
			c.fail("regular.items."+item.ID+".quantity", ErrNegative)
		}
		if _, dup := seen[item.ID]; dup {
			c.warn("regular.items."+item.ID, "duplicate item id")
		}
		seen[item.ID] = struct{}{}
	}

	achievements := make(map[string]struct{}, len(rs.Achievements))
	for _, a := range rs.Achievements {
		if _, dup := achievements[a]; dup {
			c.warn("regular.achievements", "duplicate achievement "+a)
		}
		achievements[a] = struct{}{}
	}

	c.currency("regular.statistics.totalSnotCollected", rs.Statistics.TotalSnotCollected)
	c.counter("regular.statistics.totalClicks", rs.Statistics.TotalClicks)
	c.counter("regular.statistics.playTimeSeconds", rs.Statistics.PlayTimeSeconds)
	c.counter("regular.statistics.sessionsPlayed", rs.Statistics.SessionsPlayed)
}

func (c *checker) counter(path string, v int64) {
	if v < 0 {
		c.fail(path, ErrNegative)
	}
}

func (c *checker) extended(es models.ExtendedState) {
	if es.Settings == nil {
		c.fail("extended.settings", ErrMissingSection)
	}

	if es.SoundSettings == nil {
		c.fail("extended.soundSettings", ErrMissingSection)
	} else {
		c.volume("extended.soundSettings.master", es.SoundSettings.Master)
		c.volume("extended.soundSettings.music", es.SoundSettings.Music)
		c.volume("extended.soundSettings.effects", es.SoundSettings.Effects)
	}

	if len(es.Logs) > maxDiagnosticLogs {
		c.warn("extended.logs", "too many diagnostic log entries")
	}
}

func (c *checker) volume(path string, v float64) {
	switch {
	case !isFinite(v):
		c.fail(path, ErrNotFinite)
	case v < 0 || v > 1:
		c.fail(path, ErrOutOfRange)
	}
}

// repairer fixes in place what checker reports and records the paths.
type repairer struct {
	fields []string
}

func (r *repairer) mark(path string) {
	for _, f := range r.fields {
		if f == path {
			return
		}
	}
	r.fields = append(r.fields, path)
}

func (r *repairer) currency(path string, v *float64) {
	if !isFinite(*v) || *v < 0 {
		*v = models.DefaultCurrency
		r.mark(path)
	}
}

func (r *repairer) capacity(path string, v *float64) {
	if !isFinite(*v) || *v < models.DefaultCapacity {
		*v = models.DefaultCapacity
		r.mark(path)
	}
}

func (r *repairer) level(path string, v *int) {
	if *v < models.DefaultLevel {
		*v = models.DefaultLevel
		r.mark(path)
	}
}

// fill is clamped down to capacity, never the reverse. capacity must be
// repaired first.
func (r *repairer) fill(path string, fill *float64, capacity float64) {
	if !isFinite(*fill) || *fill < 0 {
		*fill = 0
		r.mark(path)
	}
	if *fill > capacity {
		*fill = capacity
		r.mark(path)
	}
}

func (r *repairer) critical(cs *models.CriticalState) {
	r.currency("critical.coins", &cs.Coins)
	r.currency("critical.gems", &cs.Gems)
	r.capacity("critical.containerCapacity", &cs.ContainerCapacity)
	r.level("critical.containerLevel", &cs.ContainerLevel)
	r.fill("critical.containerSnot", &cs.ContainerSnot, cs.ContainerCapacity)

	if cs.Inventory == nil {
		cs.Inventory = models.DefaultInventory()
		r.mark("critical.inventory")
	} else {
		r.capacity("critical.inventory.capacity", &cs.Inventory.Capacity)
		r.level("critical.inventory.level", &cs.Inventory.Level)
		r.fill("critical.inventory.snot", &cs.Inventory.Snot, cs.Inventory.Capacity)
	}

	if cs.Upgrades == nil {
		cs.Upgrades = models.DefaultUpgrades()
		r.mark("critical.upgrades")
	} else {
		r.level("critical.upgrades.pickSpeed", &cs.Upgrades.PickSpeed)
		r.level("critical.upgrades.capacity", &cs.Upgrades.Capacity)
		r.level("critical.upgrades.autoCollector", &cs.Upgrades.AutoCollector)
		r.level("critical.upgrades.multiplier", &cs.Upgrades.Multiplier)
	}
}

func (r *repairer) regular(rs *models.RegularState) {
	if len(rs.Items) > 0 {
		kept := rs.Items[:0]
		for _, item := range rs.Items {
			if item.ID == "" {
				r.mark("regular.items")
				continue
			}
			if item.Quantity < 0 {
				item.Quantity = 0
				r.mark("regular.items." + item.ID + ".quantity")
			}
			kept = append(kept, item)
		}
		rs.Items = kept
	}

	r.currency("regular.statistics.totalSnotCollected", &rs.Statistics.TotalSnotCollected)
	r.counter("regular.statistics.totalClicks", &rs.Statistics.TotalClicks)
	r.counter("regular.statistics.playTimeSeconds", &rs.Statistics.PlayTimeSeconds)
	r.counter("regular.statistics.sessionsPlayed", &rs.Statistics.SessionsPlayed)
}

func (r *repairer) counter(path string, v *int64) {
	if *v < 0 {
		*v = 0
		r.mark(path)
	}
}

func (r *repairer) extended(es *models.ExtendedState) {
	if es.Settings == nil {
		es.Settings = models.DefaultSettings()
		r.mark("extended.settings")
	}

	if es.SoundSettings == nil {
		es.SoundSettings = models.DefaultSoundSettings()
		r.mark("extended.soundSettings")
		return
	}

	defaults := models.DefaultSoundSettings()
	r.volume("extended.soundSettings.master", &es.SoundSettings.Master, defaults.Master)
	r.volume("extended.soundSettings.music", &es.SoundSettings.Music, defaults.Music)
	r.volume("extended.soundSettings.effects", &es.SoundSettings.Effects, defaults.Effects)
}

func (r *repairer) volume(path string, v *float64, def float64) {
	switch {
	case !isFinite(*v):
		*v = def
		r.mark(path)
	case *v < 0:
		*v = 0
		r.mark(path)
	case *v > 1:
		*v = 1
		r.mark(path)
	}
}
