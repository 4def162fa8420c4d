package screen

// Metadata holds the per-logical-screen state described in §3: raw flag,
// mouse flag, cursor visibility, saved position, active style, and the
// screen's own shadow Cache. dispatch.Dispatcher owns one Metadata per
// logical screen, indexed by position in its screens slice.
type Metadata struct {
	IsRaw            bool
	IsMouse          bool
	IsCursorVisible  bool
	Cache            *Cache
}

// NewMetadata creates Metadata for a screen of size w x h with default
// state: cooked mode, mouse disabled, cursor visible.
func NewMetadata(w, h int) *Metadata {
	return &Metadata{
		IsCursorVisible: true,
		Cache:           New(w, h),
	}
}
