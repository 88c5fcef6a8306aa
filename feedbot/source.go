package feedbot

import "context"

// Source fetches recent items from one outlet. FetchLatest returns at most
// limit successfully parsed items; fetch or parse failures are logged inside
// the adapter and surface as a shorter (possibly empty) slice, never as an
// error, so one broken outlet cannot abort its siblings.
type Source interface {
	Name() string
	FetchLatest(ctx context.Context, limit int) []RawItem
}
