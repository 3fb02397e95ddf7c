// Package showtime contains the pure schedule transformations used by the
// browsing and scheduling endpoints: grouping a flat showtime listing by
// movie, rendering a human readable duration between two instants, and
// computing the timezone-qualified start/end window for a new showing.
// Nothing in this package performs I/O; every function is a pure
// transformation over already-fetched data so that handlers stay thin and
// the logic stays testable.
package showtime

import "time"

// Record is one showtime row as the repository layer returns it.  It carries
// the movie fields needed to build a grouped listing without further lookups.
type Record struct {
	UID             string    // public identifier of the showtime
	MovieUID        string    // public identifier of the movie being screened
	MovieTitle      string    // display title of the movie
	PosterURL       string    // poster image for the listing
	HallName        string    // hall the showing takes place in
	CinemaName      string    // cinema that owns the hall
	StartsAt        time.Time // instant the screening begins
	EndsAt          time.Time // instant the screening ends
	AdultPriceCents uint32    // adult ticket price in cents
	ChildPriceCents uint32    // child ticket price in cents
}

// Slot is a single bookable entry inside a movie group: the showtime's
// identifier plus its start time rendered as a wall-clock label.
type Slot struct {
	UID  string `json:"uid"`  // showtime identifier used for seat lookup and checkout
	Time string `json:"time"` // zero-padded 24h "HH:MM" label in the viewer's zone
}

// MovieGroup is the per-movie view model for a "playing today" listing.
// Groups appear in first-seen order of their movie identifier and slots keep
// the input order, which the backend already returns chronologically.
type MovieGroup struct {
	MovieUID  string `json:"movie_uid"`
	Title     string `json:"title"`
	PosterURL string `json:"poster_url"`
	Slots     []Slot `json:"slots"`
}

// GroupByMovie partitions a flat showtime listing into one group per distinct
// movie identifier.  The grouping key is the movie UID, never the title, since
// two movies may legitimately share a title.  Group order is the first-seen
// order of movie UIDs in the input and slot order within a group is input
// order; neither is re-sorted.  Start times are rendered in loc as "HH:MM".
// An empty input yields an empty (non-nil) result.
func GroupByMovie(records []Record, loc *time.Location) []MovieGroup {
	if loc == nil {
		loc = time.Local
	}
	groups := make([]MovieGroup, 0, len(records))
	index := make(map[string]int, len(records))
	for _, r := range records {
		i, ok := index[r.MovieUID]
		if !ok {
			i = len(groups)
			index[r.MovieUID] = i
			groups = append(groups, MovieGroup{
				MovieUID:  r.MovieUID,
				Title:     r.MovieTitle,
				PosterURL: r.PosterURL,
			})
		}
		groups[i].Slots = append(groups[i].Slots, Slot{
			UID:  r.UID,
			Time: r.StartsAt.In(loc).Format("15:04"),
		})
	}
	return groups
}
